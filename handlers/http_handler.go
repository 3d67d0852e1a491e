// Package handlers provides HTTP request handlers for the interaction API:
// interaction checks, name suggestions, name validation and health.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/resolver"
	"github.com/go-chi/chi/v5/middleware"
)

// Suggestion limits for /v1/medicines/suggestions
const (
	defaultSuggestionLimit = 8
	maxSuggestionLimit     = 20
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	resolver       interfaces.InteractionResolver
	validator      interfaces.InputValidator
	healthChecker  interfaces.HealthChecker
	maxMedications int
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(
	resolver interfaces.InteractionResolver,
	validator interfaces.InputValidator,
	healthChecker interfaces.HealthChecker,
	maxMedications int,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		resolver:       resolver,
		validator:      validator,
		healthChecker:  healthChecker,
		maxMedications: maxMedications,
	}
}

// CheckRequest is the POST body of /v1/interactions/check
type CheckRequest struct {
	Medications []string `json:"medications"`
}

// ValidateResponse is the body of /v1/medicines/validate
type ValidateResponse struct {
	entities.ValidationResult
	Profiles []entities.DrugProfile `json:"profiles"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// CheckInteractions resolves the medications in a JSON body
func (h *HTTPHandlerImpl) CheckInteractions(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		logging.Warn("Unusual user input", "error", err, "request_id", middleware.GetReqID(r.Context()))
		h.RespondWithError(w, http.StatusBadRequest, "Invalid JSON body: expected {\"medications\": [...]}")
		return
	}

	h.check(w, r, req.Medications)
}

// CheckInteractionsQuery resolves ?medications=a,b
func (h *HTTPHandlerImpl) CheckInteractionsQuery(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("medications")
	if raw == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing medications parameter")
		return
	}

	h.check(w, r, splitNames(raw))
}

func (h *HTTPHandlerImpl) check(w http.ResponseWriter, r *http.Request, names []string) {
	if err := h.validator.ValidateMedicationList(names, h.maxMedications); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.resolver.Resolve(r.Context(), names)
	if err != nil {
		if errors.Is(err, r.Context().Err()) {
			logging.Info("Interaction check abandoned by client", "request_id", middleware.GetReqID(r.Context()))
		} else {
			logging.Error("Interaction check failed", "error", err)
		}
		h.RespondWithError(w, http.StatusServiceUnavailable, "Interaction check did not complete")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, resolver.NewReport(result))
}

// Suggestions returns autocomplete candidates for ?q=
func (h *HTTPHandlerImpl) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing q parameter")
		return
	}

	if err := h.validator.ValidateInput(query); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSuggestionLimit {
			h.RespondWithError(w, http.StatusBadRequest, "limit must be a number between 1 and "+strconv.Itoa(maxSuggestionLimit))
			return
		}
		limit = n
	}

	suggestions := h.resolver.Suggestions(query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"query":       query,
		"suggestions": suggestions,
	})
}

// ValidateNames partitions ?names=a,b into recognized and unrecognized,
// and profiles the recognized ones
func (h *HTTPHandlerImpl) ValidateNames(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("names")
	if raw == "" {
		h.RespondWithError(w, http.StatusBadRequest, "Missing names parameter")
		return
	}

	names := splitNames(raw)
	if err := h.validator.ValidateMedicationList(names, h.maxMedications); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.validator.ValidateMedications(names)
	h.RespondWithJSON(w, http.StatusOK, ValidateResponse{
		ValidationResult: result,
		Profiles:         h.resolver.Describe(result.Valid),
	})
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	response := make(map[string]any, len(details)+1)
	for k, v := range details {
		response[k] = v
	}
	response["status"] = status

	h.RespondWithJSON(w, httpStatus, response)
}

// splitNames splits a comma separated list, dropping blanks
func splitNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
