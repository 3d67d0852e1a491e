package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/giygas/interactions-api/data"
	"github.com/giygas/interactions-api/dataset"
	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/normalizer"
	"github.com/giygas/interactions-api/patterns"
	"github.com/giygas/interactions-api/resolver"
	"github.com/giygas/interactions-api/validation"
)

// mockResolver returns a canned result or error
type mockResolver struct {
	result []entities.Interaction
	err    error
	names  []string
}

func (m *mockResolver) Resolve(ctx context.Context, names []string) ([]entities.Interaction, error) {
	m.names = names
	return m.result, m.err
}

func (m *mockResolver) Suggestions(partial string, max int) []string {
	return nil
}

func (m *mockResolver) Describe(names []string) []entities.DrugProfile {
	return []entities.DrugProfile{}
}

// mockHealthChecker returns a fixed report
type mockHealthChecker struct {
	status string
	code   int
}

func (m *mockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, map[string]any{"is_updating": false}, m.code
}

func newTestHandler(t *testing.T) *HTTPHandlerImpl {
	t.Helper()

	n := normalizer.Default()
	ds, err := dataset.Load(n, "")
	if err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	dc := data.NewDataContainer()
	dc.UpdateDataset(ds)

	validator := validation.NewDataValidator(n)
	engine := resolver.New(n, validator, dc, patterns.New(), nil)

	return NewHTTPHandler(engine, validator, &mockHealthChecker{status: "healthy", code: http.StatusOK}, 5)
}

func decodeReport(t *testing.T, rr *httptest.ResponseRecorder) resolver.Report {
	t.Helper()
	var report resolver.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON response: %v\n%s", err, rr.Body.String())
	}
	return report
}

func TestCheckInteractions(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantOutcome string
		wantCount   int
	}{
		{
			name:        "severe pair",
			body:        `{"medications": ["Warfarin", "Ibuprofen"]}`,
			wantCode:    http.StatusOK,
			wantOutcome: resolver.OutcomeInteractionsFound,
			wantCount:   1,
		},
		{
			name:        "no interaction",
			body:        `{"medications": ["amoxicillin", "loratadine"]}`,
			wantCode:    http.StatusOK,
			wantOutcome: resolver.OutcomeNoInteractions,
			wantCount:   0,
		},
		{
			name:        "unrecognized name",
			body:        `{"medications": ["warfarin", "blorptex"]}`,
			wantCode:    http.StatusOK,
			wantOutcome: resolver.OutcomeInvalidInput,
			wantCount:   0,
		},
		{
			name:        "single name",
			body:        `{"medications": ["warfarin"]}`,
			wantCode:    http.StatusOK,
			wantOutcome: resolver.OutcomeNoInteractions,
			wantCount:   0,
		},
		{
			name:     "malformed body",
			body:     `{"medications": "warfarin"`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown field",
			body:     `{"drugs": ["warfarin", "aspirin"]}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "empty list",
			body:     `{"medications": []}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "too many",
			body:     `{"medications": ["a1","b2","c3","d4","e5","f6"]}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "dangerous content",
			body:     `{"medications": ["warfarin", "<script>alert(1)</script>"]}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/interactions/check", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.CheckInteractions(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, rr.Code, rr.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				var errBody map[string]any
				if err := json.Unmarshal(rr.Body.Bytes(), &errBody); err != nil {
					t.Fatalf("invalid error body: %v", err)
				}
				for _, key := range []string{"error", "message", "code"} {
					if _, ok := errBody[key]; !ok {
						t.Errorf("error body missing %q: %v", key, errBody)
					}
				}
				return
			}

			report := decodeReport(t, rr)
			if report.Outcome != tt.wantOutcome {
				t.Errorf("expected outcome %s, got %s", tt.wantOutcome, report.Outcome)
			}
			if report.Count != tt.wantCount {
				t.Errorf("expected count %d, got %d", tt.wantCount, report.Count)
			}
			if report.CheckID == "" || report.Disclaimer == "" {
				t.Errorf("expected check id and disclaimer, got %+v", report)
			}
			if report.Interactions == nil {
				t.Error("interactions should encode as an array, not null")
			}
		})
	}
}

func TestCheckInteractions_SevereContent(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/interactions/check",
		strings.NewReader(`{"medications": ["Warfarin", "Ibuprofen"]}`))
	rr := httptest.NewRecorder()
	handler.CheckInteractions(rr, req)

	report := decodeReport(t, rr)
	if len(report.Interactions) != 1 {
		t.Fatalf("expected one interaction, got %d", len(report.Interactions))
	}
	got := report.Interactions[0]
	if got.Severity != entities.SeveritySevere || got.Drug1 != "Warfarin" {
		t.Errorf("unexpected interaction %+v", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestCheckInteractionsQuery(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantLen  int
	}{
		{"pair", "?medications=warfarin,%20aspirin", http.StatusOK, 1},
		{"blanks dropped", "?medications=warfarin,,aspirin,", http.StatusOK, 1},
		{"missing", "", http.StatusBadRequest, 0},
		{"only commas", "?medications=,,", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/interactions/check"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.CheckInteractionsQuery(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, rr.Code, rr.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				if report := decodeReport(t, rr); len(report.Interactions) != tt.wantLen {
					t.Errorf("expected %d interactions, got %d", tt.wantLen, len(report.Interactions))
				}
			}
		})
	}
}

func TestCheckInteractions_ResolveError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &mockResolver{err: context.Canceled}
	validator := validation.NewDataValidator(normalizer.Default())
	handler := NewHTTPHandler(mock, validator, &mockHealthChecker{}, 5)

	req := httptest.NewRequest(http.MethodGet, "/v1/interactions/check?medications=warfarin,aspirin", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.CheckInteractionsQuery(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
	if len(mock.names) != 2 {
		t.Errorf("expected the resolver to receive 2 names, got %v", mock.names)
	}
}

func TestSuggestions(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantFirst string
		maxLen    int
	}{
		{"prefix", "?q=warf", http.StatusOK, "Warfarin", 8},
		{"limit", "?q=a&limit=3", http.StatusOK, "", 3},
		{"too short", "?q=w", http.StatusOK, "", 0},
		{"missing", "", http.StatusBadRequest, "", 0},
		{"bad limit", "?q=warf&limit=abc", http.StatusBadRequest, "", 0},
		{"limit too high", "?q=warf&limit=100", http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/medicines/suggestions"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.Suggestions(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantCode, rr.Code, rr.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var body struct {
				Query       string   `json:"query"`
				Suggestions []string `json:"suggestions"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Suggestions == nil {
				t.Fatal("suggestions should be an array")
			}
			if len(body.Suggestions) > tt.maxLen {
				t.Errorf("expected at most %d suggestions, got %d", tt.maxLen, len(body.Suggestions))
			}
			if tt.wantFirst != "" && (len(body.Suggestions) == 0 || body.Suggestions[0] != tt.wantFirst) {
				t.Errorf("expected %s first, got %v", tt.wantFirst, body.Suggestions)
			}
		})
	}
}

func TestValidateNames(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/medicines/validate?names=Warfarin,blorptex,Advil", nil)
	rr := httptest.NewRecorder()
	handler.ValidateNames(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result ValidateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Valid) != 2 || result.Valid[0] != "Warfarin" || result.Valid[1] != "Advil" {
		t.Errorf("unexpected valid names %v", result.Valid)
	}
	if len(result.Invalid) != 1 || result.Invalid[0] != "blorptex" {
		t.Errorf("unexpected invalid names %v", result.Invalid)
	}
	if len(result.Profiles) != 2 {
		t.Fatalf("expected a profile per valid name, got %+v", result.Profiles)
	}
	if p := result.Profiles[1]; p.Name != "Advil" || p.Family != "ibuprofen" || len(p.Classes) == 0 {
		t.Errorf("unexpected Advil profile %+v", p)
	}
	if !strings.Contains(rr.Body.String(), `"valid":["Warfarin","Advil"]`) {
		t.Errorf("validation fields should stay at the top level: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ValidateNames(rr, httptest.NewRequest(http.MethodGet, "/v1/medicines/validate", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without names, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		checker  *mockHealthChecker
		wantCode int
	}{
		{"healthy", &mockHealthChecker{status: "healthy", code: http.StatusOK}, http.StatusOK},
		{"degraded", &mockHealthChecker{status: "degraded", code: http.StatusOK}, http.StatusOK},
		{"unhealthy", &mockHealthChecker{status: "unhealthy", code: http.StatusServiceUnavailable}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHTTPHandler(&mockResolver{}, nil, tt.checker, 5)

			rr := httptest.NewRecorder()
			handler.HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["status"] != tt.checker.status {
				t.Errorf("expected status %s, got %v", tt.checker.status, body["status"])
			}
			if _, ok := body["is_updating"]; !ok {
				t.Error("expected health details to be merged into the body")
			}
		})
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{",", []string{}},
	}

	for _, tt := range tests {
		got := splitNames(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("splitNames(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitNames(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	}
}
