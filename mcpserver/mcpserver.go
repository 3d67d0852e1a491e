// Package mcpserver exposes the interaction engine as Model Context
// Protocol tools, served over SSE next to the HTTP API.
package mcpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/resolver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Suggestion limits for suggest_medicines
const (
	defaultSuggestionLimit = 8
	maxSuggestionLimit     = 20
)

// Server holds the MCP server and the engine behind its tools
type Server struct {
	engine         interfaces.InteractionResolver
	validator      interfaces.InputValidator
	maxMedications int
	mcpServer      *mcp.Server
}

// CheckInput is the argument of check_drug_interactions
type CheckInput struct {
	Medications []string `json:"medications" jsonschema:"medication names to check against each other, generic or brand"`
}

// SuggestInput is the argument of suggest_medicines
type SuggestInput struct {
	Query string `json:"query" jsonschema:"partial medication name, at least 2 characters"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of suggestions, default 8"`
}

// SuggestOutput is the result of suggest_medicines
type SuggestOutput struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// New creates the MCP server and registers its tools
func New(engine interfaces.InteractionResolver, validator interfaces.InputValidator, maxMedications int, version string) *Server {
	s := &Server{
		engine:         engine,
		validator:      validator,
		maxMedications: maxMedications,
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "drug-interactions-mcp",
			Version: version,
		},
		nil,
	)

	s.registerTools()

	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name: "check_drug_interactions",
			Description: "Check a list of medications for known interactions. Returns findings ordered by severity " +
				"with a plain-language summary, side effects and what to avoid. Unrecognized names yield a single " +
				"invalid_input finding with spelling suggestions.",
		},
		s.checkInteractions,
	)

	mcp.AddTool(s.mcpServer,
		&mcp.Tool{
			Name:        "suggest_medicines",
			Description: "Autocomplete a partial medication name. Prefix matches come first.",
		},
		s.suggestMedicines,
	)
}

// MCPServer returns the underlying server, for in-process transports
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}

// Handler serves the tools over SSE: GET opens a session, POST delivers messages
func (s *Server) Handler() http.Handler {
	return mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

func (s *Server) checkInteractions(ctx context.Context, req *mcp.CallToolRequest, input CheckInput) (*mcp.CallToolResult, resolver.Report, error) {
	if err := s.validator.ValidateMedicationList(input.Medications, s.maxMedications); err != nil {
		return nil, resolver.Report{}, fmt.Errorf("invalid medications: %w", err)
	}

	result, err := s.engine.Resolve(ctx, input.Medications)
	if err != nil {
		logging.Warn("MCP interaction check did not complete", "error", err)
		return nil, resolver.Report{}, err
	}

	report := resolver.NewReport(result)
	logging.Info("MCP interaction check", "check_id", report.CheckID, "outcome", report.Outcome, "count", report.Count)

	return nil, report, nil
}

func (s *Server) suggestMedicines(ctx context.Context, req *mcp.CallToolRequest, input SuggestInput) (*mcp.CallToolResult, SuggestOutput, error) {
	if err := s.validator.ValidateInput(input.Query); err != nil {
		return nil, SuggestOutput{}, fmt.Errorf("invalid query: %w", err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	limit = min(limit, maxSuggestionLimit)

	suggestions := s.engine.Suggestions(input.Query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	return nil, SuggestOutput{Query: input.Query, Suggestions: suggestions}, nil
}
