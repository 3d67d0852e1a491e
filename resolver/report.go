package resolver

import (
	"github.com/giygas/interactions-api/entities"
	"github.com/google/uuid"
)

// Disclaimer accompanies every check result shown to a person.
const Disclaimer = "This information is for educational purposes only and does not replace " +
	"professional medical advice. Always consult your doctor or pharmacist before " +
	"starting, stopping or combining medications."

// Report is the caller-facing envelope of one Resolve call, shared by the
// HTTP API, the CLI and the MCP tools.
type Report struct {
	CheckID      string                 `json:"check_id"`
	Outcome      string                 `json:"outcome"`
	Count        int                    `json:"count"`
	Interactions []entities.Interaction `json:"interactions"`
	Disclaimer   string                 `json:"disclaimer"`
}

// NewReport wraps a result with a fresh check id and its outcome. The
// invalid-input diagnostic is not counted as an interaction.
func NewReport(result []entities.Interaction) Report {
	if result == nil {
		result = []entities.Interaction{}
	}

	outcome := Outcome(result)
	count := len(result)
	if outcome == OutcomeInvalidInput {
		count = 0
	}

	return Report{
		CheckID:      uuid.NewString(),
		Outcome:      outcome,
		Count:        count,
		Interactions: result,
		Disclaimer:   Disclaimer,
	}
}
