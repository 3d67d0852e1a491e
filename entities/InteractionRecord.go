package entities

import "slices"

// InteractionRecord is one row of a curated dataset. Rows match in
// either drug order.
type InteractionRecord struct {
	DrugA          string   `json:"drugA"`
	DrugB          string   `json:"drugB"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	SimpleSummary  string   `json:"simpleSummary,omitempty"`
	SideEffects    []string `json:"sideEffects,omitempty"`
	WhatToAvoid    []string `json:"whatToAvoid,omitempty"`
}

// ToInteraction builds a finding for the given input names. Slices are
// cloned so callers never share memory with the table.
func (r InteractionRecord) ToInteraction(drug1, drug2 string, source Source) Interaction {
	return Interaction{
		Drug1:          drug1,
		Drug2:          drug2,
		Severity:       r.Severity,
		Description:    r.Description,
		Recommendation: r.Recommendation,
		Source:         source,
		SimpleSummary:  r.SimpleSummary,
		SideEffects:    slices.Clone(r.SideEffects),
		WhatToAvoid:    slices.Clone(r.WhatToAvoid),
	}
}
