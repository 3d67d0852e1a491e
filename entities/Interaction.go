package entities

import "strings"

// Interaction is a single finding for a pair of input medications.
// Values are built once per request and never modified afterwards.
type Interaction struct {
	Drug1             string   `json:"drug1"`
	Drug2             string   `json:"drug2"`
	Severity          Severity `json:"severity"`
	Description       string   `json:"description"`
	Recommendation    string   `json:"recommendation"`
	Source            Source   `json:"source"`
	SimpleSummary     string   `json:"simpleSummary,omitempty"`
	SideEffects       []string `json:"sideEffects,omitempty"`
	WhatToAvoid       []string `json:"whatToAvoid,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
	InvalidNames      []string `json:"invalidNames,omitempty"`
}

// IsInvalidInput reports whether this is the invalid-input diagnostic.
func (i Interaction) IsInvalidInput() bool {
	return i.Source == SourceInputValidation
}

// IsEnriched reports whether every plain-language field is present.
func (i Interaction) IsEnriched() bool {
	return strings.TrimSpace(i.SimpleSummary) != "" && len(i.SideEffects) > 0 && len(i.WhatToAvoid) > 0
}

// PairKey identifies the unordered drug pair, case-insensitive.
func (i Interaction) PairKey() string {
	a := strings.ToLower(strings.TrimSpace(i.Drug1))
	b := strings.ToLower(strings.TrimSpace(i.Drug2))
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}
