package entities

// AliasFamily ties a canonical generic name to its brands and spellings.
type AliasFamily struct {
	Canonical string
	Aliases   []string
}

// CanonicalDrug is the result of normalizing one raw input name.
type CanonicalDrug struct {
	RawName      string `json:"rawName"`
	MatchedEntry string `json:"matchedEntry,omitempty"`
	IsRecognized bool   `json:"isRecognized"`
}

// ValidationResult partitions input names, preserving input order.
type ValidationResult struct {
	Valid   []string `json:"valid"`
	Invalid []string `json:"invalid"`
}

// DrugProfile describes what the engine knows about one recognized name.
type DrugProfile struct {
	Name         string   `json:"name"`
	MatchedEntry string   `json:"matched_entry"`
	Family       string   `json:"family,omitempty"`
	Classes      []string `json:"classes"`
	Categories   []string `json:"categories"`
}
