package entities

// DrugClass groups member drugs sharing class-level interaction rules.
type DrugClass struct {
	Name    string      `json:"name"`
	Members []string    `json:"members"`
	Rules   []ClassRule `json:"rules,omitempty"`
}

// ClassRule says members of the owning class interact with WithClass.
type ClassRule struct {
	WithClass      string   `json:"withClass"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}
