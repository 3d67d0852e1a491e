package entities

// Source identifies where an interaction finding came from.
type Source string

const (
	SourceCurated           Source = "curated_db"
	SourceRemoteTerminology Source = "remote_terminology"
	SourceRemoteLabel       Source = "remote_label"
	SourceDrugClass         Source = "drug_class"
	SourcePattern           Source = "pattern_detection"

	// SourceInputValidation marks the invalid-input diagnostic. It is not a finding.
	SourceInputValidation Source = "input_validation"
)

// Priority is the tie-break rank used when severities are equal.
// Lower wins.
func (s Source) Priority() int {
	switch s {
	case SourceRemoteTerminology:
		return 1
	case SourceRemoteLabel:
		return 2
	case SourceCurated:
		return 3
	case SourceDrugClass:
		return 4
	case SourcePattern:
		return 5
	default:
		return 6
	}
}
