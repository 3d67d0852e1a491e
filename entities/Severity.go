package entities

import (
	"fmt"
	"strings"
)

// Severity is the ordinal clinical risk level of an interaction.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Rank orders severities for sorting, lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeveritySevere:
		return 0
	case SeverityModerate:
		return 1
	case SeverityMild:
		return 2
	default:
		return 3
	}
}

// ParseSeverity accepts the three known levels, case-insensitive.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeveritySevere:
		return SeveritySevere, nil
	case SeverityModerate:
		return SeverityModerate, nil
	case SeverityMild:
		return SeverityMild, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}
