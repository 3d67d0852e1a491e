package remote

import (
	"regexp"
	"strings"

	"github.com/giygas/interactions-api/entities"
)

// MaxTextLength caps cleaned label text.
const MaxTextLength = 300

// LabelRecommendation is attached to every label-derived finding.
const LabelRecommendation = "Consult your healthcare provider about this combination."

var (
	whitespaceRegex  = regexp.MustCompile(`\s+`)
	punctuationRegex = regexp.MustCompile(`[^\w\s.,;:()\-/%']`)
)

// MapSeverity normalizes the remote vocabulary by keyword.
func MapSeverity(s string) entities.Severity {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "major"), strings.Contains(s, "severe"), strings.Contains(s, "contraindicated"):
		return entities.SeveritySevere
	case strings.Contains(s, "moderate"), strings.Contains(s, "significant"):
		return entities.SeverityModerate
	default:
		return entities.SeverityMild
	}
}

// Recommendation returns the fixed advice text for a severity.
func Recommendation(s entities.Severity) string {
	switch s {
	case entities.SeveritySevere:
		return "AVOID this combination. Consult your doctor immediately if you are taking both medications."
	case entities.SeverityModerate:
		return "Use with caution. Monitor for side effects and consult your healthcare provider."
	default:
		return "Generally safe but monitor for any unusual symptoms. Inform your healthcare provider."
	}
}

// CleanText collapses whitespace, drops stray symbols and truncates to
// MaxTextLength characters.
func CleanText(s string) string {
	s = punctuationRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))

	runes := []rune(s)
	if len(runes) > MaxTextLength {
		return strings.TrimSpace(string(runes[:MaxTextLength])) + "..."
	}
	return s
}
