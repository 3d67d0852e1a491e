package patterns

import (
	"slices"
	"strings"
	"testing"

	"github.com/giygas/interactions-api/entities"
)

func TestDetect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		a, b     string
		fires    bool
		severity entities.Severity
		contains string
	}{
		{"alcohol and benzodiazepine", "alcohol", "xanax", true, entities.SeveritySevere, "respiratory depression"},
		{"reversed order", "Xanax", "Alcohol", true, entities.SeveritySevere, "respiratory depression"},
		{"beverage and opioid", "red wine", "Oxycodone", true, entities.SeveritySevere, "Oxycodone"},
		{"alcohol and z-drug", "vodka", "Ambien", true, entities.SeveritySevere, "Ambien"},
		{"short term as a word", "rum", "valium", true, entities.SeveritySevere, "valium"},
		{"short term inside a word", "ginkgo", "valium", false, "", ""},
		{"maoi and ssri", "Nardil", "Prozac", true, entities.SeveritySevere, "serotonin syndrome"},
		{"anticoagulant and nsaid", "Warfarin", "Ibuprofen", true, entities.SeveritySevere, "Warfarin with Ibuprofen"},
		{"nsaid first", "Advil", "Eliquis", true, entities.SeveritySevere, "Eliquis with Advil"},
		{"opioid and benzodiazepine", "codeine", "lorazepam", true, entities.SeveritySevere, "opioid pain medication"},
		{"statin and grapefruit", "grapefruit juice", "Lipitor", true, entities.SeverityModerate, "Lipitor levels"},
		{"nystatin is not a statin", "nystatin", "grapefruit", false, "", ""},
		{"both in one category", "xanax", "valium", false, "", ""},
		{"unrelated", "amoxicillin", "loratadine", false, "", ""},
		{"blank", "", "xanax", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.a, tt.b)
			if ok != tt.fires {
				t.Fatalf("Detect(%q, %q) fired = %v, want %v", tt.a, tt.b, ok, tt.fires)
			}
			if !ok {
				return
			}
			if got.Severity != tt.severity {
				t.Errorf("severity = %s, want %s", got.Severity, tt.severity)
			}
			if !strings.Contains(got.Description, tt.contains) {
				t.Errorf("description %q does not contain %q", got.Description, tt.contains)
			}
			if got.Drug1 != tt.a || got.Drug2 != tt.b {
				t.Errorf("drugs = %s/%s, want %s/%s", got.Drug1, got.Drug2, tt.a, tt.b)
			}
			if got.Source != entities.SourcePattern {
				t.Errorf("source = %s", got.Source)
			}
			if !got.IsEnriched() {
				t.Errorf("pattern finding should be complete: %+v", got)
			}
		})
	}
}

func TestDetectRuleOrder(t *testing.T) {
	// tramadol is an opioid; alcohol x opioid comes before any later rule.
	got, ok := New().Detect("beer", "tramadol")
	if !ok || !strings.Contains(got.Description, "Alcohol combined with tramadol") {
		t.Errorf("unexpected detection: %v %+v", ok, got)
	}
}

func TestDetectReturnsCopies(t *testing.T) {
	d := New()
	first, _ := d.Detect("warfarin", "aspirin")
	first.SideEffects[0] = "changed"

	second, _ := d.Detect("warfarin", "aspirin")
	if second.SideEffects[0] == "changed" {
		t.Error("Detect shares slices with the rule table")
	}
}

func TestCategories(t *testing.T) {
	d := New()

	tests := []struct {
		drug     string
		expected []string
	}{
		{"Tramadol", []string{"opioid"}},
		{"Aspirin 81mg", []string{"nsaid"}},
		{"gin and tonic", []string{"alcohol"}},
		{"loratadine", nil},
	}

	for _, tt := range tests {
		t.Run(tt.drug, func(t *testing.T) {
			if got := d.Categories(tt.drug); !slices.Equal(got, tt.expected) {
				t.Errorf("Categories(%q) = %v, want %v", tt.drug, got, tt.expected)
			}
		})
	}
}
