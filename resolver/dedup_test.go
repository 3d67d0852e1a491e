package resolver

import (
	"testing"

	"github.com/giygas/interactions-api/entities"
)

func finding(a, b string, sev entities.Severity, src entities.Source, desc string) entities.Interaction {
	return entities.Interaction{Drug1: a, Drug2: b, Severity: sev, Source: src, Description: desc}
}

func TestSortInteractions(t *testing.T) {
	list := []entities.Interaction{
		finding("a", "b", entities.SeverityMild, entities.SourceCurated, "1"),
		finding("a", "b", entities.SeveritySevere, entities.SourcePattern, "2"),
		finding("a", "c", entities.SeverityModerate, entities.SourceDrugClass, "3"),
		finding("a", "b", entities.SeveritySevere, entities.SourceRemoteTerminology, "4"),
		finding("a", "c", entities.SeverityModerate, entities.SourceDrugClass, "5"),
	}

	sortInteractions(list)

	want := []string{"4", "2", "3", "5", "1"}
	for i, w := range want {
		if list[i].Description != w {
			t.Errorf("position %d: got %s, want %s", i, list[i].Description, w)
		}
	}
}

func TestDedupe(t *testing.T) {
	testCases := []struct {
		name string
		in   []entities.Interaction
		want int
	}{
		{
			name: "same topic collapses",
			in: []entities.Interaction{
				finding("Warfarin", "Aspirin", entities.SeveritySevere, entities.SourceCurated, "Extremely high risk of severe bleeding."),
				finding("Aspirin", "Warfarin", entities.SeveritySevere, entities.SourcePattern, "CRITICAL: Warfarin with Aspirin dramatically increases bleeding risk."),
			},
			want: 1,
		},
		{
			name: "prefix containment collapses",
			in: []entities.Interaction{
				finding("a", "b", entities.SeverityModerate, entities.SourceCurated, "Reduced absorption of the antibiotic."),
				finding("a", "b", entities.SeverityMild, entities.SourceDrugClass, "reduced absorption of the antibiotic. Separate doses by two hours."),
			},
			want: 1,
		},
		{
			name: "different topics kept",
			in: []entities.Interaction{
				finding("a", "b", entities.SeveritySevere, entities.SourceCurated, "Bleeding risk."),
				finding("a", "b", entities.SeverityModerate, entities.SourceCurated, "Kidney damage risk."),
			},
			want: 2,
		},
		{
			name: "different pairs kept",
			in: []entities.Interaction{
				finding("a", "b", entities.SeveritySevere, entities.SourceCurated, "Bleeding risk."),
				finding("a", "c", entities.SeveritySevere, entities.SourceCurated, "Bleeding risk."),
			},
			want: 2,
		},
		{
			name: "no topic and different text kept",
			in: []entities.Interaction{
				finding("a", "b", entities.SeverityModerate, entities.SourceCurated, "Lowers absorption."),
				finding("a", "b", entities.SeverityModerate, entities.SourceDrugClass, "Raises blood sugar."),
			},
			want: 2,
		},
		{
			name: "empty",
			in:   nil,
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := dedupe(tc.in)
			if len(got) != tc.want {
				t.Errorf("got %d entries, want %d: %+v", len(got), tc.want, got)
			}
			if len(tc.in) > 0 && got[0].Description != tc.in[0].Description {
				t.Errorf("first entry should survive, got %q", got[0].Description)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	if got := prefix("short", 50); got != "short" {
		t.Errorf("prefix of short string = %q", got)
	}
	if got := prefix("abcdef", 3); got != "abc" {
		t.Errorf("prefix = %q, want abc", got)
	}
	// "é" is two bytes; a cut inside it backs off
	if got := prefix("aé", 2); got != "a" {
		t.Errorf("prefix split a rune: %q", got)
	}
}
