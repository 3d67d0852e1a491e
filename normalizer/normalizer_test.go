package normalizer

import (
	"slices"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase and trim", "  Warfarin ", "warfarin"},
		{"collapse inner spaces", "MS    Contin", "ms contin"},
		{"fold accents", "Pâracétamol", "paracetamol"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsRecognized(t *testing.T) {
	n := Default()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Aspirin", true},
		{"XANAX", true},
		{"xanax xr 0.5mg", true},
		{"coumad", true},
		{"Paracétamol", true},
		{"Xyzzyxx123", false},
		{"zz", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := n.IsRecognized(tt.input); got != tt.expected {
				t.Errorf("IsRecognized(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalize(t *testing.T) {
	n := Default()

	got := n.Canonicalize("  Advil ")
	if !got.IsRecognized || got.MatchedEntry != "advil" || got.RawName != "  Advil " {
		t.Errorf("unexpected canonical drug: %+v", got)
	}

	got = n.Canonicalize("Xyzzyxx123")
	if got.IsRecognized || got.MatchedEntry != "" {
		t.Errorf("expected unrecognized, got %+v", got)
	}
}

func TestSuggest(t *testing.T) {
	n := New([]string{"paroxetine", "aspirin", "pantoprazole", "sparkling"}, nil)

	t.Run("prefix before contains", func(t *testing.T) {
		got := n.Suggest("pa", 10)
		want := []string{"Paroxetine", "Pantoprazole", "Sparkling"}
		if !slices.Equal(got, want) {
			t.Errorf("Suggest = %v, want %v", got, want)
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		if got := n.Suggest("pa", 1); len(got) != 1 || got[0] != "Paroxetine" {
			t.Errorf("Suggest with limit 1 = %v", got)
		}
	})

	t.Run("short input", func(t *testing.T) {
		if got := n.Suggest("p", 5); len(got) != 0 {
			t.Errorf("expected no suggestions, got %v", got)
		}
	})

	t.Run("default limit", func(t *testing.T) {
		got := Default().Suggest("in", 0)
		if len(got) == 0 || len(got) > DefaultSuggestionLimit {
			t.Errorf("unexpected suggestion count %d", len(got))
		}
		for _, s := range got {
			if s[:1] != strings.ToUpper(s[:1]) {
				t.Errorf("suggestion %q not capitalized", s)
			}
		}
	})
}

func TestMatch(t *testing.T) {
	n := Default()

	tests := []struct {
		name     string
		table    string
		input    string
		expected bool
	}{
		{"exact", "Warfarin", "warfarin", true},
		{"input contains table name", "Insulin", "insulin glargine", true},
		{"table contains input", "Grapefruit juice", "grapefruit", true},
		{"brand to generic", "Warfarin", "Coumadin", true},
		{"brand to brand", "Ibuprofen", "Advil", true},
		{"brand with dose", "Alprazolam", "Xanax XR", true},
		{"short input ignored", "Warfarin", "wa", false},
		{"unrelated", "Aspirin", "Ibuprofen", false},
		{"no word-internal family hit", "Ferrous sulfate", "spironolactone", false},
		{"different stems", "Metformin", "Metoprolol", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Match(tt.table, tt.input); got != tt.expected {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.table, tt.input, got, tt.expected)
			}
		})
	}
}

func TestFamily(t *testing.T) {
	n := Default()

	if f, ok := n.Family("Jantoven"); !ok || f != "warfarin" {
		t.Errorf("Family(Jantoven) = %q, %v", f, ok)
	}
	if _, ok := n.Family("loratadine"); ok {
		t.Error("loratadine should not belong to a family")
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s, word  string
		expected bool
	}{
		{"rum and coke", "rum", true},
		{"gin", "gin", true},
		{"ginkgo", "gin", false},
		{"spiced rum", "rum", true},
		{"serum", "rum", false},
		{"", "gin", false},
	}

	for _, tt := range tests {
		if got := ContainsWord(tt.s, tt.word); got != tt.expected {
			t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.s, tt.word, got, tt.expected)
		}
	}
}
