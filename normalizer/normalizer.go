// Package normalizer maps free-text medication names onto known drug
// identities. Matching is deliberately permissive: an unrecognized
// dangerous drug is worse than a false match on a short string.
package normalizer

import (
	"bufio"
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giygas/interactions-api/entities"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinSubstringLen is the shortest side allowed in a containment match.
const MinSubstringLen = 3

// MinSuggestionInput is the shortest partial name Suggest answers.
const MinSuggestionInput = 2

// DefaultSuggestionLimit applies when Suggest is called with limit <= 0.
const DefaultSuggestionLimit = 8

//go:embed names.txt
var namesFile string

var defaultNormalizer = New(parseNames(namesFile), defaultFamilies)

// Normalizer holds the immutable known-name list and alias families.
type Normalizer struct {
	known    []string
	knownSet map[string]struct{}
	families [][]string
}

// Default returns the process-wide normalizer built from the embedded tables.
func Default() *Normalizer {
	return defaultNormalizer
}

// New builds a normalizer. Names and aliases are normalized on the way in.
func New(known []string, families []entities.AliasFamily) *Normalizer {
	n := &Normalizer{
		known:    make([]string, 0, len(known)),
		knownSet: make(map[string]struct{}, len(known)),
	}

	for _, name := range known {
		name = Normalize(name)
		if name == "" {
			continue
		}
		if _, dup := n.knownSet[name]; dup {
			continue
		}
		n.knownSet[name] = struct{}{}
		n.known = append(n.known, name)
	}

	for _, f := range families {
		variants := make([]string, 0, len(f.Aliases)+1)
		variants = append(variants, Normalize(f.Canonical))
		for _, a := range f.Aliases {
			if a = Normalize(a); a != "" {
				variants = append(variants, a)
			}
		}
		n.families = append(n.families, variants)
	}

	return n
}

func parseNames(content string) []string {
	var names []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}

// Normalize lowercases, trims, folds accents and collapses inner spaces.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// IsRecognized reports whether name is a known drug, contains one, or is
// a long enough fragment of one.
func (n *Normalizer) IsRecognized(name string) bool {
	_, ok := n.lookup(Normalize(name))
	return ok
}

// Canonicalize resolves name to its known entry, preferring exact matches.
func (n *Normalizer) Canonicalize(name string) entities.CanonicalDrug {
	entry, ok := n.lookup(Normalize(name))
	return entities.CanonicalDrug{
		RawName:      name,
		MatchedEntry: entry,
		IsRecognized: ok,
	}
}

func (n *Normalizer) lookup(normalized string) (string, bool) {
	if normalized == "" {
		return "", false
	}
	if _, ok := n.knownSet[normalized]; ok {
		return normalized, true
	}

	for _, known := range n.known {
		if len(known) >= MinSubstringLen && strings.Contains(normalized, known) {
			return known, true
		}
		if len(normalized) >= MinSubstringLen && strings.Contains(known, normalized) {
			return known, true
		}
	}

	return "", false
}

// Suggest returns up to limit display names for autocomplete. Prefix
// matches come before substring matches.
func (n *Normalizer) Suggest(partial string, limit int) []string {
	q := Normalize(partial)
	if len(q) < MinSuggestionInput {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	var prefix, contains []string
	for _, known := range n.known {
		switch {
		case strings.HasPrefix(known, q):
			prefix = append(prefix, known)
		case strings.Contains(known, q):
			contains = append(contains, known)
		}
	}

	out := make([]string, 0, limit)
	for _, group := range [][]string{prefix, contains} {
		for _, s := range group {
			if len(out) == limit {
				return out
			}
			out = append(out, capitalize(s))
		}
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Match reports whether a dataset entry name refers to the input name:
// exact, containment either way, or membership of one alias family.
func (n *Normalizer) Match(tableName, input string) bool {
	a := Normalize(tableName)
	b := Normalize(input)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) >= MinSubstringLen && strings.Contains(longer, shorter) {
		return true
	}

	for _, family := range n.families {
		if inFamily(a, family) && inFamily(b, family) {
			return true
		}
	}

	return false
}

// Family returns the canonical name of the alias family containing name.
func (n *Normalizer) Family(name string) (string, bool) {
	s := Normalize(name)
	for _, family := range n.families {
		if inFamily(s, family) {
			return family[0], true
		}
	}
	return "", false
}

// inFamily checks name against every variant. Containment of a variant
// is checked on word boundaries ("spironolactone" is not "iron").
func inFamily(name string, family []string) bool {
	for _, v := range family {
		if name == v || ContainsWord(name, v) {
			return true
		}
		if len(name) >= MinSubstringLen && strings.HasPrefix(v, name) {
			return true
		}
	}
	return false
}

// ContainsWord reports whether word occurs in s on word boundaries.
// Both arguments are expected to be normalized.
func ContainsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(s[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(word)
		if (idx == 0 || !isWordByte(s[idx-1])) && (end == len(s) || !isWordByte(s[end])) {
			return true
		}
		start = idx + 1
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
