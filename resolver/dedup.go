package resolver

import (
	"cmp"
	"slices"
	"strings"

	"github.com/giygas/interactions-api/entities"
)

// descriptionPrefixLen is how much of a description is compared when
// deciding whether two findings state the same fact.
const descriptionPrefixLen = 50

// sortInteractions orders by severity, then source priority. The sort is
// stable so equal findings keep pair order.
func sortInteractions(list []entities.Interaction) {
	slices.SortStableFunc(list, func(a, b entities.Interaction) int {
		if c := cmp.Compare(a.Severity.Rank(), b.Severity.Rank()); c != 0 {
			return c
		}
		return cmp.Compare(a.Source.Priority(), b.Source.Priority())
	})
}

// dedupe keeps the first of each group of equivalent findings. Run it on
// a sorted list so the most severe, highest priority finding survives.
func dedupe(sorted []entities.Interaction) []entities.Interaction {
	out := make([]entities.Interaction, 0, len(sorted))
	topics := make([]string, 0, len(sorted))

	for _, candidate := range sorted {
		topic := primaryTopic(candidate.Description)
		duplicate := false
		for i, kept := range out {
			if kept.PairKey() == candidate.PairKey() && sameFact(kept, candidate, topics[i], topic) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, candidate)
			topics = append(topics, topic)
		}
	}
	return out
}

// sameFact reports whether two findings for one pair describe the same
// risk: overlapping description prefixes, or the same primary topic.
func sameFact(a, b entities.Interaction, topicA, topicB string) bool {
	if topicA != "" && topicA == topicB {
		return true
	}

	da := strings.ToLower(a.Description)
	db := strings.ToLower(b.Description)
	return strings.Contains(da, prefix(db, descriptionPrefixLen)) ||
		strings.Contains(db, prefix(da, descriptionPrefixLen))
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// keep whole UTF-8 sequences
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
