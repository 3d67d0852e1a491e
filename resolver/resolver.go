// Package resolver turns a batch of medication names into an ordered,
// deduplicated list of interaction findings. It fans out one worker per
// drug pair over the curated dataset, the critical-pattern detector and
// the optional remote source, then enriches, sorts and deduplicates.
package resolver

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
)

// Outcome values reported by Outcome.
const (
	OutcomeInvalidInput      = "invalid_input"
	OutcomeNoInteractions    = "no_interactions"
	OutcomeInteractionsFound = "interactions_found"
)

// Labels used by the invalid-input diagnostic.
const (
	InvalidDrug1 = "WRONG INPUT"
	InvalidDrug2 = "INVALID MEDICINE NAME"
)

// maxParallelPairs bounds the pair workers running at once.
const maxParallelPairs = 16

// correctionHints is how many suggestions are offered per invalid name.
const correctionHints = 3

// Compile-time check to ensure Resolver implements InteractionResolver
var _ interfaces.InteractionResolver = (*Resolver)(nil)

// Resolver implements interfaces.InteractionResolver.
type Resolver struct {
	names     interfaces.NameResolver
	validator interfaces.InputValidator
	lookup    interfaces.InteractionLookup
	patterns  interfaces.PatternDetector
	remote    interfaces.RemoteSource // nil when remote lookups are disabled
}

// New creates a resolver. remote may be nil.
func New(
	names interfaces.NameResolver,
	validator interfaces.InputValidator,
	lookup interfaces.InteractionLookup,
	patterns interfaces.PatternDetector,
	remote interfaces.RemoteSource,
) *Resolver {
	return &Resolver{
		names:     names,
		validator: validator,
		lookup:    lookup,
		patterns:  patterns,
		remote:    remote,
	}
}

type pair struct {
	a, b string
}

// Resolve checks every pair in names. An unrecognized name yields a single
// invalid-input diagnostic instead of findings. The only error returned is
// the context's.
func (r *Resolver) Resolve(ctx context.Context, names []string) ([]entities.Interaction, error) {
	start := time.Now()

	if len(names) < 2 {
		return []entities.Interaction{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	validation := r.validator.ValidateMedications(names)
	if len(validation.Invalid) > 0 {
		logging.Info("Rejected interaction check",
			"medications", len(names),
			"invalid", len(validation.Invalid))
		result := []entities.Interaction{r.invalidInput(validation.Invalid)}
		metrics.ObserveResolution(OutcomeInvalidInput, nil, time.Since(start))
		return result, nil
	}

	pairs := make([]pair, 0, len(names)*(len(names)-1)/2)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			pairs = append(pairs, pair{a: names[i], b: names[j]})
		}
	}

	// One remote session per check, so each drug is looked up once
	var session interfaces.RemoteSession
	if r.remote != nil {
		session = r.remote.NewSession()
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([][]entities.Interaction, len(pairs))
		slots   = make(chan struct{}, maxParallelPairs)
	)

	for idx, p := range pairs {
		wg.Add(1)
		go func(idx int, p pair) {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
			case <-ctx.Done():
				return
			}

			found := r.checkPair(ctx, p, session)
			if ctx.Err() != nil {
				return
			}

			mu.Lock()
			results[idx] = found
			mu.Unlock()
		}(idx, p)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logging.Debug("Interaction check cancelled", "pairs", len(pairs), "error", err)
		return nil, err
	}

	var all []entities.Interaction
	for _, found := range results {
		for _, interaction := range found {
			all = append(all, enrich(interaction))
		}
	}

	sortInteractions(all)
	out := dedupe(all)

	sources := make([]string, len(out))
	for i, interaction := range out {
		sources[i] = string(interaction.Source)
	}
	outcome := Outcome(out)
	metrics.ObserveResolution(outcome, sources, time.Since(start))

	logging.Info("Interaction check completed",
		"medications", len(names),
		"pairs", len(pairs),
		"raw_findings", len(all),
		"findings", len(out),
		"outcome", outcome,
		"duration_ms", time.Since(start).Milliseconds())

	return out, nil
}

// checkPair gathers findings for one pair from every source. session is
// nil when remote lookups are disabled.
func (r *Resolver) checkPair(ctx context.Context, p pair, session interfaces.RemoteSession) []entities.Interaction {
	found := r.lookup.Lookup(p.a, p.b)
	curated := len(found)

	pattern := 0
	if interaction, ok := r.patterns.Detect(p.a, p.b); ok {
		found = append(found, interaction)
		pattern = 1
	}

	remote := 0
	if session != nil {
		hits := session.Interactions(ctx, p.a, p.b)
		found = append(found, hits...)
		remote = len(hits)
	}

	logging.Debug("Checked pair",
		"drug1", p.a,
		"drug2", p.b,
		"dataset", curated,
		"pattern", pattern,
		"remote", remote)

	return found
}

// Suggestions returns autocomplete candidates for a partial name.
func (r *Resolver) Suggestions(partial string, max int) []string {
	return r.names.Suggest(partial, max)
}

// Describe profiles each recognized name with its matched entry, alias
// family, drug classes and pattern categories. Unrecognized names are
// skipped.
func (r *Resolver) Describe(names []string) []entities.DrugProfile {
	profiles := make([]entities.DrugProfile, 0, len(names))
	for _, name := range names {
		canonical := r.names.Canonicalize(name)
		if !canonical.IsRecognized {
			continue
		}

		profile := entities.DrugProfile{
			Name:         name,
			MatchedEntry: canonical.MatchedEntry,
			Classes:      r.lookup.ClassesOf(name),
			Categories:   r.patterns.Categories(name),
		}
		if family, ok := r.names.Family(name); ok {
			profile.Family = family
		}
		if profile.Classes == nil {
			profile.Classes = []string{}
		}
		if profile.Categories == nil {
			profile.Categories = []string{}
		}
		profiles = append(profiles, profile)
	}
	return profiles
}

// invalidInput builds the diagnostic listing the unrecognized names.
func (r *Resolver) invalidInput(invalid []string) entities.Interaction {
	quoted := make([]string, len(invalid))
	for i, name := range invalid {
		quoted[i] = fmt.Sprintf("%q", name)
	}

	verb := "is not a valid medicine name"
	if len(invalid) > 1 {
		verb = "are not valid medicine names"
	}

	sideEffects := []string{
		"Cannot check drug interactions",
		"Invalid medicine names provided",
		"Please verify correct spellings",
	}
	for _, name := range invalid {
		if hints := r.corrections(name); len(hints) > 0 {
			sideEffects = append(sideEffects,
				fmt.Sprintf("Did you mean %s instead of %q?", strings.Join(hints, ", "), name))
		}
	}

	return entities.Interaction{
		Drug1:    InvalidDrug1,
		Drug2:    InvalidDrug2,
		Severity: entities.SeverityMild,
		Description: fmt.Sprintf("WRONG INPUT DETECTED: %s %s. Please enter correct medicine names only.",
			strings.Join(quoted, ", "), verb),
		Recommendation: "Please check the spelling and use proper generic or brand names (e.g., Aspirin, Ibuprofen, Warfarin, Xanax).",
		Source:         entities.SourceInputValidation,
		SimpleSummary:  "WRONG INPUT - Invalid medicine names entered",
		SideEffects:    sideEffects,
		WhatToAvoid: []string{
			"Using random or incorrect names",
			"Misspelled medicine names",
			"Non-medicine substances",
			"Not checking with pharmacist for correct names",
		},
		InvalidNames: slices.Clone(invalid),
	}
}

// corrections suggests known names for a misspelling, retrying with
// shorter prefixes ("warfrin" -> "warf") down to three characters.
func (r *Resolver) corrections(name string) []string {
	runes := []rune(strings.TrimSpace(name))
	if hints := r.names.Suggest(string(runes), correctionHints); len(hints) > 0 {
		return hints
	}
	for n := len(runes) - 1; n >= 3; n-- {
		if hints := r.names.Suggest(string(runes[:n]), correctionHints); len(hints) > 0 {
			return hints
		}
	}
	return nil
}

// Outcome classifies a Resolve result from its content alone.
func Outcome(result []entities.Interaction) string {
	if len(result) == 1 && result[0].IsInvalidInput() {
		return OutcomeInvalidInput
	}
	if len(result) == 0 {
		return OutcomeNoInteractions
	}
	return OutcomeInteractionsFound
}
