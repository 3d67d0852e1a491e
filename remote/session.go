package remote

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
	"github.com/giygas/interactions-api/normalizer"
	"golang.org/x/sync/singleflight"
)

// Session is the remote stage of one check. Each drug is resolved, listed
// and labelled at most once however many pairs it is part of, and every
// call shares one deadline.
type Session struct {
	client   *Client
	deadline time.Time

	group   singleflight.Group
	results sync.Map // lookup key -> memo

	expired sync.Once
}

type memo struct {
	value any
	ok    bool
}

// lookup runs fetch once per key for the life of the session. Concurrent
// callers for the same key wait for the first one.
func (s *Session) lookup(kind, name string, fetch func() (any, bool)) (any, bool) {
	key := kind + ":" + normalizer.Normalize(name)
	if m, ok := s.results.Load(key); ok {
		return m.(memo).value, m.(memo).ok
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		if m, ok := s.results.Load(key); ok {
			return m, nil
		}
		value, ok := fetch()
		m := memo{value: value, ok: ok}
		s.results.Store(key, m)
		return m, nil
	})
	m := v.(memo)
	return m.value, m.ok
}

func (s *Session) resolveID(ctx context.Context, name string) (string, bool) {
	v, ok := s.lookup("rxcui", name, func() (any, bool) {
		return s.client.rxnav.ResolveID(ctx, name)
	})
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *Session) interactionsForID(ctx context.Context, id string) ([]Finding, bool) {
	v, ok := s.lookup("interactions", id, func() (any, bool) {
		return s.client.rxnav.InteractionsForID(ctx, id)
	})
	if !ok {
		return nil, false
	}
	return v.([]Finding), true
}

func (s *Session) labelInfo(ctx context.Context, name string) *Label {
	v, ok := s.lookup("label", name, func() (any, bool) {
		return s.client.labels.LabelInfo(ctx, name)
	})
	if !ok {
		return nil
	}
	return v.(*Label)
}

// Interactions returns the remote findings for one pair. It never fails:
// each source that errors or runs past the session deadline simply
// contributes nothing.
func (s *Session) Interactions(ctx context.Context, drugA, drugB string) []entities.Interaction {
	ctx, cancel := context.WithDeadline(ctx, s.deadline)
	defer cancel()

	var (
		wg          sync.WaitGroup
		terminology []entities.Interaction
		label       []entities.Interaction
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		terminology = s.terminologyInteractions(ctx, drugA, drugB)
	}()
	go func() {
		defer wg.Done()
		label = s.labelInteractions(ctx, drugA, drugB)
	}()
	wg.Wait()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !time.Now().Before(s.deadline) {
		s.expired.Do(func() {
			metrics.RemoteFailures.WithLabelValues("session", "stage_timeout").Inc()
			logging.Warn("Remote lookups ran out of time, keeping local findings only",
				"stage_timeout", s.client.stageTimeout.String())
		})
	}

	return append(terminology, label...)
}

// terminologyInteractions resolves drugA and keeps the findings whose
// partner is drugB. When drugA is unknown it tries the other direction.
func (s *Session) terminologyInteractions(ctx context.Context, drugA, drugB string) []entities.Interaction {
	id, ok := s.resolveID(ctx, drugA)
	target := drugB
	if !ok {
		if id, ok = s.resolveID(ctx, drugB); !ok {
			return nil
		}
		target = drugA
	}

	findings, ok := s.interactionsForID(ctx, id)
	if !ok {
		return nil
	}

	var out []entities.Interaction
	for _, f := range findings {
		if !s.client.matcher.Match(f.PartnerName, target) {
			continue
		}
		severity := MapSeverity(f.Severity)
		out = append(out, entities.Interaction{
			Drug1:          drugA,
			Drug2:          drugB,
			Severity:       severity,
			Description:    f.Description,
			Recommendation: Recommendation(severity),
			Source:         entities.SourceRemoteTerminology,
		})
	}
	return out
}

// labelInteractions reports a finding only when each label's interaction
// section mentions the other drug.
func (s *Session) labelInteractions(ctx context.Context, drugA, drugB string) []entities.Interaction {
	var (
		wg             sync.WaitGroup
		labelA, labelB *Label
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		labelA = s.labelInfo(ctx, drugA)
	}()
	go func() {
		defer wg.Done()
		labelB = s.labelInfo(ctx, drugB)
	}()
	wg.Wait()

	if labelA == nil || labelB == nil {
		return nil
	}

	mentionsB := labelA.Mentions(drugB)
	mentionsA := labelB.Mentions(drugA)
	if len(mentionsB) == 0 || len(mentionsA) == 0 {
		return nil
	}

	return []entities.Interaction{{
		Drug1:             drugA,
		Drug2:             drugB,
		Severity:          entities.SeverityModerate,
		Description:       CleanText(strings.Join(append(mentionsB, mentionsA...), " ")),
		Recommendation:    LabelRecommendation,
		Source:            entities.SourceRemoteLabel,
		Warnings:          cleanAll(firstNonEmpty(labelA.Warnings, labelB.Warnings)),
		Contraindications: cleanAll(firstNonEmpty(labelA.Contraindications, labelB.Contraindications)),
	}}
}
