// Package remote queries the public terminology (RxNav) and label (openFDA)
// services for pairwise interactions. Every failure is absorbed here: the
// engine treats a broken remote exactly like one that found nothing.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giygas/interactions-api/interfaces"
)

const userAgent = "interactions-api/1.0"

// Matcher decides whether a remote partner name refers to an input name.
type Matcher interface {
	Match(tableName, input string) bool
}

// Compile-time check to ensure Client implements RemoteSource
var _ interfaces.RemoteSource = (*Client)(nil)

// Config holds the remote client settings.
type Config struct {
	RxNavBaseURL   string
	OpenFDABaseURL string
	Timeout        time.Duration // one call
	StageTimeout   time.Duration // every call of one session
	RatePerSecond  float64
}

// Client combines the terminology and label sources.
type Client struct {
	rxnav        *RxNavClient
	labels       *LabelClient
	matcher      Matcher
	stageTimeout time.Duration
}

// New builds a client. Zero values fall back to the public endpoints,
// a five second call timeout, an eight second stage and ten calls per
// second per service.
func New(cfg Config, matcher Matcher) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = 8 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 10
	}
	return &Client{
		rxnav:        NewRxNavClient(cfg.RxNavBaseURL, cfg.Timeout, cfg.RatePerSecond),
		labels:       NewLabelClient(cfg.OpenFDABaseURL, cfg.Timeout, cfg.RatePerSecond),
		matcher:      matcher,
		stageTimeout: cfg.StageTimeout,
	}
}

// NewSession starts the remote stage of one check. Its clock starts now.
func (c *Client) NewSession() interfaces.RemoteSession {
	return &Session{
		client:   c,
		deadline: time.Now().Add(c.stageTimeout),
	}
}

// Probe reports whether both services answer. Unlike the lookups it
// returns the error so the health check can show it.
func (c *Client) Probe(ctx context.Context) error {
	var errs []error
	if err := c.rxnav.Probe(ctx); err != nil {
		errs = append(errs, fmt.Errorf("rxnav: %w", err))
	}
	if err := c.labels.Probe(ctx); err != nil {
		errs = append(errs, fmt.Errorf("openfda: %w", err))
	}
	return errors.Join(errs...)
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

func cleanAll(texts []string) []string {
	var out []string
	for _, t := range texts {
		if cleaned := CleanText(t); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
