package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
	"golang.org/x/time/rate"
)

// Largest response body decoded from a remote service.
const maxResponseSize = 5 * 1024 * 1024

// errNotFound is returned for 404 responses. openFDA answers searches
// without hits this way, so it is not counted as a failure.
var errNotFound = errors.New("not found")

// StatusError is returned for unexpected HTTP status codes.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// endpoint is one rate-limited JSON API.
type endpoint struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func newEndpoint(baseURL string, timeout time.Duration, perSecond float64, userAgent string) *endpoint {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &endpoint{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
		userAgent: userAgent,
	}
}

// getJSON waits for the limiter, issues a GET and decodes the body into out.
func (e *endpoint) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	u := e.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return &StatusError{URL: e.baseURL + path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// recordFailure logs and counts a remote call that contributed nothing.
// Caller cancellation and an exhausted session deadline are not remote
// failures; the session reports the latter once.
func recordFailure(ctx context.Context, source, operation string, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return
	}
	metrics.RemoteFailures.WithLabelValues(source, operation).Inc()
	logging.Warn("Remote lookup failed",
		"source", source,
		"operation", operation,
		"error", err,
	)
}
