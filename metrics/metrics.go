// Package metrics provides Prometheus metrics for the HTTP server and the
// interaction engine.
//
// HTTP metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - rate_limiter_buckets_total: Gauge of tracked client buckets
//
// Engine metrics:
//   - interaction_resolutions_total: Counter by outcome
//   - interaction_findings_total: Counter of returned findings by source
//   - interaction_resolve_duration_seconds: Histogram of Resolve latency
//   - remote_failures_total: Counter of remote calls that contributed nothing
//   - dataset_records: Gauge of loaded rows per table
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_resolutions_total",
			Help: "Interaction checks by outcome",
		},
		[]string{"outcome"},
	)

	FindingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_findings_total",
			Help: "Interactions returned to callers, by source",
		},
		[]string{"source"},
	)

	ResolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interaction_resolve_duration_seconds",
			Help:    "Time spent resolving one batch of medications",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	RemoteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_failures_total",
			Help: "Remote lookups that failed and contributed no findings",
		},
		[]string{"source", "operation"},
	)

	DatasetRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Curated interaction rows loaded, per table",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(FindingsTotal)
	prometheus.MustRegister(ResolveDuration)
	prometheus.MustRegister(RemoteFailures)
	prometheus.MustRegister(DatasetRecords)
}

// ObserveResolution records one finished Resolve call.
func ObserveResolution(outcome string, sources []string, elapsed time.Duration) {
	ResolutionsTotal.WithLabelValues(outcome).Inc()
	for _, s := range sources {
		FindingsTotal.WithLabelValues(s).Inc()
	}
	ResolveDuration.Observe(elapsed.Seconds())
}

// SetDatasetRecords replaces the per-table gauge values.
func SetDatasetRecords(tables map[string]int) {
	DatasetRecords.Reset()
	for name, n := range tables {
		DatasetRecords.WithLabelValues(name).Set(float64(n))
	}
}
