// Package health reports service health from the dataset container and
// the last remote probe.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/interactions-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore     interfaces.DataStore
	probeInterval time.Duration
}

// NewHealthChecker creates a new health checker with injected dependencies.
// probeInterval is only used to report the next probe time.
func NewHealthChecker(dataStore interfaces.DataStore, probeInterval time.Duration) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore:     dataStore,
		probeInterval: probeInterval,
	}
}

// HealthCheck returns the status, report fields and HTTP code for /health.
// A failed remote probe degrades but does not fail the service, since the
// engine still answers from its local sources.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	stats := h.dataStore.GetStats()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	remote := h.dataStore.GetRemoteStatus()

	switch {
	case !h.dataStore.HasData():
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case remote.Enabled && !remote.LastProbe.IsZero() && !remote.Healthy:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"dataset": map[string]any{
			"tables":  stats.Tables,
			"records": stats.Records,
			"classes": stats.Classes,
		},
		"is_updating": isUpdating,
		"remote":      h.remoteReport(remote),
	}

	if !lastUpdate.IsZero() {
		data["last_update"] = lastUpdate.Format(time.RFC3339)
		data["data_age_hours"] = math.Round(time.Since(lastUpdate).Hours()*10) / 10
	}

	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		data["uptime_seconds"] = math.Round(time.Since(start).Seconds())
	}

	return status, data, httpStatus
}

func (h *HealthCheckerImpl) remoteReport(remote interfaces.RemoteStatus) map[string]any {
	report := map[string]any{
		"enabled": remote.Enabled,
	}
	if !remote.Enabled {
		return report
	}

	report["healthy"] = remote.Healthy
	if remote.LastError != "" {
		report["last_error"] = remote.LastError
	}
	if !remote.LastProbe.IsZero() {
		report["last_probe"] = remote.LastProbe.Format(time.RFC3339)
		if h.probeInterval > 0 {
			report["next_probe"] = h.CalculateNextProbe(remote.LastProbe).Format(time.RFC3339)
		}
	}
	return report
}

// CalculateNextProbe returns when the next remote probe is due
func (h *HealthCheckerImpl) CalculateNextProbe(lastProbe time.Time) time.Time {
	next := lastProbe.Add(h.probeInterval)
	if now := time.Now(); next.Before(now) {
		return now
	}
	return next
}
