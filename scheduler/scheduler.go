// Package scheduler runs the background jobs of the interaction service:
// the initial dataset load, periodic reloads of the optional extra table,
// remote reachability probes and an hourly staleness watchdog.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// defaultProbeTimeout bounds one remote probe
const defaultProbeTimeout = 10 * time.Second

// Options configures the scheduled jobs. Zero intervals disable a job.
type Options struct {
	ReloadInterval time.Duration
	ProbeInterval  time.Duration
	ProbeTimeout   time.Duration
}

// Scheduler handles dataset reloads and remote probes using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	loader    interfaces.DatasetLoader
	remote    interfaces.RemoteSource // nil when remote lookups are disabled
	opts      Options
	scheduler *gocron.Scheduler

	done     chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// remote may be nil.
func NewScheduler(dataStore interfaces.DataStore, loader interfaces.DatasetLoader, remote interfaces.RemoteSource, opts Options) *Scheduler {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = defaultProbeTimeout
	}
	return &Scheduler{
		dataStore: dataStore,
		loader:    loader,
		remote:    remote,
		opts:      opts,
		scheduler: gocron.NewScheduler(time.Local),
		done:      make(chan struct{}),
	}
}

// Start loads the dataset once, then schedules reloads, probes and monitoring
func (s *Scheduler) Start() error {
	// Initial load
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	if s.opts.ReloadInterval > 0 {
		_, err := s.scheduler.Every(s.opts.ReloadInterval).WaitForSchedule().Do(func() {
			if err := s.updateData(); err != nil {
				logging.Error("Failed to reload dataset", "error", err)
			}
		})
		if err != nil {
			logging.Error("Failed to schedule dataset reloads", "error", err)
			return fmt.Errorf("failed to schedule dataset reloads: %w", err)
		}
	}

	if s.remote != nil {
		s.dataStore.SetRemoteStatus(interfaces.RemoteStatus{Enabled: true})

		if s.opts.ProbeInterval > 0 {
			// Runs once immediately, then every interval
			_, err := s.scheduler.Every(s.opts.ProbeInterval).Do(s.probeRemote)
			if err != nil {
				logging.Error("Failed to schedule remote probes", "error", err)
				return fmt.Errorf("failed to schedule remote probes: %w", err)
			}
		}
	}

	s.scheduler.StartAsync()

	// Start health monitoring
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduler and the watchdog
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.scheduler.Stop()
		close(s.done)
	})
}

// updateData builds a new snapshot and swaps it into the container
func (s *Scheduler) updateData() error {
	// Prevent concurrent updates
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()

	ds, err := s.loader.LoadDataset()
	if err != nil {
		logging.Error("Failed to load dataset", "error", err)
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// Atomic update; readers keep the old snapshot until they finish
	s.dataStore.UpdateDataset(ds)

	stats := ds.Stats()
	logging.Info("Dataset load completed", "duration", time.Since(start).String(), "records", stats.Records)

	return nil
}

// probeRemote checks the remote services and records the outcome
func (s *Scheduler) probeRemote() {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ProbeTimeout)
	defer cancel()

	previous := s.dataStore.GetRemoteStatus()
	err := s.remote.Probe(ctx)

	status := interfaces.RemoteStatus{
		Enabled:   true,
		Healthy:   err == nil,
		LastProbe: time.Now(),
	}
	if err != nil {
		status.LastError = err.Error()
		logging.Warn("Remote probe failed, serving local sources only", "error", err)
	} else if !previous.LastProbe.IsZero() && !previous.Healthy {
		logging.Info("Remote services reachable again")
	}

	s.dataStore.SetRemoteStatus(status)
}

// startHealthMonitoring warns hourly about a stale dataset or an unreachable remote
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.checkStaleness()
			}
		}
	}()
}

func (s *Scheduler) checkStaleness() {
	if s.opts.ReloadInterval > 0 {
		limit := 2*s.opts.ReloadInterval + time.Hour
		if age := time.Since(s.dataStore.GetLastUpdated()); age > limit {
			logging.Warn("Dataset hasn't been reloaded recently", "age", age.Round(time.Minute).String(), "limit", limit.String())
		}
	}

	if remote := s.dataStore.GetRemoteStatus(); remote.Enabled && !remote.LastProbe.IsZero() && !remote.Healthy {
		logging.Warn("Remote services still unreachable", "since", remote.LastProbe.Format(time.RFC3339), "error", remote.LastError)
	}
}
