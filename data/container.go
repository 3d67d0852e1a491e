// Package data provides thread-safe storage for the interaction dataset.
// The DataContainer swaps whole dataset snapshots atomically so reloads
// never block or disturb resolutions in progress.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/interactions-api/dataset"
	"github.com/giygas/interactions-api/entities"
	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the current dataset with atomic pointers for zero-downtime updates
type DataContainer struct {
	dataset         atomic.Pointer[dataset.Dataset]
	lastUpdated     atomic.Value // time.Time
	remoteStatus    atomic.Value // interfaces.RemoteStatus
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with no dataset loaded
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.lastUpdated.Store(time.Time{})
	dc.remoteStatus.Store(interfaces.RemoteStatus{})
	dc.serverStartTime.Store(time.Time{}) // Initialize with zero value
	return dc
}

// GetDataset returns the current snapshot, or nil before the first load
func (dc *DataContainer) GetDataset() *dataset.Dataset {
	return dc.dataset.Load()
}

// HasData reports whether a dataset has been loaded
func (dc *DataContainer) HasData() bool {
	return dc.dataset.Load() != nil
}

// GetStats returns record counts of the current snapshot
func (dc *DataContainer) GetStats() dataset.Stats {
	ds := dc.dataset.Load()
	if ds == nil {
		return dataset.Stats{Tables: map[string]int{}}
	}
	return ds.Stats()
}

// Lookup queries the current snapshot. The snapshot is loaded once, so a
// concurrent reload does not affect this call.
func (dc *DataContainer) Lookup(drugA, drugB string) []entities.Interaction {
	ds := dc.dataset.Load()
	if ds == nil {
		logging.Warn("Dataset lookup before any dataset was loaded")
		return nil
	}
	return ds.Lookup(drugA, drugB)
}

// ClassesOf lists the classes of drug in the current snapshot.
func (dc *DataContainer) ClassesOf(drug string) []string {
	ds := dc.dataset.Load()
	if ds == nil {
		return nil
	}
	return ds.ClassesOf(drug)
}

// GetLastUpdated returns the timestamp of the last data update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a data update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// GetRemoteStatus returns the outcome of the last remote probe
func (dc *DataContainer) GetRemoteStatus() interfaces.RemoteStatus {
	if v := dc.remoteStatus.Load(); v != nil {
		if status, ok := v.(interfaces.RemoteStatus); ok {
			return status
		}
	}
	return interfaces.RemoteStatus{}
}

// SetRemoteStatus records the outcome of a remote probe
func (dc *DataContainer) SetRemoteStatus(status interfaces.RemoteStatus) {
	dc.remoteStatus.Store(status)
}

// UpdateDataset atomically replaces the dataset snapshot
func (dc *DataContainer) UpdateDataset(ds *dataset.Dataset) {
	if ds == nil {
		logging.Warn("Ignoring nil dataset update")
		return
	}

	// Atomic swap (zero downtime replacement)
	dc.dataset.Store(ds)
	dc.lastUpdated.Store(time.Now())

	stats := ds.Stats()
	metrics.SetDatasetRecords(stats.Tables)
	logging.Info("Dataset updated", "records", stats.Records, "tables", len(stats.Tables), "classes", stats.Classes)
}

// BeginUpdate marks the start of a data update operation
// Returns true if update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
