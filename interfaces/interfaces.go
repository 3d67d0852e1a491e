// Package interfaces defines the contracts between the interaction engine
// components and the service around them, so each piece can be replaced
// by a spy or mock in tests.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/interactions-api/dataset"
	"github.com/giygas/interactions-api/entities"
)

// NameResolver maps free-text names onto known drugs.
type NameResolver interface {
	// IsRecognized reports whether a name refers to a known drug
	IsRecognized(name string) bool

	// Suggest returns autocomplete candidates, prefix matches first
	Suggest(partial string, limit int) []string

	// Match reports whether a dataset entry name refers to an input name
	Match(tableName, input string) bool

	// Canonicalize resolves a name to the known entry it matched
	Canonicalize(name string) entities.CanonicalDrug

	// Family returns the canonical generic of a brand or spelling
	Family(name string) (string, bool)
}

// InteractionLookup answers curated and class-level lookups for one pair.
type InteractionLookup interface {
	Lookup(drugA, drugB string) []entities.Interaction
	ClassesOf(drug string) []string
}

// PatternDetector recognizes dangerous drug categories in a pair.
type PatternDetector interface {
	Detect(drugA, drugB string) (entities.Interaction, bool)
	Categories(drug string) []string
}

// RemoteSource queries external services.
type RemoteSource interface {
	// NewSession starts the remote stage of one check. Per-drug lookups
	// are shared by every pair of the session.
	NewSession() RemoteSession

	// Probe checks reachability and returns the error for reporting
	Probe(ctx context.Context) error
}

// RemoteSession answers pair lookups for one check. Interactions never
// fails; an unavailable or slow service contributes no findings.
type RemoteSession interface {
	Interactions(ctx context.Context, drugA, drugB string) []entities.Interaction
}

// InputValidator gates engine input and request parameters.
type InputValidator interface {
	// ValidateMedications partitions names into recognized and unrecognized
	ValidateMedications(names []string) entities.ValidationResult

	// ValidateInput checks one user-supplied string for length and content
	ValidateInput(input string) error

	// ValidateMedicationList checks the size of a batch and every name in it
	ValidateMedicationList(names []string, max int) error
}

// InteractionResolver is the engine entry point.
type InteractionResolver interface {
	Resolve(ctx context.Context, names []string) ([]entities.Interaction, error)
	Suggestions(partial string, max int) []string

	// Describe profiles the recognized names, skipping the others
	Describe(names []string) []entities.DrugProfile
}

// RemoteStatus is the outcome of the last remote probe.
type RemoteStatus struct {
	Enabled   bool      `json:"enabled"`
	Healthy   bool      `json:"healthy"`
	LastProbe time.Time `json:"last_probe"`
	LastError string    `json:"last_error,omitempty"`
}

// DataStore defines the contract for the dataset container.
// It provides thread-safe access to the current dataset snapshot
// with atomic swaps for zero-downtime reloads.
type DataStore interface {
	InteractionLookup

	// Data retrieval methods
	GetDataset() *dataset.Dataset
	GetStats() dataset.Stats
	HasData() bool
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	GetRemoteStatus() RemoteStatus

	// Data update methods
	UpdateDataset(ds *dataset.Dataset)
	SetRemoteStatus(status RemoteStatus)
	BeginUpdate() bool
	EndUpdate()
}

// DatasetLoader builds a fresh dataset snapshot for the container.
type DatasetLoader interface {
	LoadDataset() (*dataset.Dataset, error)
}

// Scheduler defines the contract for background jobs.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	CheckInteractions(w http.ResponseWriter, r *http.Request)
	CheckInteractionsQuery(w http.ResponseWriter, r *http.Request)
	Suggestions(w http.ResponseWriter, r *http.Request)
	ValidateNames(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health reporting.
type HealthChecker interface {
	// HealthCheck returns the status, report fields and HTTP status code
	HealthCheck() (status string, details map[string]any, httpStatus int)
}
