// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/relicdb/schema"
)

// FeedSource fetches raw feed documents.
// This allows the update pipeline to be tested without the network.
type FeedSource interface {
	// Fetch returns the body of url. Failures wrap schema.ErrFeedUnavailable.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetFeedStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking update runs and their per-character outcomes.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordCharacter stores the outcome of one character in a run
	RecordCharacter(runID int64, outcome schema.CharacterOutcome) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, rosterSize, added, failed int) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves every run ordered by id
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllCharacterOutcomes retrieves every outcome ordered by run and character
	GetAllCharacterOutcomes() ([]schema.CharacterOutcome, error)

	// Close closes the underlying connection
	Close() error
}

// OutputWriter renders command results in the configured output format.
// This allows orchestration to be tested without touching stdout.
type OutputWriter interface {
	WriteWeights(db *schema.Database, cfg *Config) error
	WriteExport(db *schema.Database, cfg *Config) error
	WriteUpdateSummary(report schema.MergeReport, rosterSize, records int, cfg *Config, duration time.Duration) error
}
