package schema

import "time"

// CacheStatus represents the status of the feed cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunStatus represents the status of the run history store.
type RunStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalCharacters int              `json:"total_characters"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the relicdb_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RosterSize    int32
	Added         int32
	Failed        int32
	ConfigParams  *string
}

// Outcome statuses recorded per character.
const (
	OutcomeAdded  = "added"
	OutcomeFailed = "failed"
)

// CharacterOutcome represents a row from the relicdb_run_characters table.
type CharacterOutcome struct {
	RunID             int64
	CharacterID       string
	DamageType        string
	HasRecommendation bool
	Status            string
	ErrorMessage      *string
}

// MergeFailure pairs a character with the error that aborted its derivation.
type MergeFailure struct {
	Character Character
	Err       error
}

// MergeReport summarizes one merge of the roster into the database.
type MergeReport struct {
	Added   []Character    // inserted in this run, roster order
	Skipped []Character    // already present, left untouched
	Failed  []MergeFailure // derivation aborted, retried next run
	// Matched holds ids of added characters that had a recommendation entry.
	Matched map[string]bool
}
