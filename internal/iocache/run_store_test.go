package iocache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), map[string]any{"refine": true})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.RecordCharacter(1, schema.CharacterOutcome{CharacterID: "1001"}))
	assert.NoError(t, store.EndRun(1, time.Now(), 1, 1, 0))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, store.Close())
}

func TestRunStore_SQLiteLifecycle(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"refine": false, "offline": true})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	msg := "character 1005: invalid property for slot"
	require.NoError(t, store.RecordCharacter(runID, schema.CharacterOutcome{
		CharacterID: "1001", DamageType: "Ice", HasRecommendation: true, Status: schema.OutcomeAdded,
	}))
	require.NoError(t, store.RecordCharacter(runID, schema.CharacterOutcome{
		CharacterID: "1005", DamageType: "Thunder", Status: schema.OutcomeFailed, ErrorMessage: &msg,
	}))
	require.NoError(t, store.EndRun(runID, start.Add(2*time.Second), 2, 1, 1))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Len(t, run.RunUUID, 36)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(2000), *run.RunDurationMs)
	assert.Equal(t, int32(2), run.RosterSize)
	assert.Equal(t, int32(1), run.Added)
	assert.Equal(t, int32(1), run.Failed)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"refine": false, "offline": true}`, *run.ConfigParams)

	outcomes, err := store.GetAllCharacterOutcomes()
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "1001", outcomes[0].CharacterID)
	assert.True(t, outcomes[0].HasRecommendation)
	assert.Nil(t, outcomes[0].ErrorMessage)
	assert.Equal(t, schema.OutcomeFailed, outcomes[1].Status)
	require.NotNil(t, outcomes[1].ErrorMessage)
	assert.Equal(t, msg, *outcomes[1].ErrorMessage)
}

func TestRunStore_Status(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		runID, err := store.BeginRun(first.Add(time.Duration(i)*time.Hour), nil)
		require.NoError(t, err)
		require.NoError(t, store.RecordCharacter(runID, schema.CharacterOutcome{
			CharacterID: "1001", DamageType: "Ice", Status: schema.OutcomeAdded,
		}))
	}

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, int64(3), status.LastRunID)
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.True(t, first.Add(2*time.Hour).Equal(status.LastRunTime))
	assert.Equal(t, 3, status.TotalCharacters)
	assert.Equal(t, int64(3), status.TableSizes[runsTable])

	var buf bytes.Buffer
	PrintRunStatus(&buf, status)
	assert.Contains(t, buf.String(), "Total Runs: 3")
	assert.Contains(t, buf.String(), "relicdb_run_characters: 3 rows")
}

func TestRunStore_DuplicateCharacterInRun(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	outcome := schema.CharacterOutcome{CharacterID: "1001", DamageType: "Ice", Status: schema.OutcomeAdded}
	require.NoError(t, store.RecordCharacter(runID, outcome))
	assert.Error(t, store.RecordCharacter(runID, outcome))
}

func TestMigrateRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	var buf bytes.Buffer

	require.NoError(t, MigrateRuns(&buf, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, buf.String(), "Successfully migrated")

	buf.Reset()
	require.NoError(t, MigrateRuns(&buf, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, buf.String(), "already at the latest version")

	// The migrated schema must be usable by the store.
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	buf.Reset()
	require.NoError(t, MigrateRuns(&buf, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, buf.String(), "to version 1")

	buf.Reset()
	require.NoError(t, MigrateRuns(&buf, schema.SQLiteBackend, dbPath, 0))
	assert.Contains(t, buf.String(), "rolled back")
}

func TestMigrateRuns_NoneBackend(t *testing.T) {
	err := MigrateRuns(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for NoneBackend")
}
