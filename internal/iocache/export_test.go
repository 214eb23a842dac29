package iocache

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsExport(t *testing.T) {
	store := &MockRunStore{}
	store.On("GetStatus").Return(schema.RunStatus{
		Backend: "sqlite", Connected: true, TotalRuns: 1,
		TableSizes: map[string]int64{runsTable: 1, runCharactersTable: 1},
	}, nil)
	store.On("GetAllRuns").Return([]schema.RunRecord{{RunID: 1, RunUUID: "u", StartTime: time.Now()}}, nil)
	store.On("GetAllCharacterOutcomes").Return([]schema.CharacterOutcome{
		{RunID: 1, CharacterID: "1001", DamageType: "Ice", Status: schema.OutcomeAdded},
	}, nil)

	base := filepath.Join(t.TempDir(), "history")
	var buf bytes.Buffer
	require.NoError(t, ExecuteRunsExport(&buf, store, base))

	assert.FileExists(t, base+".runs.parquet")
	assert.FileExists(t, base+".run_characters.parquet")
	assert.Contains(t, buf.String(), "Exported 1 runs")
	store.AssertExpectations(t)
}

func TestExecuteRunsExportErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, ExecuteRunsExport(&buf, &MockRunStore{}, ""))
	assert.Error(t, ExecuteRunsExport(&buf, nil, "out"))

	empty := &MockRunStore{}
	empty.On("GetStatus").Return(schema.RunStatus{Connected: true}, nil)
	assert.ErrorContains(t, ExecuteRunsExport(&buf, empty, "out"), "no run data")

	broken := &MockRunStore{}
	broken.On("GetStatus").Return(schema.RunStatus{}, errors.New("boom"))
	assert.ErrorContains(t, ExecuteRunsExport(&buf, broken, "out"), "boom")
}

func TestStoreManagerDefaultsToDisabled(t *testing.T) {
	mgr := &StoreManager{}
	assert.Nil(t, mgr.GetFeedStore())
	assert.Nil(t, mgr.GetRunStore())
}
