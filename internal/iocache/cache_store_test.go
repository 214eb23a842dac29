package iocache

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("relicdb_feed_cache"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("feeds; DROP TABLE x"))
	assert.Error(t, validateTableName("1feeds"))
}

func TestQuoteTableNameAndPlaceholder(t *testing.T) {
	assert.Equal(t, "`t`", quoteTableName("t", schema.MySQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.PostgreSQLBackend))
	assert.Equal(t, `"t"`, quoteTableName("t", schema.SQLiteBackend))
	assert.Equal(t, "$3", placeholder(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?", placeholder(schema.MySQLBackend, 3))
}

func TestCacheStore_NoneBackend(t *testing.T) {
	store, err := NewCacheStore(feedCacheTable, schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestCacheStore_SQLite(t *testing.T) {
	store, err := NewCacheStore(feedCacheTable, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, _, _, err = store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.Set("a", []byte(`[1]`), 1, 100))
	require.NoError(t, store.Set("a", []byte(`[1,2]`), 2, 200))
	require.NoError(t, store.Set("b", []byte(`[]`), 1, 50))

	value, version, ts, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(200), ts)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, int64(200), status.LastEntryTime.Unix())
	assert.Equal(t, int64(50), status.OldestEntryTime.Unix())

	var buf bytes.Buffer
	PrintCacheStatus(&buf, status)
	assert.Contains(t, buf.String(), "Total Entries: 2")
}

func TestCacheStore_InvalidTableName(t *testing.T) {
	_, err := NewCacheStore("bad name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)
}

func TestCacheStore_UnsupportedBackend(t *testing.T) {
	_, err := NewCacheStore(feedCacheTable, schema.DatabaseBackend("redis"), "")
	assert.Error(t, err)
}

func TestClearCacheAndRuns(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.db")

	store, err := NewCacheStore(feedCacheTable, schema.SQLiteBackend, cachePath)
	require.NoError(t, err)
	require.NoError(t, store.Set("a", []byte("x"), 1, 1))
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, cachePath, ""))
	assert.NoFileExists(t, cachePath)

	// Clearing a missing file is not an error.
	assert.NoError(t, ClearRuns(schema.SQLiteBackend, filepath.Join(dir, "missing.db"), ""))
	assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearRuns(schema.DatabaseBackend("redis"), "", ""))
}
