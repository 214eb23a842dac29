// Package weightdb loads and saves the weights database file.
package weightdb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// Indent is the indentation used when writing the database file.
const Indent = "    "

// Load reads the database at path. A missing file yields an empty database.
func Load(path string) (*schema.Database, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		contract.Logger.Debug().Str("path", path).Msg("database file missing, starting empty")
		return schema.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	db, err := schema.DecodeDatabase(file)
	if err != nil {
		return nil, fmt.Errorf("read database %s: %w", path, err)
	}
	return db, nil
}

// Save writes db to path. The file is written next to its destination and
// renamed into place so readers never observe a partial database.
func Save(path string, db *schema.Database) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := db.Encode(tmp, Indent); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace database %s: %w", path, err)
	}
	contract.Logger.Debug().Str("path", path).Int("records", db.Len()).Msg("database saved")
	return nil
}
