package core

import (
	"context"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/weightdb"
	"github.com/huangsam/relicdb/schema"
)

// loadSelection reads the database and narrows it to cfg.Characters when set.
func loadSelection(cfg *contract.Config) (*schema.Database, error) {
	db, err := weightdb.Load(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if len(cfg.Characters) == 0 {
		return db, nil
	}
	return db.Subset(cfg.Characters)
}

// ExecuteShow prints the selected records.
func ExecuteShow(_ context.Context, cfg *contract.Config, out contract.OutputWriter) error {
	db, err := loadSelection(cfg)
	if err != nil {
		return err
	}
	return out.WriteWeights(db, cfg)
}

// ExecuteExport writes the selected records as flattened rows.
func ExecuteExport(_ context.Context, cfg *contract.Config, out contract.OutputWriter) error {
	db, err := loadSelection(cfg)
	if err != nil {
		return err
	}
	return out.WriteExport(db, cfg)
}
