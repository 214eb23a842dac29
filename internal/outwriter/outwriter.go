// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteWeights prints database records using the configured output format.
func (ow *OutWriter) WriteWeights(db *schema.Database, cfg *contract.Config) error {
	return WriteWeights(db, cfg)
}

// WriteExport writes flattened weight rows using the configured output format.
func (ow *OutWriter) WriteExport(db *schema.Database, cfg *contract.Config) error {
	return WriteExport(db, cfg)
}

// WriteUpdateSummary prints the outcome of an update run.
func (ow *OutWriter) WriteUpdateSummary(report schema.MergeReport, rosterSize, records int, cfg *contract.Config, duration time.Duration) error {
	return WriteUpdateSummary(report, rosterSize, records, cfg, duration)
}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check
