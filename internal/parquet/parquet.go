// Package parquet provides data structures and functions for exporting relicdb
// weights and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/relicdb/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single update run with metadata.
// This struct maps to the relicdb_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	RosterSize int32 `parquet:"roster_size,snappy"`
	Added      int32 `parquet:"added,snappy"`
	Failed     int32 `parquet:"failed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CharacterOutcome represents the result for one character in a run.
// This struct maps to the relicdb_run_characters database table.
type CharacterOutcome struct {
	RunID             int64   `parquet:"run_id,snappy"`
	CharacterID       string  `parquet:"character_id,snappy"`
	DamageType        string  `parquet:"damage_type,snappy"`
	HasRecommendation bool    `parquet:"has_recommendation"`
	Status            string  `parquet:"status,snappy"`
	ErrorMessage      *string `parquet:"error_message,optional,snappy"`
}

// Weight is one flattened entry of a character's weight record.
type Weight struct {
	CharacterID string `parquet:"character_id,snappy"`

	// Section is main, weight or max
	Section string `parquet:"section,snappy"`

	// Slot is empty outside the main section
	Slot     string  `parquet:"slot,snappy"`
	Property string  `parquet:"property,snappy"`
	Weight   float64 `parquet:"weight,snappy"`
}

// writeParquet writes rows to outputPath using struct schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCharacterOutcomesParquet writes a slice of CharacterOutcome structs to a Parquet file.
func WriteCharacterOutcomesParquet(data []CharacterOutcome, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteWeightsParquet writes a slice of Weight structs to a Parquet file.
func WriteWeightsParquet(data []Weight, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord slice to the Parquet Run slice.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, r := range records {
		result[i] = Run{
			RunID:         r.RunID,
			RunUUID:       r.RunUUID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			RosterSize:    r.RosterSize,
			Added:         r.Added,
			Failed:        r.Failed,
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertCharacterOutcomes converts schema.CharacterOutcome slice to the Parquet slice.
func ConvertCharacterOutcomes(records []schema.CharacterOutcome) []CharacterOutcome {
	result := make([]CharacterOutcome, len(records))
	for i, r := range records {
		result[i] = CharacterOutcome{
			RunID:             r.RunID,
			CharacterID:       r.CharacterID,
			DamageType:        r.DamageType,
			HasRecommendation: r.HasRecommendation,
			Status:            r.Status,
			ErrorMessage:      r.ErrorMessage,
		}
	}
	return result
}

// ConvertWeightRows converts flattened weight rows to the Parquet Weight slice.
func ConvertWeightRows(rows []schema.WeightRow) []Weight {
	result := make([]Weight, len(rows))
	for i, r := range rows {
		result[i] = Weight{
			CharacterID: r.CharacterID,
			Section:     r.Section,
			Slot:        r.Slot,
			Property:    r.Property,
			Weight:      r.Weight,
		}
	}
	return result
}
