package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/parquet"
)

// ExecuteRunsExport writes the run history of store to Parquet files named
// after outputFile.
func ExecuteRunsExport(w io.Writer, store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run tracking is disabled; set --run-backend to export run history")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total character records: %d\n", status.TableSizes[runCharactersTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	outcomes, err := store.GetAllCharacterOutcomes()
	if err != nil {
		return fmt.Errorf("failed to retrieve character outcomes: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	outcomesFile := outputFile + ".run_characters.parquet"
	parquetOutcomes := parquet.ConvertCharacterOutcomes(outcomes)
	if err := parquet.WriteCharacterOutcomesParquet(parquetOutcomes, outcomesFile); err != nil {
		return fmt.Errorf("failed to write character outcomes: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d character records to: %s\n", len(parquetOutcomes), outcomesFile)

	return nil
}
