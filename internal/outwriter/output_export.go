package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/parquet"
	"github.com/huangsam/relicdb/schema"
	"github.com/xuri/excelize/v2"
)

// weightsSheet is the worksheet name used by the XLSX export.
const weightsSheet = "Weights"

// WriteExport writes every flattened weight of db in the configured format.
// Binary formats need an output file.
func WriteExport(db *schema.Database, cfg *contract.Config) error {
	rows, err := collectRows(db)
	if err != nil {
		return err
	}
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet export")
		}
		if err := parquet.WriteWeightsParquet(parquet.ConvertWeightRows(rows), cfg.OutputFile); err != nil {
			return err
		}
	case schema.XLSXOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for xlsx export")
		}
		if err := writeXLSXRows(rows, cfg.OutputFile); err != nil {
			return err
		}
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, nonNil(rows))
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, nonNil(rows))
		}, "Wrote YAML")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRows(w, rows, fmtFloat)
		}, "Wrote CSV")
	}

	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote %d rows to %s\n", len(rows), cfg.OutputFile)
	return nil
}

// nonNil keeps empty exports as [] rather than null.
func nonNil(rows []schema.WeightRow) []schema.WeightRow {
	if rows == nil {
		return []schema.WeightRow{}
	}
	return rows
}

// writeCSVRows writes flattened rows without labels.
func writeCSVRows(w io.Writer, rows []schema.WeightRow, fmtFloat func(float64) string) error {
	header := []string{"character_id", "section", "slot", "property", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{r.CharacterID, r.Section, r.Slot, r.Property, fmtFloat(r.Weight)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeXLSXRows writes flattened rows to a single worksheet.
func writeXLSXRows(rows []schema.WeightRow, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", weightsSheet); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := []any{"Character", "Section", "Slot", "Property", "Weight"}
	if err := f.SetSheetRow(weightsSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(weightsSheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.CharacterID, r.Section, r.Slot, r.Property, r.Weight}
		if err := f.SetSheetRow(weightsSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(weightsSheet, "A", "C", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(weightsSheet, "D", "D", 28); err != nil {
		return err
	}
	if err := f.SetPanes(weightsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save xlsx file: %w", err)
	}
	return nil
}
