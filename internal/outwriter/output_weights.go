package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteWeights outputs database records, dispatching based on the output format configured.
func WriteWeights(db *schema.Database, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return db.Encode(w, "  ")
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAMLWeights(w, db)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWeights(w, db, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightTables(w, db, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// collectRows flattens every record of db in key order.
func collectRows(db *schema.Database) ([]schema.WeightRow, error) {
	var rows []schema.WeightRow
	for _, id := range db.Keys() {
		table, err := db.Table(id)
		if err != nil {
			return nil, err
		}
		rows = append(rows, table.Rows(id)...)
	}
	return rows, nil
}

// writeYAMLWeights writes the map view of every record.
func writeYAMLWeights(w io.Writer, db *schema.Database) error {
	tables := make(map[string]schema.WeightTable, db.Len())
	for _, id := range db.Keys() {
		table, err := db.Table(id)
		if err != nil {
			return err
		}
		tables[id] = table
	}
	return writeYAML(w, tables)
}

// writeCSVWeights writes one line per flattened weight.
func writeCSVWeights(w io.Writer, db *schema.Database, fmtFloat func(float64) string) error {
	rows, err := collectRows(db)
	if err != nil {
		return err
	}
	header := []string{"character_id", "section", "slot", "property", "weight", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{r.CharacterID, r.Section, r.Slot, r.Property, fmtFloat(r.Weight), rowLabel(r, contract.GetPlainLabel)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeWeightTables renders one table per character.
func writeWeightTables(w io.Writer, db *schema.Database, cfg *contract.Config, fmtFloat func(float64) string) error {
	if db.Len() == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	withLabels := showLabels(cfg)
	labeler := contract.GetPlainLabel
	if cfg.UseColors {
		labeler = contract.GetColorLabel
	}

	for _, id := range db.Keys() {
		table, err := db.Table(id)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Character %s\n", id); err != nil {
			return err
		}

		tbl := tablewriter.NewWriter(w)
		headers := []string{"Slot", "Property", "Weight"}
		if withLabels {
			headers = append(headers, "Label")
		}
		tbl.Header(headers)
		tbl.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft}
		})

		var data [][]string
		for _, r := range table.Rows(id) {
			if r.Section == schema.MaxSection {
				continue
			}
			row := []string{slotName(r), r.Property, fmtFloat(r.Weight)}
			if withLabels {
				row = append(row, rowLabel(r, labeler))
			}
			data = append(data, row)
		}
		if err := tbl.Bulk(data); err != nil {
			return err
		}
		if err := tbl.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Max score: %s\n\n", fmtFloat(table.Max)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Showing %d characters\n", db.Len())
	return err
}

// rowLabel labels main-stat weights. Minor weights and max carry no label.
func rowLabel(r schema.WeightRow, labeler func(float64) string) string {
	if r.Section != schema.MainSection {
		return ""
	}
	return labeler(r.Weight)
}

// slotName renders a slot id with its feed token, e.g. "3 BODY".
func slotName(r schema.WeightRow) string {
	if r.Section != schema.MainSection {
		return "minor"
	}
	for token, id := range schema.SlotTokens {
		if string(id) == r.Slot {
			return r.Slot + " " + string(token)
		}
	}
	return r.Slot
}
