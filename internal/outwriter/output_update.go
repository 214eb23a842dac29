package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"

	"github.com/olekukonko/tablewriter"
)

// addedCharacter is the JSON view of a character added by an update.
type addedCharacter struct {
	ID          string `json:"id"`
	DamageType  string `json:"damage_type"`
	Recommended bool   `json:"recommended"`
}

// failedCharacter is the JSON view of a character whose derivation failed.
type failedCharacter struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// updateSummary is the JSON view of an update run.
type updateSummary struct {
	Database   string            `json:"database"`
	DryRun     bool              `json:"dry_run"`
	RosterSize int               `json:"roster_size"`
	Records    int               `json:"records"`
	Skipped    int               `json:"skipped"`
	Added      []addedCharacter  `json:"added"`
	Failed     []failedCharacter `json:"failed"`
	DurationMs int64             `json:"duration_ms"`
}

// WriteUpdateSummary prints the outcome of an update run. records is the size
// of the resulting database.
func WriteUpdateSummary(report schema.MergeReport, rosterSize, records int, cfg *contract.Config, duration time.Duration) error {
	summary := updateSummary{
		Database:   cfg.DBPath,
		DryRun:     cfg.DryRun,
		RosterSize: rosterSize,
		Records:    records,
		Skipped:    len(report.Skipped),
		Added:      make([]addedCharacter, 0, len(report.Added)),
		Failed:     make([]failedCharacter, 0, len(report.Failed)),
		DurationMs: duration.Milliseconds(),
	}
	for _, c := range report.Added {
		id := c.ID.String()
		summary.Added = append(summary.Added, addedCharacter{ID: id, DamageType: string(c.DamageType), Recommended: report.Matched[id]})
	}
	for _, f := range report.Failed {
		summary.Failed = append(summary.Failed, failedCharacter{ID: f.Character.ID.String(), Error: f.Err.Error()})
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, summary)
		}, "Wrote YAML")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeUpdateTable(w, summary, duration)
		}, "Wrote table")
	}
}

// writeUpdateTable renders added and failed characters followed by totals.
func writeUpdateTable(w io.Writer, s updateSummary, duration time.Duration) error {
	if len(s.Added) > 0 || len(s.Failed) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Character", "Damage Type", "Status", "Detail"})

		var data [][]string
		for _, a := range s.Added {
			detail := "no recommendation"
			if a.Recommended {
				detail = "recommended"
			}
			data = append(data, []string{a.ID, a.DamageType, schema.OutcomeAdded, detail})
		}
		for _, f := range s.Failed {
			data = append(data, []string{f.ID, "", schema.OutcomeFailed, f.Error})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	verb := "Wrote"
	if s.DryRun {
		verb = "Dry run, would write"
	}
	if _, err := fmt.Fprintf(w, "Roster: %d, added: %d, skipped: %d, failed: %d\n",
		s.RosterSize, len(s.Added), s.Skipped, len(s.Failed)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %d records to %s in %v\n", verb, s.Records, s.Database, duration.Round(time.Millisecond))
	return err
}
