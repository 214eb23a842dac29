package cmd

import (
	"github.com/huangsam/relicdb/core"
	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/outwriter"
	"github.com/spf13/cobra"
)

// showCmd renders stored records.
var showCmd = &cobra.Command{
	Use:   "show [character-id...]",
	Short: "Show stored weight records.",
	Long: `Render the weight records held in the database, per slot, with labels that
mark primary, fallback and unset weights.

Examples:
  # Show every record
  relicdb show

  # Show two characters as JSON
  relicdb show 1102 1205 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShow(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot show records", err)
		}
	},
}

// exportCmd flattens stored records into rows.
var exportCmd = &cobra.Command{
	Use:   "export [character-id...]",
	Short: "Export stored weights as flat rows.",
	Long: `Flatten the database into one row per weight (character, section, slot,
property, weight) for spreadsheets and analytics tools.

Parquet and XLSX need --output-file.

Examples:
  # Export everything to Parquet
  relicdb export --output parquet --output-file weights.parquet

  # Export one character to CSV on stdout
  relicdb export 1102 --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot export records", err)
		}
	},
}
