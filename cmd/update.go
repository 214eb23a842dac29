package cmd

import (
	"github.com/huangsam/relicdb/core"
	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/feed"
	"github.com/huangsam/relicdb/internal/outwriter"
	"github.com/spf13/cobra"
)

// updateCmd adds records for roster characters missing from the database.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Add weight records for new characters.",
	Long: `Fetch the character roster and relic recommendation feeds, then add a weight
record for every roster character that the database does not hold yet.

Existing records are never modified. Running update twice against unchanged
feeds leaves the database byte-identical. Characters whose recommendation
cannot be applied are reported and retried on the next run. If any feed is
incomplete, no records are added and new characters wait for the next run.

Examples:
  # Update the database in the current directory
  relicdb update

  # Preview what would be added
  relicdb update --dry-run --output json

  # Include minor-stat weights and max scores
  relicdb update --refine

  # Rebuild from previously cached feeds without network access
  relicdb update --offline`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		src := feed.NewClient(cfg.Timeout, cfg.UserAgent)
		if err := core.ExecuteUpdate(rootCtx, cfg, cacheManager, src, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot update database", err)
		}
	},
}
