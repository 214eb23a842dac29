package cmd

import (
	"github.com/huangsam/relicdb/internal/feed"
	"github.com/huangsam/relicdb/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the relicdb MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents read stored weights and
derive weights for a character via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		src := feed.NewClient(cfg.Timeout, cfg.UserAgent)
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, src)
	},
}
