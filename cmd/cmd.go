// Package cmd defines the command-line interface for relicdb.
package cmd

import (
	"strings"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("db", contract.DefaultDBPath, "Path to the weight database file")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or json or csv or yaml or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for weight columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Trace per-character decisions to stderr")
	rootCmd.PersistentFlags().StringSlice("roster-url", contract.DefaultRosterURLs, "Character roster feed URLs, concatenated in order")
	rootCmd.PersistentFlags().StringSlice("recommend-url", contract.DefaultRecommendURLs, "Relic recommendation feed URLs, concatenated in order")
	rootCmd.PersistentFlags().StringSlice("subaffix-url", contract.DefaultSubAffixURLs, "Sub-affix value feed URLs used by --refine")
	rootCmd.PersistentFlags().StringSlice("mainaffix-url", contract.DefaultMainAffixURLs, "Main-affix value feed URLs used by --main-affix")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout for each feed request")
	rootCmd.PersistentFlags().String("user-agent", contract.DefaultUserAgent, "User-Agent header for feed requests")
	rootCmd.PersistentFlags().Bool("offline", false, "Read feeds from the feed cache only")
	rootCmd.PersistentFlags().String("match-policy", string(schema.LastMatch), "Recommendation entry used when ids repeat: first or last")
	rootCmd.PersistentFlags().Bool("main-affix", false, "Overwrite rolled main-stat weights from the main-affix feed")
	rootCmd.PersistentFlags().Bool("refine", false, "Fill minor-stat weights and max score from the sub-affix feed")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Feed cache backend: "+backendChoices)
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("run-backend", "", "Run history backend: "+backendChoices)
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of updateCmd to Viper
	updateCmd.Flags().Bool("dry-run", false, "Derive and report new records without writing the database")
	if err := viper.BindPFlags(updateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding update flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}

// backendChoices lists the accepted store backends for flag help.
var backendChoices = strings.Join([]string{
	string(schema.SQLiteBackend),
	string(schema.MySQLBackend),
	string(schema.PostgreSQLBackend),
	string(schema.NoneBackend),
}, " or ")
