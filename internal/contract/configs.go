package contract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/relicdb/schema"
)

// Default values for configuration.
const (
	DefaultDBPath    = "ARDB4HSR.json"
	DefaultBaseURL   = "https://raw.githubusercontent.com/Dimbreath/StarRailData/master/ExcelOutput/"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "relicdb/1.0"
	DefaultPrecision = 1
	MaxPrecision     = 3
	DefaultAddr      = "127.0.0.1:8080"
)

// Default feed locations.
var (
	DefaultRosterURLs    = []string{DefaultBaseURL + "AvatarConfig.json"}
	DefaultRecommendURLs = []string{DefaultBaseURL + "AvatarRelicRecommend.json"}
	DefaultSubAffixURLs  = []string{DefaultBaseURL + "RelicSubAffixAvatarValue.json"}
	DefaultMainAffixURLs = []string{DefaultBaseURL + "RelicMainAffixAvatarValue.json"}
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	DBPath     string
	Characters []string // ids selected for show, empty means all

	RosterURLs    []string
	RecommendURLs []string
	SubAffixURLs  []string
	MainAffixURLs []string
	Timeout       time.Duration
	UserAgent     string
	Offline       bool

	MatchPolicy schema.MatchPolicy
	MainAffix   bool
	Refine      bool
	DryRun      bool

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Verbose    bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	Addr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Characters []string

	// --- Fields from rootCmd.PersistentFlags() ---
	DB             string `mapstructure:"db"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunBackend     string `mapstructure:"run-backend"`
	RunDBConnect   string `mapstructure:"run-db-connect"`

	// --- Fields from feed-reading commands ---
	RosterURL    []string `mapstructure:"roster-url"`
	RecommendURL []string `mapstructure:"recommend-url"`
	SubAffixURL  []string `mapstructure:"subaffix-url"`
	MainAffixURL []string `mapstructure:"mainaffix-url"`
	Timeout      string   `mapstructure:"timeout"`
	UserAgent    string   `mapstructure:"user-agent"`
	Offline      bool     `mapstructure:"offline"`
	MatchPolicy  string   `mapstructure:"match-policy"`
	MainAffix    bool     `mapstructure:"main-affix"`
	Refine       bool     `mapstructure:"refine"`

	// --- Fields from updateCmd.Flags() ---
	DryRun bool `mapstructure:"dry-run"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Characters = append([]string(nil), c.Characters...)
	clone.RosterURLs = append([]string(nil), c.RosterURLs...)
	clone.RecommendURLs = append([]string(nil), c.RecommendURLs...)
	clone.SubAffixURLs = append([]string(nil), c.SubAffixURLs...)
	clone.MainAffixURLs = append([]string(nil), c.MainAffixURLs...)
	return &clone
}

// ProcessAndValidate validates input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFeeds(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if cfg.Offline && cfg.CacheBackend == schema.NoneBackend {
		return errors.New("offline mode needs a feed cache; set cache-backend to sqlite, mysql or postgresql")
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		dsn, err := mysql.ParseDSN(connStr)
		if err != nil {
			return fmt.Errorf("invalid MySQL connection string: %w", err)
		}
		if dsn.Net != "tcp" {
			return fmt.Errorf("MySQL connection string must use tcp(host:port), got %q", dsn.Net)
		}
		if dsn.DBName == "" {
			return fmt.Errorf("MySQL connection string must name a database after '/'")
		}
		if !dsn.ParseTime {
			return fmt.Errorf("MySQL connection string must set parseTime=true")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-feed fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Characters = input.Characters
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.DryRun = input.DryRun
	cfg.Refine = input.Refine
	cfg.MainAffix = input.MainAffix
	cfg.Offline = input.Offline

	cfg.DBPath = strings.TrimSpace(input.DB)
	if cfg.DBPath == "" {
		return errors.New("db path cannot be empty")
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml, parquet, xlsx", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return nil
}

// processFeeds validates the feed locations and fetch settings.
func processFeeds(cfg *Config, input *ConfigRawInput) error {
	var err error
	if cfg.RosterURLs, err = parseFeedURLs("roster-url", input.RosterURL); err != nil {
		return err
	}
	if cfg.RecommendURLs, err = parseFeedURLs("recommend-url", input.RecommendURL); err != nil {
		return err
	}
	if cfg.SubAffixURLs, err = parseFeedURLs("subaffix-url", input.SubAffixURL); err != nil {
		return err
	}
	if cfg.MainAffixURLs, err = parseFeedURLs("mainaffix-url", input.MainAffixURL); err != nil {
		return err
	}
	if cfg.Refine && len(cfg.SubAffixURLs) == 0 {
		return errors.New("refine needs at least one subaffix-url")
	}
	if cfg.MainAffix && len(cfg.MainAffixURLs) == 0 {
		return errors.New("main-affix needs at least one mainaffix-url")
	}

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.Timeout = d
	}

	cfg.UserAgent = input.UserAgent
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	cfg.MatchPolicy = schema.MatchPolicy(strings.ToLower(input.MatchPolicy))
	if cfg.MatchPolicy == "" {
		cfg.MatchPolicy = schema.LastMatch
	}
	if _, ok := schema.ValidMatchPolicies[cfg.MatchPolicy]; !ok {
		return fmt.Errorf("invalid match policy '%s'. must be last, first", input.MatchPolicy)
	}
	return nil
}

// parseFeedURLs trims the list and checks that every entry is an http(s) URL.
func parseFeedURLs(name string, raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		u, err := url.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", name, r, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid %s %q: must be an http or https URL", name, r)
		}
		out = append(out, r)
	}
	return out, nil
}

// validateBackendConfigs validates cache and run backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Run Backend Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if cfg.RunBackend == "" {
		cfg.RunBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return fmt.Errorf("run-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		runPath := cfg.RunDBConnect
		if runPath == "" {
			runPath = GetRunDBFilePath()
		}
		if cachePath == runPath {
			return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}
