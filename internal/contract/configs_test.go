package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/relicdb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input populated like the CLI defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DB:           DefaultDBPath,
		Output:       "text",
		Precision:    DefaultPrecision,
		Color:        "yes",
		CacheBackend: "none",
		RunBackend:   "none",
		RosterURL:    DefaultRosterURLs,
		RecommendURL: DefaultRecommendURLs,
		SubAffixURL:  DefaultSubAffixURLs,
		MainAffixURL: DefaultMainAffixURLs,
		Timeout:      "30s",
		MatchPolicy:  "last",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{"valid defaults", func(*ConfigRawInput) {}, false},
		{"empty db path", func(in *ConfigRawInput) { in.DB = "  " }, true},
		{"invalid output", func(in *ConfigRawInput) { in.Output = "xml" }, true},
		{"uppercase output", func(in *ConfigRawInput) { in.Output = "JSON" }, false},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = 4 }, true},
		{"precision zero", func(in *ConfigRawInput) { in.Precision = 0 }, true},
		{"negative width", func(in *ConfigRawInput) { in.Width = -1 }, true},
		{"invalid color", func(in *ConfigRawInput) { in.Color = "maybe" }, true},
		{"invalid match policy", func(in *ConfigRawInput) { in.MatchPolicy = "middle" }, true},
		{"empty match policy", func(in *ConfigRawInput) { in.MatchPolicy = "" }, false},
		{"bad timeout", func(in *ConfigRawInput) { in.Timeout = "soon" }, true},
		{"negative timeout", func(in *ConfigRawInput) { in.Timeout = "-1s" }, true},
		{"non-http roster url", func(in *ConfigRawInput) { in.RosterURL = []string{"ftp://example.com/a.json"} }, true},
		{"relative recommend url", func(in *ConfigRawInput) { in.RecommendURL = []string{"AvatarRelicRecommend.json"} }, true},
		{"refine without subaffix", func(in *ConfigRawInput) {
			in.Refine = true
			in.SubAffixURL = nil
		}, true},
		{"main-affix without mainaffix url", func(in *ConfigRawInput) {
			in.MainAffix = true
			in.MainAffixURL = nil
		}, true},
		{"main-affix with defaults", func(in *ConfigRawInput) { in.MainAffix = true }, false},
		{"non-http mainaffix url", func(in *ConfigRawInput) { in.MainAffixURL = []string{"file:///tmp/a.json"} }, true},
		{"invalid cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }, true},
		{"invalid run backend", func(in *ConfigRawInput) { in.RunBackend = "redis" }, true},
		{"mysql without conn", func(in *ConfigRawInput) { in.RunBackend = "mysql" }, true},
		{"mysql with conn", func(in *ConfigRawInput) {
			in.RunBackend = "mysql"
			in.RunDBConnect = "user:pass@tcp(localhost:3306)/relicdb?parseTime=true"
		}, false},
		{"postgres missing dbname", func(in *ConfigRawInput) {
			in.CacheBackend = "postgresql"
			in.CacheDBConnect = "host=localhost user=postgres"
		}, true},
		{"offline without cache", func(in *ConfigRawInput) { in.Offline = true }, true},
		{"offline with cache", func(in *ConfigRawInput) {
			in.Offline = true
			in.CacheBackend = "sqlite"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.Timeout = ""
	input.UserAgent = ""
	input.MatchPolicy = ""
	input.CacheBackend = ""
	input.RunBackend = ""
	input.RosterURL = []string{" https://example.com/a.json ", "", "https://example.com/b.json"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, schema.LastMatch, cfg.MatchPolicy)
	assert.Equal(t, schema.NoneBackend, cfg.CacheBackend)
	assert.Equal(t, schema.NoneBackend, cfg.RunBackend)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, []string{"https://example.com/a.json", "https://example.com/b.json"}, cfg.RosterURLs)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateTimeoutAndPolicy(t *testing.T) {
	input := validInput()
	input.Timeout = "5s"
	input.MatchPolicy = "FIRST"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, schema.FirstMatch, cfg.MatchPolicy)
}

func TestValidateBackendConfigsSQLiteConflict(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "shared.db")

	input := validInput()
	input.CacheBackend = "sqlite"
	input.CacheDBConnect = shared
	input.RunBackend = "sqlite"
	input.RunDBConnect = shared
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input.RunDBConnect = filepath.Join(dir, "runs.db")
	assert.NoError(t, ProcessAndValidate(&Config{}, input))
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/db?parseTime=true", false},
		{"mysql no tcp", schema.MySQLBackend, "root:pw@localhost/db?parseTime=true", true},
		{"mysql unix socket", schema.MySQLBackend, "root:pw@unix(/tmp/mysql.sock)/db?parseTime=true", true},
		{"mysql no db", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/?parseTime=true", true},
		{"mysql no slash", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)", true},
		{"mysql without parseTime", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/db", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=relicdb", false},
		{"postgres no host", schema.PostgreSQLBackend, "dbname=relicdb", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{RosterURLs: []string{"https://a"}, Characters: []string{"1001"}}
	clone := cfg.Clone()
	clone.RosterURLs[0] = "https://b"
	clone.Characters = append(clone.Characters, "1002")
	assert.Equal(t, "https://a", cfg.RosterURLs[0])
	assert.Len(t, cfg.Characters, 1)
}
