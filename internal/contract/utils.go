package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/relicdb/schema"
)

// Weight label constants.
const (
	PrimaryValue  = "Primary"  // recommended for the slot
	FallbackValue = "Fallback" // recommended elsewhere or runner-up
	UnsetValue    = "Unset"    // never recommended
	CustomValue   = "Custom"   // any other hand-tuned value
)

// Color variables for console output.
var (
	PrimaryColor  = color.New(color.FgGreen, color.Bold)
	FallbackColor = color.New(color.FgYellow)
	UnsetColor    = color.New(color.FgHiBlack)
	CustomColor   = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text label describing a main-stat weight.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(weight float64) string {
	switch weight {
	case schema.PrimaryWeight:
		return PrimaryValue
	case schema.FallbackWeight:
		return FallbackValue
	case schema.UnsetWeight:
		return UnsetValue
	default:
		return CustomValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(weight float64) string {
	text := GetPlainLabel(weight)

	switch text {
	case PrimaryValue:
		return PrimaryColor.Sprint(text)
	case FallbackValue:
		return FallbackColor.Sprint(text)
	case UnsetValue:
		return UnsetColor.Sprint(text)
	default:
		return CustomColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for feed caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".relicdb_cache.db"
	}
	return filepath.Join(homeDir, ".relicdb_cache.db")
}

// GetRunDBFilePath returns the path to the SQLite DB file for run history.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".relicdb_runs.db"
	}
	return filepath.Join(homeDir, ".relicdb_runs.db")
}

// SplitIDs parses a comma-separated id list, dropping blanks.
func SplitIDs(s string) []string {
	var ids []string
	for part := range strings.SplitSeq(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
