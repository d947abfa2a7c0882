package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/groupstats/schema"
)

// Color variables for console output.
var (
	MaxColor = color.New(color.FgGreen, color.Bold) // MaxColor marks a column maximum.
	MinColor = color.New(color.FgRed)               // MinColor marks a column minimum.
)

// HighlightCell wraps text in the color for the given extremum flags.
// A cell that is both maximum and minimum (a single row, or a column of equal
// values) is rendered as a maximum.
func HighlightCell(text string, e schema.Extremum) string {
	switch {
	case e&schema.IsMax != 0:
		return MaxColor.Sprint(text)
	case e&schema.IsMin != 0:
		return MinColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
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

// GetAliasStoreFilePath returns the default location of the alias store.
func GetAliasStoreFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".groupstats_aliases"
	}
	return filepath.Join(homeDir, ".groupstats_aliases")
}

// GetCacheDBFilePath returns the path to the SQLite DB file for the history cache.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".groupstats_cache.db"
	}
	return filepath.Join(homeDir, ".groupstats_cache.db")
}

// TruncateName truncates an identity to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one rune.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
