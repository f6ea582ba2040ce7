package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/commentiq/schema"
)

// Color variables for console output.
var (
	PositiveColor = color.New(color.FgGreen, color.Bold) // PositiveColor marks favorable comments.
	NegativeColor = color.New(color.FgRed, color.Bold)   // NegativeColor marks unfavorable comments.
	NeutralColor  = color.New(color.FgYellow)            // NeutralColor marks everything in between.
)

// GetColorLabel returns a colored sentiment label for console output (table).
func GetColorLabel(label schema.SentimentLabel) string {
	text := string(label)
	switch label {
	case schema.Positive:
		return PositiveColor.Sprint(text)
	case schema.Negative:
		return NegativeColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for result caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".commentiq_cache.db"
	}
	return filepath.Join(homeDir, ".commentiq_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".commentiq_history.db"
	}
	return filepath.Join(homeDir, ".commentiq_history.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix.
// Newlines are flattened so table rows stay on one line.
// Requires maxWidth > 3 to leave room for the "..." suffix.
func TruncateText(text string, maxWidth int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return flat
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
