// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
	"golang.org/x/term"
)

// getTerminalWidth returns the configured width override or the detected terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTableTextWidth calculates the maximum width for comment text in table output
// based on terminal width and table configuration.
func getMaxTableTextWidth(cfg *contract.Config) int {
	termWidth := getTerminalWidth(cfg)

	// Reserve space for fixed columns with table formatting
	baseWidth := 40 // Rank + Score + Label + Confidence with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 70 // Summary + Key Phrases + Words + Sentences + Readability
	}

	// Add cross-check column
	if cfg.Crosscheck {
		baseWidth += 10
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}

// formatLabel colors a sentiment label when colors are enabled.
func formatLabel(label schema.SentimentLabel, cfg *contract.Config) string {
	if !cfg.UseColors {
		return string(label)
	}
	return contract.GetColorLabel(label)
}
