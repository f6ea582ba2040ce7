package contract

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitLogger installs a colorized slog handler on stderr as the default logger.
// Verbose mode lowers the level to debug.
func InitLogger(verbose bool) {
	slog.SetDefault(NewLogger(os.Stderr, verbose))
}

// NewLogger builds the tint-backed logger used across the CLI.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  verbose,
	})
	return slog.New(handler)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	slog.Warn(msg, "error", err)
}
