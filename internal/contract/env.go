package contract

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/subosito/gotenv"
)

// LoadEnvFile exports variables from a dotenv file into the process environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No env file found, using OS environment", "path", path)
			return nil
		}
		return err
	}
	slog.Debug("Loaded env file", "path", path)
	return nil
}
