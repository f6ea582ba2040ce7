package outwriter

import (
	"io"

	"github.com/huangsam/commentiq/internal/contract"
)

// WriteReport writes a rendered plain-text report to --output-file or stdout.
func WriteReport(text string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		_, err := io.WriteString(w, text+"\n")
		return err
	}, "Wrote report")
}
