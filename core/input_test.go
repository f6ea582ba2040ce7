package core

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"blank lines only", "\n  \n\t\n", nil},
		{"trims and skips blanks", "  first line \n\n second line\n", []string{"first line", "second line"}},
		{"windows line endings", "one\r\ntwo\r\n", []string{"one", "two"}},
		{"no trailing newline", "only", []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadTextLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("line too long", func(t *testing.T) {
		_, err := ReadTextLines(strings.NewReader(strings.Repeat("a", maxLineBytes+1)))
		assert.ErrorContains(t, err, "failed to read input")
	})
}

func TestReadInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comments.txt")
	require.NoError(t, os.WriteFile(path, []byte("Great app\n\nTerrible support\n"), 0o644))

	lines, err := readInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Great app", "Terrible support"}, lines)

	_, err = readInputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to open input file")
}
