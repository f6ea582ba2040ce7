package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "nothing to strip here", "nothing to strip here"},
		{"emphasis", "this is **really** _great_", "this is really great"},
		{"link keeps text", "see [the docs](https://example.com/docs) please", "see the docs please"},
		{"bare url removed", "visit https://example.com now", "visit now"},
		{"heading and paragraph", "# Title\n\nBody text", "Title Body text"},
		{"list items", "- one\n- two", "one two"},
		{"inline code", "run `make test` first", "run make test first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripMarkdown(tt.input))
		})
	}
}
