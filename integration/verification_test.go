//go:build basic

// Package integration contains integration tests for commentiq.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAnalyses(t *testing.T, out string) []schema.EnrichedAnalysis {
	t.Helper()
	var analyses []schema.EnrichedAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &analyses), out)
	return analyses
}

// TestAnalyzeVerification runs analyze and checks the JSON it prints.
func TestAnalyzeVerification(t *testing.T) {
	w := newWorkspace(t)

	out, err := w.run(t, "analyze", "--output", "json", "--no-save",
		"I love this phone, the camera is excellent and amazing!",
		"Terrible battery. It broke after one day and support was awful.")
	require.NoError(t, err)

	analyses := decodeAnalyses(t, out)
	require.Len(t, analyses, 2)
	assert.Equal(t, schema.Positive, analyses[0].Sentiment.Label)
	assert.Equal(t, schema.Negative, analyses[1].Sentiment.Label)
	assert.Equal(t, 2, analyses[1].Statistics.SentenceCount)
	for _, a := range analyses {
		assert.Equal(t, schema.UserSource, a.Source)
		assert.GreaterOrEqual(t, a.Statistics.ReadabilityScore, 0)
		assert.LessOrEqual(t, a.Statistics.ReadabilityScore, 100)
	}

	// Nothing was saved
	out, err = w.run(t, "history", "list", "--output", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeAnalyses(t, out))
}

// TestBatchVerification runs batch over a file with blank lines.
func TestBatchVerification(t *testing.T) {
	w := newWorkspace(t)
	file := filepath.Join(w.dir, "comments.txt")
	require.NoError(t, os.WriteFile(file, []byte("Great value for the money\n\n   \nThe screen is too dim\nShipping was fine\n"), 0o644))

	out, err := w.run(t, "batch", "--file", file, "--output", "json", "--workers", "3")
	require.NoError(t, err)

	analyses := decodeAnalyses(t, out)
	require.Len(t, analyses, 3)
	assert.Equal(t, "Shipping was fine", analyses[2].OriginalText)

	out, err = w.run(t, "history", "list", "--output", "json")
	require.NoError(t, err)
	assert.Len(t, decodeAnalyses(t, out), 3)
}

// TestFetchReportVerification fetches from a local API and reports on it.
func TestFetchReportVerification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"comments": [
			{"body": "The battery life on this laptop is excellent"},
			{"body": "Battery drains fast and the fan is loud"},
			{"body": "short"},
			{"text": "Keyboard feels great, battery is decent"}
		]}`))
	}))
	defer server.Close()

	w := newWorkspace(t, "COMMENTIQ_FETCH_INTERVAL=0s")

	out, err := w.run(t, "fetch", server.URL, "--output", "json")
	require.NoError(t, err)
	analyses := decodeAnalyses(t, out)
	require.Len(t, analyses, 3, "comments of 10 characters or fewer are skipped")
	for _, a := range analyses {
		assert.Equal(t, schema.APISource, a.Source)
		assert.Equal(t, server.URL, a.APIURL)
	}

	report, err := w.run(t, "report", "--api-url", server.URL)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report, "COMMENT ANALYSIS REPORT\n"))
	assert.Contains(t, report, "Source: "+server.URL)
	assert.Contains(t, report, "Total Comments Analyzed: 3")
	assert.Contains(t, report, "END OF REPORT")

	words, err := w.run(t, "corpus", "words", "--api-url", server.URL, "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, words, "1,battery,3,")

	show, err := w.run(t, "history", "show", analyses[0].ID, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, show, analyses[0].ID)

	_, err = w.run(t, "history", "delete", analyses[0].ID)
	require.NoError(t, err)
	out, err = w.run(t, "history", "list", "--api-url", server.URL, "--output", "json")
	require.NoError(t, err)
	assert.Len(t, decodeAnalyses(t, out), 2)
}

// TestMaintenanceCommands checks the status, export and clear commands.
func TestMaintenanceCommands(t *testing.T) {
	w := newWorkspace(t)

	_, err := w.run(t, "analyze", "Solid build quality and a fair price")
	require.NoError(t, err)

	out, err := w.run(t, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite")

	_, err = w.run(t, "history", "export", "--output-file", filepath.Join(w.dir, "backup"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(w.dir, "backup.history.parquet"))
	assert.NoError(t, err)

	_, err = w.run(t, "cache", "status")
	require.NoError(t, err)
	_, err = w.run(t, "cache", "clear")
	require.NoError(t, err)
	_, err = w.run(t, "history", "clear")
	require.NoError(t, err)

	out, err = w.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commentiq CLI")
}

// TestInvalidFlags checks that bad configuration fails fast.
func TestInvalidFlags(t *testing.T) {
	w := newWorkspace(t)
	for _, args := range [][]string{
		{"analyze", "--output", "xml", "text here"},
		{"history", "list", "--sentiment", "furious"},
		{"corpus", "keywords", "--dominant", "positive", "--influential"},
		{"batch"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := w.run(t, args...)
			assert.Error(t, err)
		})
	}
}
