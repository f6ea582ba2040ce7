package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAnalysesTable(t *testing.T) {
	tests := []struct {
		name       string
		detail     bool
		crosscheck bool
		contains   []string
		excludes   []string
	}{
		{
			name:     "basic",
			contains: []string{"RANK", "COMMENT", "SCORE", "positive", "negative", "0.75", "-0.50", "80.0%"},
			excludes: []string{"SUMMARY", "VADER"},
		},
		{
			name:     "detail",
			detail:   true,
			contains: []string{"SUMMARY", "KEY PHRASES", "amazing, wonderful", "None", "64"},
		},
		{
			name:       "crosscheck",
			crosscheck: true,
			contains:   []string{"VADER", "0.62"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Width = 300
			cfg.Detail = tt.detail
			cfg.Crosscheck = tt.crosscheck
			fmtFloat, fmtPercent := createFormatters(cfg.Precision)

			var buf bytes.Buffer
			require.NoError(t, writeAnalysesTable(&buf, testAnalyses(), cfg, fmtFloat, fmtPercent))
			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestWriteAnalysesCSV(t *testing.T) {
	cfg := testConfig()
	cfg.Crosscheck = true
	fmtFloat, _ := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeAnalysesCSV(&buf, testAnalyses(), cfg, fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, analysisCSVHeader(true), records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "amazing|wonderful", records[1][13])
	assert.Equal(t, "https://api.test/comments", records[2][15])
	assert.Equal(t, "0.62", records[2][17])
}

func TestWriteAnalysesJSONFile(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteAnalyses(testAnalyses(), []schema.BatchFailure{}, cfg, time.Second))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded []schema.EnrichedAnalysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 2, decoded[1].Rank)
	assert.Equal(t, schema.Negative, decoded[1].Sentiment.Label)
}

func TestWriteAnalysesTextFooter(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")

	failures := []schema.BatchFailure{{Line: 3, Text: "   ", Error: "text cannot be empty"}}
	require.NoError(t, WriteAnalyses(testAnalyses(), failures, cfg, 1500*time.Millisecond))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Analyzed 2 comments (1 failed) in 1.5s with 4 workers. Cache backend: sqlite")
}

func TestWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	writeFailures(&buf, []schema.BatchFailure{
		{Line: 2, Text: "bad", Error: "text cannot be empty"},
	})
	assert.Equal(t, "⚠️  Line 2 skipped (text cannot be empty): bad\n", buf.String())

	buf.Reset()
	writeFailures(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestFormatCompound(t *testing.T) {
	fmtFloat, _ := createFormatters(3)
	v := -0.12345
	assert.Equal(t, "-", formatCompound(nil, fmtFloat))
	assert.Equal(t, "-0.123", formatCompound(&v, fmtFloat))
}
