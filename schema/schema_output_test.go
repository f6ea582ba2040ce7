package schema_test

import (
	"testing"
	"time"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected schema.SentimentLabel
	}{
		{"Max Score", 1.0, schema.Positive},
		{"Just Above Positive Threshold", 0.11, schema.Positive},
		{"Positive Threshold Is Neutral", 0.1, schema.Neutral},
		{"Zero", 0.0, schema.Neutral},
		{"Negative Threshold Is Neutral", -0.1, schema.Neutral},
		{"Just Below Negative Threshold", -0.11, schema.Negative},
		{"Min Score", -1.0, schema.Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.score))
		})
	}
}

func TestEnrichAnalyses(t *testing.T) {
	analyses := []schema.CommentAnalysis{
		{ID: "a", OriginalText: "great"},
		{ID: "b", OriginalText: "awful"},
	}

	t.Run("without crosscheck", func(t *testing.T) {
		enriched := schema.EnrichAnalyses(analyses, nil)
		assert.Len(t, enriched, 2)
		assert.Equal(t, 1, enriched[0].Rank)
		assert.Equal(t, "a", enriched[0].ID)
		assert.Equal(t, 2, enriched[1].Rank)
		assert.Nil(t, enriched[1].VaderCompound)
	})

	t.Run("with crosscheck", func(t *testing.T) {
		enriched := schema.EnrichAnalyses(analyses, func(s string) float64 {
			return float64(len(s))
		})
		if assert.NotNil(t, enriched[0].VaderCompound) {
			assert.Equal(t, 5.0, *enriched[0].VaderCompound)
		}
	})
}

func TestHistoryFilter(t *testing.T) {
	now := time.Now()
	records := []schema.CommentAnalysis{
		{ID: "1", OriginalText: "Great Product", Source: schema.UserSource, Timestamp: now,
			AnalysisResult: schema.AnalysisResult{Sentiment: schema.Sentiment{Label: schema.Positive}}},
		{ID: "2", OriginalText: "awful support", Source: schema.APISource, APIURL: "https://x/api", Timestamp: now,
			AnalysisResult: schema.AnalysisResult{Sentiment: schema.Sentiment{Label: schema.Negative}}},
		{ID: "3", OriginalText: "it shipped", Source: schema.APISource, APIURL: "https://x/api", Timestamp: now,
			AnalysisResult: schema.AnalysisResult{Sentiment: schema.Sentiment{Label: schema.Neutral}}},
		{ID: "4", OriginalText: "meh", Source: schema.APISource, APIURL: "https://y/api", Timestamp: now,
			AnalysisResult: schema.AnalysisResult{Sentiment: schema.Sentiment{Label: schema.Neutral}}},
	}

	ids := func(rs []schema.CommentAnalysis) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		name     string
		filter   schema.HistoryFilter
		expected []string
	}{
		{"Empty Filter", schema.HistoryFilter{}, []string{"1", "2", "3", "4"}},
		{"Search Text Case Insensitive", schema.HistoryFilter{Search: "PRODUCT"}, []string{"1"}},
		{"Search Matches Label", schema.HistoryFilter{Search: "neg"}, []string{"2"}},
		{"Search Matches Source", schema.HistoryFilter{Search: "api"}, []string{"2", "3", "4"}},
		{"Label", schema.HistoryFilter{Label: schema.Neutral}, []string{"3", "4"}},
		{"Source", schema.HistoryFilter{Source: schema.UserSource}, []string{"1"}},
		{"API URL", schema.HistoryFilter{APIURL: "https://x/api"}, []string{"2", "3"}},
		{"Limit", schema.HistoryFilter{Limit: 2}, []string{"1", "2"}},
		{"No Match", schema.HistoryFilter{Search: "zzz"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(tt.filter.Apply(records)))
		})
	}

	t.Run("Related Batch", func(t *testing.T) {
		assert.Equal(t, []string{"2", "3"}, ids(schema.RelatedBatch(records, records[1])))
		assert.Nil(t, schema.RelatedBatch(records, records[0]))
	})
}

func TestSentimentCounts(t *testing.T) {
	var c schema.SentimentCounts
	c.Add(schema.Positive)
	c.Add(schema.Negative)
	c.Add(schema.Neutral)
	c.Add("unknown")
	assert.Equal(t, schema.SentimentCounts{Positive: 1, Negative: 1, Neutral: 1}, c)
	assert.Equal(t, 3, c.Total())
}

func TestParseHelpers(t *testing.T) {
	label, ok := schema.ParseSentimentLabel(" Positive ")
	assert.True(t, ok)
	assert.Equal(t, schema.Positive, label)

	_, ok = schema.ParseSentimentLabel("happy")
	assert.False(t, ok)

	source, ok := schema.ParseSource("")
	assert.True(t, ok)
	assert.Empty(t, source)

	_, ok = schema.ParseSource("email")
	assert.False(t, ok)

	assert.Equal(t, "None", schema.FormatKeyPhrases(nil))
	assert.Equal(t, "a, b", schema.FormatKeyPhrases([]string{"a", "b"}))
	assert.True(t, schema.SQLiteBackend.IsSQL())
	assert.False(t, schema.ValkeyBackend.IsSQL())
}
