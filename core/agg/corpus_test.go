package agg

import (
	"fmt"
	"testing"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(text string, label schema.SentimentLabel) schema.Document {
	return schema.Document{Text: text, Label: label}
}

func TestAnalyzeWordFrequency(t *testing.T) {
	docs := []schema.Document{
		doc("Great product, great price", schema.Positive),
		doc("Product arrived broken", schema.Negative),
	}

	got := AnalyzeWordFrequency(docs)

	require.Len(t, got, 5)
	words := make([]string, len(got))
	total := 0.0
	for i, wf := range got {
		words[i] = wf.Word
		total += wf.Percentage
	}
	assert.Equal(t, []string{"great", "product", "price", "arrived", "broken"}, words)
	assert.Equal(t, 2, got[0].Count)
	assert.InDelta(t, 200.0/7.0, got[0].Percentage, 1e-9)
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestAnalyzeWordFrequencyEdgeCases(t *testing.T) {
	t.Run("no documents", func(t *testing.T) {
		assert.Empty(t, AnalyzeWordFrequency(nil))
	})

	t.Run("only stop words", func(t *testing.T) {
		docs := []schema.Document{doc("the and was", schema.Neutral), doc("it is", schema.Neutral)}
		assert.Empty(t, AnalyzeWordFrequency(docs))
	})
}

func TestAnalyzeKeywordSentiment(t *testing.T) {
	docs := []schema.Document{
		doc("Excellent support, excellent team", schema.Positive),
		doc("Excellent idea but the support was slow", schema.Negative),
		doc("The delivery was slow", schema.Neutral),
		doc("Delivery slow again", schema.Negative),
	}

	got := AnalyzeKeywordSentiment(docs)

	byWord := make(map[string]schema.KeywordSentiment)
	for _, k := range got {
		byWord[k.Word] = k
	}

	excellent := byWord["excellent"]
	assert.Equal(t, schema.SentimentCounts{Positive: 1, Negative: 1}, excellent.Sentiments)
	assert.Equal(t, 2, excellent.TotalOccurrences)
	assert.Equal(t, schema.Positive, excellent.DominantSentiment)
	assert.InDelta(t, 0.0, excellent.SentimentScore, 1e-9)

	slow := byWord["slow"]
	assert.Equal(t, schema.SentimentCounts{Negative: 2, Neutral: 1}, slow.Sentiments)
	assert.Equal(t, schema.Negative, slow.DominantSentiment)
	assert.InDelta(t, -2.0/3.0, slow.SentimentScore, 1e-9)

	assert.NotContains(t, byWord, "team", "single-document words are dropped")
	assert.NotContains(t, byWord, "idea")

	require.NotEmpty(t, got)
	assert.Equal(t, "slow", got[0].Word, "highest total first")
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalOccurrences, got[i].TotalOccurrences)
	}
	for _, k := range got {
		assert.GreaterOrEqual(t, k.TotalOccurrences, 2)
	}
}

func TestAnalyzeKeywordSentimentStableOrder(t *testing.T) {
	docs := []schema.Document{
		doc("zebra apple", schema.Positive),
		doc("zebra apple", schema.Positive),
	}
	got := AnalyzeKeywordSentiment(docs)
	require.Len(t, got, 2)
	assert.Equal(t, "zebra", got[0].Word)
	assert.Equal(t, "apple", got[1].Word)
}

func TestDominantSentiment(t *testing.T) {
	tests := []struct {
		name     string
		counts   schema.SentimentCounts
		expected schema.SentimentLabel
	}{
		{"all equal is neutral", schema.SentimentCounts{Positive: 2, Negative: 2, Neutral: 2}, schema.Neutral},
		{"positive negative tie is positive", schema.SentimentCounts{Positive: 3, Negative: 3}, schema.Positive},
		{"neutral ties positive", schema.SentimentCounts{Positive: 2, Neutral: 2}, schema.Neutral},
		{"negative majority", schema.SentimentCounts{Positive: 1, Negative: 3, Neutral: 1}, schema.Negative},
		{"neutral majority", schema.SentimentCounts{Negative: 1, Neutral: 2}, schema.Neutral},
		{"empty", schema.SentimentCounts{}, schema.Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dominantSentiment(tt.counts))
		})
	}
}

func keywords(n int, label schema.SentimentLabel) []schema.KeywordSentiment {
	out := make([]schema.KeywordSentiment, n)
	for i := range out {
		out[i] = schema.KeywordSentiment{Word: fmt.Sprintf("%s%02d", label, i), DominantSentiment: label, TotalOccurrences: 2}
	}
	return out
}

func TestTopKeywordsBySentiment(t *testing.T) {
	all := append(keywords(12, schema.Positive), keywords(3, schema.Negative)...)

	t.Run("default limit", func(t *testing.T) {
		got := TopKeywordsBySentiment(all, schema.Positive, 0)
		require.Len(t, got, DefaultTopKeywords)
		assert.Equal(t, "positive00", got[0].Word)
	})

	t.Run("explicit limit", func(t *testing.T) {
		got := TopKeywordsBySentiment(all, schema.Negative, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "negative01", got[1].Word)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, TopKeywordsBySentiment(all, schema.Neutral, 5))
	})
}

func TestMostInfluentialKeywords(t *testing.T) {
	input := []schema.KeywordSentiment{
		{Word: "meh", SentimentScore: 0, TotalOccurrences: 10},
		{Word: "broken", SentimentScore: -1, TotalOccurrences: 3},
		{Word: "love", SentimentScore: 0.5, TotalOccurrences: 4},
		{Word: "fast", SentimentScore: 1, TotalOccurrences: 2},
	}
	original := append([]schema.KeywordSentiment{}, input...)

	got := MostInfluentialKeywords(input, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "broken", got[0].Word)
	assert.Equal(t, "love", got[1].Word, "ties keep input order")
	assert.Equal(t, "fast", got[2].Word)
	assert.Equal(t, original, input, "input must not be reordered")

	assert.Len(t, MostInfluentialKeywords(keywords(25, schema.Neutral), 0), DefaultInfluentialKeywords)
}
