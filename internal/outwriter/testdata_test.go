package outwriter

import (
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Workers:        4,
		Precision:      2,
		Width:          120,
		Output:         schema.TextOut,
		CacheBackend:   schema.SQLiteBackend,
		HistoryBackend: schema.SQLiteBackend,
	}
}

func testAnalyses() []schema.EnrichedAnalysis {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	compound := 0.6249
	return schema.EnrichAnalyses([]schema.CommentAnalysis{
		{
			ID:           "0f8fad5b-d9cb-469f-a165-70867728950e",
			OriginalText: "This is amazing and wonderful!",
			Source:       schema.UserSource,
			Timestamp:    ts,
			AnalysisResult: schema.AnalysisResult{
				Sentiment:  schema.Sentiment{Score: 0.75, Label: schema.Positive, Confidence: 0.8},
				Summary:    schema.Summary{Text: "This is amazing and wonderful!", CompressionRatio: 100, WordCount: 5},
				Statistics: schema.Statistics{OriginalWordCount: 5, SentenceCount: 1, AvgWordLength: 5.2, ReadabilityScore: 64},
				KeyPhrases: []string{"amazing", "wonderful"},
			},
		},
		{
			ID:           "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			OriginalText: "The update broke everything, terrible",
			Source:       schema.APISource,
			APIURL:       "https://api.test/comments",
			Timestamp:    ts,
			AnalysisResult: schema.AnalysisResult{
				Sentiment:  schema.Sentiment{Score: -0.5, Label: schema.Negative, Confidence: 0.6},
				Summary:    schema.Summary{Text: "The update broke everything, terrible", CompressionRatio: 100, WordCount: 5},
				Statistics: schema.Statistics{OriginalWordCount: 5, SentenceCount: 1, AvgWordLength: 6.4, ReadabilityScore: 40},
				KeyPhrases: []string{},
			},
		},
	}, func(string) float64 { return compound })
}
