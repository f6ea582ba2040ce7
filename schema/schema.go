// Package schema has configs, models and enums for all parts of commentiq.
package schema

import "time"

// Sentiment is the lexicon-based polarity of a text.
type Sentiment struct {
	Score      float64        `json:"score"`      // Polarity in [-1, 1]
	Label      SentimentLabel `json:"label"`      // Derived from Score with 0.1 thresholds
	Confidence float64        `json:"confidence"` // Heuristic certainty in [0, 0.95]
}

// Summary is the extractive summary of a text.
type Summary struct {
	Text             string `json:"text"`
	CompressionRatio int    `json:"compressionRatio"` // Percent of original words kept
	WordCount        int    `json:"wordCount"`
}

// Statistics holds surface metrics for a text.
type Statistics struct {
	OriginalWordCount int     `json:"originalWordCount"`
	SentenceCount     int     `json:"sentenceCount"`    // Never below 1
	AvgWordLength     float64 `json:"avgWordLength"`    // Rounded to one decimal
	ReadabilityScore  int     `json:"readabilityScore"` // Flesch-style score in [0, 100]
}

// AnalysisResult is everything the analyzer derives from a single text.
type AnalysisResult struct {
	Sentiment  Sentiment  `json:"sentiment"`
	Summary    Summary    `json:"summary"`
	Statistics Statistics `json:"statistics"`
	KeyPhrases []string   `json:"keyPhrases"`
}

// CommentAnalysis is a persisted analysis of one comment.
type CommentAnalysis struct {
	ID           string    `json:"id"`
	OriginalText string    `json:"originalText"`
	Source       Source    `json:"source"`
	APIURL       string    `json:"apiUrl,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	AnalysisResult
}

// Document is the minimal view of a record the corpus aggregator needs.
type Document struct {
	Text  string
	Label SentimentLabel
}

// Documents projects history records onto corpus documents.
func Documents(records []CommentAnalysis) []Document {
	docs := make([]Document, len(records))
	for i, r := range records {
		docs[i] = Document{Text: r.OriginalText, Label: r.Sentiment.Label}
	}
	return docs
}
