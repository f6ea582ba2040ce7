// Package parquet provides data structures and functions for exporting comment
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/commentiq/schema"
	"github.com/parquet-go/parquet-go"
)

// HistoryRecord represents one analyzed comment.
// This struct maps to the commentiq_history database table.
type HistoryRecord struct {
	// ID is the unique identifier of the analysis
	ID string `parquet:"id,snappy"`

	// OriginalText is the analyzed comment as submitted
	OriginalText string `parquet:"original_text,snappy"`

	// Source is either "user" or "api"
	Source string `parquet:"source,snappy,dict"`

	// APIURL is the endpoint a fetched comment came from (nullable)
	APIURL *string `parquet:"api_url,optional,snappy"`

	// Timestamp is when the analysis was recorded
	Timestamp time.Time `parquet:"timestamp,snappy"`

	SentimentScore float64 `parquet:"sentiment_score,snappy"`
	SentimentLabel string  `parquet:"sentiment_label,snappy,dict"`
	Confidence     float64 `parquet:"confidence,snappy"`

	SummaryText      string `parquet:"summary_text,snappy"`
	CompressionRatio int32  `parquet:"compression_ratio,snappy"`
	SummaryWordCount int32  `parquet:"summary_word_count,snappy"`

	WordCount        int32   `parquet:"word_count,snappy"`
	SentenceCount    int32   `parquet:"sentence_count,snappy"`
	AvgWordLength    float64 `parquet:"avg_word_length,snappy"`
	ReadabilityScore int32   `parquet:"readability_score,snappy"`

	// KeyPhrases holds up to eight salient words in rank order
	KeyPhrases []string `parquet:"key_phrases,list"`
}

// WriteHistoryParquet writes a slice of HistoryRecord structs to a Parquet file.
func WriteHistoryParquet(data []HistoryRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the HistoryRecord struct tags
	writer := parquet.NewGenericWriter[HistoryRecord](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertHistoryRecords converts history records to Parquet rows.
func ConvertHistoryRecords(records []schema.CommentAnalysis) []HistoryRecord {
	result := make([]HistoryRecord, len(records))
	for i, r := range records {
		var apiURL *string
		if r.APIURL != "" {
			apiURL = &r.APIURL
		}
		phrases := r.KeyPhrases
		if phrases == nil {
			phrases = []string{}
		}
		result[i] = HistoryRecord{
			ID:               r.ID,
			OriginalText:     r.OriginalText,
			Source:           string(r.Source),
			APIURL:           apiURL,
			Timestamp:        r.Timestamp,
			SentimentScore:   r.Sentiment.Score,
			SentimentLabel:   string(r.Sentiment.Label),
			Confidence:       r.Sentiment.Confidence,
			SummaryText:      r.Summary.Text,
			CompressionRatio: int32(r.Summary.CompressionRatio),
			SummaryWordCount: int32(r.Summary.WordCount),
			WordCount:        int32(r.Statistics.OriginalWordCount),
			SentenceCount:    int32(r.Statistics.SentenceCount),
			AvgWordLength:    r.Statistics.AvgWordLength,
			ReadabilityScore: int32(r.Statistics.ReadabilityScore),
			KeyPhrases:       phrases,
		}
	}
	return result
}
