package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/commentiq/core/algo"
	"github.com/huangsam/commentiq/schema"
)

// ErrEmptyInput is returned for blank or whitespace-only text.
var ErrEmptyInput = errors.New("text cannot be empty")

// Analyze runs the sentiment, summary, statistics and key phrase analyzers over text.
// The analyzers share no state, so the result depends on text alone.
func Analyze(text string) (schema.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return schema.AnalysisResult{}, ErrEmptyInput
	}
	return schema.AnalysisResult{
		Sentiment:  algo.ScoreSentiment(text),
		Summary:    algo.Summarize(text),
		Statistics: algo.CalculateStatistics(text),
		KeyPhrases: algo.ExtractKeyPhrases(text),
	}, nil
}

// NewCommentAnalysis wraps a result into a history record with a fresh id and timestamp.
func NewCommentAnalysis(text string, source schema.Source, apiURL string, result schema.AnalysisResult) schema.CommentAnalysis {
	if source != schema.APISource {
		apiURL = ""
	}
	return schema.CommentAnalysis{
		ID:             uuid.NewString(),
		OriginalText:   text,
		Source:         source,
		APIURL:         apiURL,
		Timestamp:      time.Now(),
		AnalysisResult: result,
	}
}
