// Package report renders plain-text analysis reports.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/commentiq/schema"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptyReport is returned when there is nothing to report on.
var ErrEmptyReport = errors.New("no analyses to report")

// UserInputSource is the source line used when analyses were not fetched from an API.
const UserInputSource = "User Input"

// Overview holds the aggregate numbers at the top of a report.
type Overview struct {
	Total             int
	OverallSentiment  schema.SentimentLabel
	AverageScore      float64
	AverageConfidence float64
	Counts            schema.SentimentCounts
}

// Summarize computes the report overview for a non-empty set of analyses.
func Summarize(analyses []schema.CommentAnalysis) (Overview, error) {
	if len(analyses) == 0 {
		return Overview{}, ErrEmptyReport
	}

	scores := make([]float64, len(analyses))
	confidences := make([]float64, len(analyses))
	var counts schema.SentimentCounts
	for i, a := range analyses {
		scores[i] = a.Sentiment.Score
		confidences[i] = a.Sentiment.Confidence
		counts.Add(a.Sentiment.Label)
	}

	n := float64(len(analyses))
	avgScore := floats.Sum(scores) / n
	return Overview{
		Total:             len(analyses),
		OverallSentiment:  schema.GetPlainLabel(avgScore),
		AverageScore:      avgScore,
		AverageConfidence: floats.Sum(confidences) / n,
		Counts:            counts,
	}, nil
}

// Render writes the report for analyses. An empty apiURL marks the analyses as user input.
func Render(w io.Writer, analyses []schema.CommentAnalysis, apiURL string, generated time.Time) error {
	text, err := Build(analyses, apiURL, generated)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text+"\n")
	return err
}

// Build returns the report as a string.
func Build(analyses []schema.CommentAnalysis, apiURL string, generated time.Time) (string, error) {
	overview, err := Summarize(analyses)
	if err != nil {
		return "", err
	}

	source := apiURL
	if source == "" {
		source = UserInputSource
	}
	pct := func(n int) float64 { return float64(n) / float64(overview.Total) * 100 }

	var sb strings.Builder
	sb.WriteString("COMMENT ANALYSIS REPORT\n")
	fmt.Fprintf(&sb, "Generated: %s\n", generated.Format(time.DateTime))
	fmt.Fprintf(&sb, "Source: %s\n\n", source)

	sb.WriteString("OVERVIEW\n========\n")
	fmt.Fprintf(&sb, "Total Comments Analyzed: %d\n", overview.Total)
	fmt.Fprintf(&sb, "Overall Sentiment: %s\n", strings.ToUpper(string(overview.OverallSentiment)))
	fmt.Fprintf(&sb, "Average Sentiment Score: %.2f\n", overview.AverageScore)
	fmt.Fprintf(&sb, "Average Confidence: %.1f%%\n\n", overview.AverageConfidence*100)

	sb.WriteString("SENTIMENT BREAKDOWN\n==================\n")
	fmt.Fprintf(&sb, "Positive: %d (%.1f%%)\n", overview.Counts.Positive, pct(overview.Counts.Positive))
	fmt.Fprintf(&sb, "Neutral: %d (%.1f%%)\n", overview.Counts.Neutral, pct(overview.Counts.Neutral))
	fmt.Fprintf(&sb, "Negative: %d (%.1f%%)\n\n", overview.Counts.Negative, pct(overview.Counts.Negative))

	sb.WriteString("DETAILED ANALYSIS\n=================\n")
	blocks := make([]string, len(analyses))
	for i, a := range analyses {
		blocks[i] = commentBlock(i+1, a)
	}
	sb.WriteString(strings.Join(blocks, "\n"))
	sb.WriteString("\n\nEND OF REPORT")

	return sb.String(), nil
}

func commentBlock(index int, a schema.CommentAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nComment #%d\n-----------\n", index)
	fmt.Fprintf(&sb, "Original: %s\n\n", a.OriginalText)
	fmt.Fprintf(&sb, "Summary: %s\n\n", a.Summary.Text)
	fmt.Fprintf(&sb, "Sentiment: %s\n", strings.ToUpper(string(a.Sentiment.Label)))
	fmt.Fprintf(&sb, "Score: %.2f\n", a.Sentiment.Score)
	fmt.Fprintf(&sb, "Confidence: %.1f%%\n\n", a.Sentiment.Confidence*100)
	fmt.Fprintf(&sb, "Key Phrases: %s\n\n", strings.Join(a.KeyPhrases, ", "))
	sb.WriteString("Statistics:\n")
	fmt.Fprintf(&sb, "- Words: %d\n", a.Statistics.OriginalWordCount)
	fmt.Fprintf(&sb, "- Sentences: %d\n", a.Statistics.SentenceCount)
	fmt.Fprintf(&sb, "- Readability: %d/100\n", a.Statistics.ReadabilityScore)
	return sb.String()
}
