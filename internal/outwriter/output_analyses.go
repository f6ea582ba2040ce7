package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAnalyses outputs analyzed comments, dispatching based on the output format configured.
// Failures always go to stderr so they never mix with machine-readable output.
func WriteAnalyses(analyses []schema.EnrichedAnalysis, failures []schema.BatchFailure, cfg *contract.Config, duration time.Duration) error {
	writeFailures(os.Stderr, failures)
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analyses)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysesCSV(w, analyses, cfg, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeAnalysesTable(w, analyses, cfg, fmtFloat, fmtPercent); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "Analyzed %d comments (%d failed) in %v with %d workers. Cache backend: %s\n",
				len(analyses), len(failures), duration.Round(time.Millisecond), cfg.Workers, cfg.CacheBackend)
			return err
		}, "Wrote table")
	}
}

// writeAnalysesTable renders one row per analysis.
func writeAnalysesTable(w io.Writer, analyses []schema.EnrichedAnalysis, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Rank", "Comment", "Score", "Label", "Conf"}
	if cfg.Detail {
		headers = append(headers, "Summary", "Key Phrases", "Words", "Sent", "Read")
	}
	if cfg.Crosscheck {
		headers = append(headers, "VADER")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 2. Populate Rows
	textWidth := getMaxTableTextWidth(cfg)
	data := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		row := []string{
			strconv.Itoa(a.Rank),
			contract.TruncateText(a.OriginalText, textWidth),
			fmtFloat(a.Sentiment.Score),
			formatLabel(a.Sentiment.Label, cfg),
			fmtPercent(a.Sentiment.Confidence * 100),
		}
		if cfg.Detail {
			row = append(row,
				contract.TruncateText(a.Summary.Text, 30),
				contract.TruncateText(schema.FormatKeyPhrases(a.KeyPhrases), 24),
				strconv.Itoa(a.Statistics.OriginalWordCount),
				strconv.Itoa(a.Statistics.SentenceCount),
				strconv.Itoa(a.Statistics.ReadabilityScore),
			)
		}
		if cfg.Crosscheck {
			row = append(row, formatCompound(a.VaderCompound, fmtFloat))
		}
		data = append(data, row)
	}

	// 3. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// analysisCSVHeader lists the columns shared by analysis and history CSV output.
func analysisCSVHeader(crosscheck bool) []string {
	header := []string{
		"rank",
		"id",
		"text",
		"score",
		"label",
		"confidence",
		"summary",
		"compression_ratio",
		"summary_words",
		"words",
		"sentences",
		"avg_word_length",
		"readability",
		"key_phrases",
		"source",
		"api_url",
		"timestamp",
	}
	if crosscheck {
		header = append(header, "vader_compound")
	}
	return header
}

// writeAnalysesCSV writes analyses with every field flattened into a column.
func writeAnalysesCSV(w io.Writer, analyses []schema.EnrichedAnalysis, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, analysisCSVHeader(cfg.Crosscheck), func(cw *csv.Writer) error {
		for _, a := range analyses {
			rec := []string{
				strconv.Itoa(a.Rank),
				a.ID,
				a.OriginalText,
				fmtFloat(a.Sentiment.Score),
				string(a.Sentiment.Label),
				fmtFloat(a.Sentiment.Confidence),
				a.Summary.Text,
				strconv.Itoa(a.Summary.CompressionRatio),
				strconv.Itoa(a.Summary.WordCount),
				strconv.Itoa(a.Statistics.OriginalWordCount),
				strconv.Itoa(a.Statistics.SentenceCount),
				strconv.FormatFloat(a.Statistics.AvgWordLength, 'f', 1, 64),
				strconv.Itoa(a.Statistics.ReadabilityScore),
				strings.Join(a.KeyPhrases, "|"),
				string(a.Source),
				a.APIURL,
				a.Timestamp.Format(contract.DateTimeFormat),
			}
			if cfg.Crosscheck {
				rec = append(rec, formatCompound(a.VaderCompound, fmtFloat))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeFailures lists documents that could not be analyzed.
func writeFailures(w io.Writer, failures []schema.BatchFailure) {
	for _, f := range failures {
		fmt.Fprintf(w, "⚠️  Line %d skipped (%s): %s\n", f.Line, f.Error, contract.TruncateText(f.Text, 40))
	}
}

func formatCompound(v *float64, fmtFloat func(float64) string) string {
	if v == nil {
		return "-"
	}
	return fmtFloat(*v)
}
