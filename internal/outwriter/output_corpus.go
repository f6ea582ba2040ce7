package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteWordFrequencies outputs corpus word frequencies in the configured format.
func WriteWordFrequencies(words []schema.WordFrequency, docs int, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		type rankedWord struct {
			Rank int `json:"rank"`
			schema.WordFrequency
		}
		output := make([]rankedWord, len(words))
		for i, w := range words {
			output[i] = rankedWord{Rank: i + 1, WordFrequency: w}
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"rank", "word", "count", "percentage"}, func(cw *csv.Writer) error {
				for i, wf := range words {
					if err := cw.Write([]string{strconv.Itoa(i + 1), wf.Word, strconv.Itoa(wf.Count), fmtFloat(wf.Percentage)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWordTable(w, words, docs, fmtPercent)
		}, "Wrote table")
	}
}

func writeWordTable(w io.Writer, words []schema.WordFrequency, docs int, fmtPercent func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Word", "Count", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(words))
	for i, wf := range words {
		data = append(data, []string{strconv.Itoa(i + 1), wf.Word, strconv.Itoa(wf.Count), fmtPercent(wf.Percentage)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing top %d words across %d comments\n", len(words), docs)
	return err
}

// WriteKeywordSentiments outputs keyword sentiment links in the configured format.
func WriteKeywordSentiments(keywords []schema.KeywordSentiment, docs int, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		type rankedKeyword struct {
			Rank int `json:"rank"`
			schema.KeywordSentiment
		}
		output := make([]rankedKeyword, len(keywords))
		for i, k := range keywords {
			output[i] = rankedKeyword{Rank: i + 1, KeywordSentiment: k}
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON")
	case schema.CSVOut:
		header := []string{"rank", "word", "total", "positive", "neutral", "negative", "dominant", "sentiment_score"}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for i, k := range keywords {
					if err := cw.Write(keywordRow(i+1, k, string(k.DominantSentiment), fmtFloat)); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeKeywordTable(w, keywords, docs, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeKeywordTable(w io.Writer, keywords []schema.KeywordSentiment, docs int, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Word", "Total", "Pos", "Neu", "Neg", "Dominant", "Score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(keywords))
	for i, k := range keywords {
		data = append(data, keywordRow(i+1, k, formatLabel(k.DominantSentiment, cfg), fmtFloat))
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d keywords across %d comments\n", len(keywords), docs)
	return err
}

func keywordRow(rank int, k schema.KeywordSentiment, dominant string, fmtFloat func(float64) string) []string {
	return []string{
		strconv.Itoa(rank),
		k.Word,
		strconv.Itoa(k.TotalOccurrences),
		strconv.Itoa(k.Sentiments.Positive),
		strconv.Itoa(k.Sentiments.Neutral),
		strconv.Itoa(k.Sentiments.Negative),
		dominant,
		fmtFloat(k.SentimentScore),
	}
}
