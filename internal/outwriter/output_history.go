package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// shortIDLength is how much of a record id the history table shows.
const shortIDLength = 8

// WriteHistory outputs history records in the configured format.
func WriteHistory(records []schema.EnrichedAnalysis, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysesCSV(w, records, cfg, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeHistoryTable(w io.Writer, records []schema.EnrichedAnalysis, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "ID", "Time", "Source", "Comment", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Key Phrases", "API URL")
	}
	if cfg.Crosscheck {
		headers = append(headers, "VADER")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := getMaxTableTextWidth(cfg)
	data := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Rank),
			shortID(r.ID),
			r.Timestamp.Format(contract.DateTimeFormat),
			string(r.Source),
			contract.TruncateText(r.OriginalText, textWidth),
			fmtFloat(r.Sentiment.Score),
			formatLabel(r.Sentiment.Label, cfg),
		}
		if cfg.Detail {
			row = append(row,
				contract.TruncateText(schema.FormatKeyPhrases(r.KeyPhrases), 24),
				contract.TruncateText(r.APIURL, 30),
			)
		}
		if cfg.Crosscheck {
			row = append(row, formatCompound(r.VaderCompound, fmtFloat))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d history records. History backend: %s\n", len(records), cfg.HistoryBackend)
	return err
}

// WriteRecord outputs a single history record. batchSize is the number of
// records fetched from the same API URL, or zero for user input.
func WriteRecord(record schema.EnrichedAnalysis, batchSize int, cfg *contract.Config) error {
	fmtFloat, fmtPercent := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, record)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysesCSV(w, []schema.EnrichedAnalysis{record}, cfg, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordTable(w, record, batchSize, cfg, fmtFloat, fmtPercent)
		}, "Wrote table")
	}
}

func writeRecordTable(w io.Writer, r schema.EnrichedAnalysis, batchSize int, cfg *contract.Config, fmtFloat, fmtPercent func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})

	rows := [][]string{
		{"ID", r.ID},
		{"Time", r.Timestamp.Format(contract.DateTimeFormat)},
		{"Source", string(r.Source)},
	}
	if r.APIURL != "" {
		rows = append(rows,
			[]string{"API URL", r.APIURL},
			[]string{"Batch Size", strconv.Itoa(batchSize)},
		)
	}
	rows = append(rows,
		[]string{"Comment", contract.TruncateText(r.OriginalText, getTerminalWidth(cfg)-20)},
		[]string{"Summary", contract.TruncateText(r.Summary.Text, getTerminalWidth(cfg)-20)},
		[]string{"Compression", fmt.Sprintf("%d%%", r.Summary.CompressionRatio)},
		[]string{"Label", formatLabel(r.Sentiment.Label, cfg)},
		[]string{"Score", fmtFloat(r.Sentiment.Score)},
		[]string{"Confidence", fmtPercent(r.Sentiment.Confidence * 100)},
		[]string{"Key Phrases", schema.FormatKeyPhrases(r.KeyPhrases)},
		[]string{"Words", strconv.Itoa(r.Statistics.OriginalWordCount)},
		[]string{"Sentences", strconv.Itoa(r.Statistics.SentenceCount)},
		[]string{"Avg Word Length", strconv.FormatFloat(r.Statistics.AvgWordLength, 'f', 1, 64)},
		[]string{"Readability", fmt.Sprintf("%d/100", r.Statistics.ReadabilityScore)},
	)
	if cfg.Crosscheck {
		rows = append(rows, []string{"VADER", formatCompound(r.VaderCompound, fmtFloat)})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}
