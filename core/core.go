// Package core has core logic for analysis, aggregation and command execution.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/commentiq/core/agg"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/internal/outwriter"
	"github.com/huangsam/commentiq/internal/report"
	"github.com/huangsam/commentiq/schema"
)

// ExecuteAnalyze analyzes each text as user input. Without texts it reads
// one comment per line from --file, or from stdin when no file is set.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, texts []string) error {
	start := time.Now()
	if len(texts) == 0 {
		path := cfg.InputFile
		if path == "" {
			path = "-"
		}
		lines, err := readInputFile(path)
		if err != nil {
			return err
		}
		texts = lines
	}

	output, err := GetAnalyzeResults(ctx, cfg, mgr, texts, schema.UserSource, "")
	if err != nil {
		return err
	}
	return outwriter.WriteAnalyses(enrich(cfg, output.Analyses), output.Failures, cfg, time.Since(start))
}

// ExecuteBatch analyzes one comment per non-blank line of --file.
// Lines that fail are reported without aborting the batch.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	if cfg.InputFile == "" {
		return errors.New("--file is required")
	}
	lines, err := readInputFile(cfg.InputFile)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no comments found in %s", cfg.InputFile)
	}

	output, err := GetAnalyzeResults(ctx, cfg, mgr, lines, schema.UserSource, "")
	allFailed := len(output.Analyses) == 0 && len(output.Failures) > 0
	if err != nil && !allFailed {
		return err
	}
	return outwriter.WriteAnalyses(enrich(cfg, output.Analyses), output.Failures, cfg, time.Since(start))
}

// ExecuteFetch fetches and analyzes the comments behind each URL.
// With --report, a plain-text report per URL follows the results.
func ExecuteFetch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, urls []string) error {
	start := time.Now()
	if len(urls) == 0 {
		return errors.New("at least one URL is required")
	}

	results, err := GetFetchResults(ctx, cfg, mgr, urls)
	if err != nil {
		return err
	}

	var combined schema.BatchOutput
	for _, r := range results {
		combined.Analyses = append(combined.Analyses, r.Analyses...)
		combined.Failures = append(combined.Failures, r.Failures...)
	}
	if err := outwriter.WriteAnalyses(enrich(cfg, combined.Analyses), combined.Failures, cfg, time.Since(start)); err != nil {
		return err
	}

	if !cfg.Report {
		return nil
	}
	for _, r := range results {
		fmt.Println()
		if err := report.Render(os.Stdout, r.Analyses, r.APIURL, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteCorpusWords prints word frequencies across the selected history.
func ExecuteCorpusWords(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	words, docs, err := GetCorpusWordsResults(ctx, cfg, mgr)
	if errors.Is(err, ErrCorpusTooSmall) {
		printCorpusTooSmall(docs)
		return nil
	}
	if err != nil {
		return err
	}
	return outwriter.WriteWordFrequencies(words, docs, cfg)
}

// ExecuteCorpusKeywords prints keyword sentiment across the selected history.
func ExecuteCorpusKeywords(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	keywords, docs, err := GetCorpusKeywordsResults(ctx, cfg, mgr)
	if errors.Is(err, ErrCorpusTooSmall) {
		printCorpusTooSmall(docs)
		return nil
	}
	if err != nil {
		return err
	}
	return outwriter.WriteKeywordSentiments(keywords, docs, cfg)
}

// ExecuteReport writes the plain-text report over the selected history.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	text, err := GetReportResults(ctx, cfg, mgr)
	if errors.Is(err, report.ErrEmptyReport) {
		return fmt.Errorf("no history records match the selection: %w", err)
	}
	if err != nil {
		return err
	}
	return outwriter.WriteReport(text, cfg)
}

// ExecuteHistoryList prints history records matching the configured filters.
func ExecuteHistoryList(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	records, err := GetHistoryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteHistory(enrich(cfg, records), cfg)
}

// ExecuteHistoryShow prints a single history record. Fetched records also
// report how many comments came from the same API URL.
func ExecuteHistoryShow(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, id string) error {
	record, err := GetHistoryRecord(ctx, mgr, id)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", id, err)
	}

	batchSize := 0
	if record.Source == schema.APISource && record.APIURL != "" {
		related, err := historyStore(mgr).List(ctx, schema.HistoryFilter{Source: schema.APISource, APIURL: record.APIURL})
		if err != nil {
			return err
		}
		batchSize = len(schema.RelatedBatch(related, record))
	}
	return outwriter.WriteRecord(enrich(cfg, []schema.CommentAnalysis{record})[0], batchSize, cfg)
}

// ExecuteHistoryDelete removes a single history record.
func ExecuteHistoryDelete(ctx context.Context, _ *contract.Config, mgr contract.CacheManager, id string) error {
	if _, err := GetHistoryRecord(ctx, mgr, id); err != nil {
		return fmt.Errorf("failed to load %s: %w", id, err)
	}
	if err := historyStore(mgr).Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", id, err)
	}
	fmt.Printf("Deleted history record %s\n", id)
	return nil
}

func printCorpusTooSmall(docs int) {
	fmt.Fprintf(os.Stderr, "Not enough history for corpus analysis: found %d record(s), need at least %d.\n", docs, agg.MinCorpusSize)
}
