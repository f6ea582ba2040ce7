package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/commentiq/core/agg"
	"github.com/huangsam/commentiq/core/algo"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/internal/fetch"
	"github.com/huangsam/commentiq/internal/report"
	"github.com/huangsam/commentiq/schema"
)

var (
	// ErrHistoryDisabled is returned by commands that read history when no store is configured.
	ErrHistoryDisabled = errors.New("history is disabled; set --history-backend to enable it")

	// ErrCorpusTooSmall is returned when a corpus has fewer than two records.
	ErrCorpusTooSmall = fmt.Errorf("corpus analysis needs at least %d analyzed comments", agg.MinCorpusSize)
)

// GetAnalyzeResults analyzes texts from one source and saves the successes to history.
// An error is returned only when nothing could be analyzed.
func GetAnalyzeResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, texts []string, source schema.Source, apiURL string) (schema.BatchOutput, error) {
	if len(texts) == 0 {
		return schema.BatchOutput{}, ErrEmptyInput
	}

	items := AnalyzeBatch(ctx, cfg, mgr, texts)
	output, firstErr := collectAnalyses(items, source, apiURL)
	if len(output.Analyses) == 0 {
		return output, firstErr
	}

	if err := saveHistory(ctx, cfg, mgr, output.Analyses); err != nil {
		return output, err
	}
	return output, nil
}

// GetFetchResults fetches every URL in turn and analyzes its comments as an API batch.
func GetFetchResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, urls []string) ([]schema.FetchOutput, error) {
	fetcher := fetch.NewFetcher(ctx, cfg)
	results := make([]schema.FetchOutput, 0, len(urls))
	for _, apiURL := range urls {
		comments, err := fetcher.Fetch(ctx, apiURL)
		if err != nil {
			return results, fmt.Errorf("failed to fetch %s: %w", apiURL, err)
		}
		output, err := GetAnalyzeResults(ctx, cfg, mgr, comments, schema.APISource, apiURL)
		if err != nil {
			return results, fmt.Errorf("failed to analyze %s: %w", apiURL, err)
		}
		results = append(results, schema.FetchOutput{APIURL: apiURL, BatchOutput: output})
	}
	return results, nil
}

// GetHistoryResults lists history records narrowed by cfg.Filter.
func GetHistoryResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CommentAnalysis, error) {
	store := historyStore(mgr)
	if store == nil {
		return nil, ErrHistoryDisabled
	}
	return store.List(ctx, cfg.Filter)
}

// GetHistoryRecord returns one history record by id.
func GetHistoryRecord(ctx context.Context, mgr contract.CacheManager, id string) (schema.CommentAnalysis, error) {
	store := historyStore(mgr)
	if store == nil {
		return schema.CommentAnalysis{}, ErrHistoryDisabled
	}
	return store.Get(ctx, id)
}

// GetCorpusWordsResults ranks word frequencies over the selected history.
// It also returns how many records made up the corpus.
func GetCorpusWordsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.WordFrequency, int, error) {
	records, err := loadCorpus(ctx, cfg, mgr)
	if err != nil {
		return nil, len(records), err
	}
	words := agg.AnalyzeWordFrequency(schema.Documents(records))
	if len(words) > cfg.Limit && cfg.Limit > 0 {
		words = words[:cfg.Limit]
	}
	return words, len(records), nil
}

// GetCorpusKeywordsResults links keywords to document sentiment over the selected history.
// cfg.Dominant keeps keywords dominated by one label; cfg.Influential ranks by influence.
func GetCorpusKeywordsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.KeywordSentiment, int, error) {
	records, err := loadCorpus(ctx, cfg, mgr)
	if err != nil {
		return nil, len(records), err
	}
	keywords := agg.AnalyzeKeywordSentiment(schema.Documents(records))
	switch {
	case cfg.Dominant != "":
		keywords = agg.TopKeywordsBySentiment(keywords, cfg.Dominant, cfg.Limit)
	case cfg.Influential:
		keywords = agg.MostInfluentialKeywords(keywords, cfg.Limit)
	case cfg.Limit > 0 && len(keywords) > cfg.Limit:
		keywords = keywords[:cfg.Limit]
	}
	return keywords, len(records), nil
}

// GetReportResults renders the plain-text report over the selected history.
// A set API URL filter makes that URL the report source.
func GetReportResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (string, error) {
	records, err := loadAll(ctx, cfg, mgr)
	if err != nil {
		return "", err
	}
	return report.Build(records, cfg.Filter.APIURL, time.Now())
}

// enrich ranks records and adds cross-check scores when enabled.
func enrich(cfg *contract.Config, records []schema.CommentAnalysis) []schema.EnrichedAnalysis {
	if cfg.Crosscheck {
		return schema.EnrichAnalyses(records, algo.VaderCompound)
	}
	return schema.EnrichAnalyses(records, nil)
}

// saveHistory persists records unless saving is turned off.
func saveHistory(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, records []schema.CommentAnalysis) error {
	if cfg.NoSave || shouldSkipHistory(ctx) || len(records) == 0 {
		return nil
	}
	store := historyStore(mgr)
	if store == nil {
		return nil
	}
	if err := store.Save(ctx, records...); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// loadAll returns every record matching the filter, ignoring its limit.
func loadAll(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CommentAnalysis, error) {
	store := historyStore(mgr)
	if store == nil {
		return nil, ErrHistoryDisabled
	}
	filter := cfg.Filter
	filter.Limit = 0
	return store.List(ctx, filter)
}

func loadCorpus(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CommentAnalysis, error) {
	records, err := loadAll(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}
	if len(records) < agg.MinCorpusSize {
		return records, ErrCorpusTooSmall
	}
	return records, nil
}
