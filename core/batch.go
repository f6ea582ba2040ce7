package core

import (
	"context"
	"sync"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

// BatchItem is the outcome for one document of a batch.
type BatchItem struct {
	Text   string
	Result schema.AnalysisResult
	Err    error
}

// AnalyzeBatch analyzes texts with cfg.Workers goroutines. The output keeps
// input order and each item carries its own error. Once ctx is done, documents
// that have not started yet carry the context error.
func AnalyzeBatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, texts []string) []BatchItem {
	items := make([]BatchItem, len(texts))
	if len(texts) == 0 {
		return items
	}
	store := resultStore(mgr)

	jobs := make(chan int, len(texts))
	var wg sync.WaitGroup
	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					items[i].Err = err
					continue
				}
				items[i].Result, items[i].Err = cachedAnalyze(store, texts[i])
			}
		})
	}

	for i, text := range texts {
		items[i].Text = text
		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}

// collectAnalyses turns batch items into history records and failures.
// The first failure is also returned as an error value.
func collectAnalyses(items []BatchItem, source schema.Source, apiURL string) (schema.BatchOutput, error) {
	output := schema.BatchOutput{
		Analyses: make([]schema.CommentAnalysis, 0, len(items)),
		Failures: []schema.BatchFailure{},
	}
	var firstErr error
	for i, item := range items {
		if item.Err != nil {
			if firstErr == nil {
				firstErr = item.Err
			}
			output.Failures = append(output.Failures, schema.BatchFailure{
				Line:  i + 1,
				Text:  item.Text,
				Error: item.Err.Error(),
			})
			continue
		}
		output.Analyses = append(output.Analyses, NewCommentAnalysis(item.Text, source, apiURL, item.Result))
	}
	return output, firstErr
}

func resultStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetResultStore()
}

func historyStore(mgr contract.CacheManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}
