// Package agg has corpus-level aggregation over analyzed comments.
package agg

import (
	"cmp"
	"math"
	"slices"

	"github.com/huangsam/commentiq/core/lexicon"
	"github.com/huangsam/commentiq/schema"
)

const (
	// MinCorpusSize is the fewest documents worth aggregating. Callers
	// show nothing below it.
	MinCorpusSize = 2

	// minKeywordOccurrences drops keywords seen in a single document.
	minKeywordOccurrences = 2

	// DefaultTopKeywords is the default limit for TopKeywordsBySentiment.
	DefaultTopKeywords = 10

	// DefaultInfluentialKeywords is the default limit for MostInfluentialKeywords.
	DefaultInfluentialKeywords = 20
)

// AnalyzeWordFrequency counts eligible words across all documents.
// Percentages are relative to the total number of eligible occurrences.
// The result is sorted by count descending, ties in first-seen order.
func AnalyzeWordFrequency(docs []schema.Document) []schema.WordFrequency {
	// 1. Count every eligible token, remembering first-seen order
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, doc := range docs {
		for _, word := range lexicon.CorpusTokens(doc.Text) {
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
			total++
		}
	}

	// 2. Convert to records
	result := make([]schema.WordFrequency, len(order))
	for i, word := range order {
		result[i] = schema.WordFrequency{
			Word:       word,
			Count:      counts[word],
			Percentage: float64(counts[word]) / float64(total) * 100,
		}
	}

	// 3. Rank
	slices.SortStableFunc(result, func(a, b schema.WordFrequency) int {
		return b.Count - a.Count
	})
	return result
}

// AnalyzeKeywordSentiment links each eligible word to the sentiment labels of
// the documents it appears in. A word counts once per document. Words found
// in fewer than two documents are dropped.
func AnalyzeKeywordSentiment(docs []schema.Document) []schema.KeywordSentiment {
	// 1. Tally distinct words per document into the document's label bucket
	buckets := make(map[string]*schema.SentimentCounts)
	var order []string
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, word := range lexicon.CorpusTokens(doc.Text) {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			counts, ok := buckets[word]
			if !ok {
				counts = &schema.SentimentCounts{}
				buckets[word] = counts
				order = append(order, word)
			}
			counts.Add(doc.Label)
		}
	}

	// 2. Derive totals, dominance and score
	var result []schema.KeywordSentiment
	for _, word := range order {
		counts := *buckets[word]
		total := counts.Total()
		if total < minKeywordOccurrences {
			continue
		}
		result = append(result, schema.KeywordSentiment{
			Word:              word,
			Sentiments:        counts,
			TotalOccurrences:  total,
			DominantSentiment: dominantSentiment(counts),
			SentimentScore:    float64(counts.Positive-counts.Negative) / float64(total),
		})
	}

	// 3. Rank
	slices.SortStableFunc(result, func(a, b schema.KeywordSentiment) int {
		return b.TotalOccurrences - a.TotalOccurrences
	})
	return result
}

// dominantSentiment picks the largest bucket. Neutral wins ties with either
// polarity, and positive wins a tie with negative.
func dominantSentiment(c schema.SentimentCounts) schema.SentimentLabel {
	dominant, best := schema.Neutral, c.Neutral
	if c.Positive > best {
		dominant, best = schema.Positive, c.Positive
	}
	if c.Negative > best {
		dominant = schema.Negative
	}
	return dominant
}

// TopKeywordsBySentiment keeps keywords whose dominant sentiment is label,
// in their existing order, up to limit. A non-positive limit uses the default.
func TopKeywordsBySentiment(keywords []schema.KeywordSentiment, label schema.SentimentLabel, limit int) []schema.KeywordSentiment {
	if limit <= 0 {
		limit = DefaultTopKeywords
	}
	var result []schema.KeywordSentiment
	for _, k := range keywords {
		if k.DominantSentiment != label {
			continue
		}
		result = append(result, k)
		if len(result) == limit {
			break
		}
	}
	return result
}

// MostInfluentialKeywords ranks keywords by |score| x occurrences and keeps
// up to limit of them. The input slice is left untouched.
// A non-positive limit uses the default.
func MostInfluentialKeywords(keywords []schema.KeywordSentiment, limit int) []schema.KeywordSentiment {
	if limit <= 0 {
		limit = DefaultInfluentialKeywords
	}
	ranked := slices.Clone(keywords)
	slices.SortStableFunc(ranked, func(a, b schema.KeywordSentiment) int {
		return cmp.Compare(influence(b), influence(a))
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func influence(k schema.KeywordSentiment) float64 {
	return math.Abs(k.SentimentScore) * float64(k.TotalOccurrences)
}
