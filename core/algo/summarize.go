package algo

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/commentiq/core/lexicon"
	"github.com/huangsam/commentiq/schema"
)

const (
	minSummarySentences = 2   // texts with at most this many sentences pass through
	minSummaryWords     = 30  // texts with fewer words pass through
	summaryShare        = 0.4 // fraction of sentences kept
)

type scoredSentence struct {
	text     string
	score    float64
	position int
}

// Summarize builds an extractive summary by keeping the sentences whose
// words are most frequent across the whole text, in their original order.
// Short texts are returned unchanged with a compression ratio of 100.
func Summarize(text string) schema.Summary {
	sentences := lexicon.Sentences(text)
	words := lexicon.Words(text)

	if len(sentences) <= minSummarySentences || len(words) < minSummaryWords {
		return schema.Summary{
			Text:             text,
			CompressionRatio: 100,
			WordCount:        len(words),
		}
	}

	freq := make(map[string]int)
	for _, w := range words {
		lower := strings.ToLower(w)
		if len(lower) > 3 && !lexicon.IsSummaryStopWord(lower) {
			freq[lower]++
		}
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		sentenceWords := lexicon.Words(strings.ToLower(s))
		total := 0
		for _, w := range sentenceWords {
			total += freq[w]
		}
		scored[i] = scoredSentence{
			text:     s,
			score:    float64(total) / float64(max(len(sentenceWords), 1)),
			position: i,
		}
	}

	slices.SortStableFunc(scored, func(a, b scoredSentence) int {
		return cmp.Compare(b.score, a.score)
	})
	target := max(minSummarySentences, int(math.Ceil(float64(len(sentences))*summaryShare)))
	top := scored[:min(target, len(scored))]
	slices.SortFunc(top, func(a, b scoredSentence) int {
		return a.position - b.position
	})

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	summaryText := strings.Join(parts, " ")
	summaryWords := len(lexicon.Words(summaryText))

	return schema.Summary{
		Text:             summaryText,
		CompressionRatio: int(math.Round(float64(summaryWords) / float64(len(words)) * 100)),
		WordCount:        summaryWords,
	}
}
