package algo

import (
	"math"

	"github.com/huangsam/commentiq/core/lexicon"
	"github.com/huangsam/commentiq/schema"
)

// CalculateStatistics computes word and sentence counts, the mean word length
// and a Flesch-style readability score clamped to [0, 100].
func CalculateStatistics(text string) schema.Statistics {
	words := lexicon.Words(text)
	wordCount := len(words)
	sentenceCount := max(len(lexicon.RawSentences(text)), 1)

	letters := 0
	for _, w := range words {
		letters += len(w)
	}
	avgWordLength := float64(letters) / float64(max(wordCount, 1))

	avgWordsPerSentence := float64(wordCount) / float64(sentenceCount)
	readability := 206.835 - 1.015*avgWordsPerSentence - 84.6*(avgWordLength/5)
	readability = math.Max(0, math.Min(100, readability))

	return schema.Statistics{
		OriginalWordCount: wordCount,
		SentenceCount:     sentenceCount,
		AvgWordLength:     math.Round(avgWordLength*10) / 10,
		ReadabilityScore:  int(math.Round(readability)),
	}
}
