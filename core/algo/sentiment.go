// Package algo holds the single-text analyzers: sentiment, key phrases,
// extractive summary and surface statistics.
package algo

import (
	"math"
	"strings"

	"github.com/huangsam/commentiq/core/lexicon"
	"github.com/huangsam/commentiq/schema"
)

const (
	// maxConfidence caps how sure a lexicon match can claim to be.
	maxConfidence = 0.95

	// densityFloor keeps one sentiment word in a long text from scoring +/-1.
	densityFloor = 0.1
)

// ScoreSentiment scores the polarity of text from lexicon hits.
//
// The raw score is (positive - negative) / max(hits, 10% of tokens), so sparse
// hits in long texts are damped. It is clamped to [-1, 1] before labeling.
func ScoreSentiment(text string) schema.Sentiment {
	words := lexicon.Words(strings.ToLower(text))

	var positive, negative int
	for _, w := range words {
		if lexicon.IsPositive(w) {
			positive++
		}
		if lexicon.IsNegative(w) {
			negative++
		}
	}

	hits := positive + negative
	var score float64
	if hits > 0 {
		denominator := math.Max(float64(hits), float64(len(words))*densityFloor)
		score = float64(positive-negative) / denominator
	}
	score = math.Max(-1, math.Min(1, score))

	var density float64
	if len(words) > 0 {
		density = float64(hits) / float64(len(words))
	}
	confidence := math.Min(maxConfidence, math.Abs(score)*0.7+density*0.3)

	return schema.Sentiment{
		Score:      score,
		Label:      schema.GetPlainLabel(score),
		Confidence: confidence,
	}
}
