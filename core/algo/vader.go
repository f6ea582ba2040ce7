package algo

import "github.com/jonreiter/govader"

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

// VaderCompound returns the VADER compound polarity of text in [-1, 1].
// It is an independent reference score shown next to the lexicon score.
func VaderCompound(text string) float64 {
	return vaderAnalyzer.PolarityScores(text).Compound
}
