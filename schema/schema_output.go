package schema

// EnrichedAnalysis adds presentation data to a CommentAnalysis.
type EnrichedAnalysis struct {
	Rank          int      `json:"rank"`
	VaderCompound *float64 `json:"vaderCompound,omitempty"`
	CommentAnalysis
}

// GetPlainLabel returns the sentiment bucket for a score using the 0.1 thresholds.
func GetPlainLabel(score float64) SentimentLabel {
	switch {
	case score > 0.1:
		return Positive
	case score < -0.1:
		return Negative
	default:
		return Neutral
	}
}

// EnrichAnalyses adds rank to a list of analyses. A non-nil crosscheck
// computes the VADER compound score for each original text.
func EnrichAnalyses(analyses []CommentAnalysis, crosscheck func(string) float64) []EnrichedAnalysis {
	output := make([]EnrichedAnalysis, len(analyses))
	for i, a := range analyses {
		output[i] = EnrichedAnalysis{
			Rank:            i + 1,
			CommentAnalysis: a,
		}
		if crosscheck != nil {
			v := crosscheck(a.OriginalText)
			output[i].VaderCompound = &v
		}
	}
	return output
}
