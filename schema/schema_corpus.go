package schema

// WordFrequency is the corpus-wide count of one eligible word.
type WordFrequency struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // Share of all eligible occurrences
}

// SentimentCounts tallies documents per sentiment label.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Add increments the bucket for label. Unknown labels are ignored.
func (c *SentimentCounts) Add(label SentimentLabel) {
	switch label {
	case Positive:
		c.Positive++
	case Negative:
		c.Negative++
	case Neutral:
		c.Neutral++
	}
}

// Total is the sum of all buckets.
func (c SentimentCounts) Total() int {
	return c.Positive + c.Negative + c.Neutral
}

// KeywordSentiment links a word to the labels of documents containing it.
type KeywordSentiment struct {
	Word              string          `json:"word"`
	Sentiments        SentimentCounts `json:"sentiments"`
	TotalOccurrences  int             `json:"totalOccurrences"`
	DominantSentiment SentimentLabel  `json:"dominantSentiment"`
	SentimentScore    float64         `json:"sentimentScore"` // (positive - negative) / total
}
