package algo

import (
	"strings"
	"testing"

	"github.com/huangsam/commentiq/schema"
	"github.com/stretchr/testify/assert"
)

func TestScoreSentiment(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		score      float64
		label      schema.SentimentLabel
		confidence float64
	}{
		{
			name:       "clear positive",
			text:       "This product is excellent and amazing!",
			score:      1.0,
			label:      schema.Positive,
			confidence: 0.8,
		},
		{
			name:       "mixed leaning negative",
			text:       "Terrible quality, very disappointing.",
			score:      -1.0 / 3.0,
			label:      schema.Negative,
			confidence: 0.4583,
		},
		{
			name:       "no lexicon words",
			text:       "The package arrived on Tuesday.",
			score:      0,
			label:      schema.Neutral,
			confidence: 0,
		},
		{
			name:       "sparse hit is damped",
			text:       "good" + strings.Repeat(" word", 19),
			score:      0.5,
			label:      schema.Positive,
			confidence: 0.365,
		},
		{
			name:       "threshold score stays neutral",
			text:       "good" + strings.Repeat(" word", 99),
			score:      0.1,
			label:      schema.Neutral,
			confidence: 0.073,
		},
		{
			name:       "case insensitive",
			text:       "AWFUL. HORRIBLE.",
			score:      -1.0,
			label:      schema.Negative,
			confidence: 0.95,
		},
		{
			name:       "punctuation only",
			text:       "?!",
			score:      0,
			label:      schema.Neutral,
			confidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSentiment(tt.text)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-4)
		})
	}
}

func TestScoreSentimentBounds(t *testing.T) {
	texts := []string{
		"",
		"good good good good",
		"bad bad bad",
		"good bad good bad never issue problem thanks",
		strings.Repeat("broken ", 200),
		"Never again. Unfortunately the quality was fine.",
	}
	for _, text := range texts {
		got := ScoreSentiment(text)
		assert.GreaterOrEqual(t, got.Score, -1.0, text)
		assert.LessOrEqual(t, got.Score, 1.0, text)
		assert.GreaterOrEqual(t, got.Confidence, 0.0, text)
		assert.LessOrEqual(t, got.Confidence, 0.95, text)
		assert.Equal(t, schema.GetPlainLabel(got.Score), got.Label, text)
		assert.Equal(t, got, ScoreSentiment(text), "scoring must be deterministic")
	}
}

func BenchmarkScoreSentiment(b *testing.B) {
	text := strings.Repeat("The support team was helpful but the app is broken. ", 20)
	for b.Loop() {
		ScoreSentiment(text)
	}
}
