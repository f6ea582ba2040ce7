package algo

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const phoneReview = "The battery life on this phone is outstanding and lasts two full days. " +
	"The camera takes sharp photos in daylight. Shipping took a while to arrive. " +
	"The battery charges quickly and the battery never overheats. Overall the phone feels solid in hand."

func TestSummarizePassthrough(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wordCount int
	}{
		{"two sentences", "Short text. Two sentences.", 4},
		{"few words", "One. Two. Three. Four.", 4},
		{"no punctuation", "just some words without any ending", 6},
		{
			name:      "many words but two sentences",
			text:      strings.Repeat("word ", 40) + "end. Last one.",
			wordCount: 43,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.text)
			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, 100, got.CompressionRatio)
			assert.Equal(t, tt.wordCount, got.WordCount)
		})
	}
}

func TestSummarizeSelectsFrequentSentences(t *testing.T) {
	got := Summarize(phoneReview)

	assert.Equal(t, "The battery charges quickly and the battery never overheats. Overall the phone feels solid in hand.", got.Text)
	assert.Equal(t, 16, got.WordCount)
	assert.Equal(t, 38, got.CompressionRatio)
}

func TestSummarizeSelectionCount(t *testing.T) {
	sentence := "Every sentence here carries exactly seven words. "
	for _, n := range []int{5, 6, 9, 12} {
		text := strings.Repeat(sentence, n)
		got := Summarize(text)
		expected := max(2, int(math.Ceil(float64(n)*0.4)))
		assert.Equal(t, expected*7, got.WordCount, "sentences=%d", n)
		assert.Equal(t, strings.TrimSpace(strings.Repeat(sentence, expected)), got.Text)
		assert.LessOrEqual(t, got.CompressionRatio, 100)
	}
}

func BenchmarkSummarize(b *testing.B) {
	text := strings.Repeat(phoneReview+" ", 10)
	for b.Loop() {
		Summarize(text)
	}
}
