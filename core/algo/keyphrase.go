package algo

import (
	"slices"

	"github.com/huangsam/commentiq/core/lexicon"
)

// maxKeyPhrases is how many key phrases a single text yields at most.
const maxKeyPhrases = 8

// ExtractKeyPhrases returns up to eight distinct lowercase words of four or
// more letters, most frequent first. Equal counts keep first-occurrence order.
func ExtractKeyPhrases(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range lexicon.PhraseCandidates(text) {
		if lexicon.IsPhraseStopWord(w) {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if len(order) > maxKeyPhrases {
		order = order[:maxKeyPhrases]
	}
	if order == nil {
		return []string{}
	}
	return order
}
