// Package lexicon holds the static word lists and tokenizers shared by the analyzers.
//
// Every set is built once at package init and never mutated afterwards, so the
// lookups are safe for concurrent use without locking.
package lexicon

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`\b\w+\b`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)
	phrasePattern   = regexp.MustCompile(`\b[a-z]{4,}\b`)
	corpusPattern   = regexp.MustCompile(`\b[a-z]{3,}\b`)
)

var positiveWords = newSet(
	"good", "great", "excellent", "amazing", "wonderful", "fantastic", "love", "best",
	"perfect", "beautiful", "awesome", "brilliant", "outstanding", "superb", "nice",
	"happy", "joy", "pleased", "delighted", "satisfied", "impressive", "remarkable",
	"exceptional", "fabulous", "terrific", "magnificent", "marvelous", "splendid",
	"recommend", "helpful", "quality", "enjoyed", "thank", "thanks", "appreciate",
)

var negativeWords = newSet(
	"bad", "terrible", "horrible", "awful", "poor", "worst", "hate", "disappointing",
	"sad", "angry", "upset", "frustrated", "annoyed", "inferior", "inadequate",
	"unsatisfactory", "deficient", "lacking", "subpar", "mediocre", "dreadful",
	"atrocious", "abysmal", "pathetic", "useless", "worthless", "waste", "broken",
	"failed", "issue", "problem", "difficult", "never", "unfortunately",
)

// summaryStopList is the shortest stop list. The other lists extend it.
var summaryStopList = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "he",
	"in", "is", "it", "its", "of", "on", "that", "the", "to", "was", "will", "with",
}

var phraseStopList = append(append([]string{}, summaryStopList...),
	"i", "you", "we", "they", "this", "but", "or", "not", "have", "had", "do", "does",
)

var corpusStopList = append(append([]string{}, phraseStopList...),
	"been", "being", "were", "can", "could", "would", "should", "may", "might", "must",
	"his", "her", "their", "our", "your", "my", "me", "him", "them", "us", "she", "who",
	"which", "what", "where", "when", "why", "how", "all", "each", "every", "some", "any",
	"few", "more", "most", "other", "such", "than", "too", "very", "just", "about", "into",
	"through", "during", "before", "after", "above", "below", "up", "down", "out", "off",
	"over", "under", "again", "further", "then", "once",
)

var (
	summaryStopWords = newSet(summaryStopList...)
	phraseStopWords  = newSet(phraseStopList...)
	corpusStopWords  = newSet(corpusStopList...)
)

type set map[string]struct{}

func newSet(words ...string) set {
	s := make(set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s set) has(word string) bool {
	_, ok := s[word]
	return ok
}

// IsPositive reports whether a lowercase token is in the positive lexicon.
func IsPositive(word string) bool { return positiveWords.has(word) }

// IsNegative reports whether a lowercase token is in the negative lexicon.
func IsNegative(word string) bool { return negativeWords.has(word) }

// IsSummaryStopWord reports membership in the summarizer stop set.
func IsSummaryStopWord(word string) bool { return summaryStopWords.has(word) }

// IsPhraseStopWord reports membership in the key-phrase stop set.
func IsPhraseStopWord(word string) bool { return phraseStopWords.has(word) }

// IsCorpusStopWord reports membership in the corpus stop set.
func IsCorpusStopWord(word string) bool { return corpusStopWords.has(word) }

// Words returns the word-character runs of text, case preserved.
func Words(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// RawSentences returns the untrimmed sentence matches of text, or nil when
// the text has no terminal punctuation.
func RawSentences(text string) []string {
	return sentencePattern.FindAllString(text, -1)
}

// Sentences splits text into trimmed sentences. Text without terminal
// punctuation is returned whole as a single sentence.
func Sentences(text string) []string {
	matches := RawSentences(text)
	if len(matches) == 0 {
		return []string{text}
	}
	for i, m := range matches {
		matches[i] = strings.TrimSpace(m)
	}
	return matches
}

// PhraseCandidates returns lowercase alphabetic tokens of four or more letters.
func PhraseCandidates(text string) []string {
	return phrasePattern.FindAllString(strings.ToLower(text), -1)
}

// CorpusTokens returns lowercase alphabetic tokens of three or more letters
// that are not corpus stop words.
func CorpusTokens(text string) []string {
	matches := corpusPattern.FindAllString(strings.ToLower(text), -1)
	tokens := matches[:0]
	for _, m := range matches {
		if !IsCorpusStopWord(m) {
			tokens = append(tokens, m)
		}
	}
	return tokens
}
