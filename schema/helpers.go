package schema

import "strings"

// FormatKeyPhrases joins key phrases for tabular display.
func FormatKeyPhrases(phrases []string) string {
	if len(phrases) == 0 {
		return "None"
	}
	return strings.Join(phrases, ", ")
}

// ParseSentimentLabel converts a user supplied string into a label.
// The empty string is accepted and means "any label".
func ParseSentimentLabel(s string) (SentimentLabel, bool) {
	label := SentimentLabel(strings.ToLower(strings.TrimSpace(s)))
	if label == "" {
		return "", true
	}
	_, ok := ValidSentimentLabels[label]
	return label, ok
}

// ParseSource converts a user supplied string into a source.
// The empty string is accepted and means "any source".
func ParseSource(s string) (Source, bool) {
	source := Source(strings.ToLower(strings.TrimSpace(s)))
	if source == "" {
		return "", true
	}
	_, ok := ValidSources[source]
	return source, ok
}
