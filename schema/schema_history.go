package schema

import "strings"

// HistoryFilter narrows a history listing. Zero values match everything.
type HistoryFilter struct {
	Search string         // Case-insensitive substring of text, label or source
	Label  SentimentLabel // Exact sentiment label
	Source Source         // Exact source
	APIURL string         // Exact API URL of a fetched batch
	Limit  int            // Maximum records returned, 0 for all
}

// Matches reports whether a record passes every set criterion except Limit.
func (f HistoryFilter) Matches(r CommentAnalysis) bool {
	if f.Label != "" && r.Sentiment.Label != f.Label {
		return false
	}
	if f.Source != "" && r.Source != f.Source {
		return false
	}
	if f.APIURL != "" && r.APIURL != f.APIURL {
		return false
	}
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(r.OriginalText), term) ||
		strings.Contains(string(r.Sentiment.Label), term) ||
		strings.Contains(string(r.Source), term)
}

// Apply filters records in order and truncates to Limit.
func (f HistoryFilter) Apply(records []CommentAnalysis) []CommentAnalysis {
	out := make([]CommentAnalysis, 0, len(records))
	for _, r := range records {
		if !f.Matches(r) {
			continue
		}
		out = append(out, r)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// RelatedBatch returns the records fetched from the same API URL as target.
// User-sourced targets have no batch and yield nil.
func RelatedBatch(records []CommentAnalysis, target CommentAnalysis) []CommentAnalysis {
	if target.Source != APISource || target.APIURL == "" {
		return nil
	}
	return HistoryFilter{Source: APISource, APIURL: target.APIURL}.Apply(records)
}
