package core

import "context"

// Context keys for execution options
type contextKey string

const skipHistoryKey contextKey = "skipHistory"

// WithSkipHistory marks the context so analyses are not saved to history.
func WithSkipHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHistoryKey, true)
}

// shouldSkipHistory returns whether saving to history is disabled for this context
func shouldSkipHistory(ctx context.Context) bool {
	val := ctx.Value(skipHistoryKey)
	if val == nil {
		return false // default: save history
	}
	skip, ok := val.(bool)
	return ok && skip
}
