package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestContextSkipHistory tests that the skip flag is scoped to derived contexts.
func TestContextSkipHistory(t *testing.T) {
	base := context.Background()
	assert.False(t, shouldSkipHistory(base))

	skipped := WithSkipHistory(base)
	assert.True(t, shouldSkipHistory(skipped))
	assert.False(t, shouldSkipHistory(base), "parent context should be untouched")

	child, cancel := context.WithCancel(skipped)
	defer cancel()
	assert.True(t, shouldSkipHistory(child))

	// A foreign value under the same key type is ignored
	wrong := context.WithValue(base, skipHistoryKey, "yes")
	assert.False(t, shouldSkipHistory(wrong))
}

// TestContextConcurrentAccess tests that context values can be safely read concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := WithSkipHistory(context.Background())

	const numGoroutines = 50
	done := make(chan bool, numGoroutines)
	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()
			assert.True(t, shouldSkipHistory(ctx), "Goroutine %d: shouldSkipHistory should be true", id)
		}(i)
	}
	for range numGoroutines {
		<-done
	}
}
