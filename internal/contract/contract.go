// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/huangsam/commentiq/schema"
)

// ErrRecordNotFound is returned when a history lookup has no match.
var ErrRecordNotFound = errors.New("history record not found")

// CacheManager defines the interface for managing stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetResultStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for analysis result caching.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for persisting analyzed comments.
type HistoryStore interface {
	// Save persists records so the first record lists first among them,
	// ahead of everything saved earlier.
	Save(ctx context.Context, records ...schema.CommentAnalysis) error

	// List returns records newest first, narrowed by filter.
	List(ctx context.Context, filter schema.HistoryFilter) ([]schema.CommentAnalysis, error)

	// Get returns a single record by id.
	Get(ctx context.Context, id string) (schema.CommentAnalysis, error)

	// Delete removes a record by id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
