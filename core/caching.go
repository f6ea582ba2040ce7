package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cachedAnalyze returns the analysis of text, reusing a cached result when one exists.
func cachedAnalyze(store contract.CacheStore, text string) (schema.AnalysisResult, error) {
	if store == nil {
		// Fallback to direct computation
		return Analyze(text)
	}

	key := generateCacheKey(text)

	// Check for cache hit
	if result := checkCacheHit(store, key); result != nil {
		slog.Debug("Cache hit", "key", key[:12])
		return *result, nil
	}

	// Cache miss: compute and store
	slog.Debug("Cache miss", "key", key[:12])
	return computeAndStore(store, text, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.AnalysisResult {
	data, version, _, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Results never go stale because analysis is deterministic
	if version == currentCacheVersion {
		var result schema.AnalysisResult
		if err := json.Unmarshal(data, &result); err == nil {
			return &result // Cache hit
		}
	}

	return nil // Cache miss (version mismatch or corrupt entry)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(store contract.CacheStore, text, key string) (schema.AnalysisResult, error) {
	result, err := Analyze(text)
	if err != nil {
		return schema.AnalysisResult{}, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			slog.Debug("Cache write failed", "key", key[:12], "error", err)
		}
	}

	return result, nil
}

// generateCacheKey hashes the exact text so any change is a different entry
func generateCacheKey(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}
