// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides an in-memory response cache for analysis results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/model"
)

// =============================================================================
// RESULT CACHE
// =============================================================================

// ResultCache caches analysis results keyed by snippet content and model.
// A snippet analyzed twice with the same model returns the stored result
// without another inference call.
//
// The cache holds entries for the lifetime of the process; there is no
// eviction or TTL. Entries are only removed by Clear.
type ResultCache struct {
	mu    sync.RWMutex
	cache map[string]*Entry

	// Statistics
	hits   int
	misses int
}

// Entry represents a cached analysis result.
type Entry struct {
	Key      string
	Result   *model.AnalysisResult
	CachedAt time.Time
}

// Stats holds cache statistics.
type Stats struct {
	Hits       int
	Misses     int
	EntryCount int
	HitRate    float64
}

// New creates an empty result cache.
func New() *ResultCache {
	return &ResultCache{
		cache: make(map[string]*Entry),
	}
}

// Key derives the cache key for a snippet/model pair. The snippet is
// normalized so that leading and trailing whitespace does not produce a
// distinct key.
func Key(snippet, modelName string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(snippet)))
	h.Write([]byte{0})
	h.Write([]byte(modelName))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached result for the snippet/model pair.
// Returns the result and whether it was a cache hit.
func (rc *ResultCache) Get(snippet, modelName string) (*model.AnalysisResult, bool) {
	key := Key(snippet, modelName)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, ok := rc.cache[key]
	if !ok {
		rc.misses++
		return nil, false
	}

	rc.hits++

	// Return a copy so callers can mark it as served-from-cache without
	// mutating the stored entry.
	result := *entry.Result
	result.FromCache = true
	return &result, true
}

// Put stores a result for the snippet/model pair. An existing entry for
// the same pair is overwritten.
func (rc *ResultCache) Put(snippet, modelName string, result *model.AnalysisResult) {
	if result == nil {
		return
	}
	key := Key(snippet, modelName)

	stored := *result
	stored.FromCache = false

	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache[key] = &Entry{
		Key:      key,
		Result:   &stored,
		CachedAt: time.Now(),
	}
}

// Contains reports whether a result is cached for the snippet/model pair
// without affecting hit/miss statistics.
func (rc *ResultCache) Contains(snippet, modelName string) bool {
	key := Key(snippet, modelName)

	rc.mu.RLock()
	defer rc.mu.RUnlock()

	_, ok := rc.cache[key]
	return ok
}

// Clear removes all entries from the cache. Statistics are preserved.
func (rc *ResultCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[string]*Entry)
}

// Len returns the number of cached entries.
func (rc *ResultCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.cache)
}

// Stats returns cache statistics.
func (rc *ResultCache) Stats() Stats {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	hitRate := 0.0
	total := rc.hits + rc.misses
	if total > 0 {
		hitRate = float64(rc.hits) / float64(total)
	}

	return Stats{
		Hits:       rc.hits,
		Misses:     rc.misses,
		EntryCount: len(rc.cache),
		HitRate:    hitRate,
	}
}
