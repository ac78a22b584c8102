// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records completed analyses and their metrics.
package history

import (
	"sync"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/model"
)

// =============================================================================
// RECORDER
// =============================================================================

// Entry is one completed analysis in the session history.
type Entry struct {
	RequestID    string
	Timestamp    time.Time
	Preview      string
	Model        string
	Latency      time.Duration
	InputTokens  int
	OutputTokens int
	FromCache    bool
}

// Summary aggregates session-level metrics.
type Summary struct {
	Count        int
	CacheHits    int
	TotalLatency time.Duration
	AvgLatency   time.Duration
	InputTokens  int
	OutputTokens int
}

// Recorder keeps an ordered in-memory history of analyses for the current
// session. When a Store is attached, fresh results are also persisted.
//
// The Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.RWMutex
	entries []Entry
	prior   []time.Duration
	store   *Store
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// AttachStore attaches a persistent store. Subsequent fresh results are
// written through; cached results are recorded in memory only.
func (r *Recorder) AttachStore(store *Store) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store = store
}

// Record appends a result to the history.
func (r *Recorder) Record(req *model.AnalysisRequest, result *model.AnalysisResult) {
	if req == nil || result == nil {
		return
	}

	entry := Entry{
		RequestID:    result.RequestID,
		Timestamp:    result.Timestamp,
		Preview:      req.Preview(60),
		Model:        result.Model,
		Latency:      result.Latency,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		FromCache:    result.FromCache,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	store := r.store
	r.mu.Unlock()

	// Cache hits carry the latency of the original call; persisting them
	// again would double-count.
	if store != nil && !result.FromCache {
		_ = store.Insert(entry)
	}
}

// Entries returns a copy of the history in insertion order.
func (r *Recorder) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Recent returns up to n most recent entries, oldest first.
func (r *Recorder) Recent(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || len(r.entries) == 0 {
		return nil
	}
	start := len(r.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(r.entries)-start)
	copy(out, r.entries[start:])
	return out
}

// SeedLatencies preloads latency samples from earlier sessions so the
// chart has context before the first analysis. Seeded samples surface in
// Latencies only; Entries and Summarize stay session-scoped.
func (r *Recorder) SeedLatencies(samples []time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prior = append([]time.Duration(nil), samples...)
}

// Latencies returns up to n latencies for the chart, oldest first: seeded
// prior-session samples, then this session's non-cached analyses. The
// newest n win when there are more.
func (r *Recorder) Latencies(n int) []time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 {
		return nil
	}

	out := append([]time.Duration(nil), r.prior...)
	for _, e := range r.entries {
		if e.FromCache {
			continue
		}
		out = append(out, e.Latency)
	}

	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all in-memory session entries. Seeded samples and
// persisted history are unaffected.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// ClearAll removes the session entries, the seeded samples, and, when a
// store is attached, the persisted history. Returns how many persisted
// entries were deleted.
func (r *Recorder) ClearAll() (int64, error) {
	r.mu.Lock()
	r.entries = nil
	r.prior = nil
	store := r.store
	r.mu.Unlock()

	if store == nil {
		return 0, nil
	}
	return store.Clear()
}

// Summarize computes aggregate metrics over the session.
func (r *Recorder) Summarize() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Summary
	s.Count = len(r.entries)
	for _, e := range r.entries {
		if e.FromCache {
			s.CacheHits++
			continue
		}
		s.TotalLatency += e.Latency
		s.InputTokens += e.InputTokens
		s.OutputTokens += e.OutputTokens
	}
	if fresh := s.Count - s.CacheHits; fresh > 0 {
		s.AvgLatency = s.TotalLatency / time.Duration(fresh)
	}
	return s
}
