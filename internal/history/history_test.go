// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/model"
)

func makeResult(id string, latency time.Duration, fromCache bool) (*model.AnalysisRequest, *model.AnalysisResult) {
	req := model.NewAnalysisRequest("x = "+id, "codellama")
	result := &model.AnalysisResult{
		RequestID:    req.ID,
		Timestamp:    time.Now(),
		Text:         "explanation",
		Model:        "codellama",
		Latency:      latency,
		InputTokens:  10,
		OutputTokens: 20,
		FromCache:    fromCache,
	}
	return req, result
}

func TestRecorder_RecordAndEntries(t *testing.T) {
	r := NewRecorder()

	req, result := makeResult("1", time.Second, false)
	r.Record(req, result)

	entries := r.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].RequestID != req.ID {
		t.Errorf("RequestID = %q, want %q", entries[0].RequestID, req.ID)
	}
	if entries[0].Latency != time.Second {
		t.Errorf("Latency = %v, want 1s", entries[0].Latency)
	}
}

func TestRecorder_PreservesOrder(t *testing.T) {
	r := NewRecorder()

	for i := 0; i < 5; i++ {
		req, result := makeResult(string(rune('a'+i)), time.Duration(i)*time.Millisecond, false)
		r.Record(req, result)
	}

	entries := r.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].Latency < entries[i-1].Latency {
			t.Error("entries should be in insertion order")
		}
	}
}

func TestRecorder_EntriesReturnsCopy(t *testing.T) {
	r := NewRecorder()
	req, result := makeResult("1", time.Second, false)
	r.Record(req, result)

	entries := r.Entries()
	entries[0].Model = "mutated"

	if r.Entries()[0].Model != "codellama" {
		t.Error("mutating the returned slice should not affect the recorder")
	}
}

func TestRecorder_Recent(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 10; i++ {
		req, result := makeResult("x", time.Duration(i+1)*time.Millisecond, false)
		r.Record(req, result)
	}

	recent := r.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}
	// Oldest first within the window: latencies 8ms, 9ms, 10ms.
	if recent[0].Latency != 8*time.Millisecond || recent[2].Latency != 10*time.Millisecond {
		t.Errorf("unexpected window: %v .. %v", recent[0].Latency, recent[2].Latency)
	}
}

func TestRecorder_LatenciesSkipCacheHits(t *testing.T) {
	r := NewRecorder()

	req1, res1 := makeResult("1", 100*time.Millisecond, false)
	r.Record(req1, res1)
	req2, res2 := makeResult("2", 100*time.Millisecond, true) // cache hit
	r.Record(req2, res2)
	req3, res3 := makeResult("3", 300*time.Millisecond, false)
	r.Record(req3, res3)

	lats := r.Latencies(10)
	if len(lats) != 2 {
		t.Fatalf("got %d latencies, want 2 (cache hit skipped)", len(lats))
	}
	if lats[0] != 100*time.Millisecond || lats[1] != 300*time.Millisecond {
		t.Errorf("latencies = %v, want [100ms 300ms]", lats)
	}
}

func TestRecorder_Summarize(t *testing.T) {
	r := NewRecorder()

	req1, res1 := makeResult("1", 100*time.Millisecond, false)
	r.Record(req1, res1)
	req2, res2 := makeResult("2", 300*time.Millisecond, false)
	r.Record(req2, res2)
	req3, res3 := makeResult("3", 0, true)
	r.Record(req3, res3)

	s := r.Summarize()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", s.CacheHits)
	}
	if s.AvgLatency != 200*time.Millisecond {
		t.Errorf("AvgLatency = %v, want 200ms", s.AvgLatency)
	}
	if s.InputTokens != 20 || s.OutputTokens != 40 {
		t.Errorf("tokens = %d/%d, want 20/40 (cache hits excluded)", s.InputTokens, s.OutputTokens)
	}
}

func TestRecorder_ConcurrentRecord(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, result := makeResult("c", time.Millisecond, false)
			r.Record(req, result)
		}()
	}
	wg.Wait()

	if r.Len() != 50 {
		t.Errorf("Len = %d, want 50", r.Len())
	}
}

func TestStore_InsertAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		entry := Entry{
			RequestID:    "req_" + string(rune('a'+i)),
			Timestamp:    base.Add(time.Duration(i) * time.Minute),
			Preview:      "x = 1",
			Model:        "codellama",
			Latency:      time.Duration(i+1) * 100 * time.Millisecond,
			InputTokens:  10,
			OutputTokens: 20,
		}
		if err := store.Insert(entry); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}

	recent, err := store.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}
	// Oldest first: entries c, d, e.
	if recent[0].RequestID != "req_c" || recent[2].RequestID != "req_e" {
		t.Errorf("unexpected order: %s .. %s", recent[0].RequestID, recent[2].RequestID)
	}
	if recent[2].Latency != 500*time.Millisecond {
		t.Errorf("Latency = %v, want 500ms", recent[2].Latency)
	}
}

func TestStore_Prune(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	old := Entry{RequestID: "old", Timestamp: time.Now().Add(-48 * time.Hour), Preview: "x", Model: "m"}
	fresh := Entry{RequestID: "new", Timestamp: time.Now(), Preview: "y", Model: "m"}
	store.Insert(old)
	store.Insert(fresh)

	deleted, err := store.Prune(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	count, _ := store.Count()
	if count != 1 {
		t.Errorf("Count after prune = %d, want 1", count)
	}
}

func TestRecorder_WriteThroughStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	r := NewRecorder()
	r.AttachStore(store)

	req1, res1 := makeResult("1", time.Second, false)
	r.Record(req1, res1)
	req2, res2 := makeResult("2", 0, true) // cache hit: memory only
	r.Record(req2, res2)

	count, _ := store.Count()
	if count != 1 {
		t.Errorf("persisted count = %d, want 1 (cache hits not persisted)", count)
	}
	if r.Len() != 2 {
		t.Errorf("in-memory count = %d, want 2", r.Len())
	}
}

func TestRecorder_SeedLatencies(t *testing.T) {
	r := NewRecorder()
	r.SeedLatencies([]time.Duration{100 * time.Millisecond, 200 * time.Millisecond})

	req, result := makeResult("1", 300*time.Millisecond, false)
	r.Record(req, result)

	got := r.Latencies(10)
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Latencies[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// The newest samples win when the window is smaller.
	got = r.Latencies(2)
	if len(got) != 2 || got[0] != 200*time.Millisecond || got[1] != 300*time.Millisecond {
		t.Errorf("Latencies(2) = %v, want the newest two samples", got)
	}

	// Seeded samples stay out of the session view.
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
	if s := r.Summarize(); s.Count != 1 {
		t.Errorf("Summarize().Count = %d, want 1", s.Count)
	}
}
