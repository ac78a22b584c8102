// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"sync"
	"testing"

	"github.com/acse-ra922/Code-Assistant/internal/model"
)

func TestCache_PutGet(t *testing.T) {
	c := New()

	result := &model.AnalysisResult{Text: "explanation", Model: "codellama"}
	c.Put("print(1)", "codellama", result)

	got, ok := c.Get("print(1)", "codellama")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Text != "explanation" {
		t.Errorf("Text = %q, want 'explanation'", got.Text)
	}
	if !got.FromCache {
		t.Error("cached result should be marked FromCache")
	}
}

func TestCache_Miss(t *testing.T) {
	c := New()

	if _, ok := c.Get("never stored", "codellama"); ok {
		t.Error("expected cache miss")
	}

	stats := c.Stats()
	if stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("stats = %+v, want 1 miss", stats)
	}
}

func TestCache_KeyIncludesModel(t *testing.T) {
	c := New()

	c.Put("x = 1", "codellama", &model.AnalysisResult{Text: "a"})

	// Same snippet, different model: miss.
	if _, ok := c.Get("x = 1", "llama3.2"); ok {
		t.Error("different model should not hit")
	}
	if _, ok := c.Get("x = 1", "codellama"); !ok {
		t.Error("same model should hit")
	}
}

func TestCache_KeyNormalizesWhitespace(t *testing.T) {
	c := New()

	c.Put("x = 1", "codellama", &model.AnalysisResult{Text: "a"})

	// Surrounding whitespace maps to the same key.
	if _, ok := c.Get("  x = 1\n", "codellama"); !ok {
		t.Error("whitespace-padded snippet should hit")
	}
	// Interior changes do not.
	if _, ok := c.Get("x  =  1", "codellama"); ok {
		t.Error("interior whitespace change should miss")
	}
}

func TestCache_StoredEntryNotMutated(t *testing.T) {
	c := New()

	c.Put("x", "m", &model.AnalysisResult{Text: "a"})

	first, _ := c.Get("x", "m")
	first.Text = "mutated"

	second, _ := c.Get("x", "m")
	if second.Text != "a" {
		t.Error("mutating a returned result should not affect the cache")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New()

	c.Put("x", "m", &model.AnalysisResult{Text: "a"})
	c.Put("y", "m", &model.AnalysisResult{Text: "b"})

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get("x", "m"); ok {
		t.Error("cleared entry should miss")
	}
}

func TestCache_Stats(t *testing.T) {
	c := New()

	c.Put("x", "m", &model.AnalysisResult{Text: "a"})
	c.Get("x", "m")   // hit
	c.Get("y", "m")   // miss
	c.Get("x", "m")   // hit

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", stats.Hits, stats.Misses)
	}
	if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
		t.Errorf("HitRate = %v, want ~0.667", stats.HitRate)
	}
	if stats.EntryCount != 1 {
		t.Errorf("EntryCount = %d, want 1", stats.EntryCount)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Put("shared", "m", &model.AnalysisResult{Text: "r"})
		}()
		go func() {
			defer wg.Done()
			c.Get("shared", "m")
		}()
	}
	wg.Wait()
}

func TestKey_Deterministic(t *testing.T) {
	k1 := Key("def f(): pass", "codellama")
	k2 := Key("def f(): pass", "codellama")
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}
	if len(k1) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(k1))
	}
}
