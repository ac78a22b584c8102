// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Construction of the shared client/analyzer runtime used by
// both the one-shot commands and the TUI entry point.
package cli

import (
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/analyzer"
	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/history"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
)

// BuildClient creates an Ollama client from configuration.
func BuildClient(cfg *config.Config) *ollama.Client {
	if cfg == nil {
		cfg = config.Default()
	}
	return ollama.NewClientWithConfig(&ollama.ClientConfig{
		BaseURL:       cfg.Server.OllamaURL,
		Timeout:       time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		HealthTimeout: time.Duration(cfg.Server.HealthTimeoutSecs) * time.Second,
		DefaultModel:  cfg.DefaultModel,
	})
}

// BuildAnalyzer creates the analysis pipeline from configuration. When
// history persistence is enabled the recorder is attached to the on-disk
// store; the returned store is nil otherwise and must be closed by the
// caller when non-nil.
func BuildAnalyzer(client *ollama.Client, cfg *config.Config, opts ...analyzer.Option) (*analyzer.Analyzer, *history.Store, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	a := analyzer.New(client, cfg, opts...)

	var store *history.Store
	if cfg.History.Enabled && cfg.History.Persist {
		path, err := cfg.HistoryDBPath()
		if err != nil {
			return nil, nil, err
		}
		store, err = history.OpenStore(path)
		if err != nil {
			return nil, nil, err
		}
		if rec := a.Recorder(); rec != nil {
			rec.AttachStore(store)
			seedChartHistory(rec, store, cfg.History.ChartPoints)
		}
	}

	return a, store, nil
}

// seedChartHistory preloads the recorder with prior-session latencies so
// the latency chart is not empty on startup. A read failure just leaves
// the chart empty.
func seedChartHistory(rec *history.Recorder, store *history.Store, n int) {
	if n <= 0 {
		return
	}

	entries, err := store.Recent(n)
	if err != nil || len(entries) == 0 {
		return
	}

	samples := make([]time.Duration, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, e.Latency)
	}
	rec.SeedLatencies(samples)
}

// applyArgOverrides folds CLI flags into a cloned config so the global
// config stays untouched.
func applyArgOverrides(cfg *config.Config, args Args) *config.Config {
	c := cfg.Clone()
	if args.Model != "" {
		c.DefaultModel = args.Model
	}
	if args.NoCache {
		c.Cache.Enabled = false
	}
	return c
}
