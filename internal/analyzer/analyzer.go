// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyzer implements the code analysis pipeline: cache lookup,
// rate limiting, prompt construction, inference with retry, and metrics
// recording.
package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/cache"
	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/history"
	"github.com/acse-ra922/Code-Assistant/internal/model"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
	"github.com/acse-ra922/Code-Assistant/internal/ratelimit"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptySnippet indicates the submitted snippet had no content.
	ErrEmptySnippet = errors.New("no code provided")

	// ErrRateLimited indicates the request was rejected by the rate limiter.
	ErrRateLimited = ratelimit.ErrRateLimited
)

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// Generator is the inference surface the analyzer depends on. *ollama.Client
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, model string, prompt string, opts *ollama.Options) (*ollama.GenerateResponse, error)
}

// =============================================================================
// ANALYZER
// =============================================================================

// Analyzer coordinates a single snippet analysis end to end.
type Analyzer struct {
	client   Generator
	cache    *cache.ResultCache
	limiter  *ratelimit.Limiter
	recorder *history.Recorder

	defaultModel string
	temperature  float64
	numPredict   int
	maxRetries   int
	retryDelay   time.Duration

	// sleep is swappable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache sets the result cache. Nil disables caching.
func WithCache(c *cache.ResultCache) Option {
	return func(a *Analyzer) { a.cache = c }
}

// WithLimiter sets the rate limiter. Nil disables rate limiting.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(a *Analyzer) { a.limiter = l }
}

// WithRecorder sets the history recorder. Nil disables history.
func WithRecorder(r *history.Recorder) Option {
	return func(a *Analyzer) { a.recorder = r }
}

// WithRetry overrides the retry policy.
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(a *Analyzer) {
		if maxRetries > 0 {
			a.maxRetries = maxRetries
		}
		a.retryDelay = baseDelay
	}
}

// New creates an analyzer from configuration.
func New(client Generator, cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}

	a := &Analyzer{
		client:       client,
		defaultModel: cfg.DefaultModel,
		temperature:  cfg.Analysis.Temperature,
		numPredict:   cfg.Analysis.NumPredict,
		maxRetries:   cfg.Analysis.MaxRetries,
		retryDelay:   time.Duration(cfg.Analysis.RetryDelaySecs) * time.Second,
		sleep:        sleepCtx,
	}
	if a.maxRetries < 1 {
		a.maxRetries = 1
	}

	if cfg.Cache.Enabled {
		a.cache = cache.New()
	}
	if cfg.RateLimit.Enabled {
		a.limiter = ratelimit.New(cfg.RateLimit.MaxCalls,
			time.Duration(cfg.RateLimit.WindowSecs)*time.Second)
	}
	if cfg.History.Enabled {
		a.recorder = history.NewRecorder()
	}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Cache returns the analyzer's cache, or nil when caching is disabled.
func (a *Analyzer) Cache() *cache.ResultCache {
	return a.cache
}

// Limiter returns the analyzer's rate limiter, or nil when disabled.
func (a *Analyzer) Limiter() *ratelimit.Limiter {
	return a.limiter
}

// Recorder returns the analyzer's history recorder, or nil when disabled.
func (a *Analyzer) Recorder() *history.Recorder {
	return a.recorder
}

// DefaultModel returns the model used when a request does not name one.
func (a *Analyzer) DefaultModel() string {
	return a.defaultModel
}

// SetDefaultModel changes the model used for subsequent requests.
func (a *Analyzer) SetDefaultModel(name string) {
	if name != "" {
		a.defaultModel = name
	}
}

// =============================================================================
// ANALYSIS PIPELINE
// =============================================================================

// Analyze runs the full pipeline for a snippet and returns the result.
//
// Pipeline order: empty check, cache lookup, rate limit, inference with
// retry, metrics, cache store, history record. A cache hit returns before
// the rate limiter is consulted and never reaches the network.
func (a *Analyzer) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error) {
	if req == nil || req.IsEmpty() {
		return nil, ErrEmptySnippet
	}

	modelName := req.Model
	if modelName == "" {
		modelName = a.defaultModel
	}

	// Cache lookup
	if a.cache != nil {
		if result, ok := a.cache.Get(req.Snippet, modelName); ok {
			if a.recorder != nil {
				a.recorder.Record(req, result)
			}
			return result, nil
		}
	}

	// Rate limit
	if a.limiter != nil && !a.limiter.Allow() {
		return nil, ErrRateLimited
	}

	prompt := BuildPrompt(req.Snippet)
	opts := &ollama.Options{
		Temperature: a.temperature,
		NumPredict:  a.numPredict,
	}

	stats := model.NewStatistics()

	resp, err := a.generateWithRetry(ctx, modelName, prompt, opts)
	if err != nil {
		return nil, err
	}

	// Prefer server-reported token counts, fall back to estimation.
	inputTokens := resp.PromptEvalCount
	if inputTokens == 0 {
		inputTokens = EstimateTokens(prompt)
	}
	outputTokens := resp.EvalCount
	if outputTokens == 0 {
		outputTokens = EstimateTokens(resp.Response)
	}
	stats.Finalize(inputTokens, outputTokens)

	result := &model.AnalysisResult{
		RequestID:    req.ID,
		Timestamp:    time.Now(),
		Text:         resp.Response,
		Model:        modelName,
		Latency:      stats.Latency,
		InputTokens:  stats.InputTokens,
		OutputTokens: stats.OutputTokens,
	}

	if a.cache != nil {
		a.cache.Put(req.Snippet, modelName, result)
	}
	if a.recorder != nil {
		a.recorder.Record(req, result)
	}

	return result, nil
}

// generateWithRetry calls the generator, retrying transient failures with
// an increasing delay. A missing model or malformed response fails
// immediately.
func (a *Analyzer) generateWithRetry(ctx context.Context, modelName, prompt string, opts *ollama.Options) (*ollama.GenerateResponse, error) {
	var lastErr error

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		resp, err := a.client.Generate(ctx, modelName, prompt, opts)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !ollama.IsTransient(err) {
			return nil, err
		}
		if attempt == a.maxRetries {
			break
		}

		// Delay grows with the attempt number: base, 2*base, ...
		delay := a.retryDelay * time.Duration(attempt)
		if err := a.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
