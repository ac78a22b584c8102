// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ratelimit provides client-side rate limiting for inference calls.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrRateLimited indicates a call was rejected because the rate limit was
// exceeded.
var ErrRateLimited = errors.New("rate limit exceeded, please wait before trying again")

// IsRateLimited reports whether err is a rate limit rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// =============================================================================
// LIMITER
// =============================================================================

// Limiter restricts inference calls to at most maxCalls per window. It wraps
// a token-bucket limiter sized so that a full window's worth of calls can be
// made back to back, after which callers must wait for capacity to refill.
//
// The Limiter is safe for concurrent use; all callers share the same budget.
type Limiter struct {
	limiter  *rate.Limiter
	maxCalls int
	window   time.Duration

	mu       sync.Mutex
	allowed  int
	rejected int
}

// New creates a limiter permitting maxCalls per window.
func New(maxCalls int, window time.Duration) *Limiter {
	if maxCalls <= 0 {
		maxCalls = 3
	}
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Limiter{
		limiter:  rate.NewLimiter(rate.Every(window/time.Duration(maxCalls)), maxCalls),
		maxCalls: maxCalls,
		window:   window,
	}
}

// Allow reports whether a call may proceed now. A rejected call does not
// consume budget.
func (l *Limiter) Allow() bool {
	ok := l.limiter.Allow()

	l.mu.Lock()
	if ok {
		l.allowed++
	} else {
		l.rejected++
	}
	l.mu.Unlock()

	return ok
}

// Wait blocks until a call may proceed or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	err := l.limiter.Wait(ctx)

	l.mu.Lock()
	if err == nil {
		l.allowed++
	} else {
		l.rejected++
	}
	l.mu.Unlock()

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRateLimited
	}
	return nil
}

// RetryAfter returns an estimate of how long a caller should wait before the
// next call can be admitted. Returns zero when a call would be admitted now.
func (l *Limiter) RetryAfter() time.Duration {
	r := l.limiter.Reserve()
	delay := r.Delay()
	r.Cancel()
	return delay
}

// MaxCalls returns the configured calls-per-window budget.
func (l *Limiter) MaxCalls() int {
	return l.maxCalls
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Stats returns the number of allowed and rejected calls so far.
func (l *Limiter) Stats() (allowed, rejected int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowed, l.rejected
}
