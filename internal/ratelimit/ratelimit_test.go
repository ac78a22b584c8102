// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowsBudget(t *testing.T) {
	l := New(3, 5*time.Second)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("call %d should be allowed", i+1)
		}
	}
}

func TestLimiter_RejectsOverBudget(t *testing.T) {
	l := New(3, 5*time.Second)

	for i := 0; i < 3; i++ {
		l.Allow()
	}

	if l.Allow() {
		t.Error("4th call inside the window should be rejected")
	}
}

func TestLimiter_AdmitsAfterRefill(t *testing.T) {
	// Short window to keep the test fast: 2 calls per 200ms.
	l := New(2, 200*time.Millisecond)

	l.Allow()
	l.Allow()
	if l.Allow() {
		t.Fatal("3rd immediate call should be rejected")
	}

	// After a full window the budget has refilled.
	time.Sleep(250 * time.Millisecond)
	if !l.Allow() {
		t.Error("call after window elapsed should be admitted")
	}
}

func TestLimiter_Wait(t *testing.T) {
	l := New(2, 100*time.Millisecond)

	ctx := context.Background()
	start := time.Now()

	// Budget covers the first two; the third must wait for a refill.
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("third Wait should have blocked, elapsed = %v", elapsed)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := New(1, 10*time.Second)

	l.Allow() // exhaust budget

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	if err == nil {
		t.Fatal("Wait should fail when context expires before refill")
	}
}

func TestLimiter_RetryAfter(t *testing.T) {
	l := New(1, time.Second)

	if d := l.RetryAfter(); d != 0 {
		t.Errorf("RetryAfter with budget available = %v, want 0", d)
	}

	l.Allow()

	if d := l.RetryAfter(); d <= 0 {
		t.Error("RetryAfter after exhausting budget should be positive")
	}
}

func TestLimiter_Stats(t *testing.T) {
	l := New(2, 10*time.Second)

	l.Allow()
	l.Allow()
	l.Allow() // rejected

	allowed, rejected := l.Stats()
	if allowed != 2 || rejected != 1 {
		t.Errorf("stats = %d/%d, want 2 allowed / 1 rejected", allowed, rejected)
	}
}

func TestNew_DefaultsOnInvalidInput(t *testing.T) {
	l := New(0, 0)

	if l.MaxCalls() != 3 {
		t.Errorf("MaxCalls = %d, want 3", l.MaxCalls())
	}
	if l.Window() != 5*time.Second {
		t.Errorf("Window = %v, want 5s", l.Window())
	}
}
