// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ANALYSIS REQUEST
// =============================================================================

// AnalysisRequest describes a single snippet submission.
type AnalysisRequest struct {
	// Identity
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Snippet string `json:"snippet"`

	// Model is the model identifier to analyze with. Empty means the
	// configured default.
	Model string `json:"model,omitempty"`
}

// NewAnalysisRequest creates a request with a generated ID.
func NewAnalysisRequest(snippet, modelName string) *AnalysisRequest {
	return &AnalysisRequest{
		ID:        "req_" + uuid.NewString(),
		Timestamp: time.Now(),
		Snippet:   snippet,
		Model:     modelName,
	}
}

// IsEmpty reports whether the snippet contains no analyzable content.
func (r *AnalysisRequest) IsEmpty() bool {
	return strings.TrimSpace(r.Snippet) == ""
}

// Preview returns a truncated one-line preview of the snippet.
// Uses rune-based truncation to handle Unicode correctly.
func (r *AnalysisRequest) Preview(maxLen int) string {
	line := strings.TrimSpace(r.Snippet)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) <= maxLen {
		return line
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// ANALYSIS RESULT
// =============================================================================

// AnalysisResult holds the explanation returned by the inference service
// together with the metrics captured for the request.
type AnalysisResult struct {
	// Identity
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Text string `json:"text"`

	// Model that produced the result.
	Model string `json:"model"`

	// Metrics
	Latency      time.Duration `json:"latency_ns"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`

	// FromCache is true when the result was served from the in-process
	// cache without contacting the inference service. Not persisted: a
	// stored result is always a fresh one.
	FromCache bool `json:"-"`
}

// FormatLatency renders the latency the way the UI displays it.
func (r *AnalysisResult) FormatLatency() string {
	if r.Latency < time.Second {
		return formatInt(int(r.Latency.Milliseconds())) + "ms"
	}
	return formatFloat64(r.Latency.Seconds()) + "s"
}

// FormatStats returns a one-line summary of the result metrics.
// Format: "2.5s | 42 in / 318 out tokens | codellama"
func (r *AnalysisResult) FormatStats() string {
	return r.FormatLatency() + " | " +
		formatInt(r.InputTokens) + " in / " +
		formatInt(r.OutputTokens) + " out tokens | " +
		r.Model
}

// =============================================================================
// STATISTICS
// =============================================================================

// Statistics tracks timing and token counts while a request is in flight.
type Statistics struct {
	StartTime time.Time
	EndTime   time.Time

	InputTokens  int
	OutputTokens int

	// Derived on Finalize
	Latency time.Duration
}

// NewStatistics creates a Statistics with the start time set.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// Finalize records the end time and computes the latency.
func (s *Statistics) Finalize(inputTokens, outputTokens int) {
	s.EndTime = time.Now()
	s.InputTokens = inputTokens
	s.OutputTokens = outputTokens
	s.Latency = s.EndTime.Sub(s.StartTime)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatInt formats a non-negative integer without using fmt.
func formatInt(n int) string {
	if n <= 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// formatFloat64 formats a float with one decimal place (truncating).
func formatFloat64(f float64) string {
	if f < 0 {
		f = 0
	}
	whole := int(f)
	frac := int((f - float64(whole)) * 10)
	return formatInt(whole) + "." + formatInt(frac)
}
