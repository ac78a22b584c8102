// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import "time"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// GenerateRequest is the request body for the /api/generate endpoint.
type GenerateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	System  string   `json:"system,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// Options contains model parameters for inference.
type Options struct {
	// Temperature controls sampling randomness (0.0-2.0). Low values keep
	// analysis output focused.
	Temperature float64 `json:"temperature,omitempty"`

	// NumPredict caps the number of tokens to generate, -1 for unlimited.
	NumPredict int `json:"num_predict,omitempty"`

	// NumCtx is the context window size.
	NumCtx int `json:"num_ctx,omitempty"`

	// Stop sequences.
	Stop []string `json:"stop,omitempty"`

	// Seed for reproducibility.
	Seed int `json:"seed,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GenerateResponse is the response from the /api/generate endpoint.
type GenerateResponse struct {
	Model              string    `json:"model"`
	CreatedAt          time.Time `json:"created_at"`
	Response           string    `json:"response"`
	Done               bool      `json:"done"`
	DoneReason         string    `json:"done_reason,omitempty"`
	TotalDuration      int64     `json:"total_duration,omitempty"`       // nanoseconds
	LoadDuration       int64     `json:"load_duration,omitempty"`        // nanoseconds
	PromptEvalCount    int       `json:"prompt_eval_count,omitempty"`    // tokens in prompt
	PromptEvalDuration int64     `json:"prompt_eval_duration,omitempty"` // nanoseconds
	EvalCount          int       `json:"eval_count,omitempty"`           // tokens generated
	EvalDuration       int64     `json:"eval_duration,omitempty"`        // nanoseconds
}

// TokensPerSecond calculates the generation speed from a response.
func (r *GenerateResponse) TokensPerSecond() float64 {
	if r.EvalDuration == 0 {
		return 0
	}
	seconds := float64(r.EvalDuration) / 1e9
	return float64(r.EvalCount) / seconds
}

// TotalTime returns the total generation time.
func (r *GenerateResponse) TotalTime() time.Duration {
	return time.Duration(r.TotalDuration)
}

// =============================================================================
// MODEL TYPES
// =============================================================================

// ModelInfo contains information about a locally installed model.
type ModelInfo struct {
	Name       string       `json:"name"`
	ModifiedAt time.Time    `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details,omitempty"`
}

// ModelDetails contains detailed information about a model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// ListModelsResponse is the response from the /api/tags endpoint.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// FormatSize formats the model size in human-readable form.
func (m *ModelInfo) FormatSize() string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case m.Size >= gb:
		return formatSize(float64(m.Size)/gb) + " GB"
	case m.Size >= mb:
		return formatSize(float64(m.Size)/mb) + " MB"
	case m.Size >= kb:
		return formatSize(float64(m.Size)/kb) + " KB"
	default:
		return formatSize(float64(m.Size)) + " B"
	}
}

func formatSize(f float64) string {
	whole := int64(f)
	frac := int64((f - float64(whole)) * 10)
	digits := func(n int64) string {
		if n == 0 {
			return "0"
		}
		var out []byte
		for n > 0 {
			out = append([]byte{byte('0' + n%10)}, out...)
			n /= 10
		}
		return string(out)
	}
	if frac == 0 {
		return digits(whole)
	}
	return digits(whole) + "." + digits(frac)
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk represents a single chunk from a streaming generate response.
type StreamChunk struct {
	// Content from this chunk.
	Content string

	// Completion state (only populated on final chunk).
	Done          bool
	DoneReason    string
	TotalDuration time.Duration
	EvalDuration  time.Duration

	// Token counts (only populated on final chunk).
	PromptTokens     int
	CompletionTokens int

	// Model information.
	Model string

	// Error if any occurred during streaming.
	Error error
}

// =============================================================================
// ERROR BODY
// =============================================================================

// APIError represents an error payload from the Ollama API.
type APIError struct {
	Error string `json:"error"`
}
