// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"time"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader reads newline-delimited JSON chunks from a streaming
// generate response.
type StreamReader struct {
	scanner *bufio.Scanner
}

// NewStreamReader creates a reader over a streaming response body.
func NewStreamReader(r io.Reader) *StreamReader {
	scanner := bufio.NewScanner(r)
	// Responses can contain long lines; allow up to 1MB per chunk.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &StreamReader{scanner: scanner}
}

// Next reads the next chunk from the stream. Returns io.EOF when the
// stream is exhausted.
func (s *StreamReader) Next() (*StreamChunk, error) {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp GenerateResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, &ClientError{
				Type:    ErrTypeInvalidResponse,
				Message: "failed to parse stream chunk",
				Cause:   err,
			}
		}

		chunk := &StreamChunk{
			Content: resp.Response,
			Model:   resp.Model,
		}

		if resp.Done {
			chunk.Done = true
			chunk.DoneReason = resp.DoneReason
			chunk.TotalDuration = time.Duration(resp.TotalDuration)
			chunk.EvalDuration = time.Duration(resp.EvalDuration)
			chunk.PromptTokens = resp.PromptEvalCount
			chunk.CompletionTokens = resp.EvalCount
		}

		return chunk, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, &ClientError{
			Type:    ErrTypeConnection,
			Message: "stream read error",
			Cause:   err,
		}
	}

	return nil, io.EOF
}

// Process reads all chunks from the stream and calls the callback for each.
// Stops when the stream ends, the final chunk arrives, or the context is
// cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ErrTimeout
		default:
		}

		chunk, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			callback(StreamChunk{Error: err})
			return err
		}

		callback(*chunk)

		if chunk.Done {
			return nil
		}
	}
}
