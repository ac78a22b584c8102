// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClientWithConfig_FillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{})

	cfg := client.GetConfig()
	if cfg.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.DefaultModel != "codellama" {
		t.Errorf("DefaultModel = %q, want codellama", cfg.DefaultModel)
	}
}

func TestNewClientWithConfig_NilConfig(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client.GetConfig().BaseURL == "" {
		t.Error("nil config should produce defaults")
	}
}

func TestCheckRunning_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning = %v, want nil", err)
	}
}

func TestCheckRunning_NotRunning(t *testing.T) {
	// Port 1 is essentially guaranteed to refuse connections.
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:       "http://127.0.0.1:1",
		HealthTimeout: 500 * time.Millisecond,
	})

	err := client.CheckRunning(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !IsNotRunning(err) && !IsTimeout(err) {
		t.Errorf("expected not-running or timeout error, got %v", err)
	}
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ListModelsResponse{
			Models: []ModelInfo{
				{Name: "codellama", Size: 3_800_000_000},
				{Name: "llama3.2", Size: 2_000_000_000},
			},
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].Name != "codellama" {
		t.Errorf("first model = %q, want codellama", models[0].Name)
	}
}

func TestModelNames_FallsBackToDefault(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{
		BaseURL:       "http://127.0.0.1:1",
		HealthTimeout: 500 * time.Millisecond,
	})

	names := client.ModelNames(context.Background())
	if len(names) != 1 || names[0] != "codellama" {
		t.Errorf("ModelNames = %v, want [codellama]", names)
	}
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}

		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("non-streaming generate should send stream=false")
		}
		if req.Model != "codellama" {
			t.Errorf("model = %q, want codellama", req.Model)
		}
		if req.Options == nil || req.Options.Temperature != 0.1 {
			t.Error("expected options with temperature 0.1")
		}

		json.NewEncoder(w).Encode(GenerateResponse{
			Model:           "codellama",
			Response:        "This function prints a number.",
			Done:            true,
			PromptEvalCount: 12,
			EvalCount:       7,
			EvalDuration:    int64(time.Second),
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	resp, err := client.Generate(context.Background(), "codellama", "explain: print(1)", &Options{
		Temperature: 0.1,
		NumPredict:  2048,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Response != "This function prints a number." {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.EvalCount != 7 {
		t.Errorf("EvalCount = %d, want 7", resp.EvalCount)
	}
	if resp.TokensPerSecond() != 7 {
		t.Errorf("TokensPerSecond = %v, want 7", resp.TokensPerSecond())
	}
}

func TestGenerate_ModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(APIError{Error: "model 'missing' not found"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "missing", "x", nil)
	if !IsModelNotFound(err) {
		t.Errorf("expected model-not-found error, got %v", err)
	}
	if IsTransient(err) {
		t.Error("model-not-found should not be transient")
	}
}

func TestGenerate_ServerError_IsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), "codellama", "x", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransient(err) {
		t.Errorf("5xx should be transient, got %v", err)
	}
}

func TestGenerateStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunks := []GenerateResponse{
			{Model: "codellama", Response: "Hello"},
			{Model: "codellama", Response: " world"},
			{Model: "codellama", Done: true, DoneReason: "stop", PromptEvalCount: 5, EvalCount: 2},
		}
		enc := json.NewEncoder(w)
		for _, c := range chunks {
			enc.Encode(c)
		}
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	var sb strings.Builder
	var final StreamChunk
	err := client.GenerateStream(context.Background(), "codellama", "hi", nil, func(chunk StreamChunk) {
		sb.WriteString(chunk.Content)
		if chunk.Done {
			final = chunk
		}
	})
	if err != nil {
		t.Fatalf("GenerateStream failed: %v", err)
	}

	if sb.String() != "Hello world" {
		t.Errorf("accumulated = %q, want 'Hello world'", sb.String())
	}
	if !final.Done || final.CompletionTokens != 2 {
		t.Errorf("final chunk = %+v", final)
	}
}

func TestStreamReader_MalformedChunk(t *testing.T) {
	reader := NewStreamReader(strings.NewReader("{not json}\n"))

	_, err := reader.Next()
	if err == nil {
		t.Fatal("expected error for malformed chunk")
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeInvalidResponse {
		t.Errorf("expected invalid-response error, got %v", err)
	}
}

func TestClientError_Unwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := &ClientError{Type: ErrTypeTimeout, Message: "timed out", Cause: cause}

	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestModelInfo_FormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{3_800_000_000, "3.5 GB"},
		{512, "512 B"},
		{2048, "2 KB"},
	}

	for _, tc := range tests {
		m := &ModelInfo{Size: tc.size}
		if got := m.FormatSize(); got != tc.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
