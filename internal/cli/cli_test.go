// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/history"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
)

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args defaults to TUI", []string{}, CmdTUI},
		{"explicit tui", []string{"tui"}, CmdTUI},
		{"analyze", []string{"analyze", "print(1)"}, CmdAnalyze},
		{"explain alias", []string{"explain", "x"}, CmdAnalyze},
		{"repl", []string{"repl"}, CmdRepl},
		{"status", []string{"status"}, CmdStatus},
		{"status short", []string{"s"}, CmdStatus},
		{"models", []string{"models"}, CmdModels},
		{"history", []string{"history"}, CmdHistory},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"--help"}, CmdHelp},
		{"unknown word treated as snippet", []string{"def", "f():", "pass"}, CmdAnalyze},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := parseArgs(tt.argv)
			if got != tt.want {
				t.Errorf("parseArgs(%v) = %d, want %d", tt.argv, got, tt.want)
			}
		})
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	_, args := parseArgs([]string{"-q", "--json", "--model", "llama3.2", "--no-cache", "status"})

	if !args.Quiet {
		t.Error("Quiet should be set")
	}
	if !args.JSON {
		t.Error("JSON should be set")
	}
	if !args.NoCache {
		t.Error("NoCache should be set")
	}
	if args.Model != "llama3.2" {
		t.Errorf("Model = %q, want llama3.2", args.Model)
	}
}

func TestParseArgs_ModelEquals(t *testing.T) {
	_, args := parseArgs([]string{"--model=codellama", "analyze", "x"})

	if args.Model != "codellama" {
		t.Errorf("Model = %q, want codellama", args.Model)
	}
}

func TestParseArgs_UnknownCommandBecomesSnippet(t *testing.T) {
	cmd, args := parseArgs([]string{"def", "f():", "pass"})

	if cmd != CmdAnalyze {
		t.Fatalf("cmd = %d, want CmdAnalyze", cmd)
	}
	if args.Snippet != "def f(): pass" {
		t.Errorf("Snippet = %q", args.Snippet)
	}
}

func TestParseAnalyzeArgs(t *testing.T) {
	tests := []struct {
		name        string
		remaining   []string
		wantSnippet string
		wantFile    string
		wantModel   string
	}{
		{"inline snippet", []string{"print(1)"}, "print(1)", "", ""},
		{"file flag", []string{"--file", "main.go"}, "", "main.go", ""},
		{"file short flag", []string{"-f", "main.go"}, "", "main.go", ""},
		{"file equals", []string{"--file=main.go"}, "", "main.go", ""},
		{"model flag", []string{"-m", "llama3.2", "x"}, "x", "", "llama3.2"},
		{"multi word snippet", []string{"def", "f():"}, "def f():", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args Args
			parseAnalyzeArgs(&args, tt.remaining)
			if args.Snippet != tt.wantSnippet {
				t.Errorf("Snippet = %q, want %q", args.Snippet, tt.wantSnippet)
			}
			if args.File != tt.wantFile {
				t.Errorf("File = %q, want %q", args.File, tt.wantFile)
			}
			if args.Model != tt.wantModel {
				t.Errorf("Model = %q, want %q", args.Model, tt.wantModel)
			}
		})
	}
}

func TestParseHistoryArgs(t *testing.T) {
	var args Args
	parseHistoryArgs(&args, []string{"--limit", "50"})
	if args.Limit != 50 {
		t.Errorf("Limit = %d, want 50", args.Limit)
	}

	var cleared Args
	parseHistoryArgs(&cleared, []string{"clear"})
	if cleared.Subcommand != "clear" {
		t.Errorf("Subcommand = %q, want clear", cleared.Subcommand)
	}

	var defaulted Args
	parseHistoryArgs(&defaulted, nil)
	if defaulted.Limit != 20 {
		t.Errorf("default Limit = %d, want 20", defaulted.Limit)
	}

	var bad Args
	parseHistoryArgs(&bad, []string{"--limit", "abc"})
	if bad.Limit != 20 {
		t.Errorf("invalid limit should keep default, got %d", bad.Limit)
	}
}

func TestParseConfigArgs(t *testing.T) {
	var args Args
	parseConfigArgs(&args, []string{"set", "default_model", "llama3.2"})

	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if args.ConfigKey != "default_model" {
		t.Errorf("ConfigKey = %q", args.ConfigKey)
	}
	if args.ConfigVal != "llama3.2" {
		t.Errorf("ConfigVal = %q", args.ConfigVal)
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"server down", ollama.ErrNotRunning, ExitServerError},
		{"model missing", ollama.ErrModelNotFound, ExitModelError},
		{"validation", &ValidationError{Field: "x", Message: "bad"}, ExitUsageError},
		{"not found", &NotFoundError{Resource: "file", Name: "x"}, ExitNotFoundError},
		{"missing arg", ErrMissingArgument, ExitUsageError},
		{"rate limit message", errors.New("rate limit exceeded"), ExitRateLimitError},
		{"timeout message", errors.New("context deadline exceeded"), ExitTimeoutError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetExitCode_WrappedErrors(t *testing.T) {
	err := WrapError("analyze", ollama.ErrNotRunning, "health check failed")
	if got := GetExitCode(err); got != ExitServerError {
		t.Errorf("wrapped server error exit = %d, want %d", got, ExitServerError)
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError("cmd", nil, "msg") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapText(t *testing.T) {
	long := "the quick brown fox jumps over the lazy dog"
	wrapped := WrapText(long, 20)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width 20", line)
		}
	}

	short := "hello"
	if WrapText(short, 20) != short {
		t.Error("short text should be unchanged")
	}
}

func TestAtoiSafe(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{"100", 100},
		{"abc", 0},
		{"-5", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := atoiSafe(tt.in); got != tt.want {
			t.Errorf("atoiSafe(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolveSnippet_File(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/snippet.py"
	if err := os.WriteFile(path, []byte("print(1)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := resolveSnippet(Args{File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "print(1)\n" {
		t.Errorf("snippet = %q", got)
	}
}

func TestResolveSnippet_MissingFile(t *testing.T) {
	_, err := resolveSnippet(Args{File: "/nonexistent/snippet.py"})

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("error = %v, want NotFoundError", err)
	}
}

func TestResolveSnippet_Inline(t *testing.T) {
	got, err := resolveSnippet(Args{Snippet: "x = 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x = 1" {
		t.Errorf("snippet = %q", got)
	}
}

func TestSeedChartHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		entry := history.Entry{
			RequestID: "req_" + string(rune('a'+i)),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Preview:   "x = 1",
			Model:     "codellama",
			Latency:   time.Duration(i+1) * 100 * time.Millisecond,
		}
		if err := store.Insert(entry); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	rec := history.NewRecorder()
	seedChartHistory(rec, store, 10)

	samples := rec.Latencies(10)
	if len(samples) != 3 {
		t.Fatalf("got %d seeded samples, want 3", len(samples))
	}
	if samples[0] != 100*time.Millisecond || samples[2] != 300*time.Millisecond {
		t.Errorf("seeded samples out of order: %v", samples)
	}

	// Seeding feeds the chart only, not the session history.
	if rec.Len() != 0 {
		t.Errorf("recorder Len = %d, want 0", rec.Len())
	}
}

func TestSeedChartHistory_DisabledChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenStore(path)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	rec := history.NewRecorder()
	seedChartHistory(rec, store, 0)

	if got := rec.Latencies(10); len(got) != 0 {
		t.Errorf("seeding with no chart points should be a no-op, got %v", got)
	}
}
