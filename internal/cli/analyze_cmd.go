// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// analyze_cmd.go - One-shot snippet analysis for scripting and pipes.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/model"
)

// maxSnippetBytes caps how much input the one-shot command will read.
const maxSnippetBytes = 1 << 20 // 1 MiB

// AnalyzeData is the payload for "analyze --json".
type AnalyzeData struct {
	RequestID    string `json:"request_id"`
	Text         string `json:"text"`
	Model        string `json:"model"`
	LatencyMs    int64  `json:"latency_ms"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	FromCache    bool   `json:"from_cache"`
}

// HandleAnalyze handles the "analyze" command.
func HandleAnalyze(args Args) {
	if err := runAnalyze(args); err != nil {
		if args.JSON {
			NewJSONError("analyze", err).Print()
			os.Exit(GetExitCode(err))
		}
		HandleErrorAndExit(err)
	}
}

func runAnalyze(args Args) error {
	snippet, err := resolveSnippet(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(snippet) == "" {
		return fmt.Errorf("%w: a snippet (inline, --file, or stdin)", ErrMissingArgument)
	}

	cfg := applyArgOverrides(config.Global(), args)
	client := BuildClient(cfg)

	a, store, err := BuildAnalyzer(client, cfg)
	if err != nil {
		return WrapError("analyze", err, "failed to open history store")
	}
	if store != nil {
		defer store.Close()
	}

	if !args.Quiet && !args.JSON {
		fmt.Fprintln(os.Stderr, DimStyle.Render("Analyzing with "+a.DefaultModel()+"..."))
	}

	req := model.NewAnalysisRequest(snippet, args.Model)
	result, err := a.Analyze(context.Background(), req)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("analyze", AnalyzeData{
			RequestID:    result.RequestID,
			Text:         result.Text,
			Model:        result.Model,
			LatencyMs:    result.Latency.Milliseconds(),
			InputTokens:  result.InputTokens,
			OutputTokens: result.OutputTokens,
			FromCache:    result.FromCache,
		}).Print()
		return nil
	}

	printResult(result, args)
	return nil
}

// resolveSnippet picks the snippet source: --file, inline args, then stdin.
func resolveSnippet(args Args) (string, error) {
	if args.File != "" {
		data, err := os.ReadFile(args.File)
		if err != nil {
			if os.IsNotExist(err) {
				return "", &NotFoundError{Resource: "file", Name: args.File}
			}
			return "", WrapError("analyze", err, "failed to read file")
		}
		return string(data), nil
	}

	if args.Snippet != "" {
		return args.Snippet, nil
	}

	// Piped input
	if !IsTTY() {
		data, err := io.ReadAll(io.LimitReader(os.Stdin, maxSnippetBytes))
		if err != nil {
			return "", WrapError("analyze", err, "failed to read stdin")
		}
		return string(data), nil
	}

	return "", nil
}

// printResult renders the analysis to stdout, with markdown rendering when
// writing to a terminal.
func printResult(result *model.AnalysisResult, args Args) {
	text := result.Text

	if !args.Plain && IsStdoutTTY() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
		if err == nil {
			if out, rerr := renderer.Render(text); rerr == nil {
				text = out
			}
		}
	}

	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}

	if !args.Quiet {
		meta := result.FormatStats()
		if result.FromCache {
			meta = SuccessStyle.Render("[cached]") + " " + meta
		}
		fmt.Fprintln(os.Stderr, DimStyle.Render(meta))
	}
}
