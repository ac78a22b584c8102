// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the analysis view component for the TUI.
package analyze

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/acse-ra922/Code-Assistant/internal/analyzer"
	"github.com/acse-ra922/Code-Assistant/internal/model"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// CheckServerCmd creates a command that checks if Ollama is running.
func CheckServerCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ServerStatusMsg{Running: false, Error: ollama.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckRunning(ctx)
		return ServerStatusMsg{
			Running: err == nil,
			Error:   err,
		}
	}
}

// ListModelsCmd creates a command that lists installed model names.
func ListModelsCmd(client *ollama.Client) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ModelsMsg{Error: ollama.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		names := client.ModelNames(ctx)
		return ModelsMsg{
			Names: names,
		}
	}
}

// SwitchModelCmd creates a command that verifies a model exists before
// switching to it.
func SwitchModelCmd(client *ollama.Client, modelName string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return ModelSwitchedMsg{Model: modelName, Error: ollama.ErrNotRunning}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		names := client.ModelNames(ctx)
		for _, name := range names {
			if name == modelName {
				return ModelSwitchedMsg{Model: modelName}
			}
		}
		return ModelSwitchedMsg{Model: modelName, Error: ollama.ErrModelNotFound}
	}
}

// AnalyzeCmd creates a command that runs the analysis pipeline for a
// request. The pipeline handles cache, rate limiting, and retries; the
// command only reports the outcome.
func AnalyzeCmd(a *analyzer.Analyzer, req *model.AnalysisRequest) tea.Cmd {
	return func() tea.Msg {
		if a == nil {
			return AnalysisCompleteMsg{Error: ollama.ErrNotRunning}
		}

		result, err := a.Analyze(context.Background(), req)
		msg := AnalysisCompleteMsg{Result: result, Error: err}
		if req != nil {
			msg.RequestID = req.ID
		}
		return msg
	}
}

// =============================================================================
// TICK COMMANDS
// =============================================================================

// StatusTickCmd creates a command that refreshes the status bar once per
// second while something is counting down.
func StatusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}

// =============================================================================
// BATCH COMMANDS
// =============================================================================

// InitCommands returns the commands to run on initialization.
func InitCommands(client *ollama.Client) tea.Cmd {
	return tea.Batch(
		CheckServerCmd(client),
		ListModelsCmd(client),
	)
}
