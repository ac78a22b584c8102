// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the analysis view component for the TUI.
//
// This file defines all Bubble Tea message types used by the analysis
// interface. Messages are organized into the following categories:
//   - Server: Health checks and model discovery
//   - Analysis: Completion and errors
//   - UI State: Status refreshes
package analyze

import (
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/model"
)

// =============================================================================
// SERVER MESSAGES
// =============================================================================

// ServerStatusMsg reports Ollama connection status.
type ServerStatusMsg struct {
	Running bool
	Error   error
}

// ModelsMsg delivers the list of available model names.
type ModelsMsg struct {
	Names []string
	Error error
}

// ModelSwitchedMsg confirms a model switch.
type ModelSwitchedMsg struct {
	Model string
	Error error
}

// =============================================================================
// ANALYSIS MESSAGES
// =============================================================================

// AnalysisCompleteMsg delivers the outcome of an analysis. Exactly one of
// Result and Error is set.
type AnalysisCompleteMsg struct {
	RequestID string
	Result    *model.AnalysisResult
	Error     error
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// StatusTickMsg triggers a periodic status bar refresh (rate-limit
// countdown, elapsed time).
type StatusTickMsg struct {
	Time time.Time
}
