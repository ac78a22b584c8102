// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the code assistant TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/acse-ra922/Code-Assistant/internal/ollama"
	"github.com/acse-ra922/Code-Assistant/internal/ratelimit"
	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
)

// =============================================================================
// ERROR BOX
// =============================================================================

// ErrorBox is a styled error display with recovery suggestions.
type ErrorBox struct {
	title       string
	message     string
	suggestions []string

	visible   bool
	createdAt time.Time
	width     int
}

// NewErrorBox creates a hidden error box.
func NewErrorBox() ErrorBox {
	return ErrorBox{width: 80}
}

// ShowError displays an error, deriving title and suggestions from the
// error's type.
func (e *ErrorBox) ShowError(err error) {
	if err == nil {
		e.Hide()
		return
	}

	e.title, e.suggestions = classify(err)
	e.message = err.Error()
	e.visible = true
	e.createdAt = time.Now()
}

// Show displays an explicit title and message.
func (e *ErrorBox) Show(title, message string) {
	e.title = title
	e.message = message
	e.suggestions = nil
	e.visible = true
	e.createdAt = time.Now()
}

// Hide hides the error box.
func (e *ErrorBox) Hide() {
	e.visible = false
}

// IsVisible returns whether the error box is visible.
func (e *ErrorBox) IsVisible() bool {
	return e.visible
}

// SetWidth sets the rendered width.
func (e *ErrorBox) SetWidth(width int) {
	e.width = width
}

// View renders the error box.
func (e ErrorBox) View() string {
	if !e.visible {
		return ""
	}

	titleView := lipgloss.NewStyle().
		Foreground(styles.Rose).
		Bold(true).
		Render(styles.StatusIndicators.Error + " " + e.title)

	messageView := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Render(e.message)

	parts := []string{titleView, "", messageView}

	if len(e.suggestions) > 0 {
		suggestionStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		parts = append(parts, "")
		for _, s := range e.suggestions {
			parts = append(parts, suggestionStyle.Render("  - "+s))
		}
	}

	maxWidth := e.width - 4
	if maxWidth < 30 {
		maxWidth = 30
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Rose).
		Padding(1, 2).
		MaxWidth(maxWidth).
		Render(strings.Join(parts, "\n"))
}

// =============================================================================
// ERROR CLASSIFICATION
// =============================================================================

// classify maps an error to a display title and recovery suggestions.
func classify(err error) (string, []string) {
	switch {
	case ollama.IsNotRunning(err):
		return "Ollama Not Running", []string{
			"Start the server with: ollama serve",
			"Check that nothing else is bound to port 11434",
		}
	case ollama.IsModelNotFound(err):
		return "Model Not Found", []string{
			"Pull the model with: ollama pull <model>",
			"List installed models with: ollama list",
		}
	case ollama.IsTimeout(err):
		return "Request Timed Out", []string{
			"Try a shorter snippet",
			"Larger models respond slowly on first load",
		}
	case ratelimit.IsRateLimited(err):
		return "Rate Limited", []string{
			"Wait a few seconds before submitting again",
			"Identical snippets are served from cache without limit",
		}
	default:
		return "Analysis Failed", nil
	}
}
