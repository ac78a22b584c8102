// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the code assistant TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
	"github.com/acse-ra922/Code-Assistant/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusAnalyzing
	StatusChecking
	StatusRateLimited
	StatusError
	StatusIdle
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusAnalyzing:
		return "Analyzing..."
	case StatusChecking:
		return "Checking..."
	case StatusRateLimited:
		return "Rate limited"
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusAnalyzing:
		return styles.StatusIndicators.Active
	case StatusChecking:
		return styles.StatusIndicators.Pending
	case StatusRateLimited:
		return styles.StatusIndicators.Warning
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar.
type StatusBar struct {
	ModelName     string        // Current model
	ServerOnline  bool          // Ollama reachability
	ServerChecked bool          // False until the first health check completes
	CacheHits     int           // Cache hit count
	CacheLookups  int           // Total cache lookups
	HistoryCount  int           // Analyses recorded this session
	RetryAfter    time.Duration // Time until the limiter admits a call
	Status        Status        // Current status
	Width         int           // Available width
	ShowShortcuts bool          // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		ModelName:     "",
		Status:        StatusChecking,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetModel updates the model name display.
func (s *StatusBar) SetModel(name string) {
	s.ModelName = name
}

// SetServerOnline records the result of a health check.
func (s *StatusBar) SetServerOnline(online bool) {
	s.ServerOnline = online
	s.ServerChecked = true
}

// SetCacheStats updates the cache hit rate display.
func (s *StatusBar) SetCacheStats(hits, lookups int) {
	s.CacheHits = hits
	s.CacheLookups = lookups
}

// SetHistoryCount updates the session analysis count.
func (s *StatusBar) SetHistoryCount(n int) {
	s.HistoryCount = n
}

// SetRetryAfter updates the rate-limit wait display. Zero clears it.
func (s *StatusBar) SetRetryAfter(d time.Duration) {
	s.RetryAfter = d
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar.
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [OK|model] hit% Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	parts = append(parts, s.renderServerBadge(true))

	if s.ModelName != "" {
		name := util.TruncateRunes(s.ModelName, 12)
		parts = append(parts, lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Render(name))
	}

	modeSection := "[" + strings.Join(parts, "|") + "]"

	hitRate := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(s.renderHitRate())

	statusStyle := s.getStatusStyle()
	statusText := statusStyle.Render(s.Status.Icon())

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" ")

	result := modeSection + separator + hitRate + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full status bar for wide terminals.
// Format: [OK] Server | codellama | Cache: 66.7% | 12 analyses | Ready | ^S send ^C quit
func (s *StatusBar) viewWide() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	leftParts := []string{}

	leftParts = append(leftParts, s.renderServerBadge(false))

	if s.ModelName != "" {
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, modelStyle.Render(s.ModelName))
	}

	cacheLabel := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Cache: ")
	leftParts = append(leftParts, cacheLabel+lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.renderHitRate()))

	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	label := " analyses"
	if s.HistoryCount == 1 {
		label = " analysis"
	}
	leftParts = append(leftParts, countStyle.Render(fmtNumber(s.HistoryCount)+label))

	// Rate limit wait (only shown while throttled)
	if s.RetryAfter > 0 {
		waitStyle := lipgloss.NewStyle().
			Foreground(styles.WarningHighContrast).
			Bold(true)
		leftParts = append(leftParts, waitStyle.Render(
			styles.StatusIndicators.Warning+" wait "+fmtLatency(s.RetryAfter)))
	}

	leftSection := strings.Join(leftParts, separator)

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 4 // Account for padding
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderServerBadge renders the Ollama reachability indicator.
// ACCESSIBILITY: Uses high contrast colors with shape indicators
func (s *StatusBar) renderServerBadge(compact bool) string {
	if !s.ServerChecked {
		style := lipgloss.NewStyle().Foreground(styles.TextMuted)
		if compact {
			return style.Render(styles.StatusIndicators.Pending)
		}
		return style.Render(styles.StatusIndicators.Pending + " Server")
	}

	if s.ServerOnline {
		style := lipgloss.NewStyle().
			Foreground(styles.SuccessHighContrast).
			Bold(true)
		if compact {
			return style.Render(styles.StatusIndicators.Success)
		}
		return style.Render(styles.StatusIndicators.Success + " Server")
	}

	style := lipgloss.NewStyle().
		Foreground(styles.ErrorHighContrast).
		Bold(true)
	if compact {
		return style.Render(styles.StatusIndicators.Error)
	}
	return style.Render(styles.StatusIndicators.Error + " Offline")
}

// renderHitRate formats the cache hit rate, or a dash before any lookups.
func (s *StatusBar) renderHitRate() string {
	if s.CacheLookups == 0 {
		return "--"
	}
	rate := float64(s.CacheHits) / float64(s.CacheLookups) * 100
	return fmtPercent(rate)
}

// renderShortcuts renders keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("^S") + descStyle.Render("send"),
		keyStyle.Render("^E") + descStyle.Render("example"),
		keyStyle.Render("^L") + descStyle.Render("clear"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusAnalyzing, StatusChecking:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusRateLimited:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	case StatusIdle:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
