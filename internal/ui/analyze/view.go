// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the analysis view component for the TUI.
package analyze

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/acse-ra922/Code-Assistant/internal/model"
	"github.com/acse-ra922/Code-Assistant/internal/ui/components"
	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the full analysis screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch {
	case m.showHistory:
		b.WriteString(m.renderHistoryOverlay())
	case m.showChart:
		b.WriteString(m.renderChartOverlay())
	default:
		b.WriteString(m.renderBody())
	}

	if m.errorBox.IsVisible() {
		b.WriteString("\n")
		b.WriteString(m.errorBox.View())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.View())

	return b.String()
}

// renderHeader renders the title line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Code Assistant")
	subtitle := m.theme.HeaderSubtitle.Render(" - local code analysis")
	return m.theme.Container.Render(title + subtitle)
}

// renderBody renders the editor and, when present, the result pane.
func (m Model) renderBody() string {
	var sections []string

	sections = append(sections, m.renderInput())

	switch m.state {
	case StateAnalyzing:
		sections = append(sections, m.theme.Container.Render(m.indicator.View()))
	case StateResult:
		if m.lastResult != nil {
			sections = append(sections, m.renderResultPane())
		}
	default:
		if m.lastResult != nil {
			sections = append(sections, m.renderResultPane())
		} else {
			sections = append(sections, m.renderWelcome())
		}
	}

	return strings.Join(sections, "\n")
}

// renderInput renders the snippet editor with a focus-dependent border.
func (m Model) renderInput() string {
	style := m.theme.InputContainer
	if m.state == StateEditing {
		style = m.theme.InputFocused
	}
	return style.Render(m.input.View())
}

// renderWelcome renders the first-run hint box.
func (m Model) renderWelcome() string {
	key := m.theme.WelcomeKey
	info := m.theme.WelcomeInfo

	lines := []string{
		info.Render("Paste a code snippet and press ") + key.Render("Ctrl+S") + info.Render(" to analyze it."),
		"",
		info.Render("Shortcuts: ") +
			key.Render("Ctrl+E") + info.Render(" example  ") +
			key.Render("Ctrl+P") + info.Render(" model  ") +
			key.Render("Ctrl+T") + info.Render(" latency  ") +
			key.Render("Ctrl+O") + info.Render(" history  ") +
			key.Render("Ctrl+L") + info.Render(" clear  ") +
			key.Render("Ctrl+C") + info.Render(" quit"),
	}

	return m.theme.WelcomeBox.Render(strings.Join(lines, "\n"))
}

// renderResultPane renders the viewport holding the analysis plus its
// metadata line.
func (m Model) renderResultPane() string {
	meta := m.renderResultMeta(m.lastResult)
	pane := m.theme.ResultContainer.Render(m.viewport.View())
	return meta + "\n" + pane
}

// renderResultMeta renders the latency/token line above the result, with a
// cache badge when the result was served from cache.
func (m Model) renderResultMeta(r *model.AnalysisResult) string {
	if r == nil {
		return ""
	}

	meta := m.theme.ResultMeta.Render(r.FormatStats())
	if r.FromCache {
		return m.theme.Container.Render(m.theme.CacheBadge.Render("CACHED") + " " + meta)
	}
	return m.theme.Container.Render(meta)
}

// renderResult converts analysis markdown into terminal output.
func (m Model) renderResult(r *model.AnalysisResult) string {
	if r == nil {
		return ""
	}

	if m.renderer != nil {
		if out, err := m.renderer.Render(r.Text); err == nil {
			return out
		}
	}

	// Fallback: highlight fenced blocks ourselves, leave prose plain
	return components.ParseCodeBlocks(r.Text, m.viewport.Width)
}

// renderHistoryOverlay renders the session log with a selectable cursor.
// Enter recalls the highlighted analysis without contacting the server.
func (m Model) renderHistoryOverlay() string {
	label := lipgloss.NewStyle().Foreground(styles.TextMuted)
	value := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	active := lipgloss.NewStyle().Foreground(styles.Purple).Bold(true)

	lines := make([]string, 0, len(m.sessionLog)+2)
	for i, e := range m.sessionLog {
		prefix := "  "
		style := value
		if i == m.historyCursor {
			prefix = "> "
			style = active
		}

		line := prefix + style.Render(e.req.Preview(40)) +
			label.Render("  "+e.result.FormatLatency()+"  "+e.result.Model)
		if e.result.FromCache {
			line += " " + m.theme.CacheBadge.Render("CACHED")
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", label.Render("enter recall   c clear   esc close"))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// renderChartOverlay renders the latency history in place of the body.
func (m Model) renderChartOverlay() string {
	chart := m.chart.View()

	summaryLine := ""
	hitRateLine := ""
	if m.analyzer != nil {
		if rec := m.analyzer.Recorder(); rec != nil {
			s := rec.Summarize()
			label := lipgloss.NewStyle().Foreground(styles.TextMuted)
			value := lipgloss.NewStyle().Foreground(styles.TextSecondary)
			summaryLine = label.Render("total ") + value.Render(components.FormatCount(s.Count)) +
				label.Render("  cache hits ") + value.Render(components.FormatCount(s.CacheHits))
		}
		if c := m.analyzer.Cache(); c != nil {
			stats := c.Stats()
			if lookups := stats.Hits + stats.Misses; lookups > 0 {
				pct := float64(stats.Hits) / float64(lookups) * 100
				bar := lipgloss.NewStyle().Foreground(styles.Emerald).
					Render(styles.RenderProgressBar(20, pct))
				hitRateLine = lipgloss.NewStyle().Foreground(styles.TextMuted).
					Render("hit rate ") + "[" + bar + "]"
			}
		}
	}

	content := chart
	if summaryLine != "" {
		content += "\n\n" + summaryLine
	}
	if hitRateLine != "" {
		content += "\n" + hitRateLine
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(1, 2).
		Render(content)
}
