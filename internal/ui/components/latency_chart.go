// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the code assistant TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
)

// =============================================================================
// LATENCY CHART - Vertical bar chart of recent analysis latencies
// =============================================================================

// chartLevels are partial-height bar glyphs, lowest to highest.
var chartLevels = []string{"_", ".", ":", "-", "=", "+", "*", "#"}

// slowThreshold marks the latency above which bars change color.
const slowThreshold = 5 * time.Second

// LatencyChart renders recent analysis latencies as a compact bar chart.
// Bars are scaled against the slowest sample in the window.
type LatencyChart struct {
	MaxPoints int
	Width     int

	samples []time.Duration
}

// NewLatencyChart creates a chart holding up to maxPoints samples.
func NewLatencyChart(maxPoints int) *LatencyChart {
	if maxPoints <= 0 {
		maxPoints = 20
	}
	return &LatencyChart{
		MaxPoints: maxPoints,
		Width:     80,
	}
}

// SetWidth sets the rendered width.
func (c *LatencyChart) SetWidth(width int) {
	c.Width = width
}

// SetSamples replaces the chart data, keeping the newest MaxPoints entries.
func (c *LatencyChart) SetSamples(samples []time.Duration) {
	if len(samples) > c.MaxPoints {
		samples = samples[len(samples)-c.MaxPoints:]
	}
	c.samples = append(c.samples[:0], samples...)
}

// Add appends a sample, evicting the oldest when full.
func (c *LatencyChart) Add(d time.Duration) {
	c.samples = append(c.samples, d)
	if len(c.samples) > c.MaxPoints {
		c.samples = c.samples[len(c.samples)-c.MaxPoints:]
	}
}

// Len returns the number of samples held.
func (c *LatencyChart) Len() int {
	return len(c.samples)
}

// View renders the chart with min/avg/max annotations.
func (c *LatencyChart) View() string {
	if len(c.samples) == 0 {
		return lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Render("No analyses yet")
	}

	var (
		minLat = c.samples[0]
		maxLat = c.samples[0]
		total  time.Duration
	)
	for _, d := range c.samples {
		if d < minLat {
			minLat = d
		}
		if d > maxLat {
			maxLat = d
		}
		total += d
	}
	avg := total / time.Duration(len(c.samples))

	normalStyle := lipgloss.NewStyle().Foreground(styles.ChartBar)
	slowStyle := lipgloss.NewStyle().Foreground(styles.ChartBarSlow)

	var bars strings.Builder
	for _, d := range c.samples {
		level := 0
		if maxLat > 0 {
			level = int(int64(d) * int64(len(chartLevels)-1) / int64(maxLat))
		}
		if level < 0 {
			level = 0
		}
		if level >= len(chartLevels) {
			level = len(chartLevels) - 1
		}

		glyph := chartLevels[level]
		if d >= slowThreshold {
			bars.WriteString(slowStyle.Render(glyph))
		} else {
			bars.WriteString(normalStyle.Render(glyph))
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(styles.ChartAxis)
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)

	legend := labelStyle.Render("min ") + valueStyle.Render(fmtLatency(minLat)) +
		labelStyle.Render("  avg ") + valueStyle.Render(fmtLatency(avg)) +
		labelStyle.Render("  max ") + valueStyle.Render(fmtLatency(maxLat))

	title := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Bold(true).
		Render("Latency (" + toStr(len(c.samples)) + " samples)")

	return title + "\n" +
		axisStyle.Render("[") + bars.String() + axisStyle.Render("]") + "\n" +
		legend
}
