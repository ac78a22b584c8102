// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestStatusIndicators_AreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}

	for _, ind := range indicators {
		if ind == "" {
			t.Error("indicator should not be empty")
		}
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderHelpers_IncludeMessage(t *testing.T) {
	tests := []struct {
		name   string
		render func(string) string
	}{
		{"success", RenderSuccess},
		{"error", RenderError},
		{"warning", RenderWarning},
		{"info", RenderInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.render("hello")
			if !strings.Contains(out, "hello") {
				t.Errorf("rendered output %q should contain the message", out)
			}
		})
	}
}

func TestSpinnerConfig_Duration(t *testing.T) {
	if got := LineSpinner.Duration(); got != time.Second/10 {
		t.Errorf("LineSpinner.Duration() = %v, want %v", got, time.Second/10)
	}
	if got := DotsSpinner.Duration(); got != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v, want %v", got, time.Second/6)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		want    string
	}{
		{"empty", 4, 0, "----"},
		{"full", 4, 100, "####"},
		{"half", 4, 50, "##--"},
		{"clamped high", 4, 150, "####"},
		{"clamped low", 4, -10, "----"},
		{"zero width", 0, 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderProgressBar(tt.width, tt.percent); got != tt.want {
				t.Errorf("RenderProgressBar(%d, %v) = %q, want %q", tt.width, tt.percent, got, tt.want)
			}
		})
	}
}

func TestRenderProgressBar_WidthIsStable(t *testing.T) {
	for pct := 0.0; pct <= 100; pct += 7 {
		bar := RenderProgressBar(10, pct)
		if len(bar) != 10 {
			t.Errorf("bar width at %v%% = %d, want 10", pct, len(bar))
		}
	}
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize(120, 40) got %dx%d", theme.Width, theme.Height)
	}
}

func TestDefaultTheme_Initialized(t *testing.T) {
	if DefaultTheme == nil {
		t.Fatal("DefaultTheme should be initialized at package load")
	}
}
