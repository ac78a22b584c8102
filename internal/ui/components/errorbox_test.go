// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/acse-ra922/Code-Assistant/internal/ollama"
	"github.com/acse-ra922/Code-Assistant/internal/ratelimit"
)

func TestErrorBox_HiddenByDefault(t *testing.T) {
	box := NewErrorBox()
	if box.IsVisible() {
		t.Error("new error box should be hidden")
	}
	if box.View() != "" {
		t.Error("hidden box should render nothing")
	}
}

func TestErrorBox_ClassifiesOllamaErrors(t *testing.T) {
	tests := []struct {
		err       error
		wantTitle string
		wantHint  string
	}{
		{ollama.ErrNotRunning, "Ollama Not Running", "ollama serve"},
		{ollama.ErrModelNotFound, "Model Not Found", "ollama pull"},
		{ollama.ErrTimeout, "Request Timed Out", "shorter snippet"},
		{ratelimit.ErrRateLimited, "Rate Limited", "cache"},
		{errors.New("boom"), "Analysis Failed", ""},
	}

	for _, tc := range tests {
		box := NewErrorBox()
		box.ShowError(tc.err)

		view := box.View()
		if !strings.Contains(view, tc.wantTitle) {
			t.Errorf("view for %v missing title %q", tc.err, tc.wantTitle)
		}
		if tc.wantHint != "" && !strings.Contains(view, tc.wantHint) {
			t.Errorf("view for %v missing suggestion %q", tc.err, tc.wantHint)
		}
	}
}

func TestErrorBox_NilErrorHides(t *testing.T) {
	box := NewErrorBox()
	box.ShowError(errors.New("x"))
	box.ShowError(nil)
	if box.IsVisible() {
		t.Error("ShowError(nil) should hide the box")
	}
}
