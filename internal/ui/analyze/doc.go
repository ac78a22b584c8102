// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze implements the interactive analysis view: a snippet
// editor, an analysis result pane rendered from markdown, a latency chart
// overlay, a session history overlay with recall, and a status bar showing
// server health, cache hit rate, and rate-limit state.
//
// The view is a Bubble Tea model. Long-running work (health checks, model
// discovery, the analysis pipeline itself) runs in commands that report back
// with the message types in messages.go; the Update loop stays
// non-blocking.
//
// States:
//
//	StateEditing   - the editor has focus, Ctrl+S submits
//	StateAnalyzing - a request is in flight, spinner active
//	StateResult    - the result pane has focus, Esc returns to the editor
package analyze
