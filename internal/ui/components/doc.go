// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the code
// assistant TUI: the status bar, loading spinners, syntax-highlighted code
// views, the latency chart, and error displays.
//
// Components are plain structs with View() methods; the ones that animate
// also implement the Bubble Tea Update contract. All rendering goes through
// the shared palette in the styles package, and indicators use ASCII shapes
// alongside color for accessibility.
package components
