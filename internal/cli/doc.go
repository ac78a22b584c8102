// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the command-line interface: argument parsing,
// one-shot commands (analyze, models, status, history, config), an
// interactive REPL, and the shared error-to-exit-code mapping.
//
// Every command that runs an analysis goes through the same pipeline the
// TUI uses, so caching, rate limiting, and history behave identically
// regardless of the entry point.
package cli
