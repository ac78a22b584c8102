// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the code assistant
TUI.

The package defines the color palette, the theme, and the small animation
helpers used by the components package. All colors use Lip Gloss
AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

Accent colors:

  - Purple - primary accent, headers, focused borders
  - Cyan - shortcut keys and informational highlights
  - Emerald - success states, healthy server, fast latencies
  - Amber - warnings, rate-limit waits, slow latencies
  - Rose - errors

Chart colors (ChartBar, ChartBarSlow, ChartAxis) style the latency history
sparkline. StatusIndicators provides ASCII shapes ([OK], [X], [!], ...)
shown alongside colors so states stay distinguishable without color
perception.

# Theme (theme.go)

Theme holds the prebuilt lipgloss styles for every surface of the analyze
view: header, snippet editor, result pane, status bar, error box, latency
chart, and the welcome screen. NewTheme detects the terminal color profile
via termenv and adapts to light or dark backgrounds; SetSize propagates
terminal dimensions to width-dependent styles.

# Animations (animations.go)

Spinner frame sets and the progress bar renderer. All frames are
ASCII-only so the UI degrades cleanly on limited terminals.
*/
package styles
