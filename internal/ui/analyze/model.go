// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package analyze provides the analysis view component for the TUI.
package analyze

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/acse-ra922/Code-Assistant/internal/analyzer"
	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/model"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
	"github.com/acse-ra922/Code-Assistant/internal/ui/components"
	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
)

// =============================================================================
// ANALYSIS VIEW STATE
// =============================================================================

// State represents the current state of the analysis view.
type State int

const (
	StateEditing   State = iota // Editing a snippet
	StateAnalyzing              // Waiting for the model
	StateResult                 // Showing an analysis result
)

// fallbackModel is shown in the selector when discovery fails.
const fallbackModel = "codellama"

// =============================================================================
// ANALYSIS MODEL
// =============================================================================

// Model is the Bubble Tea model for the analysis view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Backend
	client   *ollama.Client
	analyzer *analyzer.Analyzer
	cfg      *config.Config

	// Current request tracking
	pendingID    string
	pendingReq   *model.AnalysisRequest
	requestStart time.Time
	lastSnippet  string
	lastResult   *model.AnalysisResult

	// Model discovery
	modelNames []string

	// UI components
	input     textarea.Model
	viewport  viewport.Model
	statusBar *components.StatusBar
	indicator components.AnalyzingIndicator
	errorBox  components.ErrorBox
	chart     *components.LatencyChart

	// Markdown rendering
	renderer *glamour.TermRenderer

	// Example cycling (Ctrl+E)
	exampleIndex int

	// Chart overlay (Ctrl+T)
	showChart bool

	// Session log and recall overlay (Ctrl+O)
	sessionLog    []sessionEntry
	showHistory   bool
	historyCursor int

	quitting bool
}

// sessionEntry pairs a submitted request with its result so earlier
// analyses can be recalled without re-running them.
type sessionEntry struct {
	req    *model.AnalysisRequest
	result *model.AnalysisResult
}

// New creates a new analysis model.
func New(client *ollama.Client, a *analyzer.Analyzer, cfg *config.Config, theme *styles.Theme) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if theme == nil {
		theme = styles.DefaultTheme
	}

	// Multi-line snippet editor
	ta := textarea.New()
	ta.Placeholder = "Paste or type a code snippet..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = true
	ta.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	bar := components.NewStatusBar(theme)
	bar.SetModel(resolveModel(a, cfg))

	chart := components.NewLatencyChart(cfg.History.ChartPoints)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Plain-text fallback when the renderer cannot initialize
		renderer = nil
	}

	return Model{
		state:     StateEditing,
		theme:     theme,
		width:     80,
		height:    24,
		client:    client,
		analyzer:  a,
		cfg:       cfg,
		input:     ta,
		viewport:  vp,
		statusBar: bar,
		indicator: components.NewAnalyzingIndicator(),
		errorBox:  components.NewErrorBox(),
		chart:     chart,
		renderer:  renderer,
	}
}

func resolveModel(a *analyzer.Analyzer, cfg *config.Config) string {
	if a != nil {
		return a.DefaultModel()
	}
	return cfg.DefaultModel
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// Init runs the startup commands: server health check and model discovery.
func (m Model) Init() tea.Cmd {
	return InitCommands(m.client)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ServerStatusMsg:
		m.statusBar.SetServerOnline(msg.Running)
		if m.state == StateEditing && !m.indicator.IsActive() {
			m.statusBar.SetStatus(components.StatusReady)
		}
		return m, nil

	case ModelsMsg:
		if msg.Error == nil && len(msg.Names) > 0 {
			m.modelNames = msg.Names
		} else if len(m.modelNames) == 0 {
			m.modelNames = []string{fallbackModel}
		}
		return m, nil

	case ModelSwitchedMsg:
		if msg.Error != nil {
			m.errorBox.ShowError(msg.Error)
			return m, nil
		}
		if m.analyzer != nil {
			m.analyzer.SetDefaultModel(msg.Model)
		}
		m.statusBar.SetModel(msg.Model)
		return m, nil

	case AnalysisCompleteMsg:
		return m.handleComplete(msg)

	case spinner.TickMsg:
		if !m.indicator.IsActive() {
			return m, nil
		}
		var cmd tea.Cmd
		m.indicator, cmd = m.indicator.Update(msg)
		return m, cmd

	case StatusTickMsg:
		m.refreshStatus()
		if m.state == StateAnalyzing {
			return m, StatusTickCmd()
		}
		return m, nil
	}

	// Delegate remaining messages to the focused component
	var cmd tea.Cmd
	if m.state == StateEditing {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// handleResize adjusts component dimensions to the terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.statusBar.SetWidth(msg.Width)
	m.errorBox.SetWidth(msg.Width)
	m.chart.SetWidth(msg.Width)

	inputHeight := m.height / 3
	if inputHeight < 5 {
		inputHeight = 5
	}
	m.input.SetWidth(msg.Width - 4)
	m.input.SetHeight(inputHeight)

	m.viewport.Width = msg.Width - 4
	m.viewport.Height = m.height - inputHeight - 6
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}

	if renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.viewport.Width),
	); err == nil {
		m.renderer = renderer
		if m.lastResult != nil {
			m.viewport.SetContent(m.renderResult(m.lastResult))
		}
	}

	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		return m.handleHistoryKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.errorBox.IsVisible() {
			m.errorBox.Hide()
			m.statusBar.SetStatus(components.StatusReady)
			return m, nil
		}
		if m.showChart {
			m.showChart = false
			return m, nil
		}
		if m.state == StateResult {
			m.state = StateEditing
			m.input.Focus()
			return m, nil
		}
		return m, nil

	case "ctrl+s":
		return m.submitSnippet()

	case "ctrl+e":
		return m.loadExample()

	case "ctrl+p":
		return m.cycleModel()

	case "ctrl+l":
		m.input.Reset()
		m.errorBox.Hide()
		m.state = StateEditing
		m.input.Focus()
		return m, nil

	case "ctrl+t":
		m.showChart = !m.showChart
		if m.showChart {
			m.refreshChart()
		}
		return m, nil

	case "ctrl+o":
		if len(m.sessionLog) == 0 {
			m.errorBox.Show("No History", "Analyze a snippet first, then recall it here.")
			return m, nil
		}
		m.showChart = false
		m.showHistory = true
		m.historyCursor = len(m.sessionLog) - 1
		return m, nil

	case "ctrl+r":
		m.statusBar.SetStatus(components.StatusChecking)
		return m, CheckServerCmd(m.client)

	case "tab":
		// Toggle focus between editor and result viewport
		if m.state == StateResult {
			m.state = StateEditing
			m.input.Focus()
		} else if m.state == StateEditing && m.lastResult != nil {
			m.state = StateResult
			m.input.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.state == StateEditing {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// handleHistoryKey processes keys while the recall overlay is open.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc", "ctrl+o", "q":
		m.showHistory = false
		return m, nil

	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case "down", "j":
		if m.historyCursor < len(m.sessionLog)-1 {
			m.historyCursor++
		}
		return m, nil

	case "enter":
		return m.recallEntry(m.historyCursor)

	case "c":
		return m.clearHistory()
	}

	return m, nil
}

// clearHistory empties the session log, the recorder, and any persisted
// history behind it, then closes the overlay.
func (m Model) clearHistory() (tea.Model, tea.Cmd) {
	m.sessionLog = nil
	m.historyCursor = 0
	m.showHistory = false

	if m.analyzer != nil {
		if rec := m.analyzer.Recorder(); rec != nil {
			_, _ = rec.ClearAll()
		}
	}
	m.chart.SetSamples(nil)
	m.refreshStatus()

	return m, nil
}

// recallEntry re-displays an earlier analysis without re-running it. The
// snippet goes back into the editor so it can be edited and resubmitted.
func (m Model) recallEntry(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.sessionLog) {
		m.showHistory = false
		return m, nil
	}

	entry := m.sessionLog[i]
	m.showHistory = false
	m.lastResult = entry.result
	m.lastSnippet = entry.req.Snippet
	m.input.SetValue(entry.req.Snippet)
	m.input.Blur()
	m.state = StateResult
	m.viewport.SetContent(m.renderResult(entry.result))
	m.viewport.GotoTop()

	return m, nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submitSnippet dispatches the editor content to the analysis pipeline.
func (m Model) submitSnippet() (tea.Model, tea.Cmd) {
	snippet := strings.TrimSpace(m.input.Value())
	if snippet == "" {
		m.errorBox.Show("Nothing To Analyze", "Type or paste a code snippet first.")
		return m, nil
	}
	if m.state == StateAnalyzing {
		return m, nil
	}

	req := model.NewAnalysisRequest(snippet, "")
	m.pendingID = req.ID
	m.pendingReq = req
	m.requestStart = time.Now()
	m.lastSnippet = snippet
	m.state = StateAnalyzing
	m.errorBox.Hide()
	m.input.Blur()

	m.statusBar.SetStatus(components.StatusAnalyzing)
	m.indicator.SetModel(resolveModel(m.analyzer, m.cfg))
	spinCmd := m.indicator.Start()

	return m, tea.Batch(
		AnalyzeCmd(m.analyzer, req),
		spinCmd,
		StatusTickCmd(),
	)
}

// handleComplete applies an analysis outcome to the view.
func (m Model) handleComplete(msg AnalysisCompleteMsg) (tea.Model, tea.Cmd) {
	// Ignore stale completions from a superseded request
	if msg.RequestID != "" && msg.RequestID != m.pendingID {
		return m, nil
	}

	m.indicator.Stop()
	m.refreshStatus()

	if msg.Error != nil {
		m.state = StateEditing
		m.input.Focus()
		m.errorBox.ShowError(msg.Error)
		m.statusBar.SetStatus(components.StatusError)
		return m, nil
	}

	m.lastResult = msg.Result
	m.state = StateResult
	m.viewport.SetContent(m.renderResult(msg.Result))
	m.viewport.GotoTop()
	m.statusBar.SetStatus(components.StatusReady)
	m.refreshChart()

	if m.pendingReq != nil {
		m.sessionLog = append(m.sessionLog, sessionEntry{req: m.pendingReq, result: msg.Result})
	}

	return m, nil
}

// =============================================================================
// EXAMPLES
// =============================================================================

// loadExample cycles the editor through the built-in example snippets.
func (m Model) loadExample() (tea.Model, tea.Cmd) {
	if m.state == StateAnalyzing {
		return m, nil
	}

	example := model.Examples[m.exampleIndex%len(model.Examples)]
	m.exampleIndex++

	m.input.SetValue(example.Code)
	m.state = StateEditing
	m.input.Focus()
	m.errorBox.Hide()

	return m, nil
}

// =============================================================================
// MODEL SELECTION
// =============================================================================

// cycleModel switches to the next model discovered from the server. The
// switch is verified asynchronously and lands as a ModelSwitchedMsg.
func (m Model) cycleModel() (tea.Model, tea.Cmd) {
	if m.state == StateAnalyzing {
		return m, nil
	}

	next := nextModelName(m.modelNames, resolveModel(m.analyzer, m.cfg))
	if next == "" {
		return m, nil
	}
	return m, SwitchModelCmd(m.client, next)
}

// nextModelName returns the entry after current, wrapping around. Empty
// when there is nothing to switch to.
func nextModelName(names []string, current string) string {
	if len(names) == 0 {
		return ""
	}
	for i, name := range names {
		if name == current {
			candidate := names[(i+1)%len(names)]
			if candidate == current {
				return ""
			}
			return candidate
		}
	}
	return names[0]
}

// =============================================================================
// STATUS
// =============================================================================

// refreshStatus pulls current cache, history, and rate-limit numbers into
// the status bar.
func (m *Model) refreshStatus() {
	if m.analyzer == nil {
		return
	}

	if c := m.analyzer.Cache(); c != nil {
		stats := c.Stats()
		m.statusBar.SetCacheStats(stats.Hits, stats.Hits+stats.Misses)
	}
	if r := m.analyzer.Recorder(); r != nil {
		m.statusBar.SetHistoryCount(r.Len())
	}
	if l := m.analyzer.Limiter(); l != nil {
		m.statusBar.SetRetryAfter(l.RetryAfter())
	}
}

// refreshChart reloads the latency chart from recorded history.
func (m *Model) refreshChart() {
	if m.analyzer == nil {
		return
	}
	if r := m.analyzer.Recorder(); r != nil {
		m.chart.SetSamples(r.Latencies(m.chart.MaxPoints))
	}
}
