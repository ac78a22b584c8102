// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive analysis prompt with input history.
//
// Handles the "repl" command: paste a snippet line by line, submit it with a
// blank line, and read the analysis inline. Snippets, like every other path
// into the analyzer, go through the cache, the rate limiter, and the
// history recorder.
//
// Interactive Commands (while the snippet buffer is empty):
//   /help, /h           Show available commands
//   /model [name]       Show or switch model
//   /models             List installed models
//   /example, /e        Analyze a built-in example snippet
//   /stats, /s          Show session statistics
//   /history            Show analyses from this session
//   /clear, /c          Clear the snippet buffer
//   /quit, /q           Exit
//   Ctrl+C, Ctrl+D      Exit
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"

	"github.com/acse-ra922/Code-Assistant/internal/analyzer"
	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/history"
	"github.com/acse-ra922/Code-Assistant/internal/model"
	"github.com/acse-ra922/Code-Assistant/internal/ollama"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput provides input history and line editing for the REPL.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	in := &replInput{
		line:        line,
		historyFile: filepath.Join(configDir, "repl_history"),
	}
	in.loadHistory()
	return in
}

func (in *replInput) loadHistory() {
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// read reads one line, appending non-empty input to the history.
func (in *replInput) read(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

func (in *replInput) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	in.line.WriteHistory(f)
}

func (in *replInput) close() {
	in.saveHistory()
	in.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// replSession holds the state for an interactive analysis session.
type replSession struct {
	cfg      *config.Config
	client   *ollama.Client
	analyzer *analyzer.Analyzer
	store    *history.Store
	input    *replInput
	renderer *glamour.TermRenderer

	quiet     bool
	startTime time.Time
	buffer    []string

	exampleIndex int
}

func newReplSession(args Args) (*replSession, error) {
	cfg := applyArgOverrides(config.Global(), args)
	client := BuildClient(cfg)

	a, store, err := BuildAnalyzer(client, cfg)
	if err != nil {
		return nil, err
	}

	var renderer *glamour.TermRenderer
	if IsStdoutTTY() {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
	}

	return &replSession{
		cfg:       cfg,
		client:    client,
		analyzer:  a,
		store:     store,
		input:     newReplInput(),
		renderer:  renderer,
		quiet:     args.Quiet,
		startTime: time.Now(),
	}, nil
}

func (s *replSession) close() {
	s.input.close()
	if s.store != nil {
		s.store.Close()
	}
}

// =============================================================================
// REPL HANDLER
// =============================================================================

// HandleRepl handles the "repl" command.
func HandleRepl(args Args) {
	if err := runRepl(args); err != nil {
		HandleErrorAndExit(err)
	}
}

func runRepl(args Args) error {
	session, err := newReplSession(args)
	if err != nil {
		return WrapError("repl", err, "failed to start session")
	}
	defer session.close()

	// Warn early when the server is down so the user is not surprised on
	// the first submission.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	serverErr := session.client.CheckRunning(ctx)
	cancel()
	if serverErr != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("[Warning]")+" Ollama is not reachable. Start it with: ollama serve")
	}

	if !session.quiet {
		printReplWelcome(session)
	}

	for {
		prompt := TitleStyle.Render("code> ")
		if len(session.buffer) > 0 {
			prompt = DimStyle.Render("  ... ")
		}

		line, err := session.input.read(prompt)
		if err != nil {
			// Ctrl+C (ErrPromptAborted), Ctrl+D (EOF) - exit gracefully
			fmt.Println()
			printReplSummary(session)
			return nil
		}

		trimmed := strings.TrimSpace(line)

		// Blank line submits the accumulated snippet
		if trimmed == "" {
			if len(session.buffer) == 0 {
				continue
			}
			snippet := strings.Join(session.buffer, "\n")
			session.buffer = session.buffer[:0]
			session.analyzeSnippet(snippet)
			continue
		}

		// Slash commands only apply between snippets
		if len(session.buffer) == 0 && strings.HasPrefix(trimmed, "/") {
			if !handleReplCommand(trimmed, session) {
				printReplSummary(session)
				return nil
			}
			continue
		}

		if len(session.buffer) == 0 && (strings.EqualFold(trimmed, "exit") || strings.EqualFold(trimmed, "quit")) {
			printReplSummary(session)
			return nil
		}

		session.buffer = append(session.buffer, line)
	}
}

// =============================================================================
// SNIPPET PROCESSING
// =============================================================================

// analyzeSnippet runs one snippet through the pipeline and prints the result.
func (s *replSession) analyzeSnippet(snippet string) {
	if !s.quiet {
		fmt.Fprintln(os.Stderr, DimStyle.Render("[Analyzing with "+s.analyzer.DefaultModel()+"...]"))
	}

	req := model.NewAnalysisRequest(snippet, "")
	result, err := s.analyzer.Analyze(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+err.Error())
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, HintStyle.Render("Hint: "+hint))
		}
		return
	}

	fmt.Println()
	text := result.Text
	if s.renderer != nil {
		if out, rerr := s.renderer.Render(text); rerr == nil {
			text = out
		}
	}
	fmt.Print(text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Println()
	}

	if !s.quiet {
		meta := result.FormatStats()
		if result.FromCache {
			meta = SuccessStyle.Render("[cached]") + " " + meta
		}
		fmt.Fprintln(os.Stderr, DimStyle.Render(meta))
	}
	fmt.Println()
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleReplCommand processes a slash command. Returns false to exit.
func handleReplCommand(cmd string, session *replSession) bool {
	parts := strings.Fields(cmd)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		printReplHelp()

	case "/model", "/m":
		handleReplModel(session, args)

	case "/models":
		printReplModels(session)

	case "/example", "/e":
		runReplExample(session)

	case "/stats", "/s":
		printReplStats(session)

	case "/history":
		printReplHistory(session)

	case "/clear", "/c":
		session.buffer = session.buffer[:0]
		if c := session.analyzer.Cache(); c != nil {
			c.Clear()
		}
		fmt.Println(SuccessStyle.Render("[Cleared buffer and cache]"))

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+"unknown command: "+command+" (type /help for commands)")
	}

	return true
}

// runReplExample analyzes the next built-in example snippet, echoing the
// code first so the output has context.
func runReplExample(session *replSession) {
	example := model.Examples[session.exampleIndex%len(model.Examples)]
	session.exampleIndex++

	fmt.Println(DimStyle.Render("[Example: " + example.Name + "]"))
	fmt.Println(example.Code)
	session.analyzeSnippet(example.Code)
}

// handleReplModel shows or switches the active model.
func handleReplModel(session *replSession, args []string) {
	if len(args) == 0 {
		fmt.Println(DimStyle.Render("[Model] ") + ValueStyle.Render(session.analyzer.DefaultModel()))
		return
	}

	name := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	installed := false
	for _, candidate := range session.client.ModelNames(ctx) {
		if candidate == name {
			installed = true
			break
		}
	}
	if !installed {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("[Warning]")+" model '"+name+"' not found locally, using it anyway")
	}

	session.analyzer.SetDefaultModel(name)
	fmt.Println(SuccessStyle.Render("[OK]") + " switched to model: " + name)
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

func printReplWelcome(session *replSession) {
	fmt.Println()
	fmt.Println(TitleStyle.Render("code-assistant interactive analysis"))
	fmt.Println(DimStyle.Render(strings.Repeat("-", 36)))
	fmt.Println(DimStyle.Render("Model: ") + ValueStyle.Render(session.analyzer.DefaultModel()))
	fmt.Println()
	fmt.Println(DimStyle.Render("Paste a snippet and submit it with a blank line. Commands: /help, /quit"))
	fmt.Println()
}

func printReplHelp() {
	fmt.Println()
	fmt.Println(TitleStyle.Render("Available Commands"))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/model [name]", "Show or switch model"},
		{"/models", "List installed models"},
		{"/example, /e", "Analyze a built-in example snippet"},
		{"/stats, /s", "Show session statistics"},
		{"/history", "Show analyses from this session"},
		{"/clear, /c", "Clear the snippet buffer and cache"},
		{"/quit, /q", "Exit"},
	}
	for _, c := range commands {
		fmt.Printf("  %-15s %s\n", c.cmd, DimStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(DimStyle.Render("Tip: a blank line submits the snippet, Ctrl+D exits"))
	fmt.Println()
}

func printReplModels(session *replSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := session.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("[Error] ")+err.Error())
		return
	}
	if len(models) == 0 {
		fmt.Println(DimStyle.Render("[No models installed]"))
		return
	}
	for _, m := range models {
		marker := "  "
		if m.Name == session.analyzer.DefaultModel() {
			marker = SuccessStyle.Render("* ")
		}
		fmt.Println(marker + ValueStyle.Render(m.Name) + " " + DimStyle.Render("("+m.FormatSize()+")"))
	}
}

func printReplStats(session *replSession) {
	rec := session.analyzer.Recorder()
	if rec == nil {
		fmt.Println(DimStyle.Render("[History disabled]"))
		return
	}
	summary := rec.Summarize()
	elapsed := time.Since(session.startTime).Round(time.Second)

	fmt.Println()
	fmt.Println(TitleStyle.Render("Session Statistics"))
	fmt.Printf("  %s %d (%d from cache)\n", DimStyle.Render("Analyses:"), summary.Count, summary.CacheHits)
	fmt.Printf("  %s %d in / %d out\n", DimStyle.Render("Tokens:"), summary.InputTokens, summary.OutputTokens)
	if summary.AvgLatency > 0 {
		fmt.Printf("  %s %s\n", DimStyle.Render("Avg latency:"), summary.AvgLatency.Round(time.Millisecond))
	}
	if c := session.analyzer.Cache(); c != nil {
		stats := c.Stats()
		fmt.Printf("  %s %d hits / %d misses\n", DimStyle.Render("Cache:"), stats.Hits, stats.Misses)
	}
	fmt.Printf("  %s %s\n", DimStyle.Render("Duration:"), elapsed.String())
	fmt.Println()
}

func printReplHistory(session *replSession) {
	rec := session.analyzer.Recorder()
	if rec == nil || rec.Len() == 0 {
		fmt.Println(DimStyle.Render("[No analyses yet]"))
		return
	}

	fmt.Println()
	for i, e := range rec.Entries() {
		meta := formatEntryMeta(e)
		if e.FromCache {
			meta += " " + SuccessStyle.Render("[cached]")
		}
		fmt.Printf("  %d. %s %s\n", i+1, ValueStyle.Render(e.Preview), DimStyle.Render(meta))
	}
	fmt.Println()
}

func printReplSummary(session *replSession) {
	rec := session.analyzer.Recorder()
	if rec == nil || rec.Len() == 0 {
		fmt.Println(DimStyle.Render("Goodbye!"))
		return
	}

	summary := rec.Summarize()
	elapsed := time.Since(session.startTime).Round(time.Second)

	fmt.Println()
	fmt.Println(TitleStyle.Render("Session Summary"))
	fmt.Printf("  %s %d (%d from cache)\n", DimStyle.Render("Analyses:"), summary.Count, summary.CacheHits)
	fmt.Printf("  %s %d in / %d out\n", DimStyle.Render("Tokens:"), summary.InputTokens, summary.OutputTokens)
	fmt.Printf("  %s %s\n", DimStyle.Render("Duration:"), elapsed.String())
	fmt.Println()
	fmt.Println(DimStyle.Render("Goodbye!"))
}
