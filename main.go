// Code Assistant - local code analysis in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/acse-ra922/Code-Assistant/internal/cli"
	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/ui/analyze"
	"github.com/acse-ra922/Code-Assistant/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAnalyze:
		cli.HandleAnalyze(args)
	case cli.CmdRepl:
		cli.HandleRepl(args)
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdModels:
		cli.HandleModels(args)
	case cli.CmdHistory:
		cli.HandleHistory(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runTUI(args)
	}
}

// runTUI starts the interactive analysis interface.
func runTUI(args cli.Args) {
	cfg := config.Global().Clone()
	if args.Model != "" {
		cfg.DefaultModel = args.Model
	}
	if args.NoCache {
		cfg.Cache.Enabled = false
	}

	client := cli.BuildClient(cfg)

	a, store, err := cli.BuildAnalyzer(client, cfg)
	if err != nil {
		// History persistence is a convenience; the session still works
		// without it.
		fmt.Fprintf(os.Stderr, "Warning: history persistence unavailable: %v\n", err)
		fallback := cfg.Clone()
		fallback.History.Persist = false
		a, store, _ = cli.BuildAnalyzer(client, fallback)
	}
	if store != nil {
		defer store.Close()
	}

	// Pick up model changes when the config file is edited while the TUI
	// is running.
	if watcher, werr := config.NewWatcher(func(updated *config.Config) {
		a.SetDefaultModel(updated.DefaultModel)
	}); werr == nil {
		if werr := watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	theme := styles.NewTheme()
	m := analyze.New(client, a, cfg, theme)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running code-assistant: %v\n", err)
		os.Exit(1)
	}
}
