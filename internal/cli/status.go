// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Server reachability and session configuration summary.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/config"
)

// StatusData is the payload for "status --json".
type StatusData struct {
	ServerURL      string   `json:"server_url"`
	ServerRunning  bool     `json:"server_running"`
	ServerError    string   `json:"server_error,omitempty"`
	DefaultModel   string   `json:"default_model"`
	Models         []string `json:"models,omitempty"`
	CacheEnabled   bool     `json:"cache_enabled"`
	RateLimited    bool     `json:"rate_limit_enabled"`
	RateMaxCalls   int      `json:"rate_max_calls"`
	RateWindowSecs int      `json:"rate_window_secs"`
	HistoryPersist bool     `json:"history_persist"`
	HistoryEntries int      `json:"history_entries"`
}

// HandleStatus handles the "status" command.
func HandleStatus(args Args) {
	if err := runStatus(args); err != nil {
		if args.JSON {
			NewJSONError("status", err).Print()
			os.Exit(GetExitCode(err))
		}
		HandleErrorAndExit(err)
	}
}

func runStatus(args Args) error {
	cfg := applyArgOverrides(config.Global(), args)
	client := BuildClient(cfg)

	data := StatusData{
		ServerURL:      cfg.Server.OllamaURL,
		DefaultModel:   cfg.DefaultModel,
		CacheEnabled:   cfg.Cache.Enabled,
		RateLimited:    cfg.RateLimit.Enabled,
		RateMaxCalls:   cfg.RateLimit.MaxCalls,
		RateWindowSecs: cfg.RateLimit.WindowSecs,
		HistoryPersist: cfg.History.Enabled && cfg.History.Persist,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.CheckRunning(ctx); err != nil {
		data.ServerError = err.Error()
	} else {
		data.ServerRunning = true
		data.Models = client.ModelNames(ctx)
	}

	if data.HistoryPersist {
		data.HistoryEntries = countPersistedEntries(cfg)
	}

	if args.JSON {
		NewJSONResponse("status", data).Print()
		return nil
	}

	printStatus(data)
	return nil
}

// countPersistedEntries reports the persisted history size, or 0 when the
// database cannot be opened. Status display should never fail on a missing
// history file.
func countPersistedEntries(cfg *config.Config) int {
	path, err := cfg.HistoryDBPath()
	if err != nil {
		return 0
	}
	if _, err := os.Stat(path); err != nil {
		return 0
	}
	store, err := openHistoryStore(path)
	if err != nil {
		return 0
	}
	defer store.Close()
	n, err := store.Count()
	if err != nil {
		return 0
	}
	return n
}

func printStatus(data StatusData) {
	fmt.Println(TitleStyle.Render("Code Assistant Status"))
	fmt.Println()

	if data.ServerRunning {
		fmt.Println(LabelStyle.Render("Server:") + SuccessStyle.Render("running") + DimStyle.Render(" ("+data.ServerURL+")"))
	} else {
		fmt.Println(LabelStyle.Render("Server:") + ErrorStyle.Render("not reachable") + DimStyle.Render(" ("+data.ServerURL+")"))
		if data.ServerError != "" {
			fmt.Println(LabelStyle.Render("") + DimStyle.Render(data.ServerError))
		}
		fmt.Println(HintStyle.Render("Start the server with: ollama serve"))
	}

	fmt.Println(LabelStyle.Render("Default model:") + ValueStyle.Render(data.DefaultModel))
	if len(data.Models) > 0 {
		fmt.Println(LabelStyle.Render("Models:") + ValueStyle.Render(fmt.Sprintf("%d installed", len(data.Models))))
	}

	fmt.Println(LabelStyle.Render("Cache:") + onOff(data.CacheEnabled))
	if data.RateLimited {
		fmt.Println(LabelStyle.Render("Rate limit:") +
			ValueStyle.Render(fmt.Sprintf("%d calls / %ds", data.RateMaxCalls, data.RateWindowSecs)))
	} else {
		fmt.Println(LabelStyle.Render("Rate limit:") + WarningStyle.Render("disabled"))
	}

	if data.HistoryPersist {
		fmt.Println(LabelStyle.Render("History:") +
			ValueStyle.Render(fmt.Sprintf("%d persisted analyses", data.HistoryEntries)))
	} else {
		fmt.Println(LabelStyle.Render("History:") + WarningStyle.Render("not persisted"))
	}
}

func onOff(b bool) string {
	if b {
		return SuccessStyle.Render("enabled")
	}
	return WarningStyle.Render("disabled")
}
