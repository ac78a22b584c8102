// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Inspect and manage the persisted analysis history.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/config"
	"github.com/acse-ra922/Code-Assistant/internal/history"
)

// HistoryEntryData is one entry in the "history --json" payload.
type HistoryEntryData struct {
	RequestID    string `json:"request_id"`
	Timestamp    string `json:"timestamp"`
	Preview      string `json:"preview"`
	Model        string `json:"model"`
	LatencyMs    int64  `json:"latency_ms"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// openHistoryStore opens the on-disk history database.
func openHistoryStore(path string) (*history.Store, error) {
	return history.OpenStore(path)
}

// HandleHistory handles the "history" command and its subcommands.
func HandleHistory(args Args) {
	if err := runHistory(args); err != nil {
		if args.JSON {
			NewJSONError("history", err).Print()
			os.Exit(GetExitCode(err))
		}
		HandleErrorAndExit(err)
	}
}

func runHistory(args Args) error {
	cfg := config.Global()
	if !cfg.History.Enabled || !cfg.History.Persist {
		return fmt.Errorf("history persistence is disabled (history.persist in config)")
	}

	path, err := cfg.HistoryDBPath()
	if err != nil {
		return WrapError("history", err, "failed to resolve history path")
	}

	if args.Subcommand == "clear" {
		return clearHistory(path, args)
	}

	store, err := openHistoryStore(path)
	if err != nil {
		return WrapError("history", err, "failed to open history database")
	}
	defer store.Close()

	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, err := store.Recent(limit)
	if err != nil {
		return WrapError("history", err, "failed to read history")
	}

	if args.JSON {
		data := make([]HistoryEntryData, 0, len(entries))
		for _, e := range entries {
			data = append(data, HistoryEntryData{
				RequestID:    e.RequestID,
				Timestamp:    e.Timestamp.Format(time.RFC3339),
				Preview:      e.Preview,
				Model:        e.Model,
				LatencyMs:    e.Latency.Milliseconds(),
				InputTokens:  e.InputTokens,
				OutputTokens: e.OutputTokens,
			})
		}
		NewJSONResponse("history", data).Print()
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No analyses recorded yet.")
		return nil
	}

	fmt.Println(TitleStyle.Render("Analysis History"))
	for _, e := range entries {
		ts := e.Timestamp.Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %s\n",
			DimStyle.Render(ts),
			ValueStyle.Render(e.Preview),
			DimStyle.Render(formatEntryMeta(e)))
	}
	fmt.Println(DimStyle.Render(fmt.Sprintf("showing %d most recent", len(entries))))

	return nil
}

func formatEntryMeta(e history.Entry) string {
	return fmt.Sprintf("[%s, %dms, %d/%d tok]",
		e.Model, e.Latency.Milliseconds(), e.InputTokens, e.OutputTokens)
}

// clearHistory deletes all persisted entries after the database is confirmed
// to exist.
func clearHistory(path string, args Args) error {
	if _, err := os.Stat(path); err != nil {
		if args.JSON {
			NewJSONResponse("history", map[string]int64{"deleted": 0}).Print()
			return nil
		}
		fmt.Println("No history database to clear.")
		return nil
	}

	store, err := openHistoryStore(path)
	if err != nil {
		return WrapError("history", err, "failed to open history database")
	}
	defer store.Close()

	deleted, err := store.Clear()
	if err != nil {
		return WrapError("history", err, "failed to clear history")
	}

	if args.JSON {
		NewJSONResponse("history", map[string]int64{"deleted": deleted}).Print()
		return nil
	}

	fmt.Printf("Deleted %d entries.\n", deleted)
	return nil
}
