// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// models_cmd.go - List models installed on the Ollama server.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/acse-ra922/Code-Assistant/internal/config"
)

// ModelData is one entry in the "models --json" payload.
type ModelData struct {
	Name       string `json:"name"`
	Size       string `json:"size"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Default    bool   `json:"default"`
}

// HandleModels handles the "models" command.
func HandleModels(args Args) {
	if err := runModels(args); err != nil {
		if args.JSON {
			NewJSONError("models", err).Print()
			os.Exit(GetExitCode(err))
		}
		HandleErrorAndExit(err)
	}
}

func runModels(args Args) error {
	cfg := applyArgOverrides(config.Global(), args)
	client := BuildClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		data := make([]ModelData, 0, len(models))
		for _, m := range models {
			entry := ModelData{
				Name:    m.Name,
				Size:    m.FormatSize(),
				Default: m.Name == cfg.DefaultModel,
			}
			if !m.ModifiedAt.IsZero() {
				entry.ModifiedAt = m.ModifiedAt.Format(time.RFC3339)
			}
			data = append(data, entry)
		}
		NewJSONResponse("models", data).Print()
		return nil
	}

	if len(models) == 0 {
		fmt.Println("No models installed.")
		fmt.Println(HintStyle.Render("Pull one with: ollama pull codellama"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Installed Models"))
	for _, m := range models {
		marker := "  "
		name := ValueStyle.Render(m.Name)
		if m.Name == cfg.DefaultModel {
			marker = SuccessStyle.Render("* ")
			name = SuccessStyle.Render(m.Name)
		}
		fmt.Printf("%s%s %s\n", marker, name, DimStyle.Render("("+m.FormatSize()+")"))
	}
	fmt.Println(DimStyle.Render("* = default model"))

	return nil
}
