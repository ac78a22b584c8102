// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Show and edit configuration from the command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/acse-ra922/Code-Assistant/internal/config"
)

// HandleConfig handles the "config" command and its subcommands.
func HandleConfig(args Args) {
	if err := runConfig(args); err != nil {
		if args.JSON {
			NewJSONError("config", err).Print()
			os.Exit(GetExitCode(err))
		}
		HandleErrorAndExit(err)
	}
}

func runConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath(args)
	case "keys":
		return configKeys(args)
	default:
		return &ValidationError{
			Field:   "subcommand",
			Message: args.Subcommand + " (expected show, get, set, path, or keys)",
		}
	}
}

func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		NewJSONResponse("config", cfg).Print()
		return nil
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	for _, key := range config.GetAllKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Println(LabelStyle.Render(key) + " " + ValueStyle.Render(fmt.Sprintf("%v", value)))
	}

	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Println()
		fmt.Println(DimStyle.Render("File: " + path))
	}
	return nil
}

func configGet(args Args) error {
	if args.ConfigKey == "" {
		return fmt.Errorf("%w: config key", ErrMissingArgument)
	}

	value, err := config.Global().Get(args.ConfigKey)
	if err != nil {
		return &NotFoundError{Resource: "config key", Name: args.ConfigKey}
	}

	if args.JSON {
		NewJSONResponse("config", map[string]interface{}{args.ConfigKey: value}).Print()
		return nil
	}

	fmt.Printf("%v\n", value)
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("%w: config set KEY VALUE", ErrMissingArgument)
	}

	cfg := config.Global().Clone()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		if strings.Contains(err.Error(), "unknown") {
			return &NotFoundError{Resource: "config key", Name: args.ConfigKey}
		}
		return WrapError("config", err, "failed to set value")
	}

	if err := cfg.Validate(); err != nil {
		return WrapError("config", err, "invalid configuration")
	}

	if err := config.Save(cfg); err != nil {
		return WrapError("config", err, "failed to save configuration")
	}
	config.SetGlobal(cfg)

	if args.JSON {
		NewJSONResponse("config", map[string]string{args.ConfigKey: args.ConfigVal}).Print()
		return nil
	}

	fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return WrapError("config", err, "failed to resolve config path")
	}

	if args.JSON {
		NewJSONResponse("config", map[string]string{"path": path}).Print()
		return nil
	}

	fmt.Println(path)
	return nil
}

func configKeys(args Args) error {
	keys := config.GetAllKeys()

	if args.JSON {
		NewJSONResponse("config", keys).Print()
		return nil
	}

	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}
