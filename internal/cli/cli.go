// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for the code assistant.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAnalyze
	CmdRepl
	CmdStatus
	CmdModels
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string
	JSON    bool // Output in JSON format
	Plain   bool // Disable markdown rendering
	NoCache bool // Bypass the response cache

	// Command-specific
	Snippet    string
	File       string
	ConfigKey  string
	ConfigVal  string
	Subcommand string
	Limit      int // History entry limit

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `code-assistant - local code analysis with Ollama

Code Assistant explains code snippets using a local Ollama model. Results
are cached, rate limited, and recorded with latency metrics.

Usage:
  code-assistant                     Start TUI (default)
  code-assistant analyze [snippet]   Analyze a snippet (or --file / stdin)
  code-assistant repl                Interactive analysis prompt
  code-assistant status, s           Show server and session status
  code-assistant models              List installed Ollama models
  code-assistant history             Show recorded analyses
  code-assistant config [show|get|set]  Configuration

Analyze Command:
  code-assistant analyze "def f(): pass"    Analyze an inline snippet
  code-assistant analyze --file main.go     Analyze a file
  cat main.go | code-assistant analyze      Analyze stdin
    -f, --file PATH                 Read the snippet from a file
    --json                          Emit the result as JSON
    --plain                         Skip markdown rendering

History Commands:
  code-assistant history            Show recent analyses (default: 20)
    --limit N                       Show last N entries
  code-assistant history clear      Delete persisted history

Config Commands:
  code-assistant config show        Show current configuration
  code-assistant config get KEY     Read one value (dot notation)
  code-assistant config set KEY VAL Write one value

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --model NAME    Override default model
  --json          Output in JSON format
  --no-cache      Bypass the response cache

Examples:
  code-assistant                                 Start the TUI
  code-assistant analyze "print(1)"              One-shot analysis
  code-assistant analyze --file cmd/main.go      Analyze a file
  code-assistant analyze --model llama3.2 -f x.py
  code-assistant repl                            Interactive prompt
  code-assistant status                          Check the Ollama server
  code-assistant config set rate_limit.max_calls 5
  code-assistant history --limit 50

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("code-assistant version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "analyze", "explain":
		parseAnalyzeArgs(&parsedArgs, remaining)
		return CmdAnalyze, parsedArgs

	case "repl", "interactive":
		return CmdRepl, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "models", "model":
		return CmdModels, parsedArgs

	case "history", "hist":
		parseHistoryArgs(&parsedArgs, remaining)
		return CmdHistory, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command - treat it as an inline snippet to analyze
		parsedArgs.Snippet = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAnalyze, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--plain":
			parsedArgs.Plain = true
		case "--no-cache":
			parsedArgs.NoCache = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAnalyzeArgs parses analyze command specific arguments.
func parseAnalyzeArgs(args *Args, remaining []string) {
	var snippet []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.File = remaining[i]
			}
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--file=") {
				args.File = strings.TrimPrefix(arg, "--file=")
			} else if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if !strings.HasPrefix(arg, "-") {
				snippet = append(snippet, arg)
			}
		}
		i++
	}

	args.Snippet = strings.Join(snippet, " ")
}

// parseHistoryArgs parses history command specific arguments.
func parseHistoryArgs(args *Args, remaining []string) {
	args.Limit = 20

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "clear":
			args.Subcommand = "clear"
		case arg == "stats":
			args.Subcommand = "stats"
		case arg == "--limit" && i+1 < len(remaining):
			i++
			if n := atoiSafe(remaining[i]); n > 0 {
				args.Limit = n
			}
		case strings.HasPrefix(arg, "--limit="):
			if n := atoiSafe(strings.TrimPrefix(arg, "--limit=")); n > 0 {
				args.Limit = n
			}
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// atoiSafe parses a non-negative integer, returning 0 on failure.
func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
