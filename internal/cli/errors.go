// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error handling and exit codes for the CLI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/acse-ra922/Code-Assistant/internal/ollama"
	"github.com/acse-ra922/Code-Assistant/internal/ratelimit"
)

// =============================================================================
// EXIT CODES
// =============================================================================

// Exit codes for different error categories.
const (
	ExitSuccess         = 0 // Command completed successfully
	ExitGeneralError    = 1 // Generic/unknown error
	ExitUsageError      = 2 // Invalid arguments or usage
	ExitServerError     = 3 // Ollama server not reachable
	ExitModelError      = 4 // Requested model not installed
	ExitNotFoundError   = 5 // Resource not found (file, config key)
	ExitRateLimitError  = 6 // Client-side rate limit rejected the call
	ExitTimeoutError    = 7 // Operation timed out
	ExitConfigError     = 8 // Configuration load/save failed
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents an error from command execution.
type CommandError struct {
	Command string
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Command, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
}

// ErrMissingArgument is returned when a required argument is absent.
var ErrMissingArgument = errors.New("missing required argument")

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError prints a user-friendly error message to stderr, with a hint
// when one applies.
func DisplayError(err error) {
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())

	if hint := errorHint(err); hint != "" {
		fmt.Fprintln(os.Stderr, HintStyle.Render("Hint: "+hint))
	}
}

// errorHint returns a recovery suggestion for known error categories.
func errorHint(err error) string {
	switch {
	case ollama.IsNotRunning(err):
		return "start the server with: ollama serve"
	case ollama.IsModelNotFound(err):
		return "pull the model with: ollama pull <name> (see: code-assistant models)"
	case ollama.IsTimeout(err):
		return "try a shorter snippet or raise server.timeout_secs"
	case isRateLimitMessage(err):
		return "wait a moment; cached snippets are never rate limited"
	case errors.Is(err, ErrMissingArgument):
		return "run: code-assistant help"
	}
	return ""
}

func isRateLimitMessage(err error) bool {
	if ratelimit.IsRateLimited(err) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "rate limit")
}

// HandleErrorAndExit displays an error and exits with the appropriate code.
func HandleErrorAndExit(err error) {
	if err == nil {
		os.Exit(ExitSuccess)
	}
	DisplayError(err)
	os.Exit(GetExitCode(err))
}

// GetExitCode maps an error to its exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return ExitNotFoundError
	}

	if errors.Is(err, ErrMissingArgument) {
		return ExitUsageError
	}

	switch {
	case ollama.IsNotRunning(err):
		return ExitServerError
	case ollama.IsModelNotFound(err):
		return ExitModelError
	case ollama.IsTimeout(err):
		return ExitTimeoutError
	case isRateLimitMessage(err):
		return ExitRateLimitError
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "config"):
		return ExitConfigError
	case strings.Contains(msg, "not found") || strings.Contains(msg, "no such file"):
		return ExitNotFoundError
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ExitTimeoutError
	}

	return ExitGeneralError
}

// WrapError wraps an error with command context.
func WrapError(command string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Command: command,
		Message: message,
		Err:     err,
	}
}
