// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Structured JSON output for scripting (--json flag).
package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONResponse is the envelope for all --json command output.
type JSONResponse struct {
	Status  string      `json:"status"` // "ok" or "error"
	Command string      `json:"command"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewJSONResponse creates a success response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Status:  "ok",
		Command: command,
		Data:    data,
	}
}

// NewJSONError creates an error response.
func NewJSONError(command string, err error) *JSONResponse {
	return &JSONResponse{
		Status:  "error",
		Command: command,
		Error:   err.Error(),
	}
}

// Print writes the response to stdout as indented JSON.
func (r *JSONResponse) Print() {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode JSON output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// VersionData is the payload for "version --json".
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}
