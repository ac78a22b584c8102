// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		// Writer goroutine
		go func() {
			defer wg.Done()
			c := Default()
			c.Version = "test"
			c.DefaultModel = "test-model"
			SetGlobal(c)
		}()

		// Reader goroutine
		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}

	// Verify defaults are applied
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.Server.OllamaURL == "" {
		t.Error("Ollama URL should not be empty")
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	// Reset state before test
	ResetGlobalForTesting()

	// Initialize with defaults
	_ = Global()

	// Set custom config
	customCfg := Default()
	customCfg.Version = "custom-version"
	customCfg.DefaultModel = "custom-model"
	SetGlobal(customCfg)

	// Verify the custom config is returned
	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
	if result.DefaultModel != "custom-model" {
		t.Errorf("Expected model 'custom-model', got '%s'", result.DefaultModel)
	}
}

// TestConfig_Default tests that Default() returns a valid config with defaults.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.DefaultModel != "codellama" {
		t.Errorf("Expected default model 'codellama', got '%s'", cfg.DefaultModel)
	}

	if cfg.Server.OllamaURL != "http://127.0.0.1:11434" {
		t.Errorf("Unexpected default Ollama URL: %s", cfg.Server.OllamaURL)
	}

	if cfg.RateLimit.MaxCalls != 3 || cfg.RateLimit.WindowSecs != 5 {
		t.Errorf("Unexpected rate limit defaults: %d per %ds",
			cfg.RateLimit.MaxCalls, cfg.RateLimit.WindowSecs)
	}

	if cfg.Analysis.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.Analysis.MaxRetries)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "invalid" },
			wantErr: true,
		},
		{
			name:    "temperature too high",
			mutate:  func(c *Config) { c.Analysis.Temperature = 3.0 },
			wantErr: true,
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.Analysis.RetryDelaySecs = -1 },
			wantErr: true,
		},
		{
			name:    "zero max retries",
			mutate:  func(c *Config) { c.Analysis.MaxRetries = 0 },
			wantErr: true,
		},
		{
			name:    "zero rate limit window",
			mutate:  func(c *Config) { c.RateLimit.WindowSecs = 0 },
			wantErr: true,
		},
		{
			name:    "excessive rate limit calls",
			mutate:  func(c *Config) { c.RateLimit.MaxCalls = 10000 },
			wantErr: true,
		},
		{
			name:    "chart points out of range",
			mutate:  func(c *Config) { c.History.ChartPoints = 1000 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfig_GetSet tests Get and Set methods with dot notation.
func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	// Test Get
	val, err := cfg.Get("ratelimit.max_calls")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if val != 3 {
		t.Errorf("Get('ratelimit.max_calls') = %v, want 3", val)
	}

	// Test Set with string conversion
	err = cfg.Set("ratelimit.max_calls", "5")
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, _ = cfg.Get("ratelimit.max_calls")
	if val != 5 {
		t.Errorf("Get('ratelimit.max_calls') after Set = %v, want 5", val)
	}

	// Test Set on string field
	if err := cfg.Set("default_model", "llama3.2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.DefaultModel != "llama3.2" {
		t.Errorf("DefaultModel = %q, want llama3.2", cfg.DefaultModel)
	}

	// Test Get with invalid key
	_, err = cfg.Get("invalid.key")
	if err == nil {
		t.Error("Get() with invalid key should return error")
	}
}

// TestConfig_EnvOverrides tests environment variable overrides.
func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CODE_ASSISTANT_MODEL", "env-model")
	t.Setenv("CODE_ASSISTANT_OLLAMA_URL", "http://10.0.0.5:11434")
	t.Setenv("CODE_ASSISTANT_NO_CACHE", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.DefaultModel != "env-model" {
		t.Errorf("DefaultModel = %q, want env-model", cfg.DefaultModel)
	}
	if cfg.Server.OllamaURL != "http://10.0.0.5:11434" {
		t.Errorf("OllamaURL = %q", cfg.Server.OllamaURL)
	}
	if cfg.Cache.Enabled {
		t.Error("CODE_ASSISTANT_NO_CACHE=1 should disable the cache")
	}
}

// TestConfig_LoadFromPath_TOML tests loading from a TOML file.
func TestConfig_LoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
default_model = "llama3.2"

[ratelimit]
enabled = true
max_calls = 10
window_secs = 30
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.DefaultModel != "llama3.2" {
		t.Errorf("DefaultModel = %q, want llama3.2", cfg.DefaultModel)
	}
	if cfg.RateLimit.MaxCalls != 10 {
		t.Errorf("MaxCalls = %d, want 10", cfg.RateLimit.MaxCalls)
	}
	// Unset fields get defaults
	if cfg.Server.OllamaURL != "http://127.0.0.1:11434" {
		t.Errorf("OllamaURL default not applied: %q", cfg.Server.OllamaURL)
	}
}

// TestConfig_LoadFromPath_JSON tests loading from a JSON file.
func TestConfig_LoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := `{"default_model": "codellama:13b", "analysis": {"max_retries": 5}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.DefaultModel != "codellama:13b" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.Analysis.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Analysis.MaxRetries)
	}
}

// TestConfig_SaveAndReloadTOML round-trips a config through SaveTOML.
func TestConfig_SaveAndReloadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.DefaultModel = "saved-model"
	cfg.RateLimit.MaxCalls = 7

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}

	loaded := &Config{}
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}

	if loaded.DefaultModel != "saved-model" {
		t.Errorf("DefaultModel = %q, want saved-model", loaded.DefaultModel)
	}
	if loaded.RateLimit.MaxCalls != 7 {
		t.Errorf("MaxCalls = %d, want 7", loaded.RateLimit.MaxCalls)
	}
}

// TestConfig_Clone tests that Clone creates an independent copy.
func TestConfig_Clone(t *testing.T) {
	original := Default()
	original.Version = "original"

	clone := original.Clone()

	// Modify clone
	clone.Version = "cloned"

	// Verify original unchanged
	if original.Version != "original" {
		t.Error("Clone should create an independent copy")
	}
	if clone.Version != "cloned" {
		t.Error("Clone version should be modified")
	}
}
