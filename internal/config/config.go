// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the code assistant.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.code-assistant/config.toml
//   - ~/.code-assistant/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/acse-ra922/Code-Assistant/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete code assistant configuration.
type Config struct {
	// General settings
	Version      string `toml:"version" json:"version"`
	DefaultModel string `toml:"default_model" json:"default_model"`

	// Server (Ollama) configuration
	Server ServerConfig `toml:"server" json:"server"`

	// Analysis configuration
	Analysis AnalysisConfig `toml:"analysis" json:"analysis"`

	// Rate limit configuration
	RateLimit RateLimitConfig `toml:"ratelimit" json:"ratelimit"`

	// Cache configuration
	Cache CacheConfig `toml:"cache" json:"cache"`

	// History configuration
	History HistoryConfig `toml:"history" json:"history"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig contains the Ollama server connection settings.
type ServerConfig struct {
	// OllamaURL is the URL of the Ollama server
	OllamaURL string `toml:"ollama_url" json:"ollama_url"`
	// TimeoutSecs is the per-request timeout for generate calls in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// HealthTimeoutSecs is the timeout for health checks and model listing
	HealthTimeoutSecs int `toml:"health_timeout_secs" json:"health_timeout_secs"`
}

// AnalysisConfig contains the analysis pipeline settings.
type AnalysisConfig struct {
	// Temperature controls sampling randomness. Analysis wants focused
	// output, so the default is low.
	Temperature float64 `toml:"temperature" json:"temperature"`
	// NumPredict caps the number of tokens generated per analysis
	NumPredict int `toml:"num_predict" json:"num_predict"`
	// MaxRetries is the number of attempts before giving up on a request
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// RetryDelaySecs is the base delay between retry attempts in seconds.
	// The actual delay grows with the attempt number.
	RetryDelaySecs int `toml:"retry_delay_secs" json:"retry_delay_secs"`
}

// RateLimitConfig contains client-side rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active
	Enabled bool `toml:"enabled" json:"enabled"`
	// MaxCalls is the number of calls permitted per window
	MaxCalls int `toml:"max_calls" json:"max_calls"`
	// WindowSecs is the window length in seconds
	WindowSecs int `toml:"window_secs" json:"window_secs"`
}

// CacheConfig contains response cache settings.
type CacheConfig struct {
	// Enabled controls whether caching is active
	Enabled bool `toml:"enabled" json:"enabled"`
}

// HistoryConfig contains analysis history settings.
type HistoryConfig struct {
	// Enabled controls whether history is recorded
	Enabled bool `toml:"enabled" json:"enabled"`
	// Persist controls whether history is written to the on-disk database
	Persist bool `toml:"persist" json:"persist"`
	// DBPath is the path to the history database (empty = default
	// ~/.code-assistant/history.db)
	DBPath string `toml:"db_path" json:"db_path"`
	// ChartPoints is the number of recent latencies shown in the chart
	ChartPoints int `toml:"chart_points" json:"chart_points"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowTokens displays token counts in the UI
	ShowTokens bool `toml:"show_tokens" json:"show_tokens"`
	// ShowLatency displays the latency chart in the UI
	ShowLatency bool `toml:"show_latency" json:"show_latency"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version:      "1.0.0",
		DefaultModel: "codellama",

		Server: ServerConfig{
			OllamaURL:         "http://127.0.0.1:11434",
			TimeoutSecs:       60,
			HealthTimeoutSecs: 5,
		},

		Analysis: AnalysisConfig{
			Temperature:    0.1,
			NumPredict:     2048,
			MaxRetries:     3,
			RetryDelaySecs: 2,
		},

		RateLimit: RateLimitConfig{
			Enabled:    true,
			MaxCalls:   3,
			WindowSecs: 5,
		},

		Cache: CacheConfig{
			Enabled: true,
		},

		History: HistoryConfig{
			Enabled:     true,
			Persist:     true,
			DBPath:      "",
			ChartPoints: 20,
		},

		UI: UIConfig{
			Theme:       "dark",
			ShowTokens:  true,
			ShowLatency: true,
			CompactMode: false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the code assistant configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".code-assistant"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryDBPath returns the configured history database path, falling back
// to the default under the config directory.
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Defaults path: still apply overrides and validation.
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finishLoad applies env overrides, defaults and validation after a decode.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	// Determine file type and load accordingly
	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	// General
	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = defaults.DefaultModel
	}

	// Server
	if cfg.Server.OllamaURL == "" {
		cfg.Server.OllamaURL = defaults.Server.OllamaURL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if cfg.Server.HealthTimeoutSecs == 0 {
		cfg.Server.HealthTimeoutSecs = defaults.Server.HealthTimeoutSecs
	}

	// Analysis
	if cfg.Analysis.Temperature == 0 {
		cfg.Analysis.Temperature = defaults.Analysis.Temperature
	}
	if cfg.Analysis.NumPredict == 0 {
		cfg.Analysis.NumPredict = defaults.Analysis.NumPredict
	}
	if cfg.Analysis.MaxRetries == 0 {
		cfg.Analysis.MaxRetries = defaults.Analysis.MaxRetries
	}
	if cfg.Analysis.RetryDelaySecs == 0 {
		cfg.Analysis.RetryDelaySecs = defaults.Analysis.RetryDelaySecs
	}

	// Rate limit
	if cfg.RateLimit.MaxCalls == 0 {
		cfg.RateLimit.MaxCalls = defaults.RateLimit.MaxCalls
	}
	if cfg.RateLimit.WindowSecs == 0 {
		cfg.RateLimit.WindowSecs = defaults.RateLimit.WindowSecs
	}

	// History
	if cfg.History.ChartPoints == 0 {
		cfg.History.ChartPoints = defaults.History.ChartPoints
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# code-assistant configuration file")
	fmt.Fprintln(file, "# Generated by code-assistant - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// Atomic write with fsync prevents data loss on crash.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate Ollama URL
	if c.Server.OllamaURL != "" {
		if _, err := url.Parse(c.Server.OllamaURL); err != nil {
			errs = append(errs, ValidationError{
				Field:   "server.ollama_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		}
	}

	// Validate request timeout
	if c.Server.TimeoutSecs < 0 || c.Server.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "server.timeout_secs",
			Message: fmt.Sprintf("must be 0-600, got %d", c.Server.TimeoutSecs),
		})
	}

	// Validate temperature
	if c.Analysis.Temperature < 0 || c.Analysis.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "analysis.temperature",
			Message: fmt.Sprintf("must be 0.0-2.0, got %v", c.Analysis.Temperature),
		})
	}

	// Validate retry settings
	if c.Analysis.MaxRetries < 1 || c.Analysis.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "analysis.max_retries",
			Message: fmt.Sprintf("must be 1-10, got %d", c.Analysis.MaxRetries),
		})
	}
	if c.Analysis.RetryDelaySecs < 0 || c.Analysis.RetryDelaySecs > 60 {
		errs = append(errs, ValidationError{
			Field:   "analysis.retry_delay_secs",
			Message: fmt.Sprintf("must be 0-60, got %d", c.Analysis.RetryDelaySecs),
		})
	}

	// Validate rate limit settings
	if c.RateLimit.MaxCalls < 1 || c.RateLimit.MaxCalls > 1000 {
		errs = append(errs, ValidationError{
			Field:   "ratelimit.max_calls",
			Message: fmt.Sprintf("must be 1-1000, got %d", c.RateLimit.MaxCalls),
		})
	}
	if c.RateLimit.WindowSecs < 1 || c.RateLimit.WindowSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "ratelimit.window_secs",
			Message: fmt.Sprintf("must be 1-3600, got %d", c.RateLimit.WindowSecs),
		})
	}

	// Validate history settings
	if c.History.ChartPoints < 1 || c.History.ChartPoints > 500 {
		errs = append(errs, ValidationError{
			Field:   "history.chart_points",
			Message: fmt.Sprintf("must be 1-500, got %d", c.History.ChartPoints),
		})
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value
// configuration fields.
func (c *Config) SetDefaults() {
	fillDefaults(c)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CODE_ASSISTANT_MODEL: overrides default_model
//   - CODE_ASSISTANT_OLLAMA_URL: overrides server.ollama_url
//   - CODE_ASSISTANT_THEME: overrides ui.theme
//   - CODE_ASSISTANT_NO_CACHE: set to "1" or "true" to disable the cache
//   - CODE_ASSISTANT_NO_HISTORY: set to "1" or "true" to disable history
func (c *Config) ApplyEnvOverrides() {
	// CODE_ASSISTANT_MODEL
	if model := os.Getenv("CODE_ASSISTANT_MODEL"); model != "" {
		c.DefaultModel = model
	}

	// CODE_ASSISTANT_OLLAMA_URL
	if url := os.Getenv("CODE_ASSISTANT_OLLAMA_URL"); url != "" {
		c.Server.OllamaURL = url
	}

	// CODE_ASSISTANT_THEME
	if theme := os.Getenv("CODE_ASSISTANT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	// CODE_ASSISTANT_NO_CACHE
	if noCache := os.Getenv("CODE_ASSISTANT_NO_CACHE"); noCache != "" {
		if noCache == "1" || strings.ToLower(noCache) == "true" {
			c.Cache.Enabled = false
		}
	}

	// CODE_ASSISTANT_NO_HISTORY
	if noHistory := os.Getenv("CODE_ASSISTANT_NO_HISTORY"); noHistory != "" {
		if noHistory == "1" || strings.ToLower(noHistory) == "true" {
			c.History.Enabled = false
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation
// (e.g., "ratelimit.max_calls").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, return the value
		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation
// (e.g., "ratelimit.max_calls").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, set the value
		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// Handle string input with type conversion
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"default_model",
		"server.ollama_url",
		"server.timeout_secs",
		"server.health_timeout_secs",
		"analysis.temperature",
		"analysis.num_predict",
		"analysis.max_retries",
		"analysis.retry_delay_secs",
		"ratelimit.enabled",
		"ratelimit.max_calls",
		"ratelimit.window_secs",
		"cache.enabled",
		"history.enabled",
		"history.persist",
		"history.db_path",
		"history.chart_points",
		"ui.theme",
		"ui.show_tokens",
		"ui.show_latency",
		"ui.compact_mode",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
