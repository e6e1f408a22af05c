// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/logging"
	"github.com/jeranaias/linkchat-tui/internal/model"
	"github.com/jeranaias/linkchat-tui/internal/presentation"
	"github.com/jeranaias/linkchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete linkchat configuration.
type Config struct {
	Endpoint EndpointConfig `toml:"endpoint" json:"endpoint"`
	UI       UIConfig       `toml:"ui" json:"ui"`
	Log      LogConfig      `toml:"log" json:"log"`

	// Seed replaces the opening exchange when non-empty.
	Seed []SeedConfig `toml:"seed" json:"seed,omitempty"`
}

// EndpointConfig describes the assistant backend.
type EndpointConfig struct {
	// URL is the full POST target, e.g. http://127.0.0.1:8000/chat_gen
	URL string `toml:"url" json:"url"`
	// UserAgent is sent with each request when set
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Animation enables the log view's entrance transition
	Animation bool `toml:"animation" json:"animation"`
	// AnimationMS is the transition length in milliseconds
	AnimationMS int `toml:"animation_ms" json:"animation_ms"`
	// Easing names the transition curve: "out-cubic", "out-quart", "out-quad", "in-out-quad", "linear"
	Easing string `toml:"easing" json:"easing"`
	// ShowErrors adds a visible bot turn when an exchange fails
	ShowErrors bool `toml:"show_errors" json:"show_errors"`
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled
	Level string `toml:"level" json:"level"`
	// Format is "console" or "json"
	Format string `toml:"format" json:"format"`
	// File is the rotated log file. Empty disables file logging.
	File string `toml:"file" json:"file"`
}

// SeedConfig is one entry of the opening exchange.
type SeedConfig struct {
	Text   string `toml:"text" json:"text"`
	Sender string `toml:"sender" json:"sender"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	logFile := ""
	if dir, err := ConfigDir(); err == nil {
		logFile = filepath.Join(dir, "linkchat.log")
	}
	return &Config{
		Endpoint: EndpointConfig{
			URL:       backend.DefaultEndpoint,
			UserAgent: "linkchat",
		},
		UI: UIConfig{
			Animation:   true,
			AnimationMS: int(presentation.DefaultDuration / time.Millisecond),
			Easing:      "out-cubic",
			ShowErrors:  false,
			Theme:       "auto",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			File:   logFile,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the linkchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".linkchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv reads KEY=VALUE files into the process environment. Variables
// already set are left alone and missing files are skipped. With no
// arguments it reads ./.env.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load loads ~/.linkchat/config.toml if it exists, falling back to
// defaults. Environment overrides are applied last. A config file that
// cannot be parsed yields defaults plus the error, for the caller to report.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
				cfg = Default()
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes path over cfg. Keys missing from the file keep the
// values cfg already holds.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file with full
// validation. Unlike Load, every failure is returned.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any values a file explicitly blanked.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = defaults.Endpoint.URL
	}
	if cfg.UI.AnimationMS == 0 {
		cfg.UI.AnimationMS = defaults.UI.AnimationMS
	}
	if cfg.UI.Easing == "" {
		cfg.UI.Easing = defaults.UI.Easing
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path with 0600 permissions, creating parent
// directories as needed.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# linkchat configuration file")
	fmt.Fprintln(&buf, "# Generated by linkchat - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
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

	// Endpoint
	if u, err := url.Parse(c.Endpoint.URL); err != nil {
		errs = append(errs, ValidationError{
			Field:   "endpoint.url",
			Message: fmt.Sprintf("invalid URL: %v", err),
		})
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "endpoint.url",
			Message: fmt.Sprintf("must be an absolute http or https URL, got '%s'", c.Endpoint.URL),
		})
	}

	// UI
	if c.UI.AnimationMS < 0 || c.UI.AnimationMS > 10000 {
		errs = append(errs, ValidationError{
			Field:   "ui.animation_ms",
			Message: fmt.Sprintf("must be between 0 and 10000, got %d", c.UI.AnimationMS),
		})
	}
	validEasings := map[string]bool{"out-cubic": true, "out-quart": true, "out-quad": true, "in-out-quad": true, "linear": true}
	if !validEasings[strings.ToLower(c.UI.Easing)] {
		errs = append(errs, ValidationError{
			Field:   "ui.easing",
			Message: fmt.Sprintf("invalid easing '%s', must be one of: out-cubic, out-quart, out-quad, in-out-quad, linear", c.UI.Easing),
		})
	}
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// Log
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: err.Error(),
		})
	}
	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: console, json", c.Log.Format),
		})
	}

	// Seed
	for i, s := range c.Seed {
		field := fmt.Sprintf("seed[%d]", i)
		sender, err := model.ParseSender(s.Sender)
		if err != nil {
			errs = append(errs, ValidationError{Field: field + ".sender", Message: err.Error()})
			continue
		}
		if sender == model.SenderUser && strings.TrimSpace(s.Text) == "" {
			errs = append(errs, ValidationError{Field: field + ".text", Message: "user turns cannot be empty"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - LINKCHAT_ENDPOINT: overrides endpoint.url
//   - LINKCHAT_LOG_LEVEL: overrides log.level
//   - LINKCHAT_LOG_FILE: overrides log.file ("-" or "off" disables it)
//   - LINKCHAT_LOG_FORMAT: overrides log.format
//   - LINKCHAT_NO_ANIMATION: set to "1" or "true" to disable the transition
//   - LINKCHAT_SHOW_ERRORS: set to "1" or "true" to show failed exchanges
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("LINKCHAT_ENDPOINT"); endpoint != "" {
		c.Endpoint.URL = endpoint
	}

	if level := os.Getenv("LINKCHAT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if file, ok := os.LookupEnv("LINKCHAT_LOG_FILE"); ok {
		switch strings.ToLower(file) {
		case "-", "off", "none":
			c.Log.File = ""
		default:
			c.Log.File = file
		}
	}

	if format := os.Getenv("LINKCHAT_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}

	if v := os.Getenv("LINKCHAT_NO_ANIMATION"); v != "" {
		c.UI.Animation = !envBool(v)
	}

	if v := os.Getenv("LINKCHAT_SHOW_ERRORS"); v != "" {
		c.UI.ShowErrors = envBool(v)
	}
}

func envBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// ClientConfig returns the transport settings.
func (c *Config) ClientConfig() *backend.ClientConfig {
	return &backend.ClientConfig{
		URL:       c.Endpoint.URL,
		UserAgent: c.Endpoint.UserAgent,
	}
}

// PresentationConfig returns the entrance transition settings.
func (c *Config) PresentationConfig() presentation.Config {
	return presentation.Config{
		Enabled:  c.UI.Animation && c.UI.AnimationMS > 0,
		Duration: time.Duration(c.UI.AnimationMS) * time.Millisecond,
		Easing:   presentation.EasingByName(c.UI.Easing),
	}
}

// LoggingConfig returns the diagnostic sink settings.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

// SeedTurns returns the opening exchange: the configured seed, or the
// built-in greeting when none is configured. Call Validate first.
func (c *Config) SeedTurns() []model.Turn {
	if len(c.Seed) == 0 {
		return model.DefaultSeed()
	}
	entries := make([]model.SeedEntry, 0, len(c.Seed))
	for _, s := range c.Seed {
		sender, err := model.ParseSender(s.Sender)
		if err != nil {
			continue
		}
		entries = append(entries, model.SeedEntry{Text: s.Text, Sender: sender})
	}
	return model.SeedTurns(entries)
}

// String renders the config as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return buf.String()
}
