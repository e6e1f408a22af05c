// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/linkchat-tui/internal/backend"
	"github.com/jeranaias/linkchat-tui/internal/model"
)

// isolate points HOME at a temp dir and clears LINKCHAT_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "LINKCHAT_") {
			key := strings.SplitN(kv, "=", 2)[0]
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestConfig_Default(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	assert.Equal(t, backend.DefaultEndpoint, cfg.Endpoint.URL)
	assert.True(t, cfg.UI.Animation)
	assert.Equal(t, 1200, cfg.UI.AnimationMS)
	assert.False(t, cfg.UI.ShowErrors)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".linkchat", "linkchat.log"), cfg.Log.File)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_DefaultSeed(t *testing.T) {
	turns := Default().SeedTurns()
	require.Len(t, turns, 2)
	assert.Equal(t, "Hi!", turns[0].Text)
	assert.Equal(t, model.SenderBot, turns[1].Sender)
}

// =============================================================================
// LOADING
// =============================================================================

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, backend.DefaultEndpoint, cfg.Endpoint.URL)
}

func TestLoad_ReadsHomeConfig(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".linkchat", "config.toml"), `
[endpoint]
url = "http://assistant.internal:9000/chat_gen"

[ui]
show_errors = true
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://assistant.internal:9000/chat_gen", cfg.Endpoint.URL)
	assert.True(t, cfg.UI.ShowErrors)
	assert.True(t, cfg.UI.Animation, "unset keys keep defaults")
	assert.Equal(t, 1200, cfg.UI.AnimationMS)
}

func TestLoad_BrokenFileFallsBack(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".linkchat", "config.toml"), "[endpoint\nurl=")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, backend.DefaultEndpoint, cfg.Endpoint.URL)
}

func TestLoadFromPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, `
[log]
level = "debug"
format = "json"

[[seed]]
text = "Ready."
sender = "bot"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	turns := cfg.SeedTurns()
	require.Len(t, turns, 1)
	assert.Equal(t, "Ready.", turns[0].Text)
	assert.Equal(t, model.SenderBot, turns[0].Sender)
}

func TestLoadFromPath_Missing(t *testing.T) {
	isolate(t)
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, `
[endpoint]
url = "ftp://example.com/chat"
`)
	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint.url")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"relative url", func(c *Config) { c.Endpoint.URL = "/chat_gen" }, "endpoint.url"},
		{"bad scheme", func(c *Config) { c.Endpoint.URL = "ws://host/chat" }, "endpoint.url"},
		{"negative animation", func(c *Config) { c.UI.AnimationMS = -1 }, "ui.animation_ms"},
		{"huge animation", func(c *Config) { c.UI.AnimationMS = 60000 }, "ui.animation_ms"},
		{"bad easing", func(c *Config) { c.UI.Easing = "bounce" }, "ui.easing"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad sender", func(c *Config) { c.Seed = []SeedConfig{{Text: "x", Sender: "system"}} }, "seed[0].sender"},
		{"empty user seed", func(c *Config) { c.Seed = []SeedConfig{{Text: "  ", Sender: "user"}} }, "seed[0].text"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.wantField, verrs[0].Field)
		})
	}
}

func TestConfig_ValidateAcceptsOutQuart(t *testing.T) {
	cfg := Default()
	cfg.UI.Easing = "out-quart"
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 0.9375, cfg.PresentationConfig().Easing(0.5), 1e-9)
}

func TestConfig_ValidateAllowsEmptyBotSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = []SeedConfig{{Text: "", Sender: "bot"}}
	assert.NoError(t, cfg.Validate())
}

func TestValidateErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
	errs := ValidateErrors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LINKCHAT_ENDPOINT", "http://10.0.0.5:8000/chat_gen")
	t.Setenv("LINKCHAT_LOG_LEVEL", "debug")
	t.Setenv("LINKCHAT_LOG_FILE", "off")
	t.Setenv("LINKCHAT_NO_ANIMATION", "1")
	t.Setenv("LINKCHAT_SHOW_ERRORS", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://10.0.0.5:8000/chat_gen", cfg.Endpoint.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.False(t, cfg.UI.Animation)
	assert.True(t, cfg.UI.ShowErrors)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "LINKCHAT_ENDPOINT=http://from-dotenv:8000/chat_gen\n")
	t.Setenv("LINKCHAT_ENDPOINT", "")
	os.Unsetenv("LINKCHAT_ENDPOINT")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "http://from-dotenv:8000/chat_gen", os.Getenv("LINKCHAT_ENDPOINT"))

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "http://from-dotenv:8000/chat_gen", cfg.Endpoint.URL)
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "LINKCHAT_LOG_LEVEL=trace\n")
	t.Setenv("LINKCHAT_LOG_LEVEL", "warn")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "warn", os.Getenv("LINKCHAT_LOG_LEVEL"))
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

func TestConfig_PresentationConfig(t *testing.T) {
	cfg := Default()
	pc := cfg.PresentationConfig()
	assert.True(t, pc.Enabled)
	assert.Equal(t, 1200*time.Millisecond, pc.Duration)
	assert.InDelta(t, 0.875, pc.Easing(0.5), 1e-9)

	cfg.UI.Animation = false
	assert.False(t, cfg.PresentationConfig().Enabled)
}

func TestConfig_ClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Endpoint.URL = "http://example.test/chat_gen"
	cc := cfg.ClientConfig()
	assert.Equal(t, "http://example.test/chat_gen", cc.URL)
	assert.Equal(t, "linkchat", cc.UserAgent)
	assert.Nil(t, cc.HTTPClient)
}

func TestConfig_LoggingConfig(t *testing.T) {
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "json", File: "/tmp/x.log"}
	lc := cfg.LoggingConfig()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Equal(t, "/tmp/x.log", lc.File)
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.UI.ShowErrors = true
	cfg.Seed = []SeedConfig{{Text: "Hey", Sender: "user"}, {Text: "Yo", Sender: "bot"}}

	require.NoError(t, SaveTOML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# linkchat configuration file"))

	if info, err := os.Stat(path); err == nil && os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.True(t, loaded.UI.ShowErrors)
	assert.Equal(t, cfg.Seed, loaded.Seed)
}

func TestConfig_String(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "[endpoint]")
	assert.Contains(t, s, "chat_gen")
}
