package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
prompt = "demo> "
history_capacity = 50
ignore_duplicates = false
language = "de"
posix_quotes = true
`), 0o600))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "demo> ", cfg.Prompt)
	assert.Equal(t, 50, cfg.HistoryCapacity)
	require.NotNil(t, cfg.IgnoreDuplicates)
	assert.False(t, *cfg.IgnoreDuplicates)
	assert.Nil(t, cfg.IgnoreEmpty)
	assert.True(t, cfg.PosixQuotes)
	assert.Equal(t, language.German, cfg.lang())
	assert.Equal(t, "warn", cfg.LogLevel, "unset keys keep their default")
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = LoadConfig(path, true)
	assert.Error(t, err)

	cfg, err = LoadConfig("", true)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("prompt = \n"), 0o600))

	_, err := LoadConfig(path, false)
	assert.ErrorContains(t, err, "unable to parse config file")
}

func TestApplyFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.Flags().Parse([]string{
		"--prompt", "$ ",
		"--ignore-empty=false",
		"--history-capacity", "5",
		"--posix-quotes",
		"--log-level", "debug",
	}))

	cfg := defaultConfig()
	require.NoError(t, applyFlags(&cfg, cmd.Flags()))

	assert.Equal(t, "$ ", cfg.Prompt)
	require.NotNil(t, cfg.IgnoreEmpty)
	assert.False(t, *cfg.IgnoreEmpty)
	assert.Nil(t, cfg.IgnoreDuplicates, "flags left alone do not override")
	assert.Nil(t, cfg.Continuation)
	assert.Equal(t, 5, cfg.HistoryCapacity)
	assert.True(t, cfg.PosixQuotes)
	assert.Equal(t, log.DebugLevel, cfg.level())
	assert.Equal(t, "en", cfg.Language)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"error level", func(c *Config) { c.LogLevel = "error" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad language", func(c *Config) { c.Language = "not a tag" }, true},
		{"negative capacity", func(c *Config) { c.HistoryCapacity = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
