package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

// Config mirrors the shell options. Zero values of pointer fields mean "keep the default".
type Config struct {
	Prompt           string `toml:"prompt"`
	HistoryFile      string `toml:"history_file"`
	HistoryCapacity  int    `toml:"history_capacity"`
	IgnoreEmpty      *bool  `toml:"ignore_empty"`
	IgnoreDuplicates *bool  `toml:"ignore_duplicates"`
	Continuation     *bool  `toml:"continuation"`
	Language         string `toml:"language"`
	LogLevel         string `toml:"log_level"`
	LogFile          string `toml:"log_file"`
	PosixQuotes      bool   `toml:"posix_quotes"`
	Aggregation      *bool  `toml:"aggregation"`
}

func defaultConfig() Config {
	return Config{
		Prompt:   "noshell> ",
		Language: "en",
		LogLevel: "warn",
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/noshell/config.toml or its home-relative
// equivalent, empty when no home directory is known.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "noshell", "config.toml")
}

// LoadConfig reads the TOML file at path over the defaults. A missing file is only an
// error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("unable to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func()) {
		if err == nil && flags.Changed(name) {
			apply()
		}
	}
	boolPtr := func(name string) *bool {
		v, e := flags.GetBool(name)
		if e != nil {
			err = e
		}
		return &v
	}
	str := func(name string) string {
		v, e := flags.GetString(name)
		if e != nil {
			err = e
		}
		return v
	}

	set("prompt", func() { cfg.Prompt = str("prompt") })
	set("history-file", func() { cfg.HistoryFile = str("history-file") })
	set("history-capacity", func() {
		v, e := flags.GetInt("history-capacity")
		if e != nil {
			err = e
		}
		cfg.HistoryCapacity = v
	})
	set("ignore-empty", func() { cfg.IgnoreEmpty = boolPtr("ignore-empty") })
	set("ignore-duplicates", func() { cfg.IgnoreDuplicates = boolPtr("ignore-duplicates") })
	set("continuation", func() { cfg.Continuation = boolPtr("continuation") })
	set("language", func() { cfg.Language = str("language") })
	set("log-level", func() { cfg.LogLevel = str("log-level") })
	set("log-file", func() { cfg.LogFile = str("log-file") })
	set("posix-quotes", func() { cfg.PosixQuotes = *boolPtr("posix-quotes") })
	set("aggregation", func() { cfg.Aggregation = boolPtr("aggregation") })

	return err
}

// Validate checks the values that cannot be checked by the TOML decoder
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	if c.HistoryCapacity < 0 {
		return fmt.Errorf("history capacity must not be negative, got %d", c.HistoryCapacity)
	}

	return nil
}

func (c Config) level() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return log.WarnLevel
	}

	return lvl
}

func (c Config) lang() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.English
	}

	return tag
}
