// Package config resolves runtime settings from defaults, TOML files,
// the environment and command-line flags, in that order.
package config

import (
	"fmt"
	"strings"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeMono  = "mono"
)

const (
	DefaultBackend  = BackendFile
	DefaultTheme    = ThemeLight
	DefaultLogLevel = "warn"
)

// Config holds every tunable setting.
type Config struct {
	DataDir     string `toml:"data_dir"`
	Backend     string `toml:"backend"`
	Theme       string `toml:"theme"`
	LogLevel    string `toml:"log_level"`
	PersistTags bool   `toml:"persist_tags"`
}

// Overrides carries values from CLI flags. Nil fields are unset.
type Overrides struct {
	DataDir     *string
	Backend     *string
	Theme       *string
	LogLevel    *string
	PersistTags *bool
}

func setDefaults(cfg *Config) {
	cfg.DataDir = defaultDataDir()
	cfg.Backend = DefaultBackend
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.PersistTags = false
}

func (o Overrides) apply(cfg *Config) {
	if o.DataDir != nil {
		cfg.DataDir = *o.DataDir
	}
	if o.Backend != nil {
		cfg.Backend = *o.Backend
	}
	if o.Theme != nil {
		cfg.Theme = *o.Theme
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.PersistTags != nil {
		cfg.PersistTags = *o.PersistTags
	}
}

// Validate normalizes and checks enumerated values.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.DataDir = expandPath(strings.TrimSpace(c.DataDir))

	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid backend %q, must be one of: file, sqlite", c.Backend)
	}
	switch c.Theme {
	case ThemeLight, ThemeDark, ThemeMono:
	default:
		return fmt.Errorf("invalid theme %q, must be one of: light, dark, mono", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	return nil
}
