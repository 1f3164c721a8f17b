package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	appDirName        = "tasks"
	userConfigName    = "config.toml"
	projectConfigName = ".tasks.toml"
)

// Load resolves configuration:
// 1. Defaults
// 2. User config file (<UserConfigDir>/tasks/config.toml)
// 3. Project config file (.tasks.toml in the current directory)
// 4. Explicit config file (path argument or TASKS_CONFIG)
// 5. Environment variables
// 6. Flag overrides
func Load(path string, o Overrides) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := userConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p, false); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if err := loadConfigFile(cfg, projectConfigName, false); err != nil {
		return nil, fmt.Errorf("loading project config file %s: %w", projectConfigName, err)
	}
	if path == "" {
		path = os.Getenv("TASKS_CONFIG")
	}
	if path != "" {
		if err := loadConfigFile(cfg, expandPath(path), true); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	o.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile decodes TOML from path. Missing optional files are skipped.
func loadConfigFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from TASKS_* variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TASKS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TASKS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TASKS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKS_PERSIST_TAGS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKS_PERSIST_TAGS: %w", err)
		}
		cfg.PersistTags = b
	}
	return nil
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, userConfigName)
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appDirName)
}

// expandPath expands ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
