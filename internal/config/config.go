// Package config loads host configuration from TOML with environment
// overrides, and reloads it while the host runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	EnvConfigPath = "FETCHHOST_CONFIG"
	EnvLogLevel   = "FETCHHOST_LOG_LEVEL"
	EnvLogFile    = "FETCHHOST_LOG_FILE"
	EnvAppPaths   = "FETCHHOST_APP_PATHS"
)

type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type Config struct {
	// AppPaths is the ordered candidate list probed for the companion
	// application; the first existing path wins.
	AppPaths      []string  `toml:"app_paths"`
	MaxFrameBytes uint32    `toml:"max_frame_bytes"`
	Log           LogConfig `toml:"log"`
}

func Default() Config {
	return Config{
		AppPaths: []string{
			"/Applications/SwiftFetch.app",
			os.ExpandEnv("$HOME/Applications/SwiftFetch.app"),
		},
		MaxFrameBytes: 64 * 1024 * 1024,
		Log: LogConfig{
			File:       "",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path, applies defaults for anything unset, then applies
// environment overrides. A missing file is not an error: Chrome spawns
// the host with no argv contract, so the defaults must always work.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.MaxFrameBytes == 0 {
		return fmt.Errorf("config max_frame_bytes must be positive")
	}
	for i, p := range cfg.AppPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config app_paths[%d] is empty", i)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppPaths)); v != "" {
		var paths []string
		for _, p := range strings.Split(v, string(os.PathListSeparator)) {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		if len(paths) > 0 {
			cfg.AppPaths = paths
		}
	}
}

// DefaultPath is where the host looks for its config when
// FETCHHOST_CONFIG is unset.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "swiftfetch", "host.toml")
	}
	return "host.toml"
}
