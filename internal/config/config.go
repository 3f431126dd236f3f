// Package config loads launcher settings from a YAML file and LAUNCHRANK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dshills/launchrank/internal/xdg"
)

const appName = "launchrank"

// History backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable setting. Environment variables override values
// read from the file.
type Config struct {
	MaxResults        int      `yaml:"max_results" env:"LAUNCHRANK_MAX_RESULTS"`
	IconSize          int      `yaml:"icon_size" env:"LAUNCHRANK_ICON_SIZE"`
	IconTheme         string   `yaml:"icon_theme" env:"LAUNCHRANK_ICON_THEME"`
	IconCacheCapacity int      `yaml:"icon_cache_capacity" env:"LAUNCHRANK_ICON_CACHE_CAPACITY"`
	MinScore          float64  `yaml:"min_score" env:"LAUNCHRANK_MIN_SCORE"`
	FrecencyWeight    float64  `yaml:"frecency_weight" env:"LAUNCHRANK_FRECENCY_WEIGHT"`
	HistoryBackend    string   `yaml:"history_backend" env:"LAUNCHRANK_HISTORY_BACKEND"`
	HistoryPath       string   `yaml:"history_path" env:"LAUNCHRANK_HISTORY_PATH"`
	LogLevel          string   `yaml:"log_level" env:"LAUNCHRANK_LOG_LEVEL"`
	ApplicationDirs   []string `yaml:"application_dirs" env:"LAUNCHRANK_APPLICATION_DIRS" envSeparator:":"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxResults:        10,
		IconSize:          48,
		IconCacheCapacity: 200,
		FrecencyWeight:    10,
		HistoryBackend:    BackendJSON,
		LogLevel:          "warn",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/launchrank/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome(), appName, "config.yaml")
}

// DefaultHistoryPath returns the history location for backend under
// $XDG_DATA_HOME/launchrank.
func DefaultHistoryPath(backend string) string {
	name := "history.json"
	if backend == BackendSQLite {
		name = "history.db"
	}
	return filepath.Join(xdg.DataHome(), appName, name)
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Config file is optional
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
// All problems are reported together, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max_results must be positive, got %d", c.MaxResults))
	}
	if c.IconSize <= 0 {
		errs = append(errs, fmt.Errorf("icon_size must be positive, got %d", c.IconSize))
	}
	if c.IconCacheCapacity <= 0 {
		errs = append(errs, fmt.Errorf("icon_cache_capacity must be positive, got %d", c.IconCacheCapacity))
	}
	if c.MinScore < 0 {
		errs = append(errs, fmt.Errorf("min_score must not be negative, got %g", c.MinScore))
	}
	if c.FrecencyWeight <= 0 {
		errs = append(errs, fmt.Errorf("frecency_weight must be positive, got %g", c.FrecencyWeight))
	}
	switch c.HistoryBackend {
	case BackendJSON, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("history_backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.HistoryBackend))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ResolvedHistoryPath returns HistoryPath or the backend's default location.
func (c *Config) ResolvedHistoryPath() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	return DefaultHistoryPath(c.HistoryBackend)
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log_level %q", s)
}
