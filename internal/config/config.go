// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads the pathkit command-line configuration.
//
// Settings come from three layers, later ones winning: built-in defaults, a
// YAML file, and PATHKIT_* environment variables. A missing file is not an
// error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/pathkit"
)

// Environment variables that override file values.
const (
	EnvTolerance  = "PATHKIT_TOLERANCE"
	EnvMiterLimit = "PATHKIT_MITER_LIMIT"
	EnvJoin       = "PATHKIT_JOIN"
	EnvLogLevel   = "PATHKIT_LOG_LEVEL"
	EnvLogFormat  = "PATHKIT_LOG_FORMAT"
	EnvLogFile    = "PATHKIT_LOG_FILE"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// GeometryConfig holds kernel defaults applied by the CLI.
type GeometryConfig struct {
	Tolerance  float64 `yaml:"tolerance"`
	MiterLimit float64 `yaml:"miter_limit"`
	Join       string  `yaml:"join"`
}

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
	File   string `yaml:"file"`
}

// Config is the full CLI configuration.
type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Geometry: GeometryConfig{
			Tolerance:  pathkit.DefaultTolerance,
			MiterLimit: pathkit.DefaultMiterLimit,
			Join:       pathkit.JoinMiter.String(),
		},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pathkit/config.yaml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve config directory: %w", err)
	}
	return filepath.Join(dir, "pathkit", "config.yaml"), nil
}

// Load reads the file at path (DefaultPath when empty), merges it over the
// defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	default:
		var file Config
		if err := yaml.Unmarshal(data, &file); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
		mergeInto(&cfg, &file)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func mergeInto(dst, src *Config) {
	if src.Geometry.Tolerance != 0 {
		dst.Geometry.Tolerance = src.Geometry.Tolerance
	}
	if src.Geometry.MiterLimit != 0 {
		dst.Geometry.MiterLimit = src.Geometry.MiterLimit
	}
	if v := strings.TrimSpace(src.Geometry.Join); v != "" {
		dst.Geometry.Join = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvTolerance)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvTolerance, v)
		}
		cfg.Geometry.Tolerance = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvMiterLimit)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvMiterLimit, v)
		}
		cfg.Geometry.MiterLimit = f
	}
	if v := strings.TrimSpace(os.Getenv(EnvJoin)); v != "" {
		cfg.Geometry.Join = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !(c.Geometry.Tolerance > 0) {
		return fmt.Errorf("%w: geometry.tolerance must be positive, got %v", ErrInvalid, c.Geometry.Tolerance)
	}
	if !(c.Geometry.MiterLimit >= 1) {
		return fmt.Errorf("%w: geometry.miter_limit must be at least 1, got %v", ErrInvalid, c.Geometry.MiterLimit)
	}
	if _, err := ParseJoin(c.Geometry.Join); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be text or json, got %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

// JoinStyle returns the configured join.
func (c Config) JoinStyle() pathkit.JoinStyle {
	j, _ := ParseJoin(c.Geometry.Join)
	return j
}

// ParseJoin converts "miter", "bevel" or "round" to a JoinStyle.
func ParseJoin(s string) (pathkit.JoinStyle, error) {
	for _, j := range []pathkit.JoinStyle{pathkit.JoinMiter, pathkit.JoinBevel, pathkit.JoinRound} {
		if strings.EqualFold(s, j.String()) {
			return j, nil
		}
	}
	return pathkit.JoinMiter, fmt.Errorf("%w: unknown join %q", ErrInvalid, s)
}
