// SPDX-FileCopyrightText: 2025 The Skid Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads the skid TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/janderssonse/skid/internal/domain"
	"github.com/janderssonse/skid/internal/groups"
	"github.com/janderssonse/skid/internal/platform"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvConfig overrides the configuration file location.
	EnvConfig = "SKID_CONFIG"

	// DefaultResolver is the identity resolver used when none is configured.
	DefaultResolver = "shell"
)

// ErrInvalidConfig is returned for unreadable, malformed or invalid configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	GroupFile     string `toml:"group_file" validate:"required"`
	MaxRecords    int    `toml:"max_records" validate:"min=1,max=65536"`
	Resolver      string `toml:"resolver" validate:"oneof=shell native"`
	LockGroupFile bool   `toml:"lock_group_file"`
	Sentinels     int    `toml:"sentinels" validate:"min=0,max=2"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GroupFile:  groups.DefaultGroupFile,
		MaxRecords: domain.DefaultMaxRecords,
		Resolver:   DefaultResolver,
		Sentinels:  domain.DefaultSentinels,
	}
}

// GetConfigPath returns the configuration file path, honouring SKID_CONFIG.
func GetConfigPath() string {
	return GetConfigPathWithEnv(os.Getenv(EnvConfig), platform.GetXDGConfigHome())
}

// GetConfigPathWithEnv returns the configuration file path with custom environment values for testing.
func GetConfigPathWithEnv(override, xdgConfigHome string) string {
	if override != "" {
		return platform.ExpandPath(override)
	}

	return filepath.Join(xdgConfigHome, "skid", "config.toml")
}

// Load reads the configuration at path, or at GetConfigPath when path is empty.
// A missing file yields the defaults. Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Parse decodes TOML data over cfg, expands paths and validates the result.
func Parse(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(cfg); err != nil {
		return err
	}

	cfg.GroupFile = platform.ExpandPath(cfg.GroupFile)
	cfg.Resolver = strings.ToLower(cfg.Resolver)

	return Validate(cfg)
}
