// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates ctxsel configuration.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides, loaded from ~/.ctxsel/config.toml when present.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ctxsel/internal/picker"
	"github.com/jeranaias/ctxsel/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete ctxsel configuration.
type Config struct {
	// Provider selects the picker back-end.
	Provider string `toml:"provider"`

	// Root is the directory all selections are resolved against. Empty
	// means the current working directory.
	Root string `toml:"root"`

	// Native configures the built-in finder.
	Native NativeConfig `toml:"native"`

	// Fzf configures the external fzf back-end.
	Fzf FzfConfig `toml:"fzf"`

	// Telescope configures the full-screen back-end.
	Telescope TelescopeConfig `toml:"telescope"`

	// Resolver configures content materialization.
	Resolver ResolverConfig `toml:"resolver"`

	// Scan configures the candidate file walk.
	Scan ScanConfig `toml:"scan"`
}

// NativeConfig configures the built-in finder.
type NativeConfig struct {
	// MaxVisible caps how many rows the finder shows at once.
	MaxVisible int `toml:"max_visible"`
}

// FzfConfig configures the external fzf back-end.
type FzfConfig struct {
	// Binary is the fzf executable name or path.
	Binary string `toml:"binary"`
}

// TelescopeConfig configures the full-screen back-end.
type TelescopeConfig struct {
	// HideStatusBar suppresses the match-count status bar.
	HideStatusBar bool `toml:"hide_status_bar"`

	// Title overrides the list header.
	Title string `toml:"title"`
}

// ResolverConfig configures content materialization.
type ResolverConfig struct {
	// MaxFileSizeKB caps individual file size; larger files are skipped
	// as unreadable.
	MaxFileSizeKB int64 `toml:"max_file_size_kb"`
}

// ScanConfig configures the candidate file walk.
type ScanConfig struct {
	// IgnorePatterns are base names excluded from the walk. Empty keeps
	// the built-in defaults.
	IgnorePatterns []string `toml:"ignore_patterns"`

	// MaxFiles caps how many candidates are collected.
	MaxFiles int `toml:"max_files"`

	// MaxDepth caps recursion depth below the root.
	MaxDepth int `toml:"max_depth"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Provider: picker.ProviderNative,
		Native: NativeConfig{
			MaxVisible: 10,
		},
		Fzf: FzfConfig{
			Binary: "fzf",
		},
		Resolver: ResolverConfig{
			MaxFileSizeKB: 512,
		},
		Scan: ScanConfig{
			MaxFiles: 5000,
			MaxDepth: 12,
		},
	}
}

// SetDefaults fills any zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Native.MaxVisible <= 0 {
		c.Native.MaxVisible = def.Native.MaxVisible
	}
	if c.Fzf.Binary == "" {
		c.Fzf.Binary = def.Fzf.Binary
	}
	if c.Resolver.MaxFileSizeKB <= 0 {
		c.Resolver.MaxFileSizeKB = def.Resolver.MaxFileSizeKB
	}
	if c.Scan.MaxFiles <= 0 {
		c.Scan.MaxFiles = def.Scan.MaxFiles
	}
	if c.Scan.MaxDepth <= 0 {
		c.Scan.MaxDepth = def.Scan.MaxDepth
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the ctxsel configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ctxsel"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD
// =============================================================================

// Load loads configuration from the default config file, falling back
// to defaults when it does not exist. Environment overrides are applied
// last, then the result is validated.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from an explicit TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file.
// SECURITY: Config files are written 0600 (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# ctxsel configuration file\n")
	buf.WriteString("# Generated by ctxsel - edit with care\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CTXSEL_* environment variables on top of
// whatever was loaded from file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CTXSEL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("CTXSEL_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("CTXSEL_FZF_BINARY"); v != "" {
		c.Fzf.Binary = v
	}
	if v := os.Getenv("CTXSEL_MAX_FILE_SIZE_KB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Resolver.MaxFileSizeKB = n
		}
	}
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

	if !picker.KnownProvider(c.Provider) {
		errs = append(errs, ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("unknown provider %q (valid: %s, %s, %s)", c.Provider, picker.ProviderNative, picker.ProviderFzf, picker.ProviderTelescope),
		})
	}

	if c.Root != "" {
		info, err := os.Stat(c.Root)
		if err != nil || !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "root",
				Message: fmt.Sprintf("not a directory: %s", c.Root),
			})
		}
	}

	if c.Native.MaxVisible < 0 {
		errs = append(errs, ValidationError{
			Field:   "native.max_visible",
			Message: "must not be negative",
		})
	}
	if c.Resolver.MaxFileSizeKB < 0 {
		errs = append(errs, ValidationError{
			Field:   "resolver.max_file_size_kb",
			Message: "must not be negative",
		})
	}
	if c.Scan.MaxFiles < 0 {
		errs = append(errs, ValidationError{
			Field:   "scan.max_files",
			Message: "must not be negative",
		})
	}
	if c.Scan.MaxDepth < 0 {
		errs = append(errs, ValidationError{
			Field:   "scan.max_depth",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MaxFileSizeBytes converts the resolver cap to bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.Resolver.MaxFileSizeKB * 1024
}
