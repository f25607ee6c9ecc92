// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/ctxsel/internal/picker"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, picker.ProviderNative, cfg.Provider)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
provider = "fzf-backend"

[fzf]
binary = "fzf"

[resolver]
max_file_size_kb = 256

[scan]
ignore_patterns = ["node_modules", ".git"]
max_files = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, picker.ProviderFzf, cfg.Provider)
	assert.Equal(t, int64(256), cfg.Resolver.MaxFileSizeKB)
	assert.Equal(t, int64(256*1024), cfg.MaxFileSizeBytes())
	assert.Equal(t, 100, cfg.Scan.MaxFiles)
	// Unset fields are backfilled with defaults.
	assert.Equal(t, 10, cfg.Native.MaxVisible)
	assert.Equal(t, 12, cfg.Scan.MaxDepth)
}

func TestLoadFromPathRejectsUnknownProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`provider = "rofi"`), 0o600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CTXSEL_PROVIDER", picker.ProviderTelescope)
	t.Setenv("CTXSEL_MAX_FILE_SIZE_KB", "64")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, picker.ProviderTelescope, cfg.Provider)
	assert.Equal(t, int64(64), cfg.Resolver.MaxFileSizeKB)
}

func TestValidateRootMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	cfg := Default()
	cfg.Root = file
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	cfg.Root = dir
	require.NoError(t, cfg.Validate())
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.toml")

	cfg := Default()
	cfg.Provider = picker.ProviderFzf
	cfg.Scan.MaxFiles = 42
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, picker.ProviderFzf, loaded.Provider)
	assert.Equal(t, 42, loaded.Scan.MaxFiles)
}
