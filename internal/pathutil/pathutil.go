// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pathutil defines the canonical path form used as the identity
// key for every selection set and map in ctxsel.
package pathutil

import "path/filepath"

// Normalizer maps any valid path spelling to one canonical string.
// Implementations must be pure, deterministic, and idempotent:
// n(n(p)) == n(p) for every p. The canonical string is the sole equality
// key used by the selection store.
type Normalizer func(path string) string

// NewNormalizer returns a Normalizer that resolves paths against a fixed
// root directory. Relative paths become absolute under root; absolute
// paths are cleaned as-is. Symlinks are deliberately not resolved - that
// would require I/O and break purity.
func NewNormalizer(root string) Normalizer {
	root = filepath.Clean(root)
	return func(path string) string {
		if path == "" {
			return ""
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		return filepath.Clean(path)
	}
}

// Identity is a Normalizer that only cleans the path. Useful for tests
// and for hosts that already hand over canonical paths.
func Identity(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
