// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scan builds the candidate file list backing the native picker.
//
// The cache is a transient performance aid, never authoritative state:
// it is rebuilt on each open request and merely avoids a redundant walk
// when nothing on disk changed in between.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the directory walk.
type Options struct {
	// IgnorePatterns are directory/file base names to skip entirely.
	IgnorePatterns []string

	// MaxFiles caps how many candidates are collected. 0 means the
	// default cap.
	MaxFiles int

	// MaxDepth caps recursion depth below the root. 0 means the
	// default cap.
	MaxDepth int
}

// DefaultIgnorePatterns mirrors what most projects never want offered
// as assistant context.
func DefaultIgnorePatterns() []string {
	return []string{
		".git",
		"node_modules",
		"__pycache__",
		".venv",
		"vendor",
		"dist",
		"build",
		"target",
		".idea",
		".vscode",
	}
}

const (
	defaultMaxFiles = 5000
	defaultMaxDepth = 12
)

// =============================================================================
// CACHE
// =============================================================================

// Cache holds the ordered candidate list for one root directory.
type Cache struct {
	mu         sync.Mutex
	root       string
	opts       Options
	candidates []string
	built      bool
	stale      bool
}

// NewCache creates a cache rooted at root. Zero-value options pick up
// defaults.
func NewCache(root string, opts Options) *Cache {
	if len(opts.IgnorePatterns) == 0 {
		opts.IgnorePatterns = DefaultIgnorePatterns()
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaultMaxFiles
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	return &Cache{
		root: filepath.Clean(root),
		opts: opts,
	}
}

// Root returns the directory the cache walks.
func (c *Cache) Root() string {
	return c.root
}

// Refresh rebuilds the candidate list by walking the root. Walk errors
// on individual entries are skipped, not fatal.
func (c *Cache) Refresh() error {
	candidates := make([]string, 0, 256)

	err := filepath.WalkDir(c.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if len(candidates) >= c.opts.MaxFiles {
			return fs.SkipAll
		}

		name := d.Name()
		if d.IsDir() {
			if path != c.root && c.shouldIgnore(name) {
				return fs.SkipDir
			}
			if c.depthOf(path) > c.opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if c.shouldIgnore(name) {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.candidates = candidates
	c.built = true
	c.stale = false
	c.mu.Unlock()
	return nil
}

// RefreshIfNeeded rebuilds only when the cache was never built or a
// watcher marked it stale.
func (c *Cache) RefreshIfNeeded() error {
	c.mu.Lock()
	fresh := c.built && !c.stale
	c.mu.Unlock()
	if fresh {
		return nil
	}
	return c.Refresh()
}

// Candidates returns an independent copy of the current candidate list.
func (c *Cache) Candidates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.candidates))
	copy(out, c.candidates)
	return out
}

// MarkStale flags the cache for rebuild on the next RefreshIfNeeded.
func (c *Cache) MarkStale() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// IsStale reports whether the cache needs a rebuild.
func (c *Cache) IsStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.built || c.stale
}

// shouldIgnore checks a base name against the ignore patterns. Hidden
// entries other than .gitignore are always skipped.
func (c *Cache) shouldIgnore(name string) bool {
	if strings.HasPrefix(name, ".") && name != ".gitignore" {
		return true
	}
	for _, pattern := range c.opts.IgnorePatterns {
		if name == pattern {
			return true
		}
	}
	return false
}

// depthOf counts path separators below the root.
func (c *Cache) depthOf(path string) int {
	rel, err := filepath.Rel(c.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
