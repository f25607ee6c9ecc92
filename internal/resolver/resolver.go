// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolver materializes the current selection into text content
// for the prompt builder.
package resolver

import (
	"os"
	"strings"

	"github.com/jeranaias/ctxsel/internal/selection"
)

// =============================================================================
// RESOLVED CONTENT
// =============================================================================

// ResolvedFile is one materialized selection entry.
type ResolvedFile struct {
	// Path is the canonical selected path.
	Path string

	// Content is the materialized text: the full file, or the recorded
	// line spans joined with newlines.
	Content string

	// FileType is the best-effort content classification ("Go",
	// "Python", ...), or "unknown".
	FileType string
}

// =============================================================================
// RESOLVER
// =============================================================================

// DefaultMaxFileSize caps how large a selected file may be before it is
// treated as unreadable and skipped.
const DefaultMaxFileSize = 512 * 1024 // 512KB

// Resolver reads selected files and extracts the requested content.
// File reads are sequential and synchronous so that result order always
// matches selection order.
type Resolver struct {
	maxFileSize int64
}

// New creates a resolver. maxFileSize <= 0 selects DefaultMaxFileSize.
func New(maxFileSize int64) *Resolver {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Resolver{maxFileSize: maxFileSize}
}

// Resolve materializes content for each selected path, in selection
// order. Unreadable files (missing, permission denied, oversized) are
// silently skipped; one bad file never aborts the rest. Paths with no
// recorded ranges resolve as whole files, and a Whole descriptor
// anywhere in a path's range list short-circuits its line spans.
func (r *Resolver) Resolve(paths []string, ranges map[string][]selection.Range) []ResolvedFile {
	out := make([]ResolvedFile, 0, len(paths))

	for _, path := range paths {
		text, ok := r.readFile(path)
		if !ok {
			continue
		}

		rs := ranges[path]
		if len(rs) == 0 {
			rs = []selection.Range{selection.Whole}
		}

		content := text
		if !containsWhole(rs) {
			content = extractSpans(text, rs)
		}

		out = append(out, ResolvedFile{
			Path:     path,
			Content:  content,
			FileType: DetectFileType(path, text),
		})
	}

	return out
}

// readFile reads the file as text, reporting false for anything that
// should be skipped.
func (r *Resolver) readFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > r.maxFileSize {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// extractSpans accumulates the lines of each span in recorded order.
// Line indices are 1-based; indices past the end of the file are
// silently clamped. Overlapping spans repeat lines - the accumulator is
// deliberately not deduplicated.
func extractSpans(text string, rs []selection.Range) string {
	lines := strings.Split(text, "\n")

	var acc []string
	for _, r := range rs {
		for i := r.Start; i <= r.End && i <= len(lines); i++ {
			acc = append(acc, lines[i-1])
		}
	}
	return strings.Join(acc, "\n")
}

func containsWhole(rs []selection.Range) bool {
	for _, r := range rs {
		if r.IsWhole() {
			return true
		}
	}
	return false
}
