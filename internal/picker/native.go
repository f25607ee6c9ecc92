// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"

	"github.com/jeranaias/ctxsel/internal/scan"
)

// =============================================================================
// NATIVE BACK-END
// =============================================================================

// Chooser presents candidates and returns the user's choice. It exists
// as a seam so the interactive finder can be replaced in tests and by
// embedding hosts.
type Chooser interface {
	Choose(ctx context.Context, candidates []string, title string) (string, bool, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, candidates []string, title string) (string, bool, error)

// Choose implements Chooser.
func (f ChooserFunc) Choose(ctx context.Context, candidates []string, title string) (string, bool, error) {
	return f(ctx, candidates, title)
}

// Native is the scan-cache-backed minimal picker. It is the only
// back-end with a strong exclusion guarantee: excluded paths are
// filtered out of the candidate list before display AND the chosen path
// is re-checked on the way out.
type Native struct {
	cache      *scan.Cache
	chooser    Chooser
	maxVisible int
}

// NewNative creates the native back-end. A nil chooser selects the
// built-in interactive finder. maxVisible <= 0 picks a default.
func NewNative(cache *scan.Cache, chooser Chooser, maxVisible int) *Native {
	if maxVisible <= 0 {
		maxVisible = defaultFinderVisible
	}
	if chooser == nil {
		visible := maxVisible
		chooser = ChooserFunc(func(ctx context.Context, candidates []string, title string) (string, bool, error) {
			return runMiniFinder(ctx, candidates, title, visible)
		})
	}
	return &Native{
		cache:      cache,
		chooser:    chooser,
		maxVisible: maxVisible,
	}
}

// Name implements Backend.
func (n *Native) Name() string {
	return ProviderNative
}

// Pick implements Backend.
func (n *Native) Pick(ctx context.Context, req Request) (Result, error) {
	if err := n.cache.RefreshIfNeeded(); err != nil {
		return Result{}, err
	}

	candidates := filterExcluded(n.cache.Candidates(), req.Exclusions)
	if len(candidates) == 0 {
		return Result{}, nil
	}

	path, accepted, err := n.chooser.Choose(ctx, candidates, req.Title)
	if err != nil {
		return Result{}, err
	}
	if !accepted || path == "" {
		return Result{}, nil
	}

	// Strong guarantee: a chooser bug or race must never surface an
	// excluded path.
	if _, excluded := exclusionSet(req.Exclusions)[path]; excluded {
		return Result{}, nil
	}

	return Result{Path: path, Accepted: true}, nil
}
