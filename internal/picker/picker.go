// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package picker provides the interchangeable interactive back-ends that
// produce at most one chosen file path per invocation.
//
// Three back-ends exist. The native one is a minimal in-process finder
// backed by the scan cache; it enforces the exclusion list strictly,
// both before display and on the result. The fzf and telescope-style
// back-ends treat exclusions only as a display-filter hint and do not
// re-verify what they return. That asymmetry is part of the contract:
// callers that need the strong guarantee must use the native back-end.
package picker

import (
	"context"
	"errors"
)

// =============================================================================
// PROVIDERS
// =============================================================================

// Recognized provider identifiers.
const (
	ProviderNative    = "native"
	ProviderFzf       = "fzf-backend"
	ProviderTelescope = "telescope-backend"
)

// KnownProvider reports whether name is a recognized provider id.
func KnownProvider(name string) bool {
	switch name {
	case ProviderNative, ProviderFzf, ProviderTelescope:
		return true
	}
	return false
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownProvider is returned for an unrecognized provider id.
	ErrUnknownProvider = errors.New("unknown picker provider")

	// ErrUnavailable is returned when a back-end cannot run in the
	// current environment (missing binary, no TTY).
	ErrUnavailable = errors.New("picker back-end unavailable")
)

// =============================================================================
// GATEWAY CONTRACT
// =============================================================================

// Request carries one pick invocation's inputs.
type Request struct {
	// Exclusions are canonical already-selected paths. How strictly
	// they are honored is back-end specific; see the package comment.
	Exclusions []string

	// Title is an optional prompt/header shown by the back-end.
	Title string
}

// Result is the outcome of one pick invocation.
type Result struct {
	// Path is the chosen path. Meaningless unless Accepted.
	Path string

	// Accepted is false when the user cancelled. Cancellation is a
	// normal outcome, not an error.
	Accepted bool
}

// Backend is one interchangeable picker implementation. Pick blocks
// until the user chooses or cancels and delivers its outcome exactly
// once per invocation.
type Backend interface {
	Name() string
	Pick(ctx context.Context, req Request) (Result, error)
}

// exclusionSet builds a membership set from the request's exclusions.
func exclusionSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// filterExcluded returns candidates with excluded paths removed,
// preserving order.
func filterExcluded(candidates, exclusions []string) []string {
	if len(exclusions) == 0 {
		return candidates
	}
	set := exclusionSet(exclusions)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, excluded := set[c]; !excluded {
			out = append(out, c)
		}
	}
	return out
}
