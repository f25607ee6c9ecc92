// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selection maintains the ordered, de-duplicated set of file
// references that will be materialized as assistant context.
package selection

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/jeranaias/ctxsel/internal/util"
)

// =============================================================================
// RANGE DESCRIPTORS
// =============================================================================

// Range describes which part of a selected file to materialize: either
// the whole file, or an inclusive 1-based line span.
type Range struct {
	whole bool

	// Start and End are the inclusive 1-based bounds of a line span.
	// Unset for whole-file ranges.
	Start, End int
}

// Whole is the sentinel meaning "entire file content". Its presence in a
// path's range list short-circuits any line spans recorded for that path.
var Whole = Range{whole: true}

// Span returns a line-span range covering [start, end] inclusive.
func Span(start, end int) Range {
	return Range{Start: start, End: end}
}

// IsWhole reports whether the range is the whole-file sentinel.
func (r Range) IsWhole() bool {
	return r.whole
}

// Equal reports structural equality: same sentinel, or same bounds.
func (r Range) Equal(o Range) bool {
	if r.whole || o.whole {
		return r.whole == o.whole
	}
	return r.Start == o.Start && r.End == o.End
}

// String returns the textual encoding: the empty string for Whole,
// "start-end" for a span.
func (r Range) String() string {
	if r.whole {
		return ""
	}
	return util.IntToString(r.Start) + "-" + util.IntToString(r.End)
}

// =============================================================================
// TEXTUAL ENCODING
// =============================================================================

// spanPattern is the only line-span spelling this module understands.
var spanPattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ErrBadRange is returned for a string that is neither the whole-file
// sentinel nor a well-formed line span.
var ErrBadRange = errors.New("malformed range")

// ParseRange decodes the textual range form: the empty string means the
// whole file, "N-M" an inclusive 1-based span with 1 <= N <= M. Callers
// must validate untrusted input here before handing ranges to the store;
// the store itself does not re-check.
func ParseRange(s string) (Range, error) {
	if s == "" {
		return Whole, nil
	}

	m := spanPattern.FindStringSubmatch(s)
	if m == nil {
		return Range{}, ErrBadRange
	}

	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Range{}, ErrBadRange
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return Range{}, ErrBadRange
	}
	if start < 1 || start > end {
		return Range{}, ErrBadRange
	}

	return Span(start, end), nil
}
