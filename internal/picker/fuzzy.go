// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// FuzzyMatch performs fuzzy matching between a query and a candidate
// path. Returns a score (higher is better) and whether the match
// succeeded.
//
// Matching rules:
//   - Each character in query must appear in order in the candidate
//   - Consecutive matches get bonus points
//   - Matches at word boundaries (after /, -, _, space) get bonus points
//   - Matches at the start of the candidate get bonus points
//   - Case-insensitive, with a small bonus for exact case
func FuzzyMatch(query, candidate string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	queryRunes := []rune(strings.ToLower(query))
	candRunes := []rune(strings.ToLower(candidate))

	if len(queryRunes) > len(candRunes) {
		return 0, false
	}

	candOrig := []rune(candidate)
	queryOrig := []rune(query)

	queryPos := 0
	lastMatchPos := -1

	for candPos := 0; candPos < len(candRunes) && queryPos < len(queryRunes); candPos++ {
		if candRunes[candPos] != queryRunes[queryPos] {
			continue
		}

		matchScore := 1
		if lastMatchPos == candPos-1 {
			matchScore += 5
		}
		if candPos == 0 {
			matchScore += 10
		}
		if isWordBoundary(candRunes, candPos) {
			matchScore += 7
		}
		if candOrig[candPos] == queryOrig[queryPos] {
			matchScore += 2
		}

		score += matchScore
		lastMatchPos = candPos
		queryPos++
	}

	matched = queryPos == len(queryRunes)

	// Shorter candidates are better matches.
	if matched {
		score -= len(candRunes) / 4
	}

	return score, matched
}

// isWordBoundary returns true if the position starts a word: after a
// separator character, or at a camelCase transition.
func isWordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	prev := runes[pos-1]
	if prev == ' ' || prev == '/' || prev == '-' || prev == '_' || prev == '.' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(runes[pos])
}

// =============================================================================
// FILTERING
// =============================================================================

// ScoredPath is one fuzzy match result.
type ScoredPath struct {
	Path  string
	Score int
}

// FuzzyFilter filters candidates against the query and returns matches
// sorted by score, highest first. Ties keep candidate order.
func FuzzyFilter(query string, candidates []string) []ScoredPath {
	var matches []ScoredPath
	for _, c := range candidates {
		if score, ok := FuzzyMatch(query, c); ok {
			matches = append(matches, ScoredPath{Path: c, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
