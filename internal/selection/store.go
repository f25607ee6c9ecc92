// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"sync"

	"github.com/jeranaias/ctxsel/internal/eventbus"
	"github.com/jeranaias/ctxsel/internal/pathutil"
)

// =============================================================================
// SELECTION STORE
// =============================================================================

// Store is the authoritative in-memory selection state: an ordered,
// unique sequence of canonical paths plus the line ranges requested for
// each path. All insertion is append-only and removal is positional;
// the store never re-sorts.
//
// Every mutation that changes state publishes eventbus.EventUpdate
// exactly once per changed aspect. Mutations are guarded by a mutex
// because picker results arrive on their own goroutines; handlers run
// outside the lock, so a handler may call back into the store.
type Store struct {
	mu     sync.Mutex
	norm   pathutil.Normalizer
	bus    *eventbus.Bus
	paths  []string
	ranges map[string][]Range
}

// NewStore creates an empty store. A nil normalizer falls back to
// pathutil.Identity.
func NewStore(norm pathutil.Normalizer) *Store {
	if norm == nil {
		norm = pathutil.Identity
	}
	return &Store{
		norm:   norm,
		bus:    eventbus.New(),
		ranges: make(map[string][]Range),
	}
}

// Subscribe registers a handler for update notifications.
func (s *Store) Subscribe(h eventbus.Handler) {
	s.bus.Subscribe(eventbus.EventUpdate, h)
}

// Unsubscribe removes the first registration of h; a nil handler clears
// every update subscriber.
func (s *Store) Unsubscribe(h eventbus.Handler) {
	s.bus.Unsubscribe(eventbus.EventUpdate, h)
}

// =============================================================================
// MUTATION
// =============================================================================

// AddPath canonicalizes and appends the path if it is not already
// selected. Empty paths and duplicates are no-ops. Returns whether the
// selection changed.
func (s *Store) AddPath(path string) bool {
	if path == "" {
		return false
	}
	canon := s.norm(path)
	if canon == "" {
		return false
	}

	s.mu.Lock()
	added := s.appendPathLocked(canon)
	s.mu.Unlock()

	if added {
		s.bus.Publish(eventbus.EventUpdate)
	}
	return added
}

// AddPathRange records a range for the path and ensures the path is
// selected. The Whole sentinel always appends - duplicate Whole entries
// accumulate deliberately, unlike line spans which are structurally
// deduplicated. A range append and a consequent path append each fire
// their own update. Returns whether anything changed.
func (s *Store) AddPathRange(path string, r Range) bool {
	if path == "" {
		return false
	}
	canon := s.norm(path)
	if canon == "" {
		return false
	}

	s.mu.Lock()

	// Ensure the entry exists; creation alone is not a content change.
	if _, ok := s.ranges[canon]; !ok {
		s.ranges[canon] = nil
	}

	rangeAdded := false
	if r.IsWhole() {
		s.ranges[canon] = append(s.ranges[canon], r)
		rangeAdded = true
	} else if !containsRange(s.ranges[canon], r) {
		s.ranges[canon] = append(s.ranges[canon], r)
		rangeAdded = true
	}

	pathAdded := s.appendPathLocked(canon)
	s.mu.Unlock()

	if rangeAdded {
		s.bus.Publish(eventbus.EventUpdate)
	}
	if pathAdded {
		s.bus.Publish(eventbus.EventUpdate)
	}
	return rangeAdded || pathAdded
}

// Toggle removes the path if selected, otherwise appends it. Returns
// whether the path ended up selected.
func (s *Store) Toggle(path string) (added bool) {
	if path == "" {
		return false
	}
	canon := s.norm(path)
	if canon == "" {
		return false
	}

	s.mu.Lock()
	idx := indexOf(s.paths, canon)
	if idx >= 0 {
		s.paths = append(s.paths[:idx:idx], s.paths[idx+1:]...)
		s.mu.Unlock()
		s.bus.Publish(eventbus.EventUpdate)
		return false
	}
	s.appendPathLocked(canon)
	s.mu.Unlock()

	s.bus.Publish(eventbus.EventUpdate)
	return true
}

// AppendUnchecked canonicalizes and appends the path without the
// duplicate check. Only the native picker back-end takes this route: its
// candidate list already excluded selected paths, so re-checking here
// would be redundant. Other producers must go through AddPath.
func (s *Store) AppendUnchecked(path string) {
	if path == "" {
		return
	}
	canon := s.norm(path)
	if canon == "" {
		return
	}

	s.mu.Lock()
	s.paths = append(s.paths, canon)
	s.mu.Unlock()

	s.bus.Publish(eventbus.EventUpdate)
}

// RemoveAt removes the entry at the 1-based position. Out-of-bounds
// positions change nothing and report failure.
//
// The path's range history is deliberately retained, so re-adding the
// path restores its prior ranges. Memory growth is bounded by the number
// of files ever selected in the session.
func (s *Store) RemoveAt(pos int) bool {
	s.mu.Lock()
	if pos < 1 || pos > len(s.paths) {
		s.mu.Unlock()
		return false
	}
	i := pos - 1
	s.paths = append(s.paths[:i:i], s.paths[i+1:]...)
	s.mu.Unlock()

	s.bus.Publish(eventbus.EventUpdate)
	return true
}

// Reset clears paths, ranges, and every event subscription. Nothing is
// published: the subscription list is already empty by the time anyone
// could be notified.
func (s *Store) Reset() {
	s.mu.Lock()
	s.paths = nil
	s.ranges = make(map[string][]Range)
	s.mu.Unlock()

	s.bus.Clear()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// SnapshotPaths returns an independent copy of the selected paths.
func (s *Store) SnapshotPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// SnapshotRanges returns an independent copy of the per-path ranges.
func (s *Store) SnapshotRanges() map[string][]Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]Range, len(s.ranges))
	for p, rs := range s.ranges {
		cp := make([]Range, len(rs))
		copy(cp, rs)
		out[p] = cp
	}
	return out
}

// RangesFor returns a copy of the ranges recorded for the path.
func (s *Store) RangesFor(path string) []Range {
	canon := s.norm(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	rs := s.ranges[canon]
	cp := make([]Range, len(rs))
	copy(cp, rs)
	return cp
}

// Contains reports whether the path is currently selected.
func (s *Store) Contains(path string) bool {
	canon := s.norm(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.paths, canon) >= 0
}

// Len returns the number of selected paths.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// =============================================================================
// HELPERS
// =============================================================================

// appendPathLocked appends canon if absent. Caller holds the mutex.
func (s *Store) appendPathLocked(canon string) bool {
	if indexOf(s.paths, canon) >= 0 {
		return false
	}
	s.paths = append(s.paths, canon)
	return true
}

func indexOf(paths []string, canon string) int {
	for i, p := range paths {
		if p == canon {
			return i
		}
	}
	return -1
}

func containsRange(rs []Range, r Range) bool {
	for _, existing := range rs {
		if existing.Equal(r) {
			return true
		}
	}
	return false
}
