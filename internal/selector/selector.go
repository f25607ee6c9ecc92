// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector is the top-level facade over the selection
// subsystem. It owns the store, the content resolver, and the picker
// back-ends, and expresses the user-facing operations: open a picker,
// toggle the active document, import the problem list, resolve content.
package selector

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/jeranaias/ctxsel/internal/editor"
	"github.com/jeranaias/ctxsel/internal/picker"
	"github.com/jeranaias/ctxsel/internal/resolver"
	"github.com/jeranaias/ctxsel/internal/selection"
)

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier surfaces user-facing messages from asynchronous flows. Hosts
// route these into their own status line or message area.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) { f(msg) }

// stderrNotifier is the fallback when no host notifier is wired in.
func stderrNotifier(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// =============================================================================
// SELECTOR
// =============================================================================

// Selector coordinates the selection store, the editor host, the
// resolver and the picker back-ends behind one surface.
type Selector struct {
	store    *selection.Store
	editor   editor.Editor
	resolver *resolver.Resolver
	notifier Notifier
	observer func(token string, res picker.Result, err error)

	mu       sync.Mutex
	backends map[string]picker.Backend
	pending  map[string]struct{}
}

// Option customizes a Selector.
type Option func(*Selector)

// WithNotifier routes asynchronous messages to the host.
func WithNotifier(n Notifier) Option {
	return func(s *Selector) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithPickObserver registers a hook invoked after each pick flow
// finishes, successful or not. Hosts use it to refresh their UI; tests
// use it to synchronize.
func WithPickObserver(fn func(token string, res picker.Result, err error)) Option {
	return func(s *Selector) {
		s.observer = fn
	}
}

// New wires a Selector from its collaborators. backends maps provider
// ids to implementations; unknown ids are rejected at Open time.
func New(store *selection.Store, ed editor.Editor, res *resolver.Resolver, backends map[string]picker.Backend, opts ...Option) *Selector {
	if store == nil {
		store = selection.NewStore(nil)
	}
	if res == nil {
		res = resolver.New(0)
	}
	s := &Selector{
		store:    store,
		editor:   ed,
		resolver: res,
		notifier: NotifierFunc(stderrNotifier),
		backends: backends,
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying selection store for hosts that render
// the list directly.
func (s *Selector) Store() *selection.Store {
	return s.store
}

// =============================================================================
// PICK FLOW
// =============================================================================

// Open launches the named picker back-end asynchronously. The selection
// is untouched until the pick completes; cancellation leaves it
// untouched entirely. Each call is an independent pick and returns a
// token identifying it. An unrecognized provider is reported to the
// notifier and returned as ErrUnknownProvider without starting a pick.
func (s *Selector) Open(ctx context.Context, provider string) (string, error) {
	s.mu.Lock()
	backend, ok := s.backends[provider]
	s.mu.Unlock()
	if !ok {
		s.notifier.Notify("unknown picker provider: " + provider)
		return "", picker.ErrUnknownProvider
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.pending[token] = struct{}{}
	s.mu.Unlock()

	req := picker.Request{
		Exclusions: s.store.SnapshotPaths(),
		Title:      "Add file to context",
	}

	go func() {
		res, err := backend.Pick(ctx, req)

		s.mu.Lock()
		delete(s.pending, token)
		s.mu.Unlock()

		if err != nil {
			s.notifier.Notify("picker failed: " + err.Error())
		} else if res.Accepted {
			s.applyPick(provider, res.Path)
		}

		if s.observer != nil {
			s.observer(token, res, err)
		}
	}()

	return token, nil
}

// applyPick commits a completed pick. The native back-end guarantees
// the path is new, so its result is appended without re-checking; the
// other back-ends go through the deduplicating add.
func (s *Selector) applyPick(provider, path string) {
	if provider == picker.ProviderNative {
		s.store.AppendUnchecked(path)
		return
	}
	s.store.AddPath(path)
}

// PendingPicks reports how many picks are in flight.
func (s *Selector) PendingPicks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// =============================================================================
// EDITOR-DRIVEN OPERATIONS
// =============================================================================

// ToggleCurrentDocument toggles the host's focused document in and out
// of the selection. ok is false when nothing is focused or the focused
// buffer is synthetic; the selection is untouched in that case.
func (s *Selector) ToggleCurrentDocument() (added, ok bool) {
	if s.editor == nil {
		return false, false
	}
	doc, focused := s.editor.ActiveDocument()
	if !focused || doc.IsSynthetic() || doc.Path == "" {
		return false, false
	}
	return s.store.Toggle(doc.Path), true
}

// ImportDiagnostics adds every file referenced by the host's problem
// list, in list order, and returns how many new paths were added.
// Entries without a live document are skipped.
func (s *Selector) ImportDiagnostics() int {
	if s.editor == nil {
		return 0
	}
	added := 0
	for _, d := range s.editor.Diagnostics() {
		if d.Doc == nil {
			continue
		}
		if s.store.AddPath(d.Doc.Path) {
			added++
		}
	}
	return added
}

// =============================================================================
// DELEGATIONS
// =============================================================================

// AddPath adds a path to the selection.
func (s *Selector) AddPath(path string) bool {
	return s.store.AddPath(path)
}

// AddPathRange selects a path together with a content range.
func (s *Selector) AddPathRange(path string, r selection.Range) bool {
	return s.store.AddPathRange(path, r)
}

// RemoveAt removes the 1-based positional entry from the selection.
func (s *Selector) RemoveAt(pos int) bool {
	return s.store.RemoveAt(pos)
}

// Reset clears the selection and all change subscriptions.
func (s *Selector) Reset() {
	s.store.Reset()
}

// SnapshotPaths returns a copy of the ordered selection.
func (s *Selector) SnapshotPaths() []string {
	return s.store.SnapshotPaths()
}

// Subscribe registers a selection-change handler.
func (s *Selector) Subscribe(h func()) {
	s.store.Subscribe(h)
}

// Resolve materializes the current selection's content.
func (s *Selector) Resolve() []resolver.ResolvedFile {
	return s.resolver.Resolve(s.store.SnapshotPaths(), s.store.SnapshotRanges())
}
