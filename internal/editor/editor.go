// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor defines the contract between ctxsel and the host that
// owns documents and the problem list. The selection core only ever
// talks to these interfaces; a real host (an editor plugin, the demo
// TUI) provides the implementation.
package editor

import "strings"

// SyntheticScheme is the address prefix for assistant-owned UI buffers
// (pickers, previews, scratch output). Documents with this prefix have
// no on-disk backing and are never selectable.
const SyntheticScheme = "ctxsel://"

// Document is a handle to an open document in the host.
type Document struct {
	// Path is the document's file path, or a SyntheticScheme address
	// for UI buffers.
	Path string
}

// IsSynthetic reports whether the document is an assistant-owned UI
// buffer rather than a real on-disk file.
func (d Document) IsSynthetic() bool {
	return strings.HasPrefix(d.Path, SyntheticScheme)
}

// Diagnostic is one entry in the host's problem/quickfix list.
type Diagnostic struct {
	// Doc is the live document handle backing the entry, nil when the
	// entry has no open document (e.g. a stale build artifact).
	Doc *Document

	// Line is the 1-based line the diagnostic points at.
	Line int

	// Message is the diagnostic text.
	Message string
}

// Editor provides read access to the host's state.
type Editor interface {
	// ActiveDocument returns the currently focused document. The second
	// result is false when nothing is focused.
	ActiveDocument() (Document, bool)

	// Diagnostics returns the host's problem list, in list order.
	Diagnostics() []Diagnostic
}

// Static is a fixed-state Editor. The demo binary uses it for headless
// runs and tests use it as a stand-in host.
type Static struct {
	Active *Document
	Items  []Diagnostic
}

// ActiveDocument implements Editor.
func (s *Static) ActiveDocument() (Document, bool) {
	if s.Active == nil {
		return Document{}, false
	}
	return *s.Active, true
}

// Diagnostics implements Editor.
func (s *Static) Diagnostics() []Diagnostic {
	return s.Items
}
