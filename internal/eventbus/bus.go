// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eventbus provides a small typed publish/subscribe registry.
//
// Events are an enumerated type rather than free-form strings so that a
// typo in an event name fails at compile time. Publication is synchronous
// and runs handlers in registration order; the bus never recovers from a
// handler panic - propagation policy belongs to the caller.
package eventbus

import (
	"reflect"
	"sync"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event identifies a notification published on the bus.
type Event int

const (
	// EventUpdate fires after any state-changing selection operation.
	EventUpdate Event = iota
)

// String returns the string representation of the event.
func (e Event) String() string {
	switch e {
	case EventUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// =============================================================================
// BUS
// =============================================================================

// Handler is a subscriber callback.
type Handler func()

// Bus is a typed event registry. Handlers for an event run synchronously,
// in registration order. Duplicate registrations of the same handler are
// all retained. Mutating the subscriber list from inside a handler while
// that event is being published is undefined behavior; callers must not
// do it.
type Bus struct {
	mu       sync.Mutex
	handlers map[Event][]Handler
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[Event][]Handler),
	}
}

// Subscribe appends the handler to the event's subscriber list.
func (b *Bus) Subscribe(e Event, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[e] = append(b.handlers[e], h)
}

// Unsubscribe removes the first handler identical to h for the event.
// Identity is the handler's code pointer, which is the closest Go has to
// structural equality for functions. A nil handler clears every subscriber
// for the event.
func (b *Bus) Unsubscribe(e Event, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if h == nil {
		delete(b.handlers, e)
		return
	}

	target := reflect.ValueOf(h).Pointer()
	handlers := b.handlers[e]
	for i, existing := range handlers {
		if reflect.ValueOf(existing).Pointer() == target {
			b.handlers[e] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish invokes every current subscriber of the event, in registration
// order. The subscriber list is snapshotted before invocation so handlers
// run outside the bus lock.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := b.handlers[e]
	snapshot := make([]Handler, len(handlers))
	copy(snapshot, handlers)
	b.mu.Unlock()

	for _, h := range snapshot {
		h()
	}
}

// Clear drops every subscription for every event.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Event][]Handler)
}

// SubscriberCount returns the number of handlers registered for the event.
func (b *Bus) SubscriberCount(e Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[e])
}
