// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package eventbus

import "testing"

// =============================================================================
// SUBSCRIBE / PUBLISH TESTS
// =============================================================================

func TestBus_PublishOrder(t *testing.T) {
	b := New()

	var order []int
	b.Subscribe(EventUpdate, func() { order = append(order, 1) })
	b.Subscribe(EventUpdate, func() { order = append(order, 2) })
	b.Subscribe(EventUpdate, func() { order = append(order, 3) })

	b.Publish(EventUpdate)

	if len(order) != 3 {
		t.Fatalf("expected 3 invocations, got %d", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Errorf("invocation %d = handler %d, want %d", i, v, i+1)
		}
	}
}

func TestBus_DuplicateRegistrationsRetained(t *testing.T) {
	b := New()

	count := 0
	h := func() { count++ }
	b.Subscribe(EventUpdate, h)
	b.Subscribe(EventUpdate, h)

	b.Publish(EventUpdate)

	if count != 2 {
		t.Errorf("expected both registrations invoked, count = %d", count)
	}
}

func TestBus_PublishNoSubscribers(t *testing.T) {
	b := New()
	// Must not panic.
	b.Publish(EventUpdate)
}

// =============================================================================
// UNSUBSCRIBE TESTS
// =============================================================================

func TestBus_UnsubscribeRemovesFirstMatchOnly(t *testing.T) {
	b := New()

	count := 0
	h := func() { count++ }
	b.Subscribe(EventUpdate, h)
	b.Subscribe(EventUpdate, h)

	b.Unsubscribe(EventUpdate, h)

	if got := b.SubscriberCount(EventUpdate); got != 1 {
		t.Fatalf("SubscriberCount = %d, want 1", got)
	}

	b.Publish(EventUpdate)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestBus_UnsubscribeNilClearsEvent(t *testing.T) {
	b := New()

	count := 0
	b.Subscribe(EventUpdate, func() { count++ })
	b.Subscribe(EventUpdate, func() { count++ })

	b.Unsubscribe(EventUpdate, nil)

	b.Publish(EventUpdate)
	if count != 0 {
		t.Errorf("count = %d, want 0 after clearing event", count)
	}
}

func TestBus_UnsubscribeUnknownHandler(t *testing.T) {
	b := New()

	count := 0
	b.Subscribe(EventUpdate, func() { count++ })

	// Removing a handler that was never registered changes nothing.
	b.Unsubscribe(EventUpdate, func() {})

	b.Publish(EventUpdate)
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestBus_Clear(t *testing.T) {
	b := New()

	count := 0
	b.Subscribe(EventUpdate, func() { count++ })

	b.Clear()

	b.Publish(EventUpdate)
	if count != 0 {
		t.Errorf("count = %d, want 0 after Clear", count)
	}
	if got := b.SubscriberCount(EventUpdate); got != 0 {
		t.Errorf("SubscriberCount = %d, want 0", got)
	}
}

func TestEvent_String(t *testing.T) {
	if EventUpdate.String() != "update" {
		t.Errorf("EventUpdate.String() = %q, want %q", EventUpdate.String(), "update")
	}
	if Event(99).String() != "unknown" {
		t.Errorf("Event(99).String() = %q, want %q", Event(99).String(), "unknown")
	}
}
