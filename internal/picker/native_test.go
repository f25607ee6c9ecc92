// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeranaias/ctxsel/internal/scan"
)

// scriptedChooser records what it was shown and replies with a fixed
// answer.
type scriptedChooser struct {
	shown    []string
	path     string
	accepted bool
}

func (s *scriptedChooser) Choose(_ context.Context, candidates []string, _ string) (string, bool, error) {
	s.shown = append([]string(nil), candidates...)
	return s.path, s.accepted, nil
}

func fixtureCache(t *testing.T, names ...string) (*scan.Cache, string) {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return scan.NewCache(root, scan.Options{}), root
}

func TestNativePickExcludesBeforeDisplay(t *testing.T) {
	cache, root := fixtureCache(t, "a.go", "b.go", "c.go")
	excluded := filepath.Join(root, "b.go")

	chooser := &scriptedChooser{path: filepath.Join(root, "a.go"), accepted: true}
	n := NewNative(cache, chooser, 0)

	res, err := n.Pick(context.Background(), Request{Exclusions: []string{excluded}})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if !res.Accepted || res.Path != filepath.Join(root, "a.go") {
		t.Fatalf("got %+v, want accepted a.go", res)
	}

	for _, shown := range chooser.shown {
		if shown == excluded {
			t.Errorf("excluded path %q was offered to the chooser", excluded)
		}
	}
	if len(chooser.shown) != 2 {
		t.Errorf("chooser saw %d candidates, want 2", len(chooser.shown))
	}
}

func TestNativePickRechecksResult(t *testing.T) {
	cache, root := fixtureCache(t, "a.go", "b.go")
	excluded := filepath.Join(root, "b.go")

	// A misbehaving chooser returns an excluded path anyway.
	chooser := &scriptedChooser{path: excluded, accepted: true}
	n := NewNative(cache, chooser, 0)

	res, err := n.Pick(context.Background(), Request{Exclusions: []string{excluded}})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if res.Accepted {
		t.Errorf("excluded path leaked through: %+v", res)
	}
}

func TestNativePickCancelled(t *testing.T) {
	cache, _ := fixtureCache(t, "a.go")

	chooser := &scriptedChooser{accepted: false}
	n := NewNative(cache, chooser, 0)

	res, err := n.Pick(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if res.Accepted || res.Path != "" {
		t.Errorf("cancelled pick should yield zero result, got %+v", res)
	}
}

func TestNativePickAllExcluded(t *testing.T) {
	cache, root := fixtureCache(t, "a.go")

	chooser := &scriptedChooser{path: filepath.Join(root, "a.go"), accepted: true}
	n := NewNative(cache, chooser, 0)

	res, err := n.Pick(context.Background(), Request{
		Exclusions: []string{filepath.Join(root, "a.go")},
	})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if res.Accepted {
		t.Errorf("nothing selectable, got %+v", res)
	}
	if chooser.shown != nil {
		t.Errorf("chooser should not run with an empty candidate list, saw %v", chooser.shown)
	}
}

func TestKnownProvider(t *testing.T) {
	for _, id := range []string{ProviderNative, ProviderFzf, ProviderTelescope} {
		if !KnownProvider(id) {
			t.Errorf("KnownProvider(%q) = false", id)
		}
	}
	if KnownProvider("rofi") {
		t.Error("KnownProvider(rofi) = true")
	}
}
