// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"
	"path/filepath"
	"testing"
)

// scriptedFzfRunner records the candidates it was fed and replies with
// a fixed selection.
type scriptedFzfRunner struct {
	fed      []string
	path     string
	accepted bool
}

func (s *scriptedFzfRunner) run(_ context.Context, _ string, _ []string, candidates []string) (string, bool, error) {
	s.fed = append([]string(nil), candidates...)
	return s.path, s.accepted, nil
}

func TestFzfPickFiltersExclusionsFromInput(t *testing.T) {
	cache, root := fixtureCache(t, "a.go", "b.go", "c.go")
	excluded := filepath.Join(root, "b.go")

	runner := &scriptedFzfRunner{path: filepath.Join(root, "a.go"), accepted: true}
	f := NewFzf(cache, "fzf", runner.run)

	res, err := f.Pick(context.Background(), Request{Exclusions: []string{excluded}})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if !res.Accepted || res.Path != filepath.Join(root, "a.go") {
		t.Fatalf("got %+v, want accepted a.go", res)
	}

	for _, fed := range runner.fed {
		if fed == excluded {
			t.Errorf("excluded path %q was fed to fzf", excluded)
		}
	}
	if len(runner.fed) != 2 {
		t.Errorf("fzf was fed %d candidates, want 2", len(runner.fed))
	}
}

func TestFzfPickTrustsResultWithoutRecheck(t *testing.T) {
	cache, root := fixtureCache(t, "a.go", "b.go")
	excluded := filepath.Join(root, "b.go")

	// The exclusion list is only a display filter for this back-end;
	// whatever comes back is passed through.
	runner := &scriptedFzfRunner{path: excluded, accepted: true}
	f := NewFzf(cache, "fzf", runner.run)

	res, err := f.Pick(context.Background(), Request{Exclusions: []string{excluded}})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if !res.Accepted || res.Path != excluded {
		t.Errorf("got %+v, want the runner's choice passed through unchecked", res)
	}
}

func TestFzfPickCancelled(t *testing.T) {
	cache, _ := fixtureCache(t, "a.go")

	runner := &scriptedFzfRunner{accepted: false}
	f := NewFzf(cache, "fzf", runner.run)

	res, err := f.Pick(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if res.Accepted || res.Path != "" {
		t.Errorf("cancelled pick should yield zero result, got %+v", res)
	}
}

func TestFzfPickAllExcluded(t *testing.T) {
	cache, root := fixtureCache(t, "a.go")

	runner := &scriptedFzfRunner{path: filepath.Join(root, "a.go"), accepted: true}
	f := NewFzf(cache, "fzf", runner.run)

	res, err := f.Pick(context.Background(), Request{
		Exclusions: []string{filepath.Join(root, "a.go")},
	})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if res.Accepted {
		t.Errorf("nothing selectable, got %+v", res)
	}
	if runner.fed != nil {
		t.Errorf("fzf should not run with an empty candidate list, fed %v", runner.fed)
	}
}
