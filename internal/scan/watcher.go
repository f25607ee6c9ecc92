// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scan

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CACHE WATCHER
// =============================================================================

// Watcher marks the candidate cache stale when files are created,
// removed, or renamed under its root. It never rebuilds the cache
// itself; rebuilds stay on the open path so the candidate list is always
// current at the moment a picker is presented.
type Watcher struct {
	cache   *Cache
	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWatcher creates a watcher for the cache's root.
func NewWatcher(cache *Cache) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		cache:   cache,
		watcher: fsw,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Watch registers the root tree and starts the event loop.
func (w *Watcher) Watch() error {
	if err := w.addRecursive(w.cache.Root()); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// addRecursive adds a directory and its non-ignored subdirectories to
// the watch list.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && w.cache.shouldIgnore(filepath.Base(path)) {
			return filepath.SkipDir
		}
		// Non-fatal: an unwatchable directory just goes stale later.
		_ = w.watcher.Add(path)
		return nil
	})
}

// processEvents marks the cache stale for any event that can change the
// candidate set. Writes to existing files do not: the candidate list
// holds names, not contents.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.cache.MarkStale()
			}

			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Errors are non-fatal; the cache is rebuilt on open anyway.
		}
	}
}
