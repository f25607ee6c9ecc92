// ctxsel - file selection for in-editor AI context.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jeranaias/ctxsel/internal/config"
	"github.com/jeranaias/ctxsel/internal/editor"
	"github.com/jeranaias/ctxsel/internal/pathutil"
	"github.com/jeranaias/ctxsel/internal/picker"
	"github.com/jeranaias/ctxsel/internal/resolver"
	"github.com/jeranaias/ctxsel/internal/scan"
	"github.com/jeranaias/ctxsel/internal/selection"
	"github.com/jeranaias/ctxsel/internal/selector"
	"github.com/jeranaias/ctxsel/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a config.toml (default: ~/.ctxsel/config.toml)")
		provider   = flag.String("provider", "", "picker back-end: native, fzf-backend, telescope-backend")
		root       = flag.String("root", "", "directory selections are resolved against (default: cwd)")
		pick       = flag.Bool("pick", false, "open the interactive picker before resolving")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("ctxsel %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath, *provider, *root, *pick, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "ctxsel:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: ctxsel [flags] [path[:start-end]]...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Selects files (optionally with line ranges) and prints their")
	fmt.Fprintln(os.Stderr, "resolved content as an assistant context bundle.")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func run(configPath, providerFlag, rootFlag string, pick bool, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if providerFlag != "" {
		cfg.Provider = providerFlag
	}
	if rootFlag != "" {
		cfg.Root = rootFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	root := cfg.Root
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return err
		}
	}

	store := selection.NewStore(pathutil.NewNormalizer(root))
	res := resolver.New(cfg.MaxFileSizeBytes())
	cache := scan.NewCache(root, scan.Options{
		IgnorePatterns: cfg.Scan.IgnorePatterns,
		MaxFiles:       cfg.Scan.MaxFiles,
		MaxDepth:       cfg.Scan.MaxDepth,
	})

	// Keep the candidate cache honest across repeated opens: the watcher
	// marks it stale so RefreshIfNeeded rebuilds before the next pick.
	if watcher, err := scan.NewWatcher(cache); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher unavailable, candidate list may go stale: %v\n", err)
	} else if err := watcher.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed to start: %v\n", err)
		watcher.Close()
	} else {
		defer watcher.Close()
	}

	backends := map[string]picker.Backend{
		picker.ProviderNative:    picker.NewNative(cache, nil, cfg.Native.MaxVisible),
		picker.ProviderFzf: picker.NewFzf(cache, cfg.Fzf.Binary, nil),
		picker.ProviderTelescope: picker.NewTelescope(cache, picker.TelescopeOptions{
			HideStatusBar: cfg.Telescope.HideStatusBar,
			Title:         cfg.Telescope.Title,
		}, nil),
	}

	done := make(chan error, 1)
	sel := selector.New(store, &editor.Static{}, res, backends,
		selector.WithPickObserver(func(_ string, _ picker.Result, err error) {
			done <- err
		}),
	)

	for _, arg := range args {
		if err := addArg(sel, arg); err != nil {
			return err
		}
	}

	if pick {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if _, err := sel.Open(ctx, cfg.Provider); err != nil {
			return err
		}
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, picker.ErrUnavailable) {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	printBundle(sel)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// addArg parses one "path" or "path:start-end" argument into the
// selection.
func addArg(sel *selector.Selector, arg string) error {
	if i := strings.LastIndex(arg, ":"); i > 0 && i < len(arg)-1 {
		spec := arg[i+1:]
		r, err := selection.ParseRange(spec)
		switch {
		case err == nil && !r.IsWhole():
			sel.AddPathRange(arg[:i], r)
			return nil
		case err != nil && rangeLike(spec):
			return fmt.Errorf("bad range in %q: %w", arg, err)
		}
	}
	sel.AddPath(arg)
	return nil
}

// rangeLike reports whether a suffix was plausibly meant as a line
// range, so typos like "5-2" error instead of being taken as a path.
func rangeLike(spec string) bool {
	for _, r := range spec {
		if r != '-' && (r < '0' || r > '9') {
			return false
		}
	}
	return strings.Contains(spec, "-")
}

func printBundle(sel *selector.Selector) {
	files := sel.Resolve()
	if len(files) == 0 {
		fmt.Println("(no resolvable selection)")
		return
	}

	for i, f := range files {
		fmt.Printf("=== [%s] %s (%s) ===\n", util.IntToString(i+1), f.Path, f.FileType)
		fmt.Println(f.Content)
	}
}
