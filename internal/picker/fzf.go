// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/ctxsel/internal/scan"
)

// =============================================================================
// FZF BACK-END
// =============================================================================

// fzf exits with 130 on ctrl-c / esc.
const fzfCancelCode = 130

// FzfRunner invokes the external finder over the candidate list and
// returns its selection. It exists as a seam so the subprocess can be
// replaced in tests. Accepted is false on user cancel.
type FzfRunner func(ctx context.Context, binary string, args []string, candidates []string) (path string, accepted bool, err error)

// Fzf shells out to an external fzf binary. Exclusions are applied to
// the candidate list fed to fzf's stdin only; whatever fzf prints back
// is accepted as-is. Callers that need the stronger guarantee should
// use the native back-end.
type Fzf struct {
	cache  *scan.Cache
	binary string
	run    FzfRunner
}

// NewFzf builds an fzf-backed picker over the given scan cache. The
// binary name defaults to "fzf" when empty; a nil runner selects the
// real subprocess.
func NewFzf(cache *scan.Cache, binary string, run FzfRunner) *Fzf {
	if binary == "" {
		binary = "fzf"
	}
	if run == nil {
		run = runFzfCommand
	}
	return &Fzf{cache: cache, binary: binary, run: run}
}

func (f *Fzf) Name() string { return ProviderFzf }

// Pick runs fzf over the cache's candidates. The returned path is
// trusted without re-checking it against the exclusions.
func (f *Fzf) Pick(ctx context.Context, req Request) (Result, error) {
	if err := f.cache.RefreshIfNeeded(); err != nil {
		return Result{}, err
	}
	candidates := filterExcluded(f.cache.Candidates(), req.Exclusions)
	if len(candidates) == 0 {
		return Result{}, nil
	}

	args := []string{"--height", "40%", "--reverse"}
	if req.Title != "" {
		args = append(args, "--prompt", req.Title+" ")
	}

	path, accepted, err := f.run(ctx, f.binary, args, candidates)
	if err != nil {
		return Result{}, err
	}
	if !accepted || path == "" {
		return Result{}, nil
	}
	return Result{Path: path, Accepted: true}, nil
}

// runFzfCommand is the real subprocess runner. Returns ErrUnavailable
// when the binary is missing or stdin is not a terminal.
func runFzfCommand(ctx context.Context, binary string, args []string, candidates []string) (string, bool, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", false, ErrUnavailable
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", false, ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(strings.Join(candidates, "\n"))
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) && exit.ExitCode() == fzfCancelCode {
			return "", false, nil
		}
		return "", false, err
	}

	chosen := strings.TrimSpace(out.String())
	if chosen == "" {
		return "", false, nil
	}
	return chosen, true, nil
}
