// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ctxsel/internal/scan"
)

// =============================================================================
// TELESCOPE BACK-END
// =============================================================================

// TelescopeOptions tunes the full-screen picker's presentation.
type TelescopeOptions struct {
	// HideStatusBar suppresses the match-count status bar.
	HideStatusBar bool

	// Title overrides the list header. The per-request title wins when
	// both are set.
	Title string
}

// TelescopeRunner presents the full-screen list and returns the choice.
// It exists as a seam so the interactive program can be replaced in
// tests. Accepted is false on user cancel.
type TelescopeRunner func(ctx context.Context, candidates []string, title string, opts TelescopeOptions) (path string, accepted bool, err error)

// Telescope is the full-screen picker. Like the fzf back-end it filters
// exclusions out of what it displays and trusts the selection that comes
// back; it does not re-check the result.
type Telescope struct {
	cache *scan.Cache
	opts  TelescopeOptions
	run   TelescopeRunner
}

// NewTelescope builds the full-screen back-end over the given scan
// cache. A nil runner selects the real alt-screen program.
func NewTelescope(cache *scan.Cache, opts TelescopeOptions, run TelescopeRunner) *Telescope {
	if run == nil {
		run = runTelescopeProgram
	}
	return &Telescope{cache: cache, opts: opts, run: run}
}

func (t *Telescope) Name() string { return ProviderTelescope }

// Pick shows the candidate list in an alt-screen finder. The returned
// path is trusted without re-checking it against the exclusions.
func (t *Telescope) Pick(ctx context.Context, req Request) (Result, error) {
	if err := t.cache.RefreshIfNeeded(); err != nil {
		return Result{}, err
	}
	candidates := filterExcluded(t.cache.Candidates(), req.Exclusions)
	if len(candidates) == 0 {
		return Result{}, nil
	}

	path, accepted, err := t.run(ctx, candidates, req.Title, t.opts)
	if err != nil {
		return Result{}, err
	}
	if !accepted || path == "" {
		return Result{}, nil
	}
	return Result{Path: path, Accepted: true}, nil
}

// runTelescopeProgram is the real interactive runner.
func runTelescopeProgram(ctx context.Context, candidates []string, title string, opts TelescopeOptions) (string, bool, error) {
	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = pathItem(c)
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderForeground(lipgloss.Color("212"))

	l := list.New(items, delegate, 0, 0)
	if title == "" {
		title = opts.Title
	}
	if title == "" {
		title = "Select a file"
	}
	l.Title = title
	l.SetShowStatusBar(!opts.HideStatusBar)
	l.SetFilteringEnabled(true)

	m := telescopeModel{list: l}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}

	fm, ok := final.(telescopeModel)
	if !ok || !fm.accepted {
		return "", false, nil
	}
	return fm.chosen, true, nil
}

type pathItem string

func (p pathItem) Title() string       { return string(p) }
func (p pathItem) Description() string { return "" }
func (p pathItem) FilterValue() string { return string(p) }

type telescopeModel struct {
	list     list.Model
	chosen   string
	accepted bool
}

func (m telescopeModel) Init() tea.Cmd {
	return nil
}

func (m telescopeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		// Let the list's own filter input consume keys while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(pathItem); ok {
				m.chosen = string(item)
				m.accepted = true
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m telescopeModel) View() string {
	return m.list.View()
}
