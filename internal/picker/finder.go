// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/ctxsel/internal/util"
)

// =============================================================================
// MINIMAL FINDER
// =============================================================================

// The built-in finder behind the native back-end: a filter input above a
// fuzzy-ranked slice of candidates. Deliberately small - fancier
// interaction belongs to the telescope-style back-end.

var (
	finderTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	finderSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	finderNormalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	finderCountStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

const defaultFinderVisible = 10

type miniFinder struct {
	input      textinput.Model
	candidates []string
	filtered   []ScoredPath
	selected   int
	title      string
	width      int
	maxVisible int

	chosen   string
	accepted bool
}

func newMiniFinder(candidates []string, title string, maxVisible int) miniFinder {
	ti := textinput.New()
	ti.Placeholder = "Type to filter files..."
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	if maxVisible <= 0 {
		maxVisible = defaultFinderVisible
	}
	m := miniFinder{
		input:      ti,
		candidates: candidates,
		title:      title,
		width:      80,
		maxVisible: maxVisible,
	}
	m.refilter()
	return m
}

func (m miniFinder) Init() tea.Cmd {
	return textinput.Blink
}

func (m miniFinder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.selected >= 0 && m.selected < len(m.filtered) {
				m.chosen = m.filtered[m.selected].Path
				m.accepted = true
			}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.selected < len(m.filtered)-1 && m.selected < m.maxVisible-1 {
				m.selected++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *miniFinder) refilter() {
	m.filtered = FuzzyFilter(m.input.Value(), m.candidates)
	if m.selected >= len(m.filtered) {
		m.selected = 0
	}
}

func (m miniFinder) View() string {
	var b []byte

	if m.title != "" {
		b = append(b, finderTitleStyle.Render(m.title)...)
		b = append(b, '\n')
	}
	b = append(b, m.input.View()...)
	b = append(b, '\n')

	visible := m.filtered
	if len(visible) > m.maxVisible {
		visible = visible[:m.maxVisible]
	}

	for i, sp := range visible {
		row := runewidth.Truncate(sp.Path, m.width-4, "…")
		if i == m.selected {
			b = append(b, finderSelectedStyle.Render("» "+row)...)
		} else {
			b = append(b, finderNormalStyle.Render("  "+row)...)
		}
		b = append(b, '\n')
	}

	count := util.IntToString(len(m.filtered)) + "/" + util.IntToString(len(m.candidates))
	b = append(b, finderCountStyle.Render(count)...)
	return string(b)
}

// runMiniFinder runs the finder as a bubbletea program and reports the
// choice. This backs the default Chooser for the native back-end.
func runMiniFinder(ctx context.Context, candidates []string, title string, maxVisible int) (string, bool, error) {
	p := tea.NewProgram(newMiniFinder(candidates, title, maxVisible), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(miniFinder)
	if !ok {
		return "", false, nil
	}
	return m.chosen, m.accepted, nil
}
