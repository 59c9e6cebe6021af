// Package tui provides an interactive terminal browser for a finished
// report.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

type entry struct {
	key    string
	result types.ContractResult
}

type browser struct {
	entries  []entry
	cursor   int
	expanded bool
}

func newBrowser(r types.Report) browser {
	entries := make([]entry, 0, len(r))
	for key, res := range r {
		entries = append(entries, entry{key: key, result: res})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return browser{entries: entries}
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.expanded = false
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				m.expanded = false
			}
		case "enter", " ":
			m.expanded = !m.expanded
		}
	}
	return m, nil
}

func (m browser) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contract analysis (%d targets)\n\n", len(m.entries))

	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%-36s solc %-9s slither %s\n",
			cursor, e.key, e.result.Solc.Status(), e.result.Slither.Status())
		if i == m.cursor && m.expanded {
			b.WriteString(detailView(e))
		}
	}

	b.WriteString("\n  ↑/↓ move · enter details · q quit\n")
	return b.String()
}

func detailView(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    file: %s\n", e.result.Solc.File)
	if e.result.Solc.Error != "" {
		fmt.Fprintf(&b, "    solc error: %s\n", clip(e.result.Solc.Error))
	} else if !e.result.Solc.Success && e.result.Solc.Output != nil {
		fmt.Fprintf(&b, "    solc stderr: %s\n", clip(*e.result.Solc.Output))
	}
	if e.result.Slither.Error != "" {
		fmt.Fprintf(&b, "    slither error: %s\n", clip(e.result.Slither.Error))
	}
	return b.String()
}

func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}

// Run launches the interactive report browser.
func Run(r types.Report) error {
	p := tea.NewProgram(newBrowser(r))
	_, err := p.Run()
	return err
}
