package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chord2svg/pkg/layout"
	"github.com/matzehuels/chord2svg/pkg/pitch"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ClefPickerModel - Interactive clef selection
// =============================================================================

// ClefChoice is one clef with the chord laid out under it.
type ClefChoice struct {
	Clef   pitch.Clef
	Layout layout.Layout
}

// LedgerCount returns the total number of ledger lines the chord needs.
func (c ClefChoice) LedgerCount() int {
	n := 0
	for _, note := range c.Layout.Resolved() {
		n += len(note.LedgerYs)
	}
	return n
}

// ClefPickerModel is the bubbletea model for interactive clef selection.
type ClefPickerModel struct {
	Notes    []string
	Choices  []ClefChoice
	Detected pitch.Clef
	Cursor   int
	Selected *ClefChoice
}

// NewClefPickerModel creates a picker with the cursor on the detected clef.
func NewClefPickerModel(notes []string, choices []ClefChoice, detected pitch.Clef) ClefPickerModel {
	m := ClefPickerModel{Notes: notes, Choices: choices, Detected: detected}
	for i, c := range choices {
		if c.Clef == detected {
			m.Cursor = i
		}
	}
	return m
}

func (m ClefPickerModel) Init() tea.Cmd {
	return nil
}

func (m ClefPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Choices) == 0 {
				return m, tea.Quit
			}
			choice := m.Choices[m.Cursor]
			m.Selected = &choice
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ClefPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Clef"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(joinNotes(m.Notes)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	fewest := m.fewestLedgers()
	for i, c := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		var tags []string
		if c.Clef == m.Detected {
			tags = append(tags, "detected")
		}
		if c.LedgerCount() == fewest {
			tags = append(tags, "fewest ledgers")
		}
		tag := ""
		if len(tags) > 0 {
			tag = StyleSuccess.Render("(" + strings.Join(tags, ", ") + ")")
		}

		line := fmt.Sprintf("%s%-7s %2d ledger lines  %s", cursor, c.Clef, c.LedgerCount(), tag)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Choices) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
		b.WriteString("\n")
		for _, n := range m.Choices[m.Cursor].Layout.Notes {
			if n.Status == layout.Unresolved {
				b.WriteString(listDimStyle.Render(fmt.Sprintf("  %-6s unresolved", n.Pitch)))
			} else {
				b.WriteString(listDimStyle.Render(fmt.Sprintf("  %-6s step %3d  y %s", n.Pitch, n.ClefStep, formatCoord(n.Y))))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m ClefPickerModel) fewestLedgers() int {
	fewest := -1
	for _, c := range m.Choices {
		if n := c.LedgerCount(); fewest < 0 || n < fewest {
			fewest = n
		}
	}
	return fewest
}
