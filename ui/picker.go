package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/yigger/githd/cmd"
	"github.com/yigger/githd/log"
)

const maxVisibleRows = 15

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// pickerModel is a filterable selection list. Enter picks the highlighted
// row, esc dismisses, ctrl+y copies the highlighted label to the clipboard.
type pickerModel struct {
	title    string
	items    []cmd.PickItem
	filtered []int // indexes into items matching the filter
	filter   textinput.Model
	cursor   int
	offset   int
	width    int
	chosen   int // index into items, -1 when dismissed
	done     bool
}

func newPickerModel(title string, items []cmd.PickItem) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "> "
	ti.Focus()

	m := &pickerModel{
		title:  title,
		items:  items,
		filter: ti,
		width:  80,
		chosen: -1,
	}
	m.refilter()
	return m
}

func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.filtered = m.filtered[:0]
	for i, item := range m.items {
		if query == "" ||
			strings.Contains(strings.ToLower(item.Label), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
	m.offset = 0
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.chosen = -1
			m.done = true
			return m, tea.Quit
		case "enter":
			if len(m.filtered) > 0 {
				m.chosen = m.filtered[m.cursor]
			}
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+maxVisibleRows {
					m.offset = m.cursor - maxVisibleRows + 1
				}
			}
			return m, nil
		case "ctrl+y":
			if len(m.filtered) > 0 {
				label := m.items[m.filtered[m.cursor]].Label
				if err := clipboard.WriteAll(strings.TrimSpace(label)); err != nil {
					log.WarningLog.Printf("failed to copy to clipboard: %v", err)
				}
			}
			return m, nil
		}
	}
	var tcmd tea.Cmd
	m.filter, tcmd = m.filter.Update(msg)
	m.refilter()
	return m, tcmd
}

func (m *pickerModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	end := m.offset + maxVisibleRows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for row := m.offset; row < end; row++ {
		item := m.items[m.filtered[row]]
		line := "  " + item.Label
		if row == m.cursor {
			line = cursorStyle.Render("> " + item.Label)
		}
		if item.Description != "" {
			line += "  " + descStyle.Render(item.Description)
		}
		b.WriteString(truncate.StringWithTail(line, uint(m.width), "…"))
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(descStyle.Render("  no matches"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter select · esc cancel · ctrl+y copy"))
	b.WriteString("\n")
	return b.String()
}
