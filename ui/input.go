package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel is a single-line free-text prompt. Enter submits, esc cancels.
type inputModel struct {
	title     string
	input     textinput.Model
	submitted bool
	done      bool
}

func newInputModel(title, placeholder string) *inputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()
	return &inputModel{title: title, input: ti}
}

func (m *inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "enter":
			m.submitted = true
			m.done = true
			return m, tea.Quit
		}
	}
	var tcmd tea.Cmd
	m.input, tcmd = m.input.Update(msg)
	return m, tcmd
}

func (m *inputModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter submit · esc cancel"))
	b.WriteString("\n")
	return b.String()
}
