package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yigger/githd/cmd"
)

var notifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

// Prompter implements cmd.Interactor with one bubbletea program per prompt.
type Prompter struct{}

func NewPrompter() *Prompter {
	return &Prompter{}
}

// Pick presents items and blocks until the user selects or dismisses.
func (p *Prompter) Pick(title string, items []cmd.PickItem) (cmd.PickItem, bool, error) {
	model := newPickerModel(title, items)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return cmd.PickItem{}, false, fmt.Errorf("picker failed: %w", err)
	}
	m := final.(*pickerModel)
	if m.chosen < 0 {
		return cmd.PickItem{}, false, nil
	}
	return m.items[m.chosen], true, nil
}

// Input prompts for free text and blocks until submit or cancel.
func (p *Prompter) Input(title, placeholder string) (string, bool, error) {
	model := newInputModel(title, placeholder)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", false, fmt.Errorf("input failed: %w", err)
	}
	m := final.(*inputModel)
	if !m.submitted {
		return "", false, nil
	}
	return m.input.Value(), true, nil
}

// Notify prints a short user-facing message.
func (p *Prompter) Notify(message string) {
	fmt.Fprintln(os.Stderr, notifyStyle.Render(message))
}
