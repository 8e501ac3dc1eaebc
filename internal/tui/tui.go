package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI for target, streaming outcomes produced by run.
func Run(target, ifaceName string, hostnames map[string]string, run Runner) error {
	model, err := New(target, ifaceName, hostnames, run)
	if err != nil {
		return fmt.Errorf("failed to create TUI model: %w", err)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := finalModel.(Model); ok {
		if m.state == StateError && m.err != nil {
			return m.err
		}
	}

	return nil
}
