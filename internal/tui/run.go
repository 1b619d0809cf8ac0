package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the local terminal client and blocks until the player quits.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
