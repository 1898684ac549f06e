// Package tui is the interactive demo surface: a segmented date field
// and a calendar picker driven by the headless date, field and grid
// packages.
package tui

import (
	"almanac/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the interactive session.
type Options struct {
	Locale string
	Store  store.Store
}

// Run starts the interactive TUI and blocks until it exits.
func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
