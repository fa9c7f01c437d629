// Package tui renders build reports in a full-screen terminal interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for job. The program uses the
// alternate screen buffer for a clean TUI experience.
func NewProgram(job string, reversed, summary bool, opts ...tea.ProgramOption) *Program {
	model := NewAppModel(job, reversed, summary)
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	allOpts = append(allOpts, opts...)
	return tea.NewProgram(model, allOpts...)
}
