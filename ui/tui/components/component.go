package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Component is the interface that all UI components must implement.
// It is similar to tea.Model but tailored for widgets.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// Sizer is implemented by components whose parent assigns them a box.
type Sizer interface {
	SetSize(width, height int) tea.Cmd
}

// Widget is a sized component that owns timers and must be closed when it
// leaves the screen.
type Widget interface {
	Component
	Sizer
	Close()
}

// Pausable is implemented by widgets with a carousel or animation loop.
type Pausable interface {
	SetPaused(paused bool) tea.Cmd
}
