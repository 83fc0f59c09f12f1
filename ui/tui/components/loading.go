package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/resize"
)

// Loading is a spinner with a caption, centred in its box.
type Loading struct {
	base
	Spinner spinner.Model
	Caption string
}

func NewLoading(caption string, opts ...Option) *Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3DE7C9"))
	w := &Loading{base: newBase("loading", opts), Spinner: s, Caption: caption}
	w.observe(func(resize.Size) {})
	return w
}

func (w *Loading) Init() tea.Cmd {
	return tea.Batch(w.Spinner.Tick, w.clock.Cmd())
}

func (w *Loading) Close() { w.close() }

func (w *Loading) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.handle(msg) {
		return w, w.clock.Cmd()
	}
	if tick, ok := msg.(spinner.TickMsg); ok && !w.closed {
		var cmd tea.Cmd
		w.Spinner, cmd = w.Spinner.Update(tick)
		return w, tea.Batch(cmd, w.clock.Cmd())
	}
	return w, w.clock.Cmd()
}

func (w *Loading) View() string {
	if w.closed {
		return ""
	}
	text := w.Spinner.View()
	if w.Caption != "" {
		text += " " + w.Caption
	}
	if !w.size.Valid() {
		return text
	}
	return lipgloss.Place(w.size.Width, w.size.Height, lipgloss.Center, lipgloss.Center, text)
}
