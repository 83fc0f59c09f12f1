package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/resize"
)

// FullScreenContainer follows the terminal window and centres a child of a
// fixed design size inside it. A child larger than the window is given the
// whole window instead.
type FullScreenContainer struct {
	base
	child            Widget
	designW, designH int
	pending          []tea.Cmd
}

// NewFullScreenContainer wraps child. A zero design size makes the child
// fill the window.
func NewFullScreenContainer(child Widget, designW, designH int, opts ...Option) *FullScreenContainer {
	w := &FullScreenContainer{
		base:    newBase("full_screen", opts),
		child:   child,
		designW: designW,
		designH: designH,
	}
	w.observe(w.layout)
	return w
}

// ChildSize is the box the child gets inside a window of s.
func (w *FullScreenContainer) ChildSize(s resize.Size) resize.Size {
	cw, ch := s.Width, s.Height
	if w.designW > 0 {
		cw = min(w.designW, s.Width)
	}
	if w.designH > 0 {
		ch = min(w.designH, s.Height)
	}
	return resize.Size{Width: cw, Height: ch}
}

func (w *FullScreenContainer) layout(s resize.Size) {
	if w.child == nil {
		return
	}
	c := w.ChildSize(s)
	if cmd := w.child.SetSize(c.Width, c.Height); cmd != nil {
		w.pending = append(w.pending, cmd)
	}
}

func (w *FullScreenContainer) drain() tea.Cmd {
	cmds := append(w.pending, w.clock.Cmd())
	w.pending = nil
	return tea.Batch(cmds...)
}

func (w *FullScreenContainer) SetSize(width, height int) tea.Cmd {
	if cmd := w.base.SetSize(width, height); cmd != nil {
		w.pending = append(w.pending, cmd)
	}
	return w.drain()
}

func (w *FullScreenContainer) SetPaused(paused bool) tea.Cmd {
	if p, ok := w.child.(Pausable); ok {
		return p.SetPaused(paused)
	}
	return nil
}

func (w *FullScreenContainer) Init() tea.Cmd {
	if w.child != nil {
		w.pending = append(w.pending, w.child.Init())
	}
	return w.drain()
}

func (w *FullScreenContainer) Close() {
	if w.child != nil {
		w.child.Close()
	}
	w.close()
}

// Update takes the window size from tea.WindowSizeMsg and forwards every
// other message to the child.
func (w *FullScreenContainer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		return w, w.SetSize(ws.Width, ws.Height)
	}
	if !w.handle(msg) && w.child != nil {
		_, cmd := w.child.Update(msg)
		if cmd != nil {
			w.pending = append(w.pending, cmd)
		}
	}
	return w, w.drain()
}

func (w *FullScreenContainer) View() string {
	if w.closed || !w.size.Valid() || w.child == nil {
		return ""
	}
	return lipgloss.Place(w.size.Width, w.size.Height, lipgloss.Center, lipgloss.Center, w.child.View())
}
