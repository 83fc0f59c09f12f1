package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"datav/internal/config"
	"datav/internal/resize"
)

var (
	dashedBorder = lipgloss.Border{
		Top: "╌", Bottom: "╌", Left: "╎", Right: "╎",
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
	}
	dottedBorder = lipgloss.Border{
		Top: "┈", Bottom: "┈", Left: "┊", Right: "┊",
		TopLeft: "•", TopRight: "•", BottomLeft: "•", BottomRight: "•",
	}
	bracketBorder = lipgloss.Border{
		Top: " ", Bottom: " ", Left: " ", Right: " ",
		TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛",
	}
	asciiBorder = lipgloss.Border{
		Top: "-", Bottom: "-", Left: "|", Right: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
	}
	cornerBorder = lipgloss.Border{
		Top: "─", Bottom: "─", Left: "│", Right: "│",
		TopLeft: "┏", TopRight: "┓", BottomLeft: "┗", BottomRight: "┛",
	}
	notchBorder = lipgloss.Border{
		Top: "━", Bottom: "━", Left: "┃", Right: "┃",
		TopLeft: "◢", TopRight: "◣", BottomLeft: "◥", BottomRight: "◤",
	}
)

// BorderFor maps a variant number to its frame. Unknown variants fall back
// to the first one.
func BorderFor(variant int) lipgloss.Border {
	switch variant {
	case 2:
		return lipgloss.RoundedBorder()
	case 3:
		return lipgloss.ThickBorder()
	case 4:
		return lipgloss.DoubleBorder()
	case 5:
		return lipgloss.BlockBorder()
	case 6:
		return lipgloss.OuterHalfBlockBorder()
	case 7:
		return lipgloss.InnerHalfBlockBorder()
	case 8:
		return dashedBorder
	case 9:
		return dottedBorder
	case 10:
		return bracketBorder
	case 11:
		return asciiBorder
	case 12:
		return cornerBorder
	case 13:
		return notchBorder
	default:
		return lipgloss.NormalBorder()
	}
}

// BorderBox frames a child and sizes it to the inner box.
type BorderBox struct {
	base
	cfg     config.BorderBox
	child   Widget
	pending []tea.Cmd
}

// NewBorderBox wraps child, which may be nil for an empty frame.
func NewBorderBox(cfg config.BorderBox, child Widget, opts ...Option) *BorderBox {
	w := &BorderBox{base: newBase("border_box", opts), cfg: cfg, child: child}
	w.observe(w.layout)
	return w
}

func (w *BorderBox) layout(s resize.Size) {
	if w.child == nil {
		return
	}
	if cmd := w.child.SetSize(max(s.Width-2, 0), max(s.Height-2, 0)); cmd != nil {
		w.pending = append(w.pending, cmd)
	}
}

func (w *BorderBox) drain() tea.Cmd {
	cmds := append(w.pending, w.clock.Cmd())
	w.pending = nil
	return tea.Batch(cmds...)
}

func (w *BorderBox) SetConfig(cfg config.BorderBox) tea.Cmd {
	w.cfg = cfg
	return nil
}

func (w *BorderBox) Config() config.BorderBox { return w.cfg }

// Child returns the framed widget.
func (w *BorderBox) Child() Widget { return w.child }

func (w *BorderBox) SetSize(width, height int) tea.Cmd {
	if cmd := w.base.SetSize(width, height); cmd != nil {
		w.pending = append(w.pending, cmd)
	}
	return w.drain()
}

func (w *BorderBox) SetPaused(paused bool) tea.Cmd {
	if p, ok := w.child.(Pausable); ok {
		return p.SetPaused(paused)
	}
	return nil
}

func (w *BorderBox) Init() tea.Cmd {
	if w.child != nil {
		w.pending = append(w.pending, w.child.Init())
	}
	return w.drain()
}

func (w *BorderBox) Close() {
	if w.child != nil {
		w.child.Close()
	}
	w.close()
}

func (w *BorderBox) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !w.handle(msg) && w.child != nil {
		_, cmd := w.child.Update(msg)
		if cmd != nil {
			w.pending = append(w.pending, cmd)
		}
	}
	return w, w.drain()
}

// colors returns the frame and accent colours, swapped when reversed.
func (w *BorderBox) colors() (lipgloss.Color, lipgloss.Color) {
	frame, accent := lipgloss.Color(w.cfg.Color.Primary), lipgloss.Color(w.cfg.Color.Secondary)
	if w.cfg.Reverse {
		return accent, frame
	}
	return frame, accent
}

func (w *BorderBox) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	innerW, innerH := max(w.size.Width-2, 0), max(w.size.Height-2, 0)
	body := ""
	if w.child != nil {
		body = w.child.View()
	}
	frame, accent := w.colors()
	style := lipgloss.NewStyle().
		Border(BorderFor(w.cfg.Variant)).
		BorderForeground(frame).
		Width(innerW).Height(innerH).
		MaxWidth(w.size.Width).MaxHeight(w.size.Height)
	if w.cfg.BackgroundColor != "" {
		style = style.Background(lipgloss.Color(w.cfg.BackgroundColor))
	}
	out := style.Render(body)
	if w.cfg.Title == "" || innerW < 3 {
		return out
	}

	lines := strings.Split(out, "\n")
	title := ansi.Truncate(" "+w.cfg.Title+" ", innerW, "…")
	lines[0] = overlay(lines[0], lipgloss.NewStyle().Bold(true).Foreground(accent).Render(title),
		1+(innerW-ansi.StringWidth(title))/2)
	return strings.Join(lines, "\n")
}
