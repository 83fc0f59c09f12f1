package components

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/config"
	"datav/internal/geom"
	"datav/internal/resize"
)

// DashPattern marks which of width cells are painted for a bar filled up to
// filled cells, repeating dash[0] painted cells and dash[1] gaps. A pattern
// without gaps paints every filled cell.
func DashPattern(width, filled int, dash [2]int) []bool {
	if width < 0 {
		width = 0
	}
	out := make([]bool, width)
	on, off := dash[0], dash[1]
	if on <= 0 {
		on, off = 1, 0
	}
	if off < 0 {
		off = 0
	}
	for x := 0; x < width && x < filled; x++ {
		out[x] = x%(on+off) < on
	}
	return out
}

// PercentPond is a horizontal progress bar drawn as a dashed fill.
type PercentPond struct {
	base
	cfg config.PercentPond
}

func NewPercentPond(cfg config.PercentPond, opts ...Option) *PercentPond {
	w := &PercentPond{base: newBase("percent_pond", opts), cfg: cfg}
	w.observe(func(resize.Size) {})
	return w
}

func (w *PercentPond) SetConfig(cfg config.PercentPond) tea.Cmd {
	w.cfg = cfg
	return nil
}

func (w *PercentPond) SetValue(v float64) tea.Cmd {
	w.cfg.Value = geom.Clamp(v, 0, 100)
	return nil
}

func (w *PercentPond) Config() config.PercentPond { return w.cfg }

func (w *PercentPond) Init() tea.Cmd { return w.clock.Cmd() }

func (w *PercentPond) Close() { w.close() }

func (w *PercentPond) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *PercentPond) Label() string {
	return withValue(w.cfg.Formatter, strconv.FormatFloat(w.cfg.Value, 'f', -1, 64))
}

func (w *PercentPond) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	frame := 0
	if w.cfg.BorderWidth > 0 {
		frame = 2
	}
	gap := w.cfg.BorderGap
	inW := w.size.Width - frame - 2*gap
	inH := w.size.Height - frame
	if inW <= 0 || inH <= 0 {
		return ""
	}

	filled := int(math.Round(float64(inW) * geom.Clamp(w.cfg.Value, 0, 100) / 100))
	span := inW
	if w.cfg.LocalGradient {
		span = max(filled, 1)
	}
	colors := gradient(w.cfg.Colors, span)
	mask := DashPattern(inW, filled, w.cfg.LineDash)

	var b strings.Builder
	for x, on := range mask {
		if !on {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colors[min(x, span-1)]).Render("▮"))
	}
	bar := strings.Repeat(" ", gap) + b.String() + strings.Repeat(" ", gap)

	rows := make([]string, inH)
	for i := range rows {
		rows[i] = bar
	}
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(w.cfg.TextColor)).Render(w.Label())
	mid := inH / 2
	rows[mid] = overlay(rows[mid], label, (inW+2*gap-lipgloss.Width(label))/2)

	body := strings.Join(rows, "\n")
	if frame == 0 {
		return body
	}
	border := lipgloss.NormalBorder()
	if w.cfg.BorderRadius > 0 {
		border = lipgloss.RoundedBorder()
	}
	bc := lipgloss.Color("#3DE7C9")
	if len(w.cfg.Colors) > 0 {
		bc = lipgloss.Color(w.cfg.Colors[0])
	}
	return lipgloss.NewStyle().Border(border).BorderForeground(bc).Render(body)
}
