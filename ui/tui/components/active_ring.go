package components

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"datav/internal/config"
	"datav/internal/cotask"
	"datav/internal/geom"
	"datav/internal/resize"
)

// ActiveRingChart is a donut whose segments take turns being highlighted.
// The highlighted segment is drawn further out and its share is shown in the
// middle.
type ActiveRingChart struct {
	base
	cfg    config.ActiveRingChart
	active int
	task   *cotask.Task
	gen    uint64
	flop   *DigitalFlop
	plot   plot
	paused bool
}

func NewActiveRingChart(cfg config.ActiveRingChart, opts ...Option) *ActiveRingChart {
	w := &ActiveRingChart{base: newBase("active_ring", opts)}
	w.observe(w.layout)
	w.flop = NewDigitalFlop(config.DefaultDigitalFlop(), WithScheduler(w.clock), WithLogger(w.log))
	w.apply(cfg)
	return w
}

func (w *ActiveRingChart) apply(cfg config.ActiveRingChart) {
	w.cfg = cfg
	w.gen++
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	w.active = 0
	w.updateFlop()
	gap := cfg.Gap()
	if len(cfg.Data) < 2 || gap <= 0 {
		return
	}

	gen := w.gen
	next := func() (time.Duration, error) {
		if w.closed || gen != w.gen {
			return 0, nil
		}
		w.active = (w.active + 1) % len(w.cfg.Data)
		w.updateFlop()
		w.redraw()
		return gap, nil
	}
	w.task = cotask.Start(w.clock, cotask.NewScript(cotask.Sleep(gap)).Repeat(next),
		cotask.WithLogger(w.log), cotask.WithName("active_ring"))
	if w.paused {
		w.task.Pause()
	}
}

func (w *ActiveRingChart) SetConfig(cfg config.ActiveRingChart) tea.Cmd {
	if w.closed {
		return nil
	}
	w.apply(cfg)
	w.redraw()
	return w.clock.Cmd()
}

func (w *ActiveRingChart) SetData(items []config.Item) tea.Cmd {
	cfg := w.cfg
	cfg.Data = items
	return w.SetConfig(cfg)
}

func (w *ActiveRingChart) Config() config.ActiveRingChart { return w.cfg }

// Active returns the index of the highlighted segment.
func (w *ActiveRingChart) Active() int { return w.active }

func (w *ActiveRingChart) SetPaused(paused bool) tea.Cmd {
	w.paused = paused
	if w.task != nil {
		if paused {
			w.task.Pause()
		} else {
			w.task.Resume()
		}
	}
	return w.clock.Cmd()
}

// Share is what the centre shows for segment i: its percentage of the sum,
// or the raw value with ShowOriginValue.
func (w *ActiveRingChart) Share(i int) float64 {
	if i < 0 || i >= len(w.cfg.Data) {
		return 0
	}
	if w.cfg.ShowOriginValue {
		return w.cfg.Data[i].Value
	}
	sum := 0.0
	for _, it := range w.cfg.Data {
		sum += it.Value
	}
	if sum == 0 {
		return 0
	}
	return w.cfg.Data[i].Value / sum * 100
}

func (w *ActiveRingChart) updateFlop() {
	unit := w.cfg.FlopUnit
	if unit == "" && !w.cfg.ShowOriginValue {
		unit = "%"
	}
	fc := w.flop.Config()
	fc.Content = placeholder + unit
	fc.ToFixed = w.cfg.FlopToFixed
	fc.Color = w.cfg.FlopColor
	fc.Number = []float64{w.Share(w.active)}
	w.flop.SetConfig(fc)
}

func (w *ActiveRingChart) layout(s resize.Size) {
	w.plot = newPlot(s.Width, s.Height)
	w.redraw()
}

func (w *ActiveRingChart) redraw() {
	if !w.size.Valid() {
		return
	}
	w.plot.Clear()
	values := make([]float64, len(w.cfg.Data))
	for i, it := range w.cfg.Data {
		values[i] = it.Value
	}
	r := w.plot.radius()
	palette := w.cfg.Palette()
	for i, sec := range geom.Sectors(values) {
		radius := w.cfg.Radius
		if i == w.active {
			radius = w.cfg.ActiveRadius
		}
		style := lipgloss.NewStyle().Foreground(paletteColor(palette, i))
		steps := int(math.Ceil(math.Abs(sec[1]-sec[0]) * r * 4))
		for k := 0; k < max(w.cfg.LineWidth, 1); k++ {
			rr := r*radius - float64(k)*0.5
			if rr <= 0 {
				break
			}
			w.plot.polyline(geom.Arc(geom.Point{}, rr, rr, sec[0], sec[1], steps), style)
		}
	}
}

func (w *ActiveRingChart) Init() tea.Cmd { return w.clock.Cmd() }

func (w *ActiveRingChart) Close() {
	w.gen++
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	w.flop.Close()
	w.close()
}

func (w *ActiveRingChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *ActiveRingChart) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	lines := strings.Split(w.plot.View(), "\n")
	label := []string{w.flop.View()}
	if w.active < len(w.cfg.Data) && w.cfg.Data[w.active].Name != "" {
		label = append(label, lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Render(w.cfg.Data[w.active].Name))
	}
	mid := len(lines)/2 - len(label)/2
	for i, text := range label {
		row := mid + i
		if row < 0 || row >= len(lines) {
			continue
		}
		col := (w.size.Width - ansi.StringWidth(text)) / 2
		lines[row] = overlay(lines[row], text, col)
	}
	return strings.Join(lines, "\n")
}
