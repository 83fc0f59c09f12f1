package components

import (
	"math"
	"math/rand/v2"
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

const (
	flyInterval = 50 * time.Millisecond
	cometLength = 0.25
	curveSteps  = 24
)

// CometSegment returns the part of a path, as fractions of its length, that
// the comet covers at progress p. The tail is clipped at the start.
func CometSegment(p, length float64) (from, to float64) {
	p = geom.Clamp(p, 0, 1)
	return math.Max(p-length, 0), p
}

type flight struct {
	source, target config.FlyPoint
	color          string
	duration       time.Duration
}

// FlyLineChart draws named points and comets flying between them.
type FlyLineChart struct {
	base
	cfg     config.FlyLineChart
	flights []flight
	elapsed time.Duration
	task    *cotask.Task
	paused  bool
	rng     *rand.Rand
	plot    plot
}

func NewFlyLineChart(cfg config.FlyLineChart, opts ...Option) *FlyLineChart {
	w := &FlyLineChart{
		base: newBase("fly_line", opts),
		rng:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	w.observe(func(s resize.Size) { w.plot = newPlot(s.Width, s.Height) })
	w.apply(cfg)
	return w
}

// SetSeed makes random flight durations reproducible.
func (w *FlyLineChart) SetSeed(seed uint64) {
	w.rng = rand.New(rand.NewPCG(seed, 0))
	w.apply(w.cfg)
}

func (w *FlyLineChart) apply(cfg config.FlyLineChart) {
	w.cfg = cfg
	w.elapsed = 0
	byName := make(map[string]config.FlyPoint, len(cfg.Points))
	for _, p := range cfg.Points {
		byName[p.Name] = p
	}
	w.flights = w.flights[:0]
	for _, l := range cfg.Lines {
		src, ok1 := byName[l.Source]
		dst, ok2 := byName[l.Target]
		if !ok1 || !ok2 {
			w.log.WithField("source", l.Source).WithField("target", l.Target).Warn("fly line references an unknown point, skipped")
			continue
		}
		d := time.Duration(l.Duration) * time.Millisecond
		if d <= 0 {
			d = time.Duration(geom.RandomExtend(w.rng, cfg.Duration[0], cfg.Duration[1])) * time.Millisecond
		}
		if d <= 0 {
			d = time.Second
		}
		color := l.Color
		if color == "" {
			color = cfg.LineColor
		}
		w.flights = append(w.flights, flight{source: src, target: dst, color: color, duration: d})
	}

	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	if len(w.flights) == 0 {
		return
	}
	fly := func() (time.Duration, error) {
		if w.closed {
			return 0, nil
		}
		w.elapsed += flyInterval
		return flyInterval, nil
	}
	w.task = cotask.Start(w.clock, cotask.NewScript(cotask.Sleep(flyInterval)).Repeat(fly),
		cotask.WithLogger(w.log), cotask.WithName("fly_line"))
	if w.paused {
		w.task.Pause()
	}
}

func (w *FlyLineChart) SetConfig(cfg config.FlyLineChart) tea.Cmd {
	if w.closed {
		return nil
	}
	w.apply(cfg)
	return w.clock.Cmd()
}

func (w *FlyLineChart) Config() config.FlyLineChart { return w.cfg }

// Flights returns how many lines are animated.
func (w *FlyLineChart) Flights() int { return len(w.flights) }

// Progress is how far along its path comet i is, in [0, 1).
func (w *FlyLineChart) Progress(i int) float64 {
	if i < 0 || i >= len(w.flights) {
		return 0
	}
	d := w.flights[i].duration
	return float64(w.elapsed%d) / float64(d)
}

func (w *FlyLineChart) SetPaused(paused bool) tea.Cmd {
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

func (w *FlyLineChart) Init() tea.Cmd { return w.clock.Cmd() }

func (w *FlyLineChart) Close() {
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	w.close()
}

func (w *FlyLineChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *FlyLineChart) locate(p config.FlyPoint) geom.Point {
	if w.cfg.Relative {
		return w.plot.fromRelative(p.Coordinate[0], p.Coordinate[1])
	}
	// absolute coordinates are cells from the top-left corner
	return w.plot.fromRelative(p.Coordinate[0]/float64(w.size.Width), p.Coordinate[1]/float64(w.size.Height))
}

func (w *FlyLineChart) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	w.plot.Clear()

	orbit := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.OrbitColor))
	for i, f := range w.flights {
		a, b := w.locate(f.source), w.locate(f.target)
		ctrl := geom.ArcControl(a, b, w.cfg.Curvature)
		if w.cfg.ShowOrbit {
			w.plot.polyline(curve(a, ctrl, b, 0, 1), orbit)
		}
		from, to := CometSegment(w.Progress(i), cometLength)
		w.plot.polyline(curve(a, ctrl, b, from, to), lipgloss.NewStyle().Foreground(lipgloss.Color(f.color)))
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.OrbitColor))
	for _, p := range w.cfg.Points {
		c := w.locate(p)
		w.plot.polyline(geom.Arc(c, 0.5, 0.5, 0, 2*math.Pi, 8), dot)
	}

	lines := strings.Split(w.plot.View(), "\n")
	if w.cfg.ShowText {
		text := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.TextColor))
		for _, p := range w.cfg.Points {
			col, row := w.cell(p)
			row++ // below the point
			if row < 0 || row >= len(lines) {
				continue
			}
			label := text.Render(p.Name)
			col -= ansi.StringWidth(p.Name) / 2
			lines[row] = overlay(lines[row], label, max(min(col, w.size.Width-ansi.StringWidth(p.Name)), 0))
		}
	}
	return strings.Join(lines, "\n")
}

// cell converts a point to its cell column and row.
func (w *FlyLineChart) cell(p config.FlyPoint) (int, int) {
	c := w.locate(p)
	col := int(math.Floor(c.X + float64(w.size.Width)/2))
	row := int(math.Floor((float64(w.size.Height) - c.Y) / 2))
	return col, row
}

func curve(a, ctrl, b geom.Point, from, to float64) []geom.Point {
	if to <= from {
		return nil
	}
	n := max(int(math.Ceil(float64(curveSteps)*(to-from))), 1)
	out := make([]geom.Point, n+1)
	for i := range out {
		out[i] = geom.QuadBezier(a, ctrl, b, from+(to-from)*float64(i)/float64(n))
	}
	return out
}
