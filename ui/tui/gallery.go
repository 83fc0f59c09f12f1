package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"datav/internal/config"
	"datav/internal/feed"
	"datav/ui/tui/components"
	"datav/ui/tui/state"
)

// slowRefresh spaces out data for widgets whose cycle restarts on every
// change: boards and the ring would otherwise never advance.
const slowRefresh = 15 * time.Second

type cell struct {
	w      components.Widget
	weight int
}

type row struct {
	cells  []cell
	weight int
}

// gallery owns every widget of the demo and lays them out per page.
type gallery struct {
	cfg config.Dashboard
	log logrus.FieldLogger

	processes *components.ScrollBoard
	checks    *components.ScrollBoard
	cores     *components.ScrollRankingBoard
	memory    *components.ActiveRingChart
	cpuFlop   *components.DigitalFlop
	cpuPond   *components.WaterLevelPond
	ramPond   *components.PercentPond
	disks     *components.CapsuleChart
	load      *components.ConicalColumnChart
	cpuLine   *components.LineChart
	flyLine   *components.FlyLineChart
	ornaments []*components.Decoration
	loading   *components.Loading

	panels map[string]*components.BorderBox
	frames []*components.BorderBox
	// roots receive every message exactly once; framed widgets get theirs
	// through their frame.
	roots []components.Widget

	lastSlow time.Time
	events   []string
}

func newGallery(cfg config.Dashboard, log logrus.FieldLogger, opts ...components.Option) *gallery {
	opts = append(opts, components.WithLogger(log))
	g := &gallery{cfg: cfg, log: log, panels: make(map[string]*components.BorderBox)}

	procCfg := cfg.ScrollBoard
	if len(procCfg.Header) == 0 {
		procCfg.Header = feed.ProcessHeader
	}
	g.processes = components.NewScrollBoard(procCfg, opts...)
	g.processes.OnClick = func(ev components.BoardEvent) {
		g.emit(fmt.Sprintf("clicked process row %d, column %d: %s", ev.RowIndex+1, ev.ColumnIndex, ev.Cell))
	}
	g.processes.OnMouseOver = func(ev components.BoardEvent) {
		g.log.WithField("row", ev.RowIndex).Debug("process row hovered")
	}

	checkCfg := cfg.ScrollBoard
	checkCfg.Header = feed.CheckHeader
	checkCfg.Index = false
	checkCfg.Carousel = "page"
	checkCfg.RowNum = min(checkCfg.RowNum, 3)
	g.checks = components.NewScrollBoard(checkCfg, opts...)
	g.checks.OnClick = func(ev components.BoardEvent) {
		g.emit(fmt.Sprintf("clicked check %q: %s", ev.Row[0], ev.Cell))
	}

	rankCfg := cfg.RankingBoard
	if rankCfg.Unit == "" {
		rankCfg.Unit = "%"
	}
	g.cores = components.NewScrollRankingBoard(rankCfg, opts...)

	ringCfg := cfg.ActiveRing
	if ringCfg.FlopUnit == "" {
		ringCfg.FlopUnit = "%"
	}
	g.memory = components.NewActiveRingChart(ringCfg, opts...)

	flopCfg := cfg.DigitalFlop
	if flopCfg.Content == "" {
		flopCfg.Content = "CPU {nt}%"
		flopCfg.ToFixed = 1
	}
	g.cpuFlop = components.NewDigitalFlop(flopCfg, opts...)
	g.cpuPond = components.NewWaterLevelPond(cfg.WaterLevel, opts...)
	g.ramPond = components.NewPercentPond(cfg.PercentPond, opts...)

	capCfg := cfg.Capsule
	if capCfg.Unit == "" {
		capCfg.Unit = "% used"
	}
	g.disks = components.NewCapsuleChart(capCfg, opts...)
	g.load = components.NewConicalColumnChart(cfg.Conical, opts...)

	lineCfg := cfg.LineChart
	if lineCfg.Title == "" {
		lineCfg.Title = "CPU history"
	}
	g.cpuLine = components.NewLineChart(lineCfg, opts...)
	g.flyLine = components.NewFlyLineChart(withDemoRoutes(cfg.FlyLine), opts...)

	named := []struct {
		name string
		w    components.Widget
	}{
		{"Processes", g.processes},
		{"Health", g.checks},
		{"Core Load", g.cores},
		{"Memory (GB)", g.memory},
		{"CPU", g.cpuFlop},
		{"CPU Level", g.cpuPond},
		{"RAM", g.ramPond},
		{"Partitions", g.disks},
		{"Load Avg", g.load},
		{"History", g.cpuLine},
		{"Routes", g.flyLine},
	}
	for _, n := range named {
		boxCfg := cfg.BorderBox
		boxCfg.Title = n.name
		box := components.NewBorderBox(boxCfg, n.w, opts...)
		g.panels[n.name] = box
		g.roots = append(g.roots, box)
	}

	// one frame per border variant, each around an ornament
	for v := 1; v <= 13; v++ {
		boxCfg := cfg.BorderBox
		boxCfg.Variant = v
		boxCfg.Reverse = v%2 == 0
		boxCfg.Title = fmt.Sprintf("#%d", v)
		var child components.Widget
		if v <= 12 {
			decoCfg := cfg.Decoration
			decoCfg.Variant = v
			decoCfg.Reverse = v > 4
			d := components.NewDecoration(decoCfg, opts...)
			g.ornaments = append(g.ornaments, d)
			child = d
		} else {
			g.loading = components.NewLoading("sampling", opts...)
			child = g.loading
		}
		box := components.NewBorderBox(boxCfg, child, opts...)
		g.frames = append(g.frames, box)
		g.roots = append(g.roots, box)
	}
	return g
}

// withDemoRoutes fills an empty fly-line map with a hub and spokes.
func withDemoRoutes(cfg config.FlyLineChart) config.FlyLineChart {
	if len(cfg.Points) > 0 {
		return cfg
	}
	cfg.Relative = true
	cfg.ShowOrbit = true
	cfg.Points = []config.FlyPoint{
		{Name: "hub", Coordinate: [2]float64{0.5, 0.5}},
		{Name: "north", Coordinate: [2]float64{0.45, 0.12}},
		{Name: "east", Coordinate: [2]float64{0.88, 0.4}},
		{Name: "south", Coordinate: [2]float64{0.6, 0.85}},
		{Name: "west", Coordinate: [2]float64{0.12, 0.6}},
	}
	cfg.Lines = nil
	for _, p := range cfg.Points[1:] {
		cfg.Lines = append(cfg.Lines, config.FlyLine{Source: p.Name, Target: "hub"})
	}
	return cfg
}

func (g *gallery) emit(line string) {
	g.events = append(g.events, line)
}

// drainEvents returns and forgets what widgets reported since the last call.
func (g *gallery) drainEvents() []string {
	out := g.events
	g.events = nil
	return out
}

func (g *gallery) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(g.roots))
	for _, w := range g.roots {
		cmds = append(cmds, w.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes msg to every root widget.
func (g *gallery) Update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(g.roots))
	for _, w := range g.roots {
		_, cmd := w.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Apply feeds one sample to the widgets.
func (g *gallery) Apply(snap feed.Snapshot, now time.Time) tea.Cmd {
	cmds := []tea.Cmd{
		g.cpuFlop.SetNumbers(snap.Stats.CPUUsage),
		g.cpuPond.SetData(snap.CPULevel),
		g.ramPond.SetValue(snap.RAMLevel),
		g.disks.SetData(snap.Partitions),
		g.load.SetData(snap.Columns),
	}
	g.cpuLine.Push(snap.Stats.CPUUsage)

	if g.lastSlow.IsZero() || now.Sub(g.lastSlow) >= slowRefresh {
		g.lastSlow = now
		cmds = append(cmds,
			g.processes.SetData(snap.Processes),
			g.checks.SetData(snap.CheckRows),
			g.cores.SetData(snap.Cores),
			g.memory.SetData(snap.Memory),
		)
	}
	return tea.Batch(cmds...)
}

// SetPaused holds or releases every animated widget.
func (g *gallery) SetPaused(paused bool) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(g.roots))
	for _, w := range g.roots {
		if p, ok := w.(components.Pausable); ok {
			cmds = append(cmds, p.SetPaused(paused))
		}
	}
	return tea.Batch(cmds...)
}

func (g *gallery) Close() {
	for _, w := range g.roots {
		w.Close()
	}
}

func (g *gallery) panel(name string) cell {
	return cell{w: g.panels[name], weight: 1}
}

func wide(c cell, weight int) cell {
	c.weight = weight
	return c
}

// rows returns the grid shown on page p.
func (g *gallery) rows(p state.Page) []row {
	switch p {
	case state.PageDashboard:
		return []row{
			{weight: 3, cells: []cell{wide(g.panel("Processes"), 2), g.panel("Memory (GB)"), g.panel("CPU Level")}},
			{weight: 3, cells: []cell{g.panel("Core Load"), wide(g.panel("History"), 2), g.panel("Load Avg")}},
			{weight: 2, cells: []cell{g.panel("CPU"), g.panel("RAM"), wide(g.panel("Partitions"), 2)}},
		}
	case state.PageBoards:
		return []row{
			{weight: 2, cells: []cell{wide(g.panel("Processes"), 3), wide(g.panel("Health"), 2)}},
			{weight: 1, cells: []cell{g.panel("Core Load")}},
		}
	case state.PageCharts:
		return []row{
			{weight: 1, cells: []cell{g.panel("Memory (GB)"), g.panel("Load Avg")}},
			{weight: 1, cells: []cell{g.panel("Partitions"), g.panel("History")}},
		}
	case state.PageGauges:
		return []row{
			{weight: 2, cells: []cell{g.panel("CPU"), g.panel("CPU Level")}},
			{weight: 1, cells: []cell{g.panel("RAM")}},
		}
	case state.PageFlyLine:
		return []row{{weight: 1, cells: []cell{g.panel("Routes")}}}
	case state.PageDecorations:
		var top, bottom []cell
		for i, f := range g.frames {
			c := cell{w: f, weight: 1}
			if i < 7 {
				top = append(top, c)
			} else {
				bottom = append(bottom, c)
			}
		}
		return []row{{weight: 1, cells: top}, {weight: 1, cells: bottom}}
	}
	return nil
}

// split divides total over weights, giving the remainder to the last part.
func split(total int, weights []int) []int {
	sum := 0
	for _, w := range weights {
		sum += w
	}
	out := make([]int, len(weights))
	if sum == 0 || total <= 0 {
		return out
	}
	used := 0
	for i, w := range weights {
		out[i] = total * w / sum
		used += out[i]
	}
	out[len(out)-1] += total - used
	return out
}

// Layout sizes the widgets of page p to a width*height body.
func (g *gallery) Layout(p state.Page, width, height int) tea.Cmd {
	rows := g.rows(p)
	var cmds []tea.Cmd
	rowWeights := make([]int, len(rows))
	for i, r := range rows {
		rowWeights[i] = r.weight
	}
	for i, h := range split(height, rowWeights) {
		cellWeights := make([]int, len(rows[i].cells))
		for k, c := range rows[i].cells {
			cellWeights[k] = c.weight
		}
		for k, w := range split(width, cellWeights) {
			cmds = append(cmds, rows[i].cells[k].w.SetSize(w, h))
		}
	}
	return tea.Batch(cmds...)
}

// View renders page p into a width*height body.
func (g *gallery) View(p state.Page, width, height int) string {
	rows := g.rows(p)
	rowWeights := make([]int, len(rows))
	for i, r := range rows {
		rowWeights[i] = r.weight
	}
	lines := make([]string, 0, len(rows))
	for i, h := range split(height, rowWeights) {
		if h == 0 {
			continue
		}
		cellWeights := make([]int, len(rows[i].cells))
		for k, c := range rows[i].cells {
			cellWeights[k] = c.weight
		}
		parts := make([]string, 0, len(cellWeights))
		for k, w := range split(width, cellWeights) {
			if w == 0 {
				continue
			}
			parts = append(parts, lipgloss.NewStyle().
				Width(w).Height(h).MaxWidth(w).MaxHeight(h).
				Render(rows[i].cells[k].w.View()))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(lines, "\n")
}
