package components

import (
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/config"
	"datav/internal/cotask"
	"datav/internal/geom"
	"datav/internal/resize"
)

const waveInterval = 120 * time.Millisecond

var roundBorder = lipgloss.Border{
	Top: "─", Bottom: "─", Left: "(", Right: ")",
	TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯",
}

// WaterLevel is the highest value of data, 0 when empty.
func WaterLevel(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	level := data[0]
	for _, v := range data[1:] {
		level = math.Max(level, v)
	}
	return level
}

// FilledRows is how many of height rows a level in percent covers.
func FilledRows(height int, level float64) int {
	if height <= 0 {
		return 0
	}
	return int(math.Round(float64(height) * geom.Clamp(level, 0, 100) / 100))
}

// WaterLevelPond is a tank gauge with moving waves on the surface.
type WaterLevelPond struct {
	base
	cfg    config.WaterLevelPond
	phase  int
	task   *cotask.Task
	paused bool
}

func NewWaterLevelPond(cfg config.WaterLevelPond, opts ...Option) *WaterLevelPond {
	w := &WaterLevelPond{base: newBase("water_level", opts), cfg: cfg}
	w.observe(func(resize.Size) {})
	w.start()
	return w
}

func (w *WaterLevelPond) start() {
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	if w.cfg.WaveNum <= 0 || w.cfg.WaveHeight <= 0 {
		return
	}
	roll := func() (time.Duration, error) {
		if w.closed {
			return 0, nil
		}
		w.phase++
		return waveInterval, nil
	}
	w.task = cotask.Start(w.clock, cotask.NewScript().Repeat(roll),
		cotask.WithLogger(w.log), cotask.WithName("waves"))
	if w.paused {
		w.task.Pause()
	}
}

func (w *WaterLevelPond) SetConfig(cfg config.WaterLevelPond) tea.Cmd {
	if w.closed {
		return nil
	}
	restart := cfg.WaveNum != w.cfg.WaveNum || cfg.WaveHeight != w.cfg.WaveHeight
	w.cfg = cfg
	if restart {
		w.start()
	}
	return w.clock.Cmd()
}

func (w *WaterLevelPond) SetData(data ...float64) tea.Cmd {
	cfg := w.cfg
	cfg.Data = data
	return w.SetConfig(cfg)
}

func (w *WaterLevelPond) Config() config.WaterLevelPond { return w.cfg }

func (w *WaterLevelPond) SetPaused(paused bool) tea.Cmd {
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

// Phase counts wave frames.
func (w *WaterLevelPond) Phase() int { return w.phase }

func (w *WaterLevelPond) Init() tea.Cmd { return w.clock.Cmd() }

func (w *WaterLevelPond) Close() {
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	w.close()
}

func (w *WaterLevelPond) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *WaterLevelPond) border() lipgloss.Border {
	switch w.cfg.Shape {
	case "roundRect":
		return lipgloss.RoundedBorder()
	case "round":
		return roundBorder
	}
	return lipgloss.NormalBorder()
}

// Label is the text drawn in the middle of the tank.
func (w *WaterLevelPond) Label() string {
	return withValue(w.cfg.Formatter, strconv.FormatFloat(WaterLevel(w.cfg.Data), 'f', -1, 64))
}

func (w *WaterLevelPond) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	inW, inH := w.size.Width-2, w.size.Height-2
	if inW <= 0 || inH <= 0 {
		return ""
	}

	level := WaterLevel(w.cfg.Data)
	filled := FilledRows(inH, level)
	colors := gradient(w.cfg.Colors, max(filled, 1))
	surface := inH - filled
	waveTop := surface - w.cfg.WaveHeight

	rows := make([]string, inH)
	for y := 0; y < inH; y++ {
		switch {
		case y >= surface:
			rows[y] = lipgloss.NewStyle().Foreground(colors[y-surface]).Render(strings.Repeat("█", inW))
		case y >= waveTop && filled > 0:
			c := blend("#000000", string(colors[0]), w.cfg.WaveOpacity)
			rows[y] = lipgloss.NewStyle().Foreground(c).Render(w.waveRow(inW, y-waveTop))
		default:
			rows[y] = strings.Repeat(" ", inW)
		}
	}

	label := w.Label()
	mid := inH / 2
	rows[mid] = overlay(rows[mid], lipgloss.NewStyle().Bold(true).Render(label), (inW-lipgloss.Width(label))/2)

	border := lipgloss.Color("#ffffff")
	if len(w.cfg.Colors) > 0 {
		border = lipgloss.Color(w.cfg.Colors[0])
	}
	return lipgloss.NewStyle().
		Border(w.border()).
		BorderForeground(border).
		Render(strings.Join(rows, "\n"))
}

// waveRow draws row k of the wave band: crests where a sine with WaveNum
// periods across the width rises above the row.
func (w *WaterLevelPond) waveRow(width, k int) string {
	var b strings.Builder
	band := float64(w.cfg.WaveHeight)
	for x := 0; x < width; x++ {
		t := float64(x+w.phase) / float64(width) * float64(w.cfg.WaveNum) * 2 * math.Pi
		crest := (math.Sin(t) + 1) / 2 * band
		if crest >= band-float64(k) {
			b.WriteString("▄")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}
