package components

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/config"
	"datav/internal/cotask"
	"datav/internal/geom"
	"datav/internal/resize"
)

const decorationFrames = 12

// DecorationKind groups the ornament variants by how they move.
type DecorationKind int

const (
	DotMatrix DecorationKind = iota
	SweepLine
	Bars
	Arrows
)

// KindOf returns the ornament drawn for a variant.
func KindOf(variant int) DecorationKind {
	if variant < 1 {
		variant = 1
	}
	return DecorationKind((variant - 1) % 4)
}

// SweepSpan is the highlighted run [from, to) of a sweeping line width cells
// long at fraction t of its period. The run grows to full width and then
// shrinks back toward the far end.
func SweepSpan(width int, t float64, reverse bool) (from, to int) {
	if width <= 0 {
		return 0, 0
	}
	t = geom.Clamp(t, 0, 1)
	if t <= 0.5 {
		from, to = 0, int(math.Round(t*2*float64(width)))
	} else {
		from, to = int(math.Round((t-0.5)*2*float64(width))), width
	}
	if reverse {
		from, to = width-to, width-from
	}
	return from, to
}

// hash spreads small integers for the twinkle pattern.
func hash(i int) uint32 {
	return uint32(i) * 2654435761 >> 7
}

// Decoration is an animated ornament.
type Decoration struct {
	base
	cfg    config.Decoration
	step   int
	task   *cotask.Task
	paused bool
}

func NewDecoration(cfg config.Decoration, opts ...Option) *Decoration {
	w := &Decoration{base: newBase("decoration", opts)}
	w.observe(func(resize.Size) {})
	w.apply(cfg)
	return w
}

// stepInterval spreads the frames of one period evenly.
func (w *Decoration) stepInterval() time.Duration {
	return max(w.cfg.Period()/decorationFrames, animInterval)
}

func (w *Decoration) apply(cfg config.Decoration) {
	w.cfg = cfg
	w.step = 0
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	if cfg.Dur <= 0 {
		return
	}
	interval := w.stepInterval()
	advance := func() (time.Duration, error) {
		if w.closed {
			return 0, nil
		}
		w.step++
		return interval, nil
	}
	w.task = cotask.Start(w.clock, cotask.NewScript(cotask.Sleep(interval)).Repeat(advance),
		cotask.WithLogger(w.log), cotask.WithName("decoration"))
	if w.paused {
		w.task.Pause()
	}
}

func (w *Decoration) SetConfig(cfg config.Decoration) tea.Cmd {
	if w.closed {
		return nil
	}
	w.apply(cfg)
	return w.clock.Cmd()
}

func (w *Decoration) Config() config.Decoration { return w.cfg }

// Step is the number of frames shown since the last configuration.
func (w *Decoration) Step() int { return w.step }

func (w *Decoration) SetPaused(paused bool) tea.Cmd {
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

func (w *Decoration) Init() tea.Cmd { return w.clock.Cmd() }

func (w *Decoration) Close() {
	if w.task != nil {
		w.task.End()
		w.task = nil
	}
	w.close()
}

func (w *Decoration) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *Decoration) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	primary := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.Color.Primary))
	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.Color.Secondary))
	t := float64(w.step%decorationFrames) / decorationFrames

	var rows []string
	switch KindOf(w.cfg.Variant) {
	case DotMatrix:
		rows = w.dots(primary, secondary)
	case SweepLine:
		rows = w.sweep(primary, secondary, t)
	case Bars:
		rows = w.bars(primary, secondary)
	default:
		rows = w.arrows(primary, secondary)
	}
	return strings.Join(rows, "\n")
}

func blank(width, height int) [][]string {
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	return grid
}

func joinGrid(grid [][]string) []string {
	out := make([]string, len(grid))
	for y, row := range grid {
		out[y] = strings.Join(row, "")
	}
	return out
}

// dots twinkles a matrix laid out by the decoration point formula. Two points
// near the end of the second row carry the accent colour.
func (w *Decoration) dots(primary, secondary lipgloss.Style) []string {
	width, height := w.size.Width, w.size.Height
	rowPoints := max(width/2, 1)
	grid := blank(width, height)
	points := geom.DecorationPoints(float64(width), float64(height), rowPoints, height)
	for i, p := range points {
		x, y := int(p.X), int(p.Y)
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		h := hash(i)
		if h%5 >= 2 {
			continue
		}
		if h%3 == 0 && (w.step+i)%decorationFrames >= decorationFrames/2 {
			continue
		}
		grid[y][x] = primary.Render("▪")
	}
	if height > 1 && rowPoints > 2 {
		for _, i := range []int{rowPoints*2 - 1, rowPoints*2 - 3} {
			if i >= len(points) {
				continue
			}
			x, y := int(points[i].X), int(points[i].Y)
			if x < width && y < height && w.step%2 == 0 {
				grid[y][x] = secondary.Render("■")
			}
		}
	}
	return joinGrid(grid)
}

func (w *Decoration) sweep(primary, secondary lipgloss.Style, t float64) []string {
	width, height := w.size.Width, w.size.Height
	from, to := SweepSpan(width, t, w.cfg.Reverse)
	line := primary.Render(strings.Repeat("─", from)) +
		secondary.Render(strings.Repeat("━", to-from)) +
		primary.Render(strings.Repeat("─", width-to))
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", width)
	}
	rows[height/2] = line
	return rows
}

// bars are columns whose heights breathe with the step counter.
func (w *Decoration) bars(primary, secondary lipgloss.Style) []string {
	width, height := w.size.Width, w.size.Height
	grid := blank(width, height)
	for x := 0; x < width; x += 2 {
		col := x / 2
		if w.cfg.Reverse {
			col = (width - 1 - x) / 2
		}
		phase := float64(w.step+col) / decorationFrames * 2 * math.Pi
		h := int(math.Round((math.Sin(phase) + 1) / 2 * float64(height)))
		style := primary
		if hash(col)%4 == 0 {
			style = secondary
		}
		for y := height - h; y < height; y++ {
			grid[y][x] = style.Render("█")
		}
	}
	return joinGrid(grid)
}

// arrows run chevrons toward the centre, one lit chevron per frame.
func (w *Decoration) arrows(primary, secondary lipgloss.Style) []string {
	width, height := w.size.Width, w.size.Height
	half := width / 2
	grid := blank(width, height)
	lit := w.step % max(half, 1)
	right, left := "»", "«"
	if w.cfg.Reverse {
		right, left = "«", "»"
	}
	y := height / 2
	for x := 0; x < half; x++ {
		style := primary
		if x == lit {
			style = secondary
		}
		grid[y][x] = style.Render(right)
		grid[y][width-1-x] = style.Render(left)
	}
	return joinGrid(grid)
}
