package components

import (
	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/collector"
	"datav/internal/config"
	"datav/internal/resize"
)

// LineChart plots a rolling series.
type LineChart struct {
	base
	cfg     config.LineChart
	Chart   linechart.Model
	History *collector.History
}

func NewLineChart(cfg config.LineChart, opts ...Option) *LineChart {
	w := &LineChart{
		base:    newBase("line_chart", opts),
		cfg:     cfg,
		History: collector.NewHistory(max(cfg.MaxPoints, 2)),
	}
	w.observe(w.layout)
	return w
}

func (c *LineChart) Init() tea.Cmd {
	return c.clock.Cmd()
}

func (c *LineChart) Push(value float64) {
	c.History.Push(value)
	c.redraw()
}

// SetSeries replaces the whole history.
func (c *LineChart) SetSeries(values []float64) {
	c.History = collector.NewHistory(max(c.cfg.MaxPoints, 2))
	for _, v := range values {
		c.History.Push(v)
	}
	c.redraw()
}

func (c *LineChart) Config() config.LineChart { return c.cfg }

func (c *LineChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	c.handle(msg)
	return c, c.clock.Cmd()
}

func (c *LineChart) Close() { c.close() }

func (c *LineChart) layout(s resize.Size) {
	h := s.Height
	if c.cfg.Title != "" {
		h--
	}
	// width, height, minX, maxX, minY, maxY
	c.Chart = linechart.New(s.Width, max(h, 1), 0, float64(c.History.Cap()-1), c.cfg.Min, c.cfg.Max)
	c.redraw()
}

func (c *LineChart) redraw() {
	if !c.size.Valid() {
		return
	}
	c.Chart.Clear()
	values := c.History.Values()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.cfg.Color))
	for i := 0; i < len(values)-1; i++ {
		c.Chart.DrawBrailleLineWithStyle(
			canvas.Float64Point{X: float64(i), Y: values[i]},
			canvas.Float64Point{X: float64(i + 1), Y: values[i+1]},
			style,
		)
	}
	c.Chart.DrawXYAxisAndLabel()
}

func (c *LineChart) View() string {
	if c.closed || !c.size.Valid() {
		return ""
	}
	if c.cfg.Title == "" {
		return c.Chart.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(c.cfg.Title),
		c.Chart.View(),
	)
}
