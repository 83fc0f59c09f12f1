package components

import (
	"sort"
	"strconv"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/config"
	"datav/internal/resize"
)

// SortDescending returns a copy of items ordered from largest to smallest.
func SortDescending(items []config.Item) []config.Item {
	out := append([]config.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// ConicalColumnChart is a column chart ordered by value.
type ConicalColumnChart struct {
	base
	cfg   config.ConicalColumnChart
	chart barchart.Model
}

func NewConicalColumnChart(cfg config.ConicalColumnChart, opts ...Option) *ConicalColumnChart {
	w := &ConicalColumnChart{base: newBase("conical_column", opts), cfg: cfg}
	w.observe(w.layout)
	return w
}

func (w *ConicalColumnChart) layout(s resize.Size) {
	w.chart = barchart.New(s.Width, s.Height, barchart.WithBarGap(1))
	w.redraw()
}

func (w *ConicalColumnChart) redraw() {
	if !w.size.Valid() {
		return
	}
	w.chart.Clear()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.ColumnColor))
	for _, it := range SortDescending(w.cfg.Data) {
		label := it.Name
		if w.cfg.ShowValue {
			label += " " + strconv.FormatFloat(it.Value, 'f', -1, 64)
		}
		w.chart.Push(barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: it.Name, Value: it.Value, Style: style}},
		})
	}
	w.chart.Draw()
}

func (w *ConicalColumnChart) SetConfig(cfg config.ConicalColumnChart) tea.Cmd {
	w.cfg = cfg
	w.redraw()
	return nil
}

func (w *ConicalColumnChart) SetData(items []config.Item) tea.Cmd {
	w.cfg.Data = append([]config.Item(nil), items...)
	w.redraw()
	return nil
}

func (w *ConicalColumnChart) Config() config.ConicalColumnChart { return w.cfg }

func (w *ConicalColumnChart) Init() tea.Cmd { return w.clock.Cmd() }

func (w *ConicalColumnChart) Close() { w.close() }

func (w *ConicalColumnChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *ConicalColumnChart) View() string {
	if w.closed || !w.size.Valid() || len(w.cfg.Data) == 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.TextColor)).Render(w.chart.View())
}
