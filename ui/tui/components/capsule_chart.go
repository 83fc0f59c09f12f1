package components

import (
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"datav/internal/config"
	"datav/internal/resize"
)

// CapsuleLengths scales values to fractions of the largest one.
func CapsuleLengths(items []config.Item) []float64 {
	out := make([]float64, len(items))
	hi := 0.0
	for _, it := range items {
		hi = math.Max(hi, it.Value)
	}
	if hi == 0 {
		return out
	}
	for i, it := range items {
		out[i] = math.Max(it.Value, 0) / hi
	}
	return out
}

// CapsuleLabels returns the axis ticks at every fifth of the largest value,
// rounded up, without duplicates.
func CapsuleLabels(items []config.Item) []int {
	hi := 0.0
	for _, it := range items {
		hi = math.Max(hi, it.Value)
	}
	fifth := hi / 5
	var out []int
	for i := 0; i <= 5; i++ {
		v := int(math.Ceil(float64(i) * fifth))
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CapsuleChart draws one rounded bar per item against a shared axis.
type CapsuleChart struct {
	base
	cfg config.CapsuleChart
}

func NewCapsuleChart(cfg config.CapsuleChart, opts ...Option) *CapsuleChart {
	w := &CapsuleChart{base: newBase("capsule_chart", opts), cfg: cfg}
	w.observe(func(resize.Size) {})
	return w
}

func (w *CapsuleChart) SetConfig(cfg config.CapsuleChart) tea.Cmd {
	w.cfg = cfg
	return nil
}

func (w *CapsuleChart) SetData(items []config.Item) tea.Cmd {
	w.cfg.Data = append([]config.Item(nil), items...)
	return nil
}

func (w *CapsuleChart) Config() config.CapsuleChart { return w.cfg }

func (w *CapsuleChart) Init() tea.Cmd { return w.clock.Cmd() }

func (w *CapsuleChart) Close() { w.close() }

func (w *CapsuleChart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *CapsuleChart) View() string {
	if w.closed || !w.size.Valid() || len(w.cfg.Data) == 0 {
		return ""
	}
	labelW := 0
	for _, it := range w.cfg.Data {
		labelW = max(labelW, runewidth.StringWidth(it.Name))
	}
	labelW = min(labelW, w.size.Width/3)
	valueW := 0
	if w.cfg.ShowValue {
		for _, it := range w.cfg.Data {
			valueW = max(valueW, len(strconv.FormatFloat(it.Value, 'f', -1, 64)))
		}
		valueW++
	}
	barW := w.size.Width - labelW - 1 - valueW
	if barW <= 2 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#8aa1b1"))
	lengths := CapsuleLengths(w.cfg.Data)
	var lines []string
	for i, it := range w.cfg.Data {
		n := int(math.Round(lengths[i] * float64(barW)))
		capsule := ""
		if n > 0 {
			capsule = lipgloss.NewStyle().Foreground(paletteColor(w.cfg.Colors, i)).Render(capsuleRune(n))
		}
		line := dim.Render(fit(it.Name, labelW, "right")) + " " + capsule
		if w.cfg.ShowValue {
			line += " " + strconv.FormatFloat(it.Value, 'f', -1, 64)
		}
		lines = append(lines, line)
	}
	lines = append(lines, strings.Repeat(" ", labelW+1)+dim.Render(w.axis(barW)))
	if w.cfg.Unit != "" {
		lines = append(lines, dim.Render(fit(w.cfg.Unit, w.size.Width, "right")))
	}
	return lipgloss.NewStyle().MaxHeight(w.size.Height).Render(strings.Join(lines, "\n"))
}

func capsuleRune(n int) string {
	if n == 1 {
		return "●"
	}
	return "◖" + strings.Repeat("█", n-2) + "◗"
}

// axis spreads the tick labels over width cells.
func (w *CapsuleChart) axis(width int) string {
	labels := CapsuleLabels(w.cfg.Data)
	row := []rune(strings.Repeat(" ", width))
	if len(labels) < 2 {
		return string(row)
	}
	for i, v := range labels {
		text := []rune(strconv.Itoa(v))
		pos := int(math.Round(float64(i) / float64(len(labels)-1) * float64(width-1)))
		start := min(pos, width-len(text))
		for k, r := range text {
			if start+k >= 0 && start+k < width {
				row[start+k] = r
			}
		}
	}
	return string(row)
}
