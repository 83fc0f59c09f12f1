package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"datav/internal/config"
	"datav/internal/resize"
)

const placeholder = "{nt}"

// RenderFlop fills the {nt} placeholders of content with numbers, in order.
// An empty content shows the numbers separated by spaces. Placeholders
// without a number are left empty.
func RenderFlop(content string, numbers []float64, toFixed int, formatter func(float64) string) string {
	if content == "" {
		content = strings.TrimSpace(strings.Repeat(placeholder+" ", len(numbers)))
	}
	var b strings.Builder
	i := 0
	for {
		k := strings.Index(content, placeholder)
		if k < 0 {
			b.WriteString(content)
			break
		}
		b.WriteString(content[:k])
		if i < len(numbers) {
			if formatter != nil {
				b.WriteString(formatter(numbers[i]))
			} else {
				b.WriteString(formatNumber(numbers[i], toFixed))
			}
		}
		i++
		content = content[k+len(placeholder):]
	}
	return b.String()
}

// DigitalFlop is a text label whose numbers glide to new values.
type DigitalFlop struct {
	base
	cfg  config.DigitalFlop
	nums glide
}

func NewDigitalFlop(cfg config.DigitalFlop, opts ...Option) *DigitalFlop {
	w := &DigitalFlop{
		base: newBase("digital_flop", opts),
	}
	w.nums = newGlide(w.clock, func() bool { return w.closed }, 6, 1)
	w.observe(func(resize.Size) {})
	w.cfg = cfg
	w.nums.Snap(cfg.Number)
	return w
}

// SetConfig replaces the configuration; numbers glide from their current
// values.
func (w *DigitalFlop) SetConfig(cfg config.DigitalFlop) tea.Cmd {
	if w.closed {
		return nil
	}
	w.cfg = cfg
	w.nums.Aim(cfg.Number)
	return w.clock.Cmd()
}

func (w *DigitalFlop) SetNumbers(numbers ...float64) tea.Cmd {
	cfg := w.cfg
	cfg.Number = numbers
	return w.SetConfig(cfg)
}

func (w *DigitalFlop) Config() config.DigitalFlop { return w.cfg }

// Animating reports whether numbers are still moving.
func (w *DigitalFlop) Animating() bool { return w.nums.Running() }

// Text is the label as currently shown.
func (w *DigitalFlop) Text() string {
	cur := make([]float64, w.nums.Len())
	for i := range cur {
		cur[i] = w.nums.Value(i)
	}
	return RenderFlop(w.cfg.Content, cur, w.cfg.ToFixed, w.cfg.Formatter)
}

func (w *DigitalFlop) Init() tea.Cmd { return w.clock.Cmd() }

func (w *DigitalFlop) Close() { w.close() }

func (w *DigitalFlop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	w.handle(msg)
	return w, w.clock.Cmd()
}

func (w *DigitalFlop) View() string {
	if w.closed {
		return ""
	}
	lines := strings.Split(w.Text(), "\n")
	if w.cfg.RowGap > 0 {
		gap := strings.Repeat("\n", w.cfg.RowGap)
		lines = []string{strings.Join(lines, "\n"+gap)}
	}
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(w.cfg.Color)).
		Bold(true).
		Align(position(w.cfg.TextAlign))
	if w.size.Valid() {
		style = style.Width(w.size.Width)
	}
	return style.Render(strings.Join(lines, "\n"))
}
