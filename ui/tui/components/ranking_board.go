package components

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"datav/internal/carousel"
	"datav/internal/config"
	"datav/internal/resize"
)

// RankRow is one ranked item with its bar length in percent.
type RankRow struct {
	config.Item
	Ranking int
	Percent float64
}

// RankRows orders items (descending when sorted) and scales each value
// against |min|+|max| so negative values still get a bar.
func RankRows(items []config.Item, sorted bool) []RankRow {
	data := append([]config.Item(nil), items...)
	if sorted {
		sort.SliceStable(data, func(i, j int) bool { return data[i].Value > data[j].Value })
	}
	if len(data) == 0 {
		return nil
	}
	lo, hi := data[0].Value, data[0].Value
	for _, it := range data[1:] {
		lo = math.Min(lo, it.Value)
		hi = math.Max(hi, it.Value)
	}
	minAbs := math.Abs(lo)
	total := math.Abs(hi) + minAbs

	rows := make([]RankRow, len(data))
	for i, it := range data {
		rows[i] = RankRow{Item: it, Ranking: i + 1}
		if total != 0 {
			rows[i].Percent = (it.Value + minAbs) / total * 100
		}
	}
	return rows
}

// ScrollRankingBoard cycles a ranked list with a bar under every entry.
type ScrollRankingBoard struct {
	base
	cfg      config.ScrollRankingBoard
	carousel *carousel.Scheduler[RankRow]
	frame    carousel.Frame[RankRow]
	heights  glide
	hovered  bool
}

func NewScrollRankingBoard(cfg config.ScrollRankingBoard, opts ...Option) *ScrollRankingBoard {
	w := &ScrollRankingBoard{
		base: newBase("ranking_board", opts),
	}
	w.heights = newGlide(w.clock, func() bool { return w.closed }, 15, 1)
	w.observe(w.layout)
	w.carousel = carousel.New(w.clock, w.carouselOptions(cfg), w.onFrame)
	w.apply(cfg)
	return w
}

func (w *ScrollRankingBoard) carouselOptions(cfg config.ScrollRankingBoard) carousel.Options {
	opts := carousel.DefaultOptions()
	opts.RowNum = cfg.RowNum
	opts.Mode = carousel.Mode(cfg.Carousel)
	opts.Cadence = cfg.Wait()
	opts.HoverPause = cfg.HoverPause
	opts.Logger = w.log
	return opts
}

func (w *ScrollRankingBoard) apply(cfg config.ScrollRankingBoard) {
	w.cfg = cfg
	w.carousel.SetOptions(w.carouselOptions(cfg))
	w.carousel.SetData(RankRows(cfg.Data, cfg.Sort))
	if w.size.Valid() {
		w.layout(w.size)
	}
}

func (w *ScrollRankingBoard) SetConfig(cfg config.ScrollRankingBoard) tea.Cmd {
	if w.closed {
		return nil
	}
	w.apply(cfg)
	return w.clock.Cmd()
}

func (w *ScrollRankingBoard) SetData(items []config.Item) tea.Cmd {
	cfg := w.cfg
	cfg.Data = items
	return w.SetConfig(cfg)
}

func (w *ScrollRankingBoard) Config() config.ScrollRankingBoard { return w.cfg }

func (w *ScrollRankingBoard) Carousel() *carousel.Scheduler[RankRow] { return w.carousel }

func (w *ScrollRankingBoard) SetPaused(paused bool) tea.Cmd {
	w.carousel.Hold(paused)
	return w.clock.Cmd()
}

func (w *ScrollRankingBoard) Init() tea.Cmd { return w.clock.Cmd() }

func (w *ScrollRankingBoard) Close() {
	w.carousel.Destroy()
	w.close()
}

func (w *ScrollRankingBoard) layout(s resize.Size) {
	h := 0
	if w.cfg.RowNum > 0 {
		h = s.Height / w.cfg.RowNum
	}
	w.carousel.SetRowHeight(h)
}

func (w *ScrollRankingBoard) onFrame(f carousel.Frame[RankRow]) {
	w.frame = f
	w.heights.Frame(f.Heights, f.Collapsed)
}

func (w *ScrollRankingBoard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.handle(msg) {
		return w, w.clock.Cmd()
	}
	if m, ok := msg.(tea.MouseMsg); ok && !w.closed {
		inside := zone.Get(w.id).InBounds(m)
		if inside != w.hovered {
			w.hovered = inside
			w.carousel.Hover(inside)
		}
	}
	return w, w.clock.Cmd()
}

// Label renders the value text of one row.
func (w *ScrollRankingBoard) Label(r RankRow) string {
	if w.cfg.ValueFormatter != nil {
		return w.cfg.ValueFormatter(r.Item)
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64) + w.cfg.Unit
}

func (w *ScrollRankingBoard) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}
	width := w.size.Width
	var lines []string
	for i, row := range w.frame.Rows {
		h := w.heights.Cells(i)
		if h == 0 {
			continue
		}
		lines = append(lines, w.renderRow(row.Data, width, h))
	}
	body := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Height(w.size.Height).
		MaxHeight(w.size.Height).
		Render(strings.Join(lines, "\n"))
	return zone.Mark(w.id, body)
}

func (w *ScrollRankingBoard) renderRow(r RankRow, width, height int) string {
	rank := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.BarColor)).Render(fmt.Sprintf("No.%d", r.Ranking))
	value := w.Label(r)
	nameWidth := width - lipgloss.Width(rank) - runewidth.StringWidth(value) - 2
	info := rank + " " + fit(r.Name, nameWidth, "left") + " " + value

	out := []string{info}
	if height > 1 {
		filled := int(math.Round(float64(width) * r.Percent / 100))
		if filled > width {
			filled = width
		}
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(w.cfg.BarColor)).Render(strings.Repeat("▆", filled)) +
			lipgloss.NewStyle().Foreground(lipgloss.Color("#1d3a5f")).Render(strings.Repeat("▁", width-filled))
		out = append(out, bar)
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
