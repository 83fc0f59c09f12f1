package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"datav/internal/carousel"
	"datav/internal/config"
	"datav/internal/geom"
	"datav/internal/resize"
)

// BoardEvent describes the cell under the pointer. Row and RowIndex refer to
// the row as supplied by the caller, whatever the carousel is showing.
type BoardEvent struct {
	Row         []string
	Cell        string
	RowIndex    int
	ColumnIndex int
}

// ScrollBoard is a table that scrolls its rows through a fixed window.
type ScrollBoard struct {
	base
	cfg      config.ScrollBoard
	header   []string
	carousel *carousel.Scheduler[[]string]
	frame    carousel.Frame[[]string]
	heights  glide
	widths   []int
	columns  int
	hovered  bool
	lastCell [2]int

	OnClick     func(BoardEvent)
	OnMouseOver func(BoardEvent)
}

func NewScrollBoard(cfg config.ScrollBoard, opts ...Option) *ScrollBoard {
	w := &ScrollBoard{
		base:     newBase("scroll_board", opts),
		lastCell: [2]int{-1, -1},
	}
	w.heights = newGlide(w.clock, func() bool { return w.closed }, 15, 1)
	w.observe(w.layout)
	w.carousel = carousel.New(w.clock, w.carouselOptions(cfg), w.onFrame)
	w.apply(cfg)
	return w
}

func (w *ScrollBoard) carouselOptions(cfg config.ScrollBoard) carousel.Options {
	opts := carousel.DefaultOptions()
	opts.RowNum = cfg.RowNum
	opts.Mode = carousel.Mode(cfg.Carousel)
	opts.Cadence = cfg.Wait()
	opts.HoverPause = cfg.HoverPause
	opts.Logger = w.log
	return opts
}

// apply rebuilds the board from cfg and restarts the carousel.
func (w *ScrollBoard) apply(cfg config.ScrollBoard) {
	w.cfg = cfg
	w.header = nil
	if len(cfg.Header) > 0 {
		if cfg.Index {
			w.header = append(w.header, cfg.IndexHeader)
		}
		w.header = append(w.header, cfg.Header...)
	}

	rows := make([][]string, len(cfg.Data))
	for i, r := range cfg.Data {
		if cfg.Index {
			r = append([]string{strconv.Itoa(i + 1)}, r...)
		}
		rows[i] = r
	}
	switch {
	case len(rows) > 0:
		w.columns = len(rows[0])
	default:
		w.columns = len(w.header)
	}
	if w.size.Valid() {
		w.layout(w.size)
	}

	w.carousel.SetOptions(w.carouselOptions(cfg))
	w.carousel.SetData(rows)
}

// SetConfig replaces the whole configuration.
func (w *ScrollBoard) SetConfig(cfg config.ScrollBoard) tea.Cmd {
	if w.closed {
		return nil
	}
	w.apply(cfg)
	return w.clock.Cmd()
}

// SetData replaces the rows and keeps the rest of the configuration.
func (w *ScrollBoard) SetData(data [][]string) tea.Cmd {
	cfg := w.cfg
	cfg.Data = data
	return w.SetConfig(cfg)
}

func (w *ScrollBoard) Config() config.ScrollBoard { return w.cfg }

// Carousel exposes the scheduler driving the rows.
func (w *ScrollBoard) Carousel() *carousel.Scheduler[[]string] { return w.carousel }

func (w *ScrollBoard) SetPaused(paused bool) tea.Cmd {
	w.carousel.Hold(paused)
	return w.clock.Cmd()
}

func (w *ScrollBoard) Init() tea.Cmd { return w.clock.Cmd() }

func (w *ScrollBoard) Close() {
	w.carousel.Destroy()
	w.close()
}

func (w *ScrollBoard) layout(s resize.Size) {
	w.widths = geom.ColumnWidths(s.Width, w.columns, w.cfg.ColumnWidth)
	w.carousel.SetRowHeight(geom.RowHeight(s.Height, w.cfg.HeaderHeight, len(w.header) > 0, w.cfg.RowNum))
}

func (w *ScrollBoard) onFrame(f carousel.Frame[[]string]) {
	w.frame = f
	w.heights.Frame(f.Heights, f.Collapsed)
}

func (w *ScrollBoard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.handle(msg) {
		return w, w.clock.Cmd()
	}
	if m, ok := msg.(tea.MouseMsg); ok {
		w.mouse(m)
	}
	return w, w.clock.Cmd()
}

func (w *ScrollBoard) mouse(m tea.MouseMsg) {
	if w.closed {
		return
	}
	inside := zone.Get(w.id).InBounds(m)
	if inside != w.hovered {
		w.hovered = inside
		w.carousel.Hover(inside)
	}
	if !inside {
		w.lastCell = [2]int{-1, -1}
		return
	}
	for ri := range w.frame.Rows {
		for ci := 0; ci < w.columns; ci++ {
			if !zone.Get(w.zoneID(ri, ci)).InBounds(m) {
				continue
			}
			ev, ok := w.Event(ri, ci)
			if !ok {
				return
			}
			switch {
			case m.Action == tea.MouseActionRelease && m.Button == tea.MouseButtonLeft:
				if w.OnClick != nil {
					w.OnClick(ev)
				}
			case m.Action == tea.MouseActionMotion:
				if w.lastCell != [2]int{ri, ci} && w.OnMouseOver != nil {
					w.OnMouseOver(ev)
				}
			}
			w.lastCell = [2]int{ri, ci}
			return
		}
	}
}

// Event resolves a rendered cell to its stable row.
func (w *ScrollBoard) Event(renderedRow, column int) (BoardEvent, bool) {
	row, ok := w.carousel.RowAt(renderedRow)
	if !ok || column < 0 || column >= len(row.Data) {
		return BoardEvent{}, false
	}
	return BoardEvent{
		Row:         row.Data,
		Cell:        row.Data[column],
		RowIndex:    row.Index,
		ColumnIndex: column,
	}, true
}

func (w *ScrollBoard) align(i int) string {
	if i < len(w.cfg.Align) {
		return w.cfg.Align[i]
	}
	return "left"
}

func (w *ScrollBoard) View() string {
	if w.closed || !w.size.Valid() {
		return ""
	}

	var lines []string
	if len(w.header) > 0 && w.cfg.HeaderHeight > 0 {
		lines = append(lines, w.renderRow(w.header, w.cfg.HeaderBGC, w.cfg.HeaderHeight, -1, true))
	}
	for ri, row := range w.frame.Rows {
		h := w.heights.Cells(ri)
		if h == 0 {
			continue
		}
		bg := w.cfg.EvenRowBGC
		if row.Index%2 == 1 {
			bg = w.cfg.OddRowBGC
		}
		lines = append(lines, w.renderRow(row.Data, bg, h, ri, false))
	}

	body := lipgloss.NewStyle().
		Width(w.size.Width).
		MaxWidth(w.size.Width).
		Height(w.size.Height).
		MaxHeight(w.size.Height).
		Render(strings.Join(lines, "\n"))
	return zone.Mark(w.id, body)
}

func (w *ScrollBoard) renderRow(cells []string, bg string, height, ri int, header bool) string {
	parts := make([]string, 0, w.columns)
	for ci := 0; ci < w.columns && ci < len(w.widths); ci++ {
		text := ""
		if ci < len(cells) {
			text = cells[ci]
		}
		style := lipgloss.NewStyle().
			Width(w.widths[ci]).
			Height(height).
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("#ffffff"))
		if header {
			style = style.Bold(true)
		}
		if w.cfg.Index && ci == 0 && !header {
			style = style.Foreground(lipgloss.Color(w.cfg.HeaderBGC))
		}
		cell := style.Render(fit(text, w.widths[ci], w.align(ci)))
		if ri >= 0 {
			cell = zone.Mark(w.zoneID(ri, ci), cell)
		}
		parts = append(parts, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
