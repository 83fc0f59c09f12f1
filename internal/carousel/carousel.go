// Package carousel keeps a fixed number of rows visible while cycling through
// a longer list. A Scheduler owns the window position and the per-row heights
// that renderers blend between, and drives them with a cotask.Task.
//
// Each cycle first renders the old window at full height (Advancing), then
// collapses the rows sliding out after the transition, then waits out the
// rest of the cadence (Waiting).
package carousel

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"datav/internal/cotask"
)

const (
	DefaultCadence    = 2 * time.Second
	DefaultTransition = 300 * time.Millisecond
	DefaultRowNum     = 5
)

type Mode string

const (
	Single Mode = "single"
	Page   Mode = "page"
)

type Phase int

const (
	Idle Phase = iota
	Waiting
	Advancing
	Paused
	Destroyed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Advancing:
		return "advancing"
	case Paused:
		return "paused"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Row is one entry of the backing list. Index is the position in the data the
// caller supplied, Scroll the position in the (possibly duplicated) list.
type Row[T any] struct {
	Data   T
	Index  int
	Scroll int
}

type Options struct {
	RowNum     int
	Mode       Mode
	Cadence    time.Duration
	Transition time.Duration
	HoverPause bool
	Logger     logrus.FieldLogger
}

// DefaultOptions matches the board defaults: five rows, single-row steps,
// a two second cadence and hover pause.
func DefaultOptions() Options {
	return Options{
		RowNum:     DefaultRowNum,
		Mode:       Single,
		Cadence:    DefaultCadence,
		Transition: DefaultTransition,
		HoverPause: true,
	}
}

// Frame is a snapshot handed to renderers after every change.
type Frame[T any] struct {
	Rows        []Row[T]
	Heights     []int
	WindowStart int
	Phase       Phase
	Cycle       int
	Collapsed   bool
}

// BuildRows wraps data into rows. A list longer than rowNum but shorter than
// twice rowNum is duplicated once so wrapping never shows a seam.
func BuildRows[T any](data []T, rowNum int) []Row[T] {
	n := len(data)
	total := n
	if n > rowNum && n < 2*rowNum {
		total = 2 * n
	}
	rows := make([]Row[T], total)
	for i := range rows {
		rows[i] = Row[T]{Data: data[i%n], Index: i % n, Scroll: i}
	}
	return rows
}

// Scheduler is the carousel of one widget. It is not safe for concurrent
// use; call it from the goroutine that runs the cotask.Scheduler.
type Scheduler[T any] struct {
	sched   cotask.Scheduler
	opts    Options
	log     logrus.FieldLogger
	onFrame func(Frame[T])

	data        []T
	rows        []Row[T]
	visible     []Row[T]
	heights     []int
	rowHeight   int
	windowStart int
	cycles      int
	collapsed   bool
	phase       Phase

	task      *cotask.Task
	gen       uint64
	hovered   bool
	held      bool
	destroyed bool
}

func New[T any](sched cotask.Scheduler, opts Options, onFrame func(Frame[T])) *Scheduler[T] {
	s := &Scheduler[T]{
		sched:     sched,
		onFrame:   onFrame,
		rowHeight: 1,
	}
	s.setOptions(opts)
	return s
}

func (s *Scheduler[T]) setOptions(opts Options) {
	if opts.RowNum < 1 {
		opts.RowNum = 1
	}
	if opts.Mode != Page {
		opts.Mode = Single
	}
	if opts.Transition < 0 {
		opts.Transition = 0
	}
	if opts.Cadence < opts.Transition {
		opts.Cadence = opts.Transition
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	s.opts = opts
	s.log = opts.Logger
}

// SetData replaces the rows and restarts the cycle from the first row.
func (s *Scheduler[T]) SetData(data []T) {
	if s.destroyed {
		return
	}
	s.data = append([]T(nil), data...)
	s.restart()
}

// SetOptions replaces the options and restarts the cycle.
func (s *Scheduler[T]) SetOptions(opts Options) {
	if s.destroyed {
		return
	}
	s.setOptions(opts)
	s.restart()
}

// SetRowHeight sets the settled height of one row. Non-positive heights
// render rows at zero height.
func (s *Scheduler[T]) SetRowHeight(h int) {
	if s.destroyed {
		return
	}
	if h < 0 {
		h = 0
	}
	if h == s.rowHeight {
		return
	}
	s.rowHeight = h
	for i, v := range s.heights {
		if v > 0 || !s.collapsed || i >= s.step() {
			s.heights[i] = h
		}
	}
	s.emit()
}

// Hover reports the pointer entering or leaving the widget.
func (s *Scheduler[T]) Hover(inside bool) {
	if s.destroyed || s.hovered == inside {
		return
	}
	s.hovered = inside
	s.syncPause()
}

// Hold pauses the carousel regardless of hover, until released.
func (s *Scheduler[T]) Hold(held bool) {
	if s.destroyed || s.held == held {
		return
	}
	s.held = held
	s.syncPause()
}

func (s *Scheduler[T]) shouldPause() bool {
	return s.held || (s.hovered && s.opts.HoverPause)
}

func (s *Scheduler[T]) syncPause() {
	if s.task == nil {
		return
	}
	if s.shouldPause() {
		s.task.Pause()
	} else {
		s.task.Resume()
	}
	s.emit()
}

// Destroy stops the carousel for good.
func (s *Scheduler[T]) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.gen++
	if s.task != nil {
		s.task.End()
		s.task = nil
	}
	s.phase = Destroyed
}

// RowAt resolves a rendered row index to the row it shows.
func (s *Scheduler[T]) RowAt(i int) (Row[T], bool) {
	if i < 0 || i >= len(s.visible) {
		var zero Row[T]
		return zero, false
	}
	return s.visible[i], true
}

func (s *Scheduler[T]) WindowStart() int { return s.windowStart }

func (s *Scheduler[T]) Cycles() int { return s.cycles }

// Len returns the length of the backing list.
func (s *Scheduler[T]) Len() int { return len(s.rows) }

func (s *Scheduler[T]) Options() Options { return s.opts }

func (s *Scheduler[T]) Phase() Phase {
	if s.destroyed {
		return Destroyed
	}
	if s.task != nil && s.task.State() == cotask.Paused {
		return Paused
	}
	return s.phase
}

func (s *Scheduler[T]) Frame() Frame[T] {
	return Frame[T]{
		Rows:        append([]Row[T](nil), s.visible...),
		Heights:     append([]int(nil), s.heights...),
		WindowStart: s.windowStart,
		Phase:       s.Phase(),
		Cycle:       s.cycles,
		Collapsed:   s.collapsed,
	}
}

func (s *Scheduler[T]) step() int {
	if s.opts.Mode == Page {
		return s.opts.RowNum
	}
	return 1
}

func (s *Scheduler[T]) restart() {
	if s.task != nil {
		s.task.End()
		s.task = nil
	}
	s.gen++
	s.rows = BuildRows(s.data, s.opts.RowNum)
	s.windowStart = 0
	s.cycles = 0
	s.collapsed = false

	if len(s.data) <= s.opts.RowNum {
		s.visible = append([]Row[T](nil), s.rows...)
		s.heights = s.fullHeights(len(s.visible))
		s.phase = Idle
		s.emit()
		return
	}

	s.visible = s.window(0)
	s.heights = s.fullHeights(len(s.visible))
	s.phase = Waiting
	s.task = cotask.Start(s.sched, s.sequence(s.gen),
		cotask.WithLogger(s.log), cotask.WithName("carousel"))
	if s.shouldPause() {
		s.task.Pause()
	}
	s.emit()
}

func (s *Scheduler[T]) sequence(gen uint64) cotask.Sequence {
	settle := s.opts.Cadence - s.opts.Transition
	live := func() bool { return !s.destroyed && gen == s.gen }

	advance := func() (time.Duration, error) {
		if !live() {
			return 0, nil
		}
		s.phase = Advancing
		s.visible = s.window(s.windowStart)
		s.heights = s.fullHeights(len(s.visible))
		s.collapsed = false
		s.windowStart = (s.windowStart + s.step()) % len(s.rows)
		s.cycles++
		s.emit()
		return s.opts.Transition, nil
	}
	collapse := func() (time.Duration, error) {
		if !live() {
			return 0, nil
		}
		for i := 0; i < s.step() && i < len(s.heights); i++ {
			s.heights[i] = 0
		}
		s.collapsed = true
		s.phase = Waiting
		s.emit()
		return settle, nil
	}

	return cotask.NewScript(cotask.Sleep(s.opts.Cadence)).Repeat(advance, collapse)
}

// window returns the rendered rows starting at start: the settled rows plus
// the ones that slide in on the next advance.
func (s *Scheduler[T]) window(start int) []Row[T] {
	count := s.opts.RowNum + s.step()
	if count > len(s.rows) {
		count = len(s.rows)
	}
	out := make([]Row[T], count)
	for i := range out {
		out[i] = s.rows[(start+i)%len(s.rows)]
	}
	return out
}

func (s *Scheduler[T]) fullHeights(n int) []int {
	h := make([]int, n)
	for i := range h {
		h[i] = s.rowHeight
	}
	return h
}

func (s *Scheduler[T]) emit() {
	if s.destroyed || s.onFrame == nil {
		return
	}
	s.onFrame(s.Frame())
}
