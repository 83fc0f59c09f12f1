package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"datav/internal/cotask"
)

// Scheduler is a cotask.Scheduler whose timers travel through the Bubble Tea
// update loop. Cmd drains the commands armed since the last call; Handle runs
// the continuation carried by a message addressed to this scheduler.
type Scheduler interface {
	cotask.Scheduler
	Cmd() tea.Cmd
	Handle(msg tea.Msg) bool
}

// WakeMsg carries a due continuation back into Update.
type WakeMsg struct {
	Owner string
	Seq   uint64
}

// Clock is the Bubble Tea Scheduler. Every continuation runs on the
// goroutine that calls Update, so widget state needs no locking.
type Clock struct {
	id      string
	seq     uint64
	pending map[uint64]func()
	cmds    []tea.Cmd
}

func NewClock() *Clock {
	return &Clock{
		id:      uuid.NewString(),
		pending: make(map[uint64]func()),
	}
}

// ID identifies the clock in WakeMsg.Owner.
func (c *Clock) ID() string { return c.id }

func (c *Clock) After(d time.Duration, fn func()) {
	c.seq++
	seq, owner := c.seq, c.id
	c.pending[seq] = fn
	if d <= 0 {
		c.cmds = append(c.cmds, func() tea.Msg { return WakeMsg{Owner: owner, Seq: seq} })
		return
	}
	c.cmds = append(c.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return WakeMsg{Owner: owner, Seq: seq}
	}))
}

func (c *Clock) Cmd() tea.Cmd {
	if len(c.cmds) == 0 {
		return nil
	}
	cmds := c.cmds
	c.cmds = nil
	return tea.Batch(cmds...)
}

func (c *Clock) Handle(msg tea.Msg) bool {
	w, ok := msg.(WakeMsg)
	if !ok || w.Owner != c.id {
		return false
	}
	fn, ok := c.pending[w.Seq]
	if !ok {
		return true
	}
	delete(c.pending, w.Seq)
	fn()
	return true
}

// Pending returns the number of armed continuations.
func (c *Clock) Pending() int { return len(c.pending) }

// Drop forgets every armed continuation. Ticks already in flight arrive as
// no-ops.
func (c *Clock) Drop() {
	c.pending = make(map[uint64]func())
	c.cmds = nil
}
