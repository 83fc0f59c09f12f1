package cotask

import (
	"sort"
	"time"
)

// ManualScheduler is a virtual clock. Continuations only run from Advance,
// on the caller's goroutine, in due-time order.
type ManualScheduler struct {
	now     time.Duration
	seq     uint64
	pending []timer
}

type timer struct {
	due time.Duration
	seq uint64
	fn  func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.pending = append(m.pending, timer{due: m.now + d, seq: m.seq, fn: fn})
}

// Now returns the virtual time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration { return m.now }

// Pending returns the number of armed continuations.
func (m *ManualScheduler) Pending() int { return len(m.pending) }

// Advance moves the clock forward by d, running every continuation that comes
// due, including ones armed while advancing.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		i := m.nextDue(target)
		if i < 0 {
			break
		}
		t := m.pending[i]
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
		if t.due > m.now {
			m.now = t.due
		}
		t.fn()
	}
	m.now = target
}

// Flush runs everything due at the current instant.
func (m *ManualScheduler) Flush() { m.Advance(0) }

func (m *ManualScheduler) nextDue(limit time.Duration) int {
	if len(m.pending) == 0 {
		return -1
	}
	idx := make([]int, 0, len(m.pending))
	for i, t := range m.pending {
		if t.due <= limit {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return -1
	}
	sort.Slice(idx, func(a, b int) bool {
		ta, tb := m.pending[idx[a]], m.pending[idx[b]]
		if ta.due != tb.due {
			return ta.due < tb.due
		}
		return ta.seq < tb.seq
	})
	return idx[0]
}
