// Package cotask drives lazy step sequences cooperatively. A Task pulls one
// step at a time from a Sequence, waits the delay the step asks for on a
// Scheduler, and can be paused, resumed and ended from outside without the
// sequence knowing about cancellation.
//
// Tasks are not safe for concurrent use. Every method must be called on the
// goroutine that runs the Scheduler's continuations (the Bubble Tea update
// loop, a Loop, or a test driving a ManualScheduler).
package cotask

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle state of a Task.
type State int

const (
	Running State = iota
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Scheduler arms a continuation to run after a delay.
// Implementations must run fn on the goroutine that owns the tasks.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Sequence is a lazy, possibly infinite source of steps. Next runs one step
// and reports how long the driver waits before pulling the next one.
type Sequence interface {
	Next() (wait time.Duration, done bool, err error)
}

// Stopper is implemented by sequences that hold cleanup work. Stop is called
// exactly once, when the task ends for any reason.
type Stopper interface {
	Stop()
}

// SequenceFunc adapts a function to a Sequence.
type SequenceFunc func() (time.Duration, bool, error)

func (f SequenceFunc) Next() (time.Duration, bool, error) { return f() }

// Task is the handle returned by Start.
type Task struct {
	sched Scheduler
	seq   Sequence
	log   logrus.FieldLogger

	state    State
	waiting  bool   // a continuation is armed and has not fired yet
	token    uint64 // identifies the only continuation allowed to pull
	released bool
	steps    int
	err      error
}

// Option configures a Task.
type Option func(*Task)

// WithLogger sets the logger used to report failed steps.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Task) {
		if l != nil {
			t.log = l
		}
	}
}

// WithName tags log lines with the task name.
func WithName(name string) Option {
	return func(t *Task) {
		t.log = t.log.WithField("task", name)
	}
}

// Start begins pulling steps from seq on the next scheduler tick.
func Start(s Scheduler, seq Sequence, opts ...Option) *Task {
	t := &Task{
		sched: s,
		seq:   seq,
		log:   logrus.StandardLogger(),
		state: Running,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	t.arm(0)
	return t
}

// State returns the current lifecycle state.
func (t *Task) State() State { return t.state }

// Err returns the error that ended the task, if any.
func (t *Task) Err() error { return t.err }

// Steps returns how many steps have been pulled so far.
func (t *Task) Steps() int { return t.steps }

// Pause stops pulling after the in-flight wait. The wait itself is not
// interrupted.
func (t *Task) Pause() {
	if t.state == Running {
		t.state = Paused
	}
}

// Resume restarts pulling. If the last wait already elapsed the next step is
// pulled on the next tick; otherwise it is pulled when that wait fires.
func (t *Task) Resume() {
	if t.state != Paused {
		return
	}
	t.state = Running
	if !t.waiting {
		t.arm(0)
	}
}

// End stops the task for good and releases the sequence. Armed continuations
// become no-ops.
func (t *Task) End() {
	if t.state == Ended {
		return
	}
	t.state = Ended
	t.token++
	t.waiting = false
	t.release()
}

func (t *Task) arm(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.token++
	tok := t.token
	t.waiting = true
	t.sched.After(d, func() { t.wake(tok) })
}

func (t *Task) wake(tok uint64) {
	if tok != t.token || t.state == Ended {
		return
	}
	t.waiting = false
	if t.state == Paused {
		return
	}
	t.pull()
}

func (t *Task) pull() {
	wait, done, err := t.next()
	if !done || err != nil {
		t.steps++
	}

	// the step may have ended or paused its own task
	if t.state == Ended {
		return
	}
	if err != nil {
		t.err = err
		t.log.WithError(err).Warn("task step failed, task ended")
		t.finish()
		return
	}
	if done {
		t.finish()
		return
	}
	t.arm(wait)
}

func (t *Task) next() (wait time.Duration, done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()
	return t.seq.Next()
}

func (t *Task) finish() {
	t.state = Ended
	t.token++
	t.waiting = false
	t.release()
}

func (t *Task) release() {
	if t.released {
		return
	}
	t.released = true
	if s, ok := t.seq.(Stopper); ok {
		s.Stop()
	}
}
