package cotask

import "time"

// Step is one unit of work in a Script. It returns how long to wait before
// the next step.
type Step func() (time.Duration, error)

// Sleep is a step that only waits.
func Sleep(d time.Duration) Step {
	return func() (time.Duration, error) { return d, nil }
}

// Do wraps a side effect that never waits or fails.
func Do(fn func()) Step {
	return func() (time.Duration, error) {
		fn()
		return 0, nil
	}
}

// Script is a Sequence made of a prelude that runs once followed by an
// optional body that repeats forever.
type Script struct {
	prelude []Step
	body    []Step
	pos     int
	looping bool
	onStop  func()
	stopped bool
}

// NewScript returns a script running steps once, in order.
func NewScript(steps ...Step) *Script {
	return &Script{prelude: steps}
}

// Repeat sets the steps that loop after the prelude.
func (s *Script) Repeat(body ...Step) *Script {
	s.body = body
	return s
}

// OnStop registers cleanup run once when the owning task ends.
func (s *Script) OnStop(fn func()) *Script {
	s.onStop = fn
	return s
}

func (s *Script) Next() (time.Duration, bool, error) {
	if s.stopped {
		return 0, true, nil
	}
	if !s.looping {
		if s.pos < len(s.prelude) {
			step := s.prelude[s.pos]
			s.pos++
			return run(step)
		}
		if len(s.body) == 0 {
			return 0, true, nil
		}
		s.looping = true
		s.pos = 0
	}
	step := s.body[s.pos]
	s.pos = (s.pos + 1) % len(s.body)
	return run(step)
}

func (s *Script) Stop() {
	if s.stopped {
		return
	}
	s.stopped = true
	if s.onStop != nil {
		s.onStop()
	}
}

func run(step Step) (time.Duration, bool, error) {
	if step == nil {
		return 0, false, nil
	}
	wait, err := step()
	return wait, false, err
}
