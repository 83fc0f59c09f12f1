package components

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"datav/internal/cotask"
)

const (
	animFPS      = 30
	animInterval = time.Second / animFPS
	settleDelta  = 0.01
)

// springs eases a set of values toward their targets, one harmonica spring
// per index.
type springs struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	target []float64
}

func newSprings(frequency, damping float64) springs {
	return springs{spring: harmonica.NewSpring(harmonica.FPS(animFPS), frequency, damping)}
}

// Snap jumps straight to targets.
func (s *springs) Snap(targets []float64) {
	s.target = append(s.target[:0], targets...)
	s.pos = append(s.pos[:0], targets...)
	s.vel = make([]float64, len(targets))
}

// Aim sets new targets and keeps the current positions. New indexes start at
// their target.
func (s *springs) Aim(targets []float64) {
	n := len(targets)
	for len(s.pos) < n {
		s.pos = append(s.pos, targets[len(s.pos)])
		s.vel = append(s.vel, 0)
	}
	s.pos = s.pos[:n]
	s.vel = s.vel[:n]
	s.target = append(s.target[:0], targets...)
}

// Step advances every spring by one frame and reports whether any is still
// moving.
func (s *springs) Step() bool {
	moving := false
	for i := range s.pos {
		s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], s.target[i])
		if math.Abs(s.pos[i]-s.target[i]) < settleDelta && math.Abs(s.vel[i]) < settleDelta {
			s.pos[i], s.vel[i] = s.target[i], 0
			continue
		}
		moving = true
	}
	return moving
}

func (s *springs) Settled() bool {
	for i := range s.pos {
		if s.pos[i] != s.target[i] {
			return false
		}
	}
	return true
}

func (s *springs) Len() int { return len(s.pos) }

func (s *springs) Value(i int) float64 {
	if i < 0 || i >= len(s.pos) {
		return 0
	}
	return s.pos[i]
}

// Cells rounds the value at i to whole cells, never below zero.
func (s *springs) Cells(i int) int {
	v := int(math.Round(s.Value(i)))
	if v < 0 {
		return 0
	}
	return v
}

// glide steps springs once per animation frame on a scheduler until they
// settle or the owner reports it stopped.
type glide struct {
	springs
	sched   cotask.Scheduler
	stopped func() bool
	running bool
}

func newGlide(sched cotask.Scheduler, stopped func() bool, frequency, damping float64) glide {
	return glide{springs: newSprings(frequency, damping), sched: sched, stopped: stopped}
}

// Frame follows a carousel frame: settled heights jump, collapsing rows
// ease toward zero.
func (g *glide) Frame(heights []int, collapsed bool) {
	if !collapsed {
		g.Snap(floats(heights))
		return
	}
	g.Aim(floats(heights))
}

// Aim sets new targets and starts stepping if anything has to move.
func (g *glide) Aim(targets []float64) {
	g.springs.Aim(targets)
	if g.running || g.Settled() {
		return
	}
	g.running = true
	g.sched.After(animInterval, g.tick)
}

func (g *glide) tick() {
	g.running = false
	if g.stopped != nil && g.stopped() {
		return
	}
	if g.Step() {
		g.running = true
		g.sched.After(animInterval, g.tick)
	}
}

// Running reports whether a frame is armed.
func (g *glide) Running() bool { return g.running }

func floats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
