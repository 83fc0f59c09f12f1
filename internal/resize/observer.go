// Package resize reports the size of a widget's container at a bounded rate.
package resize

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"datav/internal/cotask"
)

// DefaultDebounce is the quiet period between the last trigger and the
// measurement it causes.
const DefaultDebounce = 100 * time.Millisecond

// Size is a content box in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Measurer returns the current container size. ok is false when the
// container is not mounted.
type Measurer func() (size Size, ok bool)

// Observer emits debounced container sizes to a callback.
type Observer struct {
	sched    cotask.Scheduler
	measure  Measurer
	onResize func(Size)
	debounce time.Duration
	log      logrus.FieldLogger

	gen      uint64
	attached bool
	detached bool
	last     Size
	count    int
}

type Option func(*Observer)

func WithDebounce(d time.Duration) Option {
	return func(o *Observer) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Observer) {
		if l != nil {
			o.log = l
		}
	}
}

func New(sched cotask.Scheduler, measure Measurer, onResize func(Size), opts ...Option) *Observer {
	o := &Observer{
		sched:    sched,
		measure:  measure,
		onResize: onResize,
		debounce: DefaultDebounce,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Attach starts observing and measures immediately.
func (o *Observer) Attach() {
	if o.attached || o.detached {
		return
	}
	o.attached = true
	o.measureNow()
}

// Trigger reports a container or viewport change. Bursts collapse into one
// measurement DefaultDebounce after the last trigger.
func (o *Observer) Trigger() {
	if !o.attached || o.detached {
		return
	}
	o.gen++
	gen := o.gen
	o.sched.After(o.debounce, func() {
		if gen != o.gen || o.detached {
			return
		}
		o.measureNow()
	})
}

// ForceMeasure asks for a re-check after the owner changed the layout
// itself. It is debounced like any other trigger.
func (o *Observer) ForceMeasure() { o.Trigger() }

// Detach stops observing. Pending measurements are dropped.
func (o *Observer) Detach() {
	o.detached = true
	o.gen++
}

// Size returns the last emitted size.
func (o *Observer) Size() Size { return o.last }

// Measurements returns how many sizes have been emitted.
func (o *Observer) Measurements() int { return o.count }

func (o *Observer) measureNow() {
	var size Size
	ok := false
	if o.measure != nil {
		size, ok = o.measure()
	}
	switch {
	case !ok:
		size = Size{}
		o.log.Warn("container not mounted, emitting 0x0")
	case !size.Valid():
		o.log.WithField("size", size.String()).Warn("container has a zero dimension")
	}
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	o.last = size
	o.count++
	if o.onResize != nil {
		o.onResize(size)
	}
}

// OnValidChange wraps fn so it only runs for valid sizes that differ from the
// last one it saw. Geometry pipelines use it to skip redundant recomputes.
func OnValidChange(fn func(Size)) func(Size) {
	var seen Size
	return func(s Size) {
		if !s.Valid() || s == seen {
			return
		}
		seen = s
		fn(s)
	}
}
