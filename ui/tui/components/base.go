package components

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"datav/internal/resize"
)

var zoneOnce sync.Once

// EnsureZones creates the global bubblezone manager once. Widgets mark their
// hit areas with it; the root view must zone.Scan its output.
func EnsureZones() {
	zoneOnce.Do(func() { zone.NewGlobal() })
}

// Option configures the shared parts of a widget.
type Option func(*base)

// WithScheduler replaces the Bubble Tea clock, mainly for tests.
func WithScheduler(s Scheduler) Option {
	return func(b *base) {
		if s != nil {
			b.clock = s
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *base) {
		if l != nil {
			b.log = l
		}
	}
}

// base is embedded by every widget: identity, timers, logging and the
// debounced container size.
type base struct {
	id    string
	clock Scheduler
	log   logrus.FieldLogger

	box      resize.Size
	mounted  bool
	attached bool
	size     resize.Size
	observer *resize.Observer
	closed   bool
}

func newBase(kind string, opts []Option) base {
	EnsureZones()
	b := base{
		id:    kind + "-" + uuid.NewString(),
		clock: NewClock(),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	b.log = b.log.WithField("widget", kind)
	return b
}

// observe wires the resize observer. It must be called on the final widget
// pointer so the callbacks see the live struct.
func (b *base) observe(layout func(resize.Size)) {
	b.observer = resize.New(b.clock, b.measure, resize.OnValidChange(func(s resize.Size) {
		if b.closed {
			return
		}
		b.size = s
		layout(s)
	}), resize.WithLogger(b.log))
}

func (b *base) measure() (resize.Size, bool) {
	return b.box, b.mounted
}

// ID is the widget's zone id.
func (b *base) ID() string { return b.id }

// Size returns the last valid size the widget laid itself out for.
func (b *base) Size() resize.Size { return b.size }

// SetSize assigns the container box. The first call mounts the widget and
// lays it out at once; later calls are debounced.
func (b *base) SetSize(width, height int) tea.Cmd {
	if b.closed {
		return nil
	}
	b.box = resize.Size{Width: width, Height: height}
	b.mounted = true
	if !b.attached {
		b.attached = true
		b.observer.Attach()
	} else {
		b.observer.Trigger()
	}
	return b.clock.Cmd()
}

// handle routes scheduler messages and viewport resizes. It reports whether
// msg was consumed.
func (b *base) handle(msg tea.Msg) bool {
	switch msg.(type) {
	case WakeMsg:
		return b.clock.Handle(msg)
	case tea.WindowSizeMsg:
		if b.attached && !b.closed {
			b.observer.Trigger()
		}
	}
	return false
}

func (b *base) close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.observer != nil {
		b.observer.Detach()
	}
	if c, ok := b.clock.(*Clock); ok {
		c.Drop()
	}
}

func (b *base) zoneID(parts ...int) string {
	id := b.id
	for _, p := range parts {
		id += fmt.Sprintf("-%d", p)
	}
	return id
}
