package tui

import (
	"context"
	"time"

	"datav/internal/config"
	"datav/internal/feed"
	"datav/ui/tui/components"
	"datav/ui/tui/state"
	"datav/ui/tui/views"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"
)

const sampleTimeout = 5 * time.Second

// Sampler produces one widget-ready snapshot per call.
type Sampler interface {
	PullOnce(ctx context.Context) (feed.Snapshot, error)
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	sampler        Sampler
	cfg            config.Dashboard
	log            logrus.FieldLogger
	state          state.AppState
	spinner        spinner.Model
	gallery        *gallery
	history        []float64
	keys           keyMap
	menuCursor     int
	animCursor     float64
	velocity       float64
	spring         harmonica.Spring
	consoleScrollY int
	mouseX         int
	mouseY         int
	quitting       bool
	width          int
	height         int
}

// Messages
type TickMsg time.Time
type AnimateMsg time.Time
type SampleMsg struct {
	Snapshot feed.Snapshot
	Err      error
}

// Option tweaks the model built by InitialModel.
type Option func(*MainModel)

// WithLogger sets the logger handed to the app and every widget.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *MainModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithHistory preloads the CPU line chart, oldest value first.
func WithHistory(values []float64) Option {
	return func(m *MainModel) { m.history = values }
}

func InitialModel(sampler Sampler, cfg config.Dashboard, opts ...Option) MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// stiff enough to keep up with key repeat, damped to avoid overshoot
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	m := MainModel{
		sampler: sampler,
		cfg:     cfg,
		log:     logrus.StandardLogger(),
		spinner: s,
		keys:    newKeyMap(),
		spring:  spring,
		state: state.AppState{
			CurrentPage: state.PageMenu,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	if m.cfg.Refresh <= 0 {
		m.cfg.Refresh = config.Defaults().Refresh
	}
	m.gallery = newGallery(m.cfg, m.log)
	if len(m.history) > 0 {
		m.gallery.cpuLine.SetSeries(m.history)
	}
	return m
}

func (m *MainModel) Init() tea.Cmd {
	components.EnsureZones()
	return tea.Batch(
		m.spinner.Tick,
		m.gallery.Init(),
		sampleCmd(m.sampler),
		m.nextTick(),
		animateCmd(),
	)
}

// Commands

// nextTick schedules the next pull. Without a sampler snapshots are pushed
// through Program.Send, so there is nothing to poll.
func (m *MainModel) nextTick() tea.Cmd {
	if m.sampler == nil {
		return nil
	}
	return tickCmd(m.cfg.Refresh)
}

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func sampleCmd(s Sampler) tea.Cmd {
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()
		snap, err := s.PullOnce(ctx)
		return SampleMsg{Snapshot: snap, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)

	case AnimateMsg:
		cmd = m.handleAnimateMsg()

	case tea.WindowSizeMsg:
		cmd = m.handleWindowSizeMsg(msg)

	case TickMsg:
		cmd = tea.Batch(sampleCmd(m.sampler), m.nextTick())

	case SampleMsg:
		cmd = m.handleSampleMsg(msg)

	case spinner.TickMsg:
		var sc tea.Cmd
		m.spinner, sc = m.spinner.Update(msg)
		cmd = tea.Batch(sc, m.gallery.Update(msg))

	case tea.MouseMsg:
		cmd = m.handleMouseMsg(msg)

	default:
		cmd = m.gallery.Update(msg)
	}

	now := time.Now()
	for _, line := range m.gallery.drainEvents() {
		m.state.Log(now, line)
	}
	return m, cmd
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.gallery.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Pause):
		return m.togglePause()
	}

	if m.state.CurrentPage == state.PageMenu {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.menuCursor < len(state.Pages)-1 {
				m.menuCursor++
			}
		case key.Matches(msg, m.keys.Select):
			return m.navigateTo(m.menuCursor)
		}
		return nil
	}

	if m.state.CurrentPage == state.PageEvents {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.consoleScrollY > 0 {
				m.consoleScrollY--
			}
		case key.Matches(msg, m.keys.Down):
			m.consoleScrollY++
		}
	}

	if key.Matches(msg, m.keys.Back) {
		m.state.CurrentPage = state.PageMenu
		m.consoleScrollY = 0
	}
	return nil
}

func (m *MainModel) togglePause() tea.Cmd {
	m.state.Paused = !m.state.Paused
	if m.state.Paused {
		m.state.Log(time.Now(), "carousels paused")
	} else {
		m.state.Log(time.Now(), "carousels resumed")
	}
	return m.gallery.SetPaused(m.state.Paused)
}

func (m *MainModel) navigateTo(cursor int) tea.Cmd {
	if cursor < 0 || cursor >= len(state.Pages) {
		return nil
	}
	m.state.CurrentPage = state.Pages[cursor]
	return m.layout()
}

// layout sizes the widgets of the current page to the space under the chrome.
func (m *MainModel) layout() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	return m.gallery.Layout(m.state.CurrentPage, m.width, max(m.height-views.ChromeHeight, 0))
}

func (m *MainModel) handleAnimateMsg() tea.Cmd {
	m.animCursor, m.velocity = m.spring.Update(m.animCursor, float64(m.menuCursor), m.velocity)
	return animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	return m.layout()
}

func (m *MainModel) handleSampleMsg(msg SampleMsg) tea.Cmd {
	now := time.Now()
	if msg.Err != nil {
		if m.state.Err == nil {
			m.state.Log(now, "sample failed: "+msg.Err.Error())
		}
		m.state.Err = msg.Err
		m.log.WithError(msg.Err).Warn("sample failed")
		return nil
	}
	if m.state.Err != nil {
		m.state.Log(now, "sampling recovered")
	}
	m.state.Err = nil

	prev := m.state.Snapshot.Status
	m.state.Snapshot = msg.Snapshot
	m.state.LastUpdate = now
	if prev != "" && prev != msg.Snapshot.Status {
		m.state.Log(now, "status "+prev+" -> "+msg.Snapshot.Status)
	}
	return m.gallery.Apply(msg.Snapshot, now)
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if m.state.CurrentPage == state.PageMenu {
		if msg.Action == tea.MouseActionRelease {
			for i := range state.Pages {
				if zone.Get(views.MenuZone(i)).InBounds(msg) {
					m.menuCursor = i
					return m.navigateTo(i)
				}
			}
		}
		return nil
	}
	return m.gallery.Update(msg)
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch m.state.CurrentPage {
	case state.PageMenu:
		return views.RenderMenu(m.width, m.height, m.menuCursor, m.animCursor, m.mouseX, m.mouseY)
	case state.PageEvents:
		return views.RenderEvents(m.state, m.width, m.height, m.consoleScrollY)
	default:
		bodyH := max(m.height-views.ChromeHeight, 0)
		body := m.gallery.View(m.state.CurrentPage, m.width, bodyH)
		return views.RenderPage(m.state, m.spinner.View(), body, m.width, m.height)
	}
}

// Program is a gallery attached to a terminal.
type Program struct {
	model *MainModel
	prog  *tea.Program
}

// NewProgram builds the gallery. A nil sampler turns polling off; snapshots
// then arrive through Send.
func NewProgram(sampler Sampler, cfg config.Dashboard, opts ...Option) *Program {
	m := InitialModel(sampler, cfg, opts...)
	return &Program{
		model: &m,
		prog: tea.NewProgram(
			&m,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		),
	}
}

// Send hands a sample to the running gallery. It blocks until the event loop
// reads it and returns at once after Run has finished.
func (p *Program) Send(msg SampleMsg) {
	p.prog.Send(msg)
}

// Run blocks until the user quits, then releases the widgets.
func (p *Program) Run() error {
	_, err := p.prog.Run()
	p.model.gallery.Close()
	return err
}

// Start runs the gallery until the user quits.
func Start(sampler Sampler, cfg config.Dashboard, opts ...Option) error {
	return NewProgram(sampler, cfg, opts...).Run()
}
