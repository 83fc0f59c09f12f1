package tui

import (
	"fmt"

	"datav/internal/config"
	"datav/ui/tui/components"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"
)

// boardModel shows a single framed ScrollBoard filling the terminal.
type boardModel struct {
	root   *components.FullScreenContainer
	board  *components.ScrollBoard
	keys   keyMap
	paused bool
	log    logrus.FieldLogger
}

func newBoardModel(cfg config.ScrollBoard, frame config.BorderBox, designW, designH int, log logrus.FieldLogger) *boardModel {
	opts := []components.Option{components.WithLogger(log)}
	m := &boardModel{keys: newKeyMap(), log: log}
	m.board = components.NewScrollBoard(cfg, opts...)
	m.board.OnClick = func(ev components.BoardEvent) {
		m.log.WithFields(logrus.Fields{
			"row":    ev.RowIndex + 1,
			"column": ev.ColumnIndex,
		}).Info(fmt.Sprintf("clicked %q", ev.Cell))
	}
	box := components.NewBorderBox(frame, m.board, opts...)
	m.root = components.NewFullScreenContainer(box, designW, designH, opts...)
	return m
}

func (m *boardModel) Init() tea.Cmd {
	components.EnsureZones()
	return m.root.Init()
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			m.root.Close()
			return m, tea.Quit
		case key.Matches(k, m.keys.Pause):
			m.paused = !m.paused
			return m, m.root.SetPaused(m.paused)
		}
	}
	_, cmd := m.root.Update(msg)
	return m, cmd
}

func (m *boardModel) View() string {
	return zone.Scan(m.root.View())
}

// RunBoard shows one ScrollBoard until the user quits. A zero design size
// lets the board fill the window.
func RunBoard(cfg config.ScrollBoard, frame config.BorderBox, designW, designH int, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := newBoardModel(cfg, frame, designW, designH, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.root.Close()
	return err
}
