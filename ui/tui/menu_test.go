package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"datav/internal/collector"
	"datav/internal/config"
	"datav/internal/feed"
	"datav/ui/tui/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockSampler for testing
type MockSampler struct{}

func (m MockSampler) PullOnce(ctx context.Context) (feed.Snapshot, error) {
	return feed.Build(collector.RawStats{}), nil
}

func newTestModel() MainModel {
	log, _ := test.NewNullLogger()
	return InitialModel(MockSampler{}, config.Defaults(), WithLogger(log))
}

func TestMenuNavigation(t *testing.T) {
	model := newTestModel()

	// Initial state
	if model.menuCursor != 0 {
		t.Errorf("Expected initial menu cursor 0, got %d", model.menuCursor)
	}
	if model.state.CurrentPage != state.PageMenu {
		t.Errorf("Expected initial page PageMenu, got %v", model.state.CurrentPage)
	}

	// Test Down Navigation
	cmd := tea.KeyMsg{Type: tea.KeyDown, Runes: []rune{}, Alt: false}
	updatedModel, _ := model.Update(cmd)
	m := updatedModel.(*MainModel)

	if m.menuCursor != 1 {
		t.Errorf("Expected menu cursor 1 after Down key, got %d", m.menuCursor)
	}

	// Test Up Navigation
	cmd = tea.KeyMsg{Type: tea.KeyUp, Runes: []rune{}, Alt: false}
	updatedModel, _ = m.Update(cmd)
	m = updatedModel.(*MainModel)

	if m.menuCursor != 0 {
		t.Errorf("Expected menu cursor 0 after Up key, got %d", m.menuCursor)
	}
}

func TestMenuCursorStopsAtLastPage(t *testing.T) {
	model := newTestModel()
	var m tea.Model = &model
	for i := 0; i < len(state.Pages)+3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.(*MainModel).menuCursor; got != len(state.Pages)-1 {
		t.Errorf("Expected menu cursor %d, got %d", len(state.Pages)-1, got)
	}
}

func TestMenuAnimationLogic(t *testing.T) {
	model := newTestModel()

	// Move cursor to 1
	model.menuCursor = 1

	// Initial animation cursor should be 0
	if model.animCursor != 0 {
		t.Errorf("Expected initial animCursor 0, got %f", model.animCursor)
	}

	// Frame 1
	animateMsg := AnimateMsg(time.Now())
	updatedModel, _ := model.Update(animateMsg)
	m := updatedModel.(*MainModel)

	if m.animCursor <= 0 {
		t.Errorf("Expected animCursor to increase after animation frame, got %f", m.animCursor)
	}
	if m.animCursor >= 1.0 {
		t.Errorf("Expected animCursor to not reach target immediately, got %f", m.animCursor)
	}

	// Frame 2
	updatedModel, _ = m.Update(animateMsg)
	m = updatedModel.(*MainModel)
	prevCursor := m.animCursor

	// Frame 3
	updatedModel, _ = m.Update(animateMsg)
	m = updatedModel.(*MainModel)

	if m.animCursor <= prevCursor {
		t.Errorf("Expected animCursor to continue increasing, got %f (prev %f)", m.animCursor, prevCursor)
	}
}

func TestPageTransition(t *testing.T) {
	model := newTestModel()

	// Select first item (Event Log)
	model.menuCursor = 0
	cmd := tea.KeyMsg{Type: tea.KeyEnter, Runes: []rune{}, Alt: false}
	updatedModel, _ := model.Update(cmd)
	m := updatedModel.(*MainModel)

	if m.state.CurrentPage != state.PageEvents {
		t.Errorf("Expected page to change to PageEvents, got %v", m.state.CurrentPage)
	}

	// Go Back
	cmd = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: false}
	updatedModel, _ = m.Update(cmd)
	m = updatedModel.(*MainModel)

	if m.state.CurrentPage != state.PageMenu {
		t.Errorf("Expected page to change back to PageMenu, got %v", m.state.CurrentPage)
	}
}

func TestEveryMenuEntryOpensItsPage(t *testing.T) {
	for i, page := range state.Pages {
		t.Run(page.Title(), func(t *testing.T) {
			model := newTestModel()
			model.menuCursor = i
			updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
			if got := updated.(*MainModel).state.CurrentPage; got != page {
				t.Errorf("Expected page %v, got %v", page, got)
			}
		})
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	model := newTestModel()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	updated, _ := model.Update(space)
	m := updated.(*MainModel)
	if !m.state.Paused {
		t.Errorf("Expected paused after space")
	}
	if len(m.state.Events) != 1 || !strings.Contains(m.state.Events[0], "paused") {
		t.Errorf("Expected a pause event, got %v", m.state.Events)
	}

	updated, _ = m.Update(space)
	m = updated.(*MainModel)
	if m.state.Paused {
		t.Errorf("Expected resumed after second space")
	}
}

func TestSampleUpdatesState(t *testing.T) {
	model := newTestModel()
	snap := feed.Build(collector.RawStats{CPUUsage: 42})

	updated, _ := model.Update(SampleMsg{Snapshot: snap})
	m := updated.(*MainModel)
	if m.state.LastUpdate.IsZero() {
		t.Errorf("Expected LastUpdate to be set")
	}
	if m.state.Snapshot.Stats.CPUUsage != 42 {
		t.Errorf("Expected CPU 42, got %f", m.state.Snapshot.Stats.CPUUsage)
	}
}

func TestTickPollsOnlyWithSampler(t *testing.T) {
	log, _ := test.NewNullLogger()
	pushed := InitialModel(nil, config.Defaults(), WithLogger(log))
	t.Cleanup(pushed.gallery.Close)

	if cmd := pushed.nextTick(); cmd != nil {
		t.Errorf("Expected no tick without a sampler")
	}
	if _, cmd := pushed.Update(TickMsg(time.Now())); cmd != nil {
		t.Errorf("Expected tick to schedule nothing without a sampler")
	}

	polled := newTestModel()
	t.Cleanup(polled.gallery.Close)
	if cmd := polled.nextTick(); cmd == nil {
		t.Errorf("Expected next tick with a sampler")
	}
}

func TestSampleErrorIsLoggedOnce(t *testing.T) {
	model := newTestModel()
	var m tea.Model = &model
	boom := errors.New("boom")

	m, _ = m.Update(SampleMsg{Err: boom})
	m, _ = m.Update(SampleMsg{Err: boom})
	mm := m.(*MainModel)
	if !errors.Is(mm.state.Err, boom) {
		t.Errorf("Expected state error boom, got %v", mm.state.Err)
	}
	if len(mm.state.Events) != 1 {
		t.Errorf("Expected one event for repeated failures, got %d", len(mm.state.Events))
	}

	m, _ = m.Update(SampleMsg{Snapshot: feed.Build(collector.RawStats{})})
	mm = m.(*MainModel)
	if mm.state.Err != nil {
		t.Errorf("Expected error cleared, got %v", mm.state.Err)
	}
}

func TestPageViewFitsWindow(t *testing.T) {
	model := newTestModel()
	var m tea.Model = &model
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	mm := m.(*MainModel)
	mm.menuCursor = 1
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	out := m.View()
	if !strings.Contains(out, state.PageDashboard.Title()) {
		t.Errorf("Expected page title in view")
	}
	if lines := strings.Count(out, "\n") + 1; lines > 30 {
		t.Errorf("Expected at most 30 lines, got %d", lines)
	}
}
