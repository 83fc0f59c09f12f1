package tui

import (
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"datav/internal/collector"
	"datav/internal/config"
	"datav/internal/feed"
	"datav/ui/tui/state"
)

func newTestGallery(t *testing.T) *gallery {
	log, _ := test.NewNullLogger()
	g := newGallery(config.Defaults(), log)
	t.Cleanup(g.Close)
	return g
}

func TestSplit(t *testing.T) {
	tests := []struct {
		total    int
		weights  []int
		expected []int
	}{
		{10, []int{1, 1}, []int{5, 5}},
		{10, []int{1, 2}, []int{3, 7}},
		{7, []int{1, 1, 1}, []int{2, 2, 3}},
		{0, []int{1, 1}, []int{0, 0}},
		{5, []int{0, 0}, []int{0, 0}},
	}

	for _, tt := range tests {
		result := split(tt.total, tt.weights)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("split(%d, %v) = %v; want %v", tt.total, tt.weights, result, tt.expected)
		}
	}
}

func TestEveryWidgetPageHasCells(t *testing.T) {
	g := newTestGallery(t)
	for _, p := range state.Pages {
		if p == state.PageEvents {
			continue
		}
		rows := g.rows(p)
		if len(rows) == 0 {
			t.Errorf("Expected rows for page %v", p.Title())
		}
		for _, r := range rows {
			for _, c := range r.cells {
				if c.w == nil {
					t.Errorf("Expected every cell of %v to hold a widget", p.Title())
				}
			}
		}
	}
}

func TestGalleryFramesEveryBorderVariant(t *testing.T) {
	g := newTestGallery(t)
	assert.Len(t, g.frames, 13)
	assert.Len(t, g.ornaments, 12)
	assert.NotNil(t, g.loading)
	assert.Len(t, g.roots, len(g.panels)+len(g.frames))
}

func TestApplyRefreshesSlowWidgetsSparingly(t *testing.T) {
	g := newTestGallery(t)
	snap := feed.Build(collector.RawStats{CPUUsage: 12})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	g.Apply(snap, start)
	assert.Equal(t, start, g.lastSlow)

	g.Apply(snap, start.Add(time.Second))
	assert.Equal(t, start, g.lastSlow, "slow widgets must keep their cycle between samples")

	g.Apply(snap, start.Add(slowRefresh))
	assert.Equal(t, start.Add(slowRefresh), g.lastSlow)
}

func TestDrainEventsForgets(t *testing.T) {
	g := newTestGallery(t)
	g.emit("one")
	g.emit("two")
	assert.Equal(t, []string{"one", "two"}, g.drainEvents())
	assert.Empty(t, g.drainEvents())
}

func TestDemoRoutesOnlyWhenEmpty(t *testing.T) {
	cfg := withDemoRoutes(config.DefaultFlyLineChart())
	assert.Len(t, cfg.Points, 5)
	assert.Len(t, cfg.Lines, 4)

	custom := config.DefaultFlyLineChart()
	custom.Points = []config.FlyPoint{{Name: "a"}}
	assert.Equal(t, custom, withDemoRoutes(custom))
}
