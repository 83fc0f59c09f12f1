package carousel

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datav/internal/cotask"
)

func testOptions(rowNum int, mode Mode) Options {
	l := logrus.New()
	l.SetOutput(io.Discard)
	opts := DefaultOptions()
	opts.RowNum = rowNum
	opts.Mode = mode
	opts.Logger = l
	return opts
}

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

type frameSpy struct {
	frames []Frame[int]
}

func (f *frameSpy) record(fr Frame[int]) { f.frames = append(f.frames, fr) }

func (f *frameSpy) last() Frame[int] { return f.frames[len(f.frames)-1] }

func TestShortListStaysIdle(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5} {
		clock := cotask.NewManualScheduler()
		spy := &frameSpy{}
		c := New(clock, testOptions(5, Single), spy.record)
		c.SetData(numbers(n))
		clock.Advance(time.Minute)

		assert.Equal(t, Idle, c.Phase(), "n=%d", n)
		assert.Equal(t, 0, c.Cycles())
		assert.Equal(t, 0, clock.Pending())
		require.Len(t, spy.frames, 1)

		rows := spy.last().Rows
		require.Len(t, rows, n)
		for i, r := range rows {
			assert.Equal(t, i, r.Data)
		}
	}
}

func TestBuildRowsDuplicatesMidSizedLists(t *testing.T) {
	tests := []struct {
		n, rowNum, expected int
	}{
		{7, 5, 14},
		{6, 5, 12},
		{9, 5, 18},
		{10, 5, 10},
		{12, 5, 12},
		{5, 5, 5},
		{3, 5, 3},
	}
	for _, tt := range tests {
		rows := BuildRows(numbers(tt.n), tt.rowNum)
		if len(rows) != tt.expected {
			t.Errorf("Expected %d rows for n=%d rowNum=%d, got %d", tt.expected, tt.n, tt.rowNum, len(rows))
		}
	}

	rows := BuildRows(numbers(7), 5)
	assert.Equal(t, 0, rows[7].Index)
	assert.Equal(t, 7, rows[7].Scroll)
	assert.Equal(t, 6, rows[13].Data)
}

func TestSingleModeAdvancesOneRowPerCycle(t *testing.T) {
	clock := cotask.NewManualScheduler()
	spy := &frameSpy{}
	c := New(clock, testOptions(5, Single), spy.record)
	c.SetData(numbers(12))

	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, c.WindowStart())
	assert.Equal(t, Waiting, c.Phase())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, c.WindowStart())
	assert.Equal(t, Advancing, c.Phase())
	fr := spy.last()
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1}, fr.Heights)
	assert.Equal(t, 0, fr.Rows[0].Data, "advance renders the old window")

	clock.Advance(DefaultTransition)
	fr = spy.last()
	assert.True(t, fr.Collapsed)
	assert.Equal(t, Waiting, fr.Phase)
	assert.Equal(t, []int{0, 1, 1, 1, 1, 1}, fr.Heights)

	for k := 2; k <= 12; k++ {
		clock.Advance(DefaultCadence)
		assert.Equal(t, k%12, c.WindowStart(), "after %d cycles", k)
	}
	assert.Equal(t, 12, c.Cycles())
	assert.Equal(t, 0, c.WindowStart())
}

func TestPageModeAdvancesWholeWindow(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(5, Page), nil)
	c.SetData(numbers(7))
	require.Equal(t, 14, c.Len())

	for k := 1; k <= 6; k++ {
		clock.Advance(DefaultCadence)
		assert.Equal(t, (k*5)%14, c.WindowStart(), "after %d cycles", k)
	}

	clock.Advance(DefaultTransition)
	fr := c.Frame()
	require.Len(t, fr.Heights, 10)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}, fr.Heights)
}

func TestHoverPausesBetweenCycles(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(5, Single), nil)
	c.SetData(numbers(12))

	clock.Advance(time.Second)
	c.Hover(true)
	assert.Equal(t, Paused, c.Phase())

	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, c.WindowStart(), "no advance while hovered")

	c.Hover(false)
	clock.Flush()
	assert.Equal(t, 1, c.WindowStart(), "the overdue advance runs right after leaving")
	assert.Equal(t, Advancing, c.Phase())
}

func TestHoverDuringTransitionDefersCollapse(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(5, Single), nil)
	c.SetData(numbers(12))

	clock.Advance(2100 * time.Millisecond)
	c.Hover(true)
	clock.Advance(time.Second)
	assert.False(t, c.Frame().Collapsed)

	c.Hover(false)
	clock.Flush()
	assert.True(t, c.Frame().Collapsed)
	assert.Equal(t, 1, c.WindowStart())
}

func TestHoverWithoutHoverPauseKeepsRunning(t *testing.T) {
	clock := cotask.NewManualScheduler()
	opts := testOptions(5, Single)
	opts.HoverPause = false
	c := New[int](clock, opts, nil)
	c.SetData(numbers(12))

	c.Hover(true)
	clock.Advance(DefaultCadence)
	assert.Equal(t, 1, c.WindowStart())
}

func TestDataChangeWhilePausedRestartsFullCadence(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(5, Single), nil)
	c.SetData(numbers(12))
	clock.Advance(DefaultCadence)
	require.Equal(t, 1, c.WindowStart())

	c.Hover(true)
	c.SetData(numbers(20))
	assert.Equal(t, 0, c.WindowStart())
	assert.Equal(t, Paused, c.Phase())

	clock.Advance(5 * time.Second)
	c.Hover(false)
	clock.Advance(DefaultCadence - time.Millisecond)
	assert.Equal(t, 0, c.WindowStart())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, c.WindowStart())
}

func TestDestroyStopsAllMutation(t *testing.T) {
	clock := cotask.NewManualScheduler()
	spy := &frameSpy{}
	c := New(clock, testOptions(5, Single), spy.record)
	c.SetData(numbers(12))
	clock.Advance(2100 * time.Millisecond)

	seen := len(spy.frames)
	before := c.Frame()

	c.Destroy()
	c.Destroy()
	clock.Advance(time.Minute)
	c.Hover(true)
	c.SetData(numbers(3))
	c.SetRowHeight(4)

	assert.Equal(t, seen, len(spy.frames))
	assert.Equal(t, Destroyed, c.Phase())
	after := c.Frame()
	assert.Equal(t, before.WindowStart, after.WindowStart)
	assert.Equal(t, before.Heights, after.Heights)
	assert.Equal(t, before.Cycle, after.Cycle)
}

func TestSetRowHeightNeverNegative(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(2, Single), nil)
	c.SetData(numbers(4))

	c.SetRowHeight(3)
	assert.Equal(t, []int{3, 3, 3}, c.Frame().Heights)

	c.SetRowHeight(-7)
	assert.Equal(t, []int{0, 0, 0}, c.Frame().Heights)

	clock.Advance(DefaultCadence + DefaultTransition)
	c.SetRowHeight(2)
	assert.Equal(t, []int{0, 2, 2}, c.Frame().Heights)
}

func TestRowAtResolvesRenderedRow(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, testOptions(5, Single), nil)
	c.SetData(numbers(7))

	clock.Advance(DefaultCadence * 8)
	row, ok := c.RowAt(0)
	require.True(t, ok)
	// the eighth advance renders the window starting at the duplicated half
	assert.Equal(t, 0, row.Data)
	assert.Equal(t, 0, row.Index)
	assert.Equal(t, 7, row.Scroll)

	_, ok = c.RowAt(99)
	assert.False(t, ok)
}

func TestOptionsAreClamped(t *testing.T) {
	clock := cotask.NewManualScheduler()
	c := New[int](clock, Options{RowNum: 0, Mode: "weird", Cadence: time.Millisecond, Transition: time.Second}, nil)

	opts := c.Options()
	assert.Equal(t, 1, opts.RowNum)
	assert.Equal(t, Single, opts.Mode)
	assert.Equal(t, time.Second, opts.Cadence)
	assert.NotNil(t, opts.Logger)
}

func TestHoldOverridesHover(t *testing.T) {
	clock := cotask.NewManualScheduler()
	opts := testOptions(5, Single)
	opts.HoverPause = false
	c := New[int](clock, opts, nil)
	c.SetData(numbers(12))
	clock.Advance(time.Second)

	c.Hold(true)
	c.Hover(true)
	c.Hover(false)
	clock.Advance(3 * DefaultCadence)
	assert.Equal(t, 0, c.WindowStart())
	assert.Equal(t, Paused, c.Phase())

	c.Hold(false)
	clock.Flush()
	assert.Equal(t, 1, c.WindowStart())
}
