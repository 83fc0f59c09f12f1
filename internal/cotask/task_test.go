package cotask

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// ticker records the virtual time of every pull and waits d between pulls.
type ticker struct {
	clock *ManualScheduler
	wait  time.Duration
	at    []time.Duration
	stops int
}

func (c *ticker) Next() (time.Duration, bool, error) {
	c.at = append(c.at, c.clock.Now())
	return c.wait, false, nil
}

func (c *ticker) Stop() { c.stops++ }

func TestStartDoesNotPullSynchronously(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: time.Second}

	task := Start(clock, seq, WithLogger(quietLogger()))
	assert.Empty(t, seq.at, "Start must not pull inside the call")
	assert.Equal(t, Running, task.State())

	clock.Flush()
	assert.Equal(t, []time.Duration{0}, seq.at)
}

func TestPullsFollowWaits(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: 100 * time.Millisecond}
	Start(clock, seq, WithLogger(quietLogger()))

	clock.Advance(350 * time.Millisecond)

	expected := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	assert.Equal(t, expected, seq.at)
	assert.Equal(t, 1, clock.Pending(), "only one continuation may be armed")
}

func TestPauseLetsWaitFinishAndBlocksNextPull(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: 100 * time.Millisecond}
	task := Start(clock, seq, WithLogger(quietLogger()))
	clock.Flush()

	task.Pause()
	assert.Equal(t, Paused, task.State())
	clock.Advance(time.Second)
	assert.Len(t, seq.at, 1)
	assert.Equal(t, 0, clock.Pending(), "the elapsed wait is consumed")

	task.Resume()
	assert.Len(t, seq.at, 1, "resume pulls on the next tick, not synchronously")
	clock.Flush()
	assert.Equal(t, []time.Duration{0, time.Second}, seq.at)
}

func TestResumeBeforeWaitElapsesKeepsOriginalDeadline(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: 100 * time.Millisecond}
	task := Start(clock, seq, WithLogger(quietLogger()))
	clock.Flush()

	clock.Advance(30 * time.Millisecond)
	task.Pause()
	clock.Advance(30 * time.Millisecond)
	task.Resume()
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(40 * time.Millisecond)
	assert.Equal(t, []time.Duration{0, 100 * time.Millisecond}, seq.at)
}

func TestControlsAreIdempotent(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: 100 * time.Millisecond}
	task := Start(clock, seq, WithLogger(quietLogger()))
	clock.Flush()

	task.Pause()
	task.Pause()
	assert.Equal(t, Paused, task.State())

	task.Resume()
	task.Resume()
	assert.Equal(t, Running, task.State())
	assert.Equal(t, 1, clock.Pending(), "double resume must not arm a second continuation")

	task.End()
	task.End()
	assert.Equal(t, Ended, task.State())
	assert.Equal(t, 1, seq.stops)

	task.Resume()
	assert.Equal(t, Ended, task.State())
}

func TestEndSilencesArmedContinuations(t *testing.T) {
	clock := NewManualScheduler()
	seq := &ticker{clock: clock, wait: 100 * time.Millisecond}
	task := Start(clock, seq, WithLogger(quietLogger()))
	clock.Flush()

	task.Pause()
	task.Resume()
	task.End()
	clock.Advance(10 * time.Second)

	assert.Len(t, seq.at, 1)
	assert.Equal(t, 1, task.Steps())
}

func TestEndAfterNaturalFinish(t *testing.T) {
	clock := NewManualScheduler()
	var ran []string
	stops := 0
	script := NewScript(
		Do(func() { ran = append(ran, "a") }),
		Sleep(50*time.Millisecond),
		Do(func() { ran = append(ran, "b") }),
	).OnStop(func() { stops++ })

	task := Start(clock, script, WithLogger(quietLogger()))
	clock.Advance(time.Second)

	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, Ended, task.State())
	assert.Equal(t, 1, stops)

	task.End()
	assert.Equal(t, 1, stops)
}

func TestStepErrorEndsTask(t *testing.T) {
	clock := NewManualScheduler()
	boom := errors.New("boom")
	calls := 0
	seq := SequenceFunc(func() (time.Duration, bool, error) {
		calls++
		if calls == 2 {
			return 0, false, boom
		}
		return 10 * time.Millisecond, false, nil
	})

	task := Start(clock, seq, WithLogger(quietLogger()), WithName("failing"))
	clock.Advance(time.Second)

	assert.Equal(t, Ended, task.State())
	require.ErrorIs(t, task.Err(), boom)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, clock.Pending())
}

func TestStepPanicEndsTask(t *testing.T) {
	clock := NewManualScheduler()
	seq := SequenceFunc(func() (time.Duration, bool, error) {
		panic("bad step")
	})

	task := Start(clock, seq, WithLogger(quietLogger()))
	require.NotPanics(t, func() { clock.Flush() })

	assert.Equal(t, Ended, task.State())
	require.Error(t, task.Err())
	assert.Contains(t, task.Err().Error(), "bad step")
}

func TestStepMayEndItsOwnTask(t *testing.T) {
	clock := NewManualScheduler()
	var task *Task
	calls := 0
	seq := SequenceFunc(func() (time.Duration, bool, error) {
		calls++
		task.End()
		return time.Millisecond, false, nil
	})

	task = Start(clock, seq, WithLogger(quietLogger()))
	clock.Advance(time.Second)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, clock.Pending())
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Running, "running"},
		{Paused, "paused"},
		{Ended, "ended"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
