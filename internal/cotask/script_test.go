package cotask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScriptRepeatsBodyAfterPrelude(t *testing.T) {
	clock := NewManualScheduler()
	var trace []string
	at := func(name string) Step {
		return Do(func() { trace = append(trace, name) })
	}

	script := NewScript(at("init"), Sleep(time.Second)).
		Repeat(at("tick"), Sleep(500*time.Millisecond))
	Start(clock, script, WithLogger(quietLogger()))

	clock.Advance(2100 * time.Millisecond)
	// init@0, tick@1000, tick@1500, tick@2000
	assert.Equal(t, []string{"init", "tick", "tick", "tick"}, trace)
}

func TestScriptStopRunsCleanupOnce(t *testing.T) {
	clock := NewManualScheduler()
	stops := 0
	script := NewScript().Repeat(Sleep(time.Second)).OnStop(func() { stops++ })

	task := Start(clock, script, WithLogger(quietLogger()))
	clock.Advance(3 * time.Second)
	task.End()
	task.End()
	script.Stop()

	assert.Equal(t, 1, stops)

	_, done, err := script.Next()
	assert.True(t, done)
	assert.NoError(t, err)
}

func TestManualSchedulerOrdersByDueTime(t *testing.T) {
	clock := NewManualScheduler()
	var order []string
	clock.After(30*time.Millisecond, func() { order = append(order, "c") })
	clock.After(10*time.Millisecond, func() { order = append(order, "a") })
	clock.After(10*time.Millisecond, func() { order = append(order, "b") })
	clock.After(-5, func() { order = append(order, "now") })

	clock.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"now", "a", "b"}, order)
	assert.Equal(t, 20*time.Millisecond, clock.Now())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"now", "a", "b", "c"}, order)
}
