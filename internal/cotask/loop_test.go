package cotask

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []int
	done := make(chan struct{})
	loop.Post(func() { got = append(got, 1) })
	loop.Post(func() { got = append(got, 2) })
	loop.After(10*time.Millisecond, func() {
		got = append(got, 3)
		close(done)
	})

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed continuation never ran")
	}
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestLoopDrivesTask(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count := 0
	seq := SequenceFunc(func() (time.Duration, bool, error) {
		count++
		if count == 3 {
			cancel()
			return 0, true, nil
		}
		return time.Millisecond, false, nil
	})
	loop.Post(func() { Start(loop, seq, WithLogger(quietLogger())) })

	_ = loop.Run(ctx)
	assert.Equal(t, 3, count)
}

func TestLoopDropsWorkAfterStop(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)

	ran := false
	loop.Post(func() { ran = true })
	assert.False(t, ran)
}
