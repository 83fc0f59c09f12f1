package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datav/internal/carousel"
	"datav/internal/config"
)

func TestTraceDataGeneratesRows(t *testing.T) {
	header, rows := traceData(config.DefaultScrollBoard(), 4)
	assert.Equal(t, []string{"name", "value"}, header)
	require.Len(t, rows, 4)
	assert.Equal(t, "row 1", rows[0][0])
	assert.Equal(t, "37.0", rows[1][1])
}

func TestTraceDataPrefersConfig(t *testing.T) {
	cfg := config.DefaultScrollBoard()
	cfg.Header = []string{"host"}
	cfg.Data = [][]string{{"a"}, {"b"}}

	header, rows := traceData(cfg, 10)
	assert.Equal(t, cfg.Header, header)
	assert.Equal(t, cfg.Data, rows)
}

func TestTracePrintsFrames(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"trace", "--duration", "150ms", "--rows", "8"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "cycle 0")
	assert.Contains(t, out.String(), "row 1")
}

func TestRunCarouselDestroysSchedulerOnExit(t *testing.T) {
	var out bytes.Buffer
	_, rows := traceData(config.DefaultScrollBoard(), 8)
	opts := carousel.DefaultOptions()
	opts.RowNum = 3
	opts.Cadence = 20 * time.Millisecond
	opts.HoverPause = false

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sched, err := runCarousel(ctx, opts, nil, rows, &out)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	require.NotNil(t, sched)
	assert.Equal(t, carousel.Destroyed, sched.Phase())
	assert.Contains(t, out.String(), "row 1")
}

func TestRedirectLogsToFile(t *testing.T) {
	logger := logrus.StandardLogger()
	prev := logger.Out
	path := filepath.Join(t.TempDir(), "datav.log")

	logFile = path
	t.Cleanup(func() { logFile = "" })

	restore, err := redirectLogs()
	require.NoError(t, err)
	logrus.Warn("inside the tui")
	restore()

	assert.Equal(t, prev, logger.Out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "inside the tui")
}
