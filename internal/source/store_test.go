package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datav/internal/collector"
	"datav/internal/feed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", WithThreads(1))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sample(i int, cpu float64, cores ...float64) collector.RawStats {
	return collector.RawStats{
		Timestamp:  base.Add(time.Duration(i) * time.Second),
		CPUUsage:   cpu,
		CPUPerCore: cores,
		RAMUsage:   50,
		DiskUsage:  20,
		LoadAvg1:   0.5,
	}
}

func TestStoreSeriesOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, cpu := range []float64{10, 20, 30, 40} {
		require.NoError(t, s.InsertSample(ctx, sample(i, cpu), feed.StatusHealthy))
	}

	got, err := s.Series(ctx, MetricCPU, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30, 40}, got)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestStoreUnknownMetric(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Series(context.Background(), Metric("cpu; DROP TABLE samples"), 10)
	require.Error(t, err)
}

func TestStorePrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.InsertSample(ctx, sample(i, float64(i), 1, 2), feed.StatusHealthy))
	}
	require.NoError(t, s.Prune(ctx, 2))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Series(ctx, MetricCPU, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, got)

	// Pruning an empty or small table is a no-op.
	require.NoError(t, s.Prune(ctx, 100))
	require.NoError(t, s.Prune(ctx, 0))
}

func TestStoreCoreAverages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSample(ctx, sample(0, 0, 10, 40), feed.StatusHealthy))
	require.NoError(t, s.InsertSample(ctx, sample(1, 0, 20, 60), feed.StatusHealthy))

	items, err := s.CoreAverages(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "core 0", items[0].Name)
	assert.Equal(t, 15.0, items[0].Value)
	assert.Equal(t, "core 1", items[1].Name)
	assert.Equal(t, 50.0, items[1].Value)
}

func TestStoreTable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertSample(ctx, sample(0, 12.5), feed.StatusWarning))

	cols, rows, err := s.Table(ctx, `SELECT status, cpu FROM samples`)
	require.NoError(t, err)
	assert.Equal(t, []string{"status", "cpu"}, cols)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{feed.StatusWarning, "12.5"}, rows[0])
}

func TestStoreClosed(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	err = s.Migrate(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))
	_, err = s.Count(context.Background())
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("b"), "b"},
		{1.5, "1.5"},
		{int64(7), "7"},
		{base, "2024-01-01 12:00:00"},
	}
	for _, tt := range tests {
		if got := display(tt.in); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
