package collector

import (
	"context"
	"testing"
)

// MockCollector satisfies the StatsProvider interface
type MockCollector struct {
	Stats *RawStats
	Err   error
}

func (m MockCollector) GetRawMetrics(ctx context.Context) (*RawStats, error) {
	return m.Stats, m.Err
}

func TestMockCollector(t *testing.T) {
	expectedStats := &RawStats{
		CPUUsage:   10.5,
		RAMUsage:   50.0,
		TotalRAMGB: 16,
	}

	var provider StatsProvider = MockCollector{Stats: expectedStats}

	stats, err := provider.GetRawMetrics(context.Background())
	switch {
	case err != nil:
		t.Fatalf("Expected no error, got %v", err)
	case stats.CPUUsage != expectedStats.CPUUsage:
		t.Errorf("Expected CPU usage %f, got %f", expectedStats.CPUUsage, stats.CPUUsage)
	}
}

func TestSystemCollector(t *testing.T) {
	collector := NewSystemCollector(DefaultCollectorConfig().WithProcessMetrics(false))
	stats, err := collector.GetRawMetrics(context.Background())

	switch {
	case err != nil:
		t.Skipf("Skipping system test: %v (might be environment specific)", err)
	case stats.CPUUsage < 0 || stats.CPUUsage > 100:
		t.Errorf("CPU usage out of bounds: %f", stats.CPUUsage)
	case stats.RAMUsage < 0 || stats.RAMUsage > 100:
		t.Errorf("RAM usage out of bounds: %f", stats.RAMUsage)
	case stats.Processes != nil:
		t.Errorf("Expected no processes when disabled, got %d", len(stats.Processes))
	}
}

func TestTopProcesses(t *testing.T) {
	procs := []ProcessInfo{
		{PID: 1, Name: "idle", CPU: 0.1, Memory: 1},
		{PID: 2, Name: "busy", CPU: 80, Memory: 2},
		{PID: 3, Name: "fat", CPU: 0.1, Memory: 40},
		{PID: 4, Name: "mid", CPU: 20, Memory: 3},
	}

	top := TopProcesses(procs, 3)
	if len(top) != 3 {
		t.Fatalf("Expected 3 processes, got %d", len(top))
	}
	want := []string{"busy", "mid", "fat"}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("Expected %s at %d, got %s", name, i, top[i].Name)
		}
	}
	if procs[0].Name != "idle" {
		t.Error("TopProcesses mutated its input")
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	if _, ok := h.Last(); ok {
		t.Error("Expected empty history to have no last value")
	}

	for _, v := range []float64{1, 2, 3, 4, 5} {
		h.Push(v)
	}

	got := h.Values()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
	if last, _ := h.Last(); last != 5 {
		t.Errorf("Expected last 5, got %v", last)
	}
	if h.Cap() != 3 || h.Len() != 3 {
		t.Errorf("Expected len/cap 3/3, got %d/%d", h.Len(), h.Cap())
	}
}
