package feed

import (
	"fmt"
	"strconv"

	"datav/internal/collector"
	"datav/internal/config"
)

// ProcessHeader is the header of the process board.
var ProcessHeader = []string{"PID", "Name", "CPU %", "Mem %"}

// CheckHeader is the header of the health board.
var CheckHeader = []string{"Check", "Value", "Status"}

// Snapshot is everything the dashboard needs from one sample.
type Snapshot struct {
	Stats      collector.RawStats
	Checks     []CheckResult
	Status     string
	Processes  [][]string
	CheckRows  [][]string
	Cores      []config.Item
	Memory     []config.Item
	Partitions []config.Item
	Columns    []config.Item
	CPULevel   float64
	RAMLevel   float64
	DiskLevel  float64
}

// Build converts stats into widget data.
func Build(stats collector.RawStats) Snapshot {
	checks := Evaluate(stats)
	return Snapshot{
		Stats:      stats,
		Checks:     checks,
		Status:     Worst(checks),
		Processes:  ProcessRows(stats.Processes),
		CheckRows:  CheckRows(checks),
		Cores:      CoreRanking(stats.CPUPerCore),
		Memory:     MemorySegments(stats),
		Partitions: PartitionItems(stats.Partitions),
		Columns:    LoadColumns(stats),
		CPULevel:   clampPercent(stats.CPUUsage),
		RAMLevel:   clampPercent(stats.RAMUsage),
		DiskLevel:  clampPercent(stats.DiskUsage),
	}
}

func ProcessRows(procs []collector.ProcessInfo) [][]string {
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		name := p.Name
		if name == "" {
			name = "?"
		}
		rows = append(rows, []string{
			strconv.Itoa(int(p.PID)),
			name,
			fmt.Sprintf("%.1f", p.CPU),
			fmt.Sprintf("%.1f", p.Memory),
		})
	}
	return rows
}

func CheckRows(checks []CheckResult) [][]string {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []string{c.Name, fmt.Sprintf("%.1f", c.Value), c.Status})
	}
	return rows
}

// CoreRanking names each core's usage for the ranking board.
func CoreRanking(perCore []float64) []config.Item {
	items := make([]config.Item, 0, len(perCore))
	for i, v := range perCore {
		items = append(items, config.Item{Name: fmt.Sprintf("core %d", i), Value: round1(v)})
	}
	return items
}

// MemorySegments splits RAM into used and free for the ring chart, in GB.
func MemorySegments(stats collector.RawStats) []config.Item {
	used := stats.RAMUsedGB
	free := stats.TotalRAMGB - used
	if free < 0 {
		free = 0
	}
	return []config.Item{
		{Name: "used", Value: round1(used)},
		{Name: "free", Value: round1(free)},
	}
}

func PartitionItems(parts []collector.PartitionUsage) []config.Item {
	items := make([]config.Item, 0, len(parts))
	for _, p := range parts {
		items = append(items, config.Item{Name: p.Mountpoint, Value: round1(p.UsedPercent)})
	}
	return items
}

// LoadColumns feeds the column chart with the three load averages.
func LoadColumns(stats collector.RawStats) []config.Item {
	return []config.Item{
		{Name: "1m", Value: stats.LoadAvg1},
		{Name: "5m", Value: stats.LoadAvg5},
		{Name: "15m", Value: stats.LoadAvg15},
	}
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
