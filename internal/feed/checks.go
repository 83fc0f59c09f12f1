// Package feed turns collector snapshots into the data widgets render:
// health checks with threshold status, board rows, rankings and levels.
package feed

import (
	"fmt"

	"datav/internal/collector"
)

const (
	StatusHealthy  = "OK"
	StatusWarning  = "WARN"
	StatusCritical = "CRIT"

	CPUWarningThreshold   = 70.0
	CPUCriticalThreshold  = 90.0
	RAMWarningThreshold   = 70.0
	RAMCriticalThreshold  = 90.0
	DiskWarningThreshold  = 80.0
	DiskCriticalThreshold = 90.0
	SwapWarningThreshold  = 50.0
	SwapCriticalThreshold = 80.0

	// minFreeDiskGB raises a healthy disk to warning when less remains.
	minFreeDiskGB = 5.0
)

type CheckResult struct {
	Name   string
	Value  float64
	Status string
}

func getStatus(value, warning, critical float64) string {
	if value > critical {
		return StatusCritical
	}
	if value > warning {
		return StatusWarning
	}
	return StatusHealthy
}

func diskStatus(usedPercent, totalGB float64) string {
	status := getStatus(usedPercent, DiskWarningThreshold, DiskCriticalThreshold)
	free := totalGB - totalGB*(usedPercent/100)
	if totalGB > 0 && free < minFreeDiskGB && status == StatusHealthy {
		status = StatusWarning
	}
	return status
}

// Evaluate grades one snapshot against the thresholds.
func Evaluate(stats collector.RawStats) []CheckResult {
	result := []CheckResult{
		{
			Name:   "CPU Usage",
			Value:  stats.CPUUsage,
			Status: getStatus(stats.CPUUsage, CPUWarningThreshold, CPUCriticalThreshold),
		},
		{
			Name:   "RAM Usage",
			Value:  stats.RAMUsage,
			Status: getStatus(stats.RAMUsage, RAMWarningThreshold, RAMCriticalThreshold),
		},
		{
			Name:   "Swap Usage",
			Value:  stats.SwapUsage,
			Status: getStatus(stats.SwapUsage, SwapWarningThreshold, SwapCriticalThreshold),
		},
		{
			Name:   "Disk Usage",
			Value:  stats.DiskUsage,
			Status: diskStatus(stats.DiskUsage, stats.TotalDiskGB),
		},
	}

	for _, p := range stats.Partitions {
		result = append(result, CheckResult{
			Name:   fmt.Sprintf("Partition %s", p.Mountpoint),
			Value:  p.UsedPercent,
			Status: diskStatus(p.UsedPercent, p.TotalGB),
		})
	}

	// Load per core above 1 means queued work.
	if stats.CPUCores > 0 {
		perCore := stats.LoadAvg1 / float64(stats.CPUCores) * 100
		result = append(result, CheckResult{
			Name:   "Load (1m)",
			Value:  stats.LoadAvg1,
			Status: getStatus(perCore, 100, 200),
		})
	}

	return result
}

// Worst returns the most severe status in results.
func Worst(results []CheckResult) string {
	worst := StatusHealthy
	for _, r := range results {
		switch r.Status {
		case StatusCritical:
			return StatusCritical
		case StatusWarning:
			worst = StatusWarning
		}
	}
	return worst
}
