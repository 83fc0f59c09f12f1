package collector

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

const gb = 1024 * 1024 * 1024

// ============================================================================
// DATA STRUCTURES
// ============================================================================

// RawStats is one snapshot of the metrics the dashboard widgets display.
type RawStats struct {
	Timestamp time.Time

	// CPU Metrics
	CPUUsage   float64   // Overall CPU utilization percentage (0-100)
	CPUPerCore []float64 // Per-core CPU utilization
	CPUModel   string
	CPUCores   int
	LoadAvg1   float64
	LoadAvg5   float64
	LoadAvg15  float64

	// RAM Metrics
	RAMUsage   float64
	RAMUsedGB  float64
	TotalRAMGB float64
	SwapUsage  float64

	// Disk Metrics
	DiskUsage   float64
	TotalDiskGB float64
	Partitions  []PartitionUsage

	// Process Metrics
	Processes []ProcessInfo
}

type PartitionUsage struct {
	Mountpoint  string
	Device      string
	Fstype      string
	UsedPercent float64
	TotalGB     float64
}

type ProcessInfo struct {
	PID    int32
	Name   string
	CPU    float64
	Memory float32
}

// ============================================================================
// INTERFACE DEFINITION
// ============================================================================

// StatsProvider defines the contract for any system metrics source.
type StatsProvider interface {
	GetRawMetrics(ctx context.Context) (*RawStats, error)
}

// ============================================================================
// CONCRETE IMPLEMENTATION
// ============================================================================

type SystemCollector struct {
	cfg CollectorConfig
}

func NewSystemCollector(cfg CollectorConfig) *SystemCollector {
	return &SystemCollector{cfg: cfg}
}

func (s *SystemCollector) Config() CollectorConfig { return s.cfg }

// Internal result types for concurrency
type cpuResult struct {
	total   float64
	perCore []float64
	model   string
	err     error
}

type loadResult struct {
	stat *load.AvgStat
	err  error
}

type memResult struct {
	vm   *mem.VirtualMemoryStat
	swap *mem.SwapMemoryStat
	err  error
}

type diskResult struct {
	root       *disk.UsageStat
	partitions []PartitionUsage
	err        error
}

type procResult struct {
	procs []ProcessInfo
	err   error
}

// GetRawMetrics collects all metrics concurrently, bounded by the configured
// timeout. CPU, memory and root disk failures are fatal; the rest degrade to
// empty values.
func (s *SystemCollector) GetRawMetrics(ctx context.Context) (*RawStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	cpuCh := make(chan cpuResult, 1)
	loadCh := make(chan loadResult, 1)
	memCh := make(chan memResult, 1)
	diskCh := make(chan diskResult, 1)
	procCh := make(chan procResult, 1)

	var wg sync.WaitGroup
	wg.Add(5)

	go s.fetchCPU(ctx, &wg, cpuCh)
	go s.fetchLoad(ctx, &wg, loadCh)
	go s.fetchMemory(ctx, &wg, memCh)
	go s.fetchDisk(ctx, &wg, diskCh)
	go s.fetchProcesses(ctx, &wg, procCh)

	wg.Wait()

	cpuRes := <-cpuCh
	loadRes := <-loadCh
	memRes := <-memCh
	diskRes := <-diskCh
	procRes := <-procCh

	if cpuRes.err != nil {
		return nil, fmt.Errorf("failed to get CPU metrics: %w", cpuRes.err)
	}
	if memRes.err != nil {
		return nil, fmt.Errorf("failed to get memory metrics: %w", memRes.err)
	}
	if diskRes.err != nil {
		return nil, fmt.Errorf("failed to get disk metrics: %w", diskRes.err)
	}

	stats := &RawStats{
		Timestamp:   time.Now(),
		CPUUsage:    cpuRes.total,
		CPUPerCore:  cpuRes.perCore,
		CPUModel:    cpuRes.model,
		CPUCores:    len(cpuRes.perCore),
		RAMUsage:    memRes.vm.UsedPercent,
		RAMUsedGB:   float64(memRes.vm.Used) / gb,
		TotalRAMGB:  float64(memRes.vm.Total) / gb,
		DiskUsage:   diskRes.root.UsedPercent,
		TotalDiskGB: float64(diskRes.root.Total) / gb,
		Partitions:  diskRes.partitions,
		Processes:   procRes.procs,
	}
	if memRes.swap != nil {
		stats.SwapUsage = memRes.swap.UsedPercent
	}
	if loadRes.err == nil && loadRes.stat != nil {
		stats.LoadAvg1 = loadRes.stat.Load1
		stats.LoadAvg5 = loadRes.stat.Load5
		stats.LoadAvg15 = loadRes.stat.Load15
	}
	return stats, nil
}

// Helper methods for concurrent fetching

func (s *SystemCollector) fetchCPU(ctx context.Context, wg *sync.WaitGroup, ch chan cpuResult) {
	defer wg.Done()
	defer close(ch)

	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		ch <- cpuResult{err: err}
		return
	}
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		ch <- cpuResult{err: err}
		return
	}
	model := "Unknown"
	if info, err := cpu.InfoWithContext(ctx); err == nil && len(info) > 0 {
		model = info[0].ModelName
	}
	res := cpuResult{perCore: perCore, model: model}
	if len(total) > 0 {
		res.total = total[0]
	}
	ch <- res
}

func (s *SystemCollector) fetchLoad(ctx context.Context, wg *sync.WaitGroup, ch chan loadResult) {
	defer wg.Done()
	defer close(ch)
	stat, err := load.AvgWithContext(ctx)
	ch <- loadResult{stat: stat, err: err}
}

func (s *SystemCollector) fetchMemory(ctx context.Context, wg *sync.WaitGroup, ch chan memResult) {
	defer wg.Done()
	defer close(ch)
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		ch <- memResult{err: err}
		return
	}
	swap, _ := mem.SwapMemoryWithContext(ctx)
	ch <- memResult{vm: vm, swap: swap}
}

func (s *SystemCollector) fetchDisk(ctx context.Context, wg *sync.WaitGroup, ch chan diskResult) {
	defer wg.Done()
	defer close(ch)

	root, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		ch <- diskResult{err: err}
		return
	}
	res := diskResult{root: root}
	if !s.cfg.EnablePartitions {
		ch <- res
		return
	}

	partitions, err := disk.PartitionsWithContext(ctx, true)
	if err != nil {
		ch <- res
		return
	}
	byMount := make(map[string]disk.PartitionStat, len(partitions))
	for _, p := range partitions {
		byMount[p.Mountpoint] = p
	}
	for _, mount := range s.cfg.Mountpoints {
		p, ok := byMount[mount]
		if !ok {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, mount)
		if err != nil {
			continue
		}
		res.partitions = append(res.partitions, PartitionUsage{
			Mountpoint:  mount,
			Device:      p.Device,
			Fstype:      p.Fstype,
			UsedPercent: usage.UsedPercent,
			TotalGB:     float64(usage.Total) / gb,
		})
	}
	ch <- res
}

func (s *SystemCollector) fetchProcesses(ctx context.Context, wg *sync.WaitGroup, ch chan procResult) {
	defer wg.Done()
	defer close(ch)

	if !s.cfg.EnableProcessMetrics {
		ch <- procResult{}
		return
	}
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		ch <- procResult{err: fmt.Errorf("failed to list pids: %w", err)}
		return
	}

	procs := make([]ProcessInfo, 0, len(pids))
	for _, pid := range pids {
		if ctx.Err() != nil {
			break
		}
		p, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			continue
		}
		name, _ := p.NameWithContext(ctx)
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		memPct, _ := p.MemoryPercentWithContext(ctx)
		procs = append(procs, ProcessInfo{PID: pid, Name: name, CPU: cpuPct, Memory: memPct})
	}
	ch <- procResult{procs: TopProcesses(procs, s.cfg.TopProcessCount)}
}

// TopProcesses returns the n busiest processes, by CPU then memory.
func TopProcesses(procs []ProcessInfo, n int) []ProcessInfo {
	out := append([]ProcessInfo(nil), procs...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CPU != out[j].CPU {
			return out[i].CPU > out[j].CPU
		}
		return out[i].Memory > out[j].Memory
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
