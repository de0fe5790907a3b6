package api

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var startTime = time.Now()

var (
	UptimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "uptime_seconds",
		Help:      "Time since the API process started",
	})

	MemoryUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "host_memory_used_bytes",
		Help:      "Used memory of the host",
	})

	CPUUsagePercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "host_cpu_usage_percent",
		Help:      "CPU usage of the host across all cores",
	})

	GoroutinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "bountyboard",
		Subsystem: "api",
		Name:      "goroutines_active",
		Help:      "Number of running goroutines",
	})
)

// StartSystemMetricsCollection samples host and runtime gauges every interval until ctx is done
func StartSystemMetricsCollection(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			collectSystemMetrics()
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func collectSystemMetrics() {
	UptimeSeconds.Set(time.Since(startTime).Seconds())
	GoroutinesActive.Set(float64(runtime.NumGoroutine()))

	if vmStat, err := mem.VirtualMemory(); err == nil {
		MemoryUsageBytes.Set(float64(vmStat.Used))
	}
	// zero interval compares against the previous call
	if cpuPercent, err := cpu.Percent(0, false); err == nil && len(cpuPercent) > 0 {
		CPUUsagePercent.Set(cpuPercent[0])
	}
}
