// Package axprof adapts the teacher engine's frame-rate/memory profiler
// (engine/profiler) into a structured-logging diagnostics helper: the same
// tick-count/time-window/runtime.MemStats accounting, emitted as a zerolog
// event through axlog instead of log.Printf, for hosts that want periodic
// resource telemetry alongside get_performance_stats.
package axprof

import (
	"runtime"
	"time"

	"github.com/axiom-wm/axiom/internal/axlog"
)

// Profiler accumulates frame counts and memory statistics between log
// emissions, logging once per UpdateInterval rather than every tick.
type Profiler struct {
	log axlog.Logger

	updateInterval time.Duration
	frameCount     int
	lastTime       time.Time
	lastGCCount    uint32
	lastTotalAlloc uint64

	memStats runtime.MemStats
}

// New creates a Profiler that logs through log at most once per
// updateInterval. updateInterval <= 0 defaults to one second.
func New(log axlog.Logger, updateInterval time.Duration) *Profiler {
	if updateInterval <= 0 {
		updateInterval = time.Second
	}
	return &Profiler{
		log:            log,
		updateInterval: updateInterval,
		lastTime:       time.Now(),
	}
}

// Tick records one frame and, once updateInterval has elapsed since the
// last emission, logs an info event with FPS, heap usage, allocation rate,
// and GC pause stats. Returns true if it logged this call.
func (p *Profiler) Tick(now time.Time) bool {
	p.frameCount++
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.log.Info().
		Float64("fps", fps).
		Float64("heap_mb", allocMB).
		Float64("alloc_rate_mb_s", allocRateMB).
		Uint32("gc_count", gcCount).
		Uint64("gc_last_pause_us", lastPauseUs).
		Uint64("gc_max_pause_us", maxPauseUs).
		Float64("sys_mb", sysMB).
		Msg("resource profile")

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
