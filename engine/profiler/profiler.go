// Package profiler samples frame rate, memory and rasterizer counters and logs them periodically.
package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the engine logger at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	raster         raster.Stats

	now func() time.Time
}

// Sample is one logged measurement window.
type Sample struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64

	// Raster holds rasterizer counters averaged per frame over the window.
	Raster raster.Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// SetInterval changes how often samples are logged. Non-positive values are ignored.
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Tick should be called once per frame with that frame's rasterizer counters.
// Logs a Sample when the update interval has elapsed.
//
// Parameters:
//   - stats: counters returned by the frame's render
//
// Returns:
//   - Sample: the sample logged this tick, if any
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats raster.Stats) (Sample, bool) {
	p.frameCount++
	p.raster.Add(stats)

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Sample{}, false
	}

	s := Sample{
		FPS:    float64(p.frameCount) / elapsed.Seconds(),
		Raster: perFrame(p.raster, p.frameCount),
	}

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap. TotalAlloc: cumulative, tracks churn. Sys: process footprint.
	s.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	s.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	s.GCCount = p.memStats.NumGC
	if s.GCCount > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	common.Logger().Info("profiler",
		slog.Float64("fps", s.FPS),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb_s", s.AllocRateMB),
		slog.Uint64("gc", uint64(s.GCCount)),
		slog.Uint64("gc_last_us", s.LastPauseUs),
		slog.Uint64("gc_max_us", s.MaxPauseUs),
		slog.Float64("sys_mb", s.SysMB),
		slog.Group("raster",
			slog.Int("triangles", s.Raster.Triangles),
			slog.Int("degenerate", s.Raster.Degenerate),
			slog.Int("culled", s.Raster.Culled),
			slog.Int("tested", s.Raster.Tested),
			slog.Int("written", s.Raster.Written),
			slog.Int("objects_culled", s.Raster.ObjectsCulled),
		),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.raster = raster.Stats{}
	return s, true
}

func perFrame(total raster.Stats, frames int) raster.Stats {
	if frames <= 0 {
		return raster.Stats{}
	}
	return raster.Stats{
		Triangles:     total.Triangles / frames,
		Degenerate:    total.Degenerate / frames,
		Culled:        total.Culled / frames,
		Tested:        total.Tested / frames,
		Written:       total.Written / frames,
		ObjectsCulled: total.ObjectsCulled / frames,
	}
}
