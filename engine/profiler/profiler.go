package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is one profiling interval's worth of frame and memory statistics.
type Stats struct {
	FPS float64

	// Skipped is the number of frames in the interval whose input could not be applied.
	Skipped int

	HeapMB      float64
	AllocRateMB float64
	SysMB       float64

	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger *zap.SugaredLogger
	now    func() time.Time

	frameCount     int
	skippedCount   int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Stats
}

// NewProfiler creates a new Profiler with the provided options.
// Update interval defaults to 1 second and the logger to a no-op logger.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         zap.NewNop().Sugar(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Skip records that the current frame's input was dropped. Call before Tick.
func (p *Profiler) Skip() {
	p.skippedCount++
}

// Skipped returns the number of skipped frames recorded since the last report.
//
// Returns:
//   - int: pending skipped frame count
func (p *Profiler) Skipped() int {
	return p.skippedCount
}

// Reset discards the frame and skip counts gathered so far and restarts the reporting interval.
// Call it when profiling is switched on so time spent disabled is not reported.
func (p *Profiler) Reset() {
	p.frameCount = 0
	p.skippedCount = 0
	p.lastTime = p.now()
}

// Last returns the statistics logged by the most recent reporting Tick.
//
// Returns:
//   - Stats: the last reported statistics, or the zero value if none were reported yet
func (p *Profiler) Last() Stats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, skipped frames, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		Skipped: p.skippedCount,
		// Alloc: live heap. Sys: memory obtained from the OS.
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
		// TotalAlloc only grows, so its delta is the allocation churn.
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
	}

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.GCCount-startIdx > 256 {
			startIdx = s.GCCount - 256
		}
		for i := startIdx; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.logger.Infow("frame stats",
		"fps", s.FPS,
		"skipped", s.Skipped,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_pause_us", s.LastPauseUs,
		"gc_max_pause_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.skippedCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
