package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"
)

// Stats is one profiling sample covering the interval since the previous sample.
type Stats struct {
	// Rate is loop iterations per second (frames for the render loop, ticks for the tick loop).
	Rate        float64
	HeapMB      float64
	AllocRateMB float64
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks the iteration rate of one loop and memory statistics.
// Outputs stats to its logger at a configurable interval.
type Profiler struct {
	mu *sync.Mutex

	label          string
	logger         *log.Logger
	updateInterval time.Duration

	count          int
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithLogger sets the logger stats are written to. Defaults to log.Default().
func WithLogger(logger *log.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are logged. Defaults to 1 second.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLabel names the profiled loop in the log line, e.g. "FPS" or "TPS". Defaults to "FPS".
func WithLabel(label string) ProfilerOption {
	return func(p *Profiler) {
		p.label = label
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		label:          "FPS",
		logger:         log.Default(),
		updateInterval: time.Second,
		lastTime:       time.Now(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per loop iteration.
// Logs a sample when the update interval has elapsed: iteration rate, heap usage,
// allocation rate, GC count/pause times and total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		Rate:   float64(p.count) / elapsed.Seconds(),
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:  p.memStats.NumGC,
	}
	// TotalAlloc only grows, so the delta is the churn over the interval.
	s.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	if s.NumGC > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.NumGC-1)%256] / 1000
		start := p.lastGCCount
		if s.NumGC-start > 256 {
			start = s.NumGC - 256
		}
		for i := start; i < s.NumGC; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Printf("[Profiler] %s: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.label, s.Rate, s.HeapMB, s.AllocRateMB, s.NumGC, s.LastPauseUs, s.MaxPauseUs, s.SysMB)

	p.count = 0
	p.lastTime = now
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recent logged sample, or zero Stats before the first one.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}
