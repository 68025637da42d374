package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rts/engine/scene"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	logger *log.Logger

	renderProfiler   *profiler.Profiler
	tickProfiler     *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scene scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastRenderErr    string
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management for one scene.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene ticked and rendered by the engine, or nil if none is set.
	Scene() scene.Scene

	// SetScene replaces the scene. Takes effect on the next tick and frame.
	//
	// Parameters:
	//   - s: the Scene to drive (nil to stop ticking and rendering)
	SetScene(s scene.Scene)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Running reports whether Run has started and Quit has not been called.
	Running() bool

	// SetTickRate sets the engine tick rate in ticks per second.
	// The scene and the tick callback are ticked at this rate.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the configured tick period.
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick, after the scene has ticked.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame, after the scene has rendered.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the tick and render goroutines and blocks.
	// With a window it runs the window message loop until the window closes; without one
	// it blocks until Quit. Either way the engine goroutines have exited when Run returns.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// If a window is given, framebuffer resizes are forwarded to the scene.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		logger:          log.Default(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	e.renderProfiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithLabel("FPS"))
	e.tickProfiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithLabel("TPS"))

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if s := e.Scene(); s != nil {
				s.Resize(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = s
}

func (e *engine) Running() bool {
	return e.running.Load()
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
	e.logger.Printf("[Engine] stopped")
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// handle launches the engine, render, and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	select {
	case <-e.quitChannel:
		return
	default:
	}

	e.running.Store(true)
	e.logger.Printf("[Engine] running at %.0f ticks/s", time.Second.Seconds()/rate.Seconds())

	e.wg.Add(3)
	go e.handleEngine(rate)
	go e.handleRender()
	go e.handleQuit()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Ticks the scene and fires the tick callback at the configured tick rate, and listens for
// dynamic rate changes via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine(rate time.Duration) {
	defer e.wg.Done()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.mu.Lock()
			s, callback := e.scene, e.tickCallback
			e.mu.Unlock()

			if s != nil {
				s.Tick(dt)
			}
			if callback != nil {
				callback(dt)
			}
			if e.profilingEnabled.Load() {
				e.tickProfiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own goroutine.
// Renders the scene, then fires the render callback.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		e.mu.Lock()
		s, callback, limit, tickRate := e.scene, e.renderCallback, e.renderFrameLimit, e.engineTickRate
		e.mu.Unlock()

		if s != nil && s.Active() {
			e.reportRenderError(s.Render())
		} else {
			// Nothing to present, so nothing blocks on vsync either.
			limit = max(limit, tickRate)
		}

		if callback != nil {
			callback(dt)
		}

		if e.profilingEnabled.Load() {
			e.renderProfiler.Tick()
		}

		// Frame rate limiting
		if limit > 0 {
			if remaining := limit - time.Since(lastRender); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// reportRenderError logs a render error once until a different error, or a successful frame, follows.
func (e *engine) reportRenderError(err error) {
	if err == nil {
		e.lastRenderErr = ""
		return
	}
	if msg := err.Error(); msg != e.lastRenderErr {
		e.lastRenderErr = msg
		e.logger.Printf("[Engine] render: %v", err)
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.logger.Printf("[Engine] quit requested")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickPeriod(fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()

	if !e.running.Load() {
		return
	}
	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		select {
		case e.tickRateChannel <- newRate:
		default:
		}
	}
}

func (e *engine) TickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameLimit(fps)
}

// tickPeriod converts a tick rate to a ticker period, treating fps <= 0 as 60.
func tickPeriod(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameLimit converts a frame cap to a minimum frame duration, 0 meaning uncapped.
func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
