package engine

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/scene"
	"github.com/Carmen-Shannon/oxy-rts/engine/terrain"
)

// countingRenderer is a thread-safe scene.Renderer that counts frames.
type countingRenderer struct {
	mu      sync.Mutex
	draws   int
	drawErr error
}

func (c *countingRenderer) UploadMesh([]byte, []byte, int) error { return nil }
func (c *countingRenderer) WriteCamera([]byte)                   {}
func (c *countingRenderer) Resize(int, int)                      {}

func (c *countingRenderer) Draw() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draws++
	return c.drawErr
}

func (c *countingRenderer) Draws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draws
}

func newTestScene(t *testing.T, r scene.Renderer) scene.Scene {
	t.Helper()
	ground, err := terrain.NewTiledGround(terrain.WithGrid(2, 2), terrain.WithWorkers(1))
	if err != nil {
		t.Fatal(err)
	}
	s, err := scene.NewRTSScene(camera.NewCameraController(), camera.NewCamera(), ground, r)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// runAsync starts e.Run on a goroutine and returns a channel closed when Run returns.
func runAsync(e Engine) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	return done
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestRunTicksAndRendersScene(t *testing.T) {
	r := &countingRenderer{}
	var ticks atomic.Int64
	e := NewEngine(
		WithScene(newTestScene(t, r)),
		WithTickRate(500),
		WithRenderFrameLimit(500),
		WithLogger(quietLogger()),
	)
	e.SetTickCallback(func(float32) { ticks.Add(1) })

	done := runAsync(e)
	waitFor(t, "ticks", func() bool { return ticks.Load() >= 5 })
	waitFor(t, "frames", func() bool { return r.Draws() >= 5 })
	if !e.Running() {
		t.Fatal("engine should report running")
	}

	e.Quit()
	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	if e.Running() {
		t.Fatal("engine should not report running after Quit")
	}
}

func TestSetScene(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()))
	if e.Scene() != nil {
		t.Fatal("new engine should have no scene")
	}
	s := newTestScene(t, &countingRenderer{})
	e.SetScene(s)
	if e.Scene() != s {
		t.Fatal("SetScene did not take effect")
	}
}

func TestInactiveSceneIsNotRendered(t *testing.T) {
	r := &countingRenderer{}
	s := newTestScene(t, r)
	s.SetActive(false)

	var frames atomic.Int64
	e := NewEngine(WithScene(s), WithTickRate(500), WithLogger(quietLogger()))
	e.SetRenderCallback(func(float32) { frames.Add(1) })

	done := runAsync(e)
	waitFor(t, "render callbacks", func() bool { return frames.Load() >= 3 })
	e.Quit()
	<-done

	if r.Draws() != 0 {
		t.Fatalf("draws = %d, want 0", r.Draws())
	}
}

func TestRenderErrorLoggedOnce(t *testing.T) {
	r := &countingRenderer{drawErr: errors.New("surface lost")}
	var buf syncBuffer
	e := NewEngine(
		WithScene(newTestScene(t, r)),
		WithRenderFrameLimit(1000),
		WithLogger(log.New(&buf, "", 0)),
	)

	done := runAsync(e)
	waitFor(t, "frames", func() bool { return r.Draws() >= 5 })
	e.Quit()
	<-done

	if n := strings.Count(buf.String(), "surface lost"); n != 1 {
		t.Fatalf("render error logged %d times, want 1:\n%s", n, buf.String())
	}
}

func TestRenderPanicQuits(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()))
	e.SetRenderCallback(func(float32) { panic("boom") })

	done := runAsync(e)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("render panic should stop the engine")
	}
}

func TestSetTickRate(t *testing.T) {
	tests := []struct {
		name string
		fps  float64
		want time.Duration
	}{
		{"30Hz", 30, time.Second / 30},
		{"120Hz", 120, time.Second / 120},
		{"zero defaults to 60", 0, time.Second / 60},
		{"negative defaults to 60", -5, time.Second / 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(WithLogger(quietLogger()))
			e.SetTickRate(tt.fps)
			if got := e.TickRate(); got != tt.want {
				t.Fatalf("tick rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	var ticks atomic.Int64
	e := NewEngine(WithTickRate(1), WithLogger(quietLogger()))
	e.SetTickCallback(func(float32) { ticks.Add(1) })

	done := runAsync(e)
	waitFor(t, "running", e.Running)
	e.SetTickRate(500)
	waitFor(t, "faster ticks", func() bool { return ticks.Load() >= 5 })
	e.Quit()
	<-done
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of the engine goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
