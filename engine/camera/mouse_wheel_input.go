package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
)

// MouseWheelInput zooms the camera by stepping its target field of view on wheel events
// and easing the actual field of view toward it every tick.
type MouseWheelInput struct {
	mu *sync.Mutex

	source WheelEventSource

	// pending accumulates inverted DOM deltas: positive means scrolled away from the user.
	pending float32

	attached bool
	listener input.ListenerID
}

var _ CameraInput = &MouseWheelInput{}

// NewMouseWheelInput creates a detached mouse wheel input reading from source.
//
// Parameters:
//   - source: the wheel event source (usually an *input.Dispatcher)
//
// Returns:
//   - *MouseWheelInput: the new input
func NewMouseWheelInput(source WheelEventSource) *MouseWheelInput {
	return &MouseWheelInput{
		mu:     &sync.Mutex{},
		source: source,
	}
}

func (m *MouseWheelInput) Name() string {
	return "mouseWheel"
}

func (m *MouseWheelInput) Attach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attached || m.source == nil {
		return
	}
	m.listener = m.source.OnWheel(m.onWheel)
	m.attached = true
}

func (m *MouseWheelInput) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attached {
		return
	}
	m.source.RemoveListener(m.listener)
	m.listener = 0
	m.pending = 0
	m.attached = false
}

func (m *MouseWheelInput) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attached
}

// Pending returns the accumulated wheel delta not yet consumed by Tick.
func (m *MouseWheelInput) Pending() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

func (m *MouseWheelInput) Tick(state *CameraState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attached {
		return
	}

	switch {
	case m.pending < 0:
		state.TargetZoom += state.ZoomStep
	case m.pending > 0:
		state.TargetZoom -= state.ZoomStep
	}
	m.pending = 0

	state.ClampZoom()
	state.Fov = common.Approach(state.Fov, state.TargetZoom, state.ZoomIncrement)
}

func (m *MouseWheelInput) onWheel(deltaY float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attached {
		return
	}
	m.pending -= deltaY
}
