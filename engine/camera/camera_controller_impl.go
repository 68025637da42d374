package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Input event callbacks, the engine tick and the render loop run on different goroutines,
// so every accessor takes the mutex. CameraState itself is only mutated inside Tick and
// ApplyTuning.
type cameraControllerImpl struct {
	mu *sync.Mutex

	state CameraState

	inputs   []CameraInput
	attached bool
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a detached RTS camera controller.
// Defaults: position (5, 5, -5) looking at the origin, speed 0.4, rotation speed 0.02,
// bounds X/Z in [-5, 55], easing 0.02 with a 0.01 snap, field of view 1.0 clamped to
// [0.5, 1.4], zoom step 0.2 and zoom increment 0.005.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},
		state: CameraState{
			Position:      mgl32.Vec3{5, 5, -5},
			LookAt:        mgl32.Vec3{0, 0, 0},
			Speed:         0.4,
			RotationSpeed: 0.02,
			Bounds:        Bounds{MinX: -5, MaxX: 55, MinZ: -5, MaxZ: 55},
			EaseFactor:    0.02,
			SnapDistance:  0.01,
			Fov:           1.0,
			ZoomStep:      0.2,
			ZoomIncrement: 0.005,
			ZoomBounds:    ZoomBounds{Min: 0.5, Max: 1.4},
			MovedBy:       MovedByNone,
		},
	}

	for _, option := range options {
		option(cc)
	}

	s := &cc.state
	s.TargetPosition = s.Position
	s.TargetZoom = s.Fov
	if s.Radius == 0 {
		s.Radius = mgl32.Vec2{
			s.Position.X() - s.LookAt.X(),
			s.Position.Z() - s.LookAt.Z(),
		}.Len()
	}
	// The orbit angle points from the look-at point back to the camera.
	s.RotationAngle = math.Pi + s.Yaw()
	s.ClampTarget()
	s.ClampZoom()

	return cc
}

func (cc *cameraControllerImpl) AddInput(in CameraInput) {
	if in == nil {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.addInput(in)
	if cc.attached {
		in.Attach()
	}
}

func (cc *cameraControllerImpl) RemoveInput(name string) bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for i, in := range cc.inputs {
		if in.Name() == name {
			in.Detach()
			cc.inputs = append(cc.inputs[:i], cc.inputs[i+1:]...)
			return true
		}
	}
	return false
}

func (cc *cameraControllerImpl) Input(name string) CameraInput {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, in := range cc.inputs {
		if in.Name() == name {
			return in
		}
	}
	return nil
}

func (cc *cameraControllerImpl) Inputs() []CameraInput {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	out := make([]CameraInput, len(cc.inputs))
	copy(out, cc.inputs)
	return out
}

func (cc *cameraControllerImpl) Attach() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.attached {
		return
	}
	for _, in := range cc.inputs {
		in.Attach()
	}
	cc.attached = true
}

func (cc *cameraControllerImpl) Detach() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.attached {
		return
	}
	for _, in := range cc.inputs {
		in.Detach()
	}
	cc.attached = false
}

func (cc *cameraControllerImpl) Attached() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.attached
}

func (cc *cameraControllerImpl) Tick() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, in := range cc.inputs {
		in.Tick(&cc.state)
	}
}

func (cc *cameraControllerImpl) State() CameraState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Position.Elem()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.LookAt.Elem()
}

func (cc *cameraControllerImpl) Fov() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state.Fov
}

func (cc *cameraControllerImpl) ApplyTuning(t Tuning) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.state.ApplyTuning(t)
}

// addInput registers in, detaching and replacing any input with the same name.
// Caller must hold the mutex (or be constructing the controller).
func (cc *cameraControllerImpl) addInput(in CameraInput) {
	for i, existing := range cc.inputs {
		if existing.Name() == in.Name() {
			if existing != in {
				existing.Detach()
			}
			cc.inputs[i] = in
			return
		}
	}
	cc.inputs = append(cc.inputs, in)
}
