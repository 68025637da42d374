package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
)

// stubInput records lifecycle calls.
type stubInput struct {
	name     string
	attached bool
	attaches int
	detaches int
	ticks    int
}

func (s *stubInput) Name() string   { return s.name }
func (s *stubInput) Attached() bool { return s.attached }
func (s *stubInput) Attach() {
	s.attaches++
	s.attached = true
}
func (s *stubInput) Detach() {
	s.detaches++
	s.attached = false
}
func (s *stubInput) Tick(*CameraState) {
	if s.attached {
		s.ticks++
	}
}

func TestNewCameraControllerDefaults(t *testing.T) {
	cc := NewCameraController()
	s := cc.State()

	x, y, z := cc.Position()
	if x != 5 || y != 5 || z != -5 {
		t.Fatalf("position = (%v, %v, %v), want (5, 5, -5)", x, y, z)
	}
	if tx, ty, tz := cc.Target(); tx != 0 || ty != 0 || tz != 0 {
		t.Fatalf("target = (%v, %v, %v), want origin", tx, ty, tz)
	}
	if s.TargetPosition != s.Position {
		t.Fatalf("translation target should start at the position")
	}
	if cc.Fov() != 1.0 || s.TargetZoom != 1.0 {
		t.Fatalf("fov/target zoom = %v/%v, want 1.0", cc.Fov(), s.TargetZoom)
	}
	if !approx(s.Radius, float32(math.Sqrt(50))) {
		t.Fatalf("radius = %v, want sqrt(50)", s.Radius)
	}
	if !approx(s.RotationAngle, 3*math.Pi/4) {
		t.Fatalf("rotation angle = %v, want 3π/4", s.RotationAngle)
	}
	if s.Speed != 0.4 || s.RotationSpeed != 0.02 {
		t.Fatalf("speeds = %v/%v", s.Speed, s.RotationSpeed)
	}
	if s.Bounds != (Bounds{MinX: -5, MaxX: 55, MinZ: -5, MaxZ: 55}) {
		t.Fatalf("bounds = %+v", s.Bounds)
	}
	if s.ZoomBounds != (ZoomBounds{Min: 0.5, Max: 1.4}) || s.ZoomStep != 0.2 || s.ZoomIncrement != 0.005 {
		t.Fatalf("zoom settings = %+v step %v inc %v", s.ZoomBounds, s.ZoomStep, s.ZoomIncrement)
	}
	if cc.Attached() {
		t.Fatalf("new controller should be detached")
	}
}

func TestCameraControllerEasingConverges(t *testing.T) {
	d := input.NewDispatcher()
	kb := NewKeyboardInput(d)
	cc := NewCameraController(WithPosition(10, 5, 10), WithLookAt(10, 0, 20), WithInputs(kb))
	cc.Attach()

	d.DispatchKeyDown(common.KeyW)
	cc.Tick()
	d.DispatchKeyUp(common.KeyW)

	if cc.State().MovedBy != MovedByKeys {
		t.Fatalf("expected keys to own the ease")
	}

	for i := range 2000 {
		cc.Tick()
		if cc.State().MovedBy == MovedByNone {
			break
		}
		if i == 1999 {
			t.Fatalf("ease never finished")
		}
	}

	s := cc.State()
	if dist := s.TargetPosition.Sub(s.Position).Len(); dist > 0.01 {
		t.Fatalf("camera stopped %v away from target", dist)
	}
	if !approx(s.Position.Z(), 10.4) {
		t.Fatalf("position z = %v, want 10.4", s.Position.Z())
	}
	if !approx(s.LookAt.Z(), 20.4) {
		t.Fatalf("look-at should follow the pan, got z = %v", s.LookAt.Z())
	}
}

func TestCameraControllerAddInputWhileAttached(t *testing.T) {
	cc := NewCameraController()
	cc.Attach()

	in := &stubInput{name: "stub"}
	cc.AddInput(in)
	if !in.attached {
		t.Fatalf("input added to an attached controller should attach")
	}

	replacement := &stubInput{name: "stub"}
	cc.AddInput(replacement)
	if in.attached {
		t.Fatalf("replaced input should be detached")
	}
	if len(cc.Inputs()) != 1 || cc.Input("stub") != replacement {
		t.Fatalf("replacement not registered: %v", cc.Inputs())
	}

	cc.Tick()
	if replacement.ticks != 1 || in.ticks != 0 {
		t.Fatalf("ticks = %d/%d, want 1/0", replacement.ticks, in.ticks)
	}
}

func TestCameraControllerRemoveInput(t *testing.T) {
	in := &stubInput{name: "stub"}
	cc := NewCameraController(WithInputs(in))
	cc.Attach()

	if !cc.RemoveInput("stub") {
		t.Fatalf("RemoveInput should find the input")
	}
	if in.attached {
		t.Fatalf("removed input should be detached")
	}
	if cc.RemoveInput("stub") {
		t.Fatalf("second RemoveInput should report nothing removed")
	}
	if cc.Input("stub") != nil {
		t.Fatalf("removed input still reachable")
	}
}

func TestCameraControllerAttachDetachIdempotent(t *testing.T) {
	in := &stubInput{name: "stub"}
	cc := NewCameraController(WithInputs(in))

	cc.Detach()
	cc.Attach()
	cc.Attach()
	if in.attaches != 1 {
		t.Fatalf("attaches = %d, want 1", in.attaches)
	}
	cc.Detach()
	cc.Detach()
	if in.detaches != 1 {
		t.Fatalf("detaches = %d, want 1", in.detaches)
	}
}

func TestCameraControllerApplyTuning(t *testing.T) {
	cc := NewCameraController(WithPosition(50, 5, 50), WithLookAt(50, 0, 40))
	tuning := cc.State().Tuning()
	tuning.Speed = 1
	tuning.Bounds = Bounds{MinX: 0, MaxX: 20, MinZ: 0, MaxZ: 20}
	cc.ApplyTuning(tuning)

	s := cc.State()
	if s.Speed != 1 {
		t.Fatalf("speed = %v, want 1", s.Speed)
	}
	if s.TargetPosition.X() != 20 || s.TargetPosition.Z() != 20 {
		t.Fatalf("target not re-clamped: %v", s.TargetPosition)
	}
	if s.Position.X() != 50 {
		t.Fatalf("tuning must not move the camera directly")
	}
}
