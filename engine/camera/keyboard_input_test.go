package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
)

// newKeyboardRig returns an attached controller facing +Z from the origin with a keyboard input.
func newKeyboardRig(options ...CameraControllerOption) (*input.Dispatcher, *KeyboardInput, CameraController) {
	d := input.NewDispatcher()
	kb := NewKeyboardInput(d)
	opts := append([]CameraControllerOption{
		WithPosition(0, 0, 0),
		WithLookAt(0, 0, 10),
		WithInputs(kb),
	}, options...)
	cc := NewCameraController(opts...)
	cc.Attach()
	return d, kb, cc
}

func TestKeyboardRightKeyMovesTarget(t *testing.T) {
	d, _, cc := newKeyboardRig(WithSpeed(0.4))

	d.DispatchKeyDown(common.KeyArrowRight)
	cc.Tick()

	s := cc.State()
	if !approx(s.TargetPosition.X(), 0.4) {
		t.Fatalf("target x = %v, want 0.4", s.TargetPosition.X())
	}
	if !approx(s.TargetPosition.Z(), 0) {
		t.Fatalf("target z = %v, want 0", s.TargetPosition.Z())
	}
	if s.MovedBy != MovedByKeys {
		t.Fatalf("MovedBy = %v, want keys", s.MovedBy)
	}
	if s.Position.X() <= 0 || s.Position.X() >= 0.4 {
		t.Fatalf("position should have eased part of the way, got %v", s.Position.X())
	}
}

func TestKeyboardDirections(t *testing.T) {
	tests := []struct {
		name   string
		key    uint32
		dx, dz float32
	}{
		{"arrow up", common.KeyArrowUp, 0, 0.4},
		{"w", common.KeyW, 0, 0.4},
		{"arrow down", common.KeyArrowDown, 0, -0.4},
		{"s", common.KeyS, 0, -0.4},
		{"arrow left", common.KeyArrowLeft, -0.4, 0},
		{"a", common.KeyA, -0.4, 0},
		{"arrow right", common.KeyArrowRight, 0.4, 0},
		{"d", common.KeyD, 0.4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, cc := newKeyboardRig(WithPosition(20, 5, 20), WithLookAt(20, 0, 30))
			d.DispatchKeyDown(tt.key)
			cc.Tick()
			s := cc.State()
			if !approx(s.TargetPosition.X(), 20+tt.dx) || !approx(s.TargetPosition.Z(), 20+tt.dz) {
				t.Fatalf("target = %v, want (%v, %v)", s.TargetPosition, 20+tt.dx, 20+tt.dz)
			}
		})
	}
}

func TestKeyboardTargetStaysInBounds(t *testing.T) {
	keys := []uint32{
		common.KeyArrowUp, common.KeyArrowDown, common.KeyArrowLeft, common.KeyArrowRight,
		common.KeyW, common.KeyA, common.KeyS, common.KeyD,
	}

	for _, key := range keys {
		d, _, cc := newKeyboardRig(WithPosition(5, 5, -5), WithLookAt(0, 0, 0))
		d.DispatchKeyDown(key)
		for i := range 500 {
			cc.Tick()
			s := cc.State()
			b := s.Bounds
			x, z := s.TargetPosition.X(), s.TargetPosition.Z()
			if x < b.MinX || x > b.MaxX || z < b.MinZ || z > b.MaxZ {
				t.Fatalf("key %d tick %d: target %v escaped bounds %+v", key, i, s.TargetPosition, b)
			}
		}
	}
}

func TestKeyboardRotateLeftThenRightRestoresAngle(t *testing.T) {
	d, _, cc := newKeyboardRig(WithPosition(20, 5, 20), WithLookAt(25, 0, 25))
	before := cc.State()

	d.DispatchKeyDown(common.KeyQ)
	cc.Tick()
	d.DispatchKeyUp(common.KeyQ)

	mid := cc.State()
	if !approx(mid.RotationAngle, before.RotationAngle+before.RotationSpeed) {
		t.Fatalf("rotate left: angle %v, want %v", mid.RotationAngle, before.RotationAngle+before.RotationSpeed)
	}

	d.DispatchKeyDown(common.KeyE)
	cc.Tick()
	d.DispatchKeyUp(common.KeyE)

	after := cc.State()
	if !approx(after.RotationAngle, before.RotationAngle) {
		t.Fatalf("angle %v, want %v", after.RotationAngle, before.RotationAngle)
	}
	for i := range 3 {
		if !approx(after.Position[i], before.Position[i]) {
			t.Fatalf("position %v, want %v", after.Position, before.Position)
		}
	}
	// Rotation leaves the position on its target, so the claim from the key-down is kept
	// until a pan finishes.
	if after.MovedBy != MovedByKeys {
		t.Fatalf("MovedBy = %v, want keys", after.MovedBy)
	}
}

func TestKeyboardPanContinuesAfterRotateTap(t *testing.T) {
	d, _, cc := newKeyboardRig(WithPosition(20, 5, 20), WithLookAt(20, 0, 30))

	d.DispatchKeyDown(common.KeyW)
	cc.Tick()
	d.DispatchKeyDown(common.KeyQ)
	cc.Tick()
	d.DispatchKeyUp(common.KeyQ)

	start := cc.State().Position
	for range 50 {
		cc.Tick()
	}

	s := cc.State()
	if s.MovedBy != MovedByKeys {
		t.Fatalf("MovedBy = %v, want keys while W is held", s.MovedBy)
	}
	if moved := s.Position.Sub(start).Len(); moved < 0.1 {
		t.Fatalf("camera moved %v after the rotate tap, want it to keep panning", moved)
	}
}

func TestKeyboardIgnoresUnboundKeys(t *testing.T) {
	d, kb, cc := newKeyboardRig()
	before := cc.State()

	d.DispatchKeyDown(common.KeySpace)
	d.DispatchKeyDown(999)
	cc.Tick()

	if len(kb.HeldKeys()) != 0 {
		t.Fatalf("unbound keys should not be held, got %v", kb.HeldKeys())
	}
	if cc.State() != before {
		t.Fatalf("unbound keys changed the camera state")
	}
}

func TestKeyboardKeyUpReleases(t *testing.T) {
	d, kb, cc := newKeyboardRig()

	d.DispatchKeyDown(common.KeyW)
	cc.Tick()
	d.DispatchKeyUp(common.KeyW)
	target := cc.State().TargetPosition
	cc.Tick()

	if cc.State().TargetPosition != target {
		t.Fatalf("released key still moving the target")
	}
	if len(kb.HeldKeys()) != 0 {
		t.Fatalf("held keys = %v, want none", kb.HeldKeys())
	}
}

func TestKeyboardFocusLossClearsHeld(t *testing.T) {
	d, kb, _ := newKeyboardRig()

	d.DispatchKeyDown(common.KeyW)
	d.DispatchKeyDown(common.KeyQ)
	d.DispatchFocusLost()

	if len(kb.HeldKeys()) != 0 {
		t.Fatalf("focus loss should clear held keys, got %v", kb.HeldKeys())
	}
}

func TestKeyboardHeldKeysPressOrder(t *testing.T) {
	d, kb, _ := newKeyboardRig()

	d.DispatchKeyDown(common.KeyE)
	d.DispatchKeyDown(common.KeyW)
	d.DispatchKeyDown(common.KeyA)
	// Key repeat must not move a key to the back.
	d.DispatchKeyDown(common.KeyE)

	got := kb.HeldKeys()
	want := []uint32{common.KeyE, common.KeyW, common.KeyA}
	if len(got) != len(want) {
		t.Fatalf("HeldKeys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HeldKeys() = %v, want %v", got, want)
		}
	}
}

func TestKeyboardDetachedTickIsNoop(t *testing.T) {
	d, kb, cc := newKeyboardRig()
	d.DispatchKeyDown(common.KeyD)
	cc.Detach()

	if kb.Attached() {
		t.Fatalf("keyboard should be detached")
	}
	before := cc.State()
	d.DispatchKeyDown(common.KeyW)
	cc.Tick()
	if cc.State() != before {
		t.Fatalf("detached tick mutated state")
	}

	// Detaching twice and ticking a never-attached input must be harmless too.
	kb.Detach()
	fresh := NewKeyboardInput(input.NewDispatcher())
	var s CameraState
	fresh.Detach()
	fresh.Tick(&s)
	if s != (CameraState{}) {
		t.Fatalf("never-attached tick mutated state")
	}
}

func TestKeyboardKeyDownAfterDetachIsDropped(t *testing.T) {
	_, kb, cc := newKeyboardRig()
	cc.Detach()

	// A key-down dispatched from a listener snapshot taken before Detach.
	kb.onKeyDown(common.KeyW)

	cc.Attach()
	if len(kb.HeldKeys()) != 0 {
		t.Fatalf("held keys after re-attach = %v, want none", kb.HeldKeys())
	}
	before := cc.State()
	cc.Tick()
	if cc.State() != before {
		t.Fatalf("a key pressed while detached moved the camera")
	}
}

func TestKeyboardAttachIsIdempotent(t *testing.T) {
	d := input.NewDispatcher()
	kb := NewKeyboardInput(d)
	kb.Attach()
	kb.Attach()
	if d.ListenerCount() != 3 {
		t.Fatalf("listener count = %d, want 3", d.ListenerCount())
	}
	kb.Detach()
	if d.ListenerCount() != 0 {
		t.Fatalf("listener count after detach = %d, want 0", d.ListenerCount())
	}
}

func TestKeyboardCustomBindings(t *testing.T) {
	d := input.NewDispatcher()
	kb := NewKeyboardInput(d, WithKeyBindings(KeyBindings{Right: []uint32{common.KeySpace}}))
	cc := NewCameraController(WithPosition(0, 0, 0), WithLookAt(0, 0, 10), WithInputs(kb))
	cc.Attach()

	d.DispatchKeyDown(common.KeyD)
	d.DispatchKeyDown(common.KeySpace)
	cc.Tick()

	if !approx(cc.State().TargetPosition.X(), 0.4) {
		t.Fatalf("target x = %v, want 0.4 from a single rebound key", cc.State().TargetPosition.X())
	}

	kb.SetKeyBindings(DefaultKeyBindings())
	if len(kb.HeldKeys()) != 0 {
		t.Fatalf("rebinding should release keys that are no longer bound, got %v", kb.HeldKeys())
	}
}
