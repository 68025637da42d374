package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/engine/input"
)

func newWheelRig(options ...CameraControllerOption) (*input.Dispatcher, *MouseWheelInput, CameraController) {
	d := input.NewDispatcher()
	mw := NewMouseWheelInput(d)
	cc := NewCameraController(append([]CameraControllerOption{WithInputs(mw)}, options...)...)
	cc.Attach()
	return d, mw, cc
}

func TestMouseWheelStepsTargetZoom(t *testing.T) {
	tests := []struct {
		name    string
		deltaY  float32
		want    float32
		wantFov float32
	}{
		{"scroll away zooms in", -5, 0.8, 0.995},
		{"scroll toward zooms out", 5, 1.2, 1.005},
		{"zero delta", 0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, mw, cc := newWheelRig(WithFov(1.0), WithZoomStep(0.2))
			d.DispatchWheel(tt.deltaY)
			if mw.Pending() != -tt.deltaY {
				t.Fatalf("pending = %v, want %v", mw.Pending(), -tt.deltaY)
			}
			cc.Tick()

			s := cc.State()
			if !approx(s.TargetZoom, tt.want) {
				t.Fatalf("target zoom = %v, want %v", s.TargetZoom, tt.want)
			}
			if !approx(s.Fov, tt.wantFov) {
				t.Fatalf("fov = %v, want %v", s.Fov, tt.wantFov)
			}
			if mw.Pending() != 0 {
				t.Fatalf("pending should reset after tick, got %v", mw.Pending())
			}
			if s.MovedBy != MovedByNone {
				t.Fatalf("zoom must not claim movement, got %v", s.MovedBy)
			}
		})
	}
}

func TestMouseWheelAccumulatesWithinTick(t *testing.T) {
	d, _, cc := newWheelRig()
	d.DispatchWheel(-3)
	d.DispatchWheel(-2)
	d.DispatchWheel(1)
	cc.Tick()

	// One step per tick regardless of the accumulated magnitude.
	if !approx(cc.State().TargetZoom, 0.8) {
		t.Fatalf("target zoom = %v, want 0.8", cc.State().TargetZoom)
	}
}

func TestMouseWheelTargetZoomStaysInBounds(t *testing.T) {
	for _, delta := range []float32{-100, -1, 1, 100} {
		d, _, cc := newWheelRig()
		for i := range 50 {
			d.DispatchWheel(delta)
			cc.Tick()
			s := cc.State()
			if s.TargetZoom < s.ZoomBounds.Min || s.TargetZoom > s.ZoomBounds.Max {
				t.Fatalf("delta %v tick %d: target zoom %v outside %+v", delta, i, s.TargetZoom, s.ZoomBounds)
			}
		}
	}
}

func TestMouseWheelFovConvergesOnTarget(t *testing.T) {
	d, _, cc := newWheelRig()
	d.DispatchWheel(-1)
	cc.Tick()

	for range 1000 {
		cc.Tick()
	}
	s := cc.State()
	if s.Fov != s.TargetZoom {
		t.Fatalf("fov %v never reached target %v", s.Fov, s.TargetZoom)
	}
}

func TestMouseWheelDetach(t *testing.T) {
	d, mw, cc := newWheelRig()
	d.DispatchWheel(-1)
	cc.Detach()

	if mw.Pending() != 0 {
		t.Fatalf("detach should drop pending input, got %v", mw.Pending())
	}
	if d.ListenerCount() != 0 {
		t.Fatalf("detach should unsubscribe, %d listeners left", d.ListenerCount())
	}

	before := cc.State()
	d.DispatchWheel(-1)
	cc.Tick()
	if cc.State() != before {
		t.Fatalf("detached tick mutated state")
	}
	mw.Detach()
}

func TestMouseWheelEventAfterDetachIsDropped(t *testing.T) {
	_, mw, cc := newWheelRig()
	cc.Detach()

	// A wheel event dispatched from a listener snapshot taken before Detach.
	mw.onWheel(-5)

	cc.Attach()
	if mw.Pending() != 0 {
		t.Fatalf("pending after re-attach = %v, want 0", mw.Pending())
	}
	cc.Tick()
	if z := cc.State().TargetZoom; z != 1.0 {
		t.Fatalf("target zoom = %v, want 1.0", z)
	}
}
