package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraWithoutController(t *testing.T) {
	c := NewCamera()
	if c.ViewProjectionMatrix() != mgl32.Ident4() {
		t.Fatalf("camera without a controller should keep identity matrices")
	}
	c.Update()
	if c.Controller() != nil {
		t.Fatalf("unexpected controller")
	}
}

func TestCameraReadsControllerPose(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 10, -10), WithLookAt(0, 0, 0), WithFov(0.8))
	c := NewCamera(WithController(cc), WithAspect(16.0/9.0), WithClipPlanes(0.5, 200))

	if c.Fov() != 0.8 {
		t.Fatalf("fov = %v, want controller fov 0.8", c.Fov())
	}

	// The look-at point sits on the view axis.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(p.X(), 0) || !approx(p.Y(), 0) || p.Z() >= 0 {
		t.Fatalf("look-at in view space = %v, want on -Z axis", p)
	}

	// Near and far planes map to WebGPU depth 0 and 1.
	proj := c.ProjectionMatrix()
	for _, tc := range []struct {
		dist, depth float32
	}{
		{0.5, 0},
		{200, 1},
	} {
		clip := proj.Mul4x1(mgl32.Vec4{0, 0, -tc.dist, 1})
		if got := clip.Z() / clip.W(); math.Abs(float64(got-tc.depth)) > 1e-3 {
			t.Fatalf("depth at %v = %v, want %v", tc.dist, got, tc.depth)
		}
	}

	want := proj.Mul4(c.ViewMatrix())
	if !c.ViewProjectionMatrix().ApproxEqual(want) {
		t.Fatalf("view-projection is not projection * view")
	}
}

func TestCameraScreenRightMatchesPanRight(t *testing.T) {
	d := input.NewDispatcher()
	kb := NewKeyboardInput(d)
	cc := NewCameraController(WithPosition(20, 5, 20), WithLookAt(20, 0, 30), WithInputs(kb))
	cc.Attach()
	c := NewCamera(WithController(cc), WithAspect(1))

	ndcX := func(p mgl32.Vec3) float32 {
		clip := c.ViewProjectionMatrix().Mul4x1(p.Vec4(1))
		return clip.X() / clip.W()
	}

	tests := []struct {
		name  string
		point mgl32.Vec3
		sign  float32
	}{
		{"+X is screen right", mgl32.Vec3{21, 0, 30}, 1},
		{"-X is screen left", mgl32.Vec3{19, 0, 30}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if x := ndcX(tt.point); x*tt.sign <= 0 {
				t.Fatalf("ndc x = %v, want sign %v", x, tt.sign)
			}
		})
	}
	if x := ndcX(mgl32.Vec3{20, 0, 30}); !approx(x, 0) {
		t.Fatalf("look-at ndc x = %v, want 0", x)
	}

	// The right key pans toward the side +X projects to.
	d.DispatchKeyDown(common.KeyD)
	cc.Tick()
	if dx := cc.State().TargetPosition.X() - 20; dx <= 0 {
		t.Fatalf("right key moved target x by %v, want positive", dx)
	}
}

func TestCameraUpdateFollowsController(t *testing.T) {
	cc := NewCameraController()
	c := NewCamera(WithController(cc))
	before := c.ViewProjectionMatrix()

	cc.ApplyTuning(cc.State().Tuning())
	c.Update()
	if c.ViewProjectionMatrix() != before {
		t.Fatalf("matrices changed without the pose changing")
	}

	c.SetAspect(2)
	if c.ViewProjectionMatrix() == before {
		t.Fatalf("aspect change should rebuild the projection")
	}
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	cc := NewCameraController()
	c := NewCamera(WithController(cc), WithLightIntensity(0.7))
	u := c.Uniform()

	if u.Size() != 80 {
		t.Fatalf("uniform size = %d, want 80", u.Size())
	}
	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("marshalled %d bytes, want 80", len(buf))
	}

	readF32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	if readF32(0) != u.ViewProj[0] || readF32(60) != u.ViewProj[15] {
		t.Fatalf("view-projection not packed at offset 0")
	}
	if readF32(64) != 5 || readF32(68) != 5 || readF32(72) != -5 {
		t.Fatalf("camera position not packed at offset 64")
	}
	if readF32(76) != 0.7 {
		t.Fatalf("light intensity = %v, want 0.7", readF32(76))
	}
}
