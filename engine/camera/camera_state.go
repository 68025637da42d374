package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MovementSource records which input owns the active translation ease.
type MovementSource int

const (
	// MovedByNone means no input is currently easing the camera.
	MovedByNone MovementSource = iota
	// MovedByKeys means the keyboard input owns the ease until it snaps.
	MovedByKeys
)

func (m MovementSource) String() string {
	switch m {
	case MovedByKeys:
		return "keys"
	default:
		return "none"
	}
}

// Bounds is the inclusive XZ box the translation target is clamped into.
type Bounds struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// ZoomBounds is the inclusive range the zoom target (field of view) is clamped into.
type ZoomBounds struct {
	Min, Max float32
}

// CameraState is the full mutable state of an RTS camera rig.
// It is owned by a CameraController and handed by pointer to each CameraInput's Tick.
// Inputs must not retain the pointer beyond the call.
type CameraState struct {
	// Position is the rendered camera position.
	Position mgl32.Vec3
	// LookAt is the point the camera aims at and orbits around.
	LookAt mgl32.Vec3
	// TargetPosition is the position the camera eases toward.
	TargetPosition mgl32.Vec3

	// Speed is the translation applied per tick for each held direction key.
	Speed float32

	RotationAngle float32
	RotationSpeed float32
	// Radius is the horizontal orbit distance used when rotating around LookAt.
	Radius float32

	Bounds Bounds

	// EaseFactor is the per-tick lerp factor toward TargetPosition.
	EaseFactor float32
	// SnapDistance is the remaining distance below which the ease snaps to the target.
	SnapDistance float32

	Fov           float32
	TargetZoom    float32
	ZoomStep      float32
	ZoomIncrement float32
	ZoomBounds    ZoomBounds

	MovedBy MovementSource
}

// Tuning is the runtime-adjustable subset of CameraState.
// Applying a Tuning never moves the camera directly; it only changes how inputs act.
type Tuning struct {
	Speed         float32
	RotationSpeed float32
	Bounds        Bounds
	EaseFactor    float32
	SnapDistance  float32
	ZoomStep      float32
	ZoomIncrement float32
	ZoomBounds    ZoomBounds
}

// Yaw returns the horizontal heading from Position toward LookAt, in radians.
// A yaw of zero faces +Z; positive yaw turns toward +X.
func (s *CameraState) Yaw() float32 {
	dx := s.LookAt.X() - s.Position.X()
	dz := s.LookAt.Z() - s.Position.Z()
	if dx == 0 && dz == 0 {
		return 0
	}
	return float32(math.Atan2(float64(dx), float64(dz)))
}

// Nudge adds a camera-local horizontal offset to TargetPosition.
// The offset is rotated by the current yaw, so (0, 0, d) moves forward and (d, 0, 0) moves right.
//
// Parameters:
//   - local: the offset in camera space
func (s *CameraState) Nudge(local mgl32.Vec3) {
	s.TargetPosition = s.TargetPosition.Add(mgl32.Rotate3DY(s.Yaw()).Mul3x1(local))
}

// Orbit moves the camera around LookAt by delta radians at the current radius.
// Position keeps its height, LookAt is dropped to the ground plane, and TargetPosition
// is reset to the new position so no translation ease follows the rotation.
//
// Parameters:
//   - delta: change applied to RotationAngle
func (s *CameraState) Orbit(delta float32) {
	s.RotationAngle += delta
	tx, tz := s.LookAt.X(), s.LookAt.Z()
	sin, cos := math.Sincos(float64(s.RotationAngle))
	s.Position = mgl32.Vec3{
		tx + s.Radius*float32(sin),
		s.Position.Y(),
		tz + s.Radius*float32(cos),
	}
	s.LookAt = mgl32.Vec3{tx, 0, tz}
	s.TargetPosition = s.Position
}

// ClampTarget clamps TargetPosition's X and Z into Bounds.
func (s *CameraState) ClampTarget() {
	s.TargetPosition[0] = common.Clamp(s.TargetPosition[0], s.Bounds.MinX, s.Bounds.MaxX)
	s.TargetPosition[2] = common.Clamp(s.TargetPosition[2], s.Bounds.MinZ, s.Bounds.MaxZ)
}

// ClampZoom clamps TargetZoom into ZoomBounds.
func (s *CameraState) ClampZoom() {
	s.TargetZoom = common.Clamp(s.TargetZoom, s.ZoomBounds.Min, s.ZoomBounds.Max)
}

// EaseToward moves Position (and LookAt, by the same delta) toward TargetPosition.
// Uses EaseFactor per call, or snaps when the remaining distance is below SnapDistance.
// Does nothing when Position is already on the target, so a rotation (which resets the
// target onto the position) leaves the current owner of the ease in place.
//
// Returns:
//   - bool: true if this call snapped onto the target
func (s *CameraState) EaseToward() bool {
	diff := s.TargetPosition.Sub(s.Position)
	dist := diff.Len()
	if dist == 0 {
		return false
	}
	if dist < s.SnapDistance {
		s.Position = s.TargetPosition
		s.LookAt = s.LookAt.Add(diff)
		return true
	}
	step := diff.Mul(s.EaseFactor)
	s.Position = s.Position.Add(step)
	s.LookAt = s.LookAt.Add(step)
	return false
}

// ApplyTuning copies t into the state and re-clamps both targets into the new bounds.
func (s *CameraState) ApplyTuning(t Tuning) {
	s.Speed = t.Speed
	s.RotationSpeed = t.RotationSpeed
	s.Bounds = t.Bounds
	s.EaseFactor = t.EaseFactor
	s.SnapDistance = t.SnapDistance
	s.ZoomStep = t.ZoomStep
	s.ZoomIncrement = t.ZoomIncrement
	s.ZoomBounds = t.ZoomBounds
	s.ClampTarget()
	s.ClampZoom()
}

// Tuning extracts the runtime-adjustable settings from the state.
func (s CameraState) Tuning() Tuning {
	return Tuning{
		Speed:         s.Speed,
		RotationSpeed: s.RotationSpeed,
		Bounds:        s.Bounds,
		EaseFactor:    s.EaseFactor,
		SnapDistance:  s.SnapDistance,
		ZoomStep:      s.ZoomStep,
		ZoomIncrement: s.ZoomIncrement,
		ZoomBounds:    s.ZoomBounds,
	}
}
