package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial camera position. The translation target starts there too.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Position = mgl32.Vec3{x, y, z}
	}
}

// WithLookAt sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the look-at point
func WithLookAt(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.LookAt = mgl32.Vec3{x, y, z}
	}
}

// WithSpeed sets the translation per tick for each held direction key.
func WithSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Speed = speed
	}
}

// WithRotationSpeed sets the orbit angle per tick for each held rotate key, in radians.
func WithRotationSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.RotationSpeed = speed
	}
}

// WithRadius overrides the orbit radius. By default it is the horizontal distance
// between the initial position and look-at point.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Radius = radius
	}
}

// WithBounds sets the XZ box the translation target is clamped into.
//
// Parameters:
//   - minX, maxX: X range
//   - minZ, maxZ: Z range
//
// Returns:
//   - CameraControllerOption: functional option to set the bounds
func WithBounds(minX, maxX, minZ, maxZ float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Bounds = Bounds{MinX: minX, MaxX: maxX, MinZ: minZ, MaxZ: maxZ}
	}
}

// WithFov sets the initial field of view in radians. The zoom target starts there too.
func WithFov(fov float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.Fov = fov
	}
}

// WithZoomBounds sets the range the zoom target is clamped into.
func WithZoomBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.ZoomBounds = ZoomBounds{Min: min, Max: max}
	}
}

// WithZoomStep sets how far one wheel interaction moves the zoom target.
func WithZoomStep(step float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.ZoomStep = step
	}
}

// WithZoomIncrement sets how far the field of view moves toward the zoom target per tick.
func WithZoomIncrement(increment float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.ZoomIncrement = increment
	}
}

// WithEasing sets the translation ease.
//
// Parameters:
//   - factor: lerp factor applied per tick
//   - snapDistance: remaining distance below which the camera snaps onto the target
//
// Returns:
//   - CameraControllerOption: functional option to set the easing
func WithEasing(factor, snapDistance float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.state.EaseFactor = factor
		cc.state.SnapDistance = snapDistance
	}
}

// WithInputs registers inputs at construction time.
func WithInputs(inputs ...CameraInput) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		for _, in := range inputs {
			cc.addInput(in)
		}
	}
}
