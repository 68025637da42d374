package camera

// CameraController owns an RTS camera's CameraState and drives it with pluggable inputs.
// The render side reads the resulting pose through Position, Target and Fov; a Camera
// turns that pose into view/projection matrices each frame.
type CameraController interface {
	// AddInput registers an input. If the controller is attached the input is attached
	// immediately. An existing input with the same name is detached and replaced.
	//
	// Parameters:
	//   - in: the input to register
	AddInput(in CameraInput)

	// RemoveInput detaches and unregisters the input with the given name.
	//
	// Parameters:
	//   - name: the input's Name()
	//
	// Returns:
	//   - bool: true if an input was removed
	RemoveInput(name string) bool

	// Input returns the registered input with the given name, or nil.
	Input(name string) CameraInput

	// Inputs returns the registered inputs in registration order.
	Inputs() []CameraInput

	// Attach attaches every registered input. Inputs added later attach on registration.
	Attach()

	// Detach detaches every registered input. Calling it while detached is a no-op.
	Detach()

	// Attached reports whether the controller is attached.
	Attached() bool

	// Tick runs every input's Tick against the camera state, in registration order.
	// Should be called once per engine tick.
	Tick()

	// State returns a copy of the current camera state.
	State() CameraState

	// Position returns the rendered camera position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space look-at point
	Target() (x, y, z float32)

	// Fov returns the current vertical field of view in radians.
	Fov() float32

	// ApplyTuning replaces the runtime-adjustable settings and re-clamps the targets.
	//
	// Parameters:
	//   - t: the new tuning
	ApplyTuning(t Tuning)
}
