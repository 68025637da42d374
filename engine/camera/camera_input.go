package camera

import "github.com/Carmen-Shannon/oxy-rts/engine/input"

// CameraInput is a pluggable input handler driven by a CameraController.
// Attach subscribes to the handler's event source, Detach unsubscribes and drops any
// pending input. Tick is called once per engine tick with the controller's state and
// must be a no-op while detached. Attach and Detach must be idempotent.
type CameraInput interface {
	// Name returns the handler's registration key (e.g. "keyboard").
	Name() string

	// Attach subscribes to the handler's event source.
	Attach()

	// Detach unsubscribes from the event source and clears pending input.
	Detach()

	// Attached reports whether the handler is currently subscribed.
	Attached() bool

	// Tick applies pending input to the camera state.
	//
	// Parameters:
	//   - state: the controller-owned state, valid only for the duration of the call
	Tick(state *CameraState)
}

// KeyEventSource delivers key press, key release and focus loss events.
// *input.Dispatcher satisfies it.
type KeyEventSource interface {
	OnKeyDown(fn input.KeyListener) input.ListenerID
	OnKeyUp(fn input.KeyListener) input.ListenerID
	OnFocusLost(fn input.FocusListener) input.ListenerID
	RemoveListener(id input.ListenerID) bool
}

// WheelEventSource delivers DOM-style mouse wheel deltas.
// *input.Dispatcher satisfies it.
type WheelEventSource interface {
	OnWheel(fn input.WheelListener) input.ListenerID
	RemoveListener(id input.ListenerID) bool
}
