package input

import (
	"sync"
	"sync/atomic"
)

// ListenerID identifies a registered listener so it can be removed later.
// The zero value never identifies a live listener.
type ListenerID uint64

// KeyListener receives a virtual key code.
type KeyListener func(keyCode uint32)

// WheelListener receives a DOM-style vertical wheel delta.
// Positive values mean the wheel was scrolled toward the user (down).
type WheelListener func(deltaY float32)

// FocusListener is called when the render surface loses input focus.
type FocusListener func()

type eventKind int

const (
	eventKeyDown eventKind = iota
	eventKeyUp
	eventWheel
	eventFocusLost
)

type listener struct {
	id    ListenerID
	kind  eventKind
	key   KeyListener
	wheel WheelListener
	focus FocusListener
}

// CallbackSource is the subset of a window that can feed a Dispatcher.
// engine/window.Window satisfies it.
type CallbackSource interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetScrollCallback(callback func(delta float32))
	SetFocusCallback(callback func(focused bool))
}

// Dispatcher fans window input events out to any number of listeners.
// Listeners are invoked in registration order, outside the dispatcher lock, so a
// listener may add or remove listeners (including itself) while being called.
// Safe for concurrent use.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    atomic.Uint64
	listeners []listener
}

// NewDispatcher creates an empty Dispatcher.
//
// Returns:
//   - *Dispatcher: the new dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Bind installs the dispatcher as the input callbacks of src.
// Scroll offsets from src follow the GLFW convention (positive = away from the user) and
// are negated into DOM-style deltas before being dispatched.
//
// Parameters:
//   - src: the window (or any other callback source) to read events from
func (d *Dispatcher) Bind(src CallbackSource) {
	src.SetKeyDownCallback(d.DispatchKeyDown)
	src.SetKeyUpCallback(d.DispatchKeyUp)
	src.SetScrollCallback(func(delta float32) {
		d.DispatchWheel(-delta)
	})
	src.SetFocusCallback(func(focused bool) {
		if !focused {
			d.DispatchFocusLost()
		}
	})
}

// OnKeyDown registers fn for key press (and key repeat) events.
// A nil fn is not registered and yields the zero ListenerID.
func (d *Dispatcher) OnKeyDown(fn KeyListener) ListenerID {
	if fn == nil {
		return 0
	}
	return d.add(listener{kind: eventKeyDown, key: fn})
}

// OnKeyUp registers fn for key release events.
func (d *Dispatcher) OnKeyUp(fn KeyListener) ListenerID {
	if fn == nil {
		return 0
	}
	return d.add(listener{kind: eventKeyUp, key: fn})
}

// OnWheel registers fn for mouse wheel events.
func (d *Dispatcher) OnWheel(fn WheelListener) ListenerID {
	if fn == nil {
		return 0
	}
	return d.add(listener{kind: eventWheel, wheel: fn})
}

// OnFocusLost registers fn for focus loss events.
func (d *Dispatcher) OnFocusLost(fn FocusListener) ListenerID {
	if fn == nil {
		return 0
	}
	return d.add(listener{kind: eventFocusLost, focus: fn})
}

// RemoveListener unregisters a listener. Unknown or already removed IDs are ignored.
//
// Parameters:
//   - id: the ID returned when the listener was registered
//
// Returns:
//   - bool: true if a listener was removed
func (d *Dispatcher) RemoveListener(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners across all event kinds.
func (d *Dispatcher) ListenerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// DispatchKeyDown delivers a key press to every key-down listener.
func (d *Dispatcher) DispatchKeyDown(keyCode uint32) {
	for _, l := range d.snapshot(eventKeyDown) {
		l.key(keyCode)
	}
}

// DispatchKeyUp delivers a key release to every key-up listener.
func (d *Dispatcher) DispatchKeyUp(keyCode uint32) {
	for _, l := range d.snapshot(eventKeyUp) {
		l.key(keyCode)
	}
}

// DispatchWheel delivers a DOM-style wheel delta to every wheel listener.
func (d *Dispatcher) DispatchWheel(deltaY float32) {
	for _, l := range d.snapshot(eventWheel) {
		l.wheel(deltaY)
	}
}

// DispatchFocusLost notifies every focus listener that input focus was lost.
func (d *Dispatcher) DispatchFocusLost() {
	for _, l := range d.snapshot(eventFocusLost) {
		l.focus()
	}
}

func (d *Dispatcher) add(l listener) ListenerID {
	l.id = ListenerID(d.nextID.Add(1))
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
	return l.id
}

// snapshot copies the listeners of one kind so they can be called without holding the lock.
func (d *Dispatcher) snapshot(kind eventKind) []listener {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]listener, 0, len(d.listeners))
	for _, l := range d.listeners {
		if l.kind == kind {
			out = append(out, l)
		}
	}
	return out
}
