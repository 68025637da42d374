package camera

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// KeyAction is the camera effect bound to a key.
type KeyAction int

const (
	KeyActionNone KeyAction = iota
	KeyActionForward
	KeyActionBackward
	KeyActionLeft
	KeyActionRight
	KeyActionRotateLeft
	KeyActionRotateRight
)

// KeyBindings lists the key codes bound to each camera action.
type KeyBindings struct {
	Up          []uint32
	Down        []uint32
	Left        []uint32
	Right       []uint32
	RotateLeft  []uint32
	RotateRight []uint32
}

// DefaultKeyBindings returns arrows + WASD for movement and Q/E for rotation.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Up:          []uint32{common.KeyArrowUp, common.KeyW},
		Down:        []uint32{common.KeyArrowDown, common.KeyS},
		Left:        []uint32{common.KeyArrowLeft, common.KeyA},
		Right:       []uint32{common.KeyArrowRight, common.KeyD},
		RotateLeft:  []uint32{common.KeyQ},
		RotateRight: []uint32{common.KeyE},
	}
}

// actions flattens the bindings into a lookup table.
// A code bound to several actions keeps the first one in left, up, right, down,
// rotate-left, rotate-right order.
func (b KeyBindings) actions() map[uint32]KeyAction {
	m := make(map[uint32]KeyAction)
	bind := func(codes []uint32, action KeyAction) {
		for _, c := range codes {
			if _, taken := m[c]; !taken {
				m[c] = action
			}
		}
	}
	bind(b.Left, KeyActionLeft)
	bind(b.Up, KeyActionForward)
	bind(b.Right, KeyActionRight)
	bind(b.Down, KeyActionBackward)
	bind(b.RotateLeft, KeyActionRotateLeft)
	bind(b.RotateRight, KeyActionRotateRight)
	return m
}

// KeyboardInputOption is a functional option for configuring a KeyboardInput.
type KeyboardInputOption func(*KeyboardInput)

// WithKeyBindings replaces the default key bindings.
//
// Parameters:
//   - bindings: the key codes for each action
//
// Returns:
//   - KeyboardInputOption: functional option to set the bindings
func WithKeyBindings(bindings KeyBindings) KeyboardInputOption {
	return func(k *KeyboardInput) {
		k.bindings = bindings.actions()
	}
}

// KeyboardInput pans the camera with direction keys and orbits it with rotate keys.
// Held keys are tracked as a set keyed by key code; each entry remembers its press
// sequence so a tick applies keys in the order they went down.
type KeyboardInput struct {
	mu *sync.Mutex

	source   KeyEventSource
	bindings map[uint32]KeyAction

	held    map[uint32]uint64
	nextSeq uint64

	// claim is set by a recognized key-down and consumed by the next Tick.
	claim bool

	attached  bool
	listeners []input.ListenerID
}

var _ CameraInput = &KeyboardInput{}

// NewKeyboardInput creates a detached keyboard input reading from source.
//
// Parameters:
//   - source: the key event source (usually an *input.Dispatcher)
//   - options: functional options to configure the input
//
// Returns:
//   - *KeyboardInput: the new input
func NewKeyboardInput(source KeyEventSource, options ...KeyboardInputOption) *KeyboardInput {
	k := &KeyboardInput{
		mu:       &sync.Mutex{},
		source:   source,
		bindings: DefaultKeyBindings().actions(),
		held:     make(map[uint32]uint64),
	}
	for _, option := range options {
		option(k)
	}
	return k
}

func (k *KeyboardInput) Name() string {
	return "keyboard"
}

func (k *KeyboardInput) Attach() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.attached || k.source == nil {
		return
	}
	k.listeners = []input.ListenerID{
		k.source.OnKeyDown(k.onKeyDown),
		k.source.OnKeyUp(k.onKeyUp),
		k.source.OnFocusLost(k.onFocusLost),
	}
	k.attached = true
}

func (k *KeyboardInput) Detach() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.attached {
		return
	}
	for _, id := range k.listeners {
		k.source.RemoveListener(id)
	}
	k.listeners = nil
	clear(k.held)
	k.claim = false
	k.attached = false
}

func (k *KeyboardInput) Attached() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.attached
}

// SetKeyBindings replaces the key bindings. Held keys that are no longer bound are released.
//
// Parameters:
//   - bindings: the new key codes for each action
func (k *KeyboardInput) SetKeyBindings(bindings KeyBindings) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings = bindings.actions()
	for code := range k.held {
		if _, ok := k.bindings[code]; !ok {
			delete(k.held, code)
		}
	}
}

// HeldKeys returns the currently held, recognized key codes in press order.
func (k *KeyboardInput) HeldKeys() []uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.orderedHeld()
}

func (k *KeyboardInput) Tick(state *CameraState) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.attached {
		return
	}

	if k.claim {
		if state.MovedBy == MovedByNone {
			state.MovedBy = MovedByKeys
		}
		k.claim = false
	}

	for _, code := range k.orderedHeld() {
		speed := state.Speed
		switch k.bindings[code] {
		case KeyActionLeft:
			state.Nudge(mgl32.Vec3{-speed, 0, 0})
		case KeyActionForward:
			state.Nudge(mgl32.Vec3{0, 0, speed})
		case KeyActionRight:
			state.Nudge(mgl32.Vec3{speed, 0, 0})
		case KeyActionBackward:
			state.Nudge(mgl32.Vec3{0, 0, -speed})
		case KeyActionRotateLeft:
			state.Orbit(state.RotationSpeed)
		case KeyActionRotateRight:
			state.Orbit(-state.RotationSpeed)
		}
	}

	state.ClampTarget()

	if state.MovedBy == MovedByKeys && state.EaseToward() {
		state.MovedBy = MovedByNone
	}
}

func (k *KeyboardInput) onKeyDown(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	// A dispatch already in flight when Detach ran must not refill the held set.
	if !k.attached {
		return
	}
	if _, ok := k.bindings[keyCode]; !ok {
		return
	}
	if _, down := k.held[keyCode]; !down {
		k.held[keyCode] = k.nextSeq
		k.nextSeq++
	}
	k.claim = true
}

func (k *KeyboardInput) onKeyUp(keyCode uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, keyCode)
}

func (k *KeyboardInput) onFocusLost() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.held)
}

// orderedHeld returns held key codes sorted by press sequence.
// Caller must hold the mutex.
func (k *KeyboardInput) orderedHeld() []uint32 {
	codes := make([]uint32, 0, len(k.held))
	for code := range k.held {
		codes = append(codes, code)
	}
	slices.SortFunc(codes, func(a, b uint32) int {
		return cmp.Compare(k.held[a], k.held[b])
	})
	return codes
}
