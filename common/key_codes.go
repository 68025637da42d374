package common

import "strings"

// Virtual key codes delivered by the window layer.
// Printable keys use their ASCII values, everything else uses the GLFW key constants.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     uint32 = 87  // W key (ASCII)
	KeyA     uint32 = 65  // A key (ASCII)
	KeyS     uint32 = 83  // S key (ASCII)
	KeyD     uint32 = 68  // D key (ASCII)
	KeyQ     uint32 = 81  // Q key (ASCII)
	KeyE     uint32 = 69  // E key (ASCII)
	KeySpace uint32 = 32  // Spacebar (ASCII)
	KeyEsc   uint32 = 256 // Escape key (GLFW)

	KeyArrowRight uint32 = 262 // Right arrow (GLFW)
	KeyArrowLeft  uint32 = 263 // Left arrow (GLFW)
	KeyArrowDown  uint32 = 264 // Down arrow (GLFW)
	KeyArrowUp    uint32 = 265 // Up arrow (GLFW)
)

// namedKeys maps the non-alphanumeric key names accepted in config files to key codes.
var namedKeys = map[string]uint32{
	"space":      KeySpace,
	"escape":     KeyEsc,
	"esc":        KeyEsc,
	"arrowright": KeyArrowRight,
	"arrowleft":  KeyArrowLeft,
	"arrowdown":  KeyArrowDown,
	"arrowup":    KeyArrowUp,
	"right":      KeyArrowRight,
	"left":       KeyArrowLeft,
	"down":       KeyArrowDown,
	"up":         KeyArrowUp,
}

// KeyCode resolves a human readable key name ("W", "ArrowUp", "space") to its key code.
// Single letters and digits resolve to their ASCII value. Matching is case-insensitive.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyCode(name string) (uint32, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return uint32(c - 'a' + 'A'), true
		case c >= '0' && c <= '9':
			return uint32(c), true
		}
	}
	code, ok := namedKeys[n]
	return code, ok
}
