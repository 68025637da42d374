// Package config loads the YAML settings file of the RTS demo and watches it for changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/terrain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full settings file. Missing fields keep their Default values.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Engine  EngineConfig  `yaml:"engine"`
	Camera  CameraConfig  `yaml:"camera"`
	Keys    KeysConfig    `yaml:"keys"`
	Terrain TerrainConfig `yaml:"terrain"`
	Light   LightConfig   `yaml:"light"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type EngineConfig struct {
	TickRate    float64 `yaml:"tick_rate"`
	FrameLimit  float64 `yaml:"frame_limit"`
	Profiling   bool    `yaml:"profiling"`
	PresentMode string  `yaml:"present_mode"`
	MSAA        bool    `yaml:"msaa"`
}

type BoundsConfig struct {
	MinX float32 `yaml:"min_x"`
	MaxX float32 `yaml:"max_x"`
	MinZ float32 `yaml:"min_z"`
	MaxZ float32 `yaml:"max_z"`
}

type EasingConfig struct {
	Factor       float32 `yaml:"factor"`
	SnapDistance float32 `yaml:"snap_distance"`
}

type ZoomConfig struct {
	Min       float32 `yaml:"min"`
	Max       float32 `yaml:"max"`
	Step      float32 `yaml:"step"`
	Increment float32 `yaml:"increment"`
}

// CameraConfig holds the initial pose and the tuning of the RTS camera.
// Only the tuning fields are applied on hot reload; the pose is read once at startup.
type CameraConfig struct {
	Position      [3]float32   `yaml:"position"`
	LookAt        [3]float32   `yaml:"look_at"`
	Fov           float32      `yaml:"fov"`
	Speed         float32      `yaml:"speed"`
	RotationSpeed float32      `yaml:"rotation_speed"`
	Bounds        BoundsConfig `yaml:"bounds"`
	Easing        EasingConfig `yaml:"easing"`
	Zoom          ZoomConfig   `yaml:"zoom"`
}

// KeysConfig binds key names (see common.KeyCode) to camera actions.
type KeysConfig struct {
	Up          []string `yaml:"up"`
	Down        []string `yaml:"down"`
	Left        []string `yaml:"left"`
	Right       []string `yaml:"right"`
	RotateLeft  []string `yaml:"rotate_left"`
	RotateRight []string `yaml:"rotate_right"`
}

type MaterialConfig struct {
	Name  string   `yaml:"name"`
	Color HexColor `yaml:"color"`
}

type TerrainConfig struct {
	Rows         int              `yaml:"rows"`
	Cols         int              `yaml:"cols"`
	XMin         float32          `yaml:"x_min"`
	ZMin         float32          `yaml:"z_min"`
	XMax         float32          `yaml:"x_max"`
	ZMax         float32          `yaml:"z_max"`
	Subdivisions int              `yaml:"subdivisions"`
	Materials    []MaterialConfig `yaml:"materials"`
}

type LightConfig struct {
	Intensity float32 `yaml:"intensity"`
}

// Default returns the built-in settings: a 20x20 grass/water board over [0, 19] viewed from
// (5, 5, -5), arrows/WASD to pan, Q/E to rotate.
func Default() Config {
	materials := terrain.DefaultMaterials()
	mats := make([]MaterialConfig, len(materials))
	for i, m := range materials {
		mats[i] = MaterialConfig{Name: m.Name, Color: HexColor(m.Color)}
	}

	return Config{
		Window: WindowConfig{
			Title:  "oxy-rts",
			Width:  1280,
			Height: 720,
		},
		Engine: EngineConfig{
			TickRate:    60,
			FrameLimit:  0,
			Profiling:   false,
			PresentMode: "vsync",
			MSAA:        true,
		},
		Camera: CameraConfig{
			Position:      [3]float32{5, 5, -5},
			LookAt:        [3]float32{0, 0, 0},
			Fov:           1.0,
			Speed:         0.4,
			RotationSpeed: 0.02,
			Bounds:        BoundsConfig{MinX: -5, MaxX: 55, MinZ: -5, MaxZ: 55},
			Easing:        EasingConfig{Factor: 0.02, SnapDistance: 0.01},
			Zoom:          ZoomConfig{Min: 0.5, Max: 1.4, Step: 0.2, Increment: 0.005},
		},
		Keys: KeysConfig{
			Up:          []string{"ArrowUp", "W"},
			Down:        []string{"ArrowDown", "S"},
			Left:        []string{"ArrowLeft", "A"},
			Right:       []string{"ArrowRight", "D"},
			RotateLeft:  []string{"Q"},
			RotateRight: []string{"E"},
		},
		Terrain: TerrainConfig{
			Rows:         20,
			Cols:         20,
			XMin:         0,
			ZMin:         0,
			XMax:         19,
			ZMax:         19,
			Subdivisions: 1,
			Materials:    mats,
		},
		Light: LightConfig{
			Intensity: 0.7,
		},
	}
}

// Load reads and validates the settings file at path.
//
// Parameters:
//   - path: the YAML file to read
//
// Returns:
//   - Config: the settings, with unset fields taken from Default
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML settings over Default and validates the result.
// Unknown keys are rejected so a typo does not silently fall back to a default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Engine.TickRate <= 0 {
		return invalid("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	}
	if c.Engine.FrameLimit < 0 {
		return invalid("engine.frame_limit must not be negative, got %v", c.Engine.FrameLimit)
	}
	if c.Engine.PresentMode != "vsync" && c.Engine.PresentMode != "uncapped" {
		return invalid("engine.present_mode %q (want vsync or uncapped)", c.Engine.PresentMode)
	}

	cam := c.Camera
	if cam.Bounds.MinX > cam.Bounds.MaxX || cam.Bounds.MinZ > cam.Bounds.MaxZ {
		return invalid("camera.bounds %+v are inverted", cam.Bounds)
	}
	if cam.Zoom.Min <= 0 || cam.Zoom.Min > cam.Zoom.Max {
		return invalid("camera.zoom range [%v, %v]", cam.Zoom.Min, cam.Zoom.Max)
	}
	if cam.Fov < cam.Zoom.Min || cam.Fov > cam.Zoom.Max {
		return invalid("camera.fov %v outside zoom range [%v, %v]", cam.Fov, cam.Zoom.Min, cam.Zoom.Max)
	}
	if cam.Speed < 0 || cam.RotationSpeed < 0 || cam.Zoom.Step < 0 || cam.Zoom.Increment < 0 {
		return invalid("camera speeds and zoom steps must not be negative")
	}
	if cam.Easing.Factor <= 0 || cam.Easing.Factor > 1 {
		return invalid("camera.easing.factor %v outside (0, 1]", cam.Easing.Factor)
	}
	if cam.Easing.SnapDistance < 0 {
		return invalid("camera.easing.snap_distance must not be negative")
	}

	if _, err := c.Keys.Bindings(); err != nil {
		return err
	}

	t := c.Terrain
	if t.Rows <= 0 || t.Cols <= 0 || t.Subdivisions <= 0 {
		return invalid("terrain grid %dx%d with %d subdivisions", t.Rows, t.Cols, t.Subdivisions)
	}
	if t.XMax <= t.XMin || t.ZMax <= t.ZMin {
		return invalid("terrain extent [%v, %v] x [%v, %v] is empty", t.XMin, t.XMax, t.ZMin, t.ZMax)
	}
	if len(t.Materials) < 2 {
		return invalid("terrain needs two materials for the checkerboard, got %d", len(t.Materials))
	}

	if c.Light.Intensity < 0 {
		return invalid("light.intensity must not be negative")
	}
	return nil
}

// Tuning converts the camera section into runtime camera tuning.
func (c CameraConfig) Tuning() camera.Tuning {
	return camera.Tuning{
		Speed:         c.Speed,
		RotationSpeed: c.RotationSpeed,
		Bounds: camera.Bounds{
			MinX: c.Bounds.MinX, MaxX: c.Bounds.MaxX,
			MinZ: c.Bounds.MinZ, MaxZ: c.Bounds.MaxZ,
		},
		EaseFactor:    c.Easing.Factor,
		SnapDistance:  c.Easing.SnapDistance,
		ZoomStep:      c.Zoom.Step,
		ZoomIncrement: c.Zoom.Increment,
		ZoomBounds:    camera.ZoomBounds{Min: c.Zoom.Min, Max: c.Zoom.Max},
	}
}

// ControllerOptions converts the camera section into controller construction options.
func (c CameraConfig) ControllerOptions() []camera.CameraControllerOption {
	return []camera.CameraControllerOption{
		camera.WithPosition(c.Position[0], c.Position[1], c.Position[2]),
		camera.WithLookAt(c.LookAt[0], c.LookAt[1], c.LookAt[2]),
		camera.WithFov(c.Fov),
		camera.WithSpeed(c.Speed),
		camera.WithRotationSpeed(c.RotationSpeed),
		camera.WithBounds(c.Bounds.MinX, c.Bounds.MaxX, c.Bounds.MinZ, c.Bounds.MaxZ),
		camera.WithEasing(c.Easing.Factor, c.Easing.SnapDistance),
		camera.WithZoomBounds(c.Zoom.Min, c.Zoom.Max),
		camera.WithZoomStep(c.Zoom.Step),
		camera.WithZoomIncrement(c.Zoom.Increment),
	}
}

// Bindings resolves the key names into key codes.
//
// Returns:
//   - camera.KeyBindings: the resolved bindings
//   - error: error wrapping ErrInvalidConfig if a name is unknown
func (k KeysConfig) Bindings() (camera.KeyBindings, error) {
	resolve := func(action string, names []string) ([]uint32, error) {
		codes := make([]uint32, 0, len(names))
		for _, name := range names {
			code, ok := common.KeyCode(name)
			if !ok {
				return nil, fmt.Errorf("%w: keys.%s: unknown key %q", ErrInvalidConfig, action, name)
			}
			codes = append(codes, code)
		}
		return codes, nil
	}

	var b camera.KeyBindings
	var err error
	if b.Up, err = resolve("up", k.Up); err != nil {
		return camera.KeyBindings{}, err
	}
	if b.Down, err = resolve("down", k.Down); err != nil {
		return camera.KeyBindings{}, err
	}
	if b.Left, err = resolve("left", k.Left); err != nil {
		return camera.KeyBindings{}, err
	}
	if b.Right, err = resolve("right", k.Right); err != nil {
		return camera.KeyBindings{}, err
	}
	if b.RotateLeft, err = resolve("rotate_left", k.RotateLeft); err != nil {
		return camera.KeyBindings{}, err
	}
	if b.RotateRight, err = resolve("rotate_right", k.RotateRight); err != nil {
		return camera.KeyBindings{}, err
	}
	return b, nil
}

// GroundOptions converts the terrain section into tiled ground options.
func (t TerrainConfig) GroundOptions() []terrain.TiledGroundOption {
	mats := make([]terrain.Material, len(t.Materials))
	for i, m := range t.Materials {
		mats[i] = terrain.Material{Name: m.Name, Color: [4]float32(m.Color)}
	}
	return []terrain.TiledGroundOption{
		terrain.WithGrid(t.Rows, t.Cols),
		terrain.WithExtent(t.XMin, t.ZMin, t.XMax, t.ZMax),
		terrain.WithSubdivisions(t.Subdivisions),
		terrain.WithMaterials(mats...),
	}
}
