package scene

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/config"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/terrain"
)

// Renderer is the subset of renderer.Renderer the scene draws through.
type Renderer interface {
	UploadMesh(vertexData, indexData []byte, indexCount int) error
	WriteCamera(data []byte)
	Draw() error
	Resize(width, height int)
}

// Scene is an RTS view of a tiled ground: a camera rig driven by its controller,
// one terrain mesh and the renderer that draws it.
// Scenes can be paused via the Active flag; an inactive scene neither ticks nor draws.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether the scene ticks and renders.
	Active() bool

	// SetActive sets whether the scene ticks and renders.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the camera controller ticked by the scene.
	Controller() camera.CameraController

	// Ground returns the terrain currently drawn by the scene.
	Ground() terrain.TiledGround

	// SetGround replaces the terrain and uploads its mesh.
	//
	// Parameters:
	//   - ground: the new terrain
	//
	// Returns:
	//   - error: error if the mesh upload fails, in which case the previous ground is kept
	SetGround(ground terrain.TiledGround) error

	// Tick advances the camera rig by one step and refreshes the camera matrices.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// Render uploads the camera uniform and draws the terrain.
	//
	// Returns:
	//   - error: error if the renderer fails to draw
	Render() error

	// Resize updates the camera aspect ratio and the renderer's surface.
	// Zero sizes (minimized windows) are ignored.
	Resize(width, height int)

	// ApplyConfig applies hot-reloadable settings: camera tuning, key bindings,
	// light intensity, and the terrain layout (rebuilt only when it changed).
	//
	// Parameters:
	//   - cfg: validated settings
	//
	// Returns:
	//   - error: error if the key bindings or the terrain cannot be built
	ApplyConfig(cfg config.Config) error
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam        camera.Camera
	controller camera.CameraController
	ground     terrain.TiledGround
	r          Renderer

	// terrain settings the current ground was built from, nil until the first ApplyConfig
	terrainCfg *config.TerrainConfig
}

var _ Scene = &scene{}

// NewRTSScene creates an active scene, attaches controller to cam and uploads the ground mesh.
// Panics if any argument is nil.
//
// Parameters:
//   - controller: the camera controller ticked every Tick
//   - cam: the camera whose uniform is uploaded every Render
//   - ground: the terrain to draw
//   - r: the renderer
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the new scene
//   - error: error if the initial mesh upload fails
func NewRTSScene(controller camera.CameraController, cam camera.Camera, ground terrain.TiledGround, r Renderer, options ...SceneBuilderOption) (Scene, error) {
	if controller == nil {
		panic("scene: NewRTSScene requires a non-nil CameraController")
	}
	if cam == nil {
		panic("scene: NewRTSScene requires a non-nil Camera")
	}
	if ground == nil {
		panic("scene: NewRTSScene requires a non-nil TiledGround")
	}
	if r == nil {
		panic("scene: NewRTSScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:         &sync.RWMutex{},
		name:       "rts",
		active:     true,
		cam:        cam,
		controller: controller,
		r:          r,
	}
	for _, option := range options {
		option(s)
	}

	if cam.Controller() != controller {
		cam.SetController(controller)
	}
	if err := s.SetGround(ground); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Ground() terrain.TiledGround {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ground
}

func (s *scene) SetGround(ground terrain.TiledGround) error {
	if ground == nil {
		return fmt.Errorf("scene: nil ground")
	}
	if err := s.r.UploadMesh(ground.VertexBytes(), ground.IndexBytes(), len(ground.Indices())); err != nil {
		return fmt.Errorf("scene: upload ground: %w", err)
	}
	s.mu.Lock()
	s.ground = ground
	s.mu.Unlock()
	return nil
}

func (s *scene) Tick(deltaTime float32) {
	if !s.Active() {
		return
	}
	s.controller.Tick()
	s.cam.Update()
}

func (s *scene) Render() error {
	if !s.Active() {
		return nil
	}
	u := s.cam.Uniform()
	s.r.WriteCamera(u.Marshal())
	return s.r.Draw()
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
	s.r.Resize(width, height)
}

func (s *scene) ApplyConfig(cfg config.Config) error {
	bindings, err := cfg.Keys.Bindings()
	if err != nil {
		return fmt.Errorf("scene: apply config: %w", err)
	}

	s.controller.ApplyTuning(cfg.Camera.Tuning())
	if kb, ok := s.controller.Input("keyboard").(*camera.KeyboardInput); ok {
		kb.SetKeyBindings(bindings)
	}
	s.cam.SetLightIntensity(cfg.Light.Intensity)

	s.mu.RLock()
	unchanged := s.terrainCfg != nil && reflect.DeepEqual(*s.terrainCfg, cfg.Terrain)
	s.mu.RUnlock()
	if unchanged {
		return nil
	}

	ground, err := terrain.NewTiledGround(cfg.Terrain.GroundOptions()...)
	if err != nil {
		return fmt.Errorf("scene: rebuild ground: %w", err)
	}
	if err := s.SetGround(ground); err != nil {
		return err
	}
	tc := cfg.Terrain
	s.mu.Lock()
	s.terrainCfg = &tc
	s.mu.Unlock()
	return nil
}
