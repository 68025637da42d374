package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/terrain.wgsl
var terrainShaderSource string

// ErrNoMesh is returned by Draw when no mesh has been uploaded.
var ErrNoMesh = errors.New("renderer: no mesh uploaded")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend

	width, height int
	hasMesh       bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [3]float64
}

// Renderer draws a single lit terrain mesh from the point of view of the camera uniform.
//
// A frame is: WriteCamera with the latest uniform, then Draw. UploadMesh can be called
// again at any time to replace the terrain.
type Renderer interface {
	// UploadMesh creates GPU vertex and index buffers for the terrain mesh, replacing any previous mesh.
	//
	// Parameters:
	//   - vertexData: raw vertex bytes (terrain.Vertex layout)
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(vertexData, indexData []byte, indexCount int) error

	// WriteCamera uploads the camera uniform used by the next Draw.
	//
	// Parameters:
	//   - data: the marshalled camera.GPUCameraUniform
	WriteCamera(data []byte)

	// Draw renders and presents one frame.
	//
	// Returns:
	//   - error: ErrNoMesh before the first UploadMesh, or an error if the swapchain texture could not be acquired
	Draw() error

	// Resize configures the surface for a new size. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the background color.
	SetClearColor(r, g, b float64)

	// Release frees all GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer for the given surface and registers the terrain pipeline.
// Panics if no GPU adapter or device can be obtained.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor, typically from window.Window.SurfaceDescriptor
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		width:       1280,
		height:      720,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  [3]float64{0.2, 0.2, 0.3},
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	r.backend = newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.msaa)
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2])
	r.backend.ConfigureSurface(r.width, r.height)

	var u camera.GPUCameraUniform
	if err := r.backend.RegisterTerrainPipeline(terrainShaderSource, uint64(u.Size())); err != nil {
		panic(fmt.Sprintf("renderer: failed to create terrain pipeline: %v", err))
	}
	log.Printf("[Renderer] initialized %dx%d (msaa %dx)", r.width, r.height, r.msaa)
	return r
}

func (r *renderer) UploadMesh(vertexData, indexData []byte, indexCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(vertexData) == 0 || len(indexData) == 0 || indexCount <= 0 {
		return fmt.Errorf("renderer: empty mesh (%d vertex bytes, %d index bytes)", len(vertexData), len(indexData))
	}
	if err := r.backend.InitMeshBuffers(vertexData, indexData, indexCount); err != nil {
		return fmt.Errorf("renderer: upload mesh: %w", err)
	}
	r.hasMesh = true
	return nil
}

func (r *renderer) WriteCamera(data []byte) {
	r.backend.WriteCamera(data)
}

func (r *renderer) Draw() error {
	r.mu.Lock()
	hasMesh := r.hasMesh
	r.mu.Unlock()
	if !hasMesh {
		return ErrNoMesh
	}

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}
	r.backend.DrawMesh()
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	width, height := r.width, r.height
	r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetClearColor(red, green, blue float64) {
	r.backend.SetClearColor(red, green, blue)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
	r.hasMesh = false
}
