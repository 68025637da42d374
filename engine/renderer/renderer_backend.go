package renderer

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ParsePresentMode maps a config value ("vsync" or "uncapped") to a PresentMode.
//
// Returns:
//   - PresentMode: the parsed mode
//   - bool: false if the name is unknown
func ParsePresentMode(name string) (PresentMode, bool) {
	switch name {
	case "vsync", "":
		return PresentModeVSync, true
	case "uncapped":
		return PresentModeUncapped, true
	}
	return PresentModeVSync, false
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU API the Renderer drives.
// The WebGPU implementation is the only one.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA and depth targets for the given size.
	ConfigureSurface(width, height int)

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background color of the main pass.
	SetClearColor(r, g, b float64)

	// RegisterTerrainPipeline compiles the terrain shader and creates the render pipeline
	// and camera bind group.
	//
	// Parameters:
	//   - source: WGSL source with vs_main/fs_main entry points
	//   - cameraUniformSize: size of the camera uniform buffer in bytes
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterTerrainPipeline(source string, cameraUniformSize uint64) error

	// InitMeshBuffers uploads vertex and index data, replacing any previous mesh.
	InitMeshBuffers(vertexData, indexData []byte, indexCount int) error

	// WriteCamera writes the camera uniform buffer.
	WriteCamera(data []byte)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	BeginFrame() error

	// DrawMesh encodes the terrain draw within the current render pass.
	DrawMesh()

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}
