package terrain

import "unsafe"

// Vertex is the GPU vertex layout of the terrain mesh.
// Size: 40 bytes.
type Vertex struct {
	Position [3]float32 // offset  0: @location(0) vec3<f32>
	Normal   [3]float32 // offset 12: @location(1) vec3<f32>
	Color    [4]float32 // offset 24: @location(2) vec4<f32>
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// SubMesh is the contiguous index range of a single tile.
type SubMesh struct {
	Row, Col      int
	MaterialIndex int
	VertexStart   uint32
	VertexCount   uint32
	IndexStart    uint32
	IndexCount    uint32
}
