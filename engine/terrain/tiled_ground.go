package terrain

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rts/common"
)

// TiledGround is a flat XZ ground plane split into a Rows x Cols grid of tiles.
// Every tile owns its own vertices so it can carry its own material, and its indices form
// one SubMesh. The mesh is immutable once built.
type TiledGround interface {
	// Rows returns the number of tile rows (along Z).
	Rows() int

	// Cols returns the number of tile columns (along X).
	Cols() int

	// Subdivisions returns the number of quads along each edge of a tile.
	Subdivisions() int

	// Vertices returns the mesh vertices. The slice must not be modified.
	Vertices() []Vertex

	// Indices returns the triangle list indices. The slice must not be modified.
	Indices() []uint32

	// SubMeshes returns one sub-mesh per tile in row-major order.
	SubMeshes() []SubMesh

	// Materials returns the material palette the sub-meshes index into.
	Materials() []Material

	// MaterialAt returns the material of the tile at (row, col).
	//
	// Parameters:
	//   - row: tile row in [0, Rows)
	//   - col: tile column in [0, Cols)
	//
	// Returns:
	//   - Material: the tile's material
	//   - error: error if the tile is out of range
	MaterialAt(row, col int) (Material, error)

	// VertexBytes returns the vertices as a byte view for GPU upload.
	VertexBytes() []byte

	// IndexBytes returns the indices as a byte view for GPU upload.
	IndexBytes() []byte
}

type tiledGroundImpl struct {
	rows, cols   int
	subdivisions int

	xMin, zMin float32
	xMax, zMax float32

	materials []Material
	selector  MaterialSelector
	workers   int

	vertices  []Vertex
	indices   []uint32
	subMeshes []SubMesh
}

var _ TiledGround = &tiledGroundImpl{}

// NewTiledGround builds a tiled ground mesh. Tile rows are generated in parallel on a worker pool.
// Defaults: a 20x20 grid over [0, 19] on X and Z, one quad per tile, the grass/water
// palette and a checkerboard material layout.
//
// Parameters:
//   - options: functional options to configure the ground
//
// Returns:
//   - TiledGround: the built mesh
//   - error: error if the configuration is invalid
func NewTiledGround(options ...TiledGroundOption) (TiledGround, error) {
	g := &tiledGroundImpl{
		rows:         20,
		cols:         20,
		subdivisions: 1,
		xMin:         0,
		zMin:         0,
		xMax:         19,
		zMax:         19,
		materials:    DefaultMaterials(),
		selector:     Checkerboard,
		workers:      max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(g)
	}

	if err := g.validate(); err != nil {
		return nil, err
	}
	if err := g.build(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *tiledGroundImpl) Rows() int { return g.rows }
func (g *tiledGroundImpl) Cols() int { return g.cols }
func (g *tiledGroundImpl) Subdivisions() int { return g.subdivisions }
func (g *tiledGroundImpl) Vertices() []Vertex { return g.vertices }
func (g *tiledGroundImpl) Indices() []uint32 { return g.indices }
func (g *tiledGroundImpl) SubMeshes() []SubMesh { return g.subMeshes }
func (g *tiledGroundImpl) Materials() []Material { return g.materials }
func (g *tiledGroundImpl) VertexBytes() []byte { return common.SliceToBytes(g.vertices) }
func (g *tiledGroundImpl) IndexBytes() []byte { return common.SliceToBytes(g.indices) }

func (g *tiledGroundImpl) MaterialAt(row, col int) (Material, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Material{}, fmt.Errorf("tile (%d, %d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	return g.materials[g.subMeshes[row*g.cols+col].MaterialIndex], nil
}

func (g *tiledGroundImpl) validate() error {
	switch {
	case g.rows <= 0 || g.cols <= 0:
		return fmt.Errorf("grid must have at least one tile, got %dx%d", g.rows, g.cols)
	case g.subdivisions <= 0:
		return fmt.Errorf("subdivisions must be positive, got %d", g.subdivisions)
	case g.xMax <= g.xMin || g.zMax <= g.zMin:
		return fmt.Errorf("empty extent [%v, %v] x [%v, %v]", g.xMin, g.xMax, g.zMin, g.zMax)
	case len(g.materials) == 0:
		return fmt.Errorf("at least one material is required")
	case g.selector == nil:
		return fmt.Errorf("material selector is nil")
	}
	return nil
}

// build allocates the whole mesh up front and fills each tile row from its own task.
// Rows write disjoint ranges of the shared slices so no locking is needed.
func (g *tiledGroundImpl) build() error {
	n := g.subdivisions
	vertsPerTile := (n + 1) * (n + 1)
	indicesPerTile := n * n * 6
	tiles := g.rows * g.cols

	g.vertices = make([]Vertex, tiles*vertsPerTile)
	g.indices = make([]uint32, tiles*indicesPerTile)
	g.subMeshes = make([]SubMesh, tiles)

	pool := worker.NewDynamicWorkerPool(min(g.workers, g.rows), max(g.rows, 1), 1*time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for row := range g.rows {
		wg.Add(1)
		r := row
		pool.SubmitTask(worker.Task{
			ID: r,
			Do: func() (any, error) {
				defer wg.Done()
				if err := g.buildRow(r, vertsPerTile, indicesPerTile); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return nil, err
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	pool.Stop()
	return firstErr
}

// buildRow fills every tile in one row.
func (g *tiledGroundImpl) buildRow(row, vertsPerTile, indicesPerTile int) error {
	n := g.subdivisions
	width, depth := g.xMax-g.xMin, g.zMax-g.zMin
	// Positions are computed from global grid steps so shared tile edges and the far
	// boundary land on identical coordinates.
	stepsX, stepsZ := float32(g.cols*n), float32(g.rows*n)

	for col := range g.cols {
		tile := row*g.cols + col
		mat := g.selector(row, col)
		if mat < 0 || mat >= len(g.materials) {
			return fmt.Errorf("tile (%d, %d): material index %d outside palette of %d", row, col, mat, len(g.materials))
		}
		color := g.materials[mat].Color

		vBase := tile * vertsPerTile
		iBase := tile * indicesPerTile

		for j := 0; j <= n; j++ {
			for i := 0; i <= n; i++ {
				g.vertices[vBase+j*(n+1)+i] = Vertex{
					Position: [3]float32{
						g.xMin + width*float32(col*n+i)/stepsX,
						0,
						g.zMin + depth*float32(row*n+j)/stepsZ,
					},
					Normal: [3]float32{0, 1, 0},
					Color:  color,
				}
			}
		}

		k := iBase
		for j := range n {
			for i := range n {
				a := uint32(vBase + j*(n+1) + i)
				b := a + 1
				c := a + uint32(n+1)
				d := c + 1
				// Counter-clockwise seen from above (+Y).
				g.indices[k+0] = a
				g.indices[k+1] = c
				g.indices[k+2] = b
				g.indices[k+3] = b
				g.indices[k+4] = c
				g.indices[k+5] = d
				k += 6
			}
		}

		g.subMeshes[tile] = SubMesh{
			Row:           row,
			Col:           col,
			MaterialIndex: mat,
			VertexStart:   uint32(vBase),
			VertexCount:   uint32(vertsPerTile),
			IndexStart:    uint32(iBase),
			IndexCount:    uint32(indicesPerTile),
		}
	}
	return nil
}
