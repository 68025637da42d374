package terrain

// TiledGroundOption is a functional option for configuring a TiledGround.
type TiledGroundOption func(*tiledGroundImpl)

// WithGrid sets the number of tiles.
//
// Parameters:
//   - rows: tile rows along Z
//   - cols: tile columns along X
//
// Returns:
//   - TiledGroundOption: functional option to set the grid size
func WithGrid(rows, cols int) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.rows = rows
		g.cols = cols
	}
}

// WithExtent sets the world-space rectangle the ground covers.
//
// Parameters:
//   - xMin, zMin: the minimum corner
//   - xMax, zMax: the maximum corner
//
// Returns:
//   - TiledGroundOption: functional option to set the extent
func WithExtent(xMin, zMin, xMax, zMax float32) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.xMin, g.zMin = xMin, zMin
		g.xMax, g.zMax = xMax, zMax
	}
}

// WithSubdivisions sets the number of quads along each edge of every tile.
func WithSubdivisions(n int) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.subdivisions = n
	}
}

// WithMaterials replaces the material palette.
func WithMaterials(materials ...Material) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.materials = materials
	}
}

// WithMaterialSelector sets how tiles pick their material. Defaults to Checkerboard.
func WithMaterialSelector(selector MaterialSelector) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.selector = selector
	}
}

// WithWorkers sets the maximum number of goroutines used to build tile rows.
func WithWorkers(n int) TiledGroundOption {
	return func(g *tiledGroundImpl) {
		g.workers = max(n, 1)
	}
}
