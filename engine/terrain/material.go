package terrain

// Material is a flat-colored surface applied to terrain tiles.
type Material struct {
	Name  string
	Color [4]float32 // linear RGBA
}

// DefaultMaterials returns the two-material grass/water palette.
// Index 0 is grass, index 1 is water.
func DefaultMaterials() []Material {
	return []Material{
		{Name: "grass", Color: [4]float32{0.30, 0.55, 0.20, 1}},
		{Name: "water", Color: [4]float32{0.15, 0.35, 0.75, 1}},
	}
}

// MaterialSelector picks the material index for the tile at (row, col).
type MaterialSelector func(row, col int) int

// Checkerboard alternates material 0 and 1 between neighboring tiles.
func Checkerboard(row, col int) int {
	return row%2 ^ col%2
}
