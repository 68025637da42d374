package scene

import "github.com/Carmen-Shannon/oxy-rts/config"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier. Defaults to "rts".
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene starts active. Defaults to true.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithTerrainConfig records the terrain settings the initial ground was built from,
// so a later ApplyConfig with the same settings does not rebuild it.
func WithTerrainConfig(tc config.TerrainConfig) SceneBuilderOption {
	return func(s *scene) {
		s.terrainCfg = &tc
	}
}
