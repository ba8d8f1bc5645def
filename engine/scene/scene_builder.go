package scene

import (
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
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

// WithObjects appends initial objects in draw order.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithInput shares an input manager, e.g. one fed by a window's key callbacks.
//
// Parameters:
//   - in: the input manager
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInput(in input.Manager) SceneBuilderOption {
	return func(s *scene) {
		s.input = in
	}
}

// WithRasterizer replaces the default rasterizer, e.g. to change the fill value.
//
// Parameters:
//   - r: the rasterizer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRasterizer(r raster.Rasterizer) SceneBuilderOption {
	return func(s *scene) {
		s.rast = r
	}
}

// WithComputeWorkers sets the number of worker goroutines used by the vertex stage of Render.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
