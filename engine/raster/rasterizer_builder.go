package raster

// RasterizerBuilderOption is a functional option for configuring a Rasterizer.
type RasterizerBuilderOption func(*rasterizerImpl)

// WithFill sets the value written for covered pixels.
//
// Parameters:
//   - fill: the fill value
//
// Returns:
//   - RasterizerBuilderOption: functional option to set the fill value
func WithFill(fill uint32) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.fill = fill
	}
}

// WithSize preallocates the depth buffer for a width x height surface.
//
// Parameters:
//   - width, height: surface dimensions in pixels
//
// Returns:
//   - RasterizerBuilderOption: functional option to preallocate the depth buffer
func WithSize(width, height int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.depth.Reset(width, height)
	}
}
