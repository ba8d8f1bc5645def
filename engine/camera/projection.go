package camera

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
	"github.com/chewxy/math32"
)

// Projection is a frozen copy of a camera's matrices and surface size for one frame.
// It is a plain value and safe to use from any number of goroutines.
type Projection struct {
	// View transforms world space to camera-local space.
	View [16]float32
	// Projection maps camera-local space to clip space with depth in [0, 1].
	Projection [16]float32
	// Width and Height are the output surface size in pixels.
	Width, Height int
	// Viewport is the screen AABB [0, Width) x [0, Height).
	Viewport raster.AABB
}

// ProjectTriangle maps a camera-local triangle to pixel coordinates and per-vertex normalized depth.
// NDC x in [-1, 1] maps to [0, Width] left to right and NDC y in [-1, 1] maps to [Height, 0], so screen y grows downward.
// A vertex at or behind the eye plane gets +Inf depth, which keeps the whole triangle out of the depth test.
//
// Parameters:
//   - t: triangle in camera-local space
//
// Returns:
//   - common.Triangle2: vertices in pixels
//   - [3]float32: normalized depth per vertex
func (p Projection) ProjectTriangle(t common.Triangle3) (common.Triangle2, [3]float32) {
	s0, z0 := p.projectVertex(t.V0)
	s1, z1 := p.projectVertex(t.V1)
	s2, z2 := p.projectVertex(t.V2)
	return common.Triangle2{V0: s0, V1: s1, V2: s2}, [3]float32{z0, z1, z2}
}

// ProjectWorldTriangle applies the view transform and then projects.
//
// Parameters:
//   - t: triangle in world space
//
// Returns:
//   - common.Triangle2: vertices in pixels
//   - [3]float32: normalized depth per vertex
func (p Projection) ProjectWorldTriangle(t common.Triangle3) (common.Triangle2, [3]float32) {
	return p.ProjectTriangle(t.ApplyTransform(&p.View))
}

// ProjectVertex maps one camera-local point to pixel coordinates and normalized depth,
// with the same conventions as ProjectTriangle.
//
// Parameters:
//   - v: point in camera-local space
//
// Returns:
//   - common.Vec2: position in pixels
//   - float32: normalized depth, +Inf at or behind the eye plane
func (p Projection) ProjectVertex(v common.Vec3) (common.Vec2, float32) {
	return p.projectVertex(v)
}

func (p Projection) projectVertex(v common.Vec3) (common.Vec2, float32) {
	ndc, w := common.ProjectPoint(&p.Projection, v)
	if w <= 0 {
		return common.Vec2{X: ndc.X, Y: ndc.Y}, math32.Inf(1)
	}
	return common.Vec2{
		X: (ndc.X + 1) * 0.5 * float32(p.Width),
		Y: (1 - ndc.Y) * 0.5 * float32(p.Height),
	}, ndc.Z
}
