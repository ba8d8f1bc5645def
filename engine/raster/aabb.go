// Package raster converts screen-space triangles into covered pixels.
// It owns the per-frame depth buffer and writes a single fill value into a caller-owned color buffer.
package raster

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/chewxy/math32"
)

// AABB is an axis-aligned rectangle in screen space.
// Boxes produced by NewAABB, AABBFromPoints, AABBFromTriangle, and Intersection satisfy MinX <= MaxX and MinY <= MaxY.
type AABB struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// NewAABB creates a box from explicit extents. Swapped extents are reordered so the box stays well-formed.
//
// Parameters:
//   - minX, maxX: horizontal extent
//   - minY, maxY: vertical extent
//
// Returns:
//   - AABB: the box
func NewAABB(minX, maxX, minY, maxY float32) AABB {
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return AABB{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// AABBFromPoints creates a box from its minimum and maximum corners.
//
// Parameters:
//   - min: top-left corner
//   - max: bottom-right corner
//
// Returns:
//   - AABB: the box
func AABBFromPoints(min, max common.Vec2) AABB {
	return NewAABB(min.X, max.X, min.Y, max.Y)
}

// Viewport returns the box [0, width) x [0, height) covering a width x height pixel surface.
//
// Parameters:
//   - width, height: surface dimensions in pixels
//
// Returns:
//   - AABB: the viewport box
func Viewport(width, height int) AABB {
	return AABB{MinX: 0, MaxX: float32(width), MinY: 0, MaxY: float32(height)}
}

// AABBFromTriangle returns the tightest box enclosing the triangle's three vertices.
// A degenerate triangle yields a zero-area box.
//
// Parameters:
//   - t: screen-space triangle
//
// Returns:
//   - AABB: the enclosing box
func AABBFromTriangle(t common.Triangle2) AABB {
	return AABB{
		MinX: math32.Min(t.V0.X, math32.Min(t.V1.X, t.V2.X)),
		MaxX: math32.Max(t.V0.X, math32.Max(t.V1.X, t.V2.X)),
		MinY: math32.Min(t.V0.Y, math32.Min(t.V1.Y, t.V2.Y)),
		MaxY: math32.Max(t.V0.Y, math32.Max(t.V1.Y, t.V2.Y)),
	}
}

// Width returns MaxX - MinX.
func (a AABB) Width() float32 { return a.MaxX - a.MinX }

// Height returns MaxY - MinY.
func (a AABB) Height() float32 { return a.MaxY - a.MinY }

// Intersects reports whether the two boxes overlap with positive area.
// Boxes that only share an edge or a corner do not intersect.
//
// Parameters:
//   - b: the other box
//
// Returns:
//   - bool: true when the open interiors overlap
func (a AABB) Intersects(b AABB) bool {
	return a.MaxX > b.MinX && b.MaxX > a.MinX &&
		a.MaxY > b.MinY && b.MaxY > a.MinY
}

// Intersection returns the overlap of two boxes.
// The second result is false when the boxes do not intersect, in which case the returned box is the zero value and must not be used.
//
// Parameters:
//   - b: the other box
//
// Returns:
//   - AABB: the overlap region
//   - bool: whether an overlap exists
func (a AABB) Intersection(b AABB) (AABB, bool) {
	if !a.Intersects(b) {
		return AABB{}, false
	}
	return AABB{
		MinX: math32.Max(a.MinX, b.MinX),
		MaxX: math32.Min(a.MaxX, b.MaxX),
		MinY: math32.Max(a.MinY, b.MinY),
		MaxY: math32.Min(a.MaxY, b.MaxY),
	}, true
}

// Contains reports whether p lies strictly inside the box. Points on the boundary are outside.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - bool: true for interior points
func (a AABB) Contains(p common.Vec2) bool {
	return p.X > a.MinX && p.X < a.MaxX && p.Y > a.MinY && p.Y < a.MaxY
}

func (a AABB) String() string {
	return fmt.Sprintf("AABB[x %g..%g, y %g..%g]", a.MinX, a.MaxX, a.MinY, a.MaxY)
}
