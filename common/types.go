// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// Vec2 is a 2D point or vector. In screen space X grows to the right and Y grows downward, both measured in pixels.
type Vec2 struct {
	X, Y float32
}

// String formats the vector for log output.
func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Vec3 is a 3D point or vector in object, world, or camera-local space.
type Vec3 struct {
	X, Y, Z float32
}

// String formats the vector for log output.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// TransformPoint multiplies the point (v, 1) by the 4x4 column-major matrix m and returns the xyz result.
// The w component is assumed to stay 1, which holds for affine transforms such as model and view matrices.
//
// Parameters:
//   - m: column-major 4x4 matrix
//
// Returns:
//   - Vec3: the transformed point
func (v Vec3) TransformPoint(m *[16]float32) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// Triangle2 is a screen-space triangle whose vertices are pixel coordinates.
type Triangle2 struct {
	V0, V1, V2 Vec2
}

// Triangle3 is a triangle in 3D space. Its meaning (object, world, or camera-local) depends on the
// last transform applied to it.
type Triangle3 struct {
	V0, V1, V2 Vec3
}

// ApplyTransform returns a copy of the triangle with every vertex transformed by the column-major matrix m.
//
// Parameters:
//   - m: column-major 4x4 affine matrix
//
// Returns:
//   - Triangle3: the transformed triangle
func (t Triangle3) ApplyTransform(m *[16]float32) Triangle3 {
	return Triangle3{
		V0: t.V0.TransformPoint(m),
		V1: t.V1.TransformPoint(m),
		V2: t.V2.TransformPoint(m),
	}
}
