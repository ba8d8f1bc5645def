package common

import "github.com/chewxy/math32"

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a combined projection matrix
// (Gribb/Hartmann). The planes live in whatever space the matrix maps from: pass
// Projection * View * Model to get planes in object space.
// Clip depth is [0, 1], so the near plane is row 2 on its own.
//
// Parameters:
//   - m: column-major 4x4 matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(m *[16]float32) Frustum {
	// M[row][col] is m[col*4+row].
	row := func(i int) [4]float32 {
		return [4]float32{m[i], m[4+i], m[8+i], m[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.setPlane(FrustumLeft, r3, r0, 1)
	f.setPlane(FrustumRight, r3, r0, -1)
	f.setPlane(FrustumBottom, r3, r1, 1)
	f.setPlane(FrustumTop, r3, r1, -1)
	f.setPlane(FrustumNear, [4]float32{}, r2, 1)
	f.setPlane(FrustumFar, r3, r2, -1)
	return f
}

// setPlane stores base + sign*r as plane index, normalized.
func (f *Frustum) setPlane(index int, base, r [4]float32, sign float32) {
	p := &f.Planes[index]
	for i := range 3 {
		p.Normal[i] = base[i] + sign*r[i]
	}
	p.Distance = base[3] + sign*r[3]

	length := math32.Sqrt(p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2])
	if length > 0 {
		invLen := 1 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

// IntersectsBox reports whether an axis-aligned box may be inside the frustum. It returns false
// only when the box lies entirely on the outer side of one plane, so a true result can still be
// a box outside a frustum corner. NaN inputs never reject.
//
// Parameters:
//   - min, max: box corners in the frustum's space
//
// Returns:
//   - bool: false if the box is certainly outside
func (f *Frustum) IntersectsBox(min, max [3]float32) bool {
	for _, p := range f.Planes {
		// The corner furthest along the normal.
		d := p.Distance
		for i := range 3 {
			if p.Normal[i] >= 0 {
				d += p.Normal[i] * max[i]
			} else {
				d += p.Normal[i] * min[i]
			}
		}
		if d < 0 {
			return false
		}
	}
	return true
}
