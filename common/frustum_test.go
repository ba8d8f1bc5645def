package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	var m [16]float32
	Perspective(m[:], 1.5, 2, 0.5, 100)
	return ExtractFrustumFromMatrix(&m)
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		n := p.Normal
		assert.InDelta(t, 1, math32.Sqrt(n[0]*n[0]+n[1]*n[1]+n[2]*n[2]), 1e-5, "plane %d", i)
	}
	// Camera-local space looks down -Z.
	assert.InDelta(t, -1, f.Planes[FrustumNear].Normal[2], 1e-6)
	assert.InDelta(t, -0.5, f.Planes[FrustumNear].Distance, 1e-6)
	assert.InDelta(t, 1, f.Planes[FrustumFar].Normal[2], 1e-6)
	assert.InDelta(t, 100, f.Planes[FrustumFar].Distance, 1e-3)
}

func TestFrustumIntersectsBox(t *testing.T) {
	f := testFrustum()
	nan := math32.NaN()

	tests := []struct {
		name     string
		min, max [3]float32
		want     bool
	}{
		{"in front", [3]float32{-1, -1, -6}, [3]float32{1, 1, -4}, true},
		{"straddles near plane", [3]float32{-1, -1, -1}, [3]float32{1, 1, 1}, true},
		{"behind the eye", [3]float32{-1, -1, 1}, [3]float32{1, 1, 3}, false},
		{"between eye and near plane", [3]float32{-0.1, -0.1, -0.4}, [3]float32{0.1, 0.1, -0.1}, false},
		{"beyond far plane", [3]float32{-1, -1, -300}, [3]float32{1, 1, -200}, false},
		{"far left", [3]float32{-100, -1, -6}, [3]float32{-90, 1, -4}, false},
		{"far above", [3]float32{-1, 90, -6}, [3]float32{1, 100, -4}, false},
		{"NaN never rejects", [3]float32{nan, nan, nan}, [3]float32{nan, nan, nan}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsBox(tt.min, tt.max))
		})
	}
}

func TestFrustumInObjectSpace(t *testing.T) {
	var proj, model, mvp [16]float32
	Perspective(proj[:], 1.5, 1, 0.5, 100)
	cube := func(z float32) bool {
		BuildModelMatrix(model[:], 0, 0, z, 0, 0, 0, 1, 1, 1)
		Mul4(mvp[:], proj[:], model[:])
		f := ExtractFrustumFromMatrix(&mvp)
		return f.IntersectsBox([3]float32{-1, -1, -1}, [3]float32{1, 1, 1})
	}

	assert.True(t, cube(-5))
	assert.False(t, cube(5))
	assert.False(t, cube(-150))
}
