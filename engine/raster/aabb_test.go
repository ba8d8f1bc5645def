package raster

import (
	"slices"
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAABBOrdersExtents(t *testing.T) {
	b := NewAABB(5, 1, 8, 2)
	assert.Equal(t, AABB{MinX: 1, MaxX: 5, MinY: 2, MaxY: 8}, b)
}

func TestAABBFromTriangle(t *testing.T) {
	tri := common.Triangle2{
		V0: common.Vec2{X: 30, Y: 40},
		V1: common.Vec2{X: 10, Y: 10},
		V2: common.Vec2{X: 50, Y: 12},
	}
	assert.Equal(t, AABB{MinX: 10, MaxX: 50, MinY: 10, MaxY: 40}, AABBFromTriangle(tri))

	flat := common.Triangle2{V0: common.Vec2{X: 3, Y: 3}, V1: common.Vec2{X: 3, Y: 3}, V2: common.Vec2{X: 3, Y: 3}}
	b := AABBFromTriangle(flat)
	assert.Zero(t, b.Width())
	assert.Zero(t, b.Height())
}

func TestIntersectionCommutes(t *testing.T) {
	boxes := []AABB{
		NewAABB(0, 10, 0, 10),
		NewAABB(5, 15, -5, 5),
		NewAABB(10, 20, 0, 10),
		NewAABB(-3.5, 2.25, 1, 9),
		NewAABB(2, 3, 2, 3),
		NewAABB(100, 200, 100, 200),
	}
	for _, a := range boxes {
		for _, b := range boxes {
			ab, okAB := a.Intersection(b)
			ba, okBA := b.Intersection(a)
			assert.Equal(t, okAB, okBA, "%v vs %v", a, b)
			assert.Equal(t, ab, ba, "%v vs %v", a, b)
		}
	}
}

func TestIntersectionTightestBox(t *testing.T) {
	got, ok := NewAABB(0, 10, 0, 10).Intersection(NewAABB(5, 15, -5, 5))
	require.True(t, ok)
	assert.Equal(t, AABB{MinX: 5, MaxX: 10, MinY: 0, MaxY: 5}, got)

	inner := NewAABB(2, 3, 2, 3)
	got, ok = NewAABB(0, 10, 0, 10).Intersection(inner)
	require.True(t, ok)
	assert.Equal(t, inner, got)
}

func TestIntersectionTouchingIsAbsent(t *testing.T) {
	a := NewAABB(0, 10, 0, 10)
	cases := map[string]AABB{
		"right edge":  NewAABB(10, 20, 0, 10),
		"left edge":   NewAABB(-10, 0, 0, 10),
		"top edge":    NewAABB(0, 10, -10, 0),
		"bottom edge": NewAABB(0, 10, 10, 20),
		"corner":      NewAABB(10, 20, 10, 20),
		"disjoint":    NewAABB(30, 40, 30, 40),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, a.Intersects(b))
			_, ok := a.Intersection(b)
			assert.False(t, ok)
		})
	}
}

func TestContainsExcludesBoundary(t *testing.T) {
	b := NewAABB(0, 10, 0, 10)
	assert.True(t, b.Contains(common.Vec2{X: 5, Y: 5}))
	assert.True(t, b.Contains(common.Vec2{X: 0.001, Y: 9.999}))
	assert.False(t, b.Contains(common.Vec2{X: 0, Y: 5}))
	assert.False(t, b.Contains(common.Vec2{X: 10, Y: 5}))
	assert.False(t, b.Contains(common.Vec2{X: 5, Y: 0}))
	assert.False(t, b.Contains(common.Vec2{X: 5, Y: 10}))
	assert.False(t, b.Contains(common.Vec2{X: 11, Y: 5}))
}

func TestPixelsIntegerAligned(t *testing.T) {
	b := NewAABB(2, 5, 1, 3)
	got := slices.Collect(b.All())
	want := []common.Vec2{
		{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1},
		{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, (5-2)*(3-1), b.PixelCount())
}

func TestPixelsFractionalBounds(t *testing.T) {
	b := NewAABB(1.5, 4.2, 0.7, 2.1)
	got := slices.Collect(b.All())

	// x in {1, 2, 3, 4}, y in {0, 1, 2}
	require.Len(t, got, 12)
	assert.Equal(t, len(got), b.PixelCount())
	for _, p := range got {
		assert.GreaterOrEqual(t, p.X, float32(1))
		assert.Less(t, p.X, b.MaxX)
		assert.GreaterOrEqual(t, p.Y, float32(0))
		assert.Less(t, p.Y, b.MaxY)
		assert.Equal(t, p.X, float32(int(p.X)))
		assert.Equal(t, p.Y, float32(int(p.Y)))
	}
	assert.Equal(t, common.Vec2{X: 1, Y: 0}, got[0])
	assert.Equal(t, common.Vec2{X: 4, Y: 2}, got[len(got)-1])
}

func TestPixelsSubPixelSpanIsEmpty(t *testing.T) {
	cases := []AABB{
		NewAABB(0, 0.5, 0, 10),
		NewAABB(0, 10, 3.2, 3.9),
		NewAABB(4, 4, 4, 4),
	}
	for _, b := range cases {
		assert.Empty(t, slices.Collect(b.All()), "%v", b)
		assert.Zero(t, b.PixelCount(), "%v", b)
		_, ok := b.Pixels().Next()
		assert.False(t, ok)
	}
}

func TestPixelsNonEnumerableBoxesAreEmpty(t *testing.T) {
	cases := []AABB{
		{MinX: math32.NaN(), MaxX: 5, MinY: 0, MaxY: 5},
		{MinX: 0, MaxX: 5, MinY: 0, MaxY: math32.NaN()},
		{MinX: math32.Inf(-1), MaxX: 5, MinY: 0, MaxY: 5},
		{MinX: 0, MaxX: math32.Inf(1), MinY: 0, MaxY: 5},
		{MinX: 16777216, MaxX: 16777220, MinY: 0, MaxY: 2},
		{MinX: 0, MaxX: 2, MinY: -16777220, MaxY: -16777216},
	}
	for _, b := range cases {
		n := 0
		for range b.All() {
			n++
			if n > 100 {
				break
			}
		}
		assert.Zero(t, n, "%v", b)
		assert.Zero(t, b.PixelCount(), "%v", b)
		_, ok := b.Pixels().Next()
		assert.False(t, ok, "%v", b)
	}

	// Just below the limit still enumerates exactly.
	b := AABB{MinX: 16777212, MaxX: 16777215, MinY: 0, MaxY: 1}
	assert.Len(t, slices.Collect(b.All()), 3)
	assert.Equal(t, 3, b.PixelCount())
}

func TestPixelsRestartable(t *testing.T) {
	b := NewAABB(0, 3, 0, 2)
	first := slices.Collect(b.All())
	second := slices.Collect(b.All())
	assert.Equal(t, first, second)

	it := b.Pixels()
	count := 0
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
	}
	assert.Equal(t, 6, count)
	_, ok := it.Next()
	assert.False(t, ok, "exhausted iterator stays exhausted")
}

func TestPixelsEarlyBreak(t *testing.T) {
	b := NewAABB(0, 100, 0, 100)
	n := 0
	for range b.All() {
		n++
		if n == 7 {
			break
		}
	}
	assert.Equal(t, 7, n)
}

func TestViewport(t *testing.T) {
	assert.Equal(t, AABB{MinX: 0, MaxX: 80, MinY: 0, MaxY: 50}, Viewport(80, 50))
	assert.Equal(t, 80*50, Viewport(80, 50).PixelCount())
}
