package raster

import (
	"iter"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/chewxy/math32"
)

// PixelIter walks the integer lattice points of an AABB row by row.
// It starts at (floor(MinX), floor(MinY)), advances x while x < MaxX, then moves to the next row while y < MaxY.
// A box narrower or shorter than one pixel yields nothing, as does a box that is not enumerable.
type PixelIter struct {
	startX     float32
	maxX, maxY float32
	x, y       float32
	done       bool
}

// Pixels returns a fresh iterator over the box's pixel positions.
// Calling Pixels again restarts the enumeration.
//
// Returns:
//   - *PixelIter: the iterator
func (a AABB) Pixels() *PixelIter {
	it := &PixelIter{
		startX: math32.Floor(a.MinX),
		maxX:   a.MaxX,
		maxY:   a.MaxY,
	}
	it.x = it.startX
	it.y = math32.Floor(a.MinY)
	it.done = !a.enumerable()
	return it
}

// maxLattice is 2^24, the largest magnitude at which float32 still steps by one.
const maxLattice = 1 << 24

// enumerable reports whether the box spans at least one pixel each way and every bound is a finite
// value below maxLattice in magnitude. Outside that range x++ can stall and the walk would never end.
func (a AABB) enumerable() bool {
	for _, v := range [4]float32{a.MinX, a.MaxX, a.MinY, a.MaxY} {
		// NaN fails the comparison too.
		if !(math32.Abs(v) < maxLattice) {
			return false
		}
	}
	return a.Width() >= 1 && a.Height() >= 1
}

// Next returns the next pixel position. The second result is false once the box is exhausted.
//
// Returns:
//   - common.Vec2: the pixel position
//   - bool: false when there are no more pixels
func (it *PixelIter) Next() (common.Vec2, bool) {
	for !it.done {
		if it.y >= it.maxY {
			it.done = true
			break
		}
		if it.x >= it.maxX {
			it.x = it.startX
			it.y++
			continue
		}
		p := common.Vec2{X: it.x, Y: it.y}
		it.x++
		return p, true
	}
	return common.Vec2{}, false
}

// All returns the box's pixel positions as a range-over-func sequence, in the same order as Pixels.
//
// Returns:
//   - iter.Seq[common.Vec2]: the pixel sequence
func (a AABB) All() iter.Seq[common.Vec2] {
	return func(yield func(common.Vec2) bool) {
		it := a.Pixels()
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// PixelCount returns how many positions the box enumerates without walking them.
//
// Returns:
//   - int: the number of pixels All would yield
func (a AABB) PixelCount() int {
	if !a.enumerable() {
		return 0
	}
	startX, startY := math32.Floor(a.MinX), math32.Floor(a.MinY)
	cols := int(math32.Ceil(a.MaxX - startX))
	rows := int(math32.Ceil(a.MaxY - startY))
	return cols * rows
}
