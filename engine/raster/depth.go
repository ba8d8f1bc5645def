package raster

import "github.com/chewxy/math32"

// DepthBuffer holds one depth value per pixel in row-major order.
// Reset fills it with +Inf; within a frame entries only decrease.
type DepthBuffer struct {
	width, height int
	values        []float32
}

// NewDepthBuffer allocates a buffer for a width x height surface and resets it.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Reset(width, height)
	return d
}

// Reset resizes the buffer if needed and fills every entry with +Inf.
//
// Parameters:
//   - width, height: surface dimensions in pixels
func (d *DepthBuffer) Reset(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	n := width * height
	if cap(d.values) < n {
		d.values = make([]float32, n)
	}
	d.values = d.values[:n]
	d.width, d.height = width, height

	inf := math32.Inf(1)
	for i := range d.values {
		d.values[i] = inf
	}
}

// Width returns the buffer width in pixels.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height in pixels.
func (d *DepthBuffer) Height() int { return d.height }

// At returns the stored depth at (x, y), or +Inf when the position is outside the buffer.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return math32.Inf(1)
	}
	return d.values[y*d.width+x]
}

// Values exposes the backing slice. Callers must not retain it across Reset.
func (d *DepthBuffer) Values() []float32 {
	return d.values
}

// testAndSet stores z at idx when it is strictly nearer than the current entry.
// Equal depths keep the existing entry.
func (d *DepthBuffer) testAndSet(idx int, z float32) bool {
	if z < d.values[idx] {
		d.values[idx] = z
		return true
	}
	return false
}
