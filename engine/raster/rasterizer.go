package raster

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

// Lit is the default fill value written for every covered pixel (all bits set).
const Lit uint32 = 0xFFFFFFFF

// ScreenTriangle is a projected triangle ready for rasterization: pixel-space vertices plus one normalized depth per vertex.
type ScreenTriangle struct {
	Tri   common.Triangle2
	Depth [3]float32
}

// Stats counts the work done during one frame.
type Stats struct {
	// Triangles is the number of triangles submitted.
	Triangles int
	// Degenerate counts triangles skipped because their signed area was not a normal float.
	Degenerate int
	// Culled counts triangles whose bounds did not overlap the viewport.
	Culled int
	// Tested is the number of candidate pixels examined inside clipped bounds.
	Tested int
	// Written is the number of pixels that passed coverage and depth tests.
	Written int
	// ObjectsCulled counts whole objects the scene skipped because their bounds were outside
	// the view frustum. Their triangles are not in Triangles.
	ObjectsCulled int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Triangles += other.Triangles
	s.Degenerate += other.Degenerate
	s.Culled += other.Culled
	s.Tested += other.Tested
	s.Written += other.Written
	s.ObjectsCulled += other.ObjectsCulled
}

type rasterizerImpl struct {
	mu *sync.Mutex

	fill  uint32
	depth *DepthBuffer
	stats Stats
}

// Rasterizer fills screen-space triangles into a color buffer with nearest-wins depth testing.
// One frame is Begin, any number of DrawTriangle calls, then End. A Rasterizer must not be shared by concurrent frames.
type Rasterizer interface {
	// Begin starts a frame on a width x height surface and resets the depth buffer to +Inf.
	//
	// Parameters:
	//   - width, height: surface dimensions in pixels
	Begin(width, height int)

	// DrawTriangle rasterizes one triangle into color.
	// Degenerate triangles, triangles outside viewport, and pixels outside the surface are skipped silently.
	//
	// Parameters:
	//   - color: row-major color buffer of at least width*height entries
	//   - tri: screen-space vertices in pixels
	//   - depth: normalized depth per vertex; only interpolated depths in (0, 1) are written
	//   - viewport: region the triangle's bounds are clipped against, normally [0, width) x [0, height)
	DrawTriangle(color []uint32, tri common.Triangle2, depth [3]float32, viewport AABB)

	// End finishes the frame and returns its statistics.
	//
	// Returns:
	//   - Stats: counters accumulated since Begin
	End() Stats

	// RenderFrame runs Begin, DrawTriangle for each triangle in order, and End.
	//
	// Parameters:
	//   - color: row-major color buffer of at least width*height entries
	//   - width, height: surface dimensions in pixels
	//   - viewport: clipping region for triangle bounds
	//   - tris: triangles in submission order
	//
	// Returns:
	//   - Stats: frame statistics
	RenderFrame(color []uint32, width, height int, viewport AABB, tris []ScreenTriangle) Stats

	// Depth returns the depth buffer of the current or most recent frame.
	//
	// Returns:
	//   - *DepthBuffer: the depth buffer
	Depth() *DepthBuffer

	// Fill returns the value written for covered pixels.
	//
	// Returns:
	//   - uint32: the fill value
	Fill() uint32

	// SetFill changes the value written for covered pixels.
	//
	// Parameters:
	//   - fill: the new fill value
	SetFill(fill uint32)
}

var _ Rasterizer = &rasterizerImpl{}

// NewRasterizer creates a Rasterizer that writes Lit unless configured otherwise.
//
// Parameters:
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the newly created rasterizer
func NewRasterizer(options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizerImpl{
		mu:    &sync.Mutex{},
		fill:  Lit,
		depth: &DepthBuffer{},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *rasterizerImpl) Begin(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depth.Reset(width, height)
	r.stats = Stats{}
}

func (r *rasterizerImpl) End() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *rasterizerImpl) DrawTriangle(color []uint32, tri common.Triangle2, depth [3]float32, viewport AABB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawTriangle(color, tri, depth, viewport)
}

func (r *rasterizerImpl) RenderFrame(color []uint32, width, height int, viewport AABB, tris []ScreenTriangle) Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.depth.Reset(width, height)
	r.stats = Stats{}
	for i := range tris {
		r.drawTriangle(color, tris[i].Tri, tris[i].Depth, viewport)
	}
	return r.stats
}

func (r *rasterizerImpl) Depth() *DepthBuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

func (r *rasterizerImpl) Fill() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fill
}

func (r *rasterizerImpl) SetFill(fill uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fill = fill
}

// drawTriangle is the per-triangle body of DrawTriangle. Caller must hold the mutex.
func (r *rasterizerImpl) drawTriangle(color []uint32, tri common.Triangle2, depth [3]float32, viewport AABB) {
	r.stats.Triangles++

	v0, v1, v2 := tri.V0, tri.V1, tri.V2
	wd := (v1.Y-v2.Y)*(v0.X-v2.X) + (v2.X-v1.X)*(v0.Y-v2.Y)
	if !isNormal(wd) {
		r.stats.Degenerate++
		return
	}

	bounds, ok := AABBFromTriangle(tri).Intersection(viewport)
	if !ok {
		r.stats.Culled++
		return
	}

	width, height := r.depth.width, r.depth.height
	it := bounds.Pixels()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		r.stats.Tested++

		w0, w1, w2 := barycentric(v0, v1, v2, wd, p)
		if w0 <= 0 || w1 <= 0 || w2 <= 0 {
			continue
		}

		pz := interpolateDepth(w0, w1, depth)
		if pz <= 0 || pz >= 1 {
			continue
		}

		x, y := int(p.X), int(p.Y)
		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}
		idx := y*width + x
		if idx >= len(color) {
			continue
		}
		if r.depth.testAndSet(idx, pz) {
			color[idx] = r.fill
			r.stats.Written++
		}
	}
}

// barycentric returns the weights of p relative to (v0, v1, v2) given the triangle's signed double area wd.
// w2 is derived from w0 and w1 so the three weights sum to 1.
func barycentric(v0, v1, v2 common.Vec2, wd float32, p common.Vec2) (w0, w1, w2 float32) {
	w0 = ((v1.Y-v2.Y)*(p.X-v2.X) + (v2.X-v1.X)*(p.Y-v2.Y)) / wd
	w1 = ((v2.Y-v0.Y)*(p.X-v2.X) + (v0.X-v2.X)*(p.Y-v2.Y)) / wd
	w2 = 1 - (w0 + w1)
	return
}

// interpolateDepth evaluates w0*z0 + w1*z1 + w2*z2 with w2 = 1 - w0 - w1, written relative to z2.
// A triangle with equal vertex depths interpolates to exactly that depth.
func interpolateDepth(w0, w1 float32, z [3]float32) float32 {
	return z[2] + w0*(z[0]-z[2]) + w1*(z[1]-z[2])
}

// isNormal reports whether f is a normal IEEE-754 single: finite, nonzero, and not subnormal.
// The biased exponent field is all zeros for zero and subnormals and all ones for Inf and NaN.
func isNormal(f float32) bool {
	exp := (math.Float32bits(f) >> 23) & 0xff
	return exp != 0 && exp != 0xff
}
