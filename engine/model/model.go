package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-raster/common"
)

var (
	// ErrNoVertices is returned when a model is built without any vertex positions.
	ErrNoVertices = errors.New("model has no vertices")
	// ErrIndexOutOfRange is returned when a triangle references a vertex that does not exist.
	ErrIndexOutOfRange = errors.New("triangle index out of range")
)

// model is the implementation of the Model interface.
type model struct {
	name      string
	vertices  [][3]float32
	triangles [][3]uint32

	boundsMin [3]float32
	boundsMax [3]float32
}

// Model is an immutable triangle mesh: a shared pool of object-space vertex positions
// and index triples selecting three vertices each.
// A Model may be shared by many scene objects; each applies its own transform.
type Model interface {
	// Name returns the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// VertexCount returns the number of vertices in the shared pool.
	//
	// Returns:
	//   - int: vertex count
	VertexCount() int

	// TriangleCount returns the number of index triples.
	//
	// Returns:
	//   - int: triangle count
	TriangleCount() int

	// Vertices returns the shared vertex pool. The slice must not be modified.
	//
	// Returns:
	//   - [][3]float32: object-space vertex positions
	Vertices() [][3]float32

	// Triangles returns the index triples in draw order. The slice must not be modified.
	//
	// Returns:
	//   - [][3]uint32: vertex indices per triangle
	Triangles() [][3]uint32

	// Triangle resolves the i-th index triple into an object-space triangle.
	// The index must be in [0, TriangleCount()).
	//
	// Parameters:
	//   - i: triangle index
	//
	// Returns:
	//   - common.Triangle3: the triangle's vertices
	Triangle(i int) common.Triangle3

	// Bounds returns the object-space axis-aligned bounding box of the vertex pool.
	//
	// Returns:
	//   - min, max: box corners
	Bounds() (min, max [3]float32)
}

var _ Model = &model{}

// NewModel creates a Model from the given options and validates that every index triple
// references an existing vertex.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
//   - error: ErrNoVertices or ErrIndexOutOfRange when the mesh is malformed
func NewModel(options ...ModelBuilderOption) (Model, error) {
	m := &model{}
	for _, option := range options {
		option(m)
	}

	if len(m.vertices) == 0 {
		return nil, fmt.Errorf("model %q: %w", m.name, ErrNoVertices)
	}
	n := uint32(len(m.vertices))
	for i, tri := range m.triangles {
		if tri[0] >= n || tri[1] >= n || tri[2] >= n {
			return nil, fmt.Errorf("model %q triangle %d %v: %w", m.name, i, tri, ErrIndexOutOfRange)
		}
	}

	m.computeBounds()
	return m, nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) TriangleCount() int {
	return len(m.triangles)
}

func (m *model) Vertices() [][3]float32 {
	return m.vertices
}

func (m *model) Triangles() [][3]uint32 {
	return m.triangles
}

func (m *model) Triangle(i int) common.Triangle3 {
	idx := m.triangles[i]
	a, b, c := m.vertices[idx[0]], m.vertices[idx[1]], m.vertices[idx[2]]
	return common.Triangle3{
		V0: common.Vec3{X: a[0], Y: a[1], Z: a[2]},
		V1: common.Vec3{X: b[0], Y: b[1], Z: b[2]},
		V2: common.Vec3{X: c[0], Y: c[1], Z: c[2]},
	}
}

func (m *model) Bounds() (min, max [3]float32) {
	return m.boundsMin, m.boundsMax
}

// computeBounds fills boundsMin and boundsMax from the vertex pool.
func (m *model) computeBounds() {
	m.boundsMin = m.vertices[0]
	m.boundsMax = m.vertices[0]
	for _, v := range m.vertices[1:] {
		for k := range 3 {
			m.boundsMin[k] = min(m.boundsMin[k], v[k])
			m.boundsMax[k] = max(m.boundsMax[k], v[k])
		}
	}
}
