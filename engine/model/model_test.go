package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelValidates(t *testing.T) {
	_, err := NewModel(WithName("empty"))
	assert.ErrorIs(t, err, ErrNoVertices)

	_, err = NewModel(
		WithName("bad"),
		WithVertices([][3]float32{{0, 0, 0}, {1, 0, 0}}),
		WithTriangles([][3]uint32{{0, 1, 2}}),
	)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestTriangleResolvesIndices(t *testing.T) {
	m, err := NewModel(
		WithVertices([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}),
		WithIndices([]uint32{0, 1, 2, 3, 2, 1, 0}),
	)
	require.NoError(t, err)
	require.Equal(t, 2, m.TriangleCount(), "trailing partial triple dropped")

	assert.Equal(t, common.Triangle3{
		V0: common.Vec3{X: 0, Y: 0, Z: 1},
		V1: common.Vec3{X: 0, Y: 1, Z: 0},
		V2: common.Vec3{X: 1, Y: 0, Z: 0},
	}, m.Triangle(1))

	lo, hi := m.Bounds()
	assert.Equal(t, [3]float32{0, 0, 0}, lo)
	assert.Equal(t, [3]float32{1, 1, 1}, hi)
}

func TestBuiltins(t *testing.T) {
	cube := Cube()
	assert.Equal(t, 8, cube.VertexCount())
	assert.Equal(t, 12, cube.TriangleCount())
	lo, hi := cube.Bounds()
	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, lo)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, hi)

	assert.Equal(t, 4, Tetrahedron().TriangleCount())
	assert.Equal(t, 2, Quad().TriangleCount())

	for _, name := range []string{"cube", "tetrahedron", "quad"} {
		m, ok := Builtin(name)
		require.True(t, ok, name)
		assert.Equal(t, name, m.Name())
	}
	_, ok := Builtin("teapot")
	assert.False(t, ok)
}

func TestImportedMerge(t *testing.T) {
	im := &ImportedModel{
		Name: "pair",
		Meshes: []ImportedMesh{
			{Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Indices: []uint32{0, 1, 2}},
			{Positions: [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}, Indices: []uint32{2, 1, 0}},
		},
	}
	merged := im.Merge()
	assert.Equal(t, "pair", merged.Name)
	assert.Len(t, merged.Positions, 6)
	assert.Equal(t, []uint32{0, 1, 2, 5, 4, 3}, merged.Indices)

	m, err := NewModel(FromImported(merged)...)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())
}
