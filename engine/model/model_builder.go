package model

// ModelBuilderOption is a functional option for configuring a Model during construction.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelBuilderOption: functional option to set the name
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithVertices sets the shared vertex pool.
//
// Parameters:
//   - vertices: object-space positions
//
// Returns:
//   - ModelBuilderOption: functional option to set the vertices
func WithVertices(vertices [][3]float32) ModelBuilderOption {
	return func(m *model) {
		m.vertices = vertices
	}
}

// WithTriangles sets the index triples.
//
// Parameters:
//   - triangles: vertex indices per triangle
//
// Returns:
//   - ModelBuilderOption: functional option to set the triangles
func WithTriangles(triangles [][3]uint32) ModelBuilderOption {
	return func(m *model) {
		m.triangles = triangles
	}
}

// WithIndices sets the index triples from a flat triangle-list index buffer.
// A trailing partial triple is dropped.
//
// Parameters:
//   - indices: flat index list, three per triangle
//
// Returns:
//   - ModelBuilderOption: functional option to set the triangles
func WithIndices(indices []uint32) ModelBuilderOption {
	return func(m *model) {
		tris := make([][3]uint32, 0, len(indices)/3)
		for i := 0; i+2 < len(indices); i += 3 {
			tris = append(tris, [3]uint32{indices[i], indices[i+1], indices[i+2]})
		}
		m.triangles = tris
	}
}

// FromImported builds options that copy an imported mesh into a Model.
//
// Parameters:
//   - mesh: the imported mesh
//
// Returns:
//   - []ModelBuilderOption: options for NewModel
func FromImported(mesh ImportedMesh) []ModelBuilderOption {
	return []ModelBuilderOption{
		WithName(mesh.Name),
		WithVertices(mesh.Positions),
		WithIndices(mesh.Indices),
	}
}
