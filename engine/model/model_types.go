package model

// ImportedModel is the format-neutral result of an importer (glTF, GLB, ...).
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes holds one entry per triangle primitive in the source file.
	Meshes []ImportedMesh
}

// ImportedMesh is a single triangle-list primitive.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Positions are object-space vertex positions.
	Positions [][3]float32

	// Indices is a flat triangle list, three per triangle.
	Indices []uint32
}

// Merge concatenates all meshes into one, rebasing indices onto the combined vertex pool.
//
// Returns:
//   - ImportedMesh: the merged mesh named after the model
func (im *ImportedModel) Merge() ImportedMesh {
	out := ImportedMesh{Name: im.Name}
	for _, mesh := range im.Meshes {
		base := uint32(len(out.Positions))
		out.Positions = append(out.Positions, mesh.Positions...)
		for _, idx := range mesh.Indices {
			out.Indices = append(out.Indices, idx+base)
		}
	}
	return out
}
