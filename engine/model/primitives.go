package model

// Cube returns a unit cube centred on the origin: 8 shared corners and 12 triangles, two per face.
func Cube() Model {
	vertices := [][3]float32{
		{-0.5, -0.5, -0.5}, // 0
		{0.5, -0.5, -0.5},  // 1
		{0.5, 0.5, -0.5},   // 2
		{-0.5, 0.5, -0.5},  // 3
		{-0.5, -0.5, 0.5},  // 4
		{0.5, -0.5, 0.5},   // 5
		{0.5, 0.5, 0.5},    // 6
		{-0.5, 0.5, 0.5},   // 7
	}

	// Each quad is split along the same diagonal: (a, b, c) and (a, c, d).
	quads := [][4]uint32{
		{1, 2, 6, 5}, // +X
		{4, 7, 3, 0}, // -X
		{3, 7, 6, 2}, // +Y
		{4, 0, 1, 5}, // -Y
		{4, 5, 6, 7}, // +Z
		{1, 0, 3, 2}, // -Z
	}
	triangles := make([][3]uint32, 0, 12)
	for _, q := range quads {
		triangles = append(triangles,
			[3]uint32{q[0], q[1], q[2]},
			[3]uint32{q[0], q[2], q[3]},
		)
	}

	return mustModel(WithName("cube"), WithVertices(vertices), WithTriangles(triangles))
}

// Tetrahedron returns a regular tetrahedron inscribed in the cube [-0.5, 0.5]^3.
func Tetrahedron() Model {
	vertices := [][3]float32{
		{0.5, 0.5, 0.5},
		{-0.5, -0.5, 0.5},
		{-0.5, 0.5, -0.5},
		{0.5, -0.5, -0.5},
	}
	triangles := [][3]uint32{
		{0, 1, 3},
		{0, 2, 1},
		{0, 3, 2},
		{1, 2, 3},
	}
	return mustModel(WithName("tetrahedron"), WithVertices(vertices), WithTriangles(triangles))
}

// Quad returns a unit square in the XY plane facing +Z, made of two triangles.
func Quad() Model {
	vertices := [][3]float32{
		{-0.5, -0.5, 0},
		{0.5, -0.5, 0},
		{0.5, 0.5, 0},
		{-0.5, 0.5, 0},
	}
	triangles := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	return mustModel(WithName("quad"), WithVertices(vertices), WithTriangles(triangles))
}

// Builtin returns the named built-in model. The second result is false for unknown names.
//
// Parameters:
//   - name: one of "cube", "tetrahedron", "quad"
//
// Returns:
//   - Model: the model
//   - bool: whether the name is known
func Builtin(name string) (Model, bool) {
	switch name {
	case "cube":
		return Cube(), true
	case "tetrahedron":
		return Tetrahedron(), true
	case "quad":
		return Quad(), true
	}
	return nil, false
}

// mustModel panics on a malformed built-in mesh.
func mustModel(options ...ModelBuilderOption) Model {
	m, err := NewModel(options...)
	if err != nil {
		panic(err)
	}
	return m
}
