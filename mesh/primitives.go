package mesh

import "github.com/achilleasa/karma/types"

// Corner quads of an axis-aligned box, counter-clockwise when viewed from
// outside. Corner i has max x if bit 0 is set, max y for bit 1 and max z
// for bit 2 (see types.AABB.Corners).
var boxQuads = [6][4]uint32{
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
}

// Build a closed box mesh with 8 vertices and 12 triangles.
func NewBox(name string, box types.AABB) *HalfEdgeMesh {
	corners := box.Corners()
	triangles := make([][3]uint32, 0, 12)
	for _, q := range boxQuads {
		triangles = append(triangles, [3]uint32{q[0], q[1], q[2]}, [3]uint32{q[0], q[2], q[3]})
	}

	m, err := New(name, corners[:], triangles)
	if err != nil {
		// The box topology is fixed and always manifold.
		panic(err)
	}
	return m
}
