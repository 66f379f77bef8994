package mesh

import "github.com/achilleasa/karma/types"

// Calculate per-vertex normals by accumulating the area-weighted normals of
// the faces around each vertex. Vertices that belong to no face (or only to
// zero-area faces) get a zero normal.
func (m *HalfEdgeMesh) CalculateVertexNormals() {
	accum := make([]types.Vec3, len(m.vertices))
	for _, face := range m.faces {
		v0 := m.vertices[face.Indices[0]].Position
		v1 := m.vertices[face.Indices[1]].Position
		v2 := m.vertices[face.Indices[2]].Position

		// The cross product length is twice the face area
		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0))
		for _, index := range face.Indices {
			accum[index] = accum[index].Add(faceNormal)
		}
	}

	for index := range m.vertices {
		m.vertices[index].Normal = accum[index].Normalize()
	}
}
