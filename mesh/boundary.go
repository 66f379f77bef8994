package mesh

import "github.com/achilleasa/karma/types"

// Extract the open edges of a mesh. One segment is generated for each
// boundary half-edge, running from the position of its target vertex to the
// position of the target of the following boundary half-edge. Walking a
// boundary loop therefore emits every edge of the loop exactly once.
//
// Closed meshes yield no segments.
func BoundaryEdges(m *HalfEdgeMesh) []types.Segment {
	edges := m.HalfEdges()
	segments := make([]types.Segment, 0, len(edges)-3*len(m.Faces()))
	for _, edge := range edges {
		if !edge.IsBoundary() || edge.Next == NoEdge {
			continue
		}
		segments = append(segments, types.Segment{
			A: m.Vertex(edge.To).Position,
			B: m.Vertex(m.HalfEdge(edge.Next).To).Position,
		})
	}
	return segments
}
