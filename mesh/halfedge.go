// Package mesh provides a triangle mesh with half-edge connectivity.
package mesh

import (
	"errors"
	"fmt"

	"github.com/achilleasa/karma/types"
)

const (
	// Face index stored by half-edges that lie on a mesh boundary.
	NoFace = ^uint32(0)

	// Half-edge index used by isolated vertices and unlinked boundary edges.
	NoEdge = ^uint32(0)
)

var (
	ErrIndexOutOfRange = errors.New("mesh: face references unknown vertex")
	ErrDegenerateFace  = errors.New("mesh: face references the same vertex twice")
	ErrNonManifold     = errors.New("mesh: directed edge shared by more than one face")
)

// A mesh vertex.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3

	// One of the half-edges leaving this vertex or NoEdge.
	Edge uint32
}

// A triangular face.
type Face struct {
	Indices [3]uint32

	// The half-edge pointing to Indices[1].
	Edge uint32
}

// A directed edge. Interior half-edges belong to a face and run
// counter-clockwise around it; boundary half-edges have Face == NoFace and
// run along the hole they border.
type HalfEdge struct {
	// The vertex this half-edge points to.
	To uint32

	// The next half-edge around the same face (or boundary loop).
	Next uint32

	// The oppositely oriented half-edge sharing the same vertices.
	Pair uint32

	// The face on the left of this half-edge or NoFace.
	Face uint32
}

// Returns true if the half-edge lies on a mesh boundary.
func (e HalfEdge) IsBoundary() bool {
	return e.Face == NoFace
}

// A triangle mesh with half-edge connectivity. The topology is fixed at
// construction time.
type HalfEdgeMesh struct {
	Name string

	vertices  []Vertex
	faces     []Face
	halfEdges []HalfEdge
}

// Build a half-edge mesh from a vertex list and a list of triangles given
// as counter-clockwise vertex index triples.
func New(name string, positions []types.Vec3, triangles [][3]uint32) (*HalfEdgeMesh, error) {
	m := &HalfEdgeMesh{
		Name:      name,
		vertices:  make([]Vertex, len(positions)),
		faces:     make([]Face, 0, len(triangles)),
		halfEdges: make([]HalfEdge, 0, 3*len(triangles)),
	}
	for index, pos := range positions {
		m.vertices[index] = Vertex{Position: pos, Edge: NoEdge}
	}

	// from[i] is the origin vertex of half-edge i.
	from := make([]uint32, 0, 3*len(triangles))
	edgeIndex := make(map[[2]uint32]uint32, 3*len(triangles))

	for faceIndex, tri := range triangles {
		for k := 0; k < 3; k++ {
			if int(tri[k]) >= len(positions) {
				return nil, fmt.Errorf("face %d: %w (%d >= %d)", faceIndex, ErrIndexOutOfRange, tri[k], len(positions))
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, fmt.Errorf("face %d: %w", faceIndex, ErrDegenerateFace)
		}

		base := uint32(len(m.halfEdges))
		for k := uint32(0); k < 3; k++ {
			src, dst := tri[k], tri[(k+1)%3]
			key := [2]uint32{src, dst}
			if _, exists := edgeIndex[key]; exists {
				return nil, fmt.Errorf("face %d: %w (%d -> %d)", faceIndex, ErrNonManifold, src, dst)
			}
			edgeIndex[key] = base + k
			m.halfEdges = append(m.halfEdges, HalfEdge{
				To:   dst,
				Next: base + (k+1)%3,
				Pair: NoEdge,
				Face: uint32(faceIndex),
			})
			from = append(from, src)

			if m.vertices[src].Edge == NoEdge {
				m.vertices[src].Edge = base + k
			}
		}
		m.faces = append(m.faces, Face{Indices: tri, Edge: base})
	}

	// Pair interior half-edges and close every unpaired one with a boundary
	// half-edge. Iterating in index order keeps the layout deterministic.
	boundaryOut := make(map[uint32][]uint32)
	interiorCount := uint32(len(m.halfEdges))
	for index := uint32(0); index < interiorCount; index++ {
		if m.halfEdges[index].Pair != NoEdge {
			continue
		}

		src, dst := from[index], m.halfEdges[index].To
		if opposite, exists := edgeIndex[[2]uint32{dst, src}]; exists {
			m.halfEdges[index].Pair = opposite
			m.halfEdges[opposite].Pair = index
			continue
		}

		boundary := uint32(len(m.halfEdges))
		m.halfEdges = append(m.halfEdges, HalfEdge{
			To:   src,
			Next: NoEdge,
			Pair: index,
			Face: NoFace,
		})
		from = append(from, dst)
		m.halfEdges[index].Pair = boundary
		boundaryOut[dst] = append(boundaryOut[dst], boundary)
	}

	// Link each boundary half-edge to the boundary half-edge leaving its
	// target. Vertices touching several holes hand out their outgoing
	// boundary edges in creation order.
	for index := interiorCount; index < uint32(len(m.halfEdges)); index++ {
		target := m.halfEdges[index].To
		candidates := boundaryOut[target]
		if len(candidates) == 0 {
			continue
		}
		m.halfEdges[index].Next = candidates[0]
		boundaryOut[target] = candidates[1:]

		// Boundary vertices expose their boundary edge so walks around the
		// vertex start on the hole.
		m.vertices[from[index]].Edge = index
	}

	return m, nil
}

// Get the vertex list. The returned slice must not be modified.
func (m *HalfEdgeMesh) Vertices() []Vertex {
	return m.vertices
}

// Get the face list. The returned slice must not be modified.
func (m *HalfEdgeMesh) Faces() []Face {
	return m.faces
}

// Get the half-edge list. Interior half-edges come first, three per face,
// followed by the boundary half-edges. The returned slice must not be
// modified.
func (m *HalfEdgeMesh) HalfEdges() []HalfEdge {
	return m.halfEdges
}

// Get a vertex by index.
func (m *HalfEdgeMesh) Vertex(index uint32) Vertex {
	return m.vertices[index]
}

// Get a half-edge by index.
func (m *HalfEdgeMesh) HalfEdge(index uint32) HalfEdge {
	return m.halfEdges[index]
}

// Get the vertex a half-edge starts from.
func (m *HalfEdgeMesh) From(edge uint32) uint32 {
	return m.halfEdges[m.halfEdges[edge].Pair].To
}

// Get a copy of the vertex positions.
func (m *HalfEdgeMesh) Positions() []types.Vec3 {
	out := make([]types.Vec3, len(m.vertices))
	for index, v := range m.vertices {
		out[index] = v.Position
	}
	return out
}

// Returns true if the mesh has no boundary half-edges.
func (m *HalfEdgeMesh) IsClosed() bool {
	return len(m.halfEdges) == 3*len(m.faces)
}
