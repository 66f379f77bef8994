package mesh

import (
	"errors"
	"testing"

	"github.com/achilleasa/karma/types"
)

func unitBox() types.AABB {
	return types.AABB{Max: types.Vec3{1, 1, 1}}
}

func TestClosedBoxTopology(t *testing.T) {
	m := NewBox("cube", unitBox())

	if got := len(m.Vertices()); got != 8 {
		t.Fatalf("expected 8 vertices; got %d", got)
	}
	if got := len(m.Faces()); got != 12 {
		t.Fatalf("expected 12 faces; got %d", got)
	}
	if got := len(m.HalfEdges()); got != 36 {
		t.Fatalf("expected 36 half-edges; got %d", got)
	}
	if !m.IsClosed() {
		t.Fatal("expected cube to be closed")
	}

	for index, edge := range m.HalfEdges() {
		if edge.IsBoundary() {
			t.Fatalf("half-edge %d: expected no boundary edges on a closed mesh", index)
		}
		pair := m.HalfEdge(edge.Pair)
		if pair.Pair != uint32(index) {
			t.Fatalf("half-edge %d: expected pair of pair to be itself; got %d", index, pair.Pair)
		}
		if pair.To != m.From(uint32(index)) {
			t.Fatalf("half-edge %d: expected pair to point back to origin vertex", index)
		}

		// Walking next three times returns to the same half-edge
		walk := uint32(index)
		for i := 0; i < 3; i++ {
			walk = m.HalfEdge(walk).Next
		}
		if walk != uint32(index) {
			t.Fatalf("half-edge %d: expected face loop of length 3", index)
		}
	}

	if segs := BoundaryEdges(m); len(segs) != 0 {
		t.Fatalf("expected no boundary edges; got %d", len(segs))
	}
}

func TestOpenMeshBoundaries(t *testing.T) {
	type spec struct {
		name      string
		positions []types.Vec3
		triangles [][3]uint32
		expEdges  int
	}

	quad := spec{
		name:      "quad",
		positions: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		triangles: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
		expEdges:  4,
	}

	// Three quads side by side: 8 vertices, 6 triangles
	strip := spec{name: "strip", expEdges: 8}
	for i := 0; i < 4; i++ {
		strip.positions = append(strip.positions, types.Vec3{float32(i), 0, 0}, types.Vec3{float32(i), 1, 0})
	}
	for i := uint32(0); i < 3; i++ {
		b := 2 * i
		strip.triangles = append(strip.triangles, [3]uint32{b, b + 2, b + 3}, [3]uint32{b, b + 3, b + 1})
	}

	// Cube without its +y lid
	cube := NewBox("cube", unitBox())
	openBox := spec{name: "open box", positions: cube.Positions(), expEdges: 4}
	for _, q := range boxQuads {
		if q == boxQuads[3] {
			continue
		}
		openBox.triangles = append(openBox.triangles, [3]uint32{q[0], q[1], q[2]}, [3]uint32{q[0], q[2], q[3]})
	}

	for _, s := range []spec{quad, strip, openBox} {
		m, err := New(s.name, s.positions, s.triangles)
		if err != nil {
			t.Fatalf("[%s] unexpected error: %v", s.name, err)
		}
		if m.IsClosed() {
			t.Fatalf("[%s] expected mesh to be open", s.name)
		}

		segs := BoundaryEdges(m)
		if len(segs) != s.expEdges {
			t.Fatalf("[%s] expected %d boundary edges; got %d", s.name, s.expEdges, len(segs))
		}

		// Every boundary segment must connect two distinct boundary vertices
		for idx, seg := range segs {
			if seg.A == seg.B {
				t.Fatalf("[%s] segment %d is degenerate", s.name, idx)
			}
		}

		// Boundary loops close on themselves
		for index, edge := range m.HalfEdges() {
			if !edge.IsBoundary() {
				continue
			}
			walk := uint32(index)
			for i := 0; i < s.expEdges; i++ {
				walk = m.HalfEdge(walk).Next
				if walk == uint32(index) {
					break
				}
			}
			if walk != uint32(index) {
				t.Fatalf("[%s] boundary half-edge %d does not belong to a closed loop", s.name, index)
			}
		}
	}
}

func TestQuadBoundarySegments(t *testing.T) {
	positions := []types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	m, err := New("quad", positions, [][3]uint32{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}

	// The union of the segments must be the 4 outer edges; the diagonal
	// (0,2) is interior.
	seen := make(map[[2]types.Vec3]bool)
	for _, seg := range BoundaryEdges(m) {
		a, b := seg.A, seg.B
		if b[0] < a[0] || (b[0] == a[0] && b[1] < a[1]) {
			a, b = b, a
		}
		seen[[2]types.Vec3{a, b}] = true
	}
	for _, exp := range [][2]types.Vec3{
		{{0, 0, 0}, {1, 0, 0}},
		{{1, 0, 0}, {1, 1, 0}},
		{{0, 1, 0}, {1, 1, 0}},
		{{0, 0, 0}, {0, 1, 0}},
	} {
		if !seen[exp] {
			t.Fatalf("expected boundary segment %v", exp)
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	positions := []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	type spec struct {
		triangles [][3]uint32
		expErr    error
	}
	specs := []spec{
		{[][3]uint32{{0, 1, 4}}, ErrIndexOutOfRange},
		{[][3]uint32{{0, 1, 1}}, ErrDegenerateFace},
		{[][3]uint32{{0, 1, 2}, {0, 1, 3}}, ErrNonManifold},
	}

	for idx, s := range specs {
		_, err := New("bad", positions, s.triangles)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", idx, s.expErr, err)
		}
	}
}

func TestVertexNormals(t *testing.T) {
	positions := []types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {5, 5, 5}}
	m, err := New("quad", positions, [][3]uint32{{0, 1, 2}, {0, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	m.CalculateVertexNormals()

	for index := uint32(0); index < 4; index++ {
		if n := m.Vertex(index).Normal; !types.ApproxEqual(n, types.Vec3{0, 0, 1}, 1e-6) {
			t.Fatalf("vertex %d: expected normal +z; got %v", index, n)
		}
	}
	if n := m.Vertex(4).Normal; n != (types.Vec3{}) {
		t.Fatalf("expected isolated vertex to have a zero normal; got %v", n)
	}
	if e := m.Vertex(4).Edge; e != NoEdge {
		t.Fatalf("expected isolated vertex to have no edge; got %d", e)
	}

	cube := NewBox("cube", unitBox())
	cube.CalculateVertexNormals()
	corner := cube.Vertex(7).Normal
	if !types.ApproxEqual(corner, types.Vec3{1, 1, 1}.Normalize(), 1e-5) {
		t.Fatalf("expected cube corner normal to point along the diagonal; got %v", corner)
	}
}
