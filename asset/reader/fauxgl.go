package reader

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/achilleasa/karma/asset"
	"github.com/achilleasa/karma/log"
	"github.com/achilleasa/karma/mesh"
	"github.com/achilleasa/karma/types"
	"github.com/fogleman/fauxgl"
)

// Reads triangle soups (STL and PLY files) through fauxgl and welds
// vertices sharing the same position so the result has proper connectivity.
type fauxglReader struct {
	logger log.Logger
}

func newFauxglReader() *fauxglReader {
	return &fauxglReader{
		logger: log.New("fauxgl reader"),
	}
}

// Read mesh definition.
func (r *fauxglReader) Read(res *asset.Resource) (*Result, error) {
	r.logger.Infof(`parsing mesh from "%s"`, res.Path())
	start := time.Now()

	// fauxgl only loads from disk; remote and in-memory resources are
	// spooled to a temp file first.
	path := res.Path()
	if res.IsRemote() || !fileExists(path) {
		tmpPath, err := spool(res)
		if err != nil {
			return nil, fmt.Errorf("[%s] error: %w", res.Path(), err)
		}
		defer os.Remove(tmpPath)
		path = tmpPath
	}

	var (
		soup *fauxgl.Mesh
		err  error
	)
	switch res.Ext() {
	case ".ply":
		soup, err = fauxgl.LoadPLY(path)
	default:
		soup, err = fauxgl.LoadSTL(path)
	}
	if err != nil {
		return nil, fmt.Errorf("[%s] error: %w", res.Path(), err)
	}

	positions, triangles, dropped := weld(soup.Triangles)
	if dropped > 0 {
		r.logger.Warningf("dropped %d degenerate triangles from %q", dropped, res.Path())
	}

	m, err := mesh.New(res.Name(), positions, triangles)
	if err != nil {
		return nil, fmt.Errorf("[%s] error: %w", res.Path(), err)
	}

	r.logger.Infof(
		"parsed mesh %q in %d ms: %d vertices, %d triangles",
		m.Name, time.Since(start).Nanoseconds()/1e6, len(positions), len(triangles),
	)
	return &Result{Mesh: m}, nil
}

// Merge triangle corners with identical positions into shared vertices.
// Triangles that collapse after welding are dropped and counted.
func weld(soup []*fauxgl.Triangle) ([]types.Vec3, [][3]uint32, int) {
	var (
		positions []types.Vec3
		triangles = make([][3]uint32, 0, len(soup))
		dropped   int
	)
	indexOf := make(map[types.Vec3]uint32, len(soup))
	vertexIndex := func(v fauxgl.Vertex) uint32 {
		p := types.Vec3{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
		if index, exists := indexOf[p]; exists {
			return index
		}
		index := uint32(len(positions))
		positions = append(positions, p)
		indexOf[p] = index
		return index
	}

	for _, t := range soup {
		tri := [3]uint32{vertexIndex(t.V1), vertexIndex(t.V2), vertexIndex(t.V3)}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			dropped++
			continue
		}
		triangles = append(triangles, tri)
	}
	return positions, triangles, dropped
}

// Copy a resource to a temp file that keeps its extension and return the
// file path.
func spool(res *asset.Resource) (string, error) {
	f, err := os.CreateTemp("", "karma-*"+res.Ext())
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err = io.Copy(f, res); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
