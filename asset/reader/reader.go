// Package reader loads meshes from Wavefront OBJ, STL and PLY files.
package reader

import (
	"errors"
	"fmt"

	"github.com/achilleasa/karma/asset"
	"github.com/achilleasa/karma/mesh"
	"github.com/achilleasa/karma/types"
)

var ErrUnsupportedFormat = errors.New("reader: unsupported file format")

// The result of reading a mesh file.
type Result struct {
	Mesh *mesh.HalfEdgeMesh

	// Instance transforms declared by the file. Empty if the file does not
	// declare any.
	Instances []types.Transform
}

// The Reader interface is implemented by all mesh readers.
type Reader interface {
	// Read a mesh from a resource.
	Read(*asset.Resource) (*Result, error)
}

// Read a mesh from a local file or http(s) URL.
func ReadMesh(filename string) (*Result, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res)
}

// Read a mesh from a resource, selecting a reader based on its extension.
func Read(res *asset.Resource) (*Result, error) {
	var reader Reader
	switch res.Ext() {
	case ".obj":
		reader = newWavefrontReader()
	case ".stl", ".ply":
		reader = newFauxglReader()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, res.Path())
	}
	return reader.Read(res)
}
