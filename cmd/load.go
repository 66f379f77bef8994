package cmd

import (
	"errors"

	"github.com/achilleasa/karma/asset/reader"
	"github.com/achilleasa/karma/viewer"
	"github.com/urfave/cli"
)

var errMissingMesh = errors.New("missing mesh file argument")

// Read the mesh passed as the first command argument.
func readMesh(ctx *cli.Context) (*reader.Result, error) {
	if ctx.NArg() != 1 {
		return nil, errMissingMesh
	}
	return reader.ReadMesh(ctx.Args().First())
}

// Load the mesh argument into a viewer. Instances declared by the mesh file
// take precedence over the ring layout requested with the --instances and
// --radius flags.
func loadViewer(ctx *cli.Context) (*viewer.Viewer, error) {
	res, err := readMesh(ctx)
	if err != nil {
		return nil, err
	}

	cfg := viewer.DefaultConfig()
	if ctx.IsSet("instances") {
		cfg.InstanceCount = ctx.Int("instances")
	}
	if ctx.IsSet("radius") {
		cfg.RingRadius = float32(ctx.Float64("radius"))
	}

	transforms := res.Instances
	if len(transforms) == 0 {
		transforms = viewer.RingTransforms(cfg.InstanceCount, cfg.RingRadius)
	}

	v := viewer.New(cfg)
	if err = v.LoadWithInstances(res.Mesh, transforms); err != nil {
		return nil, err
	}
	return v, nil
}
