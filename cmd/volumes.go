package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/karma/types"
	"github.com/achilleasa/karma/volume"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Fit every bounding volume to the mesh argument and display the results.
func ShowVolumes(ctx *cli.Context) error {
	setupLogging(ctx)

	res, err := readMesh(ctx)
	if err != nil {
		return err
	}

	volumes, err := volume.FitAll(res.Mesh)
	if err != nil {
		return err
	}

	boxVolume := volumes[0].Volume()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shape", "Method", "Center", "Volume", "vs AABB"})
	for _, v := range volumes {
		table.Append([]string{
			v.Kind().String(),
			v.Method().String(),
			fmtVec3(v.Center()),
			fmt.Sprintf("%.4f", v.Volume()),
			fmtRatio(v.Volume(), boxVolume),
		})
	}
	table.Render()

	logger.Noticef("bounding volumes for %q (%d vertices)\n%s", res.Mesh.Name, len(res.Mesh.Vertices()), buf.String())
	return nil
}

func fmtVec3(v types.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func fmtRatio(value, reference float32) string {
	if reference <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f %%", 100*value/reference)
}
