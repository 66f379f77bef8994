package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/karma/mesh"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display the boundary edges of the mesh argument.
func ShowBoundaries(ctx *cli.Context) error {
	setupLogging(ctx)

	res, err := readMesh(ctx)
	if err != nil {
		return err
	}

	edges := mesh.BoundaryEdges(res.Mesh)
	if len(edges) == 0 {
		logger.Noticef("mesh %q is closed", res.Mesh.Name)
		return nil
	}

	if !ctx.Bool("list") {
		logger.Noticef("mesh %q has %d boundary edges", res.Mesh.Name, len(edges))
		return nil
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "From", "To"})
	for index, edge := range edges {
		table.Append([]string{fmt.Sprintf("%d", index), fmtVec3(edge.A), fmtVec3(edge.B)})
	}
	table.Render()

	logger.Noticef("mesh %q has %d boundary edges\n%s", res.Mesh.Name, len(edges), buf.String())
	return nil
}
