package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/karma/bvh"
	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/viewer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build a hierarchy over the instances of the mesh argument and display its
// statistics.
func BuildHierarchy(ctx *cli.Context) error {
	setupLogging(ctx)

	v, err := loadAndBuild(ctx)
	if err != nil {
		return err
	}

	h := v.Hierarchy()
	stats := h.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.Append([]string{"Method", h.Method().String()})
	table.Append([]string{"Instances", fmt.Sprintf("%d", stats.Instances)})
	table.Append([]string{"Nodes", fmt.Sprintf("%d", stats.Nodes)})
	table.Append([]string{"Leaves", fmt.Sprintf("%d", stats.Leaves)})
	table.Append([]string{"Depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{"Build time", stats.BuildTime.String()})
	table.Append([]string{" ", " "})
	for depth, count := range h.LevelCounts() {
		table.Append([]string{fmt.Sprintf("Level %d", depth), fmt.Sprintf("%d", count)})
	}
	table.Render()

	logger.Noticef("hierarchy statistics\n%s", buf.String())
	return nil
}

// List the hierarchy nodes whose depth lies in [--min, --max].
func ShowLevels(ctx *cli.Context) error {
	setupLogging(ctx)

	v, err := loadAndBuild(ctx)
	if err != nil {
		return err
	}

	h := v.Hierarchy()
	minDepth, maxDepth := h.ClampDepthRange(ctx.Int("min"), ctx.Int("max"))

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Depth", "Min", "Max", "Instances"})
	var count int
	for node := range h.NodesAtDepthRange(minDepth, maxDepth) {
		instances := "-"
		if node.IsLeaf() {
			instances = fmt.Sprintf("%v", node.Instances)
		}
		table.Append([]string{
			fmt.Sprintf("%d", node.Depth),
			fmtVec3(node.Box.Min),
			fmtVec3(node.Box.Max),
			instances,
		})
		count++
	}
	table.Render()

	logger.Noticef("%d nodes at depth [%d, %d]\n%s", count, minDepth, maxDepth, buf.String())
	return nil
}

// Render a single overlay frame into a recorder and display the batches it
// received.
func ShowFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	v, err := loadAndBuild(ctx)
	if err != nil {
		return err
	}

	display := v.Display().
		WithAllVolumes(ctx.Bool("volumes")).
		WithBoundaries(!ctx.Bool("no-boundaries")).
		WithHierarchy(!ctx.Bool("no-hierarchy"))
	v.SetDisplay(display)

	var rec render.Recorder
	v.Frame(&rec)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Batch", "Color", "Segments"})
	for index, batch := range rec.Batches {
		c := batch.Color
		table.Append([]string{
			fmt.Sprintf("%d", index),
			fmt.Sprintf("(%.1f, %.1f, %.1f)", c.R, c.G, c.B),
			fmt.Sprintf("%d", len(batch.Segments)),
		})
	}
	table.SetFooter([]string{"", "TOTAL", fmt.Sprintf("%d", rec.SegmentCount())})
	table.Render()

	logger.Noticef("frame overlay\n%s", buf.String())
	return nil
}

func loadAndBuild(ctx *cli.Context) (*viewer.Viewer, error) {
	method, err := bvh.ParseMethod(ctx.String("method"))
	if err != nil {
		return nil, err
	}

	v, err := loadViewer(ctx)
	if err != nil {
		return nil, err
	}

	if err = v.Build(method, terminationPredicate(ctx)); err != nil {
		return nil, err
	}
	return v, nil
}

// Combine the --max-depth and --min-instances flags into a predicate. Unset
// flags do not constrain the build.
func terminationPredicate(ctx *cli.Context) bvh.TerminationPredicate {
	var predicates []bvh.TerminationPredicate
	if ctx.IsSet("max-depth") {
		predicates = append(predicates, bvh.DepthAtLeast(ctx.Int("max-depth")))
	}
	if ctx.IsSet("min-instances") {
		predicates = append(predicates, bvh.FewerThan(ctx.Int("min-instances")))
	}
	if len(predicates) == 0 {
		return bvh.Never
	}
	return bvh.Any(predicates...)
}
