package main

import (
	"os"

	"github.com/achilleasa/karma/cmd"
	"github.com/achilleasa/karma/log"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	buildFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "method, m",
			Value: "top-down",
			Usage: "hierarchy construction method (bottom-up or top-down)",
		},
		cli.IntFlag{
			Name:  "max-depth",
			Usage: "stop splitting/merging at this depth",
		},
		cli.IntFlag{
			Name:  "min-instances",
			Usage: "stop splitting/merging nodes covering fewer instances than this",
		},
		cli.IntFlag{
			Name:  "instances, n",
			Value: 4,
			Usage: "number of instances placed on a ring when the mesh file does not declare any",
		},
		cli.Float64Flag{
			Name:  "radius, r",
			Value: 10,
			Usage: "radius of the instance ring",
		},
	}

	app := cli.NewApp()
	app.Name = "karma"
	app.Usage = "fit bounding volumes and hierarchies to triangle meshes"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "volumes",
			Usage: "fit every bounding volume to a mesh",
			Description: `
Load a mesh from a wavefront obj, stl or ply file (local path or http URL),
fit an AABB, four bounding spheres, an ellipsoid and an oriented box and
display their centers and volumes.`,
			ArgsUsage: "mesh_file",
			Action:    cmd.ShowVolumes,
		},
		{
			Name:      "boundaries",
			Usage:     "display the boundary edges of a mesh",
			ArgsUsage: "mesh_file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "list, l",
					Usage: "list every boundary edge",
				},
			},
			Action: cmd.ShowBoundaries,
		},
		{
			Name:  "build",
			Usage: "build a bounding volume hierarchy over mesh instances",
			Description: `
Place instances of a mesh in the world, build a hierarchy over their world
space boxes and display the build statistics and per-level node counts.`,
			ArgsUsage: "mesh_file",
			Flags:     buildFlags,
			Action:    cmd.BuildHierarchy,
		},
		{
			Name:      "levels",
			Usage:     "list the hierarchy nodes within a depth range",
			ArgsUsage: "mesh_file",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "min",
					Usage: "lowest depth to list",
				},
				cli.IntFlag{
					Name:  "max",
					Value: 64,
					Usage: "highest depth to list",
				},
			}, buildFlags...),
			Action: cmd.ShowLevels,
		},
		{
			Name:      "frame",
			Usage:     "render one overlay frame and display the emitted line batches",
			ArgsUsage: "mesh_file",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "volumes",
					Usage: "draw every fitted volume",
				},
				cli.BoolFlag{
					Name:  "no-boundaries",
					Usage: "skip boundary edges",
				},
				cli.BoolFlag{
					Name:  "no-hierarchy",
					Usage: "skip hierarchy boxes",
				},
			}, buildFlags...),
			Action: cmd.ShowFrame,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("karma").Error(err)
		os.Exit(1)
	}
}
