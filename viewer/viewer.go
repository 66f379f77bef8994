// Package viewer owns the state of a bounding volume viewer: the loaded
// mesh, its fitted volumes and boundary edges, the registered instances and
// the active hierarchy. A render loop calls Frame once per frame.
package viewer

import (
	"fmt"
	"math"

	"github.com/achilleasa/karma/bvh"
	"github.com/achilleasa/karma/log"
	"github.com/achilleasa/karma/mesh"
	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
	"github.com/achilleasa/karma/volume"
)

// Colors used for drawing each fitted volume.
var volumeColors = map[volume.Key]render.Color{
	{Kind: volume.AabbKind, Method: volume.MinMaxMethod}:     render.Red,
	{Kind: volume.SphereKind, Method: volume.CentroidMethod}: render.Red,
	{Kind: volume.SphereKind, Method: volume.RittersMethod}:  render.Green,
	{Kind: volume.SphereKind, Method: volume.LarssonsMethod}: render.Blue,
	{Kind: volume.SphereKind, Method: volume.PcaMethod}:      render.Yellow,
	{Kind: volume.EllipsoidKind, Method: volume.PcaMethod}:   render.Red,
	{Kind: volume.OrientedKind, Method: volume.PcaMethod}:    render.Red,
}

// Get the color used for drawing a volume.
func VolumeColor(key volume.Key) render.Color {
	if color, ok := volumeColors[key]; ok {
		return color
	}
	return render.White
}

// Viewer configuration.
type Config struct {
	// Number of instances placed on a ring around the origin by Load.
	InstanceCount int

	// Radius of the instance ring.
	RingRadius float32
}

// Get the default configuration: four instances on a ring of radius 10.
func DefaultConfig() Config {
	return Config{
		InstanceCount: 4,
		RingRadius:    10,
	}
}

// Generate count transforms evenly spaced on a circle of the given radius
// in the XZ plane.
func RingTransforms(count int, radius float32) []types.Transform {
	transforms := make([]types.Transform, count)
	for i := range transforms {
		angle := float64(i) * 2 * math.Pi / float64(count)
		transforms[i] = types.Translation(types.Vec3{
			float32(math.Cos(angle)) * radius,
			0,
			float32(math.Sin(angle)) * radius,
		})
	}
	return transforms
}

type Viewer struct {
	logger log.Logger
	cfg    Config

	mesh       *mesh.HalfEdgeMesh
	volumes    []volume.Volume
	boundaries []types.Segment
	instances  []bvh.Instance
	hierarchy  *bvh.Hierarchy

	display DisplayConfig

	// Frame is a no-op while set.
	paused bool
}

// Create a new viewer with no mesh loaded.
func New(cfg Config) *Viewer {
	return &Viewer{
		logger:  log.New("viewer"),
		cfg:     cfg,
		display: DefaultDisplayConfig(),
	}
}

// Load a mesh and place Config.InstanceCount instances of it on a ring.
func (v *Viewer) Load(m *mesh.HalfEdgeMesh) error {
	return v.LoadWithInstances(m, RingTransforms(v.cfg.InstanceCount, v.cfg.RingRadius))
}

// Load a mesh with an explicit list of instance transforms. Vertex normals
// are recalculated, every standard volume is fitted and the boundary edges
// are extracted. The active hierarchy is discarded; call Build to create a
// new one. If fitting fails the previously loaded state is kept.
func (v *Viewer) LoadWithInstances(m *mesh.HalfEdgeMesh, transforms []types.Transform) error {
	defer v.pause()()

	func() {
		defer log.Timed(v.logger, "calculate normals")()
		m.CalculateVertexNormals()
	}()

	var (
		volumes []volume.Volume
		err     error
	)
	func() {
		defer log.Timed(v.logger, "create bounding volumes")()
		volumes, err = volume.FitAll(m)
	}()
	if err != nil {
		return fmt.Errorf("viewer: loading %q: %w", m.Name, err)
	}

	var boundaries []types.Segment
	func() {
		defer log.Timed(v.logger, "mesh boundary query")()
		boundaries = mesh.BoundaryEdges(m)
	}()

	instances := make([]bvh.Instance, len(transforms))
	for index, tr := range transforms {
		instances[index] = bvh.NewInstance(m, tr)
	}

	v.mesh = m
	v.volumes = volumes
	v.boundaries = boundaries
	v.instances = instances
	v.hierarchy = nil

	v.logger.Noticef(
		"loaded %q: %d vertices, %d faces, %d half-edges, %d boundary edges, %d polygons/frame",
		m.Name, len(m.Vertices()), len(m.Faces()), len(m.HalfEdges()), len(boundaries),
		len(m.Faces())*len(instances),
	)
	return nil
}

// Build a new hierarchy over the registered instances. On failure the
// previous hierarchy stays active. On success the hierarchy draw range is
// reset to cover the whole tree.
func (v *Viewer) Build(method bvh.Method, pred bvh.TerminationPredicate) error {
	defer v.pause()()

	h, err := bvh.Build(method, bvh.FromInstances(v.instances), pred)
	if err != nil {
		v.logger.Errorf("could not build %s hierarchy: %v", method, err)
		return err
	}

	v.hierarchy = h
	v.display = v.display.WithDepthRange(0, h.Depth())
	v.logger.Infof("built %s hierarchy: %d nodes, %d leaves, depth %d", method, h.Stats().Nodes, h.Stats().Leaves, h.Depth())
	return nil
}

// Move the lower bound of the hierarchy draw range. The upper bound is
// pushed along if needed.
func (v *Viewer) ScrollMinDepth(delta int) {
	minDepth, maxDepth := v.display.DepthRange()
	minDepth = v.clampDepth(minDepth + delta)
	v.display = v.display.WithDepthRange(minDepth, max(minDepth, maxDepth))
}

// Move the upper bound of the hierarchy draw range. The lower bound is
// pushed along if needed.
func (v *Viewer) ScrollMaxDepth(delta int) {
	minDepth, maxDepth := v.display.DepthRange()
	maxDepth = v.clampDepth(maxDepth + delta)
	v.display = v.display.WithDepthRange(min(minDepth, maxDepth), maxDepth)
}

func (v *Viewer) clampDepth(depth int) int {
	treeDepth := 0
	if v.hierarchy != nil {
		treeDepth = v.hierarchy.Depth()
	}
	return min(max(depth, 0), treeDepth)
}

// Send the enabled overlays to the sink. Volumes and boundary edges are
// drawn once per instance; hierarchy boxes are already in world space.
func (v *Viewer) Frame(sink render.Sink) {
	if v.paused || v.mesh == nil {
		return
	}

	enabled := v.display.EnabledVolumes()
	for _, inst := range v.instances {
		transform := inst.Transform.Mat4()
		for _, key := range enabled {
			if vol, ok := v.Volume(key); ok {
				vol.Draw(sink, transform, VolumeColor(key))
			}
		}

		if v.display.BoundariesEnabled() && len(v.boundaries) != 0 {
			segments := append([]types.Segment(nil), v.boundaries...)
			sink.DrawLines(render.TransformSegments(segments, transform), render.White)
		}
	}

	if v.display.HierarchyEnabled() && v.hierarchy != nil {
		minDepth, maxDepth := v.display.DepthRange()
		v.hierarchy.DrawBoxes(sink, types.Ident4(), render.Red, minDepth, maxDepth)
	}
}

// Set the pause flag and return a func that restores its previous value.
func (v *Viewer) pause() func() {
	old := v.paused
	v.paused = true
	return func() {
		v.paused = old
	}
}

func (v *Viewer) Paused() bool { return v.paused }

func (v *Viewer) SetPaused(paused bool) { v.paused = paused }

// Get the loaded mesh or nil.
func (v *Viewer) Mesh() *mesh.HalfEdgeMesh { return v.mesh }

// Get the fitted volumes, index aligned with volume.StandardKeys.
func (v *Viewer) Volumes() []volume.Volume { return v.volumes }

// Look up a fitted volume by key.
func (v *Viewer) Volume(key volume.Key) (volume.Volume, bool) {
	for index, k := range volume.StandardKeys {
		if k == key && index < len(v.volumes) {
			return v.volumes[index], true
		}
	}
	return nil, false
}

func (v *Viewer) Boundaries() []types.Segment { return v.boundaries }

func (v *Viewer) Instances() []bvh.Instance { return v.instances }

// Get the active hierarchy or nil if none has been built since the last
// load.
func (v *Viewer) Hierarchy() *bvh.Hierarchy { return v.hierarchy }

func (v *Viewer) Display() DisplayConfig { return v.display }

func (v *Viewer) SetDisplay(display DisplayConfig) { v.display = display }
