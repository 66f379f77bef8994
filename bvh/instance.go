package bvh

import "github.com/achilleasa/karma/types"

// PointSource is implemented by meshes that can be instanced;
// *mesh.HalfEdgeMesh satisfies it.
type PointSource interface {
	Positions() []types.Vec3
}

// An Instance places a mesh in the world. The mesh is shared, never copied.
type Instance struct {
	Mesh      PointSource
	Transform types.Transform

	box types.AABB
}

// Create a mesh instance and compute its world space bounding box by
// transforming every mesh vertex.
func NewInstance(mesh PointSource, transform types.Transform) Instance {
	m := transform.Mat4()
	box := types.EmptyAABB()
	for _, p := range mesh.Positions() {
		box = box.Include(m.TransformPoint(p))
	}

	// Meshes without vertices collapse into the instance origin.
	if !box.IsValid() {
		origin := transform.Apply(types.Vec3{})
		box = types.AABB{Min: origin, Max: origin}
	}

	return Instance{
		Mesh:      mesh,
		Transform: transform,
		box:       box,
	}
}

// Get the world space bounding box.
func (inst Instance) BBox() types.AABB {
	return inst.box
}

// Get the center of the world space bounding box.
func (inst Instance) Center() types.Vec3 {
	return inst.box.Center()
}

// Wrap a list of instances so it can be passed to Build.
func FromInstances(instances []Instance) []BoundedVolume {
	items := make([]BoundedVolume, len(instances))
	for index, inst := range instances {
		items[index] = inst
	}
	return items
}
