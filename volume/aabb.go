package volume

import (
	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// An axis-aligned bounding box.
type AABB struct {
	box types.AABB
}

// Fit an axis-aligned box. Only MinMaxMethod is supported: a single pass
// records the per-axis min and max coordinates, which yields the smallest
// axis-aligned box containing every point. A single point produces a box
// of zero size.
func NewAABB(src PointSource, method Method) (*AABB, error) {
	if method != MinMaxMethod {
		return nil, unsupported(AabbKind, method)
	}
	points, err := pointsOf(src)
	if err != nil {
		return nil, err
	}
	return &AABB{box: types.AABBFromPoints(points)}, nil
}

func (b *AABB) Kind() Kind { return AabbKind }

func (b *AABB) Method() Method { return MinMaxMethod }

// Get the box midpoint.
func (b *AABB) Center() types.Vec3 { return b.box.Center() }

// Get the box half-widths.
func (b *AABB) HalfExtents() types.Vec3 { return b.box.Extents() }

// Get the min/max representation of the box.
func (b *AABB) Box() types.AABB { return b.box }

func (b *AABB) Volume() float32 { return b.box.Volume() }

func (b *AABB) Contains(p types.Vec3, eps float32) bool {
	return b.box.Contains(p, eps)
}

func (b *AABB) Wireframe(transform types.Mat4) []types.Segment {
	return render.TransformSegments(render.BoxEdges(b.box.Corners()), transform)
}

func (b *AABB) Draw(sink render.Sink, transform types.Mat4, color render.Color) {
	draw(sink, b, transform, color)
}
