package volume

import (
	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// A box aligned to the principal axes of the points it encloses.
type OrientedBox struct {
	center      types.Vec3
	axes        [3]types.Vec3
	halfExtents types.Vec3
}

// Fit an oriented bounding box. Only PcaMethod is supported. The points are
// projected onto the principal axes and the box spans the projected range
// along each axis.
func NewOrientedBox(src PointSource, method Method) (*OrientedBox, error) {
	if method != PcaMethod {
		return nil, unsupported(OrientedKind, method)
	}
	points, err := pointsOf(src)
	if err != nil {
		return nil, err
	}

	frame := newPrincipalFrame(points)
	local := types.EmptyAABB()
	for _, p := range points {
		local = local.Include(frame.project(p, frame.mean))
	}

	return &OrientedBox{
		center:      frame.unproject(local.Center(), frame.mean),
		axes:        frame.axes,
		halfExtents: clampExtents(local.Extents()),
	}, nil
}

func (b *OrientedBox) Kind() Kind { return OrientedKind }

func (b *OrientedBox) Method() Method { return PcaMethod }

func (b *OrientedBox) Center() types.Vec3 { return b.center }

// Get the unit box axes, largest variance first.
func (b *OrientedBox) Axes() [3]types.Vec3 { return b.axes }

// Get the box half-widths along each of Axes.
func (b *OrientedBox) HalfExtents() types.Vec3 { return b.halfExtents }

func (b *OrientedBox) Volume() float32 {
	return 8 * b.halfExtents[0] * b.halfExtents[1] * b.halfExtents[2]
}

func (b *OrientedBox) Contains(p types.Vec3, eps float32) bool {
	d := p.Sub(b.center)
	for axis := 0; axis < 3; axis++ {
		if proj := d.Dot(b.axes[axis]); proj > b.halfExtents[axis]+eps || -proj > b.halfExtents[axis]+eps {
			return false
		}
	}
	return true
}

// Get the box corners using the same indexing as types.AABB.Corners.
func (b *OrientedBox) Corners() [8]types.Vec3 {
	var corners [8]types.Vec3
	for index := range corners {
		corner := b.center
		for axis := 0; axis < 3; axis++ {
			offset := b.axes[axis].Mul(b.halfExtents[axis])
			if index&(1<<uint(axis)) != 0 {
				corner = corner.Add(offset)
			} else {
				corner = corner.Sub(offset)
			}
		}
		corners[index] = corner
	}
	return corners
}

func (b *OrientedBox) Wireframe(transform types.Mat4) []types.Segment {
	return render.TransformSegments(render.BoxEdges(b.Corners()), transform)
}

func (b *OrientedBox) Draw(sink render.Sink, transform types.Mat4, color render.Color) {
	draw(sink, b, transform, color)
}
