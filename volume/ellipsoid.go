package volume

import (
	"math"

	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// An ellipsoid aligned to the principal axes of the points it encloses.
type Ellipsoid struct {
	center types.Vec3
	axes   [3]types.Vec3
	radii  types.Vec3
}

// Fit a bounding ellipsoid. Only PcaMethod is supported.
//
// The ellipsoid is centered at the point mean and oriented along the
// principal axes. Each radius starts as the largest projection of the
// points onto its axis; as that box-like fit can still leave points
// outside the ellipsoid proper, all radii are then scaled uniformly until
// the worst point lies on the surface.
func NewEllipsoid(src PointSource, method Method) (*Ellipsoid, error) {
	if method != PcaMethod {
		return nil, unsupported(EllipsoidKind, method)
	}
	points, err := pointsOf(src)
	if err != nil {
		return nil, err
	}

	frame := newPrincipalFrame(points)
	local := make([]types.Vec3, len(points))
	var radii types.Vec3
	for index, p := range points {
		local[index] = frame.project(p, frame.mean)
		radii = types.MaxVec3(radii, local[index].Abs())
	}
	radii = clampExtents(radii)

	var worst float32
	for _, q := range local {
		worst = max(worst, ellipsoidDist(q, radii))
	}
	if worst > 1 {
		radii = radii.Mul(sqrt32(worst))
	}

	return &Ellipsoid{
		center: frame.mean,
		axes:   frame.axes,
		radii:  radii,
	}, nil
}

func (e *Ellipsoid) Kind() Kind { return EllipsoidKind }

func (e *Ellipsoid) Method() Method { return PcaMethod }

func (e *Ellipsoid) Center() types.Vec3 { return e.center }

// Get the unit principal axes, largest variance first.
func (e *Ellipsoid) Axes() [3]types.Vec3 { return e.axes }

// Get the semi-axis lengths matching Axes.
func (e *Ellipsoid) Radii() types.Vec3 { return e.radii }

func (e *Ellipsoid) Volume() float32 {
	return 4.0 / 3.0 * math.Pi * e.radii[0] * e.radii[1] * e.radii[2]
}

func (e *Ellipsoid) Contains(p types.Vec3, eps float32) bool {
	d := p.Sub(e.center)
	q := types.Vec3{d.Dot(e.axes[0]), d.Dot(e.axes[1]), d.Dot(e.axes[2])}
	return ellipsoidDist(q, e.radii.Add(types.Vec3{eps, eps, eps})) <= 1
}

func (e *Ellipsoid) Wireframe(transform types.Mat4) []types.Segment {
	segments := ellipsoidOutline(
		e.center,
		e.axes[0].Mul(e.radii[0]),
		e.axes[1].Mul(e.radii[1]),
		e.axes[2].Mul(e.radii[2]),
	)
	return render.TransformSegments(segments, transform)
}

func (e *Ellipsoid) Draw(sink render.Sink, transform types.Mat4, color render.Color) {
	draw(sink, e, transform, color)
}

// Evaluate sum((q/r)^2) for a point in ellipsoid local coordinates. Values
// up to 1 are inside.
func ellipsoidDist(q, radii types.Vec3) float32 {
	var sum float32
	for axis := 0; axis < 3; axis++ {
		v := q[axis] / radii[axis]
		sum += v * v
	}
	return sum
}
