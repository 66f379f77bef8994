package volume

import (
	"math"

	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// A bounding sphere.
type Sphere struct {
	center types.Vec3
	radius float32
	method Method
}

// Fit a bounding sphere using one of CentroidMethod, RittersMethod,
// LarssonsMethod or PcaMethod.
func NewSphere(src PointSource, method Method) (*Sphere, error) {
	var fitter func([]types.Vec3) (types.Vec3, float32)
	switch method {
	case CentroidMethod:
		fitter = centroidSphere
	case RittersMethod:
		fitter = rittersSphere
	case LarssonsMethod:
		fitter = larssonsSphere
	case PcaMethod:
		fitter = pcaSphere
	default:
		return nil, unsupported(SphereKind, method)
	}

	points, err := pointsOf(src)
	if err != nil {
		return nil, err
	}

	center, radius := fitter(points)
	return &Sphere{
		center: center,
		radius: max(radius, MinExtent),
		method: method,
	}, nil
}

func (s *Sphere) Kind() Kind { return SphereKind }

func (s *Sphere) Method() Method { return s.method }

func (s *Sphere) Center() types.Vec3 { return s.center }

func (s *Sphere) Radius() float32 { return s.radius }

func (s *Sphere) Volume() float32 {
	return 4.0 / 3.0 * math.Pi * s.radius * s.radius * s.radius
}

func (s *Sphere) Contains(p types.Vec3, eps float32) bool {
	return p.Dist(s.center) <= s.radius+eps
}

// The wireframe is made of the three great circles lying on the axis planes.
func (s *Sphere) Wireframe(transform types.Mat4) []types.Segment {
	x := types.Vec3{s.radius, 0, 0}
	y := types.Vec3{0, s.radius, 0}
	z := types.Vec3{0, 0, s.radius}
	return render.TransformSegments(ellipsoidOutline(s.center, x, y, z), transform)
}

func (s *Sphere) Draw(sink render.Sink, transform types.Mat4, color render.Color) {
	draw(sink, s, transform, color)
}

// Center at the point mean; radius reaches the farthest point.
func centroidSphere(points []types.Vec3) (types.Vec3, float32) {
	center := mean(points)
	return center, farthest(center, points)
}

// Seed the sphere with the most separated pair among the per-axis extreme
// points, then grow it to cover everything else.
func rittersSphere(points []types.Vec3) (types.Vec3, float32) {
	var (
		bestA, bestB types.Vec3
		bestDist     float32 = -1
	)
	for axis := 0; axis < 3; axis++ {
		a, b := extremePoints(points, worldAxes[axis])
		if d := a.Dist(b); d > bestDist {
			bestA, bestB, bestDist = a, b, d
		}
	}
	return growSphere(bestA, bestB, points)
}

// Directions sampled when searching for seed pairs: the three axes, the
// four cube diagonals and the six cube edge diagonals.
var larssonDirections = [13]types.Vec3{
	{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	{1, 1, 1}, {1, 1, -1}, {1, -1, 1}, {1, -1, -1},
	{1, 1, 0}, {1, -1, 0}, {1, 0, 1}, {1, 0, -1}, {0, 1, 1}, {0, 1, -1},
}

// Grow a candidate sphere from the extreme pair along each sampled direction
// and keep the smallest one. The axis pairs used by rittersSphere are among
// the candidates so the result is never larger than the Ritter sphere.
func larssonsSphere(points []types.Vec3) (types.Vec3, float32) {
	var (
		bestCenter types.Vec3
		bestRadius = float32(math.Inf(1))
	)
	for _, dir := range larssonDirections {
		a, b := extremePoints(points, dir)
		center, radius := growSphere(a, b, points)
		if radius < bestRadius {
			bestCenter, bestRadius = center, radius
		}
	}
	return bestCenter, bestRadius
}

// Seed the sphere with the extreme points along the principal axis.
func pcaSphere(points []types.Vec3) (types.Vec3, float32) {
	frame := newPrincipalFrame(points)
	a, b := extremePoints(points, frame.axes[0])
	return growSphere(a, b, points)
}

// Start with the sphere having a-b as its diameter and enlarge it to cover
// each point in turn. When a point lies outside, the sphere is replaced by
// the smallest one containing both the old sphere and the point.
func growSphere(a, b types.Vec3, points []types.Vec3) (types.Vec3, float32) {
	center := a.Add(b).Mul(0.5)
	radius := a.Dist(b) * 0.5

	for _, p := range points {
		d := p.Dist(center)
		if d <= radius {
			continue
		}
		newRadius := (radius + d) * 0.5
		k := (newRadius - radius) / d
		center = center.Add(p.Sub(center).Mul(k))
		radius = newRadius
	}

	// Moving the center accumulates rounding errors; a final sweep makes
	// sure every point is actually inside.
	return center, max(radius, farthest(center, points))
}

// Find the points with the smallest and largest projection onto dir. Ties
// keep the first occurrence.
func extremePoints(points []types.Vec3, dir types.Vec3) (types.Vec3, types.Vec3) {
	minIndex, maxIndex := 0, 0
	minProj := points[0].Dot(dir)
	maxProj := minProj
	for index := 1; index < len(points); index++ {
		proj := points[index].Dot(dir)
		if proj < minProj {
			minIndex, minProj = index, proj
		}
		if proj > maxProj {
			maxIndex, maxProj = index, proj
		}
	}
	return points[minIndex], points[maxIndex]
}

func farthest(center types.Vec3, points []types.Vec3) float32 {
	var dist float32
	for _, p := range points {
		dist = max(dist, p.Dist(center))
	}
	return dist
}

// Outline an ellipsoid with semi-axes x, y and z by the three ellipses
// spanned by each pair of semi-axes.
func ellipsoidOutline(center, x, y, z types.Vec3) []types.Segment {
	out := make([]types.Segment, 0, 3*render.EllipseSegments)
	out = append(out, render.Ellipse(center, x, y)...)
	out = append(out, render.Ellipse(center, y, z)...)
	out = append(out, render.Ellipse(center, z, x)...)
	return out
}
