// Package volume fits simple bounding shapes around point sets.
//
// Every fitter is a pure function of its input: it keeps no state between
// calls and never modifies the source points, so fitters may run
// concurrently on the same or different meshes.
package volume

import (
	"errors"
	"fmt"

	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// Radius and half-extent floor applied to degenerate (coincident, collinear
// or coplanar) inputs.
const MinExtent float32 = 1e-4

var (
	ErrNoPoints          = errors.New("volume: no points to fit")
	ErrUnsupportedMethod = errors.New("volume: unsupported fitting method")
)

// PointSource is implemented by anything that can supply the points to
// enclose; *mesh.HalfEdgeMesh satisfies it.
type PointSource interface {
	Positions() []types.Vec3
}

type Kind uint8

const (
	AabbKind Kind = iota
	SphereKind
	EllipsoidKind
	OrientedKind
)

func (k Kind) String() string {
	switch k {
	case AabbKind:
		return "aabb"
	case SphereKind:
		return "sphere"
	case EllipsoidKind:
		return "ellipsoid"
	case OrientedKind:
		return "oriented"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Method uint8

const (
	MinMaxMethod Method = iota
	CentroidMethod
	RittersMethod
	LarssonsMethod
	PcaMethod
)

func (m Method) String() string {
	switch m {
	case MinMaxMethod:
		return "minmax"
	case CentroidMethod:
		return "centroid"
	case RittersMethod:
		return "ritters"
	case LarssonsMethod:
		return "larssons"
	case PcaMethod:
		return "pca"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// A Volume is a fitted bounding shape.
type Volume interface {
	Kind() Kind
	Method() Method

	// The shape center in the space of the fitted points.
	Center() types.Vec3

	// Check whether p lies inside the shape grown by eps.
	Contains(p types.Vec3, eps float32) bool

	// The enclosed volume.
	Volume() float32

	// Generate wireframe segments after applying transform.
	Wireframe(transform types.Mat4) []types.Segment

	// Send the wireframe to a render sink.
	Draw(sink render.Sink, transform types.Mat4, color render.Color)
}

// Identifies a fitter by shape kind and method.
type Key struct {
	Kind   Kind
	Method Method
}

func (k Key) String() string {
	return k.Kind.String() + "/" + k.Method.String()
}

// The fitters run for every loaded mesh, in display order.
var StandardKeys = []Key{
	{AabbKind, MinMaxMethod},
	{SphereKind, CentroidMethod},
	{SphereKind, RittersMethod},
	{SphereKind, LarssonsMethod},
	{SphereKind, PcaMethod},
	{EllipsoidKind, PcaMethod},
	{OrientedKind, PcaMethod},
}

// Fit a volume of the given kind using the given method.
func Fit(kind Kind, method Method, src PointSource) (Volume, error) {
	switch kind {
	case AabbKind:
		return NewAABB(src, method)
	case SphereKind:
		return NewSphere(src, method)
	case EllipsoidKind:
		return NewEllipsoid(src, method)
	case OrientedKind:
		return NewOrientedBox(src, method)
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedMethod, kind, method)
}

// Run every fitter in StandardKeys on src. The returned slice is index
// aligned with StandardKeys.
func FitAll(src PointSource) ([]Volume, error) {
	points := staticPoints(src.Positions())
	out := make([]Volume, len(StandardKeys))
	for index, key := range StandardKeys {
		v, err := Fit(key.Kind, key.Method, points)
		if err != nil {
			return nil, fmt.Errorf("fitting %s: %w", key, err)
		}
		out[index] = v
	}
	return out, nil
}

// Wraps an already extracted point slice so FitAll does not copy mesh
// positions once per fitter.
type staticPoints []types.Vec3

func (p staticPoints) Positions() []types.Vec3 {
	return p
}

// Fetch the points of src, failing for empty inputs.
func pointsOf(src PointSource) ([]types.Vec3, error) {
	points := src.Positions()
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

func unsupported(kind Kind, method Method) error {
	return fmt.Errorf("%w: %s/%s", ErrUnsupportedMethod, kind, method)
}

func draw(sink render.Sink, v Volume, transform types.Mat4, color render.Color) {
	sink.DrawLines(v.Wireframe(transform), color)
}
