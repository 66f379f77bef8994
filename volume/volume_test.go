package volume

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

func randomCloud(seed int64, count int, scale types.Vec3) []types.Vec3 {
	rng := rand.New(rand.NewSource(seed))
	rot := types.QuatFromEuler(0.4, -0.7, 1.1)
	points := make([]types.Vec3, count)
	for i := range points {
		p := types.Vec3{
			(rng.Float32()*2 - 1) * scale[0],
			(rng.Float32()*2 - 1) * scale[1],
			(rng.Float32()*2 - 1) * scale[2],
		}
		points[i] = rot.Rotate(p).Add(types.Vec3{3, -1, 7})
	}
	return points
}

func cubeCorners() []types.Vec3 {
	corners := types.AABB{Min: types.Vec3{-1, -1, -1}, Max: types.Vec3{1, 1, 1}}.Corners()
	return corners[:]
}

func TestFittersContainAllPoints(t *testing.T) {
	type spec struct {
		descr  string
		points []types.Vec3
	}
	specs := []spec{
		{"random cloud", randomCloud(1, 500, types.Vec3{10, 3, 1})},
		{"cube corners", cubeCorners()},
		{"single point", []types.Vec3{{1, 2, 3}}},
		{"coincident points", []types.Vec3{{1, 2, 3}, {1, 2, 3}, {1, 2, 3}}},
		{"collinear points", []types.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {-3, -3, -3}}},
		{"coplanar points", []types.Vec3{{0, 0, 0}, {4, 0, 0}, {0, 2, 0}, {4, 2, 0}, {1, 1, 0}}},
	}

	for specIndex, s := range specs {
		for _, key := range StandardKeys {
			v, err := Fit(key.Kind, key.Method, staticPoints(s.points))
			if err != nil {
				t.Fatalf("[spec %d: %s] %s: unexpected error: %v", specIndex, s.descr, key, err)
			}
			if v.Kind() != key.Kind || v.Method() != key.Method {
				t.Fatalf("[spec %d: %s] expected fitted volume to report %s; got %s/%s", specIndex, s.descr, key, v.Kind(), v.Method())
			}
			if vol := v.Volume(); math.IsNaN(float64(vol)) || math.IsInf(float64(vol), 0) || vol < 0 {
				t.Fatalf("[spec %d: %s] %s: invalid volume %f", specIndex, s.descr, key, vol)
			}
			if !v.Center().IsFinite() {
				t.Fatalf("[spec %d: %s] %s: invalid center %v", specIndex, s.descr, key, v.Center())
			}
			for pointIndex, p := range s.points {
				if !v.Contains(p, 1e-3) {
					t.Fatalf("[spec %d: %s] %s: point %d (%v) lies outside the fitted volume", specIndex, s.descr, key, pointIndex, p)
				}
			}
		}
	}
}

func TestAABBIsTight(t *testing.T) {
	points := randomCloud(2, 300, types.Vec3{5, 5, 5})
	box, err := NewAABB(staticPoints(points), MinMaxMethod)
	if err != nil {
		t.Fatal(err)
	}

	exp := types.AABBFromPoints(points)
	if box.Box() != exp {
		t.Fatalf("expected box %v; got %v", exp, box.Box())
	}

	// Shrinking any face must leave a point outside.
	for axis := 0; axis < 3; axis++ {
		shrunkMin, shrunkMax := exp, exp
		shrunkMin.Min[axis] += 1e-3
		shrunkMax.Max[axis] -= 1e-3
		for _, shrunk := range []types.AABB{shrunkMin, shrunkMax} {
			allInside := true
			for _, p := range points {
				if !shrunk.Contains(p, 0) {
					allInside = false
					break
				}
			}
			if allInside {
				t.Fatalf("expected shrinking axis %d to uncover a point", axis)
			}
		}
	}
}

func TestSinglePointAABB(t *testing.T) {
	box, err := NewAABB(staticPoints{{1, 2, 3}}, MinMaxMethod)
	if err != nil {
		t.Fatal(err)
	}
	if box.Volume() != 0 {
		t.Fatalf("expected zero volume; got %f", box.Volume())
	}
	if box.Center() != (types.Vec3{1, 2, 3}) {
		t.Fatalf("expected center to be the point; got %v", box.Center())
	}
}

func TestCentroidSphere(t *testing.T) {
	s, err := NewSphere(staticPoints(cubeCorners()), CentroidMethod)
	if err != nil {
		t.Fatal(err)
	}
	if !types.ApproxEqual(s.Center(), types.Vec3{}, 1e-6) {
		t.Fatalf("expected center at origin; got %v", s.Center())
	}
	if exp := float32(math.Sqrt(3)); math.Abs(float64(s.Radius()-exp)) > 1e-5 {
		t.Fatalf("expected radius %f; got %f", exp, s.Radius())
	}
}

func TestSinglePointSphereUsesMinExtent(t *testing.T) {
	for _, method := range []Method{CentroidMethod, RittersMethod, LarssonsMethod, PcaMethod} {
		s, err := NewSphere(staticPoints{{5, 5, 5}}, method)
		if err != nil {
			t.Fatal(err)
		}
		if s.Radius() != MinExtent {
			t.Fatalf("[%s] expected radius %f; got %f", method, MinExtent, s.Radius())
		}
	}
}

func TestLarssonsNotLargerThanRitters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var points []types.Vec3
	for i := 0; i < 200; i++ {
		p := types.Vec3{
			float32(rng.NormFloat64()),
			float32(rng.NormFloat64()),
			float32(rng.NormFloat64()),
		}.Normalize()
		points = append(points, p)
	}
	for i := 0; i < 10; i++ {
		dir := types.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}.Normalize()
		points = append(points, dir.Mul(1.5+rng.Float32()))
	}

	ritters, err := NewSphere(staticPoints(points), RittersMethod)
	if err != nil {
		t.Fatal(err)
	}
	larssons, err := NewSphere(staticPoints(points), LarssonsMethod)
	if err != nil {
		t.Fatal(err)
	}
	if larssons.Radius() > ritters.Radius() {
		t.Fatalf("expected Larsson radius %f to be at most the Ritter radius %f", larssons.Radius(), ritters.Radius())
	}
}

func TestRittersSphereOnSegment(t *testing.T) {
	s, err := NewSphere(staticPoints{{-2, 0, 0}, {0, 0, 0}, {2, 0, 0}}, RittersMethod)
	if err != nil {
		t.Fatal(err)
	}
	if s.Center() != (types.Vec3{}) || s.Radius() != 2 {
		t.Fatalf("expected sphere at origin with radius 2; got %v, %f", s.Center(), s.Radius())
	}
}

func TestOrientedBoxFollowsPrincipalAxes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var points []types.Vec3
	for i := 0; i < 4000; i++ {
		points = append(points, types.Vec3{
			(rng.Float32()*2 - 1) * 2,
			rng.Float32()*2 - 1,
			(rng.Float32()*2 - 1) * 0.5,
		})
	}

	obb, err := NewOrientedBox(staticPoints(points), PcaMethod)
	if err != nil {
		t.Fatal(err)
	}
	axes := obb.Axes()
	if axes[0][0] < 0.99 {
		t.Fatalf("expected primary axis to follow +x; got %v", axes[0])
	}
	if math.Abs(float64(axes[2].Dot(types.Vec3{0, 0, 1}))) < 0.99 {
		t.Fatalf("expected last axis to follow z; got %v", axes[2])
	}
	if vol := obb.Volume(); vol < 7.5 || vol > 10 {
		t.Fatalf("expected volume close to 8; got %f", vol)
	}

	// The basis must be right handed and orthonormal.
	if !types.ApproxEqual(axes[0].Cross(axes[1]), axes[2], 1e-5) {
		t.Fatalf("expected right handed basis; got %v", axes)
	}
}

func TestOrientedBoxOnCollinearPoints(t *testing.T) {
	obb, err := NewOrientedBox(staticPoints{{0, 0, 0}, {3, 4, 0}, {6, 8, 0}}, PcaMethod)
	if err != nil {
		t.Fatal(err)
	}
	half := obb.HalfExtents()
	if math.Abs(float64(half[0]-5)) > 1e-4 {
		t.Fatalf("expected primary half-extent 5; got %f", half[0])
	}
	if half[1] != MinExtent || half[2] != MinExtent {
		t.Fatalf("expected degenerate half-extents to be clamped to %f; got %v", MinExtent, half)
	}
	if !types.ApproxEqual(obb.Center(), types.Vec3{3, 4, 0}, 1e-4) {
		t.Fatalf("expected center at segment midpoint; got %v", obb.Center())
	}
}

func TestEllipsoidScalesToCoverCorners(t *testing.T) {
	box := types.AABB{Min: types.Vec3{-3, -2, -1}, Max: types.Vec3{3, 2, 1}}
	corners := box.Corners()
	e, err := NewEllipsoid(staticPoints(corners[:]), PcaMethod)
	if err != nil {
		t.Fatal(err)
	}

	// Per-axis projections alone give radii (3, 2, 1) which leave the
	// corners outside; scaling by sqrt(3) puts them on the surface.
	exp := types.Vec3{3, 2, 1}.Mul(float32(math.Sqrt(3)))
	if !types.ApproxEqual(e.Radii(), exp, 1e-3) {
		t.Fatalf("expected radii %v; got %v", exp, e.Radii())
	}
	if exp := float32(4.0 / 3.0 * math.Pi * 6 * 3 * math.Sqrt(3)); math.Abs(float64(e.Volume()-exp)) > 1e-2 {
		t.Fatalf("expected volume %f; got %f", exp, e.Volume())
	}
}

func TestFitErrors(t *testing.T) {
	type spec struct {
		kind   Kind
		method Method
		points []types.Vec3
		expErr error
	}
	specs := []spec{
		{AabbKind, PcaMethod, cubeCorners(), ErrUnsupportedMethod},
		{SphereKind, MinMaxMethod, cubeCorners(), ErrUnsupportedMethod},
		{EllipsoidKind, RittersMethod, cubeCorners(), ErrUnsupportedMethod},
		{OrientedKind, LarssonsMethod, cubeCorners(), ErrUnsupportedMethod},
		{Kind(42), PcaMethod, cubeCorners(), ErrUnsupportedMethod},
		{AabbKind, MinMaxMethod, nil, ErrNoPoints},
		{SphereKind, RittersMethod, nil, ErrNoPoints},
		{EllipsoidKind, PcaMethod, nil, ErrNoPoints},
		{OrientedKind, PcaMethod, nil, ErrNoPoints},
	}

	for idx, s := range specs {
		_, err := Fit(s.kind, s.method, staticPoints(s.points))
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", idx, s.expErr, err)
		}
	}
}

func TestFitAll(t *testing.T) {
	volumes, err := FitAll(staticPoints(randomCloud(3, 100, types.Vec3{1, 2, 3})))
	if err != nil {
		t.Fatal(err)
	}
	if len(volumes) != len(StandardKeys) {
		t.Fatalf("expected %d volumes; got %d", len(StandardKeys), len(volumes))
	}
	for idx, v := range volumes {
		if key := (Key{v.Kind(), v.Method()}); key != StandardKeys[idx] {
			t.Fatalf("[volume %d] expected %s; got %s", idx, StandardKeys[idx], key)
		}
	}

	if _, err = FitAll(staticPoints(nil)); !errors.Is(err, ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints; got %v", err)
	}
}

func TestWireframes(t *testing.T) {
	src := staticPoints(cubeCorners())
	offset := types.Vec3{10, 0, 0}
	transform := types.Translate4(offset)

	type spec struct {
		kind     Kind
		method   Method
		expCount int
	}
	specs := []spec{
		{AabbKind, MinMaxMethod, 12},
		{SphereKind, RittersMethod, 3 * render.EllipseSegments},
		{EllipsoidKind, PcaMethod, 3 * render.EllipseSegments},
		{OrientedKind, PcaMethod, 12},
	}

	for idx, s := range specs {
		v, err := Fit(s.kind, s.method, src)
		if err != nil {
			t.Fatal(err)
		}

		var rec render.Recorder
		v.Draw(&rec, transform, render.Green)
		if len(rec.Batches) != 1 || rec.Batches[0].Color != render.Green {
			t.Fatalf("[spec %d] expected a single green batch; got %d batches", idx, len(rec.Batches))
		}
		if got := rec.SegmentCount(); got != s.expCount {
			t.Fatalf("[spec %d] expected %d segments; got %d", idx, s.expCount, got)
		}

		// Every wireframe vertex must lie on or inside the transformed volume.
		for _, seg := range rec.Batches[0].Segments {
			if !v.Contains(seg.A.Sub(offset), 1e-3) {
				t.Fatalf("[spec %d] wireframe vertex %v lies outside the volume", idx, seg.A)
			}
		}
	}
}
