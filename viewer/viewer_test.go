package viewer

import (
	"errors"
	"testing"

	"github.com/achilleasa/karma/bvh"
	"github.com/achilleasa/karma/mesh"
	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
	"github.com/achilleasa/karma/volume"
)

func unitCube() *mesh.HalfEdgeMesh {
	return mesh.NewBox("cube", types.AABB{Min: types.Vec3{-0.5, -0.5, -0.5}, Max: types.Vec3{0.5, 0.5, 0.5}})
}

// A single quad with four boundary edges.
func quad(t *testing.T) *mesh.HalfEdgeMesh {
	m, err := mesh.New(
		"quad",
		[]types.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[][3]uint32{{0, 1, 2}, {0, 2, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRingTransforms(t *testing.T) {
	transforms := RingTransforms(4, 10)
	exp := []types.Vec3{{10, 0, 0}, {0, 0, 10}, {-10, 0, 0}, {0, 0, -10}}
	for idx, tr := range transforms {
		if !types.ApproxEqual(tr.Translation, exp[idx], 1e-5) {
			t.Fatalf("[instance %d] expected translation %v; got %v", idx, exp[idx], tr.Translation)
		}
	}
}

func TestLoad(t *testing.T) {
	v := New(DefaultConfig())
	if err := v.Load(quad(t)); err != nil {
		t.Fatal(err)
	}

	if len(v.Volumes()) != len(volume.StandardKeys) {
		t.Fatalf("expected %d volumes; got %d", len(volume.StandardKeys), len(v.Volumes()))
	}
	if len(v.Boundaries()) != 4 {
		t.Fatalf("expected 4 boundary edges; got %d", len(v.Boundaries()))
	}
	if len(v.Instances()) != 4 {
		t.Fatalf("expected 4 instances; got %d", len(v.Instances()))
	}
	if v.Hierarchy() != nil {
		t.Fatal("expected hierarchy to be built lazily")
	}
	if v.Paused() {
		t.Fatal("expected pause flag to be restored after load")
	}
	if n := v.Mesh().Vertex(0).Normal; !types.ApproxEqual(n, types.Vec3{0, 0, 1}, 1e-5) {
		t.Fatalf("expected vertex normals to be calculated; got %v", n)
	}
}

func TestLoadKeepsPauseFlag(t *testing.T) {
	v := New(DefaultConfig())
	v.SetPaused(true)
	if err := v.Load(unitCube()); err != nil {
		t.Fatal(err)
	}
	if !v.Paused() {
		t.Fatal("expected load to restore the previous pause flag")
	}
}

func TestLoadFailureKeepsState(t *testing.T) {
	v := New(DefaultConfig())
	if err := v.Load(unitCube()); err != nil {
		t.Fatal(err)
	}

	empty, err := mesh.New("empty", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = v.Load(empty); !errors.Is(err, volume.ErrNoPoints) {
		t.Fatalf("expected ErrNoPoints; got %v", err)
	}
	if v.Mesh().Name != "cube" {
		t.Fatalf("expected previous mesh to remain loaded; got %q", v.Mesh().Name)
	}
}

func TestBuild(t *testing.T) {
	v := New(DefaultConfig())
	if err := v.Load(unitCube()); err != nil {
		t.Fatal(err)
	}

	if err := v.Build(bvh.BottomUpMethod, bvh.Never); err != nil {
		t.Fatal(err)
	}
	first := v.Hierarchy()
	if first == nil || first.Depth() != 2 {
		t.Fatalf("expected a depth 2 hierarchy over 4 instances")
	}
	if minDepth, maxDepth := v.Display().DepthRange(); minDepth != 0 || maxDepth != 2 {
		t.Fatalf("expected draw range [0, 2]; got [%d, %d]", minDepth, maxDepth)
	}

	// A failed rebuild keeps the active hierarchy.
	if err := v.Build(bvh.Method(42), bvh.Never); !errors.Is(err, bvh.ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod; got %v", err)
	}
	if v.Hierarchy() != first {
		t.Fatal("expected failed rebuild to keep the previous hierarchy")
	}

	if err := v.Build(bvh.TopDownMethod, bvh.DepthAtLeast(1)); err != nil {
		t.Fatal(err)
	}
	if v.Hierarchy() == first || v.Hierarchy().Method() != bvh.TopDownMethod {
		t.Fatal("expected successful rebuild to replace the hierarchy")
	}
}

func TestBuildWithoutInstances(t *testing.T) {
	v := New(Config{InstanceCount: 0})
	if err := v.Load(unitCube()); err != nil {
		t.Fatal(err)
	}
	if err := v.Build(bvh.TopDownMethod, nil); !errors.Is(err, bvh.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput; got %v", err)
	}
}

func TestScrollDepth(t *testing.T) {
	v := New(DefaultConfig())
	if err := v.Load(unitCube()); err != nil {
		t.Fatal(err)
	}
	if err := v.Build(bvh.BottomUpMethod, nil); err != nil {
		t.Fatal(err)
	}

	type spec struct {
		minDelta, maxDelta int
		expMin, expMax     int
	}
	specs := []spec{
		{0, -1, 0, 1},
		{1, 0, 1, 1},
		{5, 0, 2, 2},
		{-10, 0, 0, 2},
		{0, -10, 0, 0},
		{0, 10, 0, 2},
	}
	for idx, s := range specs {
		v.ScrollMinDepth(s.minDelta)
		v.ScrollMaxDepth(s.maxDelta)
		if minDepth, maxDepth := v.Display().DepthRange(); minDepth != s.expMin || maxDepth != s.expMax {
			t.Fatalf("[spec %d] expected range [%d, %d]; got [%d, %d]", idx, s.expMin, s.expMax, minDepth, maxDepth)
		}
	}
}

func TestFrame(t *testing.T) {
	v := New(DefaultConfig())

	var rec render.Recorder
	v.Frame(&rec)
	if len(rec.Batches) != 0 {
		t.Fatal("expected nothing to be drawn before a mesh is loaded")
	}

	if err := v.Load(quad(t)); err != nil {
		t.Fatal(err)
	}
	if err := v.Build(bvh.BottomUpMethod, nil); err != nil {
		t.Fatal(err)
	}

	ritters := volume.Key{Kind: volume.SphereKind, Method: volume.RittersMethod}
	v.SetDisplay(v.Display().WithVolume(ritters, true))

	v.Frame(&rec)

	// 4 instances x (sphere + boundaries) + one batch of hierarchy boxes.
	if len(rec.Batches) != 9 {
		t.Fatalf("expected 9 batches; got %d", len(rec.Batches))
	}
	if rec.Batches[0].Color != render.Green || rec.Batches[1].Color != render.White {
		t.Fatalf("expected green sphere and white boundary batches; got %v, %v", rec.Batches[0].Color, rec.Batches[1].Color)
	}
	if last := rec.Batches[len(rec.Batches)-1]; last.Color != render.Red || len(last.Segments) != 7*12 {
		t.Fatalf("expected 7 red hierarchy boxes; got %d segments", len(last.Segments))
	}

	// Boundary edges follow the instance transform.
	if seg := rec.Batches[1].Segments[0]; seg.A[0] < 9 {
		t.Fatalf("expected first instance boundary to be translated to x >= 10; got %v", seg.A)
	}

	// Nothing is drawn while paused.
	rec.Reset()
	v.SetPaused(true)
	v.Frame(&rec)
	if len(rec.Batches) != 0 {
		t.Fatalf("expected paused viewer to draw nothing; got %d batches", len(rec.Batches))
	}
}

func TestDisplayConfigIsImmutable(t *testing.T) {
	key := volume.Key{Kind: volume.AabbKind, Method: volume.MinMaxMethod}
	base := DefaultDisplayConfig()
	withBox := base.WithVolume(key, true)
	if base.VolumeEnabled(key) {
		t.Fatal("expected WithVolume to leave the original config untouched")
	}
	if !withBox.VolumeEnabled(key) {
		t.Fatal("expected volume to be enabled in the copy")
	}

	all := withBox.WithAllVolumes(true)
	if len(all.EnabledVolumes()) != len(volume.StandardKeys) || len(withBox.EnabledVolumes()) != 1 {
		t.Fatal("expected WithAllVolumes to only affect the copy")
	}
	if none := all.WithAllVolumes(false); len(none.EnabledVolumes()) != 0 {
		t.Fatal("expected all volumes to be disabled")
	}
	if c := base.WithBoundaries(false).WithHierarchy(false); c.BoundariesEnabled() || c.HierarchyEnabled() || !base.BoundariesEnabled() {
		t.Fatal("expected boundary and hierarchy toggles to apply to the copy")
	}
}
