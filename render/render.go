// Package render defines the interface between the bounding volume code and
// whatever draws debug wireframes on screen.
package render

import (
	"math"

	"github.com/achilleasa/karma/types"
)

// An RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	Red    = Color{1, 0, 0, 1}
	Green  = Color{0, 1, 0, 1}
	Blue   = Color{0, 0, 1, 1}
	Yellow = Color{1, 1, 0, 1}
	White  = Color{1, 1, 1, 1}
)

// A Sink receives finished wireframe geometry once per frame. Implementations
// are free to batch, upload or record the segments; they must not retain
// the slice after DrawLines returns.
type Sink interface {
	DrawLines(segments []types.Segment, color Color)
}

// A batch of segments sharing a color.
type Batch struct {
	Segments []types.Segment
	Color    Color
}

// Recorder is a Sink that keeps a copy of every batch it receives.
type Recorder struct {
	Batches []Batch
}

// Implements Sink.
func (r *Recorder) DrawLines(segments []types.Segment, color Color) {
	r.Batches = append(r.Batches, Batch{
		Segments: append([]types.Segment(nil), segments...),
		Color:    color,
	})
}

// Get the total number of recorded segments.
func (r *Recorder) SegmentCount() int {
	count := 0
	for _, b := range r.Batches {
		count += len(b.Segments)
	}
	return count
}

// Drop all recorded batches.
func (r *Recorder) Reset() {
	r.Batches = r.Batches[:0]
}

// Number of segments used to approximate a full ellipse.
const EllipseSegments = 32

// Generate the 12 edges of a box given its corners indexed as in
// types.AABB.Corners.
func BoxEdges(corners [8]types.Vec3) []types.Segment {
	segments := make([]types.Segment, 0, 12)
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			bit := 1 << uint(axis)
			if i&bit == 0 {
				segments = append(segments, types.Segment{A: corners[i], B: corners[i|bit]})
			}
		}
	}
	return segments
}

// Generate the outline of the ellipse center + cos(t)*u + sin(t)*v.
func Ellipse(center, u, v types.Vec3) []types.Segment {
	segments := make([]types.Segment, 0, EllipseSegments)
	point := func(step int) types.Vec3 {
		angle := 2 * math.Pi * float64(step) / EllipseSegments
		return center.Add(u.Mul(float32(math.Cos(angle)))).Add(v.Mul(float32(math.Sin(angle))))
	}

	prev := point(0)
	for step := 1; step <= EllipseSegments; step++ {
		next := point(step)
		segments = append(segments, types.Segment{A: prev, B: next})
		prev = next
	}
	return segments
}

// Apply a transformation matrix to a list of segments in place.
func TransformSegments(segments []types.Segment, m types.Mat4) []types.Segment {
	for index := range segments {
		segments[index].A = m.TransformPoint(segments[index].A)
		segments[index].B = m.TransformPoint(segments[index].B)
	}
	return segments
}
