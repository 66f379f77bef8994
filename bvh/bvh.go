// Package bvh builds bounding volume hierarchies over mesh instances and
// answers depth-bounded and spatial queries against them.
package bvh

import (
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/karma/types"
)

var (
	ErrEmptyInput    = errors.New("bvh: no instances to partition")
	ErrUnknownMethod = errors.New("bvh: unknown construction method")
)

// The construction strategy used for building a hierarchy.
type Method uint8

const (
	// Start with one leaf per instance and merge pairs until a single root
	// remains.
	BottomUpMethod Method = iota

	// Start with a single node and recursively split it.
	TopDownMethod
)

func (m Method) String() string {
	switch m {
	case BottomUpMethod:
		return "bottom-up"
	case TopDownMethod:
		return "top-down"
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// Parse a method name as returned by Method.String.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "bottom-up":
		return BottomUpMethod, nil
	case "top-down":
		return TopDownMethod, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// The BoundedVolume interface is implemented by all items that can be
// partitioned by the hierarchy builder.
type BoundedVolume interface {
	BBox() types.AABB
	Center() types.Vec3
}

// A hierarchy node. Nodes are stored in a contiguous list; internal nodes
// reference their children by index while leaves list the indices of the
// items they hold.
type Node struct {
	// The exact union of the child (or leaf item) boxes.
	Box types.AABB

	// Distance from the root; the root has depth 0.
	Depth int

	// Child node indices or -1 for leaves.
	Left, Right int32

	// Item indices in ascending order. Only populated for leaves.
	Instances []int
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.Left < 0
}

// Build statistics.
type Stats struct {
	Nodes     int
	Leaves    int
	Instances int
	MaxDepth  int
	BuildTime time.Duration
}
