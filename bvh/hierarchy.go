package bvh

import (
	"iter"

	"github.com/achilleasa/karma/render"
	"github.com/achilleasa/karma/types"
)

// A Hierarchy is an immutable bounding volume tree produced by Build.
type Hierarchy struct {
	method Method
	pred   TerminationPredicate

	// Nodes in pre-order; the root is stored at index 0.
	nodes []Node

	// Item boxes indexed by item index.
	boxes []types.AABB

	stats Stats
}

// Get the root node.
func (h *Hierarchy) Root() *Node {
	return &h.nodes[0]
}

// Get a node by index.
func (h *Hierarchy) Node(index int32) *Node {
	return &h.nodes[index]
}

// Get the node list in pre-order. The returned slice must not be modified.
func (h *Hierarchy) Nodes() []Node {
	return h.nodes
}

// Get the depth of the deepest node.
func (h *Hierarchy) Depth() int {
	return h.stats.MaxDepth
}

func (h *Hierarchy) Method() Method {
	return h.method
}

// Get the termination predicate the hierarchy was built with.
func (h *Hierarchy) Predicate() TerminationPredicate {
	return h.pred
}

func (h *Hierarchy) Stats() Stats {
	return h.stats
}

// Get the world box of a partitioned item.
func (h *Hierarchy) ItemBox(item int) types.AABB {
	return h.boxes[item]
}

// Count the nodes at each depth; the slice is indexed by depth.
func (h *Hierarchy) LevelCounts() []int {
	counts := make([]int, h.Depth()+1)
	for index := range h.nodes {
		counts[h.nodes[index].Depth]++
	}
	return counts
}

// Correct a depth range so it can be used against a tree of the given
// depth: the bounds are swapped if minDepth > maxDepth and then clamped to
// [0, depth].
func ClampDepthRange(minDepth, maxDepth, depth int) (int, int) {
	if minDepth > maxDepth {
		minDepth, maxDepth = maxDepth, minDepth
	}
	clamp := func(v int) int {
		return min(max(v, 0), depth)
	}
	return clamp(minDepth), clamp(maxDepth)
}

// Clamp a depth range against this hierarchy.
func (h *Hierarchy) ClampDepthRange(minDepth, maxDepth int) (int, int) {
	return ClampDepthRange(minDepth, maxDepth, h.Depth())
}

// Iterate the nodes whose depth lies in the inclusive range [minDepth,
// maxDepth] after clamping it with ClampDepthRange. Nodes are visited in
// pre-order so parents are always yielded before their children. The
// returned sequence is lazy and may be iterated more than once.
func (h *Hierarchy) NodesAtDepthRange(minDepth, maxDepth int) iter.Seq[*Node] {
	minDepth, maxDepth = h.ClampDepthRange(minDepth, maxDepth)
	return func(yield func(*Node) bool) {
		h.walk(func(node *Node) bool {
			return node.Depth <= maxDepth
		}, func(node *Node) bool {
			if node.Depth < minDepth {
				return true
			}
			return yield(node)
		})
	}
}

// Iterate the indices of the items whose boxes contain p.
func (h *Hierarchy) QueryPoint(p types.Vec3) iter.Seq[int] {
	return h.query(func(box types.AABB) bool {
		return box.Contains(p, 0)
	})
}

// Iterate the indices of the items whose boxes are hit by the ray origin +
// t*dir for some t in [0, tMax].
func (h *Hierarchy) Raycast(origin, dir types.Vec3, tMax float32) iter.Seq[int] {
	return h.query(func(box types.AABB) bool {
		return box.Hit(origin, dir, tMax)
	})
}

// Draw the boxes of the nodes in a depth range as a single batch.
func (h *Hierarchy) DrawBoxes(sink render.Sink, transform types.Mat4, color render.Color, minDepth, maxDepth int) {
	var segments []types.Segment
	for node := range h.NodesAtDepthRange(minDepth, maxDepth) {
		segments = append(segments, render.BoxEdges(node.Box.Corners())...)
	}
	if len(segments) == 0 {
		return
	}
	sink.DrawLines(render.TransformSegments(segments, transform), color)
}

// Visit items in leaves reachable through boxes accepted by test.
func (h *Hierarchy) query(test func(types.AABB) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		h.walk(func(node *Node) bool {
			return test(node.Box)
		}, func(node *Node) bool {
			for _, item := range node.Instances {
				if test(h.boxes[item]) && !yield(item) {
					return false
				}
			}
			return true
		})
	}
}

// Run a pre-order traversal. Subtrees of nodes rejected by descend are
// skipped entirely; visit is invoked for every other node and stops the walk
// by returning false.
func (h *Hierarchy) walk(descend, visit func(*Node) bool) {
	stack := []int32{0}
	for len(stack) > 0 {
		node := &h.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !descend(node) {
			continue
		}
		if !visit(node) {
			return
		}
		if !node.IsLeaf() {
			stack = append(stack, node.Right, node.Left)
		}
	}
}
