package bvh

import (
	"cmp"
	"slices"
	"time"

	"github.com/achilleasa/karma/log"
	"github.com/achilleasa/karma/types"
)

// Bottom-up builds run a naive pairwise search for every merge. Inputs
// larger than this threshold are still processed but trigger a warning.
const BottomUpWarnThreshold = 1000

type builder struct {
	logger log.Logger

	pred TerminationPredicate

	// Item boxes and centers indexed by item index.
	boxes   []types.AABB
	centers []types.Vec3

	// Hierarchy nodes stored as a contiguous list in pre-order.
	nodes []Node

	stats Stats
}

// Construct a hierarchy over a set of bounded volumes using the requested
// method. The predicate is consulted for every candidate node with the number
// of items beneath it and its depth; a nil predicate behaves like Never.
//
// Builds are deterministic: the same items in the same order and the same
// predicate always produce the same node list.
func Build(method Method, items []BoundedVolume, pred TerminationPredicate) (*Hierarchy, error) {
	if method != BottomUpMethod && method != TopDownMethod {
		return nil, ErrUnknownMethod
	}
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	if pred == nil {
		pred = Never
	}

	b := &builder{
		logger:  log.New("bvhBuilder"),
		pred:    pred,
		boxes:   make([]types.AABB, len(items)),
		centers: make([]types.Vec3, len(items)),
		nodes:   make([]Node, 0, 2*len(items)),
		stats: Stats{
			Instances: len(items),
		},
	}
	for index, item := range items {
		b.boxes[index] = item.BBox()
		b.centers[index] = item.Center()
	}

	start := time.Now()
	switch method {
	case BottomUpMethod:
		b.buildBottomUp()
	case TopDownMethod:
		all := make([]int, len(items))
		for index := range all {
			all[index] = index
		}
		b.partition(all, 0)
	}
	b.stats.BuildTime = time.Since(start)

	b.logger.Debugf(
		"%s tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		method,
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves,
	)

	return &Hierarchy{
		method: method,
		pred:   pred,
		nodes:  b.nodes,
		boxes:  b.boxes,
		stats:  b.stats,
	}, nil
}

// Partition a list of item indices and return the index of the generated
// node.
func (b *builder) partition(workList []int, depth int) int32 {
	box := types.EmptyAABB()
	for _, item := range workList {
		box = box.Union(b.boxes[item])
	}

	if len(workList) == 1 || b.pred(len(workList), depth) {
		return b.createLeaf(box, depth, workList)
	}

	// Sort along the longest axis; equal centers keep index order.
	axis := box.LongestAxis()
	sorted := slices.Clone(workList)
	slices.SortFunc(sorted, func(a, c int) int {
		if order := cmp.Compare(b.centers[a][axis], b.centers[c][axis]); order != 0 {
			return order
		}
		return cmp.Compare(a, c)
	})

	// Split at the lower median. Items lying exactly on the split go left.
	splitPoint := b.centers[sorted[(len(sorted)-1)/2]][axis]
	leftWorkList := make([]int, 0, len(sorted))
	rightWorkList := make([]int, 0, len(sorted))
	for _, item := range sorted {
		if b.centers[item][axis] <= splitPoint {
			leftWorkList = append(leftWorkList, item)
		} else {
			rightWorkList = append(rightWorkList, item)
		}
	}

	// If all centers coincide fall back to splitting the sorted list in half
	if len(rightWorkList) == 0 || len(leftWorkList) == 0 {
		half := len(sorted) / 2
		leftWorkList, rightWorkList = sorted[:half], sorted[half:]
	}

	nodeIndex := b.createNode(box, depth)
	left := b.partition(leftWorkList, depth+1)
	right := b.partition(rightWorkList, depth+1)
	b.nodes[nodeIndex].Left = left
	b.nodes[nodeIndex].Right = right
	return nodeIndex
}

// Append an internal node and return its index. Child indices are filled in
// by the caller.
func (b *builder) createNode(box types.AABB, depth int) int32 {
	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		Box:   box,
		Depth: depth,
		Left:  -1,
		Right: -1,
	})

	b.stats.Nodes++
	b.stats.MaxDepth = max(b.stats.MaxDepth, depth)
	return nodeIndex
}

// Append a leaf holding the given items and return its index.
func (b *builder) createLeaf(box types.AABB, depth int, items []int) int32 {
	nodeIndex := b.createNode(box, depth)
	leafItems := slices.Clone(items)
	slices.Sort(leafItems)
	b.nodes[nodeIndex].Instances = leafItems

	b.stats.Leaves++
	return nodeIndex
}
