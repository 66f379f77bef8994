package bvh

import "github.com/achilleasa/karma/types"

// A node of the temporary merge tree produced by the bottom-up builder.
type cluster struct {
	box         types.AABB
	left, right *cluster

	// Item index for leaf clusters.
	item int

	// The smallest item index in this cluster; used for ordering.
	minItem int

	count int
}

// Agglomerate items into a binary merge tree and flatten it into the node
// list.
//
// Each step merges the pair of active clusters whose union box has the
// smallest volume. Ties prefer the smaller union surface area and then the
// pair whose indices in the active list (kept ordered by smallest item
// index) come first.
func (b *builder) buildBottomUp() {
	if len(b.boxes) > BottomUpWarnThreshold {
		b.logger.Warningf(
			"bottom-up build over %d instances uses a naive O(n^3) merge search; this may take a while",
			len(b.boxes),
		)
	}

	active := make([]*cluster, len(b.boxes))
	for index, box := range b.boxes {
		active[index] = &cluster{box: box, item: index, minItem: index, count: 1}
	}

	for len(active) > 1 {
		bestI, bestJ := 0, 1
		bestBox := active[0].box.Union(active[1].box)
		bestVolume, bestArea := bestBox.Volume(), bestBox.SurfaceArea()

		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				union := active[i].box.Union(active[j].box)
				volume := union.Volume()
				if volume > bestVolume {
					continue
				}
				area := union.SurfaceArea()
				if volume < bestVolume || area < bestArea {
					bestI, bestJ = i, j
					bestBox, bestVolume, bestArea = union, volume, area
				}
			}
		}

		// The merged cluster inherits the slot of its first member so the
		// active list stays ordered by smallest item index.
		a, c := active[bestI], active[bestJ]
		active[bestI] = &cluster{
			box:     bestBox,
			left:    a,
			right:   c,
			minItem: min(a.minItem, c.minItem),
			count:   a.count + c.count,
		}
		active = append(active[:bestJ], active[bestJ+1:]...)
	}

	b.flatten(active[0], 0)
}

// Emit a merge subtree in pre-order. The first node on each path for which
// the termination predicate holds becomes a leaf with every item of its
// subtree.
func (b *builder) flatten(c *cluster, depth int) int32 {
	if c.left == nil || b.pred(c.count, depth) {
		return b.createLeaf(c.box, depth, c.items(make([]int, 0, c.count)))
	}

	nodeIndex := b.createNode(c.box, depth)
	left := b.flatten(c.left, depth+1)
	right := b.flatten(c.right, depth+1)
	b.nodes[nodeIndex].Left = left
	b.nodes[nodeIndex].Right = right
	return nodeIndex
}

// Append the item indices of a cluster subtree to out.
func (c *cluster) items(out []int) []int {
	if c.left == nil {
		return append(out, c.item)
	}
	return c.right.items(c.left.items(out))
}
