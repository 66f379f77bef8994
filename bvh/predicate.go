package bvh

// A TerminationPredicate decides whether the builder should stop splitting
// (or merging) at a node covering instanceCount items at the given depth.
type TerminationPredicate func(instanceCount, depth int) bool

// Never stop; top-down builds split until every leaf holds a single item and
// bottom-up builds keep the full binary merge tree.
func Never(instanceCount, depth int) bool {
	return false
}

// Stop once the given depth is reached.
func DepthAtLeast(maxDepth int) TerminationPredicate {
	return func(_, depth int) bool {
		return depth >= maxDepth
	}
}

// Stop once a node covers fewer than count items.
func FewerThan(count int) TerminationPredicate {
	return func(instanceCount, _ int) bool {
		return instanceCount < count
	}
}

// Stop as soon as any of the supplied predicates does.
func Any(predicates ...TerminationPredicate) TerminationPredicate {
	return func(instanceCount, depth int) bool {
		for _, pred := range predicates {
			if pred != nil && pred(instanceCount, depth) {
				return true
			}
		}
		return false
	}
}
