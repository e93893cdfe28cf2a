// ABOUTME: Retained size: what would become unreachable if an object went away
// ABOUTME: Sums object sizes over each node's dominator subtree

package graph

// RetainedSize returns the retained size of every reachable object
func RetainedSize(g Graph) map[ObjID]uint64 {
	r := newRetention(g)
	result := make(map[ObjID]uint64)
	for node := range r.tree {
		if node != SuperRoot {
			result[node] = r.size(node)
		}
	}
	return result
}

// RetainedSizeSubsets returns retained sizes for the reachable objects among targets
func RetainedSizeSubsets(g Graph, targets []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64)
	if len(targets) == 0 {
		return result
	}
	r := newRetention(g)
	for _, id := range targets {
		if _, ok := r.tree[id]; ok && id != SuperRoot {
			result[id] = r.size(id)
		}
	}
	return result
}

type retention struct {
	tree  map[ObjID][]ObjID
	own   map[ObjID]uint64
	cache map[ObjID]uint64
}

func newRetention(g Graph) *retention {
	r := &retention{
		tree:  DominatorTree(Dominators(g)),
		own:   make(map[ObjID]uint64),
		cache: make(map[ObjID]uint64),
	}
	g.ForEachObject(func(obj *Object) {
		r.own[obj.ID] = obj.Size
	})
	return r
}

// size sums the subtree post-order; dominator trees are acyclic
func (r *retention) size(node ObjID) uint64 {
	if s, ok := r.cache[node]; ok {
		return s
	}
	s := r.own[node]
	for _, child := range r.tree[node] {
		s += r.size(child)
	}
	r.cache[node] = s
	return s
}
