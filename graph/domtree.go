// ABOUTME: Dominator tree construction and queries
// ABOUTME: Depths, dominator chains, and dominance tests over immediate dominators

package graph

import "golang.org/x/exp/slices"

// DominatorTree inverts idom into parent -> children, children sorted by ID.
// The super-root is always present.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := map[ObjID][]ObjID{SuperRoot: {}}
	for node := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
	}
	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}
	for _, children := range tree {
		slices.Sort(children)
	}
	return tree
}

// DominatorDepth returns each node's depth below the super-root (depth 0)
func DominatorDepth(tree map[ObjID][]ObjID) map[ObjID]int {
	depth := map[ObjID]int{SuperRoot: 0}
	queue := []ObjID{SuperRoot}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range tree[node] {
			depth[child] = depth[node] + 1
			queue = append(queue, child)
		}
	}
	return depth
}

// DominatorPath returns node followed by its dominators up to and including
// the super-root
func DominatorPath(idom map[ObjID]ObjID, node ObjID) []ObjID {
	path := []ObjID{node}
	for node != SuperRoot {
		dom, ok := idom[node]
		if !ok {
			dom = SuperRoot
		}
		path = append(path, dom)
		node = dom
	}
	return path
}

// IsDominated reports whether every path from the roots to node passes
// through dominator. A node dominates itself.
func IsDominated(idom map[ObjID]ObjID, node, dominator ObjID) bool {
	for {
		if node == dominator {
			return true
		}
		dom, ok := idom[node]
		if !ok {
			return false
		}
		node = dom
	}
}
