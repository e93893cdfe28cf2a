// ABOUTME: Immediate dominators over the snapshot, rooted at the super-root
// ABOUTME: Uses the iterative Cooper-Harvey-Kennedy scheme on reverse postorder

package graph

// Dominators computes the immediate dominator of every object reachable from
// the roots. Roots, and objects reachable from several roots without a common
// dominator, map to the super-root. Unreachable and dangling IDs are absent.
func Dominators(g Graph) map[ObjID]ObjID {
	succ := successors(g)
	order := reversePostorder(succ)

	rpo := make(map[ObjID]int, len(order))
	for i, id := range order {
		rpo[id] = i
	}

	preds := make(map[ObjID][]ObjID, len(order))
	for _, id := range order {
		for _, s := range succ[id] {
			if s != id {
				preds[s] = append(preds[s], id)
			}
		}
	}

	idom := map[ObjID]ObjID{SuperRoot: SuperRoot}
	intersect := func(a, b ObjID) ObjID {
		for a != b {
			for rpo[a] > rpo[b] {
				a = idom[a]
			}
			for rpo[b] > rpo[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for _, id := range order[1:] {
			next, found := SuperRoot, false
			for _, p := range preds[id] {
				if _, done := idom[p]; !done {
					continue
				}
				if !found {
					next, found = p, true
				} else {
					next = intersect(p, next)
				}
			}
			if cur, ok := idom[id]; !ok || cur != next {
				idom[id] = next
				changed = true
			}
		}
	}

	delete(idom, SuperRoot)
	return idom
}

// successors builds the forward adjacency including the super-root. Edges
// into IDs with no object are dropped.
func successors(g Graph) map[ObjID][]ObjID {
	succ := make(map[ObjID][]ObjID)
	for _, id := range g.GetRoots().IDs {
		if g.GetObject(id) != nil {
			succ[SuperRoot] = append(succ[SuperRoot], id)
		}
	}
	g.ForEachObject(func(obj *Object) {
		for _, ptr := range obj.Ptrs {
			if g.GetObject(ptr) != nil {
				succ[obj.ID] = append(succ[obj.ID], ptr)
			}
		}
	})
	return succ
}

// reversePostorder numbers the nodes reachable from the super-root. The
// walk is iterative so long chains do not grow the goroutine stack.
func reversePostorder(succ map[ObjID][]ObjID) []ObjID {
	type frame struct {
		id   ObjID
		next int
	}
	visited := map[ObjID]bool{SuperRoot: true}
	stack := []frame{{id: SuperRoot}}
	var post []ObjID

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(succ[top.id]) {
			child := succ[top.id][top.next]
			top.next++
			if !visited[child] {
				visited[child] = true
				stack = append(stack, frame{id: child})
			}
			continue
		}
		post = append(post, top.id)
		stack = stack[:len(stack)-1]
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
