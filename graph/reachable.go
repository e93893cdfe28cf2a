// ABOUTME: Mark phase over the snapshot: which objects the roots can reach
// ABOUTME: Dangling references are skipped, cycles are visited once

package graph

// Reachable returns the set of existing objects reachable from the roots
func Reachable(g Graph) map[ObjID]bool {
	marked := make(map[ObjID]bool)
	stack := append([]ObjID(nil), g.GetRoots().IDs...)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if marked[id] {
			continue
		}
		obj := g.GetObject(id)
		if obj == nil {
			continue // dangling root or pointer
		}
		marked[id] = true
		for _, ptr := range obj.Ptrs {
			if !marked[ptr] {
				stack = append(stack, ptr)
			}
		}
	}

	return marked
}

// Unreachable returns the IDs of objects no root reaches, in ascending order
func Unreachable(g Graph) []ObjID {
	marked := Reachable(g)
	var garbage []ObjID
	g.ForEachObject(func(obj *Object) {
		if !marked[obj.ID] {
			garbage = append(garbage, obj.ID)
		}
	})
	return garbage
}
