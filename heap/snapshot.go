// ABOUTME: Converts the live heap state into an analysis graph
// ABOUTME: Roots are the non-nil scope slots, bottom scope first

package heap

import "github.com/prateek/rootlens/graph"

// Graph snapshots the current state for reachability and retention analysis.
// Boxed objects have size 1, sequences one per element with a minimum of 1.
func (h *Heap) Graph() graph.Graph {
	g := graph.NewMemGraph()

	for addr, obj := range h.objects {
		node := &graph.Object{
			ID:   graph.ObjID(addr),
			Type: obj.Kind(),
			Size: 1,
			Ptrs: []graph.ObjID{},
		}
		switch o := obj.(type) {
		case *Boxed:
			node.Value = Repr(o.Value)
		case *Sequence:
			if len(o.Items) > 1 {
				node.Size = uint64(len(o.Items))
			}
		}
		for _, e := range obj.Edges() {
			node.Ptrs = append(node.Ptrs, graph.ObjID(e.Target))
		}
		g.AddObject(node)
	}

	roots := graph.Roots{IDs: []graph.ObjID{}}
	seen := make(map[Addr]bool)
	for depth, s := range h.scopes {
		for slot, addr := range s.slots {
			if addr.IsNil() {
				continue
			}
			roots.Refs = append(roots.Refs, graph.RootRef{
				Scope: s.name,
				Depth: depth,
				Slot:  slot,
				ID:    graph.ObjID(addr),
			})
			if !seen[addr] {
				seen[addr] = true
				roots.IDs = append(roots.IDs, graph.ObjID(addr))
			}
		}
	}
	g.SetRoots(roots)

	return g
}
