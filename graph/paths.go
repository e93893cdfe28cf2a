// ABOUTME: BFS search for the reference chains keeping an object alive
// ABOUTME: Finds up to K shortest paths from an object back to a root

package graph

// Path is a reference chain from an object to a root, target first
type Path struct {
	IDs []ObjID
}

// Root returns the rooted end of the path
func (p Path) Root() ObjID {
	return p.IDs[len(p.IDs)-1]
}

// PathsToRoots walks referrers breadth first from `from` and returns at most
// maxPaths paths ending at a root. Shorter paths come first. An object that
// is itself a root yields the single path [from].
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 || g.GetObject(from) == nil {
		return nil
	}

	rootSet := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}
	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	reverse := BuildReverseEdges(g)
	queue := [][]ObjID{{from}}
	var result []Path

	for len(queue) > 0 && len(result) < maxPaths {
		path := queue[0]
		queue = queue[1:]
		last := path[len(path)-1]

		for _, referrer := range reverse[last] {
			if contains(path, referrer) {
				continue // cycle
			}
			next := make([]ObjID, len(path)+1)
			copy(next, path)
			next[len(path)] = referrer

			if rootSet[referrer] {
				result = append(result, Path{IDs: next})
				if len(result) >= maxPaths {
					break
				}
				continue
			}
			queue = append(queue, next)
		}
	}

	return result
}

// RootsOf returns the scope slots that hold id directly
func RootsOf(g Graph, id ObjID) []RootRef {
	var refs []RootRef
	for _, ref := range g.GetRoots().Refs {
		if ref.ID == id {
			refs = append(refs, ref)
		}
	}
	return refs
}

func contains(ids []ObjID, id ObjID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
