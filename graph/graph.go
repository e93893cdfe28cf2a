// ABOUTME: Graph interface and in-memory implementation
// ABOUTME: Stores heap snapshot objects and roots for the analyses

package graph

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Graph is a read-mostly view of one heap snapshot
type Graph interface {
	// AddObject adds an object, replacing any object with the same ID
	AddObject(obj *Object)

	// GetObject returns the object with the given ID, or nil
	GetObject(id ObjID) *Object

	// NumObjects returns the total number of objects
	NumObjects() int

	// ForEachObject visits objects in ascending ID order
	ForEachObject(fn func(*Object))

	// SetRoots sets the root set
	SetRoots(roots Roots)

	// GetRoots returns the root set
	GetRoots() Roots
}

// MemGraph is an in-memory Graph
type MemGraph struct {
	mu      sync.RWMutex
	objects map[ObjID]*Object
	roots   Roots
}

// NewMemGraph creates an empty graph
func NewMemGraph() *MemGraph {
	return &MemGraph{
		objects: make(map[ObjID]*Object),
	}
}

// AddObject adds an object to the graph
func (g *MemGraph) AddObject(obj *Object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[obj.ID] = obj
}

// GetObject retrieves an object by ID
func (g *MemGraph) GetObject(id ObjID) *Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.objects[id]
}

// NumObjects returns the total number of objects
func (g *MemGraph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// ForEachObject iterates over all objects in ID order so that analyses
// are deterministic
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	g.mu.RLock()
	ids := maps.Keys(g.objects)
	objs := make([]*Object, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		objs = append(objs, g.objects[id])
	}
	g.mu.RUnlock()

	for _, obj := range objs {
		fn(obj)
	}
}

// SetRoots sets the root set
func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = roots
}

// GetRoots returns the root set
func (g *MemGraph) GetRoots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.roots
}
