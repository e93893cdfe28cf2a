// ABOUTME: Debug dump of the heap's Go data structures
// ABOUTME: Uses memviz to draw the in-memory representation as a dot graph

package dump

import (
	"io"

	"github.com/bradleyjkemp/memviz"

	"github.com/prateek/rootlens/heap"
)

// Structure mirrors the storage of a heap with exported fields only, so the
// reflection walk sees scopes, slots and objects as they are held
type Structure struct {
	Scopes  []*StructureScope
	Objects map[heap.Addr]heap.Object
}

// StructureScope is one scope of a Structure
type StructureScope struct {
	Name  string
	Slots []heap.Addr
}

// NewStructure copies the storage layout of h
func NewStructure(h *heap.Heap) *Structure {
	st := &Structure{Objects: make(map[heap.Addr]heap.Object, h.Len())}
	for _, s := range h.Scopes() {
		st.Scopes = append(st.Scopes, &StructureScope{Name: s.Name(), Slots: s.Slots()})
	}
	for _, a := range h.Addrs() {
		obj, _ := h.Lookup(a)
		st.Objects[a] = obj
	}
	return st
}

// WriteStructure writes the Go-level structure of h as a dot graph. This
// shows how the model is stored, not the frame view.
func WriteStructure(w io.Writer, h *heap.Heap) {
	memviz.Map(w, NewStructure(h))
}
