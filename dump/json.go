// ABOUTME: JSON dump of a heap state and its reader
// ABOUTME: Objects with sizes and pointers, a root list, plus the scope stack

package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prateek/rootlens/graph"
	"github.com/prateek/rootlens/heap"
)

// ErrMissingID is returned for dumped objects without an ID
var ErrMissingID = errors.New("object missing ID")

// Document is the JSON form of one heap state
type Document struct {
	Label   string        `json:"label,omitempty"`
	Objects []Object      `json:"objects"`
	Roots   []graph.ObjID `json:"roots"`
	Scopes  []Scope       `json:"scopes,omitempty"`
}

// Object is one dumped heap object
type Object struct {
	ID    graph.ObjID   `json:"id"`
	Type  string        `json:"type"`
	Size  uint64        `json:"size"`
	Value string        `json:"value,omitempty"`
	Ptrs  []graph.ObjID `json:"ptrs"`
}

// Scope is one dumped scope; 0 marks an unset slot
type Scope struct {
	Name  string        `json:"name"`
	Slots []graph.ObjID `json:"slots"`
}

// Snapshot captures h as a Document
func Snapshot(h *heap.Heap) *Document {
	g := h.Graph()
	doc := &Document{
		Objects: make([]Object, 0, g.NumObjects()),
		Roots:   g.GetRoots().IDs,
	}
	g.ForEachObject(func(obj *graph.Object) {
		doc.Objects = append(doc.Objects, Object{
			ID:    obj.ID,
			Type:  obj.Type,
			Size:  obj.Size,
			Value: obj.Value,
			Ptrs:  obj.Ptrs,
		})
	})
	for _, s := range h.Scopes() {
		slots := make([]graph.ObjID, s.Len())
		for i, a := range s.Slots() {
			slots[i] = graph.ObjID(a)
		}
		doc.Scopes = append(doc.Scopes, Scope{Name: s.Name(), Slots: slots})
	}
	return doc
}

// WriteJSON writes the current state of h as indented JSON
func WriteJSON(w io.Writer, h *heap.Heap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Snapshot(h)); err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}
	return nil
}

// ReadJSON reads a dump back as an analysis graph. When the dump carries
// scopes, root origins are rebuilt from them.
func ReadJSON(r io.Reader) (graph.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding dump: %w", err)
	}

	g := graph.NewMemGraph()
	for i, obj := range doc.Objects {
		if obj.ID == 0 {
			return nil, fmt.Errorf("object at index %d: %w", i, ErrMissingID)
		}
		ptrs := obj.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		g.AddObject(&graph.Object{
			ID:    obj.ID,
			Type:  obj.Type,
			Size:  obj.Size,
			Value: obj.Value,
			Ptrs:  ptrs,
		})
	}

	roots := graph.Roots{IDs: doc.Roots}
	if roots.IDs == nil {
		roots.IDs = []graph.ObjID{}
	}
	for depth, s := range doc.Scopes {
		for slot, id := range s.Slots {
			if id != 0 {
				roots.Refs = append(roots.Refs, graph.RootRef{Scope: s.Name, Depth: depth, Slot: slot, ID: id})
			}
		}
	}
	g.SetRoots(roots)

	return g, nil
}
