// ABOUTME: Tests for the snapshot graph store
// ABOUTME: Validates object storage, ordering and root bookkeeping

package graph

import (
	"reflect"
	"testing"
)

// snapshot builds a graph from id -> ptrs with every object sized 1
func snapshot(ptrs map[ObjID][]ObjID, roots ...ObjID) *MemGraph {
	g := NewMemGraph()
	for id, p := range ptrs {
		typ := "sequence"
		if len(p) == 0 {
			typ = "boxed"
		}
		g.AddObject(&Object{ID: id, Type: typ, Size: 1, Ptrs: p})
	}
	g.SetRoots(Roots{IDs: roots})
	return g
}

func TestAddAndGetObject(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Type: "boxed", Size: 1, Value: "42"})
	g.AddObject(&Object{ID: 2, Type: "sequence", Size: 2, Ptrs: []ObjID{1, 1}})

	if g.NumObjects() != 2 {
		t.Errorf("Expected 2 objects, got %d", g.NumObjects())
	}

	obj := g.GetObject(1)
	if obj == nil {
		t.Fatal("Expected to retrieve object 1")
	}
	if obj.Value != "42" {
		t.Errorf("Expected value 42, got %q", obj.Value)
	}
	if g.GetObject(99) != nil {
		t.Error("Expected nil for missing object")
	}
}

func TestForEachObjectIsOrdered(t *testing.T) {
	g := NewMemGraph()
	for _, id := range []ObjID{5, 3, 9, 1, 7} {
		g.AddObject(&Object{ID: id, Type: "boxed", Size: 1})
	}

	var got []ObjID
	g.ForEachObject(func(obj *Object) {
		got = append(got, obj.ID)
	})

	want := []ObjID{1, 3, 5, 7, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected visit order %v, got %v", want, got)
	}
}

func TestReplaceObject(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{ID: 1, Type: "boxed"})
	g.AddObject(&Object{ID: 1, Type: "sequence"})

	if g.NumObjects() != 1 {
		t.Errorf("Expected 1 object after duplicate ID, got %d", g.NumObjects())
	}
	if g.GetObject(1).Type != "sequence" {
		t.Errorf("Expected replacement to win, got %s", g.GetObject(1).Type)
	}
}

func TestRootsRoundTrip(t *testing.T) {
	g := NewMemGraph()
	roots := Roots{
		IDs: []ObjID{1, 2},
		Refs: []RootRef{
			{Scope: "__main__", Depth: 0, Slot: 0, ID: 1},
			{Scope: "f", Depth: 1, Slot: 0, ID: 2},
			{Scope: "f", Depth: 1, Slot: 1, ID: 1},
		},
	}
	g.SetRoots(roots)

	if !reflect.DeepEqual(g.GetRoots(), roots) {
		t.Errorf("Expected roots %v, got %v", roots, g.GetRoots())
	}

	refs := RootsOf(g, 1)
	if len(refs) != 2 {
		t.Fatalf("Expected 2 slots rooting object 1, got %d", len(refs))
	}
	if refs[1].Scope != "f" || refs[1].Slot != 1 {
		t.Errorf("Expected second ref f:1, got %s:%d", refs[1].Scope, refs[1].Slot)
	}
}

func TestReverseEdges(t *testing.T) {
	g := snapshot(map[ObjID][]ObjID{
		1: {2, 2, 3},
		2: {2},
		3: nil,
	}, 1)

	reverse := BuildReverseEdges(g)
	if !reflect.DeepEqual(reverse[2], []ObjID{1, 2}) {
		t.Errorf("Expected referrers of 2 to be [1 2], got %v", reverse[2])
	}
	if !reflect.DeepEqual(reverse[3], []ObjID{1}) {
		t.Errorf("Expected referrers of 3 to be [1], got %v", reverse[3])
	}
}
