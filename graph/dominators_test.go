// ABOUTME: Tests for immediate dominators and dominator tree queries
// ABOUTME: Covers chains, diamonds, cycles, multiple roots and dangling edges

package graph

import (
	"fmt"
	"reflect"
	"testing"
)

func TestDominators(t *testing.T) {
	tests := []struct {
		name     string
		graph    Graph
		expected map[ObjID]ObjID
	}{
		{
			name:     "linear chain",
			graph:    snapshot(map[ObjID][]ObjID{1: nil, 2: {3}, 3: {4}, 4: nil}, 2),
			expected: map[ObjID]ObjID{2: 0, 3: 2, 4: 3},
		},
		{
			name:     "diamond",
			graph:    snapshot(map[ObjID][]ObjID{1: {2, 3}, 2: {4}, 3: {4}, 4: nil}, 1),
			expected: map[ObjID]ObjID{1: 0, 2: 1, 3: 1, 4: 1},
		},
		{
			name: "multiple paths",
			graph: snapshot(map[ObjID][]ObjID{
				1: {2, 3}, 2: {4}, 3: {4, 5}, 4: {6}, 5: {6}, 6: nil,
			}, 1),
			expected: map[ObjID]ObjID{1: 0, 2: 1, 3: 1, 4: 1, 5: 3, 6: 1},
		},
		{
			name:     "back edge",
			graph:    snapshot(map[ObjID][]ObjID{1: {2}, 2: {3}, 3: {4}, 4: {2, 5}, 5: nil}, 1),
			expected: map[ObjID]ObjID{1: 0, 2: 1, 3: 2, 4: 3, 5: 4},
		},
		{
			name:     "shared by two roots",
			graph:    snapshot(map[ObjID][]ObjID{1: {3}, 2: {3}, 3: nil}, 1, 2),
			expected: map[ObjID]ObjID{1: 0, 2: 0, 3: 0},
		},
		{
			name:     "self loop",
			graph:    snapshot(map[ObjID][]ObjID{1: {1, 2}, 2: nil}, 1),
			expected: map[ObjID]ObjID{1: 0, 2: 1},
		},
		{
			name:     "dangling and unreachable ignored",
			graph:    snapshot(map[ObjID][]ObjID{1: {2, 9}, 2: nil, 3: nil}, 1, 8),
			expected: map[ObjID]ObjID{1: 0, 2: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dom := Dominators(tt.graph)
			if !reflect.DeepEqual(dom, tt.expected) {
				t.Errorf("Dominators() = %v, want %v", dom, tt.expected)
			}
		})
	}
}

func TestDominatorTree(t *testing.T) {
	g := snapshot(map[ObjID][]ObjID{1: {2, 3}, 2: {4}, 3: {4, 5}, 4: nil, 5: nil}, 1)

	tree := DominatorTree(Dominators(g))
	want := map[ObjID][]ObjID{
		0: {1},
		1: {2, 3, 4},
		2: {},
		3: {5},
		4: {},
		5: {},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("DominatorTree() = %v, want %v", tree, want)
	}

	depth := DominatorDepth(tree)
	if depth[5] != 3 || depth[4] != 2 || depth[1] != 1 {
		t.Errorf("Unexpected depths %v", depth)
	}
}

func TestDominatorQueries(t *testing.T) {
	g := snapshot(map[ObjID][]ObjID{1: {2}, 2: {3}, 3: nil}, 1)
	idom := Dominators(g)

	if path := DominatorPath(idom, 3); !reflect.DeepEqual(path, []ObjID{3, 2, 1, 0}) {
		t.Errorf("Expected dominator path [3 2 1 0], got %v", path)
	}

	tests := []struct {
		node, dom ObjID
		want      bool
	}{
		{3, 3, true},
		{3, 2, true},
		{3, 1, true},
		{3, 0, true},
		{1, 3, false},
		{7, 1, false},
	}
	for _, tt := range tests {
		if got := IsDominated(idom, tt.node, tt.dom); got != tt.want {
			t.Errorf("IsDominated(%d, %d) = %v, want %v", tt.node, tt.dom, got, tt.want)
		}
	}
}

func BenchmarkDominators(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			g := NewMemGraph()
			for i := 1; i <= n; i++ {
				obj := &Object{ID: ObjID(i), Type: "sequence", Size: 1}
				if i > 1 {
					obj.Ptrs = append(obj.Ptrs, ObjID((i-1)/2+1))
				}
				if i*2 <= n {
					obj.Ptrs = append(obj.Ptrs, ObjID(i*2))
				}
				if i*2+1 <= n {
					obj.Ptrs = append(obj.Ptrs, ObjID(i*2+1))
				}
				g.AddObject(obj)
			}
			g.SetRoots(Roots{IDs: []ObjID{1}})

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Dominators(g)
			}
		})
	}
}
