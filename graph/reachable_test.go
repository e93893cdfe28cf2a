// ABOUTME: Tests for the mark phase over snapshots
// ABOUTME: Covers cycles, dangling references and popped roots

package graph

import (
	"reflect"
	"testing"
)

func TestReachable(t *testing.T) {
	tests := []struct {
		name        string
		graph       Graph
		reachable   []ObjID
		unreachable []ObjID
	}{
		{
			name:        "no roots",
			graph:       snapshot(map[ObjID][]ObjID{1: nil, 2: nil}),
			unreachable: []ObjID{1, 2},
		},
		{
			name:        "chain",
			graph:       snapshot(map[ObjID][]ObjID{1: {2}, 2: {3}, 3: nil, 4: nil}, 1),
			reachable:   []ObjID{1, 2, 3},
			unreachable: []ObjID{4},
		},
		{
			name:      "self loop",
			graph:     snapshot(map[ObjID][]ObjID{1: {1}}, 1),
			reachable: []ObjID{1},
		},
		{
			name:        "cycle not rooted",
			graph:       snapshot(map[ObjID][]ObjID{1: nil, 2: {3}, 3: {2}}, 1),
			reachable:   []ObjID{1},
			unreachable: []ObjID{2, 3},
		},
		{
			name:      "dangling root and pointer",
			graph:     snapshot(map[ObjID][]ObjID{1: {7}}, 1, 8),
			reachable: []ObjID{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			marked := Reachable(tt.graph)
			if len(marked) != len(tt.reachable) {
				t.Errorf("Expected %d reachable objects, got %d (%v)", len(tt.reachable), len(marked), marked)
			}
			for _, id := range tt.reachable {
				if !marked[id] {
					t.Errorf("Expected %d to be reachable", id)
				}
			}

			garbage := Unreachable(tt.graph)
			if !reflect.DeepEqual(garbage, tt.unreachable) {
				t.Errorf("Expected unreachable %v, got %v", tt.unreachable, garbage)
			}
		})
	}
}
