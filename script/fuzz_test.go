// ABOUTME: Fuzz tests for script loading and execution
// ABOUTME: Arbitrary input must never panic the loader or the interpreter

package script

import (
	"bytes"
	"testing"

	"github.com/prateek/rootlens/frame"
	"github.com/prateek/rootlens/heap"
)

func FuzzLoadAndRun(f *testing.F) {
	f.Add([]byte(yamlScript))
	f.Add([]byte(jsonScript))
	f.Add([]byte("steps:\n  - op: reserve\n    as: r\n  - op: claim\n    ref: nil\n    reservation: r\n"))
	f.Add([]byte(`{"steps": [{"op": "seq", "items": ["nil"], "as": "s"}, {"op": "set", "seq": "s", "index": 5, "ref": "s"}]}`))
	f.Add([]byte("{"))

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("panicked: %v", r)
			}
		}()

		p, err := Load(bytes.NewReader(data))
		if err != nil {
			return
		}
		d := &frame.Discard{}
		h, err := heap.New(d)
		if err != nil {
			t.Fatal(err)
		}
		_ = Run(p, h)
		if d.Count() != h.Frames() {
			t.Errorf("sink saw %d frames, heap emitted %d", d.Count(), h.Frames())
		}
	})
}
