// ABOUTME: Heap object variants (Boxed values and Sequences of addresses)
// ABOUTME: Each variant describes its own record fields and outgoing edges

package heap

import (
	"fmt"
	"strconv"
)

// Object is a renderable heap payload. The set of variants is closed: only
// *Boxed and *Sequence implement it.
type Object interface {
	// Kind is the record title, e.g. "boxed" or "sequence"
	Kind() string

	// Fields lists the record fields in render order
	Fields() []Field

	// Edges lists the outgoing references, one per non-nil element
	Edges() []Edge

	object()
}

// Field is one port of a record node
type Field struct {
	Port string // port name used by edges, e.g. "value" or "0"
	Text string // text shown in the field
}

// Edge is a reference from a numbered field to another heap address
type Edge struct {
	Index  int
	Target Addr
}

// Boxed wraps exactly one opaque value and has no outgoing edges
type Boxed struct {
	Value any
}

// NewBoxed wraps v
func NewBoxed(v any) *Boxed {
	return &Boxed{Value: v}
}

// Kind returns "boxed"
func (b *Boxed) Kind() string { return "boxed" }

// Fields returns the single value field
func (b *Boxed) Fields() []Field {
	return []Field{{Port: "value", Text: Repr(b.Value)}}
}

// Edges returns nil; boxed values never reference the heap
func (b *Boxed) Edges() []Edge { return nil }

func (b *Boxed) object() {}

// Sequence holds an ordered list of addresses. Elements may be Nil and may
// refer back to the sequence itself.
type Sequence struct {
	Items []Addr
}

// NewSequence builds a sequence holding a copy of items
func NewSequence(items ...Addr) *Sequence {
	return &Sequence{Items: append([]Addr(nil), items...)}
}

// Kind returns "sequence"
func (s *Sequence) Kind() string { return "sequence" }

// Len returns the number of elements
func (s *Sequence) Len() int { return len(s.Items) }

// Fields returns one field per element index
func (s *Sequence) Fields() []Field {
	fields := make([]Field, len(s.Items))
	for i := range s.Items {
		idx := strconv.Itoa(i)
		fields[i] = Field{Port: idx, Text: idx}
	}
	return fields
}

// Edges returns an edge for every non-nil element
func (s *Sequence) Edges() []Edge {
	var edges []Edge
	for i, addr := range s.Items {
		if !addr.IsNil() {
			edges = append(edges, Edge{Index: i, Target: addr})
		}
	}
	return edges
}

func (s *Sequence) object() {}

// Repr formats a boxed value the way a program literal would read:
// strings are quoted, everything else uses its Go syntax form.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(v)
	case fmt.Stringer, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprint(v)
	default:
		return fmt.Sprintf("%#v", v)
	}
}
