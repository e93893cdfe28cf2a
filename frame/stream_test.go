// ABOUTME: Tests for the stream, buffer and discard sinks
// ABOUTME: Also asserts every sink satisfies heap.Sink

package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/prateek/rootlens/heap"
)

var (
	_ heap.Sink = (*FileSequence)(nil)
	_ heap.Sink = (*Stream)(nil)
	_ heap.Sink = (*Buffer)(nil)
	_ heap.Sink = (*Discard)(nil)
)

func TestStream(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(&out)

	s.WriteLine("a")
	s.Advance()
	s.WriteLine("b")
	s.WriteLine("c")
	s.Advance()

	want := "a\n// ----\nb\nc\n// ----\n"
	if out.String() != want {
		t.Errorf("Expected %q, got %q", want, out.String())
	}
	if s.Count() != 2 {
		t.Errorf("Expected 2 frames, got %d", s.Count())
	}
}

func TestStreamNoSeparator(t *testing.T) {
	var out bytes.Buffer
	s := NewStreamSeparator(&out, "")
	s.WriteLine("a")
	s.Advance()
	if out.String() != "a\n" {
		t.Errorf("Expected %q, got %q", "a\n", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamPropagatesErrors(t *testing.T) {
	s := NewStream(failingWriter{})
	s.WriteLine("a")
	if err := s.Advance(); err == nil || err.Error() != "disk full" {
		t.Errorf("Expected writer error, got %v", err)
	}
}

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	if b.Last() != nil {
		t.Error("Expected no last frame on empty buffer")
	}

	b.WriteLine("x")
	b.Advance()
	b.Advance()

	if b.Len() != 2 {
		t.Fatalf("Expected 2 frames, got %d", b.Len())
	}
	if b.Text(0) != "x" {
		t.Errorf("Expected frame 0 to be x, got %q", b.Text(0))
	}
	if b.Last() == nil || len(b.Last()) != 0 {
		t.Errorf("Expected empty last frame, got %v", b.Last())
	}
}

func TestDiscard(t *testing.T) {
	var d Discard
	d.WriteLine("x")
	d.Advance()
	d.Advance()
	if d.Count() != 2 {
		t.Errorf("Expected 2 frames, got %d", d.Count())
	}
}
