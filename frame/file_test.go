// ABOUTME: Tests for the numbered-file frame sink
// ABOUTME: Checks numbering, lazy file creation and closing behaviour

package frame

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSequenceNumbering(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewFileSequence(dir, "f", ".dot")
	if err != nil {
		t.Fatalf("NewFileSequence failed: %v", err)
	}

	frames := [][]string{
		{"digraph {", "}"},
		{"digraph {", "a -> b;", "}"},
		{"one"},
	}
	for _, lines := range frames {
		for _, line := range lines {
			if err := s.WriteLine(line); err != nil {
				t.Fatalf("WriteLine failed: %v", err)
			}
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if s.Count() != 3 {
		t.Errorf("Expected 3 frames, got %d", s.Count())
	}

	data, err := os.ReadFile(filepath.Join(dir, "f1.dot"))
	if err != nil {
		t.Fatalf("Reading frame 1: %v", err)
	}
	if string(data) != "digraph {\na -> b;\n}\n" {
		t.Errorf("Unexpected frame 1 contents %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected exactly 3 files and no trailing empty frame, got %d", len(entries))
	}
}

func TestFileSequenceEmptyFrame(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileSequence(dir, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}

	info, err := os.Stat(s.Path(0))
	if err != nil {
		t.Fatalf("Expected empty frame file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected empty file, got %d bytes", info.Size())
	}
}

func TestFileSequenceClosed(t *testing.T) {
	s, err := NewFileSequence(t.TempDir(), "", ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteLine("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := s.Advance(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Second Close should be a no-op, got %v", err)
	}
}
