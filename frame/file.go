// ABOUTME: Numbered-file frame sink, one file per frame
// ABOUTME: Writes <dir>/<prefix><n><ext> and opens each file lazily

package frame

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrClosed is returned when writing to a closed sink
var ErrClosed = errors.New("frame sink closed")

// FileSequence writes each frame to its own numbered file
type FileSequence struct {
	dir    string
	prefix string
	ext    string

	cur    int
	file   *os.File
	w      *bufio.Writer
	closed bool
}

// NewFileSequence creates dir if needed and returns a sink whose first
// frame is written to <dir>/<prefix>0<ext>
func NewFileSequence(dir, prefix, ext string) (*FileSequence, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame directory: %w", err)
	}
	return &FileSequence{dir: dir, prefix: prefix, ext: ext}, nil
}

// Path returns the file path of frame n
func (s *FileSequence) Path(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", s.prefix, n, s.ext))
}

// Count returns the number of completed frames
func (s *FileSequence) Count() int { return s.cur }

// WriteLine appends one line to the current frame file
func (s *FileSequence) WriteLine(line string) error {
	if s.closed {
		return ErrClosed
	}
	if s.file == nil {
		f, err := os.Create(s.Path(s.cur))
		if err != nil {
			return fmt.Errorf("creating frame file: %w", err)
		}
		s.file = f
		s.w = bufio.NewWriter(f)
	}
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Advance finishes the current frame file and moves to the next number.
// A frame with no lines still gets an empty file.
func (s *FileSequence) Advance() error {
	if s.closed {
		return ErrClosed
	}
	if s.file == nil {
		f, err := os.Create(s.Path(s.cur))
		if err != nil {
			return fmt.Errorf("creating frame file: %w", err)
		}
		s.file = f
		s.w = bufio.NewWriter(f)
	}
	debugf("frame: wrote %s", s.Path(s.cur))
	if err := s.finish(); err != nil {
		return err
	}
	s.cur++
	return nil
}

// Close releases a partially written frame, if any. Lines written since the
// last Advance are flushed but the frame is not counted.
func (s *FileSequence) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	return s.finish()
}

func (s *FileSequence) finish() error {
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	s.file, s.w = nil, nil
	if flushErr != nil {
		return fmt.Errorf("flushing frame file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing frame file: %w", closeErr)
	}
	return nil
}
