// ABOUTME: Stream and in-memory frame sinks
// ABOUTME: Stream writes frames to an io.Writer, Buffer keeps them for inspection

package frame

import (
	"bufio"
	"io"
	"strings"
)

// DefaultSeparator is written between frames by a Stream
const DefaultSeparator = "// ----"

// Stream writes frames one after another to an io.Writer, with a separator
// line after each frame
type Stream struct {
	w         *bufio.Writer
	separator string
	count     int
}

// NewStream returns a Stream using DefaultSeparator
func NewStream(w io.Writer) *Stream {
	return NewStreamSeparator(w, DefaultSeparator)
}

// NewStreamSeparator returns a Stream with a custom separator. An empty
// separator writes frames back to back.
func NewStreamSeparator(w io.Writer, separator string) *Stream {
	return &Stream{w: bufio.NewWriter(w), separator: separator}
}

// WriteLine writes one line of the current frame
func (s *Stream) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	return s.w.WriteByte('\n')
}

// Advance ends the frame and flushes it to the underlying writer
func (s *Stream) Advance() error {
	if s.separator != "" {
		if err := s.WriteLine(s.separator); err != nil {
			return err
		}
	}
	s.count++
	return s.w.Flush()
}

// Count returns the number of completed frames
func (s *Stream) Count() int { return s.count }

// Buffer keeps every frame in memory
type Buffer struct {
	frames  [][]string
	current []string
}

// NewBuffer returns an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// WriteLine appends a line to the current frame
func (b *Buffer) WriteLine(line string) error {
	b.current = append(b.current, line)
	return nil
}

// Advance seals the current frame
func (b *Buffer) Advance() error {
	if b.current == nil {
		b.current = []string{}
	}
	b.frames = append(b.frames, b.current)
	b.current = nil
	return nil
}

// Len returns the number of sealed frames
func (b *Buffer) Len() int { return len(b.frames) }

// Frame returns the lines of sealed frame i
func (b *Buffer) Frame(i int) []string {
	return b.frames[i]
}

// Text returns sealed frame i joined with newlines
func (b *Buffer) Text(i int) string {
	return strings.Join(b.frames[i], "\n")
}

// Last returns the most recently sealed frame, or nil
func (b *Buffer) Last() []string {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

// Discard counts frames and drops their contents
type Discard struct {
	count int
}

// WriteLine drops the line
func (d *Discard) WriteLine(string) error { return nil }

// Advance counts the frame
func (d *Discard) Advance() error {
	d.count++
	return nil
}

// Count returns the number of frames seen
func (d *Discard) Count() int { return d.count }
