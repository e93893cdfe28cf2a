// ABOUTME: Registry of script loaders
// ABOUTME: Picks the first loader that recognises the input format

package script

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrNoLoader is returned when no loader can handle the script format
var ErrNoLoader = errors.New("no loader found for script format")

// Loader reads programs in one format
type Loader interface {
	// Name identifies the format, e.g. "json"
	Name() string

	// CanParse inspects a prefix of the input and reports whether this
	// loader understands it. It must not consume more than it needs.
	CanParse(r io.Reader) bool

	// Parse reads a whole program from a fresh reader
	Parse(r io.Reader) (*Program, error)
}

type loaderRegistry struct {
	mu      sync.RWMutex
	loaders []Loader
}

var registry = &loaderRegistry{}

// Register adds a loader. Loaders are tried in registration order.
func Register(l Loader) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loaders = append(registry.loaders, l)
}

// Loaders returns the registered loader names in order
func Loaders() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, len(registry.loaders))
	for i, l := range registry.loaders {
		names[i] = l.Name()
	}
	return names
}

// detectSize is how much input CanParse gets to see
const detectSize = 4096

// Load detects the script format and parses the program
func Load(r io.Reader) (*Program, error) {
	head := make([]byte, detectSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	head = head[:n]

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, l := range registry.loaders {
		if l.CanParse(bytes.NewReader(head)) {
			return l.Parse(io.MultiReader(bytes.NewReader(head), r))
		}
	}
	return nil, ErrNoLoader
}
