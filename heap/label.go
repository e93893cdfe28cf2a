// ABOUTME: Frame labels: operation descriptions and caller source lines
// ABOUTME: The label is cosmetic metadata carried in each frame header

package heap

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// OpKind names a mutating operation
type OpKind int

// Mutating operations, in the order they appear on Heap
const (
	OpInit OpKind = iota
	OpPushScope
	OpPopScope
	OpAlloc
	OpAddRoot
	OpReserve
	OpClaim
	OpSetElem
	OpAppendElem
)

var opNames = [...]string{
	OpInit:       "init",
	OpPushScope:  "pushScope",
	OpPopScope:   "popScope",
	OpAlloc:      "alloc",
	OpAddRoot:    "addRoot",
	OpReserve:    "reserve",
	OpClaim:      "claim",
	OpSetElem:    "setElem",
	OpAppendElem: "appendElem",
}

// String returns the operation name
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op describes the mutation a frame was emitted for
type Op struct {
	Kind OpKind
	Args []string
}

// String renders the op as a call, e.g. `alloc(1)`
func (o Op) String() string {
	if o.Kind == OpInit {
		return MainScope
	}
	return o.Kind.String() + "(" + strings.Join(o.Args, ", ") + ")"
}

// Labeler produces the frame label for an op
type Labeler func(Op) string

// OpLabel is the default labeler
func OpLabel(op Op) string { return op.String() }

// pkgDir is the source directory of this package. Frames from its non-test
// files belong to the heap itself, whatever name inlining gave them.
var pkgDir = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}()

// CallerLabel returns a labeler that reads the source line of the code that
// invoked the Heap operation. Unreadable sources yield "not found".
func CallerLabel() Labeler {
	cache := &sourceCache{files: make(map[string][]string)}
	return func(op Op) string {
		file, line, ok := caller()
		if !ok {
			return "not found"
		}
		text, ok := cache.line(file, line)
		if !ok {
			return "not found"
		}
		return text
	}
}

// caller finds the first stack frame outside this package
func caller() (string, int, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if fr.File != "" && !internalFrame(fr.File) {
			return fr.File, fr.Line, true
		}
		if !more {
			return "", 0, false
		}
	}
}

func internalFrame(file string) bool {
	return filepath.Dir(file) == pkgDir && !strings.HasSuffix(file, "_test.go")
}

type sourceCache struct {
	mu    sync.Mutex
	files map[string][]string
}

func (c *sourceCache) line(file string, n int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines, ok := c.files[file]
	if !ok {
		f, err := os.Open(file)
		if err != nil {
			return "", false
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if sc.Err() != nil {
			return "", false
		}
		c.files[file] = lines
	}
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimSpace(lines[n-1]), true
}
