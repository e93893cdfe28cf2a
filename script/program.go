// ABOUTME: Script programs: ordered steps that drive a heap
// ABOUTME: Steps name operations and bind results to variables

package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Step operations
const (
	OpPush    = "push"
	OpPop     = "pop"
	OpAlloc   = "alloc"
	OpSeq     = "seq"
	OpRoot    = "root"
	OpReserve = "reserve"
	OpClaim   = "claim"
	OpSet     = "set"
	OpAppend  = "append"
)

// NilRef is the variable name that always denotes the absent address
const NilRef = "nil"

// Program is a named list of steps
type Program struct {
	Name  string `json:"name" yaml:"name"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step is one call into the heap
type Step struct {
	Op    string `json:"op" yaml:"op"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`               // push: scope name
	Value       any      `json:"value,omitempty" yaml:"value,omitempty"`             // alloc: boxed value
	Items       []string `json:"items,omitempty" yaml:"items,omitempty"`             // seq: element variables
	Ref         string   `json:"ref,omitempty" yaml:"ref,omitempty"`                 // root, claim, set, append: address variable
	Seq         string   `json:"seq,omitempty" yaml:"seq,omitempty"`                 // set, append: sequence variable
	Index       int      `json:"index,omitempty" yaml:"index,omitempty"`             // set: element index
	Reservation string   `json:"reservation,omitempty" yaml:"reservation,omitempty"` // claim: reservation variable

	As   string `json:"as,omitempty" yaml:"as,omitempty"`     // bind the result
	Root bool   `json:"root,omitempty" yaml:"root,omitempty"` // alloc, seq: root the result too
}

// Frames returns how many frames the step emits when it succeeds
func (s Step) Frames() int {
	if s.Root && (s.Op == OpAlloc || s.Op == OpSeq) {
		return 2
	}
	return 1
}

// Text renders the step as a source-like line, used when no label is given
func (s Step) Text() string {
	var call string
	switch s.Op {
	case OpPush:
		call = fmt.Sprintf("pushScope(%s)", strconv.Quote(s.Name))
	case OpPop:
		call = "popScope()"
	case OpAlloc:
		call = fmt.Sprintf("alloc(%s)", literal(s.Value))
	case OpSeq:
		call = fmt.Sprintf("alloc(Sequence([%s]))", strings.Join(s.Items, ", "))
	case OpRoot:
		call = fmt.Sprintf("addRoot(%s)", s.Ref)
	case OpReserve:
		call = "reserve()"
	case OpClaim:
		call = fmt.Sprintf("claim(%s, %s)", s.Ref, s.Reservation)
	case OpSet:
		call = fmt.Sprintf("%s[%d] = %s", s.Seq, s.Index, s.Ref)
	case OpAppend:
		call = fmt.Sprintf("%s.append(%s)", s.Seq, s.Ref)
	default:
		call = s.Op + "()"
	}
	if s.Root && (s.Op == OpAlloc || s.Op == OpSeq) {
		call = "addRoot(" + call + ")"
	}
	if s.As != "" {
		call = s.As + " = " + call
	}
	return call
}

func literal(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	if v == nil {
		return "nil"
	}
	return fmt.Sprint(v)
}
