// ABOUTME: Interpreter executing script programs against a heap
// ABOUTME: Resolves variables, supplies one label per frame, wraps errors with the step

package script

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/prateek/rootlens/heap"
)

var (
	// ErrUnknownOp is returned for steps with an unrecognised op
	ErrUnknownOp = errors.New("unknown op")

	// ErrMissingOperand is returned when a step lacks a required field
	ErrMissingOperand = errors.New("missing operand")

	// ErrUnknownVariable is returned when a step names an unbound variable
	ErrUnknownVariable = errors.New("unknown variable")
)

// T traces to the global core tracer
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// StepError reports which step failed
type StepError struct {
	Index int // 1-based step number
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Validate checks that every step has a known op and its required operands
func Validate(p *Program) error {
	for i, s := range p.Steps {
		if err := validateStep(s); err != nil {
			return &StepError{Index: i + 1, Op: s.Op, Err: err}
		}
	}
	return nil
}

func validateStep(s Step) error {
	need := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingOperand, field)
		}
		return nil
	}
	switch s.Op {
	case OpPop, OpAlloc, OpSeq, OpReserve:
		return nil
	case OpPush:
		return need("name", s.Name)
	case OpRoot:
		return need("ref", s.Ref)
	case OpClaim:
		if err := need("ref", s.Ref); err != nil {
			return err
		}
		return need("reservation", s.Reservation)
	case OpSet, OpAppend:
		if err := need("seq", s.Seq); err != nil {
			return err
		}
		return need("ref", s.Ref)
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
}

// Runner holds the variable bindings of one program execution
type Runner struct {
	h            *heap.Heap
	addrs        map[string]heap.Addr
	reservations map[string]*heap.Reservation
}

// NewRunner prepares a runner driving h
func NewRunner(h *heap.Heap) *Runner {
	return &Runner{
		h:            h,
		addrs:        make(map[string]heap.Addr),
		reservations: make(map[string]*heap.Reservation),
	}
}

// Run executes p against h and stops at the first failing step
func Run(p *Program, h *heap.Heap) error {
	return NewRunner(h).Run(p)
}

// Run executes every step in order
func (r *Runner) Run(p *Program) error {
	if err := Validate(p); err != nil {
		return err
	}
	if t := T(); t != nil {
		t.Infof("script: running %q, %d steps", p.Name, len(p.Steps))
	}
	for i, s := range p.Steps {
		if err := r.Exec(s); err != nil {
			if t := T(); t != nil {
				t.Errorf("script: step %d failed: %v", i+1, err)
			}
			return &StepError{Index: i + 1, Op: s.Op, Err: err}
		}
	}
	if t := T(); t != nil {
		t.Infof("script: %q done, %d frames", p.Name, r.h.Frames())
	}
	return nil
}

// Addr returns the address bound to name
func (r *Runner) Addr(name string) (heap.Addr, bool) {
	if name == NilRef {
		return heap.Nil, true
	}
	a, ok := r.addrs[name]
	return a, ok
}

// Exec runs a single step
func (r *Runner) Exec(s Step) error {
	label := s.Label
	if label == "" {
		label = s.Text()
	}
	h := r.h

	switch s.Op {
	case OpPush:
		return h.Label(label).PushScope(s.Name)

	case OpPop:
		return h.Label(label).PopScope()

	case OpAlloc, OpSeq:
		var (
			a   heap.Addr
			err error
		)
		if s.Op == OpAlloc {
			a, err = h.Label(label).Alloc(s.Value)
		} else {
			items, rerr := r.resolveAll(s.Items)
			if rerr != nil {
				return rerr
			}
			a, err = h.Label(label).AllocSequence(items...)
		}
		r.bind(s.As, a)
		if err != nil {
			return err
		}
		if s.Root {
			_, err = h.Label(label).AddRoot(a)
		}
		return err

	case OpRoot:
		a, err := r.resolve(s.Ref)
		if err != nil {
			return err
		}
		r.bind(s.As, a)
		_, err = h.Label(label).AddRoot(a)
		return err

	case OpReserve:
		res, err := h.Label(label).Reserve()
		if s.As != "" {
			r.reservations[s.As] = res
		}
		return err

	case OpClaim:
		a, err := r.resolve(s.Ref)
		if err != nil {
			return err
		}
		res, ok := r.reservations[s.Reservation]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownVariable, s.Reservation)
		}
		return h.Label(label).Claim(a, res)

	case OpSet, OpAppend:
		seq, err := r.resolve(s.Seq)
		if err != nil {
			return err
		}
		a, err := r.resolve(s.Ref)
		if err != nil {
			return err
		}
		if s.Op == OpSet {
			return h.Label(label).SetElem(seq, s.Index, a)
		}
		return h.Label(label).AppendElem(seq, a)
	}
	return fmt.Errorf("%w %q", ErrUnknownOp, s.Op)
}

func (r *Runner) bind(name string, a heap.Addr) {
	if name != "" && name != NilRef {
		r.addrs[name] = a
	}
}

func (r *Runner) resolve(name string) (heap.Addr, error) {
	a, ok := r.Addr(name)
	if !ok {
		return heap.Nil, fmt.Errorf("%w %q", ErrUnknownVariable, name)
	}
	return a, nil
}

func (r *Runner) resolveAll(names []string) ([]heap.Addr, error) {
	addrs := make([]heap.Addr, len(names))
	for i, n := range names {
		a, err := r.resolve(n)
		if err != nil {
			return nil, err
		}
		addrs[i] = a
	}
	return addrs, nil
}
