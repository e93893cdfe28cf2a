// ABOUTME: The Heap orchestrator owning the scope stack and the address map
// ABOUTME: Every successful mutation emits one complete frame to the sink

package heap

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrBottomScope is returned when popping the permanent bottom scope
	ErrBottomScope = errors.New("cannot pop the bottom scope")

	// ErrNilReservation is returned when claiming a nil reservation
	ErrNilReservation = errors.New("nil reservation")

	// ErrForeignReservation is returned when claiming a reservation issued by another heap
	ErrForeignReservation = errors.New("reservation belongs to another heap")

	// ErrClaimed is returned when claiming a reservation a second time
	ErrClaimed = errors.New("reservation already claimed")

	// ErrScopeGone is returned when claiming into a scope that has been popped
	ErrScopeGone = errors.New("reserved scope has been popped")

	// ErrUnknownAddress is returned when an operation needs an object that does not exist
	ErrUnknownAddress = errors.New("no object at address")

	// ErrNotSequence is returned when an element operation targets a non-sequence
	ErrNotSequence = errors.New("object is not a sequence")

	// ErrIndexRange is returned for sequence indices out of range
	ErrIndexRange = errors.New("sequence index out of range")
)

// Sink receives frames line by line. Advance is called exactly once per frame.
type Sink interface {
	WriteLine(line string) error
	Advance() error
}

// Option configures a Heap
type Option func(*Heap)

// WithLabeler sets the labeler used when no explicit label is pending
func WithLabeler(l Labeler) Option {
	return func(h *Heap) { h.labeler = l }
}

// WithCallerLabels labels frames with the source line that called the operation
func WithCallerLabels() Option {
	return WithLabeler(CallerLabel())
}

// WithInitialFrame makes New emit an opening frame showing the empty heap
func WithInitialFrame() Option {
	return func(h *Heap) { h.initial = true }
}

// WithReachability styles heap nodes that no root can reach
func WithReachability() Option {
	return func(h *Heap) { h.reachability = true }
}

// Heap is the toy memory model: a stack of scopes holding roots and a map
// from address to object. It is not safe for concurrent use.
type Heap struct {
	sink    Sink
	scopes  []*Scope
	objects map[Addr]Object
	addrs   allocator
	nextID  int

	labeler      Labeler
	pending      string
	hasPending   bool
	initial      bool
	reachability bool
	frames       int
}

// New creates a heap holding only the bottom scope and writing frames to sink
func New(sink Sink, opts ...Option) (*Heap, error) {
	h := &Heap{
		sink:    sink,
		objects: make(map[Addr]Object),
		labeler: OpLabel,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.scopes = []*Scope{h.newScope(MainScope)}

	if h.initial {
		if err := h.Label(MainScope).emit(Op{Kind: OpInit}); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Heap) newScope(name string) *Scope {
	h.nextID++
	return &Scope{id: h.nextID, name: name, live: true}
}

// Label sets the label of the next frame only
func (h *Heap) Label(text string) *Heap {
	h.pending = text
	h.hasPending = true
	return h
}

// PushScope opens a new empty scope on top of the stack
func (h *Heap) PushScope(name string) error {
	h.scopes = append(h.scopes, h.newScope(name))
	return h.emit(Op{Kind: OpPushScope, Args: []string{strconv.Quote(name)}})
}

// PopScope removes the top scope. Objects rooted only there stay on the
// heap but are no longer reachable.
func (h *Heap) PopScope() error {
	if len(h.scopes) == 1 {
		errorf("heap: popScope rejected: %v", ErrBottomScope)
		h.hasPending = false
		return ErrBottomScope
	}
	top := h.scopes[len(h.scopes)-1]
	top.live = false
	h.scopes[len(h.scopes)-1] = nil
	h.scopes = h.scopes[:len(h.scopes)-1]
	return h.emit(Op{Kind: OpPopScope})
}

// Alloc stores value under a fresh address. Values that are already heap
// objects (*Boxed, *Sequence) are copied in as that variant; anything else
// is boxed. The new object is not rooted.
func (h *Heap) Alloc(value any) (Addr, error) {
	var obj Object
	switch v := value.(type) {
	case *Sequence:
		if v == nil {
			obj = NewSequence()
		} else {
			obj = NewSequence(v.Items...)
		}
	case *Boxed:
		if v == nil {
			obj = NewBoxed(nil)
		} else {
			obj = NewBoxed(v.Value)
		}
	default:
		obj = NewBoxed(value)
	}

	addr := h.addrs.mint()
	h.objects[addr] = obj
	return addr, h.emit(Op{Kind: OpAlloc, Args: []string{describe(obj)}})
}

// AllocSequence allocates a sequence holding items
func (h *Heap) AllocSequence(items ...Addr) (Addr, error) {
	return h.Alloc(NewSequence(items...))
}

// AddRoot appends addr as a new slot of the top scope and returns it unchanged.
// The address is not validated; unresolved addresses render as dangling.
func (h *Heap) AddRoot(addr Addr) (Addr, error) {
	h.Top().append(addr)
	return addr, h.emit(Op{Kind: OpAddRoot, Args: []string{addr.String()}})
}

// Reserve appends an unset slot to the top scope and returns a handle to it
func (h *Heap) Reserve() (*Reservation, error) {
	top := h.Top()
	r := &Reservation{owner: h, scope: top, index: top.append(Nil)}
	return r, h.emit(Op{Kind: OpReserve})
}

// Claim writes addr into the slot captured by r
func (h *Heap) Claim(addr Addr, r *Reservation) error {
	if err := h.checkReservation(r); err != nil {
		errorf("heap: claim rejected: %v", err)
		h.hasPending = false
		return err
	}
	r.scope.slots[r.index] = addr
	r.claimed = true
	return h.emit(Op{Kind: OpClaim, Args: []string{
		addr.String(),
		r.scope.name + ":" + strconv.Itoa(r.index),
	}})
}

func (h *Heap) checkReservation(r *Reservation) error {
	switch {
	case r == nil:
		return ErrNilReservation
	case r.owner != h:
		return ErrForeignReservation
	case r.claimed:
		return ErrClaimed
	case !r.scope.live:
		return ErrScopeGone
	}
	return nil
}

// SetElem overwrites element index of the sequence at seq with target
func (h *Heap) SetElem(seq Addr, index int, target Addr) error {
	s, err := h.sequence(seq)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s.Items) {
		errorf("heap: setElem rejected: %v", ErrIndexRange)
		h.hasPending = false
		return ErrIndexRange
	}
	s.Items[index] = target
	return h.emit(Op{Kind: OpSetElem, Args: []string{seq.String(), strconv.Itoa(index), target.String()}})
}

// AppendElem appends target to the sequence at seq
func (h *Heap) AppendElem(seq Addr, target Addr) error {
	s, err := h.sequence(seq)
	if err != nil {
		return err
	}
	s.Items = append(s.Items, target)
	return h.emit(Op{Kind: OpAppendElem, Args: []string{seq.String(), target.String()}})
}

func (h *Heap) sequence(addr Addr) (*Sequence, error) {
	obj, ok := h.objects[addr]
	if !ok {
		errorf("heap: %v %s", ErrUnknownAddress, addr)
		h.hasPending = false
		return nil, ErrUnknownAddress
	}
	s, ok := obj.(*Sequence)
	if !ok {
		errorf("heap: %v: %s is %s", ErrNotSequence, addr, obj.Kind())
		h.hasPending = false
		return nil, ErrNotSequence
	}
	return s, nil
}

// Depth returns the number of scopes on the stack, always at least 1
func (h *Heap) Depth() int { return len(h.scopes) }

// Top returns the innermost scope
func (h *Heap) Top() *Scope { return h.scopes[len(h.scopes)-1] }

// Scopes returns the stack from bottom to top
func (h *Heap) Scopes() []*Scope {
	return append([]*Scope(nil), h.scopes...)
}

// Lookup returns the object stored at addr. The object must not be modified.
func (h *Heap) Lookup(addr Addr) (Object, bool) {
	obj, ok := h.objects[addr]
	return obj, ok
}

// Len returns the number of allocated objects
func (h *Heap) Len() int { return len(h.objects) }

// Addrs returns every allocated address in ascending order
func (h *Heap) Addrs() []Addr {
	addrs := maps.Keys(h.objects)
	slices.Sort(addrs)
	return addrs
}

// Frames returns the number of frames emitted so far
func (h *Heap) Frames() int { return h.frames }

func (h *Heap) label(op Op) string {
	if h.hasPending {
		h.hasPending = false
		return h.pending
	}
	return h.labeler(op)
}

func (h *Heap) emit(op Op) error {
	label := h.label(op)
	h.frames++
	debugf("heap: frame %d [%s] depth=%d objects=%d", h.frames-1, label, len(h.scopes), len(h.objects))
	return h.render(label)
}

// describe renders an object as it would appear in an alloc call
func describe(obj Object) string {
	switch o := obj.(type) {
	case *Boxed:
		return Repr(o.Value)
	case *Sequence:
		items := make([]string, len(o.Items))
		for i, a := range o.Items {
			items[i] = a.String()
		}
		return "sequence(" + strings.Join(items, ", ") + ")"
	}
	return obj.Kind()
}
