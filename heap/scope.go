// ABOUTME: Lexical scopes holding root slots, and reservations into them
// ABOUTME: A reservation lets a root be declared before its target exists

package heap

// MainScope is the name of the permanent bottom scope
const MainScope = "__main__"

// Scope is one lexical frame: a name and an ordered list of root slots.
// A slot holding Nil is unset.
type Scope struct {
	id    int
	name  string
	slots []Addr
	live  bool // false once popped
}

// Name returns the scope name
func (s *Scope) Name() string { return s.name }

// ID returns the scope's node number, unique within its Heap
func (s *Scope) ID() int { return s.id }

// Len returns the number of slots
func (s *Scope) Len() int { return len(s.slots) }

// Slot returns the address held by slot i
func (s *Scope) Slot(i int) Addr { return s.slots[i] }

// Slots returns a copy of the slot contents
func (s *Scope) Slots() []Addr {
	return append([]Addr(nil), s.slots...)
}

// Live reports whether the scope is still on its stack
func (s *Scope) Live() bool { return s.live }

func (s *Scope) append(addr Addr) int {
	s.slots = append(s.slots, addr)
	return len(s.slots) - 1
}

// Reservation is a claim ticket for one slot of one scope. It must be
// claimed exactly once, while the scope is still on the stack.
type Reservation struct {
	owner   *Heap
	scope   *Scope
	index   int
	claimed bool
}

// Scope returns the scope the reserved slot belongs to
func (r *Reservation) Scope() *Scope { return r.scope }

// Index returns the reserved slot index
func (r *Reservation) Index() int { return r.index }

// Claimed reports whether the reservation has been resolved
func (r *Reservation) Claimed() bool { return r.claimed }
