// ABOUTME: Heap addresses and the allocator that mints them
// ABOUTME: Addresses are identity tokens, never derived from object contents

package heap

import "strconv"

// Addr identifies a heap object for the lifetime of a Heap
type Addr uint64

// Nil is the absent address held by unset slots and empty sequence elements
const Nil Addr = 0

// IsNil reports whether the address is absent
func (a Addr) IsNil() bool {
	return a == Nil
}

// String returns the decimal form of the address, or "nil"
func (a Addr) String() string {
	if a == Nil {
		return "nil"
	}
	return strconv.FormatUint(uint64(a), 10)
}

// allocator hands out monotonically increasing addresses starting at 1.
// Nothing is ever freed, so an address is never handed out twice.
type allocator struct {
	next Addr
}

func (a *allocator) mint() Addr {
	a.next++
	return a.next
}
