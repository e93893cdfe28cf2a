// ABOUTME: Core data types for the analysis graph built from a heap snapshot
// ABOUTME: Defines Object, ObjID, RootRef and Roots

package graph

// ObjID is a heap address. 0 is never a real object; analyses use it as the
// super-root that points at every root.
type ObjID uint64

// SuperRoot is the synthetic node that owns every root
const SuperRoot ObjID = 0

// Object is one heap object as seen by the analyses
type Object struct {
	ID    ObjID   // Heap address
	Type  string  // Variant name ("boxed", "sequence")
	Size  uint64  // Number of cells the object occupies
	Value string  // Rendered payload for boxed objects
	Ptrs  []ObjID // Outgoing references, absent elements removed
}

// RootRef records where a root came from
type RootRef struct {
	Scope string // Scope name
	Depth int    // Scope position in the stack, 0 is the bottom
	Slot  int    // Slot index within the scope
	ID    ObjID  // Referenced address
}

// Roots is the root set of a snapshot
type Roots struct {
	IDs  []ObjID   // Distinct rooted addresses in first-seen order
	Refs []RootRef // Every rooted slot, bottom scope first
}
