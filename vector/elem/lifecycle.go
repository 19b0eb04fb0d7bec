// Package elem defines how a vector creates, duplicates, relocates and
// destroys its elements.
//
// A Lifecycle is the element-level counterpart of a slot storage: storage
// hands out raw slots, a Lifecycle turns them into live elements and back.
// Every hook except Destroy may fail; the vector rolls back partial work
// when one does.
package elem

import "errors"

// ErrNotCopyable is returned by copy hooks of lifecycles that disable copying.
var ErrNotCopyable = errors.New("elem: element type is not copyable")

// Lifecycle manages elements of type T held in slots.
//
// A raw slot holds T's zero value and no live element. Construct hooks
// require a raw dst and leave it live; assign hooks require a live dst.
// Move hooks leave src live in a valid moved-from state. When a hook
// returns an error, dst must be left raw (construct) or live (assign).
type Lifecycle[T any] interface {
	Construct(dst *T) error
	CopyConstruct(dst, src *T) error
	MoveConstruct(dst, src *T) error
	CopyAssign(dst, src *T) error
	MoveAssign(dst, src *T) error
	Destroy(p *T)
}

// NoFailMover is implemented by lifecycles that know whether their move
// hooks can fail.
type NoFailMover interface {
	MoveNeverFails() bool
}

// CopyDisabler is implemented by lifecycles that know whether their element
// type can be copied at all.
type CopyDisabler interface {
	CopyDisabled() bool
}

// Policy selects how existing elements are relocated into new storage.
type Policy int

const (
	// RelocateCopy copy-constructs into the new slots and leaves the
	// originals untouched until the whole relocation succeeded.
	RelocateCopy Policy = iota

	// RelocateMove move-constructs into the new slots.
	RelocateMove
)

func (p Policy) String() string {
	switch p {
	case RelocateCopy:
		return "copy"
	case RelocateMove:
		return "move"
	default:
		return "unknown"
	}
}

// PolicyFor returns the relocation policy for l: move when moves never fail
// or when copying is disabled, copy otherwise. A lifecycle that does not
// declare its capabilities gets RelocateCopy.
func PolicyFor[T any](l Lifecycle[T]) Policy {
	if m, ok := l.(NoFailMover); ok && m.MoveNeverFails() {
		return RelocateMove
	}
	if c, ok := l.(CopyDisabler); ok && c.CopyDisabled() {
		return RelocateMove
	}
	return RelocateCopy
}
