package storage

import (
	"fmt"

	"github.com/joshuapare/rawvec/internal/buf"
	"github.com/joshuapare/rawvec/internal/debug"
)

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

// Lock is a no-op used by go vet's copylocks checker.
func (*noCopy) Lock() {}

// Unlock is a no-op used by go vet's copylocks checker.
func (*noCopy) Unlock() {}

// Storage owns a fixed-capacity block of slots for elements of type T.
// The zero value is the null block with capacity 0.
type Storage[T any] struct {
	_ noCopy

	// slots has len == cap == capacity; nil for the null block.
	slots []T
}

// New returns a block of n raw slots. n == 0 yields the null block and
// performs no allocation. New panics if n is negative.
func New[T any](n int) Storage[T] {
	if n < 0 {
		panic(fmt.Sprintf("storage: negative capacity %d", n))
	}
	if n == 0 {
		return Storage[T]{}
	}
	return Storage[T]{slots: make([]T, n)}
}

// Deallocate releases the block, leaving s as the null block. Slots are
// zeroed first so that anything they still reference becomes collectable.
// Calling Deallocate on the null block does nothing.
func (s *Storage[T]) Deallocate() {
	if s.slots == nil {
		return
	}
	clear(s.slots)
	s.slots = nil
}

// Capacity returns the number of addressable slots.
func (s *Storage[T]) Capacity() int {
	return len(s.slots)
}

// Slot returns the address of slot i. The caller guarantees
// 0 <= i < Capacity(); the check only runs with -tags vecdebug.
func (s *Storage[T]) Slot(i int) *T {
	if debug.Enabled {
		debug.Assert(i >= 0 && i < len(s.slots), "storage: slot %d out of range [0,%d)", i, len(s.slots))
	}
	return &s.slots[i]
}

// Span returns slots [off, off+n) as a slice sharing the block. Unlike
// Slot, the range is always checked; Span panics when it does not fit.
func (s *Storage[T]) Span(off, n int) []T {
	end, err := buf.CheckSpan(len(s.slots), off, n)
	if err != nil {
		panic(fmt.Sprintf("storage: span: %v", err))
	}
	return s.slots[off:end:end]
}

// Swap exchanges the blocks owned by s and other.
func (s *Storage[T]) Swap(other *Storage[T]) {
	s.slots, other.slots = other.slots, s.slots
}

// Take transfers ownership of the block to the returned Storage and leaves
// s as the null block.
func (s *Storage[T]) Take() Storage[T] {
	slots := s.slots
	s.slots = nil
	return Storage[T]{slots: slots}
}
