// Package storage provides Storage, the exclusively-owned block of element
// slots underneath a vector.
//
// # Overview
//
// A Storage reserves capacity without creating elements. It never runs
// element lifecycle hooks: whether a slot holds a live element is tracked by
// the owner, not by the Storage. Go has no uninitialized memory, so a slot
// that holds no live element holds T's zero value and is treated as raw.
//
// # Operations
//
//   - New(n): a block of n raw slots (n == 0 yields the null block, no allocation)
//   - Deallocate(): release the block (idempotent, safe on the null block)
//   - Slot(i): address of slot i (unchecked; asserted with -tags vecdebug)
//   - Span(i, n): checked view of slots [i, i+n)
//   - Swap / Take: O(1) ownership transfer, no slot touched
//
// # Ownership
//
// A Storage is move-only. It carries a noCopy marker so that go vet's
// copylocks check reports accidental copies; transfer it with Swap or Take.
//
//	next := storage.New[int](8)
//	defer next.Deallocate() // no-op once swapped into place
//	*next.Slot(0) = 42
//	cur.Swap(&next)
//
// # Thread Safety
//
// Storage instances are not thread-safe. Callers must synchronize access
// externally.
package storage
