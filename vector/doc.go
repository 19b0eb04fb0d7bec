// Package vector provides Vector, a contiguous growable sequence whose element
// lifecycle is explicit and may fail.
//
// # Overview
//
// A Vector tracks how many leading slots of its storage.Storage hold live
// elements. Slots past Len() are raw: reserved but not constructed. All
// element work goes through an elem.Lifecycle, so types whose construction,
// copy or move can fail are handled with the same guarantees as plain values.
//
//	v := vector.New[int](nil)
//	for i := range 5 {
//	    if err := v.PushBack(i); err != nil {
//	        return err
//	    }
//	}
//	// v.Len() == 5, v.Cap() == 8
//
// # Growth
//
// Capacity doubles on overflow (max(1, 2*Len())) and never shrinks
// implicitly. Reallocation relocates every live element exactly once. The
// relocation policy is picked once per vector from the lifecycle's
// capabilities: move when moves never fail or copying is disabled, copy
// otherwise.
//
// # Failure Guarantees
//
// Operations that reallocate (Reserve, growth in PushBack/EmplaceBack,
// reallocating Insert/Emplace, NewSized, Clone, and Assign when the source
// does not fit) build the new storage first and adopt it only when every
// element was constructed. On failure all new elements are destroyed, moved
// elements are moved back, the new storage is released and the vector is
// left exactly as it was.
//
// Non-reallocating Insert/Emplace restore the shifted range on failure.
// Erase and in-place Assign leave every element valid but possibly changed.
//
// # Cursors
//
// Begin and End return random-access Cursors over the live elements. Any
// operation that reallocates or shifts elements invalidates cursors and
// pointers returned by At.
//
// # Contract Checks
//
// At, Cursor.Value and positional operations do not check their arguments.
// Build with -tags vecdebug to turn contract violations into panics.
//
// # Thread Safety
//
// Vector instances are not thread-safe. Callers must synchronize access
// externally.
package vector
