package vector

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/joshuapare/rawvec/internal/debug"
	"github.com/joshuapare/rawvec/vector/elem"
	"github.com/joshuapare/rawvec/vector/storage"
)

// Vector is a contiguous growable sequence of T. The zero value is an empty
// vector of plain values, ready to use.
type Vector[T any] struct {
	mem  storage.Storage[T]
	size int

	lc     elem.Lifecycle[T]
	policy elem.Policy
	log    *slog.Logger
}

// New returns an empty vector. It allocates no storage. opts may be nil.
func New[T any](opts *Options[T]) *Vector[T] {
	o := opts.normalize()
	return &Vector[T]{
		lc:     o.Lifecycle,
		policy: elem.PolicyFor(o.Lifecycle),
		log:    o.Logger,
	}
}

// NewSized returns a vector of n default-constructed elements with
// capacity n. If a construction fails, the elements built so far are
// destroyed and the error is returned.
func NewSized[T any](n int, opts *Options[T]) (*Vector[T], error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	v := New(opts)
	if n == 0 {
		return v, nil
	}

	st := v.stage(n, "new")
	defer st.rollback()
	for i := range n {
		if err := st.construct(i, v.lc.Construct); err != nil {
			return nil, err
		}
	}
	st.commit(n)
	return v, nil
}

// life returns the element lifecycle, defaulting the zero Vector to plain values.
func (v *Vector[T]) life() elem.Lifecycle[T] {
	if v.lc == nil {
		v.lc = elem.Value[T]{}
		v.policy = elem.RelocateMove
	}
	return v.lc
}

func (v *Vector[T]) logger() *slog.Logger {
	if v.log == nil {
		return discard
	}
	return v.log
}

// sibling returns an empty vector sharing v's configuration.
func (v *Vector[T]) sibling() *Vector[T] {
	lc := v.life()
	return &Vector[T]{lc: lc, policy: v.policy, log: v.log}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the number of slots in the current storage.
func (v *Vector[T]) Cap() int { return v.mem.Capacity() }

// Policy returns the relocation policy used when the storage grows.
func (v *Vector[T]) Policy() elem.Policy {
	v.life()
	return v.policy
}

// At returns a pointer to element i. The caller guarantees 0 <= i < Len();
// the check only runs with -tags vecdebug. The pointer is invalidated by
// any operation that reallocates or shifts elements.
func (v *Vector[T]) At(i int) *T {
	if debug.Enabled {
		debug.Assert(i >= 0 && i < v.size, "vector: index %d out of range [0,%d)", i, v.size)
	}
	return v.mem.Slot(i)
}

// All returns an iterator over index/value pairs in order. The vector must
// not be modified during iteration.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.mem.Slot(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.mem.Slot(i)) {
				return
			}
		}
	}
}

// Clone returns an independent copy of v holding copies of its live
// elements, with capacity Len(). On a copy failure the partial copy is
// destroyed and v is untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := v.sibling()
	st := out.stage(v.size, "clone")
	defer st.rollback()
	if err := st.copyFrom(v, v.size); err != nil {
		return nil, err
	}
	st.commit(v.size)
	return out, nil
}

// Take moves v's storage and elements into a new vector in O(1). v is left
// empty with zero capacity.
func (v *Vector[T]) Take() *Vector[T] {
	out := v.sibling()
	out.mem = v.mem.Take()
	out.size, v.size = v.size, 0
	return out
}

// Assign replaces v's contents with copies of src's elements.
//
// When src does not fit in v's capacity, a full copy of src is built first
// and swapped in; a copy failure leaves v unchanged. Otherwise the common
// prefix is copy-assigned in place, then v's excess tail is destroyed or
// src's excess tail is copy-constructed into v's spare slots. A failure on
// that path leaves v valid with its original length.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if src == v {
		return nil
	}
	lc := v.life()

	if src.size > v.Cap() {
		tmp := v.sibling()
		st := tmp.stage(src.size, "assign")
		defer st.rollback()
		if err := st.copyFrom(src, src.size); err != nil {
			return err
		}
		st.commit(src.size)
		v.Swap(tmp)
		tmp.Release()
		return nil
	}

	common := min(v.size, src.size)
	for i := range common {
		if err := lc.CopyAssign(v.mem.Slot(i), src.mem.Slot(i)); err != nil {
			return fmt.Errorf("vector: assign element %d: %w", i, err)
		}
	}

	if src.size < v.size {
		v.destroyRange(src.size, v.size)
		v.size = src.size
		return nil
	}

	for i := v.size; i < src.size; i++ {
		if err := lc.CopyConstruct(v.mem.Slot(i), src.mem.Slot(i)); err != nil {
			v.destroyRange(v.size, i)
			return fmt.Errorf("vector: assign element %d: %w", i, err)
		}
	}
	v.size = src.size
	return nil
}

// MoveAssign destroys v's elements, releases its storage and takes over
// src's storage, elements, lifecycle and logger. src is left empty with
// zero capacity. No element of src is touched.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if src == v {
		return
	}
	v.Release()
	v.mem.Swap(&src.mem)
	v.size, src.size = src.size, 0
	v.lc, v.policy = src.life(), src.policy
	v.log = src.log
}

// Swap exchanges the storage, elements, lifecycles and loggers of v and
// other in O(1).
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.life()
	other.life()
	v.mem.Swap(&other.mem)
	v.size, other.size = other.size, v.size
	v.lc, other.lc = other.lc, v.lc
	v.policy, other.policy = other.policy, v.policy
	v.log, other.log = other.log, v.log
}

// Release destroys every live element and frees the storage, leaving an
// empty vector with zero capacity that can be reused.
func (v *Vector[T]) Release() {
	v.destroyRange(0, v.size)
	v.size = 0
	v.mem.Deallocate()
}

// destroyRange destroys live elements [from, to) in order. It panics if the
// range does not fit in the storage.
func (v *Vector[T]) destroyRange(from, to int) {
	lc := v.life()
	live := v.mem.Span(from, to-from)
	for i := range live {
		lc.Destroy(&live[i])
	}
}
