package vector

import (
	"errors"
	"fmt"

	"github.com/joshuapare/rawvec/vector/elem"
	"github.com/joshuapare/rawvec/vector/storage"
)

// span records elements built in a staging storage: next[at, at+n).
// Moved spans were relocated by move from the owner's slots [from, from+n).
type span struct {
	from, at, n int
	moved       bool
}

// staging builds replacement storage for v. The owner's storage is not
// modified before commit; until then rollback destroys everything built in
// next, moves relocated elements back and releases next. Callers defer
// rollback right after stage so that it runs on every exit path.
type staging[T any] struct {
	v     *Vector[T]
	op    string
	next  storage.Storage[T]
	spans []span
	done  bool
}

func (v *Vector[T]) stage(capacity int, op string) *staging[T] {
	v.life()
	return &staging[T]{v: v, op: op, next: storage.New[T](capacity)}
}

// construct builds a new element at next[at] with init.
func (st *staging[T]) construct(at int, init func(*T) error) error {
	if err := init(st.next.Slot(at)); err != nil {
		return st.fail(fmt.Errorf("vector: %s: construct element %d: %w", st.op, at, err))
	}
	st.spans = append(st.spans, span{at: at, n: 1})
	return nil
}

// relocate moves or copies the owner's elements [from, from+n) to
// next[at, at+n), following the owner's relocation policy. The originals
// stay live until commit.
func (st *staging[T]) relocate(from, at, n int) error {
	lc := st.v.lc
	move := st.v.policy == elem.RelocateMove

	var err error
	i := 0
	for ; i < n; i++ {
		dst, src := st.next.Slot(at+i), st.v.mem.Slot(from+i)
		if move {
			err = lc.MoveConstruct(dst, src)
		} else {
			err = lc.CopyConstruct(dst, src)
		}
		if err != nil {
			break
		}
	}
	if i > 0 {
		st.spans = append(st.spans, span{from: from, at: at, n: i, moved: move})
	}
	if err != nil {
		return st.fail(fmt.Errorf("vector: %s: relocate element %d: %w", st.op, from+i, err))
	}
	return nil
}

// copyFrom copy-constructs src's elements [0, n) into next[0, n).
func (st *staging[T]) copyFrom(src *Vector[T], n int) error {
	lc := st.v.lc
	for i := range n {
		if err := lc.CopyConstruct(st.next.Slot(i), src.mem.Slot(i)); err != nil {
			if i > 0 {
				st.spans = append(st.spans, span{n: i})
			}
			return st.fail(fmt.Errorf("vector: %s: copy element %d: %w", st.op, i, err))
		}
	}
	if n > 0 {
		st.spans = append(st.spans, span{n: n})
	}
	return nil
}

// fail rolls back immediately and returns err, joined with any error hit
// while moving elements back.
func (st *staging[T]) fail(err error) error {
	if restoreErr := st.undo(); restoreErr != nil {
		err = errors.Join(err, restoreErr)
	}
	st.v.logger().Debug("vector: rolled back", "op", st.op, "error", err)
	return err
}

// rollback undoes uncommitted work. It is a no-op after commit or fail.
func (st *staging[T]) rollback() {
	if restoreErr := st.undo(); restoreErr != nil {
		st.v.logger().Warn("vector: restore after failure", "op", st.op, "error", restoreErr)
	}
}

func (st *staging[T]) undo() error {
	if st.done {
		return nil
	}
	st.done = true

	lc := st.v.lc
	var restoreErr error
	for k := len(st.spans) - 1; k >= 0; k-- {
		sp := st.spans[k]
		built := st.next.Span(sp.at, sp.n)
		for i := sp.n - 1; i >= 0; i-- {
			if sp.moved {
				if err := lc.MoveAssign(st.v.mem.Slot(sp.from+i), &built[i]); err != nil {
					restoreErr = errors.Join(restoreErr, fmt.Errorf("vector: %s: restore element %d: %w", st.op, sp.from+i, err))
				}
			}
			lc.Destroy(&built[i])
		}
	}
	st.spans = nil
	st.next.Deallocate()
	return restoreErr
}

// commit destroys the owner's original elements, adopts next and sets the
// owner's length to size.
func (st *staging[T]) commit(size int) {
	v := st.v
	v.destroyRange(0, v.size)
	v.logger().Debug("vector: reallocated",
		"op", st.op,
		"old_cap", v.mem.Capacity(),
		"new_cap", st.next.Capacity(),
		"size", size,
	)
	v.mem.Swap(&st.next)
	st.next.Deallocate()
	v.size = size
	st.spans = nil
	st.done = true
}
