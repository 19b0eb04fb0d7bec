package vector

import (
	"errors"
	"fmt"
)

// Emplace constructs a new element with init before pos and returns a
// cursor to it. A nil init default-constructs; pos == End() appends.
//
// With spare capacity the value is built in a temporary, the last element
// is moved into the first spare slot, [pos, last) is shifted right by move
// assignment and the temporary is moved into place. On failure the shift
// is undone.
//
// Without spare capacity the storage grows to max(1, 2*Len()), the new
// element is built directly at its index, and the elements before and after
// it are relocated. On failure v is left unchanged.
func (v *Vector[T]) Emplace(pos Cursor[T], init func(*T) error) (Cursor[T], error) {
	idx := v.index(pos)
	lc := v.life()
	if init == nil {
		init = lc.Construct
	}

	if idx == v.size {
		if _, err := v.EmplaceBack(init); err != nil {
			return pos, err
		}
		return v.CursorAt(idx), nil
	}

	var err error
	if v.size < v.Cap() {
		err = v.insertShift(idx, init)
	} else {
		err = v.insertGrow(idx, init)
	}
	if err != nil {
		return pos, err
	}
	return v.CursorAt(idx), nil
}

// Insert inserts a copy of val before pos.
func (v *Vector[T]) Insert(pos Cursor[T], val T) (Cursor[T], error) {
	lc := v.life()
	return v.Emplace(pos, func(dst *T) error { return lc.CopyConstruct(dst, &val) })
}

// InsertMove inserts *src before pos by moving it, leaving *src moved-from.
func (v *Vector[T]) InsertMove(pos Cursor[T], src *T) (Cursor[T], error) {
	lc := v.life()
	return v.Emplace(pos, func(dst *T) error { return lc.MoveConstruct(dst, src) })
}

func (v *Vector[T]) insertShift(idx int, init func(*T) error) error {
	lc := v.lc

	var tmp T
	if err := init(&tmp); err != nil {
		return fmt.Errorf("vector: insert: construct element %d: %w", idx, err)
	}
	defer lc.Destroy(&tmp)

	last := v.size - 1
	if err := lc.MoveConstruct(v.mem.Slot(v.size), v.mem.Slot(last)); err != nil {
		return fmt.Errorf("vector: insert: relocate element %d: %w", last, err)
	}
	for i := last; i > idx; i-- {
		if err := lc.MoveAssign(v.mem.Slot(i), v.mem.Slot(i-1)); err != nil {
			return v.unshift(i, fmt.Errorf("vector: insert: relocate element %d: %w", i-1, err))
		}
	}
	if err := lc.MoveAssign(v.mem.Slot(idx), &tmp); err != nil {
		return v.unshift(idx, fmt.Errorf("vector: insert: place element %d: %w", idx, err))
	}

	v.size++
	return nil
}

// unshift reverses a partial right shift whose move into slot from failed:
// slots (from, Len()] hold the elements of [from, Len()) and slot Len() was
// constructed by the shift.
func (v *Vector[T]) unshift(from int, cause error) error {
	lc := v.lc
	var restoreErr error
	for i := from; i < v.size; i++ {
		if err := lc.MoveAssign(v.mem.Slot(i), v.mem.Slot(i+1)); err != nil {
			restoreErr = errors.Join(restoreErr, fmt.Errorf("vector: insert: restore element %d: %w", i, err))
		}
	}
	lc.Destroy(v.mem.Slot(v.size))
	v.logger().Debug("vector: rolled back", "op", "insert", "error", cause)
	if restoreErr != nil {
		return errors.Join(cause, restoreErr)
	}
	return cause
}

func (v *Vector[T]) insertGrow(idx int, init func(*T) error) error {
	n, err := v.grownCap()
	if err != nil {
		return err
	}
	st := v.stage(n, "insert")
	defer st.rollback()
	if err := st.construct(idx, init); err != nil {
		return err
	}
	if err := st.relocate(0, 0, idx); err != nil {
		return err
	}
	if err := st.relocate(idx, idx+1, v.size-idx); err != nil {
		return err
	}
	st.commit(v.size + 1)
	return nil
}

// Erase removes the element at pos and returns the cursor now at that
// index. Following elements shift left by move assignment. Erase(End()) is
// PopBack. If a move assignment fails, the erased element is already
// overwritten; every element stays valid and the length is unchanged.
func (v *Vector[T]) Erase(pos Cursor[T]) (Cursor[T], error) {
	idx := v.index(pos)
	if idx == v.size {
		v.PopBack()
		return v.End(), nil
	}

	lc := v.life()
	for i := idx; i < v.size-1; i++ {
		if err := lc.MoveAssign(v.mem.Slot(i), v.mem.Slot(i+1)); err != nil {
			return v.CursorAt(idx), fmt.Errorf("vector: erase: relocate element %d: %w", i+1, err)
		}
	}
	v.PopBack()
	return v.CursorAt(idx), nil
}
