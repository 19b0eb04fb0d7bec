package vector

import (
	"fmt"

	"github.com/joshuapare/rawvec/internal/buf"
)

// Reserve ensures Cap() >= n. When n exceeds the capacity, new storage of
// exactly n slots is allocated and every live element is relocated into it
// once. On a relocation failure v is left unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return ErrNegativeLength
	}
	if n <= v.Cap() {
		return nil
	}
	return v.reallocate(n, "reserve")
}

func (v *Vector[T]) reallocate(n int, op string) error {
	st := v.stage(n, op)
	defer st.rollback()
	if err := st.relocate(0, 0, v.size); err != nil {
		return err
	}
	st.commit(v.size)
	return nil
}

// grownCap returns the capacity used when the storage is full.
func (v *Vector[T]) grownCap() (int, error) {
	n, ok := buf.Grow(v.size)
	if !ok {
		return 0, ErrCapacityOverflow
	}
	return n, nil
}

// Resize sets the length to n. Shrinking destroys the trailing elements;
// growing reserves n slots and default-constructs the new tail. If a
// construction fails, the new elements built so far are destroyed and the
// length is unchanged; the capacity may already have grown.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		return ErrNegativeLength
	}
	lc := v.life()

	if n <= v.size {
		v.destroyRange(n, v.size)
		v.size = n
		return nil
	}

	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := v.size; i < n; i++ {
		if err := lc.Construct(v.mem.Slot(i)); err != nil {
			v.destroyRange(v.size, i)
			return fmt.Errorf("vector: resize: construct element %d: %w", i, err)
		}
	}
	v.size = n
	return nil
}

// EmplaceBack constructs a new last element in place with init and returns a
// pointer to it. A nil init default-constructs. When the storage is full it
// grows to max(1, 2*Len()): the new element is constructed in the new
// storage first, then the existing elements are relocated. On failure v is
// left unchanged.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	lc := v.life()
	if init == nil {
		init = lc.Construct
	}

	if v.size < v.Cap() {
		slot := v.mem.Slot(v.size)
		if err := init(slot); err != nil {
			return nil, fmt.Errorf("vector: append: construct element %d: %w", v.size, err)
		}
		v.size++
		return slot, nil
	}

	n, err := v.grownCap()
	if err != nil {
		return nil, err
	}
	st := v.stage(n, "append")
	defer st.rollback()
	if err := st.construct(v.size, init); err != nil {
		return nil, err
	}
	if err := st.relocate(0, 0, v.size); err != nil {
		return nil, err
	}
	st.commit(v.size + 1)
	return v.mem.Slot(v.size - 1), nil
}

// PushBack appends a copy of val, made with the lifecycle's copy hook.
func (v *Vector[T]) PushBack(val T) error {
	lc := v.life()
	_, err := v.EmplaceBack(func(dst *T) error { return lc.CopyConstruct(dst, &val) })
	return err
}

// PushBackMove appends *src by moving it, leaving *src moved-from. src may
// point at an element of v.
func (v *Vector[T]) PushBackMove(src *T) error {
	lc := v.life()
	_, err := v.EmplaceBack(func(dst *T) error { return lc.MoveConstruct(dst, src) })
	return err
}

// PopBack destroys the last element. It does nothing on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		return
	}
	v.life().Destroy(v.mem.Slot(v.size - 1))
	v.size--
}
