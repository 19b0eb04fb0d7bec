package vector

import "github.com/joshuapare/rawvec/internal/debug"

// Cursor is a random-access position in a Vector, from Begin() to End().
// Cursors are invalidated by any operation that reallocates or shifts
// elements.
type Cursor[T any] struct {
	v *Vector[T]
	i int
}

// Begin returns a cursor at the first element.
func (v *Vector[T]) Begin() Cursor[T] { return Cursor[T]{v: v} }

// End returns the cursor one past the last element.
func (v *Vector[T]) End() Cursor[T] { return Cursor[T]{v: v, i: v.size} }

// CursorAt returns the cursor at index i, 0 <= i <= Len().
func (v *Vector[T]) CursorAt(i int) Cursor[T] { return Cursor[T]{v: v, i: i} }

// Index returns the cursor's distance from Begin().
func (c Cursor[T]) Index() int { return c.i }

// Valid reports whether the cursor points at a live element.
func (c Cursor[T]) Valid() bool { return c.v != nil && c.i >= 0 && c.i < c.v.size }

// Value returns a pointer to the element under the cursor. The cursor must
// be Valid.
func (c Cursor[T]) Value() *T { return c.v.At(c.i) }

// Next returns the following position.
func (c Cursor[T]) Next() Cursor[T] { return c.Add(1) }

// Prev returns the preceding position.
func (c Cursor[T]) Prev() Cursor[T] { return c.Add(-1) }

// Add returns the position n elements away.
func (c Cursor[T]) Add(n int) Cursor[T] { return Cursor[T]{v: c.v, i: c.i + n} }

// Sub returns the distance c - o. Both cursors must belong to the same
// vector.
func (c Cursor[T]) Sub(o Cursor[T]) int {
	if debug.Enabled {
		debug.Assert(c.v == o.v, "vector: cursors of different vectors")
	}
	return c.i - o.i
}

// Equal reports whether c and o are the same position of the same vector.
func (c Cursor[T]) Equal(o Cursor[T]) bool { return c.v == o.v && c.i == o.i }

// Less reports whether c precedes o.
func (c Cursor[T]) Less(o Cursor[T]) bool { return c.Sub(o) < 0 }

// index validates pos for a positional operation on v.
func (v *Vector[T]) index(pos Cursor[T]) int {
	if debug.Enabled {
		debug.Assert(pos.v == v, "vector: cursor belongs to another vector")
		debug.Assert(pos.i >= 0 && pos.i <= v.size, "vector: cursor %d out of range [0,%d]", pos.i, v.size)
	}
	return pos.i
}
