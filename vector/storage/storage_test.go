package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroIsNullBlock(t *testing.T) {
	s := New[int](0)
	require.Equal(t, 0, s.Capacity())
	require.Nil(t, s.slots, "null block must not allocate")

	// Deallocate on the null block is a no-op.
	s.Deallocate()
	s.Deallocate()
	require.Equal(t, 0, s.Capacity())
}

func TestNew_Capacity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64} {
		s := New[string](n)
		require.Equal(t, n, s.Capacity())
		for i := range n {
			require.Empty(t, *s.Slot(i), "fresh slot %d should be raw", i)
		}
		s.Deallocate()
		require.Equal(t, 0, s.Capacity())
	}
}

func TestNew_NegativePanics(t *testing.T) {
	require.Panics(t, func() { New[int](-1) })
}

func TestSlot_AddressesBlock(t *testing.T) {
	s := New[int](4)
	defer s.Deallocate()

	for i := range 4 {
		*s.Slot(i) = i * 10
	}
	assert.Equal(t, []int{0, 10, 20, 30}, s.Span(0, 4))

	// Same slot, same address.
	assert.Same(t, s.Slot(2), s.Slot(2))
}

func TestSpan_Checked(t *testing.T) {
	s := New[int](4)
	defer s.Deallocate()

	assert.Len(t, s.Span(1, 3), 3)
	assert.Empty(t, s.Span(4, 0))
	assert.Panics(t, func() { s.Span(2, 3) })
	assert.Panics(t, func() { s.Span(-1, 1) })

	// A span cannot be appended past its end into neighbouring slots.
	sp := s.Span(0, 2)
	assert.Equal(t, 2, cap(sp))
}

func TestDeallocate_ClearsSlots(t *testing.T) {
	s := New[*int](2)
	v := 7
	*s.Slot(0) = &v
	slots := s.slots

	s.Deallocate()
	require.Nil(t, slots[0], "released slots must not keep references alive")
	require.Equal(t, 0, s.Capacity())

	s.Deallocate()
}

func TestSwap(t *testing.T) {
	a := New[int](2)
	b := New[int](5)
	*a.Slot(0) = 1
	*b.Slot(4) = 9
	pa, pb := a.Slot(0), b.Slot(4)

	a.Swap(&b)
	require.Equal(t, 5, a.Capacity())
	require.Equal(t, 2, b.Capacity())
	// Ownership moved; no slot was copied.
	require.Same(t, pb, a.Slot(4))
	require.Same(t, pa, b.Slot(0))

	a.Deallocate()
	b.Deallocate()
}

func TestTake(t *testing.T) {
	a := New[int](3)
	*a.Slot(1) = 5
	p := a.Slot(1)

	b := a.Take()
	require.Equal(t, 0, a.Capacity())
	require.Equal(t, 3, b.Capacity())
	require.Same(t, p, b.Slot(1))

	// Taking from the null block yields the null block.
	c := a.Take()
	require.Equal(t, 0, c.Capacity())
	b.Deallocate()
}
