package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rawvec/vector/elem"
	"github.com/joshuapare/rawvec/vector/elem/elemtest"
)

// Operations that reallocate must leave the vector exactly as it was when an
// element hook fails at any point.

func TestClone_FailureDestroysPartialCopy(t *testing.T) {
	for k := 1; k <= 4; k++ {
		tr := elemtest.NewTracker()
		v := newTracked(t, tr, 0, 1, 2, 3, 4)
		before := snap(v, tr)

		tr.FailOn(elemtest.OpCopy, k)
		cp, err := v.Clone()
		require.ErrorIs(t, err, elemtest.ErrInjected, "k=%d", k)
		require.Nil(t, cp)
		requireUnchanged(t, before, v, tr)
		assert.Equal(t, k-1, tr.Count(elemtest.OpDestroy), "partial copies destroyed")

		v.Release()
		assert.Zero(t, tr.Live())
	}
}

func TestAssign_RebuildFailureLeavesDestinationUnchanged(t *testing.T) {
	for k := 1; k <= 5; k++ {
		tr := elemtest.NewTracker()
		dst := newTracked(t, tr, 2, 7, 8)
		src := newTracked(t, tr, 0, 1, 2, 3, 4, 5)
		tr.ResetCounts()
		before := snap(dst, tr)
		srcBefore := probeValues(src)

		tr.FailOn(elemtest.OpCopy, k)
		err := dst.Assign(src)
		require.ErrorIs(t, err, elemtest.ErrInjected, "k=%d", k)
		requireUnchanged(t, before, dst, tr)
		assert.Equal(t, srcBefore, probeValues(src))

		dst.Release()
		src.Release()
		assert.Zero(t, tr.Live())
	}
}

func TestAssign_InPlaceFailureKeepsInvariants(t *testing.T) {
	tr := elemtest.NewTracker()
	dst := newTracked(t, tr, 8, 7, 8)
	src := newTracked(t, tr, 0, 1, 2, 3, 4)

	tr.FailOn(elemtest.OpCopy, 2)
	err := dst.Assign(src)
	require.ErrorIs(t, err, elemtest.ErrInjected)
	assert.Equal(t, 2, dst.Len(), "length unchanged")
	assert.Equal(t, []int{1, 2}, probeValues(dst), "prefix already assigned")
	assert.Equal(t, dst.Len()+src.Len(), tr.Live(), "tail construction rolled back")

	dst.Release()
	src.Release()
	assert.Zero(t, tr.Live())
	requireClean(t, tr)
}

func TestReserve_FailureLeavesVectorUnchanged(t *testing.T) {
	t.Run("copy", func(t *testing.T) {
		for k := 1; k <= 3; k++ {
			tr := elemtest.NewTracker()
			v := newTracked(t, tr, 0, 1, 2, 3)
			before := snap(v, tr)

			tr.FailOn(elemtest.OpCopy, k)
			require.ErrorIs(t, v.Reserve(16), elemtest.ErrInjected)
			requireUnchanged(t, before, v, tr)

			v.Release()
			assert.Zero(t, tr.Live())
		}
	})

	t.Run("move-only", func(t *testing.T) {
		for k := 1; k <= 4; k++ {
			tr := elemtest.NewTracker()
			tr.NoCopy = true
			v := newTracked(t, tr, 0, 1, 2, 3, 4)
			require.Equal(t, elem.RelocateMove, v.Policy())
			before := snap(v, tr)

			tr.FailOn(elemtest.OpMove, k)
			require.ErrorIs(t, v.Reserve(16), elemtest.ErrInjected)
			requireUnchanged(t, before, v, tr)
			assert.Equal(t, k-1, tr.Count(elemtest.OpMoveAssign), "moved elements moved back")

			v.Release()
			assert.Zero(t, tr.Live())
		}
	})
}

func TestPushBack_GrowthFailureLeavesVectorUnchanged(t *testing.T) {
	// Copy #1 builds the new element, copies #2..#5 relocate.
	for k := 1; k <= 5; k++ {
		tr := elemtest.NewTracker()
		v := newTracked(t, tr, 0, 1, 2, 3, 4)
		require.Equal(t, v.Len(), v.Cap())
		val := tr.Make(5)
		before := snap(v, tr)

		tr.FailOn(elemtest.OpCopy, k)
		err := v.PushBack(val)
		require.ErrorIs(t, err, elemtest.ErrInjected, "k=%d", k)
		requireUnchanged(t, before, v, tr)

		tr.Drop(&val)
		v.Release()
		assert.Zero(t, tr.Live())
	}
}

func TestEmplaceBack_InitFailure(t *testing.T) {
	tr := elemtest.NewTracker()
	v := newTracked(t, tr, 0, 1, 2)

	for _, grow := range []bool{true, false} {
		if !grow {
			require.NoError(t, v.Reserve(8))
		}
		before := snap(v, tr)
		tr.FailOn(elemtest.OpConstruct, 1)
		_, err := v.EmplaceBack(tr.Construct)
		require.ErrorIs(t, err, elemtest.ErrInjected)
		requireUnchanged(t, before, v, tr)
	}

	v.Release()
	assert.Zero(t, tr.Live())
}

func TestInsert_ReallocFailureAfterIndexPropagates(t *testing.T) {
	// n=4, idx=1. Copies: #1 new element, #2 element 0 (before), #3..#5 elements 1..3 (after).
	for k := 1; k <= 5; k++ {
		tr := elemtest.NewTracker()
		v := newTracked(t, tr, 4, 10, 20, 30, 40)
		val := tr.Make(99)
		before := snap(v, tr)

		tr.FailOn(elemtest.OpCopy, k)
		_, err := v.Insert(v.CursorAt(1), val)
		require.ErrorIs(t, err, elemtest.ErrInjected, "k=%d: failure must reach the caller", k)
		requireUnchanged(t, before, v, tr)
		assert.Equal(t, k-1, tr.Count(elemtest.OpDestroy), "everything built in the new storage is destroyed")

		tr.Drop(&val)
		v.Release()
		assert.Zero(t, tr.Live())
	}
}

func TestInsert_ShiftFailureRestoresOrder(t *testing.T) {
	// n=5 with spare capacity, idx=1: one move construct, then move assigns
	// #1..#3 shift, #4 places the new value.
	for k := 1; k <= 4; k++ {
		tr := elemtest.NewTracker()
		v := newTracked(t, tr, 8, 10, 20, 30, 40, 50)
		val := tr.Make(99)
		before := snap(v, tr)

		tr.FailOn(elemtest.OpMoveAssign, k)
		_, err := v.Insert(v.CursorAt(1), val)
		require.ErrorIs(t, err, elemtest.ErrInjected, "k=%d", k)
		requireUnchanged(t, before, v, tr)

		tr.Drop(&val)
		v.Release()
		assert.Zero(t, tr.Live())
	}

	tr := elemtest.NewTracker()
	v := newTracked(t, tr, 8, 10, 20, 30)
	before := snap(v, tr)
	tr.FailOn(elemtest.OpMove, 1)
	_, err := v.Insert(v.Begin(), tr.Make(1))
	require.ErrorIs(t, err, elemtest.ErrInjected)
	before.live++ // the probe made for the call
	requireUnchanged(t, before, v, tr)
}

func TestNewSized_FailureDestroysPrefix(t *testing.T) {
	tr := elemtest.NewTracker()
	tr.FailOn(elemtest.OpConstruct, 3)
	v, err := NewSized(5, &Options[elemtest.Probe]{Lifecycle: tr})
	require.ErrorIs(t, err, elemtest.ErrInjected)
	require.Nil(t, v)
	assert.Zero(t, tr.Live())
	assert.Equal(t, 2, tr.Count(elemtest.OpDestroy))
	requireClean(t, tr)
}

func TestResize_FailureKeepsLength(t *testing.T) {
	tr := elemtest.NewTracker()
	v := newTracked(t, tr, 0, 1, 2)

	tr.FailOn(elemtest.OpConstruct, 3)
	require.ErrorIs(t, v.Resize(6), elemtest.ErrInjected)
	assert.Equal(t, []int{1, 2}, probeValues(v))
	assert.Equal(t, 6, v.Cap(), "reserve already succeeded")
	assert.Equal(t, 2, tr.Live())

	v.Release()
	requireClean(t, tr)
}

func TestErase_FailureKeepsInvariants(t *testing.T) {
	tr := elemtest.NewTracker()
	v := newTracked(t, tr, 0, 1, 2, 3, 4)

	tr.FailOn(elemtest.OpMoveAssign, 2)
	_, err := v.Erase(v.CursorAt(0))
	require.ErrorIs(t, err, elemtest.ErrInjected)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 4, tr.Live())

	v.Release()
	assert.Zero(t, tr.Live())
	requireClean(t, tr)
}

func TestClone_NotCopyable(t *testing.T) {
	tr := elemtest.NewTracker()
	tr.NoCopy = true
	v := newTracked(t, tr, 0, 1)

	_, err := v.Clone()
	require.ErrorIs(t, err, elem.ErrNotCopyable)
	require.ErrorIs(t, v.PushBack(tr.Make(2)), elem.ErrNotCopyable)
	assert.Equal(t, []int{1}, probeValues(v))
}
