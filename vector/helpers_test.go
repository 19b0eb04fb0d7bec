package vector

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/rawvec/vector/elem/elemtest"
)

// ============================================================================
// Test helpers
// ============================================================================

// ints returns the live elements of v as a non-nil slice.
func ints(v *Vector[int]) []int {
	out := make([]int, 0, v.Len())
	for x := range v.Values() {
		out = append(out, x)
	}
	return out
}

// probeValues returns the Value field of every live probe in v.
func probeValues(v *Vector[elemtest.Probe]) []int {
	out := make([]int, 0, v.Len())
	for p := range v.Values() {
		out = append(out, p.Value)
	}
	return out
}

// newTracked builds a vector of probes holding vals, with capacity cap
// (or the doubling schedule when cap is 0), then resets the counters.
func newTracked(t testing.TB, tr *elemtest.Tracker, capacity int, vals ...int) *Vector[elemtest.Probe] {
	t.Helper()
	v := New(&Options[elemtest.Probe]{Lifecycle: tr})
	require.NoError(t, v.Reserve(capacity))
	for _, x := range vals {
		_, err := v.EmplaceBack(func(p *elemtest.Probe) error {
			if err := tr.Construct(p); err != nil {
				return err
			}
			p.Value = x
			return nil
		})
		require.NoError(t, err)
	}
	tr.ResetCounts()
	return v
}

// requireClean fails the test if the tracker saw a lifecycle violation.
func requireClean(t testing.TB, tr *elemtest.Tracker) {
	t.Helper()
	require.Empty(t, tr.Violations(), "lifecycle violations")
}

// snapshot captures what must not change under the strong guarantee.
type snapshot struct {
	values []int
	ids    []uuid.UUID
	length int
	cap    int
	first  *elemtest.Probe
	live   int
}

func snap(v *Vector[elemtest.Probe], tr *elemtest.Tracker) snapshot {
	s := snapshot{values: probeValues(v), length: v.Len(), cap: v.Cap(), live: tr.Live()}
	for p := range v.Values() {
		s.ids = append(s.ids, p.ID)
	}
	if v.Cap() > 0 {
		s.first = v.mem.Slot(0)
	}
	return s
}

func requireUnchanged(t testing.TB, want snapshot, v *Vector[elemtest.Probe], tr *elemtest.Tracker) {
	t.Helper()
	got := snap(v, tr)
	require.Equal(t, want.values, got.values, "values")
	require.Equal(t, want.ids, got.ids, "element identities")
	require.Equal(t, want.length, got.length, "length")
	require.Equal(t, want.cap, got.cap, "capacity")
	require.Same(t, want.first, got.first, "storage must not be replaced")
	require.Equal(t, want.live, got.live, "live probes")
	requireClean(t, tr)
}
