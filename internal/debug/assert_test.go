//go:build vecdebug

package debug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertPanicsOnViolation(t *testing.T) {
	require.True(t, Enabled)
	require.NotPanics(t, func() { Assert(true, "never") })
	require.PanicsWithValue(t, "assertion failed: index 3 >= 2", func() {
		Assert(false, "index %d >= %d", 3, 2)
	})
}
