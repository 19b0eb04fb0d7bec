// Package buf contains overflow-safe index arithmetic shared by the slot
// storage and the container's growth computation.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies non-negative a and b, returning ok = false
// when the result would overflow int.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// CheckSpan validates that count slots starting at offset fit in a block of
// capacity slots. Returns the end offset if valid, or an error describing
// the specific failure (negative input, overflow or out of bounds).
//
//	end, err := buf.CheckSpan(capacity, off, n)
//	if err != nil {
//	    panic(fmt.Sprintf("storage: %v", err))
//	}
//	// slots [off, end) are addressable
func CheckSpan(capacity, offset, count int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset: %d", offset)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}

	end, ok := AddOverflowSafe(offset, count)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + count=%d", offset, count)
	}

	if end > capacity {
		return 0, fmt.Errorf("bounds: end=%d > capacity=%d", end, capacity)
	}

	return end, nil
}

// Grow returns the capacity that follows current under doubling growth:
// max(1, 2*current). ok is false when doubling would overflow int.
func Grow(current int) (int, bool) {
	if current == 0 {
		return 1, true
	}
	return MulOverflowSafe(current, 2)
}
