package vector

import "errors"

var (
	// ErrCapacityOverflow indicates that growing the storage would overflow int.
	ErrCapacityOverflow = errors.New("vector: capacity overflow")

	// ErrNegativeLength indicates a negative size or capacity argument.
	ErrNegativeLength = errors.New("vector: negative length")
)
