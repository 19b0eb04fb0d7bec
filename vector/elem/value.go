package elem

// Value is the lifecycle of plain Go values: construction yields the zero
// value, copies are assignments, moves leave the zero value behind and
// nothing fails. Copies are shallow; slices, maps and pointers inside T are
// shared between original and copy.
type Value[T any] struct{}

var (
	_ Lifecycle[int] = Value[int]{}
	_ NoFailMover    = Value[int]{}
)

func (Value[T]) Construct(dst *T) error {
	var zero T
	*dst = zero
	return nil
}

func (Value[T]) CopyConstruct(dst, src *T) error {
	*dst = *src
	return nil
}

func (Value[T]) MoveConstruct(dst, src *T) error {
	var zero T
	*dst, *src = *src, zero
	return nil
}

func (Value[T]) CopyAssign(dst, src *T) error {
	*dst = *src
	return nil
}

func (Value[T]) MoveAssign(dst, src *T) error {
	if dst == src {
		return nil
	}
	var zero T
	*dst, *src = *src, zero
	return nil
}

func (Value[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// MoveNeverFails reports true.
func (Value[T]) MoveNeverFails() bool { return true }
