package elem

// Funcs builds a Lifecycle from optional hooks. A nil hook falls back to the
// Value behaviour for that operation. Assignment reuses the construct hooks:
// the old value is released and the new one constructed in its place.
//
//	lc := &elem.Funcs[[]byte]{
//	    Copy: func(src []byte) ([]byte, error) { return bytes.Clone(src), nil },
//	    NoFailMove: true,
//	}
type Funcs[T any] struct {
	// New returns a default value.
	New func() (T, error)

	// Copy returns an independent duplicate of src.
	Copy func(src T) (T, error)

	// Move returns the value to store in the destination and leaves *src in
	// a moved-from state. Default: take *src and zero it.
	Move func(src *T) (T, error)

	// Release runs before a live value is discarded.
	Release func(p *T)

	// NoFailMove declares that Move never returns an error.
	NoFailMove bool

	// NoCopy disables copying; copy hooks return ErrNotCopyable.
	NoCopy bool
}

var (
	_ Lifecycle[int] = (*Funcs[int])(nil)
	_ NoFailMover    = (*Funcs[int])(nil)
	_ CopyDisabler   = (*Funcs[int])(nil)
)

func (f *Funcs[T]) Construct(dst *T) error {
	if f.New == nil {
		var zero T
		*dst = zero
		return nil
	}
	v, err := f.New()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (f *Funcs[T]) CopyConstruct(dst, src *T) error {
	if f.NoCopy {
		return ErrNotCopyable
	}
	if f.Copy == nil {
		*dst = *src
		return nil
	}
	v, err := f.Copy(*src)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (f *Funcs[T]) MoveConstruct(dst, src *T) error {
	if f.Move == nil {
		var zero T
		*dst, *src = *src, zero
		return nil
	}
	v, err := f.Move(src)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (f *Funcs[T]) CopyAssign(dst, src *T) error {
	if dst == src {
		return nil
	}
	var tmp T
	if err := f.CopyConstruct(&tmp, src); err != nil {
		return err
	}
	f.Destroy(dst)
	*dst = tmp
	return nil
}

func (f *Funcs[T]) MoveAssign(dst, src *T) error {
	if dst == src {
		return nil
	}
	var tmp T
	if err := f.MoveConstruct(&tmp, src); err != nil {
		return err
	}
	f.Destroy(dst)
	*dst = tmp
	return nil
}

func (f *Funcs[T]) Destroy(p *T) {
	if f.Release != nil {
		f.Release(p)
	}
	var zero T
	*p = zero
}

// MoveNeverFails reports whether moves were declared infallible. Without a
// Move hook moves are plain assignments and cannot fail.
func (f *Funcs[T]) MoveNeverFails() bool { return f.NoFailMove || f.Move == nil }

// CopyDisabled reports whether copying was disabled.
func (f *Funcs[T]) CopyDisabled() bool { return f.NoCopy }
