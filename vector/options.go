package vector

import (
	"io"
	"log/slog"

	"github.com/joshuapare/rawvec/vector/elem"
)

// discard is the logger used when Options.Logger is nil.
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures a Vector.
type Options[T any] struct {
	// Lifecycle creates, copies, relocates and destroys elements.
	// Its capabilities (elem.NoFailMover, elem.CopyDisabler) select the
	// relocation policy once, when the vector is created.
	// Default: elem.Value[T]
	Lifecycle elem.Lifecycle[T]

	// Logger receives Debug records for reallocations and rollbacks.
	// Default: discards everything
	Logger *slog.Logger
}

// DefaultOptions returns options for plain Go values.
func DefaultOptions[T any]() *Options[T] {
	return &Options[T]{
		Lifecycle: elem.Value[T]{},
		Logger:    discard,
	}
}

func (o *Options[T]) normalize() *Options[T] {
	out := DefaultOptions[T]()
	if o == nil {
		return out
	}
	if o.Lifecycle != nil {
		out.Lifecycle = o.Lifecycle
	}
	if o.Logger != nil {
		out.Logger = o.Logger
	}
	return out
}
