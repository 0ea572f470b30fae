// Package options implements the generic functional option pattern used by
// the encoder and archive constructors.
package options

import "errors"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is a functional option backed by a plain function.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order. Nil options are skipped. Every
// option runs even if an earlier one fails, and all failures are returned
// together so a caller sees the whole list of configuration problems at once.
func Apply[T any](target T, opts ...Option[T]) error {
	var errList []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
