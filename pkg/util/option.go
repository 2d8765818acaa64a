package util

// Option mutates a configuration value of type T.
type Option[T any] interface {
	ApplyTo(target *T)
}

// FunctionalOption adapts a plain function to the Option interface.
type FunctionalOption[T any] func(target *T)

func (f FunctionalOption[T]) ApplyTo(target *T) {
	f(target)
}

// ApplyOptions applies the given options to target in order.
func ApplyOptions[T any](target *T, opts ...Option[T]) *T {
	for _, opt := range opts {
		opt.ApplyTo(target)
	}

	return target
}
