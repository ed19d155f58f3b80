package sequence

import "context"

// Generator returns the next value of a named counter.
type Generator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, name string) (int64, error)

func (f GeneratorFunc) Next(ctx context.Context, name string) (int64, error) {
	return f(ctx, name)
}
