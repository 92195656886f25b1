package di

import (
	"io"
	"os"
)

// Output is the destination stream for encoded variables. It is a distinct
// type so the container can tell it apart from other writers.
type Output io.Writer

// Option is a function that configures the dependency injection container.
type Option func(*options)

// WithOutput overrides the destination the encoders write to. The default
// is standard output; logs always go to standard error.
func WithOutput(w io.Writer) Option {
	return func(opts *options) {
		opts.output = w
	}
}

// WithProviders adds constructor functions to the dependency injection container.
// Each provider should be a constructor function that returns one or more values.
// Providers can declare dependencies as function parameters, which will be
// automatically resolved by the container.
//
// Example:
//
//	WithProviders(
//	    func(encoder output.Encoder) *Handler { return NewHandler(encoder) },
//	)
func WithProviders(providers ...any) Option {
	return func(opts *options) {
		opts.providers = append(opts.providers, providers...)
	}
}

type options struct {
	output    io.Writer
	providers []any
}

// writer returns the configured output stream, defaulting to stdout.
func (o *options) writer() io.Writer {
	if o.output != nil {
		return o.output
	}
	return os.Stdout
}
