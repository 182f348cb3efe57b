package queue

import (
	"context"
	"time"
)

type Queue interface {
	Push(context.Context, string, string) error
	Pop(context.Context, string) (string, error)
	PopAll(context.Context, string) ([]string, error)
}

type options struct {
	maxLength int64
	ttl       time.Duration
}

type Option func(*options)

// WithMaxLength keeps at most n of the most recently pushed elements per
// group. Zero or less means unbounded.
func WithMaxLength(n int64) Option {
	return func(o *options) {
		o.maxLength = n
	}
}

// WithTTL sets the expiration of a group, refreshed on every push. It only
// applies to stores that support expiration.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		ttl: 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
