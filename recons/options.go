package recons

import (
	"go.uber.org/zap"
)

// DefaultWarmup is the default number of filter passes over the first frame
const DefaultWarmup = 300

// Options are Reconstructor options
type Options struct {
	// Logger logs reconstruction progress
	Logger *zap.Logger
	// Warmup is number of filter passes over the first frame
	Warmup int
}

// Option configures Reconstructor
type Option func(*Options)

// WithLogger sets Reconstructor logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithWarmup sets number of filter passes over the first frame.
// Zero disables the warm-up.
func WithWarmup(n int) Option {
	return func(o *Options) {
		o.Warmup = n
	}
}
