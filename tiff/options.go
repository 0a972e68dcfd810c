package tiff

import "log/slog"

// Option configures a Page.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	progress func(done, total int)
	abort    func() bool
	strict   bool
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger that receives block warnings and page events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress sets a callback invoked after each block of a region read.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithAbort sets a function polled before each block of a region read.
// Returning true stops the read with ErrAborted.
func WithAbort(fn func() bool) Option {
	return func(o *options) {
		o.abort = fn
	}
}

// WithStrict makes truncated and corrupt blocks fatal instead of warnings.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}
