package admin

import (
	"complaints/internal/log"
)

type options struct {
	rejectDuplicates bool
	events           EventPublisher
	logger           *log.Logger
}

// Option configures a Session and its components.
type Option func(*options)

// WithRejectDuplicates makes AddCategory refuse labels already registered.
func WithRejectDuplicates(reject bool) Option {
	return func(o *options) { o.rejectDuplicates = reject }
}

// WithEvents publishes a category event after every successful add.
func WithEvents(p EventPublisher) Option {
	return func(o *options) { o.events = p }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default().WithComponent(log.ComponentAdmin)
	}
	return o
}
