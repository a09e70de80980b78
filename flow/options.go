package flow

import "go.uber.org/zap"

// Option configures an Engine.
type Option func(*Engine)

// WithDataSource sets the data source.
func WithDataSource(ds DataSource) Option {
	return func(e *Engine) {
		e.resolver.dataSource = ds
	}
}

// WithDelegate sets the delegate. See Delegate for the capabilities it may
// implement.
func WithDelegate(d Delegate) Option {
	return func(e *Engine) {
		e.resolver.delegate = d
	}
}

// WithStickyHeaders makes section headers stick to the viewport top.
func WithStickyHeaders(sticky bool) Option {
	return func(e *Engine) {
		e.stickyEnabled = sticky
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPoolLimit bounds every reuse pool to limit views per reuse identifier.
// Zero, the default, keeps pools unbounded.
func WithPoolLimit(limit int) Option {
	return func(e *Engine) {
		e.poolLimit = limit
	}
}

// WithGlobalHeader places v above the first section.
func WithGlobalHeader(v HeaderFooterView) Option {
	return func(e *Engine) {
		e.header = v
	}
}

// WithGlobalFooter places v below the last section.
func WithGlobalFooter(v HeaderFooterView) Option {
	return func(e *Engine) {
		e.footer = v
	}
}
