package flow

import "errors"

var (
	// ErrReentrantPass is returned when a reload or visibility pass is
	// requested while another one is still running, typically from inside a
	// data source or delegate callback.
	ErrReentrantPass = errors.New("flow: pass requested while another pass is running")
	// ErrNoViewport is returned by passes of an engine created without a
	// viewport.
	ErrNoViewport = errors.New("flow: engine has no viewport")
)
