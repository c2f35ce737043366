package script

import "errors"

// Errors for script execution.
var (
	// ErrScript wraps errors raised by Lua code.
	ErrScript = errors.New("script: lua error")

	// ErrClosed is returned when operating on a closed engine.
	ErrClosed = errors.New("script: engine is closed")
)
