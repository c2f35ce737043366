package command

import "errors"

// Command errors.
var (
	// ErrUnknownCommand indicates no command is registered under the name.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrPanic indicates the command panicked.
	ErrPanic = errors.New("command: command panic")

	// ErrEmptyName indicates an empty command name.
	ErrEmptyName = errors.New("command: empty name")
)
