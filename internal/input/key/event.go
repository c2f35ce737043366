package key

import (
	"fmt"
	"time"
)

// Event is a raw hardware key press as delivered by the input backend.
type Event struct {
	// Code is the virtual key code.
	Code Code

	// Char is the already-decoded character, if the backend has one.
	// When set it is used verbatim as the base of the token.
	Char string

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(code Code, mods Modifier) *Event {
	return &Event{
		Code:      code,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewCharEvent creates a key event carrying a decoded character.
func NewCharEvent(char string, mods Modifier) *Event {
	return &Event{
		Char:      char,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// At returns the event with its timestamp replaced.
func (e *Event) At(t time.Time) *Event {
	e.Timestamp = t
	return e
}

// PreventDefault marks the event so the backend skips its default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation marks the event so no further listeners see it.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// GoString implements fmt.GoStringer for debugging.
func (e *Event) GoString() string {
	return fmt.Sprintf("Event{Code: %s, Char: %q, Modifiers: %s}",
		e.Code.String(), e.Char, e.Modifiers.String())
}
