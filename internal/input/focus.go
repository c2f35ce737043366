package input

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keychord/internal/input/keymap"
)

// ErrUnknownContext is returned for an editing context that was never
// opened or is already closed.
var ErrUnknownContext = errors.New("input: unknown editing context")

// FocusProvider returns the scoped keymap of the active editing context,
// or nil when no context is focused.
type FocusProvider interface {
	Current() keymap.Scope
}

// Focus tracks open editing contexts and which one is active.
type Focus struct {
	mu       sync.RWMutex
	contexts map[uuid.UUID]keymap.Scope
	active   uuid.UUID
}

// NewFocus creates an empty focus tracker.
func NewFocus() *Focus {
	return &Focus{
		contexts: make(map[uuid.UUID]keymap.Scope),
	}
}

// Open registers an editing context with its scoped keymap and makes it
// active.
func (f *Focus) Open(scope keymap.Scope) uuid.UUID {
	id := uuid.New()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.contexts[id] = scope
	f.active = id
	return id
}

// Activate makes an open context the active one.
func (f *Focus) Activate(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.contexts[id]; !ok {
		return ErrUnknownContext
	}
	f.active = id
	return nil
}

// Blur leaves every context open but none active.
func (f *Focus) Blur() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = uuid.Nil
}

// Close forgets a context. Closing the active context blurs focus.
func (f *Focus) Close(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.contexts[id]; !ok {
		return ErrUnknownContext
	}
	delete(f.contexts, id)
	if f.active == id {
		f.active = uuid.Nil
	}
	return nil
}

// ActiveID returns the active context, or uuid.Nil.
func (f *Focus) ActiveID() uuid.UUID {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active
}

// Current returns the active context's scoped keymap.
func (f *Focus) Current() keymap.Scope {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.active == uuid.Nil {
		return nil
	}
	return f.contexts[f.active]
}

// Len returns the number of open contexts.
func (f *Focus) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.contexts)
}
