package command

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Func is a command implementation.
type Func func(args ...any) error

// Invoker executes commands by name.
type Invoker interface {
	Invoke(name string, args ...any) error
}

// Observer is notified after each command runs.
type Observer func(name string, err error)

// Registry maps command names to implementations.
// It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]Func
	observers []Observer
	logger    *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		commands: make(map[string]Func),
		logger:   logger,
	}
}

// Register adds or replaces a command.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("command: name %q contains whitespace", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[name] = fn
	return nil
}

// Unregister removes a command.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, name)
}

// Has returns true if a command is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[name]
	return ok
}

// List returns all registered command names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Observe adds an observer called after every command.
func (r *Registry) Observe(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Invoke runs the named command. A name made of several words runs each
// word in order with the same arguments and stops at the first error.
func (r *Registry) Invoke(name string, args ...any) error {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ErrEmptyName
	}
	for _, word := range words {
		if err := r.invokeOne(word, args); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) invokeOne(name string, args []any) error {
	r.mu.RLock()
	fn, ok := r.commands[name]
	observers := r.observers
	r.mu.RUnlock()

	var err error
	if !ok {
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	} else {
		err = call(name, fn, args)
	}

	if err != nil {
		r.logger.Debug("command error", "command", name, "error", err)
	}
	for _, obs := range observers {
		obs(name, err)
	}
	return err
}

func call(name string, fn Func, args []any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: %v", ErrPanic, name, p)
		}
	}()
	return fn(args...)
}
