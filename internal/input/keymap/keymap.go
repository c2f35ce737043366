package keymap

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dshills/keychord/internal/input/key"
)

// DefaultState is the state a new Keymap starts in.
const DefaultState = "default"

// ErrNoAction is returned when a binding has no action.
var ErrNoAction = errors.New("binding has no action")

// Scope resolves key sequences under its own policy.
// Handle returns false when nothing claimed the sequence.
type Scope interface {
	Handle(sequence, state string) bool
	State() string
}

// Entry describes a registered shortcut.
type Entry struct {
	// Sequence is the canonical sequence string.
	Sequence string

	// Keys is the shortcut text as registered.
	Keys string

	// Action is the bound action.
	Action Action
}

// State is a named table of sequence handlers.
type State struct {
	Name string

	handlers map[string]Handler
	entries  map[string]Entry
	wildcard Handler
}

func newState(name string) *State {
	return &State{
		Name:     name,
		handlers: make(map[string]Handler),
		entries:  make(map[string]Entry),
	}
}

// Lookup returns the handler for a sequence: the exact entry if present,
// otherwise the wildcard.
func (s *State) Lookup(sequence string) (Handler, bool) {
	if h, ok := s.handlers[sequence]; ok {
		return h, true
	}
	if s.wildcard != nil {
		return s.wildcard, true
	}
	return nil, false
}

// Entries returns the registered shortcuts sorted by sequence.
func (s *State) Entries() []Entry {
	result := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence < result[j].Sequence
	})
	return result
}

// Keymap maps state names to states and tracks the active state.
// It is not safe for concurrent use; register and dispatch from the input
// loop.
type Keymap struct {
	binder

	parser *key.Parser
	states map[string]*State
	state  string
}

// New creates an empty keymap whose active state is DefaultState.
// Command bindings are executed through invoker.
func New(parser *key.Parser, invoker Invoker, logger *slog.Logger) *Keymap {
	return &Keymap{
		binder: newBinder(invoker, logger),
		parser: parser,
		states: make(map[string]*State),
		state:  DefaultState,
	}
}

// Normalize returns the canonical sequence string for shortcut text.
func (k *Keymap) Normalize(text string) string {
	return k.parser.NormalizeShortcut(text)
}

// RegisterState adds bindings to a state, creating it if needed.
// Re-registering a sequence replaces the previous handler. Bindings whose
// shortcut fails to parse are skipped; the returned error joins their
// errors and the remaining bindings are still registered.
func (k *Keymap) RegisterState(state string, bindings ...Binding) error {
	st, ok := k.states[state]
	if !ok {
		st = newState(state)
		k.states[state] = st
	}

	var errs []error
	for _, b := range bindings {
		if b.Action == nil {
			k.logger.Warn("skipping binding", "state", state, "shortcut", b.Keys, "error", ErrNoAction)
			errs = append(errs, fmt.Errorf("%s %q: %w", state, b.Keys, ErrNoAction))
			continue
		}

		seq, err := k.parser.ParseSequence(b.Keys)
		if err != nil || seq.IsEmpty() {
			if err == nil {
				err = key.ErrEmptySpec
			}
			errs = append(errs, fmt.Errorf("%s: %w", state, err))
			continue
		}

		sequence := seq.String()
		h := b.Action.bind(&k.binder)
		if sequence == Wildcard {
			st.wildcard = h
		} else {
			st.handlers[sequence] = h
		}
		st.entries[sequence] = Entry{Sequence: sequence, Keys: b.Keys, Action: b.Action}
	}

	return errors.Join(errs...)
}

// RegisterKeys registers bindings for several states at once. It can be
// called any number of times; registrations accumulate.
func (k *Keymap) RegisterKeys(states map[string][]Binding) error {
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := k.RegisterState(name, states[name]...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Handle runs the handler for sequence in the given state, or in the
// active state when state is empty. It returns false when there is no
// handler or the handler declined.
func (k *Keymap) Handle(sequence, state string) bool {
	h, ok := k.Lookup(sequence, state)
	if !ok {
		return false
	}
	return h(sequence)
}

// Lookup finds the handler Handle would run.
func (k *Keymap) Lookup(sequence, state string) (Handler, bool) {
	if state == "" {
		state = k.state
	}
	st, ok := k.states[state]
	if !ok {
		return nil, false
	}
	return st.Lookup(sequence)
}

// State returns the active state name.
func (k *Keymap) State() string {
	return k.state
}

// SetState changes the active state. The state does not need to exist yet.
func (k *Keymap) SetState(name string) {
	if name == "" {
		name = DefaultState
	}
	k.state = name
}

// HasState reports whether any binding was registered for the state.
func (k *Keymap) HasState(name string) bool {
	_, ok := k.states[name]
	return ok
}

// States returns the registered state names, sorted.
func (k *Keymap) States() []string {
	names := make([]string, 0, len(k.states))
	for name := range k.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the shortcuts registered in a state.
func (k *Keymap) Entries(state string) []Entry {
	st, ok := k.states[state]
	if !ok {
		return nil
	}
	return st.Entries()
}
