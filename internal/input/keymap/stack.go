package keymap

import (
	"log/slog"

	"github.com/dshills/keychord/internal/input/key"
)

// Layer is one named table in a Stack.
type Layer struct {
	Name     string
	handlers map[string]Handler
}

// Stack is a scoped override made of layers, typically one per editor
// add-on. Layers are searched newest first; a handler that returns false
// passes the sequence to the next layer down.
type Stack struct {
	binder

	parser *key.Parser
	layers []*Layer
	state  string
}

// NewStack creates an empty stack that reports state as its active state.
func NewStack(parser *key.Parser, invoker Invoker, logger *slog.Logger, state string) *Stack {
	if state == "" {
		state = DefaultState
	}
	return &Stack{
		binder: newBinder(invoker, logger),
		parser: parser,
		state:  state,
	}
}

// Push adds a layer on top of the stack.
// Bindings that fail to parse are logged and skipped.
func (s *Stack) Push(name string, bindings ...Binding) *Layer {
	layer := &Layer{Name: name, handlers: make(map[string]Handler, len(bindings))}
	for _, b := range bindings {
		if b.Action == nil {
			s.logger.Warn("skipping binding", "layer", name, "shortcut", b.Keys, "error", ErrNoAction)
			continue
		}
		seq, err := s.parser.ParseSequence(b.Keys)
		if err != nil || seq.IsEmpty() {
			continue
		}
		layer.handlers[seq.String()] = b.Action.bind(&s.binder)
	}
	s.layers = append(s.layers, layer)
	return layer
}

// Remove drops the topmost layer with the given name.
// It reports whether a layer was removed.
func (s *Stack) Remove(name string) bool {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].Name == name {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Handle offers the sequence to each layer, newest first. The state
// argument is ignored; layers are not stateful.
func (s *Stack) Handle(sequence, _ string) bool {
	for i := len(s.layers) - 1; i >= 0; i-- {
		h, ok := s.layers[i].handlers[sequence]
		if !ok {
			continue
		}
		if h(sequence) {
			return true
		}
	}
	return false
}

// State returns the state name the stack reports to the global keymap.
func (s *Stack) State() string {
	return s.state
}

// SetState changes the reported state.
func (s *Stack) SetState(name string) {
	s.state = name
}
