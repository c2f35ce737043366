package keymap

import (
	"io"
	"log/slog"
	"strings"
)

// Wildcard is the shortcut text that registers a state's fallback handler.
const Wildcard = "all"

// Handler reacts to a matched key sequence. Returning false declines the
// sequence so resolution keeps falling back; returning true consumes it.
type Handler func(sequence string) bool

// Invoker executes named commands.
type Invoker interface {
	Invoke(name string, args ...any) error
}

// Action is what a shortcut is bound to: a Handler or a Command.
type Action interface {
	bind(b *binder) Handler
}

func (h Handler) bind(*binder) Handler {
	return h
}

// binder turns actions into handlers.
type binder struct {
	invoker Invoker
	logger  *slog.Logger
}

func newBinder(invoker Invoker, logger *slog.Logger) binder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return binder{invoker: invoker, logger: logger}
}

// Command binds a shortcut to a named command. The command runs with no
// arguments and the sequence always counts as handled, even if the command
// fails.
type Command string

func (c Command) bind(b *binder) Handler {
	name := string(c)
	return func(sequence string) bool {
		if b.invoker == nil {
			b.logger.Warn("no command invoker", "command", name, "sequence", sequence)
			return true
		}
		if err := b.invoker.Invoke(name); err != nil {
			b.logger.Warn("command failed", "command", name, "sequence", sequence, "error", err)
		}
		return true
	}
}

func splitCommand(s string) []string {
	return strings.Fields(s)
}

// Binding pairs shortcut text with an action.
type Binding struct {
	// Keys is the shortcut text, e.g. "mod+s" or "g g".
	Keys string

	// Action runs when the keys are pressed.
	Action Action
}

// Bind creates a binding.
func Bind(keys string, action Action) Binding {
	return Binding{Keys: keys, Action: action}
}

// Commands builds bindings from shortcut/command-name pairs, preserving
// argument order: Commands("mod+s", "write", "mod+z", "undo").
func Commands(pairs ...string) []Binding {
	bindings := make([]Binding, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		bindings = append(bindings, Bind(pairs[i], Command(pairs[i+1])))
	}
	return bindings
}
