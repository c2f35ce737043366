package app

import (
	"github.com/dshills/keychord/internal/input/keymap"
)

// appBindings are bound in the editor context and work in every state.
func appBindings() []keymap.Binding {
	return keymap.Commands(
		"ctrl+q", "quit",
		"ctrl+c", "quit",
		"ctrl+r", "reload",
		"ctrl+x ctrl+s", "write",
	)
}

// registerCommands installs the built-in commands. Editor commands named
// by the default keymap have no editor to act on, so they only report
// themselves on the status line.
func (app *Application) registerCommands() error {
	builtin := map[string]func(args ...any) error{
		"quit": func(...any) error {
			app.requestQuit()
			return nil
		},
		"reload": func(...any) error {
			app.reloadAll()
			return nil
		},
	}
	for name, fn := range builtin {
		if err := app.commands.Register(name, fn); err != nil {
			return err
		}
	}

	for _, name := range keymap.DefaultCommandNames() {
		if app.commands.Has(name) {
			continue
		}
		if err := app.commands.Register(name, func(...any) error { return nil }); err != nil {
			return err
		}
	}
	return nil
}

// commandObserved records the commands run by the current dispatch for
// the status line.
func (app *Application) commandObserved(name string, _ error) {
	if app.lastCommand == "" {
		app.lastCommand = name
	} else {
		app.lastCommand += " " + name
	}
}
