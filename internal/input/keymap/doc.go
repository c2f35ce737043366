// Package keymap provides key binding management for the input system.
//
// A Keymap holds named states, each mapping canonical key sequences to
// handlers, plus the name of the active state. One global Keymap is built at
// startup; editing contexts may own scoped Keymaps (or a layered Stack)
// that are consulted before the global one.
//
// # Key Concepts
//
// State: a named table such as "default", mapping sequences like
// "ctrl+s" or "g g" to handlers. The special shortcut "all" registers a
// wildcard handler that receives any sequence without an exact entry.
//
// Handler: a function that returns false to decline a sequence. A Command
// binding wraps a named command and always handles the sequence.
//
// Scope: anything that can handle a sequence under its own policy. Both
// Keymap and Stack implement it.
//
// # Usage
//
//	km := keymap.New(parser, commands, logger)
//	km.RegisterKeys(map[string][]keymap.Binding{
//	    "default": {
//	        keymap.Bind("mod+s", keymap.Command("write")),
//	        keymap.Bind("g g", keymap.Handler(func(seq string) bool {
//	            return false
//	        })),
//	    },
//	})
//
//	if km.Handle("ctrl+s", "") {
//	    // consumed
//	}
package keymap
