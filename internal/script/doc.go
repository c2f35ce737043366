// Package script lets Lua files define key bindings and commands.
//
// Scripts see two modules:
//
//	keys.register{
//		default = {
//			["mod+s"] = "write",
//			["g g"] = function(seq) print("top") end,
//		},
//	}
//	keys.normalize("shift+mod+f")   --> "ctrl+shift+f"
//	keys.state()                    --> active state name
//	keys.state("vim")               --> switch state
//	keys.states()                   --> registered state names
//
//	command.register("hello", function(...) print("hi", ...) end)
//	command.invoke("hello", 1, 2)   --> true, or false plus a message
//	command.list()                  --> registered command names
//
// A Lua key handler that returns false declines the sequence so
// dispatch keeps falling back; any other result, including none, counts
// as handled. A handler that raises an error is logged and counts as
// handled.
//
// Only the base, table, string and math libraries are available, and
// print writes to the engine's logger.
//
// An Engine is bound to a single goroutine. Run scripts and dispatch keys
// from the same input loop.
package script
