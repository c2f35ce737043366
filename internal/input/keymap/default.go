package keymap

// DefaultBindings returns the built-in editor bindings for DefaultState.
// Commands with several space-separated names run in order.
func DefaultBindings() []Binding {
	var bindings []Binding

	// Motion
	bindings = append(bindings, Commands(
		"home", "goLineStart",
		"end", "goLineEnd",
		"down", "goLineDown",
		"up", "goLineUp",
		"right", "goCharRight",
		"left", "goCharLeft",
		"pagedown", "goPageDown",
		"pageup", "goPageUp",
		"mod+end", "goDocEnd",
		"mod+down", "goLineDown",
		"mod+home", "goDocStart",
		"mod+left", "goGroupLeft",
		"mod+right", "goGroupRight",
		"mod+up", "goLineUp",
	)...)

	// Workspace
	bindings = append(bindings, Commands(
		"alt+left", "nextEditor",
		"alt+right", "prevEditor",
		"alt+.", "moveNext",
		"alt+,", "movePrev",
		"alt+enter", "ex",
	)...)

	// Selection
	bindings = append(bindings, Commands(
		"shift+left", "selectStart goCharLeft selectEnd",
		"shift+right", "selectStart goCharRight selectEnd",
		"shift+up", "selectStart goLineUp selectEnd",
		"shift+down", "selectStart goLineDown selectEnd",
		"shift+home", "selectStart goLineStart selectEnd",
		"shift+end", "selectStart goLineEnd selectEnd",
		"shift+pagedown", "selectStart goPageDown selectEnd",
		"shift+pageup", "selectStart goPageUp selectEnd",
		"alt+u", "redoSelection",
		"mod+a", "selectAll",
	)...)

	// Search
	bindings = append(bindings, Commands(
		"mod+f", "searchbar",
		"mod+g", "findNext",
	)...)

	// Editing
	bindings = append(bindings, Commands(
		"backspace", "delCharBefore",
		"del", "delCharAfter",
		"enter", "newline",
		"insert", "toggleOverwrite",
		"shift+backspace", "delCharBefore",
		"mod+s", "write",
		"mod+y", "redo",
		"mod+z", "undo",
		"mod+backspace", "delGroupBefore",
		"mod+d", "deleteLine",
		"mod+del", "delGroupAfter",
		"mod+u", "undoSelection",
		"mod+[", "indentLess",
		"mod+]", "indentMore",
		"shift+mod+f", "replace",
		"shift+mod+r", "replaceAll",
		"shift+mod+u", "redoSelection",
		"shift+mod+z", "redo",
		"tab", "defaultTab",
		"shift+tab", "indentAuto",
	)...)

	return bindings
}

// DefaultCommandNames returns every command name referenced by
// DefaultBindings, in first-use order and without duplicates.
func DefaultCommandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range DefaultBindings() {
		cmd, ok := b.Action.(Command)
		if !ok {
			continue
		}
		for _, name := range splitCommand(string(cmd)) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
