// Package input dispatches keyboard input to key bindings.
//
// The Dispatcher ties the pieces together. For each raw key event it:
//
//   - normalizes the event into a canonical token such as "ctrl+s"
//   - appends the token to the pending chord when it arrives within the
//     chord window, or starts a new chord otherwise
//   - offers the chord to the focused editing context's scoped keymap,
//     then to the global keymap
//   - on a miss, drops the oldest token and tries again
//
// A handled event has its default action prevented and its propagation
// stopped, and the chord starts over.
//
// # Usage
//
//	parser := key.NewParser(cfg.Platform, logger)
//	km := keymap.New(parser, commands, logger)
//	km.RegisterKeys(map[string][]keymap.Binding{
//		keymap.DefaultState: keymap.Commands("mod+s", "write"),
//	})
//
//	focus := input.NewFocus()
//	d := input.NewDispatcher(km, cfg, input.WithFocus(focus), input.WithLogger(logger))
//
//	for ev := range events {
//		if !d.HandleKeyEvent(ev) {
//			insertDefault(ev)
//		}
//	}
//
// Editing contexts bring their own scoped keymap (a keymap.Keymap or a
// keymap.Stack) through Focus.Open. Scoped keymaps are never merged into
// the global one.
package input
