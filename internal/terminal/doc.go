// Package terminal connects a tcell screen to the key dispatcher.
//
// ConvertKey maps tcell key events onto raw key events. Terminal runs the
// event loop, delivering keys to a KeyHandler and running callbacks
// posted from other goroutines on the loop goroutine, so keymap changes
// never race with dispatch. StatusLine draws the active state, the
// pending chord and the last dispatch result.
package terminal
