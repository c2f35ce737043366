// Package key provides key event types, normalization and shortcut parsing
// for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: a hardware virtual key code
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a raw key press as delivered by the backend
//   - Token: the canonical string for one key press, e.g. "ctrl+shift+f"
//   - Sequence: tokens pressed within the chord window, e.g. "g g"
//
// # Canonical Tokens
//
// Modifiers always appear in the fixed order ctrl, alt, shift, meta,
// followed by the base character. When shift turns a key into another
// glyph ("1" becomes "!"), the glyph is used and shift is dropped.
//
// # Shortcut Specifications
//
// Shortcuts are written as space-separated steps, each with optional
// modifiers: "mod+s", "shift+mod+f", "ctrl+k ctrl+s". The "mod" placeholder
// stands for meta on Apple platforms and ctrl elsewhere.
//
// # Chords
//
// The Accumulator groups tokens whose presses fall within the chord window
// (250ms by default) into one Sequence.
package key
