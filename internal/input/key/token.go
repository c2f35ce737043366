package key

// Token is the canonical string form of a single key press, such as
// "ctrl+alt+f1" or "g". Modifiers always appear in the order ctrl, alt,
// shift, meta, so equal key combinations produce equal tokens.
type Token string

// String returns the token text.
func (t Token) String() string {
	return string(t)
}

// IsZero reports whether the token is empty.
func (t Token) IsZero() bool {
	return t == ""
}

// Stroke is a structured single key press: modifiers plus a base character.
type Stroke struct {
	Mods Modifier
	Base string
}

// Token renders the stroke in canonical token form.
func (s Stroke) Token() Token {
	if s.Base == "" {
		return ""
	}
	return Token(s.Mods.prefix() + s.Base)
}
