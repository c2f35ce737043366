package key

// Normalizer turns raw key events into canonical tokens.
type Normalizer struct{}

// NewNormalizer creates a key event normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Stroke resolves an event to its structured stroke.
// Returns false for modifier-only presses and unresolvable codes.
func (n *Normalizer) Stroke(ev *Event) (Stroke, bool) {
	if ev == nil {
		return Stroke{}, false
	}

	mods := ev.Modifiers
	base := ev.Char

	if base == "" {
		if ev.Code.IsModifier() {
			return Stroke{}, false
		}
		if glyph, ok := ev.Code.Shifted(); ok && mods.HasShift() {
			// The glyph already encodes shift.
			base = glyph
			mods = mods.Without(ModShift)
		} else {
			base = ev.Code.Name()
		}
	}

	if base == "" {
		return Stroke{}, false
	}
	return Stroke{Mods: mods, Base: base}, true
}

// Normalize returns the canonical token for an event.
func (n *Normalizer) Normalize(ev *Event) (Token, bool) {
	s, ok := n.Stroke(ev)
	if !ok {
		return "", false
	}
	return s.Token(), true
}
