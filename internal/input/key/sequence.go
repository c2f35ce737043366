package key

import (
	"strings"
)

// Sequence is an ordered list of tokens forming a chord.
// Examples: "g g", "ctrl+k ctrl+s"
type Sequence []Token

// NewSequence creates a sequence from the given tokens.
func NewSequence(tokens ...Token) Sequence {
	seq := make(Sequence, len(tokens))
	copy(seq, tokens)
	return seq
}

// Len returns the number of tokens in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no tokens.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Last returns the most recent token, or an empty token.
func (s Sequence) Last() Token {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

// String joins the tokens with a single space.
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	return NewSequence(s...)
}

// Tail returns a new sequence without the first n tokens.
func (s Sequence) Tail(n int) Sequence {
	if n >= len(s) {
		return Sequence{}
	}
	if n < 0 {
		n = 0
	}
	return NewSequence(s[n:]...)
}

// Equals returns true if two sequences are identical.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
