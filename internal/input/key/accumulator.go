package key

import "time"

// DefaultDelay is the chord window used when none is configured.
const DefaultDelay = 250 * time.Millisecond

// Accumulator groups tokens pressed within the chord window into a sequence.
// It is not safe for concurrent use; all calls must come from the input loop.
type Accumulator struct {
	delay    time.Duration
	last     time.Time
	sequence Sequence
}

// NewAccumulator creates an accumulator with the given chord window.
// A non-positive delay selects DefaultDelay.
func NewAccumulator(delay time.Duration) *Accumulator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Accumulator{
		delay:    delay,
		sequence: make(Sequence, 0, 4),
	}
}

// Delay returns the chord window.
func (a *Accumulator) Delay() time.Duration {
	return a.delay
}

// Accept adds a token pressed at now and returns a copy of the current
// sequence. An empty token changes nothing and yields an empty sequence.
func (a *Accumulator) Accept(tok Token, now time.Time) Sequence {
	if tok.IsZero() {
		return Sequence{}
	}

	if !a.last.IsZero() && now.Sub(a.last) < a.delay {
		a.sequence = append(a.sequence, tok)
	} else {
		a.sequence = append(a.sequence[:0], tok)
	}
	a.last = now

	return a.sequence.Clone()
}

// Reset forgets the last event time, so the next token always starts a
// fresh sequence regardless of elapsed time.
func (a *Accumulator) Reset() {
	a.last = time.Time{}
	a.sequence = a.sequence[:0]
}

// Pending returns a copy of the in-progress sequence.
func (a *Accumulator) Pending() Sequence {
	return a.sequence.Clone()
}
