package key

import (
	"testing"
)

func TestSequenceString(t *testing.T) {
	tests := []struct {
		seq  Sequence
		want string
	}{
		{nil, ""},
		{NewSequence("g"), "g"},
		{NewSequence("g", "g"), "g g"},
		{NewSequence("ctrl+k", "ctrl+s"), "ctrl+k ctrl+s"},
	}

	for _, tt := range tests {
		if got := tt.seq.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSequenceTailDropsOldest(t *testing.T) {
	seq := NewSequence("a", "b", "c")

	tail := seq.Tail(1)
	if got := tail.String(); got != "b c" {
		t.Errorf("Tail(1) = %q, want %q", got, "b c")
	}
	if got := seq.Tail(3); !got.IsEmpty() {
		t.Errorf("Tail(3) = %q, want empty", got)
	}
	if got := seq.Tail(10); !got.IsEmpty() {
		t.Errorf("Tail(10) = %q, want empty", got)
	}

	// Tail must not alias the original
	tail[0] = "x"
	if seq[1] != "b" {
		t.Error("Tail() should return a copy")
	}
}

func TestSequenceCloneAndEquals(t *testing.T) {
	seq := NewSequence("g", "g")
	clone := seq.Clone()
	if !clone.Equals(seq) {
		t.Error("Clone() should equal original")
	}

	clone[1] = "h"
	if seq.Equals(clone) {
		t.Error("modifying clone should not affect original")
	}
	if seq.Last() != "g" {
		t.Errorf("Last() = %q, want %q", seq.Last(), "g")
	}
	if Sequence(nil).Last() != "" {
		t.Error("Last() on empty sequence should be empty")
	}
}
