package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModCtrl | ModAlt | ModShift | ModMeta, ModMeta, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModCtrl).With(ModAlt)
	if !mod.Has(ModCtrl) || !mod.Has(ModAlt) {
		t.Error("With() should accumulate modifiers")
	}

	mod = mod.Without(ModAlt)
	if mod.Has(ModAlt) {
		t.Error("Without(ModAlt) should remove Alt")
	}
	if !mod.Has(ModCtrl) || mod.HasShift() {
		t.Error("Without(ModAlt) should keep Ctrl")
	}
	if ModNone.IsEmpty() != true || mod.IsEmpty() {
		t.Error("IsEmpty() mismatch")
	}
}

func TestModifierStringCanonicalOrder(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "ctrl"},
		{ModMeta | ModCtrl, "ctrl+meta"},
		{ModShift | ModAlt, "alt+shift"},
		{ModMeta | ModShift | ModAlt | ModCtrl, "ctrl+alt+shift+meta"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModCtrl},
		{"Control", ModCtrl},
		{"alt", ModAlt},
		{"option", ModAlt},
		{"shift", ModShift},
		{"meta", ModMeta},
		{"command", ModMeta},
		{"CMD", ModMeta},
		{"mod", ModNone},
		{"hyper", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
