package keymap

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dshills/keychord/internal/input/key"
)

type recordingInvoker struct {
	calls []string
	err   error
}

func (r *recordingInvoker) Invoke(name string, args ...any) error {
	r.calls = append(r.calls, name)
	return r.err
}

func newTestKeymap(inv Invoker) *Keymap {
	return New(key.NewParser("linux", nil), inv, nil)
}

func TestKeymapHandleCommand(t *testing.T) {
	inv := &recordingInvoker{}
	km := newTestKeymap(inv)

	if err := km.RegisterKeys(map[string][]Binding{
		DefaultState: Commands("mod+s", "write", "g g", "goDocStart"),
	}); err != nil {
		t.Fatalf("RegisterKeys() error = %v", err)
	}

	if !km.Handle("ctrl+s", "") {
		t.Error("Handle(ctrl+s) should be handled")
	}
	if !km.Handle("g g", DefaultState) {
		t.Error("Handle(g g) should be handled")
	}
	if km.Handle("ctrl+x", "") {
		t.Error("Handle(ctrl+x) should not be handled")
	}

	want := []string{"write", "goDocStart"}
	if strings.Join(inv.calls, ",") != strings.Join(want, ",") {
		t.Errorf("invoked %v, want %v", inv.calls, want)
	}
}

func TestKeymapCommandFailureStillHandled(t *testing.T) {
	var buf bytes.Buffer
	inv := &recordingInvoker{err: errors.New("boom")}
	km := New(key.NewParser("linux", nil), inv, slog.New(slog.NewTextHandler(&buf, nil)))
	_ = km.RegisterState(DefaultState, Bind("mod+s", Command("write")))

	if !km.Handle("ctrl+s", "") {
		t.Error("a failing command should still count as handled")
	}
	if !strings.Contains(buf.String(), "command failed") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestKeymapHandlerDecline(t *testing.T) {
	km := newTestKeymap(nil)
	var got string
	_ = km.RegisterState(DefaultState,
		Bind("x", Handler(func(seq string) bool { got = seq; return false })),
	)

	if km.Handle("x", "") {
		t.Error("a declining handler should report unhandled")
	}
	if got != "x" {
		t.Errorf("handler received %q, want %q", got, "x")
	}
}

func TestKeymapWildcard(t *testing.T) {
	km := newTestKeymap(nil)
	var exact, fallback []string
	_ = km.RegisterState("insert",
		Bind("esc", Handler(func(seq string) bool { exact = append(exact, seq); return true })),
		Bind(Wildcard, Handler(func(seq string) bool { fallback = append(fallback, seq); return true })),
	)

	if !km.Handle("esc", "insert") || !km.Handle("q", "insert") {
		t.Fatal("both sequences should be handled in the insert state")
	}
	if len(exact) != 1 || exact[0] != "esc" {
		t.Errorf("exact = %v", exact)
	}
	if len(fallback) != 1 || fallback[0] != "q" {
		t.Errorf("fallback = %v, want [q]", fallback)
	}
	if km.Handle("q", DefaultState) {
		t.Error("the wildcard should not leak into other states")
	}
}

func TestKeymapUnknownState(t *testing.T) {
	km := newTestKeymap(nil)
	_ = km.RegisterState(DefaultState, Bind("x", Handler(func(string) bool { return true })))

	km.SetState("vim")
	if km.State() != "vim" {
		t.Fatalf("State() = %q", km.State())
	}
	if km.Handle("x", "") {
		t.Error("an unregistered active state should handle nothing")
	}
	if !km.Handle("x", DefaultState) {
		t.Error("an explicit state should override the active state")
	}
	if km.HasState("vim") {
		t.Error("HasState(vim) should be false")
	}
	km.SetState("")
	if km.State() != DefaultState {
		t.Errorf("SetState(\"\") should restore %q", DefaultState)
	}
}

func TestKeymapLastRegistrationWins(t *testing.T) {
	inv := &recordingInvoker{}
	km := newTestKeymap(inv)
	_ = km.RegisterState(DefaultState, Commands("mod+shift+f", "first")...)
	_ = km.RegisterState(DefaultState, Commands("shift+mod+f", "second")...)

	km.Handle("ctrl+shift+f", "")
	if len(inv.calls) != 1 || inv.calls[0] != "second" {
		t.Errorf("invoked %v, want [second]", inv.calls)
	}
	entries := km.Entries(DefaultState)
	if len(entries) != 1 || entries[0].Keys != "shift+mod+f" {
		t.Errorf("Entries() = %+v", entries)
	}
}

func TestKeymapInvalidEntrySkipped(t *testing.T) {
	km := newTestKeymap(nil)
	err := km.RegisterState(DefaultState,
		Bind("ctrl+ x", Command("broken")),
		Bind("y", Command("ok")),
		Bind("z", nil),
	)
	if err == nil {
		t.Fatal("RegisterState() should report the invalid entries")
	}
	if !errors.Is(err, key.ErrNoBase) || !errors.Is(err, ErrNoAction) {
		t.Errorf("error %v should wrap ErrNoBase and ErrNoAction", err)
	}
	if _, ok := km.Lookup("x", ""); ok {
		t.Error("no part of an invalid shortcut should be registered")
	}
	if _, ok := km.Lookup("y", ""); !ok {
		t.Error("valid entries should still register")
	}
}

func TestKeymapStates(t *testing.T) {
	km := newTestKeymap(nil)
	_ = km.RegisterKeys(map[string][]Binding{
		"vim":        Commands("g g", "goDocStart"),
		DefaultState: Commands("mod+s", "write"),
	})
	got := km.States()
	if len(got) != 2 || got[0] != DefaultState || got[1] != "vim" {
		t.Errorf("States() = %v", got)
	}
	if km.Entries("missing") != nil {
		t.Error("Entries() for a missing state should be nil")
	}
	if km.Normalize("shift+mod+f") != "ctrl+shift+f" {
		t.Errorf("Normalize() = %q", km.Normalize("shift+mod+f"))
	}
}

func TestDefaultBindingsRegister(t *testing.T) {
	inv := &recordingInvoker{}
	km := New(key.NewParser("darwin", nil), inv, nil)
	if err := km.RegisterState(DefaultState, DefaultBindings()...); err != nil {
		t.Fatalf("default bindings should all parse: %v", err)
	}

	for _, seq := range []string{"meta+s", "ins", "meta+]", "shift+meta+z", "shift+tab", "alt+."} {
		if !km.Handle(seq, "") {
			t.Errorf("Handle(%q) should be handled", seq)
		}
	}

	names := DefaultCommandNames()
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate command name %q", n)
		}
		seen[n] = true
	}
	if !seen["selectStart"] || !seen["write"] {
		t.Errorf("DefaultCommandNames() = %v", names)
	}
}
