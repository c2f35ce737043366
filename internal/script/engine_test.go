package script

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/keychord/internal/command"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

func newTestEngine(t *testing.T) (*Engine, *keymap.Keymap, *command.Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := command.NewRegistry(logger)
	km := keymap.New(key.NewParser("linux", nil), reg, logger)
	e := NewEngine(km, reg, logger)
	t.Cleanup(func() { e.Close() })
	return e, km, reg, &buf
}

func TestKeysRegisterCommand(t *testing.T) {
	e, km, reg, _ := newTestEngine(t)
	var calls int
	_ = reg.Register("write", func(...any) error { calls++; return nil })

	err := e.DoString(`keys.register{ default = { ["mod+s"] = "write" } }`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if !km.Handle("ctrl+s", "") {
		t.Fatal("ctrl+s should be bound")
	}
	if calls != 1 {
		t.Errorf("write ran %d times, want 1", calls)
	}
}

func TestKeysRegisterFunction(t *testing.T) {
	e, km, _, _ := newTestEngine(t)

	err := e.DoString(`
seen = {}
keys.register{
	default = {
		["g g"] = function(seq) table.insert(seen, seq) end,
		["x"] = function(seq) return false end,
	},
}`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if !km.Handle("g g", "") {
		t.Error("a handler returning nothing counts as handled")
	}
	if km.Handle("x", "") {
		t.Error("a handler returning false declines")
	}
	if err := e.DoString(`assert(seen[1] == "g g", "handler saw " .. tostring(seen[1]))`); err != nil {
		t.Error(err)
	}
}

func TestKeysRegisterHandlerError(t *testing.T) {
	e, km, _, buf := newTestEngine(t)
	_ = e.DoString(`keys.register{ default = { y = function() error("broken") end } }`)

	if !km.Handle("y", "") {
		t.Error("a failing handler still counts as handled")
	}
	if !strings.Contains(buf.String(), "lua key handler failed") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestKeysRegisterInvalid(t *testing.T) {
	e, km, _, _ := newTestEngine(t)

	err := e.DoString(`
failed = keys.register{ default = { ["ctrl+"] = "broken", z = "ok" } }
assert(failed == 1, "failed = " .. failed)`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if _, ok := km.Lookup("z", ""); !ok {
		t.Error("valid entries should register")
	}

	err = e.DoString(`keys.register{ default = { a = 42 } }`)
	if !errors.Is(err, ErrScript) {
		t.Errorf("DoString() error = %v, want ErrScript", err)
	}
}

func TestKeysStateAndNormalize(t *testing.T) {
	e, km, _, _ := newTestEngine(t)

	err := e.DoString(`
assert(keys.normalize("shift+mod+f") == "ctrl+shift+f")
assert(keys.state() == "default")
assert(keys.state("vim") == "vim")
keys.register{ vim = { x = "cut" } }
local states = keys.states()
assert(#states == 1 and states[1] == "vim")`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if km.State() != "vim" {
		t.Errorf("State() = %q, want vim", km.State())
	}
}

func TestCommandRegisterAndInvoke(t *testing.T) {
	e, _, reg, buf := newTestEngine(t)

	err := e.DoString(`
command.register("greet", function(name, n)
	print("hello", name, n)
	if name == "bad" then error("nope") end
end)`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	if err := reg.Invoke("greet", "world", 2); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !strings.Contains(buf.String(), `hello\tworld\t2`) {
		t.Errorf("print output missing, got %q", buf.String())
	}
	if err := reg.Invoke("greet", "bad"); !errors.Is(err, ErrScript) {
		t.Errorf("Invoke() error = %v, want ErrScript", err)
	}

	err = e.DoString(`
local ok, msg = command.invoke("missing")
assert(ok == false and string.find(msg, "unknown command"))
assert(command.invoke("greet", "lua") == true)
local names = command.list()
assert(names[1] == "greet")`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
}

func TestSandbox(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	for _, code := range []string{
		`io.write("x")`,
		`os.exit(1)`,
		`dofile("x.lua")`,
		`load("return 1")`,
	} {
		if err := e.DoString(code); !errors.Is(err, ErrScript) {
			t.Errorf("DoString(%q) error = %v, want ErrScript", code, err)
		}
	}
}

func TestDoFile(t *testing.T) {
	e, km, _, _ := newTestEngine(t)
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`keys.register{ default = { ["mod+q"] = "quit" } }`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if _, ok := km.Lookup("ctrl+q", ""); !ok {
		t.Error("ctrl+q should be bound")
	}

	if err := e.DoFile(filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, ErrScript) {
		t.Errorf("DoFile(missing) error = %v", err)
	}

	e.Close()
	if err := e.DoString("x = 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("DoString() after Close error = %v", err)
	}
}
