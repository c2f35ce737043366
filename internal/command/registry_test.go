package command

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistryInvoke(t *testing.T) {
	r := NewRegistry(nil)
	var got []any
	if err := r.Register("write", func(args ...any) error {
		got = args
		return nil
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Invoke("write", "a.txt", 3); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a.txt" || got[1] != 3 {
		t.Errorf("args = %v", got)
	}
}

func TestRegistryInvokeSequence(t *testing.T) {
	r := NewRegistry(nil)
	var order []string
	for _, name := range []string{"selectStart", "goCharLeft", "selectEnd"} {
		name := name
		_ = r.Register(name, func(...any) error {
			order = append(order, name)
			return nil
		})
	}

	if err := r.Invoke("selectStart goCharLeft selectEnd"); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if strings.Join(order, " ") != "selectStart goCharLeft selectEnd" {
		t.Errorf("order = %v", order)
	}
}

func TestRegistryInvokeStopsOnError(t *testing.T) {
	r := NewRegistry(nil)
	ran := false
	_ = r.Register("last", func(...any) error { ran = true; return nil })

	err := r.Invoke("missing last")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Invoke() error = %v, want ErrUnknownCommand", err)
	}
	if ran {
		t.Error("commands after a failure should not run")
	}
}

func TestRegistryPanic(t *testing.T) {
	r := NewRegistry(nil)
	_ = r.Register("boom", func(...any) error { panic("bad") })

	err := r.Invoke("boom")
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("Invoke() error = %v, want ErrPanic", err)
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("error %q should carry the panic value", err)
	}
}

func TestRegistryRegisterInvalid(t *testing.T) {
	r := NewRegistry(nil)
	tests := []struct {
		name string
		want error
	}{
		{"", ErrEmptyName},
		{"   ", ErrEmptyName},
	}
	for _, tt := range tests {
		if err := r.Register(tt.name, func(...any) error { return nil }); !errors.Is(err, tt.want) {
			t.Errorf("Register(%q) error = %v, want %v", tt.name, err, tt.want)
		}
	}
	if err := r.Register("two words", func(...any) error { return nil }); err == nil {
		t.Error("Register() should reject names with spaces")
	}
	if err := r.Invoke(" "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Invoke(blank) error = %v", err)
	}
}

func TestRegistryListAndObserve(t *testing.T) {
	r := NewRegistry(nil)
	_ = r.Register("undo", func(...any) error { return nil })
	_ = r.Register("redo", func(...any) error { return errors.New("nothing to redo") })

	var seen []string
	r.Observe(func(name string, err error) {
		if err != nil {
			name += "!"
		}
		seen = append(seen, name)
	})

	_ = r.Invoke("undo redo")
	if strings.Join(seen, ",") != "undo,redo!" {
		t.Errorf("observed %v", seen)
	}

	if got := r.List(); len(got) != 2 || got[0] != "redo" || got[1] != "undo" {
		t.Errorf("List() = %v", got)
	}
	r.Unregister("undo")
	if r.Has("undo") || r.Count() != 1 {
		t.Error("Unregister() should remove the command")
	}
}
