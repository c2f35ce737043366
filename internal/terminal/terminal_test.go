package terminal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	s.SetSize(40, 5)
	return s
}

func listen(t *testing.T, term *Terminal) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- term.Listen(context.Background()) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Listen did not return")
		return nil
	}
}

func TestListenDeliversKeys(t *testing.T) {
	screen := newSimScreen(t)
	keys := make(chan string, 4)
	n := key.NewNormalizer()
	handler := KeyHandlerFunc(func(ev *key.Event) bool {
		tok, _ := n.Normalize(ev)
		keys <- string(tok)
		ev.PreventDefault()
		return tok == "ctrl+s"
	})

	var fallback []string
	term := New(screen, handler, WithUnhandled(func(ev *key.Event) {
		fallback = append(fallback, ev.Char)
	}))
	done := listen(t, term)

	screen.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	for _, want := range []string{"ctrl+s", "q"} {
		select {
		case got := <-keys:
			if got != want {
				t.Errorf("key = %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	term.Stop()
	if err := wait(t, done); err != nil {
		t.Errorf("Listen() error = %v", err)
	}
	if len(fallback) != 0 {
		t.Errorf("prevented keys should skip the fallback, got %v", fallback)
	}
}

func TestListenUnhandledFallback(t *testing.T) {
	screen := newSimScreen(t)
	got := make(chan string, 1)
	term := New(screen, KeyHandlerFunc(func(*key.Event) bool { return false }),
		WithUnhandled(func(ev *key.Event) { got <- ev.Char }))
	done := listen(t, term)

	screen.InjectKey(tcell.KeyRune, '?', tcell.ModNone)
	select {
	case c := <-got:
		if c != "?" {
			t.Errorf("fallback got %q, want ?", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fallback not called")
	}

	term.Stop()
	wait(t, done)
}

func TestPostRunsOnLoop(t *testing.T) {
	screen := newSimScreen(t)
	term := New(screen, nil)
	done := listen(t, term)

	ran := make(chan struct{})
	if err := term.Post(func() { close(ran) }); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted func did not run")
	}

	term.Stop()
	wait(t, done)
}

func TestListenOnce(t *testing.T) {
	screen := newSimScreen(t)
	term := New(screen, nil)
	done := listen(t, term)

	ran := make(chan struct{})
	_ = term.Post(func() { close(ran) })
	<-ran

	if err := term.Listen(context.Background()); !errors.Is(err, ErrAlreadyListening) {
		t.Errorf("second Listen() error = %v, want ErrAlreadyListening", err)
	}
	term.Stop()
	wait(t, done)
}

func TestListenContextCancel(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()
	term := New(screen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Listen(ctx) }()
	cancel()

	if err := wait(t, done); !errors.Is(err, context.Canceled) {
		t.Errorf("Listen() error = %v, want context.Canceled", err)
	}
}

func TestNoScreen(t *testing.T) {
	term := New(nil, nil)
	if err := term.Listen(context.Background()); !errors.Is(err, ErrNoScreen) {
		t.Errorf("Listen() error = %v, want ErrNoScreen", err)
	}
	if err := term.Post(func() {}); !errors.Is(err, ErrNoScreen) {
		t.Errorf("Post() error = %v, want ErrNoScreen", err)
	}
}
