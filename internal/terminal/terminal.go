package terminal

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

// Errors returned by Terminal.
var (
	ErrAlreadyListening = errors.New("terminal: already listening")
	ErrNoScreen         = errors.New("terminal: no screen")
)

// KeyHandler consumes converted key events.
type KeyHandler interface {
	HandleKeyEvent(ev *key.Event) bool
}

// KeyHandlerFunc adapts a function to KeyHandler.
type KeyHandlerFunc func(ev *key.Event) bool

// HandleKeyEvent calls f(ev).
func (f KeyHandlerFunc) HandleKeyEvent(ev *key.Event) bool {
	return f(ev)
}

// Terminal feeds key events from a tcell screen to a handler and runs
// posted callbacks on the same goroutine.
type Terminal struct {
	screen    tcell.Screen
	handler   KeyHandler
	unhandled func(*key.Event)
	onResize  func(width, height int)
	logger    *slog.Logger

	listening atomic.Bool
	stopOnce  sync.Once
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithUnhandled sets the fallback run for key events whose default action
// was not prevented.
func WithUnhandled(fn func(*key.Event)) Option {
	return func(t *Terminal) {
		t.unhandled = fn
	}
}

// WithResize sets the callback run when the screen size changes.
func WithResize(fn func(width, height int)) Option {
	return func(t *Terminal) {
		t.onResize = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Terminal) {
		t.logger = logger
	}
}

// NewScreen creates and initializes the terminal screen.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// New creates a Terminal over an initialized screen.
func New(screen tcell.Screen, handler KeyHandler, opts ...Option) *Terminal {
	t := &Terminal{
		screen:  screen,
		handler: handler,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Listen polls the screen until ctx is cancelled or the screen is
// finalized. It may be called once. On cancellation it returns the
// context's cause.
func (t *Terminal) Listen(ctx context.Context) error {
	if t.screen == nil {
		return ErrNoScreen
	}
	if !t.listening.CompareAndSwap(false, true) {
		return ErrAlreadyListening
	}

	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(e)
		case *tcell.EventResize:
			w, h := e.Size()
			if t.onResize != nil {
				t.onResize(w, h)
			}
			t.screen.Sync()
		case *tcell.EventInterrupt:
			if fn, ok := e.Data().(func()); ok && fn != nil {
				fn()
			}
		case *tcell.EventError:
			t.logger.Warn("terminal error", "error", e.Error())
		}
	}
}

func (t *Terminal) handleKey(e *tcell.EventKey) {
	kev := ConvertKey(e)
	if kev == nil {
		t.logger.Debug("unmapped key", "key", e.Name())
		return
	}
	if t.handler != nil && t.handler.HandleKeyEvent(kev) {
		return
	}
	if !kev.DefaultPrevented() && t.unhandled != nil {
		t.unhandled(kev)
	}
}

// Post schedules fn to run on the Listen goroutine.
func (t *Terminal) Post(fn func()) error {
	if t.screen == nil {
		return ErrNoScreen
	}
	return t.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Stop finalizes the screen, which ends Listen. Later calls do nothing.
func (t *Terminal) Stop() {
	if t.screen == nil {
		return
	}
	t.stopOnce.Do(t.screen.Fini)
}
