package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/terminal"
)

// Run attaches the dispatcher to screen and processes input until quit is
// requested, ctx is cancelled or Shutdown is called. The screen must be
// initialized; Run finalizes it on return. A requested quit returns nil.
func (app *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if err := app.beginRun(); err != nil {
		return err
	}
	defer app.endRun()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go func() {
		select {
		case <-app.done:
			cancel(ErrQuit)
		case <-ctx.Done():
		}
	}()

	app.status = terminal.NewStatusLine(app.config.UI.Accent)
	app.terminal = terminal.New(screen, terminal.KeyHandlerFunc(app.handleKey),
		terminal.WithUnhandled(app.unhandled),
		terminal.WithResize(func(int, int) { app.draw() }),
		terminal.WithLogger(app.logger),
	)
	defer app.terminal.Stop()

	if app.config.Keymap.Watch && !app.opts.NoWatch {
		if err := app.startWatching(ctx); err != nil {
			app.logger.Warn("hot reload disabled", "error", err)
		}
	}

	app.status.SetState(app.keymap.State())
	app.status.SetMessage("ctrl+q quits")
	app.draw()

	err := app.terminal.Listen(ctx)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

func (app *Application) beginRun() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	switch {
	case app.closing:
		return ErrShutdown
	case app.running:
		return ErrAlreadyRunning
	}
	app.running = true
	app.runs.Add(1)
	return nil
}

func (app *Application) endRun() {
	app.mu.Lock()
	app.running = false
	app.mu.Unlock()
	app.runs.Done()
}

// Running reports whether Run is processing input.
func (app *Application) Running() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.running
}

// requestQuit ends Run. It is safe to call more than once.
func (app *Application) requestQuit() {
	select {
	case <-app.done:
	default:
		close(app.done)
	}
}

// Shutdown stops Run, waits for it to return and releases resources.
func (app *Application) Shutdown() {
	app.mu.Lock()
	app.closing = true
	app.mu.Unlock()

	app.requestQuit()
	app.runs.Wait()
	app.closeResources()
}

func (app *Application) handleKey(ev *key.Event) bool {
	app.lastCommand = ""
	handled := app.dispatcher.HandleKeyEvent(ev)
	app.status.SetPending(app.dispatcher.Pending().String())
	app.draw()
	return handled
}

func (app *Application) dispatched(r input.Result) {
	if app.status == nil {
		return
	}
	app.status.SetState(r.State)
	if r.Handled && app.lastCommand != "" {
		app.status.SetMessage(fmt.Sprintf("%s: %s", r.Sequence, app.lastCommand))
		return
	}
	app.status.SetResult(r.Sequence, r.Handled, r.Dropped)
}

// unhandled runs for keys no binding consumed.
func (app *Application) unhandled(ev *key.Event) {
	if ev.Char != "" && ev.Modifiers.IsEmpty() {
		app.logger.Debug("unbound character", "char", ev.Char)
	}
}

func (app *Application) draw() {
	if app.terminal == nil {
		return
	}
	screen := app.terminal.Screen()
	screen.Clear()
	app.status.Draw(screen)
	screen.Show()
}
