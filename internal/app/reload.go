package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/dshills/keychord/internal/watcher"
)

// startWatching watches keymap files and scripts and re-registers them on
// change. Reloads run on the terminal loop.
func (app *Application) startWatching(ctx context.Context) error {
	paths := app.watchedPaths()
	if len(paths) == 0 {
		return nil
	}

	fw, err := watcher.NewFileWatcher(0)
	if err != nil {
		return err
	}
	var errs []error
	for _, path := range paths {
		if err := fw.Watch(path); err != nil {
			errs = append(errs, err)
		}
	}
	if len(fw.WatchedPaths()) == 0 {
		fw.Close()
		return errors.Join(errs...)
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Warn("some keymap sources are not watched", "error", err)
	}

	app.watcher = watcher.NewDebounced(fw, watcher.DefaultDebounce)
	go app.watchLoop(ctx, app.watcher)
	return nil
}

func (app *Application) watchLoop(ctx context.Context, w *watcher.Debounced) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if !ev.Op.Has(watcher.OpCreate | watcher.OpWrite) {
				continue
			}
			path := ev.Path
			if err := app.terminal.Post(func() { app.reloadPath(path) }); err != nil {
				app.logger.Warn("reload not scheduled", "path", path, "error", err)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			app.logger.Warn("watcher error", "error", err)
		}
	}
}

func (app *Application) watchedPaths() []string {
	var paths []string
	paths = append(paths, app.config.Keymap.Files...)
	paths = append(paths, app.config.Keymap.Scripts...)
	return paths
}

// reloadPath re-registers one keymap file or script. Registration is
// additive: bindings removed from a file stay bound until restart.
func (app *Application) reloadPath(path string) {
	var err error
	switch {
	case contains(app.config.Keymap.Files, path):
		err = app.loadKeymap(path)
	case contains(app.config.Keymap.Scripts, path):
		err = app.runScript(path)
	default:
		return
	}

	if app.status == nil {
		return
	}
	if err != nil {
		app.status.SetError(err)
	} else {
		app.status.SetMessage("reloaded " + filepath.Base(path))
	}
	app.status.SetState(app.keymap.State())
	app.draw()
}

// reloadAll re-registers every keymap file and script.
func (app *Application) reloadAll() {
	for _, path := range app.watchedPaths() {
		app.reloadPath(path)
	}
}

func contains(list []string, path string) bool {
	for _, item := range list {
		if absPath(item) == absPath(path) {
			return true
		}
	}
	return false
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
