// Package app wires configuration, commands, keymaps, scripts and the
// dispatcher together and runs them on a terminal.
package app

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/keychord/internal/command"
	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/logging"
	"github.com/dshills/keychord/internal/script"
	"github.com/dshills/keychord/internal/terminal"
	"github.com/dshills/keychord/internal/watcher"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	// Empty means config.DefaultPath().
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogWriter receives log output instead of the configured log file.
	LogWriter io.Writer

	// NoWatch disables hot reload regardless of configuration.
	NoWatch bool
}

// Application is the central coordinator. It owns every component and
// their lifecycles.
type Application struct {
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer

	commands   *command.Registry
	parser     *key.Parser
	keymap     *keymap.Keymap
	dispatcher *input.Dispatcher
	focus      *input.Focus
	editor     *editorScope
	scripts    *script.Engine

	terminal *terminal.Terminal
	status   *terminal.StatusLine
	watcher  *watcher.Debounced

	// lastCommand is set by commands run during the current dispatch.
	lastCommand string

	// mu guards running and closing. Run joins runs while holding it so
	// that Shutdown never waits on a run that has not been counted.
	mu        sync.Mutex
	running   bool
	closing   bool
	runs      sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once

	opts Options
}

// editorScope is the focused editing context. It overrides global
// bindings with its layers but always defers to the global active state.
type editorScope struct {
	*keymap.Stack
}

func (editorScope) State() string { return "" }

// New creates an Application and loads configuration, keymaps and
// scripts. Invalid bindings are logged and skipped; configuration errors
// are fatal.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		app.closeResources()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logging
	if app.opts.LogWriter != nil {
		app.logger, err = logging.New(app.opts.LogWriter, cfg.Log.Level)
		app.logCloser = io.NopCloser(nil)
	} else {
		app.logger, app.logCloser, err = logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	}
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Commands
	app.commands = command.NewRegistry(app.logger)
	app.commands.Observe(app.commandObserved)
	if err := app.registerCommands(); err != nil {
		return &InitError{Component: "commands", Err: err}
	}

	// 4. Keymap
	inputCfg := input.DefaultConfig()
	inputCfg.Delay = cfg.Input.Delay()
	if cfg.Input.Platform != "" {
		inputCfg.Platform = key.Platform(cfg.Input.Platform)
	}
	if cfg.Input.State != "" {
		inputCfg.State = cfg.Input.State
	}
	app.parser = key.NewParser(inputCfg.Platform, app.logger)
	app.keymap = keymap.New(app.parser, app.commands, app.logger)
	if cfg.Keymap.Defaults {
		if err := app.keymap.RegisterState(keymap.DefaultState, keymap.DefaultBindings()...); err != nil {
			app.logger.Warn("default bindings", "error", err)
		}
	}
	for _, file := range cfg.Keymap.Files {
		app.loadKeymap(file)
	}

	// 5. Focus: the editor context carries application bindings that win
	// over every keymap state.
	app.editor = &editorScope{
		Stack: keymap.NewStack(app.parser, app.commands, app.logger, ""),
	}
	app.editor.Push("app", appBindings()...)
	app.focus = input.NewFocus()
	app.focus.Open(app.editor)

	// 6. Dispatcher
	app.dispatcher = input.NewDispatcher(app.keymap, inputCfg,
		input.WithLogger(app.logger),
		input.WithFocus(app.focus),
	)
	app.dispatcher.Observe(app.dispatched)

	// 7. Scripts
	app.scripts = script.NewEngine(app.keymap, app.commands, app.logger)
	for _, file := range cfg.Keymap.Scripts {
		app.runScript(file)
	}

	app.logger.Info("keychord initialized",
		"config", cfg.Path(),
		"platform", string(inputCfg.Platform),
		"state", app.keymap.State(),
		"states", app.keymap.States(),
		"commands", app.commands.Count(),
	)
	return nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Keymap returns the global keymap.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// Dispatcher returns the key dispatcher.
func (app *Application) Dispatcher() *input.Dispatcher {
	return app.dispatcher
}

// Commands returns the command registry.
func (app *Application) Commands() *command.Registry {
	return app.commands
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// loadKeymap registers a keymap file's bindings additively.
func (app *Application) loadKeymap(path string) error {
	states, err := keymap.LoadFile(path)
	if err != nil {
		app.logger.Warn("keymap file not loaded", "path", path, "error", err)
		return err
	}
	if err := app.keymap.RegisterKeys(states); err != nil {
		app.logger.Warn("keymap file has invalid bindings", "path", path, "error", err)
		return err
	}
	app.logger.Debug("keymap file loaded", "path", path, "states", len(states))
	return nil
}

func (app *Application) runScript(path string) error {
	if err := app.scripts.DoFile(path); err != nil {
		app.logger.Warn("script failed", "path", path, "error", err)
		return err
	}
	app.logger.Debug("script loaded", "path", path)
	return nil
}

// closeResources releases everything bootstrap and Run opened.
func (app *Application) closeResources() {
	app.closeOnce.Do(app.close)
}

func (app *Application) close() {
	var errs []error
	if app.watcher != nil {
		errs = append(errs, app.watcher.Close())
	}
	if app.scripts != nil {
		errs = append(errs, app.scripts.Close())
	}
	if err := errors.Join(errs...); err != nil && app.logger != nil {
		app.logger.Warn("shutdown", "error", err)
	}
	if app.logCloser != nil {
		app.logCloser.Close()
	}
}
