package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the configuration file name inside the user config dir.
const FileName = "config.toml"

// Config holds all settings.
type Config struct {
	Input  InputConfig  `toml:"input"`
	Keymap KeymapConfig `toml:"keymap"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`

	path string
}

// InputConfig holds dispatcher settings.
type InputConfig struct {
	// DelayMS is the chord window in milliseconds.
	DelayMS int `toml:"delay_ms"`

	// Platform overrides OS detection for "mod" resolution.
	Platform string `toml:"platform"`

	// State is the initial keymap state.
	State string `toml:"state"`
}

// Delay returns the chord window as a duration.
func (c InputConfig) Delay() time.Duration {
	return time.Duration(c.DelayMS) * time.Millisecond
}

// KeymapConfig lists binding sources.
type KeymapConfig struct {
	Defaults bool     `toml:"defaults"`
	Files    []string `toml:"files"`
	Scripts  []string `toml:"scripts"`
	Watch    bool     `toml:"watch"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// UIConfig controls the terminal status line.
type UIConfig struct {
	Accent string `toml:"accent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			DelayMS: 250,
			State:   "default",
		},
		Keymap: KeymapConfig{
			Defaults: true,
			Watch:    true,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Accent: "#5fafff",
		},
	}
}

// DefaultPath returns the configuration path under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "keychord", FileName)
}

// Load reads a configuration file over the defaults. A missing file is
// not an error. Relative paths are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
// source names the data in errors.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Input.DelayMS <= 0 {
		errs = append(errs, &ValidationError{Path: "input.delay_ms", Message: "must be positive"})
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		errs = append(errs, &ValidationError{Path: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	if c.UI.Accent != "" {
		if _, err := colorful.Hex(c.UI.Accent); err != nil {
			errs = append(errs, &ValidationError{Path: "ui.accent", Message: fmt.Sprintf("invalid colour %q", c.UI.Accent)})
		}
	}

	return errors.Join(errs...)
}

var logLevels = map[string]struct{}{
	"debug":   {},
	"info":    {},
	"warn":    {},
	"warning": {},
	"error":   {},
}

func (c *Config) resolvePaths(dir string) {
	c.Keymap.Files = resolveAll(dir, c.Keymap.Files)
	c.Keymap.Scripts = resolveAll(dir, c.Keymap.Scripts)
	if c.Log.File != "" {
		c.Log.File = resolve(dir, c.Log.File)
	}
}

func resolveAll(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolve(dir, p)
	}
	return out
}

func resolve(dir, path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
