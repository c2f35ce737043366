package input

import (
	"time"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// Config configures the dispatcher.
type Config struct {
	// Delay is the chord window: keys pressed closer together than this
	// form one sequence.
	// Default: 250ms
	Delay time.Duration

	// Platform decides what "mod" means in shortcuts.
	// Default: detected from the running OS.
	Platform key.Platform

	// State is the initial active state of the global keymap.
	// Default: "default"
	State string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Delay:    key.DefaultDelay,
		Platform: key.DetectPlatform(),
		State:    keymap.DefaultState,
	}
}
