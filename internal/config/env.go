package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "KEYCHORD_"

// ApplyEnv overrides settings from environment variables:
//
//	KEYCHORD_DELAY_MS   input.delay_ms
//	KEYCHORD_PLATFORM   input.platform
//	KEYCHORD_STATE      input.state
//	KEYCHORD_LOG_LEVEL  log.level
//	KEYCHORD_LOG_FILE   log.file
//	KEYCHORD_KEYMAPS    keymap.files (separated by the OS list separator)
//
// Empty values are treated as set. The result is validated.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "DELAY_MS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return &ValidationError{Path: "input.delay_ms", Message: "KEYCHORD_DELAY_MS is not an integer"}
		}
		c.Input.DelayMS = n
	}
	if v, ok := lookup(EnvPrefix + "PLATFORM"); ok {
		c.Input.Platform = v
	}
	if v, ok := lookup(EnvPrefix + "STATE"); ok {
		c.Input.State = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "KEYMAPS"); ok {
		c.Keymap.Files = splitList(v)
	}
	return c.Validate()
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, string(os.PathListSeparator)) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
