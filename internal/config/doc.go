// Package config loads keychord's TOML configuration.
//
// A missing file yields the defaults:
//
//	[input]
//	delay_ms = 250          # chord window
//	platform = ""           # "" detects the running OS
//	state = "default"       # initial keymap state
//
//	[keymap]
//	defaults = true         # load the built-in bindings
//	files = []              # TOML or JSON keymap files
//	scripts = []            # Lua scripts
//	watch = true            # reload files and scripts on change
//
//	[log]
//	level = "info"
//	file = ""               # empty discards logs in interactive mode
//
//	[ui]
//	accent = "#5fafff"      # status line colour
//
// Relative paths in [keymap] and [log] resolve against the directory of
// the configuration file. KEYCHORD_* environment variables override the
// file; see ApplyEnv.
package config
