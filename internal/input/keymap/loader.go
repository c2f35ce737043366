package keymap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// Format identifies a keymap file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for keymap files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported keymap format")

	// ErrInvalidKeymap is returned when a keymap document has the wrong shape.
	ErrInvalidKeymap = errors.New("invalid keymap")
)

// LoadError wraps an error encountered while reading a keymap file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("keymap %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads state tables from a keymap file. Each top-level table is
// a state; each entry maps shortcut text to a command string.
//
//	[default]
//	"mod+s" = "write"
//	"mod+k mod+s" = "write quit"
func LoadFile(path string) (map[string][]Binding, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	states, err := Parse(data, format)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return states, nil
}

// LoadReader reads state tables from r in the given format.
func LoadReader(r io.Reader, format Format) (map[string][]Binding, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keymap: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes a keymap document.
func Parse(data []byte, format Format) (map[string][]Binding, error) {
	switch format {
	case FormatTOML:
		return parseTOML(data)
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseTOML(data []byte) (map[string][]Binding, error) {
	var doc map[string]map[string]string
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeymap, err)
	}

	states := make(map[string][]Binding, len(doc))
	for state, table := range doc {
		shortcuts := make([]string, 0, len(table))
		for shortcut := range table {
			shortcuts = append(shortcuts, shortcut)
		}
		sort.Strings(shortcuts)

		bindings := make([]Binding, 0, len(shortcuts))
		for _, shortcut := range shortcuts {
			bindings = append(bindings, Bind(shortcut, Command(table[shortcut])))
		}
		states[state] = bindings
	}
	return states, nil
}

// JSON documents keep their entry order, so a later duplicate wins.
func parseJSON(data []byte) (map[string][]Binding, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidKeymap)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidKeymap)
	}

	states := make(map[string][]Binding)
	var err error
	root.ForEach(func(state, table gjson.Result) bool {
		if !table.IsObject() {
			err = fmt.Errorf("%w: state %q must be an object", ErrInvalidKeymap, state.String())
			return false
		}
		var bindings []Binding
		table.ForEach(func(shortcut, command gjson.Result) bool {
			if command.Type != gjson.String {
				err = fmt.Errorf("%w: %s.%s must be a string", ErrInvalidKeymap, state.String(), shortcut.String())
				return false
			}
			bindings = append(bindings, Bind(shortcut.String(), Command(command.String())))
			return true
		})
		states[state.String()] = append(states[state.String()], bindings...)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}
