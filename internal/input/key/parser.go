package key

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec = errors.New("empty key specification")
	ErrNoBase    = errors.New("no base character")
)

// ParseError describes a shortcut step that could not be parsed.
type ParseError struct {
	Shortcut string
	Step     string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid shortcut %q: step %q: %v", e.Shortcut, e.Step, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// baseAliases folds alternative key names onto the names the Normalizer
// produces.
var baseAliases = map[string]string{
	"escape":   "esc",
	"delete":   "del",
	"insert":   "ins",
	"return":   "enter",
	"cr":       "enter",
	"bs":       "backspace",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"spacebar": "space",
}

// Parser converts human-authored shortcut text such as "mod+s" or
// "shift+mod+f" into canonical tokens.
type Parser struct {
	platform Platform
	primary  Modifier
	logger   *slog.Logger
}

// NewParser creates a parser for the given platform. The platform is
// consulted once here to resolve the "mod" placeholder.
func NewParser(platform Platform, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		platform: platform,
		primary:  platform.PrimaryModifier(),
		logger:   logger,
	}
}

// Platform returns the platform the parser resolves "mod" for.
func (p *Parser) Platform() Platform {
	return p.platform
}

// ParseStroke parses a single chord step like "ctrl+shift+f".
func (p *Parser) ParseStroke(step string) (Stroke, error) {
	step = strings.TrimSpace(step)
	if step == "" {
		return Stroke{}, ErrEmptySpec
	}

	parts := strings.Split(step, "+")
	base := parts[len(parts)-1]
	if base == "" {
		return Stroke{}, ErrNoBase
	}

	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "mod" {
			mods = mods.With(p.primary)
			continue
		}
		if m := ModifierFromName(name); m != ModNone {
			mods = mods.With(m)
			continue
		}
		p.logger.Debug("ignoring unknown modifier", "modifier", part, "step", step)
	}

	return Stroke{Mods: mods, Base: canonicalBase(base)}, nil
}

// ParseShortcut parses space-separated chord steps. Steps that fail to
// parse are logged and skipped; the returned error joins their ParseErrors.
func (p *Parser) ParseShortcut(text string) ([]Stroke, error) {
	steps := strings.Fields(text)
	if len(steps) == 0 {
		p.logger.Warn("invalid shortcut", "shortcut", text, "error", ErrEmptySpec)
		return nil, &ParseError{Shortcut: text, Err: ErrEmptySpec}
	}

	strokes := make([]Stroke, 0, len(steps))
	var errs []error
	for _, step := range steps {
		s, err := p.ParseStroke(step)
		if err != nil {
			p.logger.Warn("invalid shortcut", "shortcut", text, "step", step, "error", err)
			errs = append(errs, &ParseError{Shortcut: text, Step: step, Err: err})
			continue
		}
		strokes = append(strokes, s)
	}
	return strokes, errors.Join(errs...)
}

// ParseSequence parses shortcut text into a token sequence.
func (p *Parser) ParseSequence(text string) (Sequence, error) {
	strokes, err := p.ParseShortcut(text)
	seq := make(Sequence, len(strokes))
	for i, s := range strokes {
		seq[i] = s.Token()
	}
	return seq, err
}

// NormalizeShortcut returns the canonical sequence string for shortcut
// text, e.g. "shift+mod+f" becomes "ctrl+shift+f" off Apple platforms.
// Invalid steps are dropped.
func (p *Parser) NormalizeShortcut(text string) string {
	seq, _ := p.ParseSequence(text)
	return seq.String()
}

// canonicalBase lower-cases key names and ASCII letters and folds aliases.
// Other single characters are kept verbatim.
func canonicalBase(base string) string {
	if len(base) == 1 {
		c := base[0]
		if c >= 'A' && c <= 'Z' {
			return string(c + ('a' - 'A'))
		}
		return base
	}
	if len([]rune(base)) == 1 {
		return base
	}
	lower := strings.ToLower(base)
	if alias, ok := baseAliases[lower]; ok {
		return alias
	}
	return lower
}
