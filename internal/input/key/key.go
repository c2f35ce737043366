package key

import "fmt"

// Code is a hardware virtual key code.
// Values follow the conventional virtual key numbering used by desktop
// keyboards, so letters are their upper-case ASCII value and digits are
// their ASCII value.
type Code uint16

const (
	// CodeNone represents no key.
	CodeNone Code = 0

	CodeBackspace Code = 8
	CodeTab       Code = 9
	CodeEnter     Code = 13
	CodeShift     Code = 16
	CodeCtrl      Code = 17
	CodeAlt       Code = 18
	CodePause     Code = 19
	CodeCapsLock  Code = 20
	CodeEscape    Code = 27
	CodeSpace     Code = 32
	CodePageUp    Code = 33
	CodePageDown  Code = 34
	CodeEnd       Code = 35
	CodeHome      Code = 36
	CodeLeft      Code = 37
	CodeUp        Code = 38
	CodeRight     Code = 39
	CodeDown      Code = 40
	CodeInsert    Code = 45
	CodeDelete    Code = 46

	// Digit row
	Code0 Code = 48
	Code1 Code = 49
	Code2 Code = 50
	Code3 Code = 51
	Code4 Code = 52
	Code5 Code = 53
	Code6 Code = 54
	Code7 Code = 55
	Code8 Code = 56
	Code9 Code = 57

	// Letters
	CodeA Code = 65
	CodeZ Code = 90

	CodeMetaLeft  Code = 91
	CodeMetaRight Code = 92
	CodeMenu      Code = 93

	// Keypad
	CodeKP0        Code = 96
	CodeKP9        Code = 105
	CodeKPMultiply Code = 106
	CodeKPAdd      Code = 107
	CodeKPSubtract Code = 109
	CodeKPDecimal  Code = 110
	CodeKPDivide   Code = 111

	// Function keys
	CodeF1  Code = 112
	CodeF19 Code = 130

	// Punctuation
	CodeSemicolon    Code = 186
	CodeEqual        Code = 187
	CodeComma        Code = 188
	CodeMinus        Code = 189
	CodePeriod       Code = 190
	CodeSlash        Code = 191
	CodeBackquote    Code = 192
	CodeBracketLeft  Code = 219
	CodeBackslash    Code = 220
	CodeBracketRight Code = 221
	CodeQuote        Code = 222

	// CodeOSMeta is the meta key code reported by some platforms.
	CodeOSMeta Code = 224
)

// Letter returns the code for an ASCII letter (either case).
// Returns CodeNone for anything else.
func Letter(r rune) Code {
	switch {
	case r >= 'a' && r <= 'z':
		return CodeA + Code(r-'a')
	case r >= 'A' && r <= 'Z':
		return CodeA + Code(r-'A')
	}
	return CodeNone
}

// Digit returns the digit-row code for '0'..'9'.
// Returns CodeNone for anything else.
func Digit(r rune) Code {
	if r >= '0' && r <= '9' {
		return Code0 + Code(r-'0')
	}
	return CodeNone
}

// Function returns the code for function key n (1-19).
// Returns CodeNone when n is out of range.
func Function(n int) Code {
	if n < 1 || n > 19 {
		return CodeNone
	}
	return CodeF1 + Code(n-1)
}

// codeNames maps codes to base-character tokens.
// Letters, function keys and keypad digits are filled in by init.
var codeNames = map[Code]string{
	CodeBackspace:    "backspace",
	CodeTab:          "tab",
	CodeEnter:        "enter",
	CodeCtrl:         "ctrl",
	CodeAlt:          "alt",
	CodeCapsLock:     "capslock",
	CodeEscape:       "esc",
	CodeSpace:        "space",
	CodePageUp:       "pageup",
	CodePageDown:     "pagedown",
	CodeEnd:          "end",
	CodeHome:         "home",
	CodeLeft:         "left",
	CodeUp:           "up",
	CodeRight:        "right",
	CodeDown:         "down",
	CodeInsert:       "ins",
	CodeDelete:       "del",
	CodeMetaLeft:     "meta",
	CodeMenu:         "meta",
	CodeOSMeta:       "meta",
	CodeKPMultiply:   "*",
	CodeKPAdd:        "plus",
	CodeKPSubtract:   "-",
	CodeKPDecimal:    ".",
	CodeKPDivide:     "/",
	CodeSemicolon:    ";",
	CodeEqual:        "=",
	CodeComma:        ",",
	CodeMinus:        "-",
	CodePeriod:       ".",
	CodeSlash:        "/",
	CodeBackquote:    "`",
	CodeBracketLeft:  "[",
	CodeBackslash:    "\\",
	CodeBracketRight: "]",
	CodeQuote:        "'",
}

// modifierCodes are keys that only ever act as modifiers.
var modifierCodes = map[Code]Modifier{
	CodeShift:     ModShift,
	CodeCtrl:      ModCtrl,
	CodeAlt:       ModAlt,
	CodeMetaLeft:  ModMeta,
	CodeMetaRight: ModMeta,
	CodeMenu:      ModMeta,
	CodeOSMeta:    ModMeta,
}

// shiftedGlyphs holds the character produced by a key while shift is held.
var shiftedGlyphs = map[Code]string{
	CodeBackquote:    "~",
	CodeQuote:        "\"",
	CodeBracketRight: "}",
	CodeBackslash:    "|",
	CodeBracketLeft:  "{",
	CodeSlash:        "?",
	CodePeriod:       ">",
	CodeMinus:        "_",
	CodeComma:        "<",
	CodeEqual:        "plus",
	CodeSemicolon:    ":",
	Code0:            ")",
	Code1:            "!",
	Code2:            "@",
	Code3:            "#",
	Code4:            "$",
	Code5:            "%",
	Code6:            "^",
	Code7:            "&",
	Code8:            "*",
	Code9:            "(",
}

func init() {
	for i := 1; i <= 19; i++ {
		codeNames[Function(i)] = fmt.Sprintf("f%d", i)
	}
	for i := 0; i <= 9; i++ {
		codeNames[CodeKP0+Code(i)] = fmt.Sprintf("%d", i)
	}
	for c := CodeA; c <= CodeZ; c++ {
		codeNames[c] = string(rune('a' + (c - CodeA)))
	}
}

// IsModifier returns true if the code is a pure modifier key.
func (c Code) IsModifier() bool {
	_, ok := modifierCodes[c]
	return ok
}

// Name returns the base-character token for the code without any shift
// handling. Returns an empty string when the code cannot be resolved.
func (c Code) Name() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	// Printable ASCII falls back to its literal character.
	if c > CodeSpace && c < 127 {
		return string(rune(c))
	}
	return ""
}

// Shifted returns the glyph the code produces with shift held, if any.
func (c Code) Shifted() (string, bool) {
	g, ok := shiftedGlyphs[c]
	return g, ok
}

// String returns a debug name for the code.
func (c Code) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	if mod, ok := modifierCodes[c]; ok {
		return mod.String()
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}
