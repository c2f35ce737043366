package key

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name  string
		event *Event
		want  Token
		ok    bool
	}{
		{"letter", NewEvent(Letter('g'), ModNone), "g", true},
		{"ctrl letter", NewEvent(Letter('s'), ModCtrl), "ctrl+s", true},
		{"shift letter", NewEvent(Letter('f'), ModShift), "shift+f", true},
		{"all modifiers in order", NewEvent(Function(1), ModMeta|ModShift|ModAlt|ModCtrl), "ctrl+alt+shift+meta+f1", true},
		{"function key", NewEvent(Function(19), ModNone), "f19", true},
		{"named key", NewEvent(CodeBackspace, ModNone), "backspace", true},
		{"arrow with alt", NewEvent(CodeLeft, ModAlt), "alt+left", true},
		{"insert", NewEvent(CodeInsert, ModNone), "ins", true},
		{"digit", NewEvent(Digit('1'), ModNone), "1", true},
		{"shifted digit absorbs shift", NewEvent(Digit('1'), ModShift), "!", true},
		{"shifted digit keeps ctrl", NewEvent(Digit('2'), ModShift|ModCtrl), "ctrl+@", true},
		{"shifted equal", NewEvent(CodeEqual, ModShift), "plus", true},
		{"shifted slash", NewEvent(CodeSlash, ModShift), "?", true},
		{"punctuation", NewEvent(CodePeriod, ModAlt), "alt+.", true},
		{"keypad digit", NewEvent(CodeKP0+7, ModNone), "7", true},
		{"keypad add", NewEvent(CodeKPAdd, ModNone), "plus", true},
		{"shift with no glyph", NewEvent(CodeTab, ModShift), "shift+tab", true},
		{"decoded char used directly", NewCharEvent("é", ModAlt), "alt+é", true},
		{"decoded char keeps shift", NewCharEvent("F", ModShift|ModCtrl), "ctrl+shift+F", true},
		{"shift key alone", NewEvent(CodeShift, ModShift), "", false},
		{"ctrl key alone", NewEvent(CodeCtrl, ModCtrl), "", false},
		{"alt key alone", NewEvent(CodeAlt, ModAlt), "", false},
		{"meta key alone", NewEvent(CodeOSMeta, ModMeta), "", false},
		{"left meta alone", NewEvent(CodeMetaLeft, ModMeta), "", false},
		{"unknown code", NewEvent(Code(3), ModNone), "", false},
		{"nil event", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalize(tt.event)
			if ok != tt.ok {
				t.Fatalf("Normalize() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeMatchesParser(t *testing.T) {
	n := NewNormalizer()
	p := NewParser(Platform("linux"), nil)

	tests := []struct {
		shortcut string
		event    *Event
	}{
		{"mod+s", NewEvent(Letter('s'), ModCtrl)},
		{"shift+mod+f", NewEvent(Letter('f'), ModCtrl|ModShift)},
		{"mod+shift+f", NewEvent(Letter('f'), ModShift|ModCtrl)},
		{"alt+enter", NewEvent(CodeEnter, ModAlt)},
		{"mod+[", NewEvent(CodeBracketLeft, ModCtrl)},
		{"shift+pagedown", NewEvent(CodePageDown, ModShift)},
		{"insert", NewEvent(CodeInsert, ModNone)},
		{"Delete", NewEvent(CodeDelete, ModNone)},
		{"F5", NewEvent(Function(5), ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.shortcut, func(t *testing.T) {
			tok, ok := n.Normalize(tt.event)
			if !ok {
				t.Fatal("Normalize() returned no token")
			}
			if want := p.NormalizeShortcut(tt.shortcut); string(tok) != want {
				t.Errorf("runtime token %q != registered %q", tok, want)
			}
		})
	}
}

func TestCodeHelpers(t *testing.T) {
	if Letter('a') != CodeA || Letter('Z') != CodeZ {
		t.Error("Letter() should map ASCII letters onto CodeA..CodeZ")
	}
	if Letter('1') != CodeNone {
		t.Error("Letter('1') should be CodeNone")
	}
	if Digit('9') != Code9 || Digit('x') != CodeNone {
		t.Error("Digit() mismatch")
	}
	if Function(0) != CodeNone || Function(20) != CodeNone {
		t.Error("Function() should reject out-of-range keys")
	}
	if Function(19) != CodeF19 {
		t.Errorf("Function(19) = %d, want %d", Function(19), CodeF19)
	}
	if !CodeShift.IsModifier() || CodeEnter.IsModifier() {
		t.Error("IsModifier() mismatch")
	}
}
