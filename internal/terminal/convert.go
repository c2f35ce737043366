package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

var namedKeys = map[tcell.Key]key.Code{
	tcell.KeyUp:     key.CodeUp,
	tcell.KeyDown:   key.CodeDown,
	tcell.KeyLeft:   key.CodeLeft,
	tcell.KeyRight:  key.CodeRight,
	tcell.KeyHome:   key.CodeHome,
	tcell.KeyEnd:    key.CodeEnd,
	tcell.KeyPgUp:   key.CodePageUp,
	tcell.KeyPgDn:   key.CodePageDown,
	tcell.KeyInsert: key.CodeInsert,
	tcell.KeyDelete: key.CodeDelete,
	tcell.KeyPause:  key.CodePause,
}

// ConvertKey turns a tcell key event into a raw key event stamped with
// the tcell event time. It returns nil for keys with no equivalent.
func ConvertKey(ev *tcell.EventKey) *key.Event {
	mods := convertMod(ev.Modifiers())

	var kev *key.Event
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		kev = convertRune(ev.Rune(), mods)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		kev = key.NewEvent(key.CodeBackspace, mods)
	case k == tcell.KeyTab:
		kev = key.NewEvent(key.CodeTab, mods)
	case k == tcell.KeyBacktab:
		kev = key.NewEvent(key.CodeTab, mods.With(key.ModShift))
	case k == tcell.KeyEnter:
		kev = key.NewEvent(key.CodeEnter, mods)
	case k == tcell.KeyEscape:
		kev = key.NewEvent(key.CodeEscape, mods)
	case k == tcell.KeyCtrlSpace:
		kev = key.NewEvent(key.CodeSpace, mods.With(key.ModCtrl))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		kev = key.NewEvent(key.Letter(rune('a'+k-tcell.KeyCtrlA)), mods.With(key.ModCtrl))
	case k == tcell.KeyCtrlBackslash:
		kev = key.NewEvent(key.CodeBackslash, mods.With(key.ModCtrl))
	case k == tcell.KeyCtrlRightSq:
		kev = key.NewEvent(key.CodeBracketRight, mods.With(key.ModCtrl))
	case k == tcell.KeyCtrlCarat:
		kev = key.NewEvent(key.Digit('6'), mods.With(key.ModCtrl|key.ModShift))
	case k == tcell.KeyCtrlUnderscore:
		kev = key.NewEvent(key.CodeMinus, mods.With(key.ModCtrl|key.ModShift))
	case k >= tcell.KeyF1 && k <= tcell.KeyF64:
		code := key.Function(int(k-tcell.KeyF1) + 1)
		if code == key.CodeNone {
			return nil
		}
		kev = key.NewEvent(code, mods)
	default:
		code, ok := namedKeys[k]
		if !ok {
			return nil
		}
		kev = key.NewEvent(code, mods)
	}

	if kev == nil {
		return nil
	}
	return kev.At(ev.When())
}

// convertRune maps a typed character. ASCII letters and digits become key
// codes so shortcuts like "shift+a" and "shift+1" match; other printable
// characters are passed through as decoded characters.
func convertRune(r rune, mods key.Modifier) *key.Event {
	switch {
	case r >= 'a' && r <= 'z':
		return key.NewEvent(key.Letter(r), mods)
	case r >= 'A' && r <= 'Z':
		return key.NewEvent(key.Letter(r), mods.With(key.ModShift))
	case r >= '0' && r <= '9':
		return key.NewEvent(key.Digit(r), mods)
	case r == ' ':
		return key.NewEvent(key.CodeSpace, mods)
	case r == '+':
		return key.NewCharEvent("plus", mods.Without(key.ModShift))
	case unicode.IsPrint(r):
		return key.NewCharEvent(string(r), mods.Without(key.ModShift))
	default:
		return nil
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
