package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// DefaultAccent is the status line accent color.
const DefaultAccent = "#5fafff"

// StatusLine renders the bottom row: the active state, the pending
// sequence and the outcome of the last dispatch.
type StatusLine struct {
	state   string
	pending string
	message string
	failed  bool

	accent tcell.Style
	bar    tcell.Style
	errs   tcell.Style
}

// NewStatusLine creates a status line with the given accent color in hex
// form. An invalid color falls back to DefaultAccent.
func NewStatusLine(accent string) *StatusLine {
	c, err := colorful.Hex(accent)
	if err != nil {
		c, _ = colorful.Hex(DefaultAccent)
	}
	dark, _ := colorful.Hex("#1c1c1c")
	red, _ := colorful.Hex("#d75f5f")

	return &StatusLine{
		state:  "default",
		accent: tcell.StyleDefault.Bold(true).Background(tcellColor(c)).Foreground(tcell.ColorWhite),
		bar:    tcell.StyleDefault.Background(tcellColor(c.BlendLab(dark, 0.7))).Foreground(tcell.ColorWhite),
		errs:   tcell.StyleDefault.Background(tcellColor(c.BlendLab(red, 0.8))).Foreground(tcell.ColorWhite),
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// SetState updates the displayed keymap state.
func (s *StatusLine) SetState(state string) {
	s.state = state
}

// SetPending updates the in-progress sequence.
func (s *StatusLine) SetPending(seq string) {
	s.pending = seq
}

// SetMessage shows a message after the pending sequence.
func (s *StatusLine) SetMessage(msg string) {
	s.message = msg
	s.failed = false
}

// SetError shows an error message.
func (s *StatusLine) SetError(err error) {
	s.message = err.Error()
	s.failed = true
}

// SetResult shows the outcome of a dispatch.
func (s *StatusLine) SetResult(sequence string, handled bool, dropped int) {
	switch {
	case sequence == "":
		s.SetMessage("")
	case !handled:
		s.SetMessage(sequence + " is not bound")
	case dropped > 0:
		s.SetMessage(fmt.Sprintf("%s (dropped %d)", sequence, dropped))
	default:
		s.SetMessage(sequence)
	}
}

// Draw renders the status line on the last row of the screen.
func (s *StatusLine) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	row := height - 1

	bar := s.bar
	if s.failed {
		bar = s.errs
	}
	for x := 0; x < width; x++ {
		screen.SetContent(x, row, ' ', nil, bar)
	}

	col := drawText(screen, 0, row, width, " "+s.state+" ", s.accent)
	col = drawText(screen, col+1, row, width, s.pending, bar.Bold(true))
	if s.pending != "" {
		col++
	}
	drawText(screen, col, row, width, s.message, bar)
}

// drawText writes text one grapheme cluster at a time and returns the
// column after the last cluster drawn. A cluster that would cross the
// right edge is not drawn.
func drawText(screen tcell.Screen, col, row, width int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := g.Width()
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		screen.SetContent(col, row, runes[0], runes[1:], style)
		col += w
	}
	return col
}

// TextWidth returns the display width of text in cells.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}
