package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func rowText(screen tcell.SimulationScreen, row int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[row*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteString(string(c.Runes))
	}
	return strings.TrimRight(b.String(), " ")
}

func TestStatusLineDraw(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *StatusLine)
		want  string
	}{
		{
			name:  "idle",
			setup: func(s *StatusLine) {},
			want:  " default",
		},
		{
			name: "pending chord",
			setup: func(s *StatusLine) {
				s.SetState("vim")
				s.SetPending("g")
			},
			want: " vim  g",
		},
		{
			name: "handled after shrink",
			setup: func(s *StatusLine) {
				s.SetResult("ctrl+s", true, 1)
			},
			want: " default  ctrl+s (dropped 1)",
		},
		{
			name: "unbound",
			setup: func(s *StatusLine) {
				s.SetResult("x y", false, 0)
			},
			want: " default  x y is not bound",
		},
		{
			name: "error",
			setup: func(s *StatusLine) {
				s.SetError(errors.New("keymap.toml: bad"))
			},
			want: " default  keymap.toml: bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newSimScreen(t)
			defer screen.Fini()

			s := NewStatusLine(DefaultAccent)
			tt.setup(s)
			s.Draw(screen)
			screen.Show()

			if got := rowText(screen, 4); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusLineClipsWideText(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()
	screen.SetSize(12, 1)

	s := NewStatusLine("not a color")
	s.SetMessage("日本語テキスト")
	s.Draw(screen)
	screen.Show()

	got := rowText(screen, 0)
	if w := TextWidth(got); w > 12 {
		t.Errorf("drawn width = %d, want <= 12 (%q)", w, got)
	}
	if !strings.HasPrefix(got, " default ") {
		t.Errorf("row = %q", got)
	}
}

func TestTextWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"ctrl+s", 6},
		{"日本", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := TextWidth(tt.in); got != tt.want {
			t.Errorf("TextWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
