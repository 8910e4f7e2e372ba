package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/theme"
)

type row struct {
	width int
	cells map[int]core.Cell
}

func (r *row) Init() error              { return nil }
func (r *row) Shutdown()                {}
func (r *row) Size() (int, int)         { return r.width, 1 }
func (r *row) Clear()                   {}
func (r *row) Show()                    {}
func (r *row) ShowCursor(x, y int)      {}
func (r *row) HideCursor()              {}
func (r *row) PollEvent() backend.Event { return backend.Event{} }
func (r *row) Interrupt(any)            {}
func (r *row) Beep()                    {}

func (r *row) SetCell(x, y int, c core.Cell) {
	if x >= 0 && x < r.width {
		r.cells[x] = c
	}
}

func (r *row) Fill(x, y, w, h int, c core.Cell) {
	for i := x; i < x+w; i++ {
		r.SetCell(i, y, c)
	}
}

func (r *row) String() string {
	var b strings.Builder
	for x := 0; x < r.width; x++ {
		b.WriteRune(r.cells[x].Rune)
	}
	return b.String()
}

func render(s *StatusLine, width int) string {
	r := &row{width: width, cells: make(map[int]core.Cell)}
	s.Resize(width)
	s.Render(r, 0)
	return r.String()
}

func TestCounts(t *testing.T) {
	tests := []struct {
		words, chars int
		want         string
	}{
		{0, 0, "0 words · 0 characters"},
		{1, 1, "1 word · 1 character"},
		{2, 11, "2 words · 11 characters"},
	}

	s := New(theme.Light())
	for _, tt := range tests {
		s.SetCounts(tt.words, tt.chars)
		if got := s.Counts(); got != tt.want {
			t.Errorf("Counts() = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderLayout(t *testing.T) {
	s := New(theme.Light())
	s.SetCounts(2, 11)
	s.SetSaved(true)

	got := render(s, 60)
	if !strings.HasPrefix(got, " LTR PREVIEW ") {
		t.Errorf("left = %q, want direction and pane", got)
	}
	if !strings.HasSuffix(got, "2 words · 11 characters ") {
		t.Errorf("right = %q, want counts", got)
	}
}

func TestRenderUnsavedAndMessage(t *testing.T) {
	s := New(theme.Dark())
	s.SetDirection("RTL")
	s.SetPreviewVisible(false)
	s.SetMessage("Exported notes.md", MessageInfo)

	got := render(s, 80)
	if !strings.HasPrefix(got, " RTL EDITOR * ") {
		t.Errorf("left = %q", got)
	}
	if !strings.Contains(got, "Exported notes.md") {
		t.Errorf("message missing from %q", got)
	}

	s.ClearMessage()
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("Message() = %q, %v after clear", msg, typ)
	}
}

func TestRenderNarrow(t *testing.T) {
	s := New(theme.Light())
	s.SetMessage(strings.Repeat("x", 100), MessageError)

	if got := render(s, 10); len([]rune(got)) != 10 {
		t.Errorf("rendered %d cells, want 10", len([]rune(got)))
	}
}
