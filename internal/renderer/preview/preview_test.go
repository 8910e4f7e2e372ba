package preview

import (
	"strings"
	"testing"

	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/theme"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
)

// screen is an in-memory backend.
type screen struct {
	w, h  int
	cells map[[2]int]core.Cell
}

func newScreen(w, h int) *screen {
	return &screen{w: w, h: h, cells: make(map[[2]int]core.Cell)}
}

func (s *screen) Init() error              { return nil }
func (s *screen) Shutdown()                {}
func (s *screen) Size() (int, int)         { return s.w, s.h }
func (s *screen) Clear()                   { s.cells = make(map[[2]int]core.Cell) }
func (s *screen) Show()                    {}
func (s *screen) ShowCursor(x, y int)      {}
func (s *screen) HideCursor()              {}
func (s *screen) PollEvent() backend.Event { return backend.Event{} }
func (s *screen) Interrupt(any)            {}
func (s *screen) Beep()                    {}

func (s *screen) SetCell(x, y int, c core.Cell) {
	if x >= 0 && y >= 0 && x < s.w && y < s.h {
		s.cells[[2]int{x, y}] = c
	}
}

func (s *screen) Fill(x, y, w, h int, c core.Cell) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetCell(col, row, c)
		}
	}
}

func (s *screen) line(y int) string {
	var b strings.Builder
	for x := 0; x < s.w; x++ {
		c, ok := s.cells[[2]int{x, y}]
		if !ok || c.IsContinuation() {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func rowText(r Row) string {
	return core.Text(r.Cells)
}

func TestLayoutPlaceholder(t *testing.T) {
	l := New(theme.Light(), 0).Layout(convert.Tree{}, 40)

	if l.Height() != 1 || rowText(l.Rows[0]) != Placeholder {
		t.Errorf("Rows = %v, want placeholder", l.Rows)
	}
	if len(l.Extents) != 0 {
		t.Errorf("Extents = %v, want none", l.Extents)
	}
}

func TestLayoutExtents(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{
		{Kind: convert.KindHeading, Level: 1, Text: "Title"},
		{Kind: convert.KindParagraph, Text: "hello world"},
	}}

	l := New(theme.Light(), 0).Layout(tree, 5)

	want := []string{"Title", "═════", "", "hello", "world"}
	if l.Height() != len(want) {
		t.Fatalf("Height() = %d, want %d", l.Height(), len(want))
	}
	for i, w := range want {
		if got := rowText(l.Rows[i]); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
	if l.Rows[2].Block != Separator {
		t.Errorf("row 2 block = %d, want separator", l.Rows[2].Block)
	}

	wantExt := []viewport.Extent{{Top: 0, Bottom: 2}, {Top: 3, Bottom: 5}}
	if len(l.Extents) != len(wantExt) {
		t.Fatalf("Extents = %v, want %v", l.Extents, wantExt)
	}
	for i := range wantExt {
		if l.Extents[i] != wantExt[i] {
			t.Errorf("Extents[%d] = %v, want %v", i, l.Extents[i], wantExt[i])
		}
	}
}

func TestLayoutWrapCap(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindParagraph, Text: "one two three"}}}

	l := New(theme.Light(), 7).Layout(tree, 80)
	if l.Height() != 2 {
		t.Errorf("Height() = %d, want 2 with wrap 7", l.Height())
	}
}

func TestLayoutListHangingIndent(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindList, Text: "• alpha beta\n• c"}}}

	l := New(theme.Light(), 0).Layout(tree, 8)

	want := []string{"• alpha", "  beta", "• c"}
	if l.Height() != len(want) {
		t.Fatalf("rows = %d, want %d", l.Height(), len(want))
	}
	for i, w := range want {
		if got := rowText(l.Rows[i]); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestLayoutListContinuationLine(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindList, Text: "• a\n  the cat sat on"}}}

	l := New(theme.Light(), 0).Layout(tree, 10)

	want := []string{"• a", "  the cat", "  sat on"}
	if l.Height() != len(want) {
		t.Fatalf("rows = %d, want %d", l.Height(), len(want))
	}
	for i, w := range want {
		if got := rowText(l.Rows[i]); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}

func TestHangingIndent(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"• item", "• "},
		{"  12. item", "  12. "},
		{"• [x] done", "• [x] "},
		{"  the cat sat", "  "},
		{"plain", ""},
		{"1.5 is not a marker", ""},
	}
	for _, tt := range tests {
		if got := tt.line[:hangingIndent(tt.line)]; got != tt.want {
			t.Errorf("hangingIndent(%q) lead = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLayoutQuote(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindQuote, Text: "said"}}}

	l := New(theme.Light(), 0).Layout(tree, 20)
	if got := rowText(l.Rows[0]); got != "│ said" {
		t.Errorf("row = %q, want %q", got, "│ said")
	}
}

func TestLayoutTable(t *testing.T) {
	tree := convert.Tree{Blocks: []convert.Block{{
		Kind: convert.KindTable,
		Rows: [][]string{{"a", "bb"}, {"ccc", "d"}},
	}}}

	l := New(theme.Light(), 0).Layout(tree, 40)

	want := []string{"a   │ bb", "────┼───", "ccc │ d"}
	for i, w := range want {
		if got := rowText(l.Rows[i]); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
	if !l.Rows[0].Cells[0].Style.Attributes.Has(core.AttrBold) {
		t.Error("table header is not bold")
	}
}

func TestLayoutCodePadsToWidth(t *testing.T) {
	th := theme.Light()
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindCode, Text: "x\ty\n"}}}

	l := New(th, 0).Layout(tree, 10)

	if l.Height() != 1 {
		t.Fatalf("Height() = %d, want 1", l.Height())
	}
	row := l.Rows[0]
	if len(row.Cells) != 10 {
		t.Errorf("cells = %d, want 10", len(row.Cells))
	}
	if got := rowText(row); got != "x    y    " {
		t.Errorf("row = %q", got)
	}
	if row.Cells[9].Style.Background != th.Code.Background {
		t.Error("padding lacks code background")
	}
}

func TestLayoutCodeHighlighted(t *testing.T) {
	src := "package main\n\nfunc main() {}\n"
	tree := convert.Tree{Blocks: []convert.Block{{Kind: convert.KindCode, Language: "go", Text: src}}}

	l := New(theme.Light(), 0).Layout(tree, 30)

	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	if l.Height() != len(lines) {
		t.Fatalf("Height() = %d, want %d", l.Height(), len(lines))
	}
	for i, line := range lines {
		if got := strings.TrimRight(rowText(l.Rows[i]), " "); got != line {
			t.Errorf("row %d = %q, want %q", i, got, line)
		}
	}
}

func TestLayoutError(t *testing.T) {
	th := theme.Dark()
	l := New(th, 0).Layout(convert.ErrorTree(), 80)

	if len(l.Extents) != 1 {
		t.Fatalf("Extents = %v, want one", l.Extents)
	}
	if got := l.Rows[0].Cells[0].Style; got != th.Error {
		t.Errorf("style = %+v, want error style", got)
	}
}

func TestDrawActiveAndScroll(t *testing.T) {
	th := theme.Light()
	r := New(th, 0)
	tree := convert.Tree{Blocks: []convert.Block{
		{Kind: convert.KindParagraph, Text: "one"},
		{Kind: convert.KindParagraph, Text: "two"},
	}}
	l := r.Layout(tree, 10)
	s := newScreen(10, 3)

	r.Draw(s, Rect{Width: 10, Height: 3}, l, DrawOptions{Top: 2, Active: 1})

	if got := s.line(0); got != "two       " {
		t.Errorf("line 0 = %q, want two", got)
	}
	if bg := s.cells[[2]int{9, 0}].Style.Background; bg != th.Active.Background {
		t.Errorf("active row background = %v, want %v", bg, th.Active.Background)
	}
	if bg := s.cells[[2]int{0, 1}].Style.Background; bg != th.Text.Background {
		t.Errorf("row past content background = %v, want text", bg)
	}
}

func TestDrawRightToLeft(t *testing.T) {
	r := New(theme.Light(), 0)
	l := r.Layout(convert.Tree{Blocks: []convert.Block{{Kind: convert.KindParagraph, Text: "abc"}}}, 6)
	s := newScreen(6, 1)

	r.Draw(s, Rect{Width: 6, Height: 1}, l, DrawOptions{Active: -1, RightToLeft: true})

	if got := s.line(0); got != "   abc" {
		t.Errorf("line = %q, want right-aligned", got)
	}
}
