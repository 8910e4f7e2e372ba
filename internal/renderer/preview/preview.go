// Package preview lays out a converted tree as styled terminal rows and
// records where each block landed, so the sync engine can scroll to it.
package preview

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/theme"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
)

// Placeholder is shown when there is nothing to preview.
const Placeholder = "Preview will appear here..."

// Separator marks rows that belong to no block.
const Separator = -1

// Row is one laid-out terminal row.
type Row struct {
	Cells []core.Cell
	Block int
}

// Layout is a tree laid out for a given width.
type Layout struct {
	Rows    []Row
	Extents []viewport.Extent
	Width   int
}

// Height returns the number of rows.
func (l Layout) Height() int { return len(l.Rows) }

// Renderer lays out trees with a theme.
type Renderer struct {
	theme theme.Theme
	code  *codeHighlighter
	wrap  int
}

// New creates a renderer. A positive wrap caps the text width below the
// pane width.
func New(th theme.Theme, wrap int) *Renderer {
	return &Renderer{
		theme: th,
		code:  newCodeHighlighter(th),
		wrap:  wrap,
	}
}

// SetTheme switches palettes.
func (r *Renderer) SetTheme(th theme.Theme) {
	r.theme = th
	r.code = newCodeHighlighter(th)
}

// Theme returns the current palette.
func (r *Renderer) Theme() theme.Theme { return r.theme }

// Layout lays tree out for a pane width columns wide. Blocks are separated
// by one blank row; Extents has one entry per block.
func (r *Renderer) Layout(tree convert.Tree, width int) Layout {
	if width < 1 {
		width = 1
	}
	text := width
	if r.wrap > 0 && r.wrap < text {
		text = r.wrap
	}

	l := Layout{Width: width}
	if tree.Len() == 0 {
		l.Rows = []Row{{Cells: core.Cells(core.Truncate(Placeholder, width), r.theme.Placeholder), Block: Separator}}
		return l
	}

	l.Extents = make([]viewport.Extent, 0, tree.Len())
	for i, b := range tree.Blocks {
		if i > 0 {
			l.Rows = append(l.Rows, Row{Block: Separator})
		}
		top := len(l.Rows)
		for _, cells := range r.block(b, text) {
			l.Rows = append(l.Rows, Row{Cells: cells, Block: i})
		}
		l.Extents = append(l.Extents, viewport.Extent{Top: float64(top), Bottom: float64(len(l.Rows))})
	}
	return l
}

func (r *Renderer) block(b convert.Block, width int) [][]core.Cell {
	th := r.theme
	switch b.Kind {
	case convert.KindHeading:
		rows := styledLines(fill(b.Text, width), th.Heading)
		switch b.Level {
		case 1:
			rows = append(rows, underline(b.Text, width, '═', th.Heading))
		case 2:
			rows = append(rows, underline(b.Text, width, '─', th.Heading))
		}
		return rows
	case convert.KindList:
		return listRows(b.Text, width, th.Text)
	case convert.KindQuote:
		return quoteRows(b.Text, width, th)
	case convert.KindCode:
		return r.code.rows(b.Text, b.Language, width)
	case convert.KindTable:
		return tableRows(b.Rows, width, th)
	case convert.KindRule:
		return [][]core.Cell{core.Cells(strings.Repeat("─", width), th.Rule)}
	case convert.KindHTML:
		return styledLines(fill(b.Text, width), th.Muted)
	case convert.KindError:
		return styledLines(fill(b.Text, width), th.Error)
	default:
		return styledLines(fill(b.Text, width), th.Text)
	}
}

// fill word-wraps s to width, breaking words longer than a line.
func fill(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(wrap.String(wordwrap.String(s, width), width), "\n")
}

func styledLines(lines []string, style core.Style) [][]core.Cell {
	rows := make([][]core.Cell, len(lines))
	for i, line := range lines {
		rows[i] = core.Cells(line, style)
	}
	return rows
}

func underline(text string, width int, r rune, style core.Style) []core.Cell {
	n := min(core.StringWidth(text), width)
	return core.Cells(strings.Repeat(string(r), max(n, 1)), style)
}

// listRows wraps each item line with a hanging indent under its marker.
func listRows(text string, width int, style core.Style) [][]core.Cell {
	var rows [][]core.Cell
	for _, line := range strings.Split(text, "\n") {
		lead := line[:hangingIndent(line)]
		indent := core.StringWidth(lead)
		if indent >= width {
			lead, indent = "", 0
		}
		for i, part := range fill(line[len(lead):], width-indent) {
			prefix := lead
			if i > 0 {
				prefix = strings.Repeat(" ", indent)
			}
			rows = append(rows, core.Cells(prefix+part, style))
		}
	}
	return rows
}

// hangingIndent returns the byte length of a list line's indentation plus
// its marker and task box, if any. Continuation lines have no marker and
// hang at their own indentation.
func hangingIndent(line string) int {
	trimmed := strings.TrimLeft(line, " ")
	n := len(line) - len(trimmed)
	m := listMarker(trimmed)
	if m == 0 {
		return n
	}
	n += m
	for _, box := range []string{"[ ] ", "[x] ", "[X] "} {
		if strings.HasPrefix(line[n:], box) {
			return n + len(box)
		}
	}
	return n
}

// listMarker returns the byte length of a leading "• " or "N. " marker.
func listMarker(s string) int {
	if strings.HasPrefix(s, "• ") {
		return len("• ")
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && strings.HasPrefix(s[i:], ". ") {
		return i + 2
	}
	return 0
}

func quoteRows(text string, width int, th theme.Theme) [][]core.Cell {
	bar := core.Cells("│ ", th.Border)
	inner := max(width-len(bar), 1)

	var rows [][]core.Cell
	for _, para := range strings.Split(text, "\n") {
		for _, line := range fill(para, inner) {
			row := append([]core.Cell{}, bar...)
			rows = append(rows, append(row, core.Cells(line, th.Quote)...))
		}
	}
	return rows
}

func tableRows(cells [][]string, width int, th theme.Theme) [][]core.Cell {
	if len(cells) == 0 {
		return nil
	}

	var widths []int
	for _, row := range cells {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], core.StringWidth(c))
		}
	}

	line := func(row []string, style core.Style) []core.Cell {
		var b strings.Builder
		for i, w := range widths {
			if i > 0 {
				b.WriteString(" │ ")
			}
			var c string
			if i < len(row) {
				c = row[i]
			}
			b.WriteString(c)
			b.WriteString(strings.Repeat(" ", w-core.StringWidth(c)))
		}
		return core.Cells(core.Truncate(strings.TrimRight(b.String(), " "), width), style)
	}

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}

	rows := [][]core.Cell{
		line(cells[0], th.TableHead),
		core.Cells(core.Truncate(strings.Join(rule, "─┼─"), width), th.Border),
	}
	for _, row := range cells[1:] {
		rows = append(rows, line(row, th.Text))
	}
	return rows
}
