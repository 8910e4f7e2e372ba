package app

import (
	"strings"
	"time"

	"github.com/dshills/mdwriter/internal/format"
	"github.com/dshills/mdwriter/internal/livesync"
	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/preview"
)

// panes splits the screen above the status line. The preview rectangle is
// computed even when the pane is hidden so its layout width stays stable.
func (a *Application) panes() (editor, divider, prev preview.Rect) {
	h := max(a.height-a.status.Height(), 1)
	left := max(a.width/2, 1)

	divider = preview.Rect{X: left, Width: 1, Height: h}
	prev = preview.Rect{X: left + 1, Width: max(a.width-left-1, 1), Height: h}
	if !a.previewVisible {
		return preview.Rect{Width: max(a.width, 1), Height: h}, divider, prev
	}
	return preview.Rect{Width: left, Height: h}, divider, prev
}

// resize adapts both panes to a new screen size.
func (a *Application) resize(w, h int) {
	a.width, a.height = w, h
	ed, _, pv := a.panes()
	a.status.Resize(w)
	a.editorView.Resize(ed.Width, ed.Height)
	a.previewView.Resize(pv.Width, pv.Height)
	a.relayout()
	a.revealCaret()
	a.dirty = true
}

// relayout lays the published tree out again and reports the new block
// extents to the engine.
func (a *Application) relayout() {
	_, _, pv := a.panes()
	a.layout = a.preview.Layout(a.tree, pv.Width)
	a.previewView.SetMaxLine(a.layout.Height())
	if a.previewVisible {
		a.dispatch(livesync.PreviewLayout{
			Extents: a.layout.Extents,
			Preview: a.previewView.Metrics(),
		})
	}
}

// revealCaret scrolls the editor to keep the caret in view and reports
// any scroll to the engine.
func (a *Application) revealCaret() {
	before := a.editorView.Metrics()
	a.editorView.SetMaxLine(a.doc.LineCount())

	col := 0
	if a.direction == livesync.LTR {
		col = core.StringWidth(displayText(caretPrefix(a.doc.Text(), a.doc.Caret())))
	}
	a.editorView.ScrollToReveal(a.doc.CaretLine(), col)

	if after := a.editorView.Metrics(); after != before {
		a.dispatch(livesync.EditorScrolled{Editor: after})
	}
}

// caretPrefix returns the text between the start of the caret's line and
// the caret.
func caretPrefix(text string, caret int) string {
	start := strings.LastIndexByte(text[:caret], '\n') + 1
	return text[start:caret]
}

// displayText shows tabs as single spaces.
func displayText(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

// draw paints the whole screen.
func (a *Application) draw() {
	start := time.Now()
	ed, div, pv := a.panes()

	a.drawEditor(ed)
	if a.previewVisible {
		a.backend.Fill(div.X, div.Y, div.Width, div.Height, core.Cell{Rune: '│', Width: 1, Style: a.theme.Border})
		a.preview.Draw(a.backend, pv, a.layout, preview.DrawOptions{
			Top:         a.previewView.TopLine(),
			Active:      a.highlighted,
			RightToLeft: a.direction == livesync.RTL,
		})
	}
	a.status.Render(a.backend, a.height-1)
	a.backend.Show()

	a.metrics.RecordFrame(time.Since(start))
	a.dirty = false
}

func (a *Application) drawEditor(area preview.Rect) {
	th := a.theme
	a.backend.Fill(area.X, area.Y, area.Width, area.Height, core.EmptyCell(th.Text))

	rtl := a.direction == livesync.RTL
	top := a.editorView.TopLine()
	left := a.editorView.LeftColumn()
	if rtl {
		left = 0
	}

	text := a.doc.Text()
	sel := a.doc.Selection()
	caretLine := a.doc.CaretLine()
	caretX, caretY := -1, -1

	off := 0
	for i, line := range strings.Split(text, "\n") {
		if i >= top+area.Height {
			break
		}
		if i >= top {
			y := area.Y + i - top
			cells := lineCells(line, off, sel, th.Text, th.Selection)
			shown := visibleCells(cells, left, area.Width)
			x := area.X
			if rtl {
				x += area.Width - len(shown)
			}
			for j, c := range shown {
				a.backend.SetCell(x+j, y, c)
			}

			if i == caretLine {
				col := core.StringWidth(displayText(caretPrefix(text, a.doc.Caret())))
				caretY = y
				if rtl {
					caretX = x + col
				} else {
					caretX = area.X + col - left
				}
			}
		}
		off += len(line) + 1
	}

	if caretY >= 0 && caretX >= area.X && caretX < area.X+area.Width {
		a.backend.ShowCursor(caretX, caretY)
	} else {
		a.backend.HideCursor()
	}
}

// lineCells styles one buffer line, marking bytes inside sel. start is the
// offset of the line in the buffer.
func lineCells(line string, start int, sel format.Selection, text, selected core.Style) []core.Cell {
	cells := make([]core.Cell, 0, len(line))
	for i, r := range line {
		style := text
		if off := start + i; off >= sel.Start && off < sel.End {
			style = selected
		}
		if r == '\t' {
			r = ' '
		}
		cells = append(cells, core.Cells(string(r), style)...)
	}
	return cells
}

// visibleCells returns the cells from column left that fit in width.
func visibleCells(cells []core.Cell, left, width int) []core.Cell {
	if left >= len(cells) {
		return nil
	}
	cells = cells[left:]
	if len(cells) > width {
		cells = cells[:width]
	}
	if len(cells) > 0 && cells[0].IsContinuation() {
		cells[0] = core.EmptyCell(cells[0].Style)
	}
	return cells
}
