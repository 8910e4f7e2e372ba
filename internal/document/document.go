// Package document holds the single mutable markdown buffer together with
// its caret and selection.
//
// Offsets are byte offsets into the UTF-8 text and always sit on rune
// boundaries. A Document is owned by the event loop and is not safe for
// concurrent use.
package document

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/mdwriter/internal/format"
)

// Document is the author's text buffer.
// Anchor is where the selection started; Head is where typing occurs.
// When Anchor == Head there is no selection.
type Document struct {
	text   string
	anchor int
	head   int

	// goal column for vertical movement, in runes; -1 when unset
	goal int
}

// New creates a document holding text with the caret at the end.
func New(text string) *Document {
	d := &Document{goal: -1}
	d.SetText(text)
	d.SetCaret(len(text))
	return d
}

// Text returns the full buffer.
func (d *Document) Text() string { return d.text }

// Len returns the buffer length in bytes.
func (d *Document) Len() int { return len(d.text) }

// Caret returns the head offset.
func (d *Document) Caret() int { return d.head }

// Selection returns the selection as an ordered half-open range.
func (d *Document) Selection() format.Selection {
	if d.anchor <= d.head {
		return format.Selection{Start: d.anchor, End: d.head}
	}
	return format.Selection{Start: d.head, End: d.anchor}
}

// HasSelection reports whether a non-empty range is selected.
func (d *Document) HasSelection() bool { return d.anchor != d.head }

// SetText replaces the whole buffer, keeping the caret where it fits.
func (d *Document) SetText(text string) {
	d.text = text
	d.anchor = d.clamp(d.anchor)
	d.head = d.clamp(d.head)
	d.goal = -1
}

// Clear empties the buffer.
func (d *Document) Clear() {
	d.text = ""
	d.anchor, d.head = 0, 0
	d.goal = -1
}

// SetCaret collapses the selection to offset.
func (d *Document) SetCaret(offset int) {
	offset = d.clamp(offset)
	d.anchor, d.head = offset, offset
	d.goal = -1
}

// Select sets the selection from anchor to head.
func (d *Document) Select(anchor, head int) {
	d.anchor = d.clamp(anchor)
	d.head = d.clamp(head)
	d.goal = -1
}

// clamp limits offset to the buffer and backs it up to a rune boundary.
func (d *Document) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.text) {
		return len(d.text)
	}
	for offset > 0 && offset < len(d.text) && !utf8.RuneStart(d.text[offset]) {
		offset--
	}
	return offset
}

// Splice replaces the selection range with replacement and places the
// caret at caret, an absolute offset into the new text.
func (d *Document) Splice(sel format.Selection, replacement string, caret int) {
	start, end := d.clamp(sel.Start), d.clamp(sel.End)
	if start > end {
		start, end = end, start
	}
	d.text = d.text[:start] + replacement + d.text[end:]
	d.SetCaret(caret)
}

// Insert replaces the selection with s and moves the caret after it.
func (d *Document) Insert(s string) {
	sel := d.Selection()
	d.Splice(sel, s, sel.Start+len(s))
}

// DeleteBackward deletes the selection, or the rune before the caret.
// Returns false if nothing changed.
func (d *Document) DeleteBackward() bool {
	if d.HasSelection() {
		d.Insert("")
		return true
	}
	if d.head == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(d.text[:d.head])
	d.Splice(format.Selection{Start: d.head - size, End: d.head}, "", d.head-size)
	return true
}

// DeleteForward deletes the selection, or the rune after the caret.
// Returns false if nothing changed.
func (d *Document) DeleteForward() bool {
	if d.HasSelection() {
		d.Insert("")
		return true
	}
	if d.head >= len(d.text) {
		return false
	}
	_, size := utf8.DecodeRuneInString(d.text[d.head:])
	d.Splice(format.Selection{Start: d.head, End: d.head + size}, "", d.head)
	return true
}

// Lines splits the buffer into lines without their terminators.
func (d *Document) Lines() []string {
	return strings.Split(d.text, "\n")
}

// LineCount returns the number of lines; an empty buffer has one line.
func (d *Document) LineCount() int {
	return strings.Count(d.text, "\n") + 1
}

// CaretLine returns the zero-based line of the caret.
func (d *Document) CaretLine() int {
	return strings.Count(d.text[:d.head], "\n")
}

// CaretColumn returns the caret column in runes within its line.
func (d *Document) CaretColumn() int {
	return utf8.RuneCountInString(d.text[d.lineStart(d.head):d.head])
}

// lineStart returns the offset of the start of the line containing offset.
func (d *Document) lineStart(offset int) int {
	return strings.LastIndexByte(d.text[:offset], '\n') + 1
}

// lineEnd returns the offset of the newline ending the line containing
// offset, or the buffer length.
func (d *Document) lineEnd(offset int) int {
	if i := strings.IndexByte(d.text[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(d.text)
}

// OffsetAt returns the offset of rune column col on line, clamped to the
// line and the buffer.
func (d *Document) OffsetAt(line, col int) int {
	if line < 0 {
		return 0
	}
	start := 0
	for i := 0; i < line; i++ {
		j := strings.IndexByte(d.text[start:], '\n')
		if j < 0 {
			return len(d.text)
		}
		start += j + 1
	}
	end := d.lineEnd(start)
	off := start
	for n := 0; n < col && off < end; n++ {
		_, size := utf8.DecodeRuneInString(d.text[off:])
		off += size
	}
	return off
}

// move sets the head, collapsing the selection unless extend is set.
func (d *Document) move(head int, extend bool) {
	d.head = d.clamp(head)
	if !extend {
		d.anchor = d.head
	}
}

// MoveLeft moves the caret one rune left.
func (d *Document) MoveLeft(extend bool) {
	if !extend && d.HasSelection() {
		d.move(d.Selection().Start, false)
	} else if d.head > 0 {
		_, size := utf8.DecodeLastRuneInString(d.text[:d.head])
		d.move(d.head-size, extend)
	}
	d.goal = -1
}

// MoveRight moves the caret one rune right.
func (d *Document) MoveRight(extend bool) {
	if !extend && d.HasSelection() {
		d.move(d.Selection().End, false)
	} else if d.head < len(d.text) {
		_, size := utf8.DecodeRuneInString(d.text[d.head:])
		d.move(d.head+size, extend)
	}
	d.goal = -1
}

// MoveVertical moves the caret by delta lines, keeping the goal column.
func (d *Document) MoveVertical(delta int, extend bool) {
	if d.goal < 0 {
		d.goal = d.CaretColumn()
	}
	line := d.CaretLine() + delta
	if line < 0 {
		line = 0
	}
	if last := d.LineCount() - 1; line > last {
		line = last
	}
	goal := d.goal
	d.move(d.OffsetAt(line, goal), extend)
	d.goal = goal
}

// MoveLineStart moves the caret to the start of its line.
func (d *Document) MoveLineStart(extend bool) {
	d.move(d.lineStart(d.head), extend)
	d.goal = -1
}

// MoveLineEnd moves the caret to the end of its line.
func (d *Document) MoveLineEnd(extend bool) {
	d.move(d.lineEnd(d.head), extend)
	d.goal = -1
}
