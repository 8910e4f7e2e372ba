package document

import (
	"testing"

	"github.com/dshills/mdwriter/internal/format"
)

func TestNewPlacesCaretAtEnd(t *testing.T) {
	d := New("hello")
	if d.Caret() != 5 {
		t.Errorf("Caret() = %d, want 5", d.Caret())
	}
	if d.HasSelection() {
		t.Error("new document should have no selection")
	}
}

func TestInsertReplacesSelection(t *testing.T) {
	d := New("say hello now")
	d.Select(4, 9)
	d.Insert("bye")

	if d.Text() != "say bye now" {
		t.Errorf("Text() = %q, want %q", d.Text(), "say bye now")
	}
	if d.Caret() != 7 {
		t.Errorf("Caret() = %d, want 7", d.Caret())
	}
}

func TestDeleteBackwardMultibyte(t *testing.T) {
	d := New("aé")
	if !d.DeleteBackward() {
		t.Fatal("DeleteBackward() reported no change")
	}
	if d.Text() != "a" {
		t.Errorf("Text() = %q, want %q", d.Text(), "a")
	}

	d.SetCaret(0)
	if d.DeleteBackward() {
		t.Error("DeleteBackward() at start should report no change")
	}
}

func TestDeleteForward(t *testing.T) {
	d := New("abc")
	d.SetCaret(1)
	d.DeleteForward()
	if d.Text() != "ac" || d.Caret() != 1 {
		t.Errorf("got %q caret %d, want %q caret 1", d.Text(), d.Caret(), "ac")
	}

	d.SetCaret(2)
	if d.DeleteForward() {
		t.Error("DeleteForward() at end should report no change")
	}
}

func TestDeleteSelection(t *testing.T) {
	d := New("abcdef")
	d.Select(4, 1)
	d.DeleteBackward()
	if d.Text() != "aef" || d.Caret() != 1 {
		t.Errorf("got %q caret %d, want %q caret 1", d.Text(), d.Caret(), "aef")
	}
}

func TestCaretLineAndColumn(t *testing.T) {
	d := New("one\ntwö\nthree")
	d.SetCaret(len("one\ntwö"))

	if d.CaretLine() != 1 {
		t.Errorf("CaretLine() = %d, want 1", d.CaretLine())
	}
	if d.CaretColumn() != 3 {
		t.Errorf("CaretColumn() = %d, want 3", d.CaretColumn())
	}
}

func TestMoveVerticalKeepsGoalColumn(t *testing.T) {
	d := New("long line\nab\nanother line")
	d.SetCaret(7) // line 0, column 7

	d.MoveVertical(1, false)
	if d.CaretLine() != 1 || d.CaretColumn() != 2 {
		t.Fatalf("after down: line %d col %d, want line 1 col 2", d.CaretLine(), d.CaretColumn())
	}

	d.MoveVertical(1, false)
	if d.CaretLine() != 2 || d.CaretColumn() != 7 {
		t.Errorf("after second down: line %d col %d, want line 2 col 7", d.CaretLine(), d.CaretColumn())
	}

	d.MoveVertical(10, false)
	if d.CaretLine() != 2 {
		t.Errorf("moving past the last line should stop at line 2, got %d", d.CaretLine())
	}
}

func TestMoveExtendsSelection(t *testing.T) {
	d := New("abc")
	d.SetCaret(0)
	d.MoveRight(true)
	d.MoveRight(true)

	if sel := d.Selection(); sel.Start != 0 || sel.End != 2 {
		t.Errorf("Selection() = %+v, want [0,2)", sel)
	}

	d.MoveLeft(false)
	if d.HasSelection() || d.Caret() != 0 {
		t.Errorf("MoveLeft without extend should collapse to start, caret %d", d.Caret())
	}
}

func TestLineStartEnd(t *testing.T) {
	d := New("ab\ncdef\ng")
	d.SetCaret(5)

	d.MoveLineStart(false)
	if d.Caret() != 3 {
		t.Errorf("MoveLineStart() caret = %d, want 3", d.Caret())
	}
	d.MoveLineEnd(true)
	if sel := d.Selection(); sel.Start != 3 || sel.End != 7 {
		t.Errorf("Selection() = %+v, want [3,7)", sel)
	}
}

func TestSpliceClampsCaret(t *testing.T) {
	d := New("abc")
	d.Splice(format.Selection{Start: 1, End: 2}, "XYZ", 100)
	if d.Text() != "aXYZc" {
		t.Errorf("Text() = %q, want %q", d.Text(), "aXYZc")
	}
	if d.Caret() != 5 {
		t.Errorf("Caret() = %d, want 5", d.Caret())
	}
}

func TestSetTextClampsCaret(t *testing.T) {
	d := New("abcdef")
	d.SetText("ab")
	if d.Caret() != 2 {
		t.Errorf("Caret() = %d, want 2", d.Caret())
	}
}

func TestClampToRuneBoundary(t *testing.T) {
	d := New("é")
	d.SetCaret(1) // middle of a two-byte rune
	if d.Caret() != 0 {
		t.Errorf("Caret() = %d, want 0", d.Caret())
	}
}

func TestClear(t *testing.T) {
	d := New("text")
	d.Clear()
	if d.Text() != "" || d.Caret() != 0 || d.LineCount() != 1 {
		t.Errorf("Clear() left %q caret %d lines %d", d.Text(), d.Caret(), d.LineCount())
	}
}
