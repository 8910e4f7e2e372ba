package app

import (
	"github.com/dshills/mdwriter/internal/livesync"
	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/statusline"
	"github.com/dshills/mdwriter/internal/renderer/theme"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (a *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		a.resize(ev.Width, ev.Height)
	case backend.EventKey:
		return a.handleKeyEvent(ev)
	case backend.EventMouse:
		a.handleMouseEvent(ev)
	case backend.EventPaste:
		a.handlePasteEvent(ev)
	}
	return nil
}

// handleKeyEvent processes keyboard input events.
func (a *Application) handleKeyEvent(ev backend.Event) error {
	a.dirty = true

	if a.pasting {
		switch ev.Key {
		case backend.KeyRune:
			a.pasteBuf = append(a.pasteBuf, ev.Rune)
		case backend.KeyEnter:
			a.pasteBuf = append(a.pasteBuf, '\n')
		case backend.KeyTab:
			a.pasteBuf = append(a.pasteBuf, '\t')
		}
		return nil
	}

	action, isAction := a.keymap.Action(ev)
	if action != ActionClear {
		a.clearArmed = false
	}
	if isAction {
		return a.runAction(action)
	}

	if kind, ok := a.keymap.Format(ev); ok {
		a.dispatch(livesync.FormatRequested{Kind: kind})
		return nil
	}

	a.status.ClearMessage()
	extend := ev.Mod.Has(backend.ModShift)

	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) || ev.Mod.Has(backend.ModCtrl) {
			return nil
		}
		a.insert(string(ev.Rune))
	case backend.KeyEnter:
		a.insert("\n")
	case backend.KeyTab:
		a.insert("  ")
	case backend.KeyBackspace:
		if a.doc.DeleteBackward() {
			a.textChanged()
		}
	case backend.KeyDelete:
		if a.doc.DeleteForward() {
			a.textChanged()
		}
	case backend.KeyLeft:
		a.doc.MoveLeft(extend)
		a.caretMoved()
	case backend.KeyRight:
		a.doc.MoveRight(extend)
		a.caretMoved()
	case backend.KeyUp:
		a.doc.MoveVertical(-1, extend)
		a.caretMoved()
	case backend.KeyDown:
		a.doc.MoveVertical(1, extend)
		a.caretMoved()
	case backend.KeyPageUp:
		a.doc.MoveVertical(-a.editorView.Height(), extend)
		a.caretMoved()
	case backend.KeyPageDown:
		a.doc.MoveVertical(a.editorView.Height(), extend)
		a.caretMoved()
	case backend.KeyHome:
		a.doc.MoveLineStart(extend)
		a.caretMoved()
	case backend.KeyEnd:
		a.doc.MoveLineEnd(extend)
		a.caretMoved()
	}
	return nil
}

func (a *Application) insert(s string) {
	a.doc.Insert(s)
	a.textChanged()
}

// textChanged reports an edit to the engine.
func (a *Application) textChanged() {
	a.revealCaret()
	a.dispatch(livesync.TextChanged{Text: a.doc.Text(), Caret: a.doc.Caret()})
}

// caretMoved reports caret or selection movement to the engine.
func (a *Application) caretMoved() {
	a.revealCaret()
	a.dispatch(livesync.SelectionChanged{Selection: a.doc.Selection(), Caret: a.doc.Caret()})
}

// handleMouseEvent scrolls the pane under the wheel and places the caret
// on a left click in the editor.
func (a *Application) handleMouseEvent(ev backend.Event) {
	ed, _, pv := a.panes()
	inPreview := a.previewVisible && ev.MouseX >= pv.X

	switch ev.MouseButton {
	case backend.MouseWheelUp, backend.MouseWheelDown:
		delta := wheelStep
		if ev.MouseButton == backend.MouseWheelUp {
			delta = -wheelStep
		}
		if inPreview {
			a.previewView.ScrollBy(delta, false)
			a.dispatch(livesync.PreviewScrolled{Preview: a.previewView.Metrics()})
		} else {
			before := a.editorView.Metrics()
			a.editorView.ScrollBy(delta, false)
			if after := a.editorView.Metrics(); after != before {
				a.dispatch(livesync.EditorScrolled{Editor: after})
			}
		}
		a.dirty = true

	case backend.MouseLeft:
		if inPreview || ev.MouseY >= ed.Height || a.direction == livesync.RTL {
			return
		}
		line := a.editorView.TopLine() + ev.MouseY
		col := a.editorView.LeftColumn() + ev.MouseX - ed.X
		a.doc.SetCaret(a.doc.OffsetAt(line, col))
		a.caretMoved()
		a.dirty = true
	}
}

// handlePasteEvent collects a bracketed paste and inserts it as one edit.
func (a *Application) handlePasteEvent(ev backend.Event) {
	if ev.PasteStart {
		a.pasting = true
		a.pasteBuf = a.pasteBuf[:0]
		return
	}
	a.pasting = false
	if len(a.pasteBuf) > 0 {
		a.insert(string(a.pasteBuf))
	}
	a.dirty = true
}

// runAction executes a named shortcut action.
func (a *Application) runAction(name string) error {
	switch name {
	case ActionExportMarkdown:
		a.exportMarkdown()
	case ActionExportHTML:
		a.exportHTML()
	case ActionTogglePreview:
		a.dispatch(livesync.PreviewToggled{})
	case ActionToggleDir:
		a.dispatch(livesync.DirectionToggled{})
	case ActionToggleTheme:
		a.setTheme(a.theme.Toggle().Name)
	case ActionClear:
		a.clear()
	case ActionSelectAll:
		a.doc.Select(0, a.doc.Len())
		a.caretMoved()
	case ActionQuit:
		return ErrQuit
	}
	return nil
}

// setTheme switches palettes and redraws the preview with them.
func (a *Application) setTheme(name string) {
	th, err := theme.ByName(name)
	if err != nil {
		a.notify(statusline.MessageError, "%v", err)
		return
	}
	a.applyTheme(th.WithCodeStyle(a.cfg.UI.CodeStyle))
	a.relayout()
	a.dirty = true
}
