package app

import (
	"errors"
	"strings"

	"github.com/dshills/mdwriter/internal/export"
	"github.com/dshills/mdwriter/internal/livesync"
	"github.com/dshills/mdwriter/internal/renderer/statusline"
	"github.com/dshills/mdwriter/internal/store"
)

// loadSession reads the saved session. Failures are logged and treated as
// no session.
func (a *Application) loadSession() (store.Session, bool) {
	if a.store == nil {
		return store.Session{}, false
	}
	sess, ok, err := a.store.Load()
	if err != nil {
		a.logger.Warn("%v", NewOperationError("restore", a.store.Path(), err))
		return store.Session{}, false
	}
	return sess, ok
}

// saveSession persists text with the current caret, theme and direction.
// Failures are logged and editing continues.
func (a *Application) saveSession(text string) {
	if a.store == nil {
		return
	}
	caret := a.doc.Caret()
	if text != a.doc.Text() {
		caret = len(text)
	}
	err := a.store.Save(store.Session{
		Text:      text,
		Caret:     caret,
		Theme:     a.theme.Name,
		Direction: a.direction.String(),
		SavedAt:   a.now(),
	})
	if err != nil {
		a.logger.Warn("%v", NewOperationError("save", a.store.Path(), err))
		a.status.SetSaved(false)
		return
	}
	a.status.SetSaved(true)
}

// exportMarkdown writes the buffer to the export directory.
func (a *Application) exportMarkdown() {
	path, err := export.Markdown(a.cfg.Export.Dir, a.doc.Text(), a.now())
	a.reportExport(path, err)
}

// exportHTML writes the published tree to the export directory.
func (a *Application) exportHTML() {
	path, err := export.HTML(a.cfg.Export.Dir, export.Title(a.tree), a.tree, a.now())
	a.reportExport(path, err)
}

func (a *Application) reportExport(path string, err error) {
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		a.notify(statusline.MessageWarning, "Nothing to export")
	case err != nil:
		a.notify(statusline.MessageError, "%v", NewOperationError("export", a.cfg.Export.Dir, err))
	default:
		a.notify(statusline.MessageInfo, "Exported %s", path)
		a.logger.Info("exported %s", path)
	}
}

// clear empties the buffer on the second consecutive request.
func (a *Application) clear() {
	if strings.TrimSpace(a.doc.Text()) == "" {
		a.clearArmed = false
		return
	}
	if !a.clearArmed {
		a.clearArmed = true
		a.notify(statusline.MessageWarning, "Press Ctrl+L again to clear the document")
		return
	}
	a.clearArmed = false
	a.status.ClearMessage()
	a.dispatch(livesync.Cleared{})
}
