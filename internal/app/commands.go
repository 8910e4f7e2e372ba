package app

import (
	"math"
	"strings"

	"github.com/dshills/mdwriter/internal/livesync"
)

// dispatch feeds ev to the engine and executes the result.
func (a *Application) dispatch(ev livesync.Event) {
	a.execute(a.engine.Dispatch(ev))
}

// execute performs engine commands in order.
func (a *Application) execute(cmds []livesync.Command) {
	for _, cmd := range cmds {
		a.logger.Debug("command %T", cmd)
		switch c := cmd.(type) {
		case livesync.StartTimer:
			a.timers.start(c.Timer, c.Seq, c.Delay)
		case livesync.CancelTimer:
			a.timers.stop(c.Timer)
		case livesync.PublishTree:
			a.metrics.RecordPublish()
			a.tree = c.Snapshot.Tree
			a.highlighted = -1
			a.status.SetCounts(c.Words, c.Chars)
			a.relayout()
		case livesync.Highlight:
			a.highlighted = c.Block
		case livesync.ScrollPreview:
			a.previewView.ScrollTo(int(math.Round(c.Offset)), c.Smooth)
		case livesync.ReplaceText:
			a.doc.SetText(c.Text)
			a.doc.SetCaret(c.Caret)
			a.revealCaret()
		case livesync.Save:
			a.saveSession(c.Text)
		case livesync.SetDirection:
			a.direction = c.Direction
			a.status.SetDirection(strings.ToUpper(c.Direction.String()))
			a.revealCaret()
		case livesync.SetPreviewVisible:
			a.previewVisible = c.Visible
			a.status.SetPreviewVisible(c.Visible)
			a.resize(a.width, a.height)
		default:
			a.logger.Warn("unhandled command %T", cmd)
		}
		a.dirty = true
	}
}
