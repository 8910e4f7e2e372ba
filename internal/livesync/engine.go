// Package livesync ties the render scheduler, line map, scroll synchronizer,
// caret highlighter and text transformer into one deterministic state
// machine.
//
// The shell feeds typed events to Engine.Dispatch and executes the returned
// commands: timers, preview updates, buffer replacements and saves. The
// engine itself never blocks, starts goroutines, touches the screen or the
// clock, so every interaction can be replayed in tests.
package livesync

import (
	"strings"

	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/format"
	"github.com/dshills/mdwriter/internal/highlight"
	"github.com/dshills/mdwriter/internal/logging"
	"github.com/dshills/mdwriter/internal/render"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
	"github.com/dshills/mdwriter/internal/scrollsync"
	"github.com/dshills/mdwriter/internal/textinfo"
)

// Engine is the live synchronization state. It is owned by a single event
// loop and is not safe for concurrent use.
type Engine struct {
	text  string
	caret int
	sel   format.Selection

	converter convert.Converter
	formats   format.Table
	scheduler *render.Scheduler
	sync      scrollsync.Synchronizer

	previewVisible  bool
	direction       Direction
	directionManual bool
	autoDirection   bool

	// layout of the published tree, nil until the shell reports it
	extents []viewport.Extent
	preview viewport.Metrics

	highlighted  int
	highlightSeq uint64

	logger *logging.Logger
}

// New creates an engine. Call Start to schedule the first render.
func New(opts ...Option) *Engine {
	e := &Engine{
		previewVisible: true,
		autoDirection:  true,
		highlighted:    highlight.None,
		logger:         logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.converter == nil {
		e.converter = convert.NewGoldmark()
	}
	if e.formats == nil {
		e.formats = format.Builtin()
	}
	e.scheduler = render.NewScheduler(e.converter)
	e.logger = e.logger.WithComponent("livesync")
	e.setCaret(e.caret)
	return e
}

// Start schedules the initial render of the buffer.
func (e *Engine) Start() []Command {
	return e.schedule()
}

// Shutdown cancels all timers and asks for a final save.
func (e *Engine) Shutdown() []Command {
	if e.scheduler.Pending() {
		e.logger.Debug("dropping pending render on shutdown")
	}
	e.scheduler.Cancel()
	e.sync.Reset()
	e.highlightSeq++
	return []Command{
		CancelTimer{Timer: TimerRender},
		CancelTimer{Timer: TimerCooldown},
		CancelTimer{Timer: TimerHighlight},
		Save{Text: e.text},
	}
}

// Dispatch applies ev and returns the side effects to execute, in order.
func (e *Engine) Dispatch(ev Event) []Command {
	switch ev := ev.(type) {
	case TextChanged:
		e.text = ev.Text
		e.setCaret(ev.Caret)
		return e.schedule()
	case SelectionChanged:
		e.setSelection(ev.Selection, ev.Caret)
		return e.follow()
	case EditorScrolled:
		return e.editorScrolled(ev.Editor)
	case PreviewScrolled:
		// preview scrolling never moves the editor
		e.preview = ev.Preview
		return nil
	case PreviewLayout:
		e.extents = append(e.extents[:0:0], ev.Extents...)
		e.preview = ev.Preview
		return nil
	case FormatRequested:
		return e.applyFormat(ev.Kind)
	case FormatsChanged:
		e.formats = ev.Table
		if e.formats == nil {
			e.formats = format.Builtin()
		}
		return nil
	case TimerFired:
		return e.timerFired(ev.Timer, ev.Seq)
	case PreviewToggled:
		return e.togglePreview()
	case DirectionToggled:
		e.directionManual = true
		return e.setDirection(1 - e.direction)
	case Cleared:
		return e.clear()
	default:
		e.logger.Warn("unhandled event %T", ev)
		return nil
	}
}

func (e *Engine) schedule() []Command {
	timer, ok := e.scheduler.Schedule(e.text)
	if !ok {
		return nil
	}
	return []Command{StartTimer{Timer: TimerRender, Seq: timer.Seq, Delay: timer.Delay}}
}

func (e *Engine) setCaret(offset int) {
	e.caret = clampOffset(offset, len(e.text))
	e.sel = format.Selection{Start: e.caret, End: e.caret}
}

func (e *Engine) setSelection(sel format.Selection, caret int) {
	start := clampOffset(sel.Start, len(e.text))
	end := clampOffset(sel.End, len(e.text))
	if start > end {
		start, end = end, start
	}
	e.sel = format.Selection{Start: start, End: end}
	e.caret = clampOffset(caret, len(e.text))
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

func (e *Engine) editorScrolled(editor viewport.Metrics) []Command {
	target, timer, ok := e.sync.OnEditorScroll(editor, e.preview, e.previewVisible)
	if !ok {
		return nil
	}
	e.preview.Top = target
	return []Command{
		ScrollPreview{Offset: target},
		StartTimer{Timer: TimerCooldown, Seq: timer.Seq, Delay: timer.Delay},
	}
}

func (e *Engine) applyFormat(kind format.Kind) []Command {
	res, ok := e.formats.Apply(e.text, e.sel, kind)
	if !ok {
		e.logger.Debug("ignoring unknown format %q", kind)
		return nil
	}
	e.text = res.Text
	e.setCaret(res.Caret)

	cmds := []Command{ReplaceText{Text: res.Text, Caret: e.caret}}
	return append(cmds, e.schedule()...)
}

func (e *Engine) timerFired(kind TimerKind, seq uint64) []Command {
	switch kind {
	case TimerRender:
		snap, fired, err := e.scheduler.Fire(seq)
		if !fired {
			return nil
		}
		if err != nil {
			e.logger.Error("render failed: %v", err)
		}
		return e.published(snap)
	case TimerCooldown:
		e.sync.EndCooldown(seq)
		return nil
	case TimerHighlight:
		if seq != e.highlightSeq {
			return nil
		}
		return e.follow()
	default:
		return nil
	}
}

// published emits the commands that follow a fired render.
func (e *Engine) published(snap render.Snapshot) []Command {
	e.extents = nil
	e.highlighted = highlight.None

	cmds := []Command{PublishTree{
		Snapshot: snap,
		Words:    textinfo.CountWords(snap.Text),
		Chars:    textinfo.CountChars(snap.Text),
	}}

	if e.autoDirection && !e.directionManual && e.direction == LTR && textinfo.ContainsArabic(snap.Text) {
		e.logger.Debug("arabic text detected, switching to rtl")
		cmds = append(cmds, e.setDirection(RTL)...)
	}

	cmds = append(cmds, Save{Text: e.text})
	return append(cmds, e.startHighlightTimer())
}

func (e *Engine) startHighlightTimer() Command {
	e.highlightSeq++
	return StartTimer{Timer: TimerHighlight, Seq: e.highlightSeq, Delay: render.HighlightDelay}
}

// follow highlights the block nearest the caret and keeps it comfortably
// in view.
func (e *Engine) follow() []Command {
	snap, ok := e.scheduler.Published()
	if !ok {
		return nil
	}

	caretLine := highlight.CaretLine(e.text, e.caret)
	holdScroll := e.sync.Scrolling() || !e.previewVisible
	plan := highlight.Follow(snap.Lines, caretLine, e.extents, e.preview, holdScroll)

	var cmds []Command
	if plan.Block != e.highlighted {
		e.highlighted = plan.Block
		cmds = append(cmds, Highlight{Block: plan.Block})
	}
	if plan.Scroll {
		e.preview.Top = plan.Target
		cmds = append(cmds, ScrollPreview{Offset: plan.Target, Smooth: true})
	}
	return cmds
}

func (e *Engine) togglePreview() []Command {
	e.previewVisible = !e.previewVisible
	cmds := []Command{SetPreviewVisible{Visible: e.previewVisible}}
	if !e.previewVisible {
		e.sync.Reset()
		return append(cmds, CancelTimer{Timer: TimerCooldown})
	}
	// layout is reported again once the pane is drawn
	e.extents = nil
	return append(cmds, e.startHighlightTimer())
}

func (e *Engine) setDirection(d Direction) []Command {
	if d != LTR && d != RTL {
		d = LTR
	}
	e.direction = d
	return []Command{SetDirection{Direction: d}}
}

func (e *Engine) clear() []Command {
	if strings.TrimSpace(e.text) == "" {
		return nil
	}
	e.text = ""
	e.setCaret(0)
	cmds := []Command{ReplaceText{Text: "", Caret: 0}}
	return append(cmds, e.schedule()...)
}

// Text returns the engine's view of the buffer.
func (e *Engine) Text() string { return e.text }

// Caret returns the caret offset.
func (e *Engine) Caret() int { return e.caret }

// Direction returns the writing direction.
func (e *Engine) Direction() Direction { return e.direction }

// PreviewVisible reports whether the preview pane is shown.
func (e *Engine) PreviewVisible() bool { return e.previewVisible }

// Highlighted returns the highlighted block, or highlight.None.
func (e *Engine) Highlighted() int { return e.highlighted }

// Syncing reports whether a synchronized scroll cooldown is active.
func (e *Engine) Syncing() bool { return e.sync.Scrolling() }

// Published returns the last published render.
func (e *Engine) Published() (render.Snapshot, bool) { return e.scheduler.Published() }

