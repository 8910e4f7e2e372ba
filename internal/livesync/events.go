package livesync

import (
	"github.com/dshills/mdwriter/internal/format"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
)

// Event is an input to Engine.Dispatch.
type Event interface {
	event()
}

// TextChanged reports the full buffer after an author edit.
type TextChanged struct {
	Text  string
	Caret int
}

// SelectionChanged reports caret or selection movement without an edit.
// Caret is the end where typing occurs.
type SelectionChanged struct {
	Selection format.Selection
	Caret     int
}

// EditorScrolled reports the editor's scroll metrics after it moved.
type EditorScrolled struct {
	Editor viewport.Metrics
}

// PreviewScrolled reports the preview's scroll metrics after it moved,
// whatever moved it.
type PreviewScrolled struct {
	Preview viewport.Metrics
}

// PreviewLayout reports where each block of the published tree landed,
// in preview content coordinates, along with the preview metrics.
type PreviewLayout struct {
	Extents []viewport.Extent
	Preview viewport.Metrics
}

// FormatRequested asks for a structural rewrite of the selection.
type FormatRequested struct {
	Kind format.Kind
}

// FormatsChanged replaces the format table, as after a config reload.
// A nil table restores the built-in formats.
type FormatsChanged struct {
	Table format.Table
}

// TimerFired reports that a timer started by StartTimer elapsed.
type TimerFired struct {
	Timer TimerKind
	Seq   uint64
}

// PreviewToggled flips preview visibility.
type PreviewToggled struct{}

// DirectionToggled flips the writing direction by hand.
type DirectionToggled struct{}

// Cleared asks for the buffer to be emptied.
type Cleared struct{}

func (TextChanged) event()      {}
func (SelectionChanged) event() {}
func (EditorScrolled) event()   {}
func (PreviewScrolled) event()  {}
func (PreviewLayout) event()    {}
func (FormatRequested) event()  {}
func (FormatsChanged) event()   {}
func (TimerFired) event()       {}
func (PreviewToggled) event()   {}
func (DirectionToggled) event() {}
func (Cleared) event()          {}
