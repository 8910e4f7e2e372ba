package livesync

import (
	"time"

	"github.com/dshills/mdwriter/internal/render"
)

// TimerKind names one of the engine's timer slots. Starting a timer of a
// kind replaces any running timer of the same kind.
type TimerKind int

const (
	// TimerRender is the render debounce.
	TimerRender TimerKind = iota
	// TimerCooldown ends a synchronized scroll cooldown.
	TimerCooldown
	// TimerHighlight follows the caret shortly after a render.
	TimerHighlight
)

// String returns the timer name.
func (k TimerKind) String() string {
	switch k {
	case TimerRender:
		return "render"
	case TimerCooldown:
		return "cooldown"
	case TimerHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// Direction is the single writing-direction flag.
type Direction int

// Writing directions.
const (
	LTR Direction = iota
	RTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ParseDirection parses "rtl"; anything else is LTR.
func ParseDirection(s string) Direction {
	if s == "rtl" || s == "RTL" {
		return RTL
	}
	return LTR
}

// Command is a side effect requested by Engine.Dispatch. The shell
// executes commands in order.
type Command interface {
	command()
}

// StartTimer asks the shell to deliver TimerFired{Timer, Seq} after Delay.
type StartTimer struct {
	Timer TimerKind
	Seq   uint64
	Delay time.Duration
}

// CancelTimer stops the running timer of a kind, if any.
type CancelTimer struct {
	Timer TimerKind
}

// PublishTree replaces the preview content.
type PublishTree struct {
	Snapshot render.Snapshot
	Words    int
	Chars    int
}

// Highlight marks one preview block, clearing the previous mark. Block is
// highlight.None to clear only.
type Highlight struct {
	Block int
}

// ScrollPreview moves the preview to Offset, animated when Smooth is set.
type ScrollPreview struct {
	Offset float64
	Smooth bool
}

// ReplaceText replaces the editor buffer and places the caret.
type ReplaceText struct {
	Text  string
	Caret int
}

// Save persists the buffer.
type Save struct {
	Text string
}

// SetDirection switches the writing direction.
type SetDirection struct {
	Direction Direction
}

// SetPreviewVisible shows or hides the preview pane.
type SetPreviewVisible struct {
	Visible bool
}

func (StartTimer) command()        {}
func (CancelTimer) command()       {}
func (PublishTree) command()       {}
func (Highlight) command()         {}
func (ScrollPreview) command()     {}
func (ReplaceText) command()       {}
func (Save) command()              {}
func (SetDirection) command()      {}
func (SetPreviewVisible) command() {}
