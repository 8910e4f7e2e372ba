// Package scrollsync keeps the preview scrolled to the same relative position
// as the editor.
//
// Sync runs one way only: the editor is the source of truth for position and
// preview scrolling never moves the editor. While a synchronized scroll is in
// flight the synchronizer ignores further editor scroll events for a short
// cooldown, so the preview's own scroll notifications cannot feed back.
package scrollsync

import (
	"time"

	"github.com/dshills/mdwriter/internal/renderer/viewport"
)

// Cooldown is how long editor scroll events are ignored after a sync.
const Cooldown = 150 * time.Millisecond

// Timer asks the caller to call EndCooldown(Seq) after Delay.
type Timer struct {
	Seq   uint64
	Delay time.Duration
}

// Synchronizer holds the in-flight state of editor-to-preview scrolling.
// The zero value is ready to use.
type Synchronizer struct {
	scrolling bool
	seq       uint64
}

// Scrolling reports whether a synchronized scroll cooldown is active.
func (s *Synchronizer) Scrolling() bool {
	return s.scrolling
}

// OnEditorScroll projects the editor's scroll fraction onto the preview.
//
// It returns the preview scroll offset to apply and the cooldown timer to
// start. ok is false when the event must be ignored: the preview is hidden
// or a cooldown is still running.
func (s *Synchronizer) OnEditorScroll(editor, preview viewport.Metrics, previewVisible bool) (target float64, timer Timer, ok bool) {
	if !previewVisible || s.scrolling {
		return 0, Timer{}, false
	}

	target = preview.AtFraction(editor.Fraction())

	s.scrolling = true
	s.seq++
	return target, Timer{Seq: s.seq, Delay: Cooldown}, true
}

// EndCooldown clears the scrolling flag if seq belongs to the latest sync.
// Stale timers are ignored. Returns true if the cooldown ended.
func (s *Synchronizer) EndCooldown(seq uint64) bool {
	if !s.scrolling || seq != s.seq {
		return false
	}
	s.scrolling = false
	return true
}

// Reset drops any active cooldown, invalidating outstanding timers.
func (s *Synchronizer) Reset() {
	s.scrolling = false
	s.seq++
}
