// Package render debounces markdown conversion.
//
// Every text mutation calls Schedule. A burst of mutations arriving faster
// than the quiescence window produces exactly one conversion, of the last
// text in the burst. The scheduler never starts timers itself: Schedule
// returns a timer request and the owner calls Fire with its sequence number
// when the timer elapses. Only the latest request fires, and only once.
package render

import (
	"time"

	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/linemap"
)

const (
	// Quiescence is the quiet period that must pass before a render.
	Quiescence = 50 * time.Millisecond

	// HighlightDelay separates a published render from the caret
	// highlight that follows it, giving the preview time to lay out.
	HighlightDelay = 10 * time.Millisecond
)

// Timer asks the caller to call Fire(Seq) after Delay.
type Timer struct {
	Seq   uint64
	Delay time.Duration
}

// Snapshot is a published render. Snapshots are frozen; the next render
// replaces the whole value.
type Snapshot struct {
	Text  string
	Tree  convert.Tree
	Lines linemap.LineMap
}

// Scheduler owns the render debounce state and the latest snapshot.
type Scheduler struct {
	converter convert.Converter

	seq         uint64
	pending     bool
	pendingText string

	published    Snapshot
	hasPublished bool
}

// NewScheduler creates a scheduler around converter.
func NewScheduler(converter convert.Converter) *Scheduler {
	return &Scheduler{converter: converter}
}

// Schedule requests a render of text.
//
// It returns false, and leaves any pending request alone, when text equals
// the pending text, or when nothing is pending and text equals the last
// published text. Otherwise the pending request is superseded.
func (s *Scheduler) Schedule(text string) (Timer, bool) {
	if s.pending {
		if text == s.pendingText {
			return Timer{}, false
		}
	} else if s.hasPublished && text == s.published.Text {
		return Timer{}, false
	}

	s.seq++
	s.pending = true
	s.pendingText = text
	return Timer{Seq: s.seq, Delay: Quiescence}, true
}

// Pending reports whether a render is waiting for its timer.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// Cancel drops the pending request. Outstanding timers become stale.
func (s *Scheduler) Cancel() {
	s.seq++
	s.pending = false
	s.pendingText = ""
}

// Fire renders the pending text if seq belongs to the latest request.
//
// fired is false for stale or repeated timers. On a conversion failure the
// error tree is published with an empty line map and err describes the
// failure; the snapshot is still valid and must be shown.
func (s *Scheduler) Fire(seq uint64) (snap Snapshot, fired bool, err error) {
	if !s.pending || seq != s.seq {
		return Snapshot{}, false, nil
	}
	s.pending = false
	text := s.pendingText
	s.pendingText = ""

	snap, err = s.convert(text)
	s.published = snap
	s.hasPublished = true
	return snap, true, err
}

func (s *Scheduler) convert(text string) (Snapshot, error) {
	tree, err := s.converter.Convert(text)
	if err != nil {
		return Snapshot{Text: text, Tree: convert.ErrorTree()}, err
	}
	return Snapshot{
		Text:  text,
		Tree:  tree,
		Lines: linemap.BuildFromText(text, tree.Len()),
	}, nil
}

// Published returns the last published snapshot.
func (s *Scheduler) Published() (Snapshot, bool) {
	return s.published, s.hasPublished
}
