package app

import (
	"time"

	"github.com/dshills/mdwriter/internal/livesync"
)

// stopper is the part of *time.Timer the timer set needs.
type stopper interface {
	Stop() bool
}

func afterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

type timerSlot struct {
	seq   uint64
	timer stopper
}

// timerSet holds one running timer per kind. Starting a kind stops the
// timer it replaces. Fires are posted back to the event loop, which asks
// the set whether they are still current.
type timerSet struct {
	after func(time.Duration, func()) stopper
	post  func(livesync.TimerFired)
	slots map[livesync.TimerKind]timerSlot
}

func newTimerSet(post func(livesync.TimerFired)) *timerSet {
	return &timerSet{
		after: afterFunc,
		post:  post,
		slots: make(map[livesync.TimerKind]timerSlot),
	}
}

func (ts *timerSet) start(kind livesync.TimerKind, seq uint64, delay time.Duration) {
	ts.stop(kind)
	fired := livesync.TimerFired{Timer: kind, Seq: seq}
	ts.slots[kind] = timerSlot{
		seq:   seq,
		timer: ts.after(delay, func() { ts.post(fired) }),
	}
}

func (ts *timerSet) stop(kind livesync.TimerKind) {
	if slot, ok := ts.slots[kind]; ok {
		slot.timer.Stop()
		delete(ts.slots, kind)
	}
}

func (ts *timerSet) stopAll() {
	for kind := range ts.slots {
		ts.stop(kind)
	}
}

// pending returns the sequence number of the running timer of kind.
func (ts *timerSet) pending(kind livesync.TimerKind) (uint64, bool) {
	slot, ok := ts.slots[kind]
	return slot.seq, ok
}

// fired consumes the slot for a delivered fire. It returns false for a
// fire that was stopped or replaced after its callback was queued.
func (ts *timerSet) fired(ev livesync.TimerFired) bool {
	seq, ok := ts.pending(ev.Timer)
	if !ok || seq != ev.Seq {
		return false
	}
	delete(ts.slots, ev.Timer)
	return true
}
