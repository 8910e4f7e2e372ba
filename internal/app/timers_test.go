package app

import (
	"testing"
	"time"

	"github.com/dshills/mdwriter/internal/livesync"
)

type fakeTimer struct {
	stopped bool
	fire    func()
}

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

func newFakeTimerSet() (*timerSet, *[]*fakeTimer, *[]livesync.TimerFired) {
	var timers []*fakeTimer
	var posted []livesync.TimerFired
	ts := newTimerSet(func(ev livesync.TimerFired) { posted = append(posted, ev) })
	ts.after = func(_ time.Duration, f func()) stopper {
		ft := &fakeTimer{fire: f}
		timers = append(timers, ft)
		return ft
	}
	return ts, &timers, &posted
}

func TestTimerSetReplaces(t *testing.T) {
	ts, timers, posted := newFakeTimerSet()

	ts.start(livesync.TimerRender, 1, time.Millisecond)
	ts.start(livesync.TimerRender, 2, time.Millisecond)

	if !(*timers)[0].stopped {
		t.Error("replaced timer was not stopped")
	}
	if seq, ok := ts.pending(livesync.TimerRender); !ok || seq != 2 {
		t.Errorf("pending() = %d, %v, want 2", seq, ok)
	}

	// the first callback was already queued when it was replaced
	(*timers)[0].fire()
	(*timers)[1].fire()
	if len(*posted) != 2 {
		t.Fatalf("posted %d fires, want 2", len(*posted))
	}
	if ts.fired((*posted)[0]) {
		t.Error("stale fire accepted")
	}
	if !ts.fired((*posted)[1]) {
		t.Error("current fire rejected")
	}
	if ts.fired((*posted)[1]) {
		t.Error("fire accepted twice")
	}
}

func TestTimerSetStopAll(t *testing.T) {
	ts, timers, _ := newFakeTimerSet()

	ts.start(livesync.TimerRender, 1, time.Millisecond)
	ts.start(livesync.TimerCooldown, 1, time.Millisecond)
	ts.stopAll()

	for i, ft := range *timers {
		if !ft.stopped {
			t.Errorf("timer %d still running", i)
		}
	}
	if _, ok := ts.pending(livesync.TimerCooldown); ok {
		t.Error("cooldown still pending after stopAll")
	}
}
