package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event loop activity. Counters are atomic so a snapshot can
// be taken from any goroutine.
type Metrics struct {
	// Frame timing
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64

	// Event processing
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64
	inputDropped atomic.Uint64

	// Sync engine
	publishCount atomic.Uint64
	timerFires   atomic.Uint64
	staleTimers  atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the time taken to draw one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordEvent records the time taken to handle one loop message.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordInputDropped records an input event lost to a full queue.
func (m *Metrics) RecordInputDropped() {
	m.inputDropped.Add(1)
}

// RecordPublish records a published preview tree.
func (m *Metrics) RecordPublish() {
	m.publishCount.Add(1)
}

// RecordTimer records a timer fire; stale fires are counted separately.
func (m *Metrics) RecordTimer(stale bool) {
	if stale {
		m.staleTimers.Add(1)
		return
	}
	m.timerFires.Add(1)
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	EventCount     uint64
	AvgEventNs     int64
	InputDropped   uint64
	PublishCount   uint64
	TimerFires     uint64
	StaleTimers    uint64
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	eventCount := m.eventCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgEventNs int64
	if eventCount > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(eventCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		EventCount:     eventCount,
		AvgEventNs:     avgEventNs,
		InputDropped:   m.inputDropped.Load(),
		PublishCount:   m.publishCount.Load(),
		TimerFires:     m.timerFires.Load(),
		StaleTimers:    m.staleTimers.Load(),
	}
}

// Fields returns the snapshot as log fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"uptime":        s.Uptime.Round(time.Millisecond),
		"frames":        s.FrameCount,
		"avg_frame":     time.Duration(s.AvgFrameTimeNs),
		"max_frame":     time.Duration(s.MaxFrameTimeNs),
		"events":        s.EventCount,
		"input_dropped": s.InputDropped,
		"publishes":     s.PublishCount,
		"timer_fires":   s.TimerFires,
		"stale_timers":  s.StaleTimers,
	}
}
