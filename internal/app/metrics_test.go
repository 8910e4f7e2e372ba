package app

import (
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	snapshot := NewMetrics().Snapshot()
	if snapshot.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0", snapshot.FrameCount)
	}
	if snapshot.MinFrameTimeNs != 0 {
		t.Errorf("MinFrameTimeNs = %d, want 0 before any frame", snapshot.MinFrameTimeNs)
	}
}

func TestMetricsRecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(10 * time.Millisecond)
	m.RecordFrame(20 * time.Millisecond)
	m.RecordFrame(6 * time.Millisecond)

	s := m.Snapshot()
	if s.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", s.FrameCount)
	}
	if s.MinFrameTimeNs != int64(6*time.Millisecond) {
		t.Errorf("MinFrameTimeNs = %d, want 6ms", s.MinFrameTimeNs)
	}
	if s.MaxFrameTimeNs != int64(20*time.Millisecond) {
		t.Errorf("MaxFrameTimeNs = %d, want 20ms", s.MaxFrameTimeNs)
	}
	if s.AvgFrameTimeNs != int64(12*time.Millisecond) {
		t.Errorf("AvgFrameTimeNs = %d, want 12ms", s.AvgFrameTimeNs)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordEvent(time.Millisecond)
	m.RecordEvent(3 * time.Millisecond)
	m.RecordInputDropped()
	m.RecordPublish()
	m.RecordTimer(false)
	m.RecordTimer(false)
	m.RecordTimer(true)

	s := m.Snapshot()
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"events", s.EventCount, 2},
		{"input dropped", s.InputDropped, 1},
		{"publishes", s.PublishCount, 1},
		{"timer fires", s.TimerFires, 2},
		{"stale timers", s.StaleTimers, 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if s.AvgEventNs != int64(2*time.Millisecond) {
		t.Errorf("AvgEventNs = %d, want 2ms", s.AvgEventNs)
	}
	if len(s.Fields()) == 0 {
		t.Error("Fields() is empty")
	}
}
