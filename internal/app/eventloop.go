package app

import (
	"runtime/debug"
	"time"

	"github.com/dshills/mdwriter/internal/config"
	"github.com/dshills/mdwriter/internal/livesync"
	"github.com/dshills/mdwriter/internal/logging"
	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/preview"
	"github.com/dshills/mdwriter/internal/renderer/statusline"
)

// message is anything posted to the event loop.
type message interface{}

type inputMsg struct{ ev backend.Event }

type timerMsg struct{ fired livesync.TimerFired }

type configMsg struct{ change config.Change }

const (
	targetFPS = 60
	frameTime = time.Second / targetFPS

	// wheelStep is the number of rows one wheel notch scrolls.
	wheelStep = 3
)

// loop is the single goroutine that owns all application state. Input,
// timers and config reloads arrive through one channel; a frame ticker
// drives scroll animation.
func (a *Application) loop() error {
	frameTicker := time.NewTicker(frameTime)
	defer frameTicker.Stop()

	lastUpdate := time.Now()
	for {
		select {
		case <-a.done:
			return nil

		case m := <-a.inbox:
			if err := a.handle(m); err != nil {
				return err
			}

		case now := <-frameTicker.C:
			dt := now.Sub(lastUpdate).Seconds()
			lastUpdate = now
			a.animate(dt)
		}

		if a.dirty {
			a.draw()
		}
	}
}

// handle processes one message, converting a panic into an error so a bad
// event cannot leave the terminal in raw mode.
func (a *Application) handle(m message) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			a.logger.Error("%v", err)
		}
		a.metrics.RecordEvent(time.Since(start))
	}()

	switch m := m.(type) {
	case inputMsg:
		return a.handleBackendEvent(m.ev)
	case timerMsg:
		a.handleTimer(m.fired)
	case configMsg:
		a.handleConfig(m.change)
	}
	return nil
}

func (a *Application) handleTimer(ev livesync.TimerFired) {
	if !a.timers.fired(ev) {
		a.metrics.RecordTimer(true)
		return
	}
	a.metrics.RecordTimer(false)
	a.dispatch(ev)
}

// animate advances smooth preview scrolling and reports each step.
func (a *Application) animate(dt float64) {
	if !a.previewView.IsAnimating() {
		return
	}
	if a.previewView.Update(dt) {
		a.dispatch(livesync.PreviewScrolled{Preview: a.previewView.Metrics()})
		a.dirty = true
	}
}

// handleConfig applies a reloaded configuration. Log level, theme, code
// style and wrap width take effect immediately; other settings on restart.
func (a *Application) handleConfig(c config.Change) {
	if c.Err != nil {
		a.notify(statusline.MessageError, "Config reload failed: %v", c.Err)
		return
	}

	cfg := c.Config
	a.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))

	if cfg.UI.Theme != a.cfg.UI.Theme || cfg.UI.CodeStyle != a.cfg.UI.CodeStyle || cfg.UI.Wrap != a.cfg.UI.Wrap {
		a.cfg.UI = cfg.UI
		a.preview = preview.New(a.theme, cfg.UI.Wrap)
		a.setTheme(cfg.UI.Theme)
	}
	a.cfg.Log = cfg.Log
	a.cfg.Formats = cfg.Formats
	a.keymap = NewKeymap(cfg.FormatKeys())
	a.dispatch(livesync.FormatsChanged{Table: cfg.FormatTable()})
	a.notify(statusline.MessageInfo, "Configuration reloaded")
}

// pollInput forwards backend events to the loop until shutdown.
func (a *Application) pollInput() {
	for {
		ev := a.backend.PollEvent()
		select {
		case <-a.done:
			return
		default:
		}
		if ev.Type == backend.EventNone {
			if !a.running.Load() {
				return
			}
			continue
		}

		select {
		case a.inbox <- inputMsg{ev}:
		case <-a.done:
			return
		default:
			a.metrics.RecordInputDropped()
		}
	}
}

// forwardConfig forwards config reloads to the loop.
func (a *Application) forwardConfig() {
	for c := range a.watcher.Changes() {
		a.post(configMsg{c})
	}
}
