// Package app is the terminal shell around the live sync engine. It owns
// the screen, the buffer and the timers, feeds events to the engine and
// executes the commands it returns.
package app

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/mdwriter/internal/config"
	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/document"
	"github.com/dshills/mdwriter/internal/highlight"
	"github.com/dshills/mdwriter/internal/livesync"
	"github.com/dshills/mdwriter/internal/logging"
	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/preview"
	"github.com/dshills/mdwriter/internal/renderer/statusline"
	"github.com/dshills/mdwriter/internal/renderer/theme"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
	"github.com/dshills/mdwriter/internal/store"
)

// Options configures the application.
type Options struct {
	// Config is the resolved configuration.
	Config config.Config

	// ConfigPath is watched for live reloads when non-empty.
	ConfigPath string

	// File, when set, is read as the initial buffer instead of the saved
	// session.
	File string

	// Logger receives application logs. Defaults to a discarding logger.
	Logger *logging.Logger
}

// Application is the central coordinator. All fields below are owned by
// the event loop goroutine.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *logging.Logger

	doc     *document.Document
	engine  *livesync.Engine
	store   *store.Store
	timers  *timerSet
	keymap  Keymap
	metrics *Metrics
	watcher *config.Watcher

	backend     backend.Backend
	theme       theme.Theme
	preview     *preview.Renderer
	status      *statusline.StatusLine
	editorView  *viewport.Viewport
	previewView *viewport.Viewport

	tree           convert.Tree
	layout         preview.Layout
	highlighted    int
	direction      livesync.Direction
	previewVisible bool

	width, height int
	clearArmed    bool
	pasting       bool
	pasteBuf      []rune
	dirty         bool

	now func() time.Time

	inbox     chan message
	done      chan struct{}
	closeOnce sync.Once
	running   atomic.Bool
}

// New creates an application from resolved options. The buffer is taken
// from opts.File, else from the saved session, else it starts empty.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	th, err := theme.ByName(cfg.UI.Theme)
	if err != nil {
		return nil, &InitError{Component: "theme", Err: err}
	}

	a := &Application{
		opts:           opts,
		cfg:            cfg,
		logger:         logger.WithComponent("app"),
		keymap:         NewKeymap(cfg.FormatKeys()),
		metrics:        NewMetrics(),
		highlighted:    highlight.None,
		previewVisible: cfg.UI.PreviewVisible,
		now:            time.Now,
		inbox:          make(chan message, 256),
		done:           make(chan struct{}),
	}
	a.timers = newTimerSet(func(ev livesync.TimerFired) { a.post(timerMsg{ev}) })

	if !cfg.Session.Disabled {
		a.store = store.New(cfg.Session.Path)
	}

	text, caret, direction := "", 0, livesync.LTR
	if sess, ok := a.loadSession(); ok {
		text, caret = sess.Text, sess.Caret
		direction = livesync.ParseDirection(sess.Direction)
		if t, err := theme.ByName(sess.Theme); err == nil && sess.Theme != "" {
			th = t
		}
	}
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, NewOperationError("open", opts.File, err)
		}
		text, caret = string(data), 0
	}

	a.doc = document.New(text)
	a.doc.SetCaret(caret)
	a.direction = direction

	a.engine = livesync.New(
		livesync.WithText(a.doc.Text()),
		livesync.WithCaret(a.doc.Caret()),
		livesync.WithFormats(cfg.FormatTable()),
		livesync.WithPreviewVisible(a.previewVisible),
		livesync.WithDirection(direction),
		livesync.WithAutoDirection(cfg.UI.AutoDirection),
		livesync.WithLogger(logger),
	)

	a.applyTheme(th.WithCodeStyle(cfg.UI.CodeStyle))
	a.status.SetDirection(strings.ToUpper(direction.String()))
	a.status.SetPreviewVisible(a.previewVisible)
	a.editorView = viewport.NewViewport(1, 1)
	a.editorView.SetSmoothScroll(false)
	a.previewView = viewport.NewViewport(1, 1)

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			a.logger.Warn("config reload disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	return a, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (a *Application) SetBackend(b backend.Backend) error {
	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until Shutdown is called or the user quits; a user quit returns
// ErrQuit.
func (a *Application) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if err := a.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer a.backend.Shutdown()

	a.start()
	go a.pollInput()
	if a.watcher != nil {
		go a.forwardConfig()
	}

	err := a.loop()
	a.finish()
	a.Shutdown()
	return err
}

// start lays out the screen and schedules the first render.
func (a *Application) start() {
	w, h := a.backend.Size()
	a.resize(w, h)
	a.execute(a.engine.Start())
	a.draw()
	a.logger.Info("started with %d bytes", a.doc.Len())
}

// finish stops timers and writes the final session.
func (a *Application) finish() {
	a.execute(a.engine.Shutdown())
	a.timers.stopAll()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("closing config watcher: %v", err)
		}
	}
	a.logger.WithFields(a.metrics.Snapshot().Fields()).Info("stopped")
}

// Shutdown asks the event loop to stop. Safe to call from any goroutine
// and more than once.
func (a *Application) Shutdown() {
	a.closeOnce.Do(func() { close(a.done) })
}

// IsRunning returns true if the application is running.
func (a *Application) IsRunning() bool {
	return a.running.Load()
}

// Metrics returns the application's metrics.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// Document returns the buffer. Only safe to use when the loop is stopped.
func (a *Application) Document() *document.Document {
	return a.doc
}

// Engine returns the sync engine. Only safe to use when the loop is stopped.
func (a *Application) Engine() *livesync.Engine {
	return a.engine
}

// post delivers m to the event loop unless it has stopped.
func (a *Application) post(m message) {
	select {
	case a.inbox <- m:
	case <-a.done:
	}
}

// notify shows a message on the status line and logs it.
func (a *Application) notify(kind statusline.MessageType, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.status.SetMessage(msg, kind)
	switch kind {
	case statusline.MessageError:
		a.logger.Error("%s", msg)
	case statusline.MessageWarning:
		a.logger.Warn("%s", msg)
	default:
		a.logger.Debug("%s", msg)
	}
}

func (a *Application) applyTheme(th theme.Theme) {
	a.theme = th
	if a.preview == nil {
		a.preview = preview.New(th, a.cfg.UI.Wrap)
	} else {
		a.preview.SetTheme(th)
	}
	if a.status == nil {
		a.status = statusline.New(th)
	} else {
		a.status.SetTheme(th)
	}
}
