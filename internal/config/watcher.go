package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Change is a reloaded configuration, or the error that prevented it.
type Change struct {
	Config Config
	Err    error
}

// Watcher reloads the config file whenever it is written or replaced.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temp file over the original are still seen.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	changes chan Change

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. The file itself need not exist yet, but
// its directory must.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		fsw:     fsw,
		changes: make(chan Change, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers reloaded configurations. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			w.send(Change{Config: cfg, Err: err})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.send(Change{Err: err})
		}
	}
}

// send delivers c, replacing an undelivered older change.
func (w *Watcher) send(c Change) {
	for {
		select {
		case w.changes <- c:
			return
		case <-w.done:
			return
		default:
		}
		select {
		case <-w.changes:
		default:
		}
	}
}
