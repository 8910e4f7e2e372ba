// Package store saves and restores the editing session.
//
// The session file is TOML and holds the buffer with its caret, the theme
// and the writing direction. Persistence is best effort: callers log
// failures and carry on editing.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Session is the persisted editor state.
type Session struct {
	Text      string    `toml:"text"`
	Caret     int       `toml:"caret"`
	Theme     string    `toml:"theme"`
	Direction string    `toml:"direction"`
	SavedAt   time.Time `toml:"saved_at"`
}

// Store reads and writes a session file.
type Store struct {
	path string
	now  func() time.Time
}

// New creates a store for the file at path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session. ok is false when no session has been saved yet.
func (s *Store) Load() (sess Session, ok bool, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("reading session %s: %w", s.path, err)
	}

	if err := toml.Unmarshal(data, &sess); err != nil {
		return Session{}, false, fmt.Errorf("decoding session %s: %w", s.path, err)
	}
	if sess.Caret < 0 || sess.Caret > len(sess.Text) {
		sess.Caret = len(sess.Text)
	}
	return sess, true, nil
}

// Save writes the session atomically: a temp file in the same directory is
// renamed over the old one.
func (s *Store) Save(sess Session) error {
	if sess.SavedAt.IsZero() {
		sess.SavedAt = s.now()
	}

	data, err := toml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp session: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
