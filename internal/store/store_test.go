package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.toml"))
	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("Load() reported a session that was never saved")
	}
}

func TestSaveLoad(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "session.toml"))
	s.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	want := Session{
		Text:      "# Title\n\n\"quoted\" and مرحبا\n",
		Caret:     7,
		Theme:     "dark",
		Direction: "rtl",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Text != want.Text || got.Caret != want.Caret || got.Theme != want.Theme || got.Direction != want.Direction {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if !got.SavedAt.Equal(s.now()) {
		t.Errorf("SavedAt = %v, want %v", got.SavedAt, s.now())
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "session.toml"))
	for i := 0; i < 3; i++ {
		if err := s.Save(Session{Text: "x"}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the session file", len(entries))
	}
}

func TestLoadClampsCaret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("text = \"abc\"\ncaret = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, ok, err := New(path).Load()
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}
	if got.Caret != 3 {
		t.Errorf("Caret = %d, want 3", got.Caret)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("text = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := New(path).Load(); err == nil || ok {
		t.Errorf("Load() = %v, %v, want an error", ok, err)
	}
}

func TestClear(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "session.toml"))
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on missing file = %v", err)
	}
	_ = s.Save(Session{Text: "x"})
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := s.Load(); ok {
		t.Error("session still present after Clear")
	}
}
