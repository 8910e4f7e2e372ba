// Package config loads mdwriter settings.
//
// Settings are resolved in three layers, later layers winning: built-in
// defaults, an optional TOML or YAML file (chosen by extension), and
// MDWRITER_* environment variables. The sync engine's timing constants are
// fixed and have no setting.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/mdwriter/internal/format"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the complete application configuration.
type Config struct {
	Log     LogConfig      `toml:"log" yaml:"log"`
	Session SessionConfig  `toml:"session" yaml:"session"`
	Export  ExportConfig   `toml:"export" yaml:"export"`
	UI      UIConfig       `toml:"ui" yaml:"ui"`
	Formats []FormatConfig `toml:"formats" yaml:"formats"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// SessionConfig controls save/restore of the buffer.
type SessionConfig struct {
	Path     string `toml:"path" yaml:"path"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	Dir string `toml:"dir" yaml:"dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme          string `toml:"theme" yaml:"theme"`
	PreviewVisible bool   `toml:"preview" yaml:"preview"`
	CodeStyle      string `toml:"code_style" yaml:"code_style"`
	AutoDirection  bool   `toml:"auto_direction" yaml:"auto_direction"`
	Wrap           int    `toml:"wrap" yaml:"wrap"`
}

// FormatConfig declares an extra wrap format. Key is the Alt+key shortcut
// that applies it, if any.
type FormatConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Open        string `toml:"open" yaml:"open"`
	Close       string `toml:"close" yaml:"close"`
	Placeholder string `toml:"placeholder" yaml:"placeholder"`
	Key         string `toml:"key" yaml:"key"`
}

// Default returns the built-in configuration.
func Default() Config {
	dir := DataDir()
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "mdwriter.log"),
		},
		Session: SessionConfig{
			Path: filepath.Join(dir, "session.toml"),
		},
		Export: ExportConfig{
			Dir: ".",
		},
		UI: UIConfig{
			Theme:          ThemeLight,
			PreviewVisible: true,
			CodeStyle:      "",
			AutoDirection:  true,
			Wrap:           0,
		},
	}
}

// DataDir returns the directory holding the session and log files.
func DataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mdwriter")
	}
	return filepath.Join(os.TempDir(), "mdwriter")
}

// DefaultPath returns the config file path looked up when none is given.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// Validate checks the configuration for values the application cannot use.
func (c Config) Validate() error {
	var errs ValidationErrors

	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be %q or %q, got %q", ThemeLight, ThemeDark, c.UI.Theme),
		})
	}

	if c.UI.Wrap < 0 {
		errs = append(errs, ValidationError{Field: "ui.wrap", Message: "must not be negative"})
	}

	builtin := format.Builtin()
	seen := make(map[string]bool)
	for i, f := range c.Formats {
		field := fmt.Sprintf("formats[%d]", i)
		switch {
		case strings.TrimSpace(f.Name) == "":
			errs = append(errs, ValidationError{Field: field + ".name", Message: "is required"})
		case builtin[format.Kind(f.Name)] != nil:
			errs = append(errs, ValidationError{Field: field + ".name", Message: fmt.Sprintf("%q is a built-in format", f.Name)})
		case seen[f.Name]:
			errs = append(errs, ValidationError{Field: field + ".name", Message: fmt.Sprintf("%q is declared twice", f.Name)})
		}
		seen[f.Name] = true

		if f.Open == "" {
			errs = append(errs, ValidationError{Field: field + ".open", Message: "is required"})
		}
		if len([]rune(f.Key)) > 1 {
			errs = append(errs, ValidationError{Field: field + ".key", Message: "must be a single character"})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FormatTable returns the built-in formats plus the configured extras.
// A format without Close reuses Open, as in "==text==".
func (c Config) FormatTable() format.Table {
	table := format.Builtin()
	for _, f := range c.Formats {
		closing := f.Close
		if closing == "" {
			closing = f.Open
		}
		table[format.Kind(f.Name)] = format.Wrap{
			Open:        f.Open,
			Close:       closing,
			Placeholder: f.Placeholder,
		}
	}
	return table
}

// FormatKeys maps configured shortcut keys to format names.
func (c Config) FormatKeys() map[rune]format.Kind {
	keys := make(map[rune]format.Kind)
	for _, f := range c.Formats {
		if r := []rune(f.Key); len(r) == 1 {
			keys[r[0]] = format.Kind(f.Name)
		}
	}
	return keys
}
