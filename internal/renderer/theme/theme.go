// Package theme defines the light and dark palettes of the editor.
package theme

import (
	"fmt"

	"github.com/dshills/mdwriter/internal/renderer/core"
)

// Theme holds every style the editor draws with.
type Theme struct {
	// Name is the configuration name of the theme.
	Name string

	// ChromaStyle is the chroma style used for code blocks.
	ChromaStyle string

	Text        core.Style
	Muted       core.Style
	Selection   core.Style
	Border      core.Style
	Placeholder core.Style

	Heading   core.Style
	Quote     core.Style
	Code      core.Style
	Rule      core.Style
	TableHead core.Style
	Error     core.Style

	// Active is merged over the highlighted preview block.
	Active core.Style

	StatusBar core.Style
	StatusKey core.Style
	Warning   core.Style
}

// Light returns the light palette.
func Light() Theme {
	bg := core.MustHex("#ffffff")
	fg := core.MustHex("#24292f")
	base := core.Style{Foreground: fg, Background: bg}

	return Theme{
		Name:        "light",
		ChromaStyle: "github",
		Text:        base,
		Muted:       base.WithForeground(core.MustHex("#6e7781")),
		Selection:   base.WithBackground(core.MustHex("#b6d7ff")),
		Border:      base.WithForeground(core.MustHex("#d0d7de")),
		Placeholder: base.WithForeground(core.MustHex("#8c959f")).With(core.AttrItalic),
		Heading:     base.WithForeground(core.MustHex("#0550ae")).With(core.AttrBold),
		Quote:       base.WithForeground(core.MustHex("#57606a")).With(core.AttrItalic),
		Code:        base.WithBackground(core.MustHex("#f6f8fa")),
		Rule:        base.WithForeground(core.MustHex("#d0d7de")),
		TableHead:   base.With(core.AttrBold),
		Error:       base.WithForeground(core.MustHex("#cf222e")).With(core.AttrBold),
		Active:      core.Style{Foreground: core.ColorDefault, Background: core.MustHex("#fff8c5")},
		StatusBar:   core.Style{Foreground: fg, Background: core.MustHex("#eaeef2")},
		StatusKey:   core.Style{Foreground: core.MustHex("#ffffff"), Background: core.MustHex("#0969da")}.With(core.AttrBold),
		Warning:     core.Style{Foreground: core.MustHex("#9a6700"), Background: core.MustHex("#eaeef2")}.With(core.AttrBold),
	}
}

// Dark returns the dark palette.
func Dark() Theme {
	bg := core.MustHex("#0d1117")
	fg := core.MustHex("#c9d1d9")
	base := core.Style{Foreground: fg, Background: bg}

	return Theme{
		Name:        "dark",
		ChromaStyle: "github-dark",
		Text:        base,
		Muted:       base.WithForeground(core.MustHex("#8b949e")),
		Selection:   base.WithBackground(core.MustHex("#264f78")),
		Border:      base.WithForeground(core.MustHex("#30363d")),
		Placeholder: base.WithForeground(core.MustHex("#6e7681")).With(core.AttrItalic),
		Heading:     base.WithForeground(core.MustHex("#79c0ff")).With(core.AttrBold),
		Quote:       base.WithForeground(core.MustHex("#8b949e")).With(core.AttrItalic),
		Code:        base.WithBackground(core.MustHex("#161b22")),
		Rule:        base.WithForeground(core.MustHex("#30363d")),
		TableHead:   base.With(core.AttrBold),
		Error:       base.WithForeground(core.MustHex("#ff7b72")).With(core.AttrBold),
		Active:      core.Style{Foreground: core.ColorDefault, Background: core.MustHex("#2d2a12")},
		StatusBar:   core.Style{Foreground: fg, Background: core.MustHex("#161b22")},
		StatusKey:   core.Style{Foreground: core.MustHex("#0d1117"), Background: core.MustHex("#58a6ff")}.With(core.AttrBold),
		Warning:     core.Style{Foreground: core.MustHex("#d29922"), Background: core.MustHex("#161b22")}.With(core.AttrBold),
	}
}

// ByName returns the named theme.
func ByName(name string) (Theme, error) {
	switch name {
	case "light", "":
		return Light(), nil
	case "dark":
		return Dark(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == "dark" {
		return Light()
	}
	return Dark()
}

// WithCodeStyle returns t using the named chroma style for code blocks.
// An empty name keeps the theme's own.
func (t Theme) WithCodeStyle(name string) Theme {
	if name != "" {
		t.ChromaStyle = name
	}
	return t
}
