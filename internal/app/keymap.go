package app

import (
	"github.com/dshills/mdwriter/internal/format"
	"github.com/dshills/mdwriter/internal/renderer/backend"
)

// Action names bound to shortcuts.
const (
	ActionExportMarkdown = "export.markdown"
	ActionExportHTML     = "export.html"
	ActionTogglePreview  = "view.preview"
	ActionToggleDir      = "view.direction"
	ActionToggleTheme    = "view.theme"
	ActionClear          = "buffer.clear"
	ActionSelectAll      = "buffer.selectAll"
	ActionQuit           = "app.quit"
)

// shortcuts maps control keys to actions.
var shortcuts = map[backend.Key]string{
	backend.KeyCtrlS: ActionExportMarkdown,
	backend.KeyCtrlW: ActionExportHTML,
	backend.KeyCtrlE: ActionTogglePreview,
	backend.KeyCtrlD: ActionToggleDir,
	backend.KeyCtrlT: ActionToggleTheme,
	backend.KeyCtrlL: ActionClear,
	backend.KeyCtrlA: ActionSelectAll,
	backend.KeyCtrlQ: ActionQuit,
	backend.KeyCtrlC: ActionQuit,
}

// formatKeys maps Alt+letter to the built-in formats.
var formatKeys = map[rune]format.Kind{
	'b': format.Bold,
	'i': format.Italic,
	's': format.Strikethrough,
	'c': format.Code,
	'k': format.CodeBlock,
	'l': format.Link,
	'g': format.Image,
	'u': format.UnorderedList,
	'o': format.OrderedList,
	'q': format.Quote,
}

// Keymap resolves key events to actions and formats.
type Keymap struct {
	shortcuts map[backend.Key]string
	formats   map[rune]format.Kind
}

// NewKeymap returns the default bindings plus extra Alt+key formats.
// Extras may not shadow a built-in binding.
func NewKeymap(extra map[rune]format.Kind) Keymap {
	km := Keymap{
		shortcuts: shortcuts,
		formats:   make(map[rune]format.Kind, len(formatKeys)+len(extra)),
	}
	for r, k := range extra {
		km.formats[r] = k
	}
	for r, k := range formatKeys {
		km.formats[r] = k
	}
	return km
}

// Action returns the action bound to ev.
func (km Keymap) Action(ev backend.Event) (string, bool) {
	name, ok := km.shortcuts[ev.Key]
	return name, ok
}

// Format returns the format bound to an Alt+rune event.
func (km Keymap) Format(ev backend.Event) (format.Kind, bool) {
	if ev.Key != backend.KeyRune || !ev.Mod.Has(backend.ModAlt) {
		return "", false
	}
	kind, ok := km.formats[ev.Rune]
	return kind, ok
}
