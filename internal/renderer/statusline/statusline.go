// Package statusline draws the bottom bar: counts, direction, pane state and
// transient messages.
package statusline

import (
	"strings"

	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/theme"
	"github.com/dshills/mdwriter/internal/textinfo"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom status line.
type StatusLine struct {
	words     int
	chars     int
	direction string
	preview   bool
	saved     bool

	message     string
	messageType MessageType

	theme theme.Theme
	width int
}

// New creates a new status line.
func New(th theme.Theme) *StatusLine {
	return &StatusLine{
		direction: "LTR",
		preview:   true,
		theme:     th,
	}
}

// SetTheme switches palettes.
func (s *StatusLine) SetTheme(th theme.Theme) {
	s.theme = th
}

// SetCounts updates the word and character counts.
func (s *StatusLine) SetCounts(words, chars int) {
	s.words = words
	s.chars = chars
}

// SetDirection updates the direction label.
func (s *StatusLine) SetDirection(dir string) {
	s.direction = dir
}

// SetPreviewVisible updates the pane indicator.
func (s *StatusLine) SetPreviewVisible(visible bool) {
	s.preview = visible
}

// SetSaved marks whether the session file is current.
func (s *StatusLine) SetSaved(saved bool) {
	s.saved = saved
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 1
}

// Counts formats the counters shown on the right, e.g. "3 words · 1 character".
func (s *StatusLine) Counts() string {
	return textinfo.Plural(s.words, "word") + " · " + textinfo.Plural(s.chars, "character")
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	bar := s.theme.StatusBar
	b.Fill(0, row, s.width, 1, core.EmptyCell(bar))

	col := 0
	put := func(text string, style core.Style, limit int) {
		if limit <= col {
			return
		}
		for _, c := range core.Cells(core.Truncate(text, limit-col), style) {
			b.SetCell(col, row, c)
			col++
		}
	}

	right := s.Counts() + " "
	rightStart := s.width - core.StringWidth(right)

	put(" "+s.label()+" ", s.theme.StatusKey, s.width)
	put(" ", bar, s.width)

	if s.message != "" {
		style := bar
		switch s.messageType {
		case MessageWarning:
			style = s.theme.Warning
		case MessageError:
			style = s.theme.Warning.Merge(s.theme.Error.WithBackground(core.ColorDefault))
		}
		put(s.message, style, max(rightStart-1, col))
	}

	if rightStart > col {
		col = rightStart
		put(right, bar, s.width)
	}
}

// label is the mode block on the left.
func (s *StatusLine) label() string {
	parts := []string{s.direction}
	if s.preview {
		parts = append(parts, "PREVIEW")
	} else {
		parts = append(parts, "EDITOR")
	}
	if !s.saved {
		parts = append(parts, "*")
	}
	return strings.Join(parts, " ")
}
