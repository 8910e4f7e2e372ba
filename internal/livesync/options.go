package livesync

import (
	"github.com/dshills/mdwriter/internal/convert"
	"github.com/dshills/mdwriter/internal/format"
	"github.com/dshills/mdwriter/internal/logging"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithText sets the initial buffer. The caret starts at the end.
func WithText(text string) Option {
	return func(e *Engine) {
		e.text = text
		e.caret = len(text)
	}
}

// WithCaret sets the initial caret offset; it is clamped to the text.
func WithCaret(offset int) Option {
	return func(e *Engine) {
		e.caret = offset
	}
}

// WithConverter sets the markdown converter. Defaults to goldmark.
func WithConverter(c convert.Converter) Option {
	return func(e *Engine) {
		if c != nil {
			e.converter = c
		}
	}
}

// WithFormats sets the format table. Defaults to format.Builtin().
func WithFormats(t format.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.formats = t
		}
	}
}

// WithPreviewVisible sets whether the preview starts visible.
func WithPreviewVisible(visible bool) Option {
	return func(e *Engine) {
		e.previewVisible = visible
	}
}

// WithDirection sets the initial writing direction. A restored direction
// counts as a manual choice and disables auto-detection.
func WithDirection(d Direction) Option {
	return func(e *Engine) {
		e.direction = d
		if d == RTL {
			e.directionManual = true
		}
	}
}

// WithAutoDirection enables or disables switching to RTL when a render
// contains Arabic text. Enabled by default.
func WithAutoDirection(enabled bool) Option {
	return func(e *Engine) {
		e.autoDirection = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
