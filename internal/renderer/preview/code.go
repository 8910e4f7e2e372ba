package preview

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/dshills/mdwriter/internal/renderer/core"
	"github.com/dshills/mdwriter/internal/renderer/theme"
)

const tabWidth = 4

var (
	lexerCache   = make(map[string]chroma.Lexer)
	lexerCacheMu sync.RWMutex
)

// lexerFor returns a coalescing lexer for a fence language, or nil.
func lexerFor(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}

	lexerCacheMu.RLock()
	lexer, ok := lexerCache[lang]
	lexerCacheMu.RUnlock()
	if ok {
		return lexer
	}

	lexer = lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Match("file." + lang)
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}

	lexerCacheMu.Lock()
	lexerCache[lang] = lexer
	lexerCacheMu.Unlock()
	return lexer
}

// codeHighlighter colors fenced code with a chroma style over the theme's
// code background.
type codeHighlighter struct {
	base   core.Style
	style  *chroma.Style
	styles map[chroma.TokenType]core.Style
}

func newCodeHighlighter(th theme.Theme) *codeHighlighter {
	return &codeHighlighter{
		base:   th.Code,
		style:  styles.Get(th.ChromaStyle),
		styles: make(map[chroma.TokenType]core.Style),
	}
}

func (h *codeHighlighter) tokenStyle(tt chroma.TokenType) core.Style {
	if s, ok := h.styles[tt]; ok {
		return s
	}

	s := h.base
	entry := h.style.Get(tt)
	if entry.Colour.IsSet() {
		s = s.WithForeground(core.ColorFromRGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue()))
	}
	if entry.Bold == chroma.Yes {
		s = s.With(core.AttrBold)
	}
	if entry.Italic == chroma.Yes {
		s = s.With(core.AttrItalic)
	}
	if entry.Underline == chroma.Yes {
		s = s.With(core.AttrUnderline)
	}
	h.styles[tt] = s
	return s
}

// rows renders code one source line per row, padded with the code
// background and cut at width.
func (h *codeHighlighter) rows(code, lang string, width int) [][]core.Cell {
	code = strings.ReplaceAll(strings.TrimSuffix(code, "\n"), "\t", strings.Repeat(" ", tabWidth))

	rows := [][]core.Cell{nil}
	emit := func(text string, style core.Style) {
		parts := strings.Split(text, "\n")
		for i, part := range parts {
			if i > 0 {
				rows = append(rows, nil)
			}
			last := len(rows) - 1
			rows[last] = append(rows[last], core.Cells(part, style)...)
		}
	}

	lexer := lexerFor(lang)
	if lexer == nil {
		emit(code, h.base)
	} else if it, err := lexer.Tokenise(nil, code); err != nil {
		emit(code, h.base)
	} else {
		for _, tok := range it.Tokens() {
			if tok.Value != "" {
				emit(tok.Value, h.tokenStyle(tok.Type))
			}
		}
		// Lexers append a final newline to unterminated input.
		if n := len(rows); n > 1 && len(rows[n-1]) == 0 && !strings.HasSuffix(code, "\n") {
			rows = rows[:n-1]
		}
	}

	for i, row := range rows {
		rows[i] = pad(clip(row, width), width, h.base)
	}
	return rows
}

// clip cuts cells to width columns without splitting a wide rune.
func clip(cells []core.Cell, width int) []core.Cell {
	if len(cells) <= width {
		return cells
	}
	cells = cells[:width]
	if n := len(cells); n > 0 && cells[n-1].Width == 2 {
		cells[n-1] = core.EmptyCell(cells[n-1].Style)
	}
	return cells
}

func pad(cells []core.Cell, width int, style core.Style) []core.Cell {
	for len(cells) < width {
		cells = append(cells, core.EmptyCell(style))
	}
	return cells
}
