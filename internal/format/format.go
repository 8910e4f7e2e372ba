// Package format rewrites a selection into a structural markdown form.
//
// Every format kind is an entry in a table: either a Wrap rule that
// surrounds the selection with a marker pair, or a Prefix rule that marks
// each selected line. Adding a format is a table entry, not new control flow.
package format

import (
	"strconv"
	"strings"
)

// Kind names a format.
type Kind string

// Built-in format kinds.
const (
	Bold          Kind = "bold"
	Italic        Kind = "italic"
	Strikethrough Kind = "strikethrough"
	Code          Kind = "code"
	CodeBlock     Kind = "codeblock"
	Link          Kind = "link"
	Image         Kind = "image"
	UnorderedList Kind = "ul"
	OrderedList   Kind = "ol"
	Quote         Kind = "quote"
)

// Selection is a half-open byte range [Start, End) into the document.
type Selection struct {
	Start int
	End   int
}

// Empty reports whether the selection has no extent.
func (s Selection) Empty() bool { return s.Start == s.End }

// normalize orders and clamps the selection to a text of length n.
func (s Selection) normalize(n int) Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, 0), n)
	return s
}

// Rule produces the replacement text for a selection.
type Rule interface {
	// Replace returns the replacement for selected (possibly empty) and the
	// caret offset relative to the start of the replacement.
	Replace(selected string) (replacement string, caret int)
}

// Wrap surrounds the selection with Open and Close.
//
// With an empty selection Placeholder is inserted between the markers and
// the caret is placed right after Open, so the author can type straight
// into the placeholder. With a selection the caret lands after Close.
type Wrap struct {
	Open        string
	Close       string
	Placeholder string
}

// Replace implements Rule.
func (w Wrap) Replace(selected string) (string, int) {
	if selected == "" {
		return w.Open + w.Placeholder + w.Close, len(w.Open)
	}
	out := w.Open + selected + w.Close
	return out, len(out)
}

// Prefix marks every selected line with a marker. Marker receives the
// zero-based line index within the selection.
type Prefix struct {
	Marker      func(i int) string
	Placeholder string
}

// Replace implements Rule.
func (p Prefix) Replace(selected string) (string, int) {
	if selected == "" {
		selected = p.Placeholder
	}
	lines := strings.Split(selected, "\n")
	for i, line := range lines {
		lines[i] = p.Marker(i) + line
	}
	out := strings.Join(lines, "\n")
	return out, len(out)
}

func literal(marker string) func(int) string {
	return func(int) string { return marker }
}

func numbered(i int) string {
	return strconv.Itoa(i+1) + ". "
}

// Table maps a kind to its rule.
type Table map[Kind]Rule

// Builtin returns a fresh copy of the built-in format table.
func Builtin() Table {
	return Table{
		Bold:          Wrap{Open: "**", Close: "**", Placeholder: "bold text"},
		Italic:        Wrap{Open: "*", Close: "*", Placeholder: "italic text"},
		Strikethrough: Wrap{Open: "~~", Close: "~~", Placeholder: "strikethrough text"},
		Code:          Wrap{Open: "`", Close: "`", Placeholder: "code"},
		CodeBlock:     Wrap{Open: "```\n", Close: "\n```", Placeholder: "code"},
		Link:          Wrap{Open: "[", Close: "](url)", Placeholder: "link text"},
		Image:         Wrap{Open: "![", Close: "](url)", Placeholder: "alt text"},
		UnorderedList: Prefix{Marker: literal("- "), Placeholder: "list item"},
		OrderedList:   Prefix{Marker: numbered, Placeholder: "list item"},
		Quote:         Prefix{Marker: literal("> "), Placeholder: "quote"},
	}
}

// Result is a rewritten document.
type Result struct {
	Text  string
	Caret int
}

// Apply rewrites the selection in text according to kind.
// Unknown kinds return false and text is left untouched.
func (t Table) Apply(text string, sel Selection, kind Kind) (Result, bool) {
	rule, ok := t[kind]
	if !ok {
		return Result{Text: text, Caret: sel.End}, false
	}

	sel = sel.normalize(len(text))
	replacement, caret := rule.Replace(text[sel.Start:sel.End])

	return Result{
		Text:  text[:sel.Start] + replacement + text[sel.End:],
		Caret: sel.Start + caret,
	}, true
}

// Kinds returns the kinds known to the table.
func (t Table) Kinds() []Kind {
	kinds := make([]Kind, 0, len(t))
	for k := range t {
		kinds = append(kinds, k)
	}
	return kinds
}
