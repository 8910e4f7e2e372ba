package convert

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	gtext "github.com/yuin/goldmark/text"
)

// StandardOptions configures goldmark the way the preview expects:
// GitHub flavoured markdown, single newlines rendered as line breaks and
// generated heading IDs.
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, task lists, autolinks
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
}

// Goldmark is a Converter backed by github.com/yuin/goldmark.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a converter with StandardOptions plus opts.
func NewGoldmark(opts ...goldmark.Option) *Goldmark {
	all := append(append([]goldmark.Option{}, StandardOptions...), opts...)
	return &Goldmark{md: goldmark.New(all...)}
}

// Convert parses text and renders each top-level node as one Block.
// Panics raised while parsing or rendering are returned as ConversionError.
func (g *Goldmark) Convert(text string) (tree Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			tree = Tree{}
			err = &ConversionError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	source := []byte(text)
	doc := g.md.Parser().Parse(gtext.NewReader(source))

	blocks := make([]Block, 0, doc.ChildCount())
	var buf bytes.Buffer
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		b := newBlock(n, source)

		buf.Reset()
		if err := g.md.Renderer().Render(&buf, source, n); err != nil {
			return Tree{}, &ConversionError{Err: err}
		}
		b.HTML = buf.String()

		blocks = append(blocks, b)
	}

	return Tree{Blocks: blocks}, nil
}

// newBlock classifies a top-level node and extracts its terminal rendition.
func newBlock(n ast.Node, source []byte) Block {
	b := Block{Text: blockText(n, source)}

	switch n := n.(type) {
	case *ast.Heading:
		b.Kind = KindHeading
		b.Level = n.Level
	case *ast.Paragraph, *ast.TextBlock:
		b.Kind = KindParagraph
	case *ast.List:
		b.Kind = KindList
	case *ast.Blockquote:
		b.Kind = KindQuote
	case *ast.FencedCodeBlock:
		b.Kind = KindCode
		b.Language = string(n.Language(source))
	case *ast.CodeBlock:
		b.Kind = KindCode
	case *east.Table:
		b.Kind = KindTable
		b.Rows = tableRows(n, source)
	case *ast.ThematicBreak:
		b.Kind = KindRule
	case *ast.HTMLBlock:
		b.Kind = KindHTML
	default:
		b.Kind = KindParagraph
	}

	return b
}

// blockText renders a block node as plain text.
func blockText(n ast.Node, source []byte) string {
	switch n := n.(type) {
	case *ast.List:
		var sb strings.Builder
		listText(n, source, 0, &sb)
		return strings.TrimRight(sb.String(), "\n")
	case *ast.Blockquote:
		parts := make([]string, 0, n.ChildCount())
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, blockText(c, source))
		}
		return strings.Join(parts, "\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return strings.TrimRight(rawLines(n, source), "\n")
	case *ast.ThematicBreak:
		return ""
	case *east.Table:
		rows := tableRows(n, source)
		lines := make([]string, len(rows))
		for i, row := range rows {
			lines[i] = strings.Join(row, " | ")
		}
		return strings.Join(lines, "\n")
	default:
		var sb strings.Builder
		inlineText(n, source, &sb)
		return strings.TrimRight(sb.String(), "\n")
	}
}

// rawLines concatenates the source lines of a literal block.
func rawLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	if hb, ok := n.(*ast.HTMLBlock); ok && hb.HasClosure() {
		sb.Write(hb.ClosureLine.Value(source))
	}
	return sb.String()
}

// inlineText appends the visible text of n's inline children.
func inlineText(n ast.Node, source []byte, sb *strings.Builder) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.AutoLink:
			sb.Write(c.URL(source))
		case *east.TaskCheckBox:
			if c.IsChecked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
		case *ast.RawHTML:
			// inline tags have no terminal rendition
		default:
			inlineText(c, source, sb)
		}
	}
}

// listText writes one line per list item, nested lists indented.
func listText(list *ast.List, source []byte, depth int, sb *strings.Builder) {
	indent := strings.Repeat("  ", depth)
	number := list.Start
	if number == 0 {
		number = 1
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(number) + ". "
			number++
		}
		hanging := indent + strings.Repeat(" ", utf8.RuneCountInString(marker))

		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				if first {
					sb.WriteString(indent + marker + "\n")
					first = false
				}
				listText(sub, source, depth+1, sb)
				continue
			}
			for _, line := range strings.Split(blockText(c, source), "\n") {
				if first {
					sb.WriteString(indent + marker + line)
					first = false
				} else {
					sb.WriteString(hanging + line)
				}
				sb.WriteByte('\n')
			}
		}
		if first {
			sb.WriteString(indent + marker + "\n")
		}
	}
}

// tableRows collects the inline text of every table cell.
func tableRows(t *east.Table, source []byte) [][]string {
	rows := make([][]string, 0, t.ChildCount())
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]string, 0, row.ChildCount())
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			var sb strings.Builder
			inlineText(cell, source, &sb)
			cells = append(cells, strings.TrimSpace(sb.String()))
		}
		rows = append(rows, cells)
	}
	return rows
}
