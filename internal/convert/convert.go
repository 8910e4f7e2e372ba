// Package convert turns markdown text into an ordered tree of rendered
// blocks.
//
// The converter is a pure function of its input: the same text always yields
// the same tree, and a failed conversion never touches previously published
// output. Callers that need a visible fallback use ErrorTree.
package convert

import (
	"errors"
	"fmt"
)

// Kind tags a top-level rendered block.
type Kind string

// Block kinds.
const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindTable     Kind = "table"
	KindRule      Kind = "rule"
	KindHTML      Kind = "html"
	KindError     Kind = "error"
)

// Block is one top-level rendered node.
type Block struct {
	Kind Kind

	// Level is the heading level (1-6); zero for other kinds.
	Level int

	// Language is the info string of a fenced code block.
	Language string

	// Text is a plain-text rendition for terminal display. List items carry
	// their bullets or numbers; quotes carry their inner text.
	Text string

	// Rows holds table cells, header row first.
	Rows [][]string

	// HTML is the serialized rendering of the block.
	HTML string
}

// Tree is an ordered sequence of blocks in source order.
// A published Tree is never modified.
type Tree struct {
	Blocks []Block
}

// Len returns the number of blocks.
func (t Tree) Len() int { return len(t.Blocks) }

// IsError reports whether t is a fallback error tree.
func (t Tree) IsError() bool {
	return len(t.Blocks) == 1 && t.Blocks[0].Kind == KindError
}

// HTML concatenates the serialized blocks.
func (t Tree) HTML() string {
	var n int
	for _, b := range t.Blocks {
		n += len(b.HTML)
	}
	out := make([]byte, 0, n)
	for _, b := range t.Blocks {
		out = append(out, b.HTML...)
	}
	return string(out)
}

// Converter converts raw text into a Tree.
type Converter interface {
	Convert(text string) (Tree, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(text string) (Tree, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(text string) (Tree, error) { return f(text) }

// ErrConversion is matched by every ConversionError.
var ErrConversion = errors.New("markdown conversion failed")

// ConversionError wraps a converter failure, including recovered panics.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return ErrConversion.Error()
	}
	return fmt.Sprintf("%s: %v", ErrConversion.Error(), e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is matches ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ErrorMessage is shown in place of the preview when conversion fails.
const ErrorMessage = "Error parsing markdown"

// ErrorTree returns the single-block tree published when conversion fails.
func ErrorTree() Tree {
	return Tree{Blocks: []Block{{
		Kind: KindError,
		Text: ErrorMessage,
		HTML: `<p class="error">` + ErrorMessage + "</p>\n",
	}}}
}
