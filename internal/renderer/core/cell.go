package core

import "github.com/mattn/go-runewidth"

// Cell represents a single terminal cell. A wide rune occupies its cell and
// a following continuation cell with Width 0.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns a space with style.
func EmptyCell(style Style) Cell {
	return Cell{Rune: ' ', Width: 1, Style: style}
}

// IsContinuation reports whether c is the trailing half of a wide rune.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// RuneWidth returns the display width of r in columns.
func RuneWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s in columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Cells converts s into cells, appending continuation cells after wide
// runes. Zero-width runes are dropped.
func Cells(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		cells = append(cells, Cell{Rune: r, Width: w, Style: style})
		if w == 2 {
			cells = append(cells, Cell{Style: style})
		}
	}
	return cells
}

// Text converts cells back to a string.
func Text(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if !c.IsContinuation() {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}

// Truncate cuts s to at most width columns.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}
