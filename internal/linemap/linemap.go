// Package linemap assigns rendered preview blocks to the source lines that
// most likely produced them.
//
// The alignment is greedy: source lines and rendered blocks are walked in
// lockstep, and every non-blank line claims the next unassigned block. The
// converter emits blocks top-to-bottom, so block order tracks line order
// closely enough for caret following. A converter that reports source
// positions could replace Build without touching callers.
package linemap

import "strings"

// Unmapped marks a block that no source line was assigned to.
const Unmapped = -1

// LineMap maps rendered block index to zero-based source line.
// A LineMap is immutable once built.
type LineMap struct {
	lines []int
}

// Build aligns lines against blockCount rendered blocks.
//
// Blank lines never claim a block. When there are more blocks than
// non-blank lines the excess blocks stay Unmapped.
func Build(lines []string, blockCount int) LineMap {
	if blockCount <= 0 {
		return LineMap{}
	}

	assigned := make([]int, blockCount)
	for i := range assigned {
		assigned[i] = Unmapped
	}

	next := 0
	for lineNo, line := range lines {
		if next >= blockCount {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if assigned[next] == Unmapped {
			assigned[next] = lineNo
			next++
		}
	}

	return LineMap{lines: assigned}
}

// BuildFromText splits text on newlines and calls Build.
func BuildFromText(text string, blockCount int) LineMap {
	return Build(strings.Split(text, "\n"), blockCount)
}

// Len returns the number of blocks covered, mapped or not.
func (m LineMap) Len() int {
	return len(m.lines)
}

// Line returns the source line for block i.
func (m LineMap) Line(i int) (int, bool) {
	if i < 0 || i >= len(m.lines) || m.lines[i] == Unmapped {
		return Unmapped, false
	}
	return m.lines[i], true
}

// Mapped returns the number of blocks that have a source line.
func (m LineMap) Mapped() int {
	n := 0
	for _, l := range m.lines {
		if l != Unmapped {
			n++
		}
	}
	return n
}

// Lines returns a copy of the block-to-line table.
func (m LineMap) Lines() []int {
	out := make([]int, len(m.lines))
	copy(out, m.lines)
	return out
}

// Nearest returns the mapped block whose line is closest to line.
// Ties go to the lowest block index. Returns false when nothing is mapped.
func (m LineMap) Nearest(line int) (int, bool) {
	best := -1
	bestDist := 0
	for i, l := range m.lines {
		if l == Unmapped {
			continue
		}
		d := l - line
		if d < 0 {
			d = -d
		}
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, best >= 0
}
