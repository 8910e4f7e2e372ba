// Package highlight picks the preview block that corresponds to the caret
// and decides whether the preview must scroll to keep it comfortable.
package highlight

import (
	"strings"

	"github.com/dshills/mdwriter/internal/linemap"
	"github.com/dshills/mdwriter/internal/renderer/viewport"
)

// None is the block index used when nothing is highlighted.
const None = -1

// CaretLine returns the zero-based line of the caret at byte offset in text.
// Offsets outside the text are clamped.
func CaretLine(text string, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n")
}

// Pick returns the mapped block closest to caretLine, or None.
func Pick(m linemap.LineMap, caretLine int) int {
	if i, ok := m.Nearest(caretLine); ok {
		return i
	}
	return None
}

// Plan is the outcome of following the caret.
type Plan struct {
	// Block is the block to highlight, or None.
	Block int
	// Scroll reports whether the preview should move to Target.
	Scroll bool
	// Target is the preview scroll offset, already clamped.
	Target float64
}

// Follow picks the block for caretLine and plans a preview scroll.
//
// extents holds the laid-out position of each block in preview content
// coordinates; it may be shorter than the line map when layout lags a
// render, in which case no scroll is planned. No scroll is planned while a
// synchronized editor scroll is cooling down, or when the block already
// sits inside the comfort band.
func Follow(m linemap.LineMap, caretLine int, extents []viewport.Extent, preview viewport.Metrics, syncing bool) Plan {
	plan := Plan{Block: Pick(m, caretLine)}
	if plan.Block == None || syncing || plan.Block >= len(extents) {
		return plan
	}

	target, ok := viewport.ComfortBand.Reveal(extents[plan.Block], preview)
	if !ok || target == preview.Top {
		return plan
	}
	plan.Scroll = true
	plan.Target = target
	return plan
}
