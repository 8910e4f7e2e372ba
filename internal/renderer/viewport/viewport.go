// Package viewport provides viewport management for the editor and preview panes.
package viewport

import "math"

// Viewport represents the visible portion of a pane's content, in rows and
// columns. It is owned by the event loop and is not safe for concurrent use.
type Viewport struct {
	// Position in content (first visible row)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep the caret this far from edges)
	marginTop    int
	marginBottom int
	marginLeft   int
	marginRight  int

	// Scroll animation state
	targetTopLine int
	animating     bool
	smoothScroll  bool

	// Content size in rows
	maxLine int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	return &Viewport{
		width:        width,
		height:       height,
		marginTop:    2,
		marginBottom: 2,
		marginLeft:   4,
		marginRight:  4,
		smoothScroll: true,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible row.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int { return v.leftColumn }

// MaxLine returns the content height in rows.
func (v *Viewport) MaxLine() int { return v.maxLine }

// Resize updates the viewport size and re-clamps the scroll position.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	v.topLine = v.clampTop(v.topLine)
	v.targetTopLine = v.clampTop(v.targetTopLine)
}

// SetMaxLine sets the content height in rows.
func (v *Viewport) SetMaxLine(maxLine int) {
	if maxLine < 0 {
		maxLine = 0
	}
	v.maxLine = maxLine
	v.topLine = v.clampTop(v.topLine)
	v.targetTopLine = v.clampTop(v.targetTopLine)
}

// SetMargins sets the scroll margins used by ScrollToReveal.
func (v *Viewport) SetMargins(top, bottom, left, right int) {
	v.marginTop = top
	v.marginBottom = bottom
	v.marginLeft = left
	v.marginRight = right
}

// SetSmoothScroll enables or disables smooth scrolling.
func (v *Viewport) SetSmoothScroll(enabled bool) {
	v.smoothScroll = enabled
}

// IsAnimating returns true if a scroll animation is in progress.
func (v *Viewport) IsAnimating() bool { return v.animating }

// VisibleLineRange returns the visible content rows, end exclusive.
func (v *Viewport) VisibleLineRange() (start, end int) {
	end = v.topLine + v.height
	if end > v.maxLine {
		end = v.maxLine
	}
	return v.topLine, end
}

// IsLineVisible returns true if the row is within the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	start, end := v.VisibleLineRange()
	return line >= start && line < end
}

// maxTop is the largest valid top row.
func (v *Viewport) maxTop() int {
	if v.maxLine > v.height {
		return v.maxLine - v.height
	}
	return 0
}

func (v *Viewport) clampTop(line int) int {
	if line < 0 {
		return 0
	}
	if m := v.maxTop(); line > m {
		return m
	}
	return line
}

// ScrollTo scrolls to show the given row at the top.
func (v *Viewport) ScrollTo(line int, smooth bool) {
	line = v.clampTop(line)

	if smooth && v.smoothScroll {
		v.targetTopLine = line
		v.animating = line != v.topLine
	} else {
		v.topLine = line
		v.targetTopLine = line
		v.animating = false
	}
}

// ScrollBy scrolls by a delta number of rows.
func (v *Viewport) ScrollBy(deltaLines int, smooth bool) {
	base := v.topLine
	if v.animating {
		base = v.targetTopLine
	}
	v.ScrollTo(base+deltaLines, smooth)
}

// ScrollToReveal scrolls minimally to reveal a position, keeping the
// configured margins around it. Returns true if scrolling occurred.
func (v *Viewport) ScrollToReveal(line, col int) bool {
	margins := v.effectiveMargins()
	moved := false

	switch {
	case line < v.topLine+margins.Top:
		v.topLine = v.clampTop(line - margins.Top)
		moved = true
	case line > v.topLine+v.height-1-margins.Bottom:
		v.topLine = v.clampTop(line - v.height + 1 + margins.Bottom)
		moved = true
	}

	screenCol := col - v.leftColumn
	switch {
	case screenCol < margins.Left:
		left := col - margins.Left
		if left < 0 {
			left = 0
		}
		moved = moved || left != v.leftColumn
		v.leftColumn = left
	case screenCol > v.width-1-margins.Right:
		v.leftColumn = col - v.width + 1 + margins.Right
		moved = true
	}

	v.targetTopLine = v.topLine
	v.animating = false
	return moved
}

// Update advances scroll animation by dt seconds.
// Returns true if the viewport moved.
func (v *Viewport) Update(dt float64) bool {
	if !v.animating {
		return false
	}

	diff := float64(v.targetTopLine - v.topLine)
	if math.Abs(diff) < 0.5 {
		v.animating = false
		return false
	}

	// Exponential interpolation: a fixed share of the remaining distance per
	// tick, at least one row so short moves finish.
	factor := 1.0 - math.Pow(0.1, dt*10)
	move := diff * factor
	if math.Abs(move) < 1.0 {
		move = math.Copysign(1.0, diff)
	}

	if math.Abs(move) >= math.Abs(diff) {
		v.topLine = v.targetTopLine
	} else {
		v.topLine += int(move)
	}

	if v.topLine == v.targetTopLine {
		v.animating = false
	}
	return true
}

// StopAnimation stops any ongoing scroll animation in place.
func (v *Viewport) StopAnimation() {
	v.animating = false
	v.targetTopLine = v.topLine
}
