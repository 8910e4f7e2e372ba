package viewport

// MarginConfig holds scroll margin configuration.
type MarginConfig struct {
	Top    int // Rows to keep above the caret
	Bottom int // Rows to keep below the caret
	Left   int // Columns to keep left of the caret
	Right  int // Columns to keep right of the caret
}

// maxMarginRatio limits margins to 1/3 of the viewport dimension so the
// centre always has usable space.
const maxMarginRatio = 3

// EffectiveMargins returns margins adjusted for viewport size.
func (v *Viewport) EffectiveMargins() MarginConfig {
	return v.effectiveMargins()
}

func (v *Viewport) effectiveMargins() MarginConfig {
	config := MarginConfig{
		Top:    v.marginTop,
		Bottom: v.marginBottom,
		Left:   v.marginLeft,
		Right:  v.marginRight,
	}

	maxVertical := v.height / maxMarginRatio
	config.Top = min(config.Top, maxVertical)
	config.Bottom = min(config.Bottom, maxVertical)

	maxHorizontal := v.width / maxMarginRatio
	config.Left = min(config.Left, maxHorizontal)
	config.Right = min(config.Right, maxHorizontal)

	return config
}

// Band is a comfortable vertical zone inside a viewport, expressed as
// fractions of the visible height. Content inside the band never causes a
// scroll.
type Band struct {
	Start float64
	End   float64
}

// ComfortBand is the 20%-80% zone used when following the caret in the preview.
var ComfortBand = Band{Start: 0.2, End: 0.8}

// Bounds returns the band edges in content coordinates for the given metrics.
func (b Band) Bounds(m Metrics) (start, end float64) {
	return m.Top + m.Client*b.Start, m.Top + m.Client*b.End
}

// Reveal returns the scroll offset that moves e to the nearest band edge.
// The block top is aligned to the band start when it sits above the band,
// otherwise the block bottom is aligned to the band end when it sits below
// it. The result is clamped to the valid scroll range. Returns false when e
// already lies inside the band.
func (b Band) Reveal(e Extent, m Metrics) (float64, bool) {
	start, end := b.Bounds(m)

	var target float64
	switch {
	case e.Top < start:
		target = e.Top - m.Client*b.Start
	case e.Bottom > end:
		target = e.Bottom - m.Client*b.End
	default:
		return m.Top, false
	}

	return m.Clamp(target), true
}
