package viewport

// Metrics describes a scrollable region independent of the surface that
// draws it. Top is the current scroll offset, Height the full content height
// and Client the visible height, all in the same unit.
type Metrics struct {
	Top    float64
	Height float64
	Client float64
}

// Extent is the vertical span of one rendered block in content coordinates.
// Bottom is exclusive.
type Extent struct {
	Top    float64
	Bottom float64
}

// MaxScroll returns the largest valid scroll offset.
func (m Metrics) MaxScroll() float64 {
	if d := m.Height - m.Client; d > 0 {
		return d
	}
	return 0
}

// Fraction returns how far through its scrollable range the region is,
// clamped to [0, 1]. A region that cannot scroll reports 0.
func (m Metrics) Fraction() float64 {
	d := m.Height - m.Client
	if d <= 0 {
		return 0
	}
	return clampUnit(m.Top / d)
}

// AtFraction returns the scroll offset at fraction f of the range.
func (m Metrics) AtFraction(f float64) float64 {
	return clampUnit(f) * m.MaxScroll()
}

// Clamp limits top to the valid scroll range.
func (m Metrics) Clamp(top float64) float64 {
	if top < 0 {
		return 0
	}
	if limit := m.MaxScroll(); top > limit {
		return limit
	}
	return top
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Metrics returns the viewport's scroll metrics in rows.
func (v *Viewport) Metrics() Metrics {
	return Metrics{
		Top:    float64(v.topLine),
		Height: float64(v.maxLine),
		Client: float64(v.height),
	}
}

// ScrollPercent returns how far through the content we've scrolled (0.0 to 1.0).
func (v *Viewport) ScrollPercent() float64 {
	return v.Metrics().Fraction()
}

// ScrollToPercent scrolls to a fraction of the content.
func (v *Viewport) ScrollToPercent(percent float64, smooth bool) {
	target := v.Metrics().AtFraction(percent)
	v.ScrollTo(int(target+0.5), smooth)
}
