package preview

import (
	"github.com/dshills/mdwriter/internal/renderer/backend"
	"github.com/dshills/mdwriter/internal/renderer/core"
)

// Rect is a screen region.
type Rect struct {
	X, Y, Width, Height int
}

// DrawOptions controls how a layout is painted.
type DrawOptions struct {
	// Top is the first layout row shown.
	Top int
	// Active is the highlighted block, or a negative value for none.
	Active int
	// RightToLeft right-aligns every row.
	RightToLeft bool
}

// Draw paints the visible rows of l into area.
func (r *Renderer) Draw(b backend.Backend, area Rect, l Layout, opts DrawOptions) {
	th := r.theme
	b.Fill(area.X, area.Y, area.Width, area.Height, core.EmptyCell(th.Text))

	for y := 0; y < area.Height; y++ {
		i := opts.Top + y
		if i < 0 || i >= len(l.Rows) {
			continue
		}
		row := l.Rows[i]

		if opts.Active >= 0 && row.Block == opts.Active {
			active := core.EmptyCell(th.Text.Merge(th.Active))
			b.Fill(area.X, area.Y+y, area.Width, 1, active)
		}

		cells := clip(row.Cells, area.Width)
		x := area.X
		if opts.RightToLeft {
			x += area.Width - len(cells)
		}
		for j, c := range cells {
			if opts.Active >= 0 && row.Block == opts.Active {
				c.Style = c.Style.Merge(th.Active)
			}
			b.SetCell(x+j, area.Y+y, c)
		}
	}
}
