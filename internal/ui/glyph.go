package ui

import "force-ca/internal/sims/forces"

// Segment is a line in unit-cell coordinates: (0,0) is the top-left corner
// of a cell and (1,1) the bottom-right.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

const (
	glyphInset = 0.15
	arrowReach = 0.35
	arrowHead  = 0.15
)

// Glyph returns the lines marking the orientation of s. Kinds without an
// orientation have no glyph.
func Glyph(s forces.State) []Segment {
	if a, ok := s.Axis(); ok {
		if a == forces.Vertical {
			return []Segment{{0.5, glyphInset, 0.5, 1 - glyphInset}}
		}
		return []Segment{{glyphInset, 0.5, 1 - glyphInset, 0.5}}
	}
	if r, ok := s.Sense(); ok {
		// an arrow across the top of the cell, pointing the way neighbours turn
		if r == forces.Clockwise {
			return arrow(0.25, 0.3, 1, 0, 0.5)
		}
		return arrow(0.75, 0.3, -1, 0, 0.5)
	}
	if d, ok := s.Heading(); ok {
		dx, dy := unit(d)
		return arrow(0.5, 0.5, dx, dy, arrowReach)
	}
	return nil
}

func unit(d forces.D4) (float64, float64) {
	switch d {
	case forces.Up:
		return 0, -1
	case forces.Down:
		return 0, 1
	case forces.Left:
		return -1, 0
	default:
		return 1, 0
	}
}

// arrow runs from (x, y) a distance reach along (dx, dy) and ends in a head.
func arrow(x, y, dx, dy, reach float64) []Segment {
	tx, ty := x+dx*reach, y+dy*reach
	bx, by := tx-dx*arrowHead, ty-dy*arrowHead
	px, py := -dy*arrowHead, dx*arrowHead
	return []Segment{
		{x, y, tx, ty},
		{tx, ty, bx + px, by + py},
		{tx, ty, bx - px, by - py},
	}
}

// SelectionFrame returns the outline of r in cell units, clipped to a grid
// of rows x cols. ok is false when r lies entirely outside the grid.
func SelectionFrame(r forces.Region, rows, cols int) (x0, y0, x1, y1 float64, ok bool) {
	top, bottom := max(r.Top, 0), min(r.Bottom, rows-1)
	left, right := max(r.Left, 0), min(r.Right, cols-1)
	if top > bottom || left > right {
		return 0, 0, 0, 0, false
	}
	return float64(left), float64(top), float64(right + 1), float64(bottom + 1), true
}
