package forces

// Region is an inclusive rectangle of grid coordinates. It may reach past
// the grid; cells outside the grid are skipped by every region operation.
type Region struct {
	Top, Bottom, Left, Right int
}

// NewRegion builds the region spanned by two corner cells in any order.
func NewRegion(r1, c1, r2, c2 int) Region {
	return Region{
		Top:    min(r1, r2),
		Bottom: max(r1, r2),
		Left:   min(c1, c2),
		Right:  max(c1, c2),
	}
}

// Whole returns the region covering the entire grid.
func (g *Grid) Whole() Region {
	return Region{Top: 0, Bottom: g.rows - 1, Left: 0, Right: g.cols - 1}
}

// Rows returns the region height.
func (r Region) Rows() int { return r.Bottom - r.Top + 1 }

// Cols returns the region width.
func (r Region) Cols() int { return r.Right - r.Left + 1 }

// Contains reports whether (row, col) lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.Top && row <= r.Bottom && col >= r.Left && col <= r.Right
}

// Translate shifts the region by dr rows and dc columns.
func (r Region) Translate(dr, dc int) Region {
	return Region{Top: r.Top + dr, Bottom: r.Bottom + dr, Left: r.Left + dc, Right: r.Right + dc}
}

// Edit places kind k on every in-bounds cell of r. A cell that already
// holds k keeps its kind and cycles its orientation one step instead.
// Unoriented kinds are simply written.
func (g *Grid) Edit(r Region, k Kind) {
	for row := r.Top; row <= r.Bottom; row++ {
		for col := r.Left; col <= r.Right; col++ {
			c := g.cell(Pos{row, col})
			if c == nil {
				continue
			}
			if k.Oriented() && c.state.kind == k {
				c.state = c.state.Cycle()
				continue
			}
			c.state = Fresh(k)
		}
	}
}

// EditEmpty clears the region.
func (g *Grid) EditEmpty(r Region) { g.Edit(r, KindEmpty) }

// EditWall fills the region with walls.
func (g *Grid) EditWall(r Region) { g.Edit(r, KindWall) }

// EditBox fills the region with boxes.
func (g *Grid) EditBox(r Region) { g.Edit(r, KindBox) }

// EditBoard places boards, or flips boards already there.
func (g *Grid) EditBoard(r Region) { g.Edit(r, KindBoard) }

// EditDestroyer places destroyers, or flips destroyers already there.
func (g *Grid) EditDestroyer(r Region) { g.Edit(r, KindDestroyer) }

// EditRotator places clockwise rotators, or toggles rotators already there.
func (g *Grid) EditRotator(r Region) { g.Edit(r, KindRotator) }

// EditPusher places pushers, or turns pushers already there clockwise.
func (g *Grid) EditPusher(r Region) { g.Edit(r, KindPusher) }

// EditShifter places shifters, or turns shifters already there clockwise.
func (g *Grid) EditShifter(r Region) { g.Edit(r, KindShifter) }

// EditGenerator places generators, or turns generators already there clockwise.
func (g *Grid) EditGenerator(r Region) { g.Edit(r, KindGenerator) }
