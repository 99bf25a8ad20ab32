package forces

// Grid is a fixed-size rectangle of cells stored in row-major order.
// Neighbours are found by index arithmetic; every access is bounds
// checked, and out-of-range coordinates are ignored rather than fatal.
type Grid struct {
	rows, cols int
	cells      []Cell
	tie        TieBreaker
}

// New allocates an empty grid. Non-positive dimensions are clamped to 1.
func New(rows, cols int) *Grid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// SetTieBreaker installs the policy for same-kind collisions. Nil restores
// the deterministic priority rule.
func (g *Grid) SetTieBreaker(tb TieBreaker) { g.tie = tb }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

func (g *Grid) cell(p Pos) *Cell {
	if !g.InBounds(p.Row, p.Col) {
		return nil
	}
	return &g.cells[p.Row*g.cols+p.Col]
}

// At returns the state at (row, col). ok is false outside the grid.
func (g *Grid) At(row, col int) (State, bool) {
	c := g.cell(Pos{row, col})
	if c == nil {
		return Empty(), false
	}
	return c.state, true
}

// Cell exposes the cell at (row, col), or nil outside the grid.
func (g *Grid) Cell(row, col int) *Cell { return g.cell(Pos{row, col}) }

// SetState places s at (row, col) and reports whether the position exists.
func (g *Grid) SetState(row, col int, s State) bool {
	c := g.cell(Pos{row, col})
	if c == nil {
		return false
	}
	c.state = s
	return true
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].reset(Empty())
	}
}

// Count returns how many cells currently hold kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	for i := range g.cells {
		if g.cells[i].state.kind == k {
			n++
		}
	}
	return n
}

func (g *Grid) addForce(p Pos, f Force) {
	if c := g.cell(p); c != nil {
		c.AddForce(f)
	}
}

func (g *Grid) addCandidate(p Pos, s State) {
	if c := g.cell(p); c != nil {
		c.AddCandidate(s)
	}
}

// Step advances the grid by one generation. Each phase runs over the whole
// grid before the next one starts, so every cell reacts to the states as
// they were at the start of the step.
func (g *Grid) Step() {
	g.emitForces()
	g.collectCandidates()
	g.settle()
}

func (g *Grid) each(fn func(p Pos, c *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			fn(Pos{row, col}, &g.cells[row*g.cols+col])
		}
	}
}

// emitForces is phase one: active kinds project forces onto their
// neighbours. Only scratch buffers are written.
func (g *Grid) emitForces() {
	g.each(func(p Pos, c *Cell) {
		s := c.state
		switch s.kind {
		case KindDestroyer:
			g.destroy(p, D2(s.orient))
		case KindRotator:
			g.rotate(p, DRot(s.orient))
		case KindPusher:
			g.push(p, D4(s.orient))
		case KindShifter:
			d := D4(s.orient)
			g.push(p.Move(d), d)
		case KindGenerator:
			g.generate(p, D4(s.orient))
		}
	})
}

// destroy targets the two cells flanking p across its axis.
func (g *Grid) destroy(p Pos, a D2) {
	if a == Vertical {
		g.addForce(p.Move(Left), ForceDestroy)
		g.addForce(p.Move(Right), ForceDestroy)
		return
	}
	g.addForce(p.Move(Up), ForceDestroy)
	g.addForce(p.Move(Down), ForceDestroy)
}

func (g *Grid) rotate(p Pos, r DRot) {
	f := r.Force()
	for _, d := range []D4{Up, Down, Left, Right} {
		g.addForce(p.Move(d), f)
	}
}

// push reports whether the chain starting at p can move one step in d.
// Forces are committed from the far end back towards p, and only once the
// whole chain is known to be movable.
func (g *Grid) push(p Pos, d D4) bool {
	c := g.cell(p)
	if c == nil {
		return false
	}
	s := c.state
	switch {
	case s.kind == KindEmpty:
		return true
	case s.kind == KindWall:
		return false
	case s.kind.Axial() && D2(s.orient).Blocks(d):
		return false
	}
	if !g.push(p.Move(d), d) {
		return false
	}
	c.AddForce(d.Force())
	return true
}

// generate clones the cell behind p into the cell in front of it when the
// front can make room.
func (g *Grid) generate(p Pos, d D4) {
	src := g.cell(p.Move(d.Opposite()))
	if src == nil || src.state.IsEmpty() {
		return
	}
	front := p.Move(d)
	if g.push(front, d) {
		g.addCandidate(front, src.state)
	}
}

// collectCandidates is phase two: every cell resolves its forces and
// proposes its content at the destination they imply.
func (g *Grid) collectCandidates() {
	g.each(func(p Pos, c *Cell) {
		c.ResolveForces()
		dst := c.forces.Displace(p)
		switch {
		case c.forces.Has(ForceClockwise):
			g.addCandidate(dst, c.state.Rotate(Clockwise))
		case c.forces.Has(ForceCounterclockwise):
			g.addCandidate(dst, c.state.Rotate(Counterclockwise))
		case c.forces.Has(ForceDestroy):
			// annihilated
		default:
			g.addCandidate(dst, c.state)
		}
		c.forces = 0
	})
}

// settle is phase three: candidates collapse into the next state.
func (g *Grid) settle() {
	for i := range g.cells {
		g.cells[i].ResolveState(g.tie)
	}
}
