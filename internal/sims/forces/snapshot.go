package forces

// Snapshot is a frozen copy of every cell state in a grid.
type Snapshot struct {
	rows, cols int
	states     []State
}

// Rows returns the height of the captured grid.
func (s Snapshot) Rows() int { return s.rows }

// Cols returns the width of the captured grid.
func (s Snapshot) Cols() int { return s.cols }

// Snapshot captures the current states. Scratch buffers are empty between
// generations and are not part of the copy.
func (g *Grid) Snapshot() Snapshot {
	states := make([]State, len(g.cells))
	for i := range g.cells {
		states[i] = g.cells[i].state
	}
	return Snapshot{rows: g.rows, cols: g.cols, states: states}
}

// Restore puts back the states captured by s. It changes nothing and
// returns false when s was taken from a grid of another size.
func (g *Grid) Restore(s Snapshot) bool {
	if s.rows != g.rows || s.cols != g.cols || len(s.states) != len(g.cells) {
		return false
	}
	for i := range g.cells {
		g.cells[i].reset(s.states[i])
	}
	return true
}

// Clone returns an independent deep copy of the grid, including its
// tie-break policy.
func (g *Grid) Clone() *Grid {
	c := New(g.rows, g.cols)
	c.tie = g.tie
	c.Restore(g.Snapshot())
	return c
}
