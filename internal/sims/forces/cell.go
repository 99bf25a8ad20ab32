package forces

// Cell holds one grid position: its current state plus the per-generation
// scratch buffers. Forces and candidates are empty between generations.
type Cell struct {
	state      State
	forces     ForceSet
	candidates []State
}

// State returns the current content of the cell.
func (c *Cell) State() State { return c.state }

// Forces returns the forces accumulated so far this generation.
func (c *Cell) Forces() ForceSet { return c.forces }

// Candidates returns the proposed next states collected so far.
func (c *Cell) Candidates() []State { return c.candidates }

// AddForce inserts f into the force set. Adding a force twice is a no-op.
func (c *Cell) AddForce(f Force) { c.forces = c.forces.Add(f) }

// AddCandidate proposes s as the next state of the cell.
func (c *Cell) AddCandidate(s State) { c.candidates = append(c.candidates, s) }

// ResolveForces reduces the accumulated forces to the ones that take
// effect. Destroy discards everything else; otherwise each opposing pair
// cancels out independently.
func (c *Cell) ResolveForces() {
	if c.forces.Empty() {
		return
	}
	if c.forces.Has(ForceDestroy) {
		c.forces = NewForceSet(ForceDestroy)
		return
	}
	c.cancel(ForceUp, ForceDown)
	c.cancel(ForceLeft, ForceRight)
	c.cancel(ForceClockwise, ForceCounterclockwise)
}

func (c *Cell) cancel(a, b Force) {
	if c.forces.Has(a) && c.forces.Has(b) {
		c.forces = c.forces.Remove(a).Remove(b)
	}
}

// ResolveState adopts the next state from the candidates: empty when none
// arrived, the only one when one arrived, and the arbitrated winner
// otherwise. A nil tb uses the deterministic Merge. The candidate list is
// cleared afterwards.
func (c *Cell) ResolveState(tb TieBreaker) {
	switch len(c.candidates) {
	case 0:
		c.state = Empty()
	case 1:
		c.state = c.candidates[0]
	default:
		next := c.candidates[0]
		for _, s := range c.candidates[1:] {
			next = arbitrate(tb, next, s)
		}
		c.state = next
	}
	c.candidates = c.candidates[:0]
}

func (c *Cell) reset(s State) {
	c.state = s
	c.forces = 0
	c.candidates = c.candidates[:0]
}
