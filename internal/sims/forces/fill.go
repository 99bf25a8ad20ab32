package forces

import "force-ca/pkg/core"

// Scatter places a random non-empty state on roughly percent% of the
// cells, leaving the rest untouched.
func (g *Grid) Scatter(rng *core.RNG, percent int) {
	if rng == nil || percent <= 0 {
		return
	}
	for i := range g.cells {
		if !rng.Percent(percent) {
			continue
		}
		g.cells[i].state = randomState(rng)
	}
}

func randomState(rng *core.RNG) State {
	k := Kind(1 + rng.IntN(int(kindCount)-1))
	switch {
	case k.Axial(), k == KindRotator:
		return State{kind: k, orient: uint8(rng.IntN(2))}
	case k.Directed():
		return State{kind: k, orient: uint8(rng.IntN(4))}
	default:
		return State{kind: k}
	}
}
