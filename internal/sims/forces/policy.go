package forces

import "force-ca/pkg/core"

// TieBreaker chooses between two candidates of the same kind that differ
// only in orientation. Collisions between different kinds are always
// settled by kind rank.
type TieBreaker interface {
	Break(a, b State) State
}

// PriorityTieBreak is the deterministic orientation priority used by Merge.
type PriorityTieBreak struct{}

// Break implements TieBreaker.
func (PriorityTieBreak) Break(a, b State) State { return Merge(a, b) }

// RandomTieBreak picks either candidate with equal probability. Runs are
// reproducible for a given seed, but the result of a multi-way collision
// depends on the order candidates arrived in.
type RandomTieBreak struct {
	rng *core.RNG
}

// NewRandomTieBreak seeds a random policy.
func NewRandomTieBreak(seed int64) *RandomTieBreak {
	return &RandomTieBreak{rng: core.NewRNG(seed)}
}

// Break implements TieBreaker.
func (r *RandomTieBreak) Break(a, b State) State {
	if r.rng.Bool() {
		return a
	}
	return b
}

// arbitrate merges a and b, deferring to tb only for same-kind ties.
func arbitrate(tb TieBreaker, a, b State) State {
	if tb == nil || a == b || a.kind != b.kind {
		return Merge(a, b)
	}
	return tb.Break(a, b)
}
