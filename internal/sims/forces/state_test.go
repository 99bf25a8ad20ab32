package forces

import (
	"math/rand/v2"
	"testing"
)

func allStates() []State {
	out := []State{Empty(), Wall(), Box()}
	for _, a := range []D2{Vertical, Horizontal} {
		out = append(out, Board(a), Destroyer(a))
	}
	for _, r := range []DRot{Clockwise, Counterclockwise} {
		out = append(out, Rotator(r))
	}
	for _, d := range []D4{Up, Down, Left, Right} {
		out = append(out, Pusher(d), Shifter(d), Generator(d))
	}
	return out
}

func TestAllStatesCoverEveryOrientation(t *testing.T) {
	if got := len(allStates()); got != 21 {
		t.Fatalf("expected 21 distinct states, got %d", got)
	}
	seen := map[State]bool{}
	for _, s := range allStates() {
		if seen[s] {
			t.Fatalf("duplicate state %v", s)
		}
		seen[s] = true
	}
}

func TestOrientationAccessors(t *testing.T) {
	if _, ok := Box().Axis(); ok {
		t.Fatal("box must not report an axis")
	}
	if a, ok := Destroyer(Horizontal).Axis(); !ok || a != Horizontal {
		t.Fatalf("destroyer axis = %v, %v", a, ok)
	}
	if r, ok := Rotator(Counterclockwise).Sense(); !ok || r != Counterclockwise {
		t.Fatalf("rotator sense = %v, %v", r, ok)
	}
	if _, ok := Pusher(Left).Sense(); ok {
		t.Fatal("pusher must not report a sense")
	}
	if d, ok := Generator(Down).Heading(); !ok || d != Down {
		t.Fatalf("generator heading = %v, %v", d, ok)
	}
	if _, ok := Wall().Heading(); ok {
		t.Fatal("wall must not report a heading")
	}
}

func TestRotateState(t *testing.T) {
	cases := []struct {
		in   State
		rot  DRot
		want State
	}{
		{Empty(), Clockwise, Empty()},
		{Wall(), Counterclockwise, Wall()},
		{Box(), Clockwise, Box()},
		{Rotator(Clockwise), Counterclockwise, Rotator(Clockwise)},
		{Board(Vertical), Clockwise, Board(Horizontal)},
		{Board(Vertical), Counterclockwise, Board(Horizontal)},
		{Destroyer(Horizontal), Counterclockwise, Destroyer(Vertical)},
		{Pusher(Up), Clockwise, Pusher(Right)},
		{Shifter(Up), Counterclockwise, Shifter(Left)},
		{Generator(Left), Clockwise, Generator(Up)},
	}
	for _, tc := range cases {
		if got := tc.in.Rotate(tc.rot); got != tc.want {
			t.Fatalf("%v rotated %v = %v, want %v", tc.in, tc.rot, got, tc.want)
		}
	}
}

func TestCycle(t *testing.T) {
	if got := Rotator(Clockwise).Cycle(); got != Rotator(Counterclockwise) {
		t.Fatalf("rotator cycle = %v", got)
	}
	if got := Rotator(Counterclockwise).Cycle(); got != Rotator(Clockwise) {
		t.Fatalf("rotator cycle = %v", got)
	}
	if got := Pusher(Right).Cycle(); got != Pusher(Down) {
		t.Fatalf("pusher cycle = %v", got)
	}
	if got := Board(Horizontal).Cycle(); got != Board(Vertical) {
		t.Fatalf("board cycle = %v", got)
	}
}

func TestMergeIsIdempotentAndCommutative(t *testing.T) {
	states := allStates()
	for _, a := range states {
		if got := Merge(a, a); got != a {
			t.Fatalf("merge(%v, %v) = %v", a, a, got)
		}
		for _, b := range states {
			ab, ba := Merge(a, b), Merge(b, a)
			if ab != ba {
				t.Fatalf("merge(%v, %v) = %v but merge(%v, %v) = %v", a, b, ab, b, a, ba)
			}
			if ab != a && ab != b {
				t.Fatalf("merge(%v, %v) invented %v", a, b, ab)
			}
		}
	}
}

func TestMergeIsAssociative(t *testing.T) {
	states := allStates()
	for _, a := range states {
		for _, b := range states {
			for _, c := range states {
				left := Merge(Merge(a, b), c)
				right := Merge(a, Merge(b, c))
				if left != right {
					t.Fatalf("(%v %v) %v = %v, %v (%v %v) = %v", a, b, c, left, a, b, c, right)
				}
			}
		}
	}
}

func TestMergeRules(t *testing.T) {
	cases := []struct {
		a, b, want State
	}{
		{Empty(), Box(), Box()},
		{Wall(), Box(), Box()},
		{Generator(Right), Shifter(Up), Generator(Right)},
		{Pusher(Up), Rotator(Clockwise), Pusher(Up)},
		{Board(Horizontal), Board(Vertical), Board(Vertical)},
		{Destroyer(Vertical), Destroyer(Horizontal), Destroyer(Vertical)},
		{Rotator(Counterclockwise), Rotator(Clockwise), Rotator(Clockwise)},
		{Pusher(Right), Pusher(Left), Pusher(Left)},
		{Shifter(Left), Shifter(Down), Shifter(Down)},
		{Generator(Down), Generator(Up), Generator(Up)},
	}
	for _, tc := range cases {
		if got := Merge(tc.a, tc.b); got != tc.want {
			t.Fatalf("merge(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolveStateIgnoresCandidateOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	states := allStates()
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.IntN(6)
		cands := make([]State, n)
		for i := range cands {
			cands[i] = states[rng.IntN(len(states))]
		}

		var want State
		for perm := 0; perm < 10; perm++ {
			rng.Shuffle(len(cands), func(i, j int) { cands[i], cands[j] = cands[j], cands[i] })
			var c Cell
			for _, s := range cands {
				c.AddCandidate(s)
			}
			c.ResolveState(nil)
			if perm == 0 {
				want = c.State()
				continue
			}
			if c.State() != want {
				t.Fatalf("trial %d: order %v resolved to %v, earlier order gave %v", trial, cands, c.State(), want)
			}
		}
	}
}

func TestRandomTieBreakOnlyDecidesSameKind(t *testing.T) {
	tb := NewRandomTieBreak(3)
	for i := 0; i < 50; i++ {
		if got := arbitrate(tb, Box(), Pusher(Left)); got != Pusher(Left) {
			t.Fatalf("kind rank must win over the random policy, got %v", got)
		}
		got := arbitrate(tb, Pusher(Left), Pusher(Up))
		if got != Pusher(Left) && got != Pusher(Up) {
			t.Fatalf("random tie-break invented %v", got)
		}
	}
}

func TestRandomTieBreakIsSeeded(t *testing.T) {
	a, b := NewRandomTieBreak(99), NewRandomTieBreak(99)
	for i := 0; i < 64; i++ {
		if a.Break(Shifter(Up), Shifter(Down)) != b.Break(Shifter(Up), Shifter(Down)) {
			t.Fatal("same seed must produce the same choices")
		}
	}
}
