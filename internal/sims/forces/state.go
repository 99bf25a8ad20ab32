package forces

// Kind is the mechanism type of a cell. The declaration order is the
// arbitration rank: later kinds win collisions.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindWall
	KindBox
	KindBoard
	KindDestroyer
	KindRotator
	KindPusher
	KindShifter
	KindGenerator

	kindCount
)

// Kinds lists every kind in rank order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindWall:
		return "wall"
	case KindBox:
		return "box"
	case KindBoard:
		return "board"
	case KindDestroyer:
		return "destroyer"
	case KindRotator:
		return "rotator"
	case KindPusher:
		return "pusher"
	case KindShifter:
		return "shifter"
	case KindGenerator:
		return "generator"
	default:
		return "invalid"
	}
}

// Axial reports whether the kind carries a D2 axis.
func (k Kind) Axial() bool { return k == KindBoard || k == KindDestroyer }

// Directed reports whether the kind carries a D4 heading.
func (k Kind) Directed() bool {
	return k == KindPusher || k == KindShifter || k == KindGenerator
}

// Oriented reports whether states of this kind carry an orientation.
func (k Kind) Oriented() bool { return k.Axial() || k.Directed() || k == KindRotator }

// State is the content of a cell: a kind plus the orientation that kind
// requires. Unoriented kinds always hold a zero orientation, so two
// states are equal exactly when == says so.
type State struct {
	kind   Kind
	orient uint8
}

// Empty returns the empty state.
func Empty() State { return State{kind: KindEmpty} }

// Wall returns an immovable wall.
func Wall() State { return State{kind: KindWall} }

// Box returns a pushable box.
func Box() State { return State{kind: KindBox} }

// Board returns a board aligned with a.
func Board(a D2) State { return State{kind: KindBoard, orient: uint8(a)} }

// Destroyer returns a destroyer aligned with a.
func Destroyer(a D2) State { return State{kind: KindDestroyer, orient: uint8(a)} }

// Rotator returns a rotator turning its neighbours in sense r.
func Rotator(r DRot) State { return State{kind: KindRotator, orient: uint8(r)} }

// Pusher returns a pusher heading in d.
func Pusher(d D4) State { return State{kind: KindPusher, orient: uint8(d)} }

// Shifter returns a shifter heading in d.
func Shifter(d D4) State { return State{kind: KindShifter, orient: uint8(d)} }

// Generator returns a generator heading in d.
func Generator(d D4) State { return State{kind: KindGenerator, orient: uint8(d)} }

// Kind returns the mechanism type of s.
func (s State) Kind() Kind { return s.kind }

// IsEmpty reports whether s is the empty state.
func (s State) IsEmpty() bool { return s.kind == KindEmpty }

func (s State) withOrient(o uint8) State { return State{kind: s.kind, orient: o} }

// Fresh returns the state an edit places when the cell holds another kind.
func Fresh(k Kind) State {
	switch k {
	case KindWall:
		return Wall()
	case KindBox:
		return Box()
	case KindBoard:
		return Board(Vertical)
	case KindDestroyer:
		return Destroyer(Vertical)
	case KindRotator:
		return Rotator(Clockwise)
	case KindPusher:
		return Pusher(Up)
	case KindShifter:
		return Shifter(Up)
	case KindGenerator:
		return Generator(Up)
	default:
		return Empty()
	}
}

// Axis returns the orientation of a board or destroyer.
func (s State) Axis() (D2, bool) {
	if !s.kind.Axial() {
		return 0, false
	}
	return D2(s.orient), true
}

// Sense returns the orientation of a rotator.
func (s State) Sense() (DRot, bool) {
	if s.kind != KindRotator {
		return 0, false
	}
	return DRot(s.orient), true
}

// Heading returns the orientation of a pusher, shifter or generator.
func (s State) Heading() (D4, bool) {
	if !s.kind.Directed() {
		return 0, false
	}
	return D4(s.orient), true
}

// Rotate applies a rotation force to s. Axes flip regardless of r,
// headings turn by 90 degrees, and everything else is unchanged.
func (s State) Rotate(r DRot) State {
	switch {
	case s.kind.Axial():
		return s.withOrient(uint8(D2(s.orient).Flip()))
	case s.kind.Directed():
		return s.withOrient(uint8(r.Rotate(D4(s.orient))))
	default:
		return s
	}
}

// Cycle is the orientation step used when an edit is re-applied to a cell
// of the same kind. It is Rotate(Clockwise) except for rotators, whose
// sense toggles.
func (s State) Cycle() State {
	if s.kind == KindRotator {
		return s.withOrient(uint8(DRot(s.orient).Opposite()))
	}
	return s.Rotate(Clockwise)
}

// orientRank orders orientations within a kind: vertical over horizontal,
// clockwise over counterclockwise, up > down > left > right.
func (s State) orientRank() int {
	switch {
	case s.kind.Axial():
		if D2(s.orient) == Vertical {
			return 1
		}
		return 0
	case s.kind == KindRotator:
		if DRot(s.orient) == Clockwise {
			return 1
		}
		return 0
	case s.kind.Directed():
		switch D4(s.orient) {
		case Up:
			return 3
		case Down:
			return 2
		case Left:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Merge picks the winner when a and b target the same cell. Higher kind
// rank wins; within a kind the orientation priority decides. The result is
// the maximum under a total order, so folding Merge over candidates gives
// the same state in any order.
func Merge(a, b State) State {
	if a == b {
		return a
	}
	if a.kind != b.kind {
		if a.kind > b.kind {
			return a
		}
		return b
	}
	if b.orientRank() > a.orientRank() {
		return b
	}
	return a
}

func (s State) String() string {
	switch {
	case s.kind.Axial():
		return s.kind.String() + "(" + D2(s.orient).String() + ")"
	case s.kind == KindRotator:
		return s.kind.String() + "(" + DRot(s.orient).String() + ")"
	case s.kind.Directed():
		return s.kind.String() + "(" + D4(s.orient).String() + ")"
	default:
		return s.kind.String()
	}
}
