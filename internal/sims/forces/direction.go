package forces

// D4 is one of the four cardinal directions.
type D4 uint8

const (
	Up D4 = iota
	Down
	Left
	Right
)

// D2 is an axis used by boards and destroyers.
type D2 uint8

const (
	Vertical D2 = iota
	Horizontal
)

// DRot is a rotational sense used by rotators.
type DRot uint8

const (
	Clockwise DRot = iota
	Counterclockwise
)

// Opposite returns the direction pointing the other way.
func (d D4) Opposite() D4 {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical reports whether d moves along the row axis.
func (d D4) Vertical() bool { return d == Up || d == Down }

// Force converts the direction into the matching movement force.
func (d D4) Force() Force {
	switch d {
	case Up:
		return ForceUp
	case Down:
		return ForceDown
	case Left:
		return ForceLeft
	default:
		return ForceRight
	}
}

func (d D4) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Rotate turns d by 90 degrees in the given sense.
func (r DRot) Rotate(d D4) D4 {
	if r == Clockwise {
		switch d {
		case Up:
			return Right
		case Right:
			return Down
		case Down:
			return Left
		default:
			return Up
		}
	}
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	default:
		return Up
	}
}

// Opposite returns the other rotational sense.
func (r DRot) Opposite() DRot {
	if r == Clockwise {
		return Counterclockwise
	}
	return Clockwise
}

// Force converts the sense into the matching rotation force.
func (r DRot) Force() Force {
	if r == Clockwise {
		return ForceClockwise
	}
	return ForceCounterclockwise
}

func (r DRot) String() string {
	if r == Clockwise {
		return "clockwise"
	}
	return "counterclockwise"
}

// Flip swaps the axis. An axis has no sense of rotation, so both
// rotations flip it.
func (a D2) Flip() D2 {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Blocks reports whether an object aligned with a stops movement in d.
func (a D2) Blocks(d D4) bool {
	if d.Vertical() {
		return a == Horizontal
	}
	return a == Vertical
}

func (a D2) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Pos addresses a grid cell by row and column.
type Pos struct {
	Row, Col int
}

// Move returns the neighbouring position one step in direction d.
func (p Pos) Move(d D4) Pos {
	switch d {
	case Up:
		return Pos{p.Row - 1, p.Col}
	case Down:
		return Pos{p.Row + 1, p.Col}
	case Left:
		return Pos{p.Row, p.Col - 1}
	default:
		return Pos{p.Row, p.Col + 1}
	}
}

// Force is a single effect a cell can accumulate during a generation.
type Force uint8

const (
	ForceUp Force = iota
	ForceDown
	ForceLeft
	ForceRight
	ForceClockwise
	ForceCounterclockwise
	ForceDestroy

	forceCount
)

func (f Force) String() string {
	switch f {
	case ForceUp:
		return "up"
	case ForceDown:
		return "down"
	case ForceLeft:
		return "left"
	case ForceRight:
		return "right"
	case ForceClockwise:
		return "clockwise"
	case ForceCounterclockwise:
		return "counterclockwise"
	case ForceDestroy:
		return "destroy"
	default:
		return "invalid"
	}
}

// ForceSet is a bitset over the seven forces.
type ForceSet uint8

// NewForceSet builds a set holding the given forces.
func NewForceSet(fs ...Force) ForceSet {
	var s ForceSet
	for _, f := range fs {
		s = s.Add(f)
	}
	return s
}

// Add returns s with f inserted.
func (s ForceSet) Add(f Force) ForceSet {
	if f >= forceCount {
		return s
	}
	return s | 1<<f
}

// Remove returns s without f.
func (s ForceSet) Remove(f Force) ForceSet { return s &^ (1 << f) }

// Has reports whether f is in the set.
func (s ForceSet) Has(f Force) bool { return f < forceCount && s&(1<<f) != 0 }

// Empty reports whether the set holds no force.
func (s ForceSet) Empty() bool { return s == 0 }

// Len returns the number of forces in the set.
func (s ForceSet) Len() int {
	n := 0
	for f := Force(0); f < forceCount; f++ {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// Forces lists the members in declaration order.
func (s ForceSet) Forces() []Force {
	out := make([]Force, 0, s.Len())
	for f := Force(0); f < forceCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Displace moves p by the directional forces in s. The row and column
// axes are independent, so a set holding one vertical and one horizontal
// force moves diagonally.
func (s ForceSet) Displace(p Pos) Pos {
	switch {
	case s.Has(ForceUp):
		p.Row--
	case s.Has(ForceDown):
		p.Row++
	}
	switch {
	case s.Has(ForceLeft):
		p.Col--
	case s.Has(ForceRight):
		p.Col++
	}
	return p
}
