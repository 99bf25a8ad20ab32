package forces

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Code returns the text token for s: a kind letter followed by an
// orientation letter for oriented kinds. Empty states have no token.
func (s State) Code() string {
	switch s.kind {
	case KindEmpty:
		return ""
	case KindWall:
		return "W"
	case KindBox:
		return "E"
	}
	return string([]byte{kindLetter(s.kind), orientLetter(s)})
}

func kindLetter(k Kind) byte {
	switch k {
	case KindWall:
		return 'W'
	case KindBox:
		return 'E'
	case KindBoard:
		return 'F'
	case KindDestroyer:
		return 'D'
	case KindRotator:
		return 'R'
	case KindPusher:
		return 'Q'
	case KindShifter:
		return 'S'
	case KindGenerator:
		return 'A'
	default:
		return 0
	}
}

func kindFromLetter(b byte) (Kind, bool) {
	switch b {
	case 'W':
		return KindWall, true
	case 'E':
		return KindBox, true
	case 'F':
		return KindBoard, true
	case 'D':
		return KindDestroyer, true
	case 'R':
		return KindRotator, true
	case 'Q':
		return KindPusher, true
	case 'S':
		return KindShifter, true
	case 'A':
		return KindGenerator, true
	default:
		return 0, false
	}
}

func orientLetter(s State) byte {
	switch {
	case s.kind.Axial():
		if D2(s.orient) == Vertical {
			return 'v'
		}
		return 'h'
	case s.kind == KindRotator:
		if DRot(s.orient) == Clockwise {
			return 'r'
		}
		return 'l'
	default:
		switch D4(s.orient) {
		case Up:
			return 'u'
		case Down:
			return 'd'
		case Left:
			return 'l'
		default:
			return 'r'
		}
	}
}

func orientFromLetter(k Kind, b byte) (uint8, bool) {
	switch {
	case k.Axial():
		switch b {
		case 'v':
			return uint8(Vertical), true
		case 'h':
			return uint8(Horizontal), true
		}
	case k == KindRotator:
		switch b {
		case 'r':
			return uint8(Clockwise), true
		case 'l':
			return uint8(Counterclockwise), true
		}
	case k.Directed():
		switch b {
		case 'u':
			return uint8(Up), true
		case 'd':
			return uint8(Down), true
		case 'l':
			return uint8(Left), true
		case 'r':
			return uint8(Right), true
		}
	}
	return 0, false
}

// ParseCode reads one state token from the front of text. It returns the
// state and the number of bytes consumed; n is 0 when no token starts
// there.
func ParseCode(text string) (s State, n int) {
	if text == "" {
		return Empty(), 0
	}
	k, ok := kindFromLetter(text[0])
	if !ok {
		return Empty(), 0
	}
	if !k.Oriented() {
		return State{kind: k}, 1
	}
	if len(text) < 2 {
		return Empty(), 0
	}
	o, ok := orientFromLetter(k, text[1])
	if !ok {
		return Empty(), 0
	}
	return State{kind: k, orient: o}, 2
}

// Encode writes the states inside r row by row. Each row ends with ';',
// runs of empty cells are written as their decimal length, and every other
// cell as its Code. Cells outside the grid contribute nothing but are
// counted as empty, so decoding at the same region lines up again.
func (g *Grid) Encode(r Region) string {
	var b strings.Builder
	for row := r.Top; row <= r.Bottom; row++ {
		run := 0
		for col := r.Left; col <= r.Right; col++ {
			s, _ := g.At(row, col)
			if s.IsEmpty() {
				run++
				continue
			}
			if run > 0 {
				b.WriteString(strconv.Itoa(run))
				run = 0
			}
			b.WriteString(s.Code())
		}
		if run > 0 {
			b.WriteString(strconv.Itoa(run))
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Decode writes encoded text into the grid with (r.Top, r.Left) as the
// top-left corner. Whitespace is ignored, ';' starts the next row, and a
// decimal run skips that many columns without touching them. Cells outside
// the grid are skipped.
//
// Decoding is lenient: a character that does not start a valid token is
// dropped and decoding continues with the next character. Every iteration
// consumes at least one character, so any input terminates.
func (g *Grid) Decode(r Region, text string) {
	text = strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, text)

	row, col := r.Top, r.Left
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ';':
			row++
			col = r.Left
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(text) && text[j] >= '0' && text[j] <= '9' {
				j++
			}
			col = skipColumns(col, text[i:j])
			i = j
		default:
			s, n := ParseCode(text[i:])
			if n == 0 {
				i++
				continue
			}
			g.SetState(row, col, s)
			if col < math.MaxInt {
				col++
			}
			i += n
		}
	}
}

// skipColumns advances col by the decimal run in digits, saturating
// instead of overflowing.
func skipColumns(col int, digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil || col > math.MaxInt-n {
		return math.MaxInt
	}
	return col + n
}
