package forces

import (
	"testing"

	"force-ca/pkg/core"
)

func TestCodes(t *testing.T) {
	cases := map[State]string{
		Empty():                   "",
		Wall():                    "W",
		Box():                     "E",
		Board(Vertical):           "Fv",
		Board(Horizontal):         "Fh",
		Destroyer(Horizontal):     "Dh",
		Rotator(Clockwise):        "Rr",
		Rotator(Counterclockwise): "Rl",
		Pusher(Up):                "Qu",
		Shifter(Down):             "Sd",
		Generator(Left):           "Al",
		Generator(Right):          "Ar",
	}
	for s, want := range cases {
		if got := s.Code(); got != want {
			t.Fatalf("%v code = %q, want %q", s, got, want)
		}
	}
	for _, s := range allStates()[1:] {
		got, n := ParseCode(s.Code())
		if n != len(s.Code()) || got != s {
			t.Fatalf("parse %q = %v (%d bytes), want %v", s.Code(), got, n, s)
		}
	}
}

func TestParseCodeRejectsBadTokens(t *testing.T) {
	for _, text := range []string{"", "x", "Q", "Qv", "Fu", "Rd", "w"} {
		if _, n := ParseCode(text); n != 0 {
			t.Fatalf("parse %q consumed %d bytes, want 0", text, n)
		}
	}
}

func TestEncodeRow(t *testing.T) {
	g := New(1, 4)
	g.SetState(0, 2, Wall())
	if got := g.Encode(g.Whole()); got != "2W1;" {
		t.Fatalf("encode = %q, want %q", got, "2W1;")
	}
}

func TestEncodeRegion(t *testing.T) {
	g := New(3, 4)
	g.SetState(0, 0, Pusher(Right))
	g.SetState(1, 1, Box())
	g.SetState(2, 3, Rotator(Counterclockwise))
	if got, want := g.Encode(g.Whole()), "Qr3;1E2;3Rl;"; got != want {
		t.Fatalf("encode whole = %q, want %q", got, want)
	}
	if got, want := g.Encode(Region{Top: 1, Bottom: 2, Left: 1, Right: 3}), "E2;2Rl;"; got != want {
		t.Fatalf("encode sub-region = %q, want %q", got, want)
	}
	if got, want := g.Encode(Region{Top: -1, Bottom: 0, Left: -1, Right: 1}), "3;1Qr1;"; got != want {
		t.Fatalf("encode past the edge = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	rng := core.NewRNG(5)
	for trial := 0; trial < 20; trial++ {
		src := New(7, 9)
		src.Scatter(rng, 40)
		regions := []Region{
			src.Whole(),
			{Top: 1, Bottom: 5, Left: 2, Right: 6},
			{Top: -2, Bottom: 3, Left: -1, Right: 10},
		}
		for _, r := range regions {
			text := src.Encode(r)
			dst := New(7, 9)
			dst.Decode(r, text)
			for row := r.Top; row <= r.Bottom; row++ {
				for col := r.Left; col <= r.Right; col++ {
					want, ok := src.At(row, col)
					if !ok {
						continue
					}
					if got, _ := dst.At(row, col); got != want {
						t.Fatalf("trial %d region %+v: (%d,%d) = %v, want %v (text %q)", trial, r, row, col, got, want, text)
					}
				}
			}
		}
	}
}

func TestDecodeIgnoresWhitespaceAndJunk(t *testing.T) {
	g := New(2, 4)
	g.Decode(g.Whole(), " 1 Q\tr ?E ;\n x Fv#2 ; ")
	if got, want := g.Encode(g.Whole()), "1QrE1;Fv3;"; got != want {
		t.Fatalf("decode = %q, want %q", got, want)
	}
}

func TestDecodeRunLeavesCellsUnchanged(t *testing.T) {
	g := New(1, 4)
	g.SetState(0, 1, Wall())
	g.Decode(g.Whole(), "2E;")
	if got, want := g.Encode(g.Whole()), "1WE1;"; got != want {
		t.Fatalf("decode over existing content = %q, want %q", got, want)
	}
}

func TestDecodeAnchorsAtRegionAndClipsToGrid(t *testing.T) {
	g := New(3, 3)
	g.Decode(Region{Top: 1, Bottom: 1, Left: 2, Right: 2}, "EE;W;Qu;")
	if got, want := g.Encode(g.Whole()), "3;2E;2W;"; got != want {
		t.Fatalf("anchored decode = %q, want %q", got, want)
	}
	g.Decode(Region{Top: -1, Left: -1}, "EEE;EEE;")
	if got, want := g.Encode(g.Whole()), "EE1;2E;2W;"; got != want {
		t.Fatalf("negative anchor decode = %q, want %q", got, want)
	}
}

func TestDecodeToleratesMalformedInput(t *testing.T) {
	g := New(2, 2)
	inputs := []string{
		"99999999999999999999999E;E",
		"Q",
		"QQQQ;;;;",
		"0E;",
		";;;;;;;;;;;;;;E",
		"é☃Qr",
	}
	for _, in := range inputs {
		g.Clear()
		g.Decode(g.Whole(), in)
	}
	g.Clear()
	g.Decode(g.Whole(), "0E;")
	if s, _ := g.At(0, 0); s != Box() {
		t.Fatalf("zero-length run must not skip, got %v", s)
	}
}
