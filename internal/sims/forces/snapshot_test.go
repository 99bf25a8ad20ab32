package forces

import "testing"

func TestSnapshotRestoreRewindsRun(t *testing.T) {
	g := decodeGrid(t, 3, 5, "QrE3;5;DvE3;")
	before := g.Encode(g.Whole())
	snap := g.Snapshot()
	for i := 0; i < 7; i++ {
		g.Step()
	}
	if got, want := g.Encode(g.Whole()), "3QrE;5;Dv4;"; got != want {
		t.Fatalf("after seven steps = %q, want %q", got, want)
	}
	if !g.Restore(snap) {
		t.Fatal("restore into the same grid must succeed")
	}
	if got := g.Encode(g.Whole()); got != before {
		t.Fatalf("restored grid = %q, want %q", got, before)
	}
	assertScratchClear(t, g)
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	g := New(2, 2)
	g.SetState(0, 0, Box())
	snap := g.Snapshot()
	g.SetState(0, 0, Wall())
	g.Restore(snap)
	if s, _ := g.At(0, 0); s != Box() {
		t.Fatalf("snapshot followed later edits: %v", s)
	}
	if snap.Rows() != 2 || snap.Cols() != 2 {
		t.Fatalf("snapshot size = %dx%d", snap.Rows(), snap.Cols())
	}
}

func TestRestoreRejectsOtherSize(t *testing.T) {
	g := New(2, 2)
	g.SetState(1, 1, Box())
	other := New(3, 2).Snapshot()
	if g.Restore(other) {
		t.Fatal("restore from a different size must fail")
	}
	if s, _ := g.At(1, 1); s != Box() {
		t.Fatal("failed restore must leave the grid untouched")
	}
	if g.Restore(Snapshot{}) {
		t.Fatal("zero snapshot must not restore")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := decodeGrid(t, 1, 3, "QrE1;")
	c := g.Clone()
	c.Step()
	if got := g.Encode(g.Whole()); got != "QrE1;" {
		t.Fatalf("stepping the clone changed the original: %q", got)
	}
	if got := c.Encode(c.Whole()); got != "1QrE;" {
		t.Fatalf("clone stepped to %q", got)
	}
}
