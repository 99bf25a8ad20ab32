package session

import (
	"errors"
	"testing"

	"force-ca/internal/sims/forces"
)

func newSession(t *testing.T, rows, cols int, pattern string) *Session {
	t.Helper()
	cfg := forces.DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Pattern = rows, cols, pattern
	m := forces.NewMachine(cfg)
	m.Reset(0)
	return New(m)
}

func encoded(s *Session) string { return s.Grid().Encode(s.Grid().Whole()) }

func TestSelectionNormalises(t *testing.T) {
	s := newSession(t, 5, 5, "")
	s.Select(3, 4)
	s.Drag(1, 2)
	if got, want := s.Region(), (forces.Region{Top: 1, Bottom: 3, Left: 2, Right: 4}); got != want {
		t.Fatalf("region = %+v, want %+v", got, want)
	}
	s.MoveSelection(forces.Up)
	s.MoveSelection(forces.Left)
	if got, want := s.Region(), (forces.Region{Top: 0, Bottom: 2, Left: 1, Right: 3}); got != want {
		t.Fatalf("moved region = %+v, want %+v", got, want)
	}
	if !s.Selected(2, 3) || s.Selected(3, 3) {
		t.Fatal("Selected disagrees with the region")
	}
}

func TestApplyKeyEditsSelection(t *testing.T) {
	s := newSession(t, 2, 3, "")
	s.Select(0, 0)
	s.Drag(0, 1)
	if ok, err := s.ApplyKey('q'); !ok || err != nil {
		t.Fatalf("ApplyKey(q) = %v, %v", ok, err)
	}
	if ok, _ := s.ApplyKey('q'); !ok {
		t.Fatal("q is an editing key")
	}
	if got, want := encoded(s), "QrQr1;3;"; got != want {
		t.Fatalf("grid = %q, want %q", got, want)
	}
	if ok, _ := s.ApplyKey('z'); ok {
		t.Fatal("z is not an editing key")
	}
	if err := s.Apply(forces.KindEmpty); err != nil {
		t.Fatal(err)
	}
	if got := encoded(s); got != "3;3;" {
		t.Fatalf("empty edit left %q", got)
	}
}

func TestRunRewindsOnStop(t *testing.T) {
	s := newSession(t, 1, 4, "QrE2;")
	s.SetSpeed(5)
	s.Start()
	if !s.Running() {
		t.Fatal("session should be running")
	}
	steps := 0
	for frame := 0; frame < 4; frame++ {
		if s.Tick() {
			steps++
		}
	}
	if steps != 2 {
		t.Fatalf("speed 5 should step every other frame, stepped %d times", steps)
	}
	if got := encoded(s); got != "2QrE;" {
		t.Fatalf("running grid = %q", got)
	}
	if s.Selected(0, 0) {
		t.Fatal("nothing is highlighted while running")
	}
	s.Toggle()
	if s.Running() {
		t.Fatal("toggle should stop the run")
	}
	if got := encoded(s); got != "QrE2;" {
		t.Fatalf("stop should rewind, got %q", got)
	}
	if s.Generation() != 0 {
		t.Fatalf("generation after rewind = %d", s.Generation())
	}
}

func TestEditsRejectedWhileRunning(t *testing.T) {
	s := newSession(t, 2, 2, "E1;")
	s.Start()
	if err := s.Apply(forces.KindWall); !errors.Is(err, ErrRunning) {
		t.Fatalf("Apply while running = %v", err)
	}
	if err := s.Paste("W;"); !errors.Is(err, ErrRunning) {
		t.Fatalf("Paste while running = %v", err)
	}
	if _, err := s.Cut(); !errors.Is(err, ErrRunning) {
		t.Fatalf("Cut while running = %v", err)
	}
	if err := s.StepOnce(); !errors.Is(err, ErrRunning) {
		t.Fatalf("StepOnce while running = %v", err)
	}
	s.Select(1, 1)
	if s.Anchor() != (forces.Pos{}) {
		t.Fatal("selection must not move while running")
	}
	s.Stop()
	if got := encoded(s); got != "E1;2;" {
		t.Fatalf("grid = %q", got)
	}
}

func TestCopyCutPaste(t *testing.T) {
	s := newSession(t, 3, 3, "QrE1;1W1;3;")
	s.Select(0, 0)
	s.Drag(1, 1)
	if got := s.Copy(); got != "QrE;1W;" {
		t.Fatalf("copy = %q", got)
	}
	text, err := s.Cut()
	if err != nil || text != "QrE;1W;" {
		t.Fatalf("cut = %q, %v", text, err)
	}
	if got := encoded(s); got != "3;3;3;" {
		t.Fatalf("cut left %q", got)
	}
	s.Select(1, 1)
	if err := s.PasteClipboard(); err != nil {
		t.Fatal(err)
	}
	if got, want := encoded(s), "3;1QrE;2W;"; got != want {
		t.Fatalf("paste = %q, want %q", got, want)
	}
	s.SetClipboard("Al;")
	s.Select(0, 0)
	if err := s.PasteClipboard(); err != nil {
		t.Fatal(err)
	}
	if got, want := encoded(s), "Al2;1QrE;2W;"; got != want {
		t.Fatalf("paste = %q, want %q", got, want)
	}
}

func TestSpeedKeys(t *testing.T) {
	s := newSession(t, 1, 1, "")
	if s.Speed() != 3 {
		t.Fatalf("default speed = %d", s.Speed())
	}
	if !s.SpeedKey('1') || s.Speed() != 1 {
		t.Fatalf("speed after '1' = %d", s.Speed())
	}
	if s.SpeedKey('6') || s.SpeedKey('0') {
		t.Fatal("only 1..5 are speed keys")
	}
	s.SetSpeed(9)
	if s.Speed() != 5 {
		t.Fatalf("speed should clamp to 5, got %d", s.Speed())
	}
}

func TestStepOnceAdvancesPausedGrid(t *testing.T) {
	s := newSession(t, 1, 3, "QrE1;")
	if err := s.StepOnce(); err != nil {
		t.Fatal(err)
	}
	if got := encoded(s); got != "1QrE;" || s.Generation() != 1 {
		t.Fatalf("grid = %q generation %d", got, s.Generation())
	}
	if s.Population() != 2 {
		t.Fatalf("population = %d", s.Population())
	}
}
