package tui

import (
	"path/filepath"
	"testing"
	"time"

	"force-ca/internal/patterns"
	"force-ca/internal/runner"
	"force-ca/internal/session"
	"force-ca/internal/sims/forces"
)

func newSession(t *testing.T, rows, cols int, pattern string) *session.Session {
	t.Helper()
	cfg := forces.DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Pattern = rows, cols, pattern
	m := forces.NewMachine(cfg)
	m.Reset(0)
	return session.New(m)
}

func TestTargetStepsOnlyWhileRunning(t *testing.T) {
	s := newSession(t, 1, 6, "QrE4;")
	target := Target{S: s}

	target.Step()
	if target.Generation() != 0 {
		t.Fatalf("paused target advanced to %d", target.Generation())
	}

	s.Start()
	target.Step()
	if target.Generation() != 1 || target.Population() != 2 {
		t.Fatalf("generation %d population %d", target.Generation(), target.Population())
	}

	s.Stop()
	target.Step()
	if target.Generation() != 0 {
		t.Fatalf("stop should rewind, got generation %d", target.Generation())
	}
}

func TestTargetUnderRunner(t *testing.T) {
	s := newSession(t, 1, 6, "QrE4;")
	r := runner.New(Target{S: s}, &runner.Options{MaxSteps: 3}, nil)
	defer r.Close()

	r.Sync(s.Start)
	r.Run()
	deadline := time.Now().Add(5 * time.Second)
	for r.Status().Mode != runner.StateFinished && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if st := r.Status(); st.Mode != runner.StateFinished || st.Generation != 3 {
		t.Fatalf("status = %+v", st)
	}
	var enc string
	r.Sync(func() { enc = s.Grid().Encode(s.Grid().Whole()) })
	if enc != "3QrE1;" {
		t.Fatalf("grid = %q", enc)
	}
}

func TestExportSelection(t *testing.T) {
	s := newSession(t, 2, 4, "QrE2;1Rl2;")
	s.Select(0, 0)
	s.Drag(1, 1)

	path := filepath.Join(t.TempDir(), "selection.yaml")
	name, err := ExportSelection(s, path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "selection-0" {
		t.Fatalf("name = %q", name)
	}

	lib, err := patterns.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	p, err := lib.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	if p.Rows != 2 || p.Cols != 2 || p.Data != "QrE;1Rl;" {
		t.Fatalf("exported %+v", p)
	}
}

func TestExportSelectionBadPath(t *testing.T) {
	s := newSession(t, 1, 1, "")
	if _, err := ExportSelection(s, filepath.Join(t.TempDir(), "missing", "x.yaml")); err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}
