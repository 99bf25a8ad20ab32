package app

import (
	"errors"
	"flag"
	"path/filepath"
	"testing"
	"time"

	"force-ca/internal/patterns"
	"force-ca/internal/sims/forces"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if *c != *NewConfig() {
		t.Fatalf("env defaults disagree with NewConfig:\n%+v\n%+v", *c, *NewConfig())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FORCE_CA_ROWS", "12")
	t.Setenv("FORCE_CA_TIEBREAK", "random")
	t.Setenv("FORCE_CA_INTERVAL", "250ms")
	c, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if c.Rows != 12 || c.TieBreak != "random" || c.Interval != 250*time.Millisecond {
		t.Fatalf("config = %+v", *c)
	}

	t.Setenv("FORCE_CA_COLS", "wide")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error for a non-numeric width")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("FORCE_CA_SEED", "5")
	c, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	c.Bind(fs)
	if err := fs.Parse([]string{"-seed", "9", "-pattern", "mill"}); err != nil {
		t.Fatal(err)
	}
	if c.Seed != 9 || c.Pattern != "mill" {
		t.Fatalf("config = %+v", *c)
	}
	opts := c.SimOptions()
	if opts["seed"] != "9" || opts["rows"] != "30" || opts["tiebreak"] != "priority" {
		t.Fatalf("sim options = %v", opts)
	}
}

func TestNewSessionPlacesPattern(t *testing.T) {
	c := NewConfig()
	c.Rows, c.Cols, c.Pattern = 3, 6, "courier"
	s, lib, err := c.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	if lib.Len() == 0 {
		t.Fatal("builtin library should not be empty")
	}
	if got := s.Grid().Encode(s.Grid().Whole()); got != "QrE4;6;6;" {
		t.Fatalf("grid = %q", got)
	}
}

func TestNewSessionErrors(t *testing.T) {
	c := NewConfig()
	c.Pattern = "missing"
	if _, _, err := c.NewSession(); !errors.Is(err, patterns.ErrUnknownPattern) {
		t.Fatalf("unknown pattern err = %v", err)
	}

	c = NewConfig()
	c.Sim = "nope"
	if _, _, err := c.NewSession(); err == nil {
		t.Fatal("expected an error for an unknown sim")
	}

	c = NewConfig()
	c.TieBreak = "coin"
	if _, _, err := c.NewSession(); err == nil {
		t.Fatal("expected an error for an unknown tie-break policy")
	}

	c = NewConfig()
	c.Patterns = filepath.Join(t.TempDir(), "none.yaml")
	if _, _, err := c.NewSession(); err == nil {
		t.Fatal("expected an error for a missing library file")
	}
}

func TestNewSessionUsesLibraryFile(t *testing.T) {
	lib := patterns.NewLibrary()
	if err := lib.Add(patterns.Pattern{Name: "dot", Rows: 1, Cols: 1, Data: "W;"}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "lib.yaml")
	if err := lib.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	c := NewConfig()
	c.Rows, c.Cols, c.Patterns, c.Pattern = 1, 2, path, "dot"
	s, _, err := c.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	if st, _ := s.Grid().At(0, 0); st != forces.Wall() {
		t.Fatalf("cell = %v", st)
	}
}
