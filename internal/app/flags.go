package app

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"force-ca/internal/core"
	"force-ca/internal/patterns"
	"force-ca/internal/session"
	"force-ca/internal/sims/forces"

	"github.com/caarlos0/env/v11"
	"github.com/integrii/flaggy"
)

// Config represents the settings shared by the graphical and terminal
// commands. Environment variables seed it; command-line flags override.
type Config struct {
	Sim      string        `env:"FORCE_CA_SIM"       envDefault:"forces"`
	Scale    int           `env:"FORCE_CA_SCALE"     envDefault:"20"`
	TPS      int           `env:"FORCE_CA_TPS"       envDefault:"60"`
	HUD      int           `env:"FORCE_CA_HUD_WIDTH" envDefault:"220"`
	Seed     int64         `env:"FORCE_CA_SEED"      envDefault:"42"`
	Rows     int           `env:"FORCE_CA_ROWS"      envDefault:"30"`
	Cols     int           `env:"FORCE_CA_COLS"      envDefault:"40"`
	Fill     int           `env:"FORCE_CA_FILL"      envDefault:"0"`
	TieBreak string        `env:"FORCE_CA_TIEBREAK"  envDefault:"priority"`
	Patterns string        `env:"FORCE_CA_PATTERNS"`
	Pattern  string        `env:"FORCE_CA_PATTERN"`
	Interval time.Duration `env:"FORCE_CA_INTERVAL"  envDefault:"100ms"`
	MaxSteps int           `env:"FORCE_CA_MAX_STEPS" envDefault:"100"`
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "forces",
		Scale:    20,
		TPS:      60,
		HUD:      220,
		Seed:     42,
		Rows:     30,
		Cols:     40,
		TieBreak: forces.TieBreakPriority,
		Interval: 100 * time.Millisecond,
		MaxSteps: 100,
	}
}

// LoadConfig reads the FORCE_CA_* environment variables on top of the
// defaults.
func LoadConfig() (*Config, error) {
	c := NewConfig()
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUD, "hud", c.HUD, "HUD panel width in pixels (0 hides it)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fill and tie-breaks")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid height")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid width")
	fs.IntVar(&c.Fill, "fill", c.Fill, "percentage of cells filled at random on reset")
	fs.StringVar(&c.TieBreak, "tiebreak", c.TieBreak, "same-kind collision policy (priority|random)")
	fs.StringVar(&c.Patterns, "patterns", c.Patterns, "YAML pattern library (builtin when empty)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern placed at the top-left corner on start")
}

// BindFlaggy attaches the terminal command's options to p.
func (c *Config) BindFlaggy(p *flaggy.Parser) {
	p.Int(&c.Rows, "y", "rows", "Grid height")
	p.Int(&c.Cols, "x", "cols", "Grid width")
	p.Int64(&c.Seed, "e", "seed", "Seed for random fill and tie-breaks")
	p.Int(&c.Fill, "f", "fill", "Percentage of cells filled at random on reset")
	p.String(&c.TieBreak, "t", "tiebreak", "Same-kind collision policy [priority|random]")
	p.String(&c.Patterns, "l", "patterns", "YAML pattern library file (builtin when empty)")
	p.String(&c.Pattern, "p", "pattern", "Pattern placed at the top-left corner on start")
	p.Duration(&c.Interval, "i", "interval", "Pause between generations while running, for example 150ms")
	p.Int(&c.MaxSteps, "s", "maxSteps", "Generations to run in batch mode")
}

// SimOptions converts the grid settings into the sim factory's map form.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"rows":     strconv.Itoa(c.Rows),
		"cols":     strconv.Itoa(c.Cols),
		"seed":     strconv.FormatInt(c.Seed, 10),
		"fill":     strconv.Itoa(c.Fill),
		"tiebreak": c.TieBreak,
	}
}

// Library loads the configured pattern library.
func (c *Config) Library() (*patterns.Library, error) {
	if c.Patterns == "" {
		return patterns.Builtin(), nil
	}
	return patterns.LoadFile(c.Patterns)
}

// NewSession builds the configured simulation, seeds it and places the
// starting pattern.
func (c *Config) NewSession() (*session.Session, *patterns.Library, error) {
	if c.TieBreak != forces.TieBreakPriority && c.TieBreak != forces.TieBreakRandom {
		return nil, nil, fmt.Errorf("unknown tie-break policy %q", c.TieBreak)
	}
	factory, ok := core.Lookup(c.Sim)
	if !ok {
		return nil, nil, fmt.Errorf("unknown sim %q", c.Sim)
	}
	m, ok := factory(c.SimOptions()).(*forces.Machine)
	if !ok {
		return nil, nil, fmt.Errorf("sim %q cannot be edited", c.Sim)
	}
	lib, err := c.Library()
	if err != nil {
		return nil, nil, err
	}
	m.Reset(c.Seed)
	if c.Pattern != "" {
		if err := lib.Place(m.Grid(), c.Pattern, 0, 0); err != nil {
			return nil, nil, fmt.Errorf("place pattern: %w", err)
		}
	}
	return session.New(m), lib, nil
}
