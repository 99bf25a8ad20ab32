package forces

import "strconv"

// Tie-break policy names accepted by Config.TieBreak.
const (
	TieBreakPriority = "priority"
	TieBreakRandom   = "random"
)

// Config controls the dimensions and seeding of a Machine.
type Config struct {
	Rows int
	Cols int

	Seed int64

	// Fill is the percentage of cells given a random state on Reset.
	Fill int
	// TieBreak names the same-kind collision policy.
	TieBreak string
	// Pattern is encoded region text placed at the top-left corner on Reset.
	Pattern string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:     30,
		Cols:     40,
		Seed:     42,
		TieBreak: TieBreakPriority,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for _, key := range []string{"rows", "h"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Rows = parsed
			}
		}
	}
	for _, key := range []string{"cols", "w"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Cols = parsed
			}
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["fill"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			c.Fill = parsed
		}
	}
	if v, ok := cfg["tiebreak"]; ok && (v == TieBreakPriority || v == TieBreakRandom) {
		c.TieBreak = v
	}
	if v, ok := cfg["pattern"]; ok {
		c.Pattern = v
	}
	return c
}
