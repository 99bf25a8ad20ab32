package forces

import (
	"image/color"
	"strconv"

	"force-ca/internal/core"
	pcore "force-ca/pkg/core"
)

// HighlightOffset is added to a display value to select the highlighted
// variant of a kind's colour.
const HighlightOffset = uint8(kindCount)

// Machine adapts a Grid to the core.Sim contract.
type Machine struct {
	cfg        Config
	grid       *Grid
	generation int
	display    []uint8
}

// NewMachine returns a machine with an empty grid sized from cfg.
func NewMachine(cfg Config) *Machine {
	g := New(cfg.Rows, cfg.Cols)
	cfg.Rows, cfg.Cols = g.Rows(), g.Cols()
	return &Machine{
		cfg:     cfg,
		grid:    g,
		display: make([]uint8, g.Rows()*g.Cols()),
	}
}

// Name returns the simulation identifier.
func (m *Machine) Name() string { return "forces" }

// Size reports the grid dimensions.
func (m *Machine) Size() core.Size { return core.Size{W: m.grid.Cols(), H: m.grid.Rows()} }

// Grid exposes the underlying grid for editing.
func (m *Machine) Grid() *Grid { return m.grid }

// Config returns the active configuration.
func (m *Machine) Config() Config { return m.cfg }

// Generation returns the number of steps since the last Reset.
func (m *Machine) Generation() int { return m.generation }

// Reset clears the grid, places the configured pattern and scatters
// random states. A zero seed falls back to the configured one.
func (m *Machine) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = m.cfg.Seed
	}
	m.grid.Clear()
	m.generation = 0
	if m.cfg.TieBreak == TieBreakRandom {
		m.grid.SetTieBreaker(NewRandomTieBreak(effective))
	} else {
		m.grid.SetTieBreaker(nil)
	}
	if m.cfg.Pattern != "" {
		m.grid.Decode(m.grid.Whole(), m.cfg.Pattern)
	}
	if m.cfg.Fill > 0 {
		m.grid.Scatter(pcore.NewRNG(effective), m.cfg.Fill)
	}
}

// Step advances the grid by one generation.
func (m *Machine) Step() {
	m.grid.Step()
	m.generation++
}

// Population returns the number of non-empty cells.
func (m *Machine) Population() int {
	return len(m.grid.cells) - m.grid.Count(KindEmpty)
}

// Rewind restores a snapshot taken at the given generation.
func (m *Machine) Rewind(s Snapshot, generation int) bool {
	if !m.grid.Restore(s) {
		return false
	}
	m.generation = generation
	return true
}

// Cells returns one display value per cell: the kind index.
func (m *Machine) Cells() []uint8 {
	for i := range m.grid.cells {
		m.display[i] = uint8(m.grid.cells[i].state.kind)
	}
	return m.display
}

var forcesPalette = []color.RGBA{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, // empty
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // wall
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // box
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}, // board
	{R: 0xAF, G: 0x1B, B: 0x3F, A: 0xFF}, // destroyer
	{R: 0x6B, G: 0xAA, B: 0x75, A: 0xFF}, // rotator
	{R: 0x05, G: 0x82, B: 0xCA, A: 0xFF}, // pusher
	{R: 0x6F, G: 0x2D, B: 0xBD, A: 0xFF}, // shifter
	{R: 0xEC, G: 0xA4, B: 0x00, A: 0xFF}, // generator

	// highlighted
	{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF},
	{R: 0x66, G: 0x66, B: 0x66, A: 0xFF},
	{R: 0x66, G: 0x66, B: 0x66, A: 0xFF},
	{R: 0x66, G: 0x66, B: 0x66, A: 0xFF},
	{R: 0xE6, G: 0x62, B: 0x83, A: 0xFF},
	{R: 0xA7, G: 0xCC, B: 0xAD, A: 0xFF},
	{R: 0x52, G: 0xBD, B: 0xFB, A: 0xFF},
	{R: 0xA9, G: 0x7B, B: 0xE0, A: 0xFF},
	{R: 0xFF, G: 0xCE, B: 0x5A, A: 0xFF},
}

// Palette returns a colour per kind followed by the highlighted variants.
func (m *Machine) Palette() []color.RGBA { return forcesPalette }

// Parameters reports the grid settings and the current population.
func (m *Machine) Parameters() core.ParameterSnapshot {
	population := make([]core.Parameter, 0, kindCount-1)
	for _, k := range Kinds()[1:] {
		population = append(population, intParam(k.String(), k.String(), m.grid.Count(k)))
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("rows", "Rows", m.grid.Rows()),
				intParam("cols", "Cols", m.grid.Cols()),
				intParam("generation", "Generation", m.generation),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				intParam("seed", "Seed", int(m.cfg.Seed)),
				intParam("fill", "Fill %", m.cfg.Fill),
				{Key: "tiebreak", Label: "Tie-break", Type: core.ParamTypeString, Value: m.cfg.TieBreak},
			},
		},
		{Name: "Population", Params: population},
	}}
}

// ParameterControls lists the values adjustable from the HUD. They take
// effect on the next Reset.
func (m *Machine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fill", Label: "Fill %", Step: 5, Min: 0, Max: 100},
		{Key: "seed", Label: "Seed", Step: 1, Min: 0},
	}
}

// SetIntParameter updates fill or seed.
func (m *Machine) SetIntParameter(key string, value int) bool {
	for _, ctrl := range m.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "fill":
			m.cfg.Fill = value
		case "seed":
			m.cfg.Seed = int64(value)
		}
		return true
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func init() {
	core.Register("forces", func(cfg map[string]string) core.Sim {
		return NewMachine(FromMap(cfg))
	})
}
