package core

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeString denotes free-form text parameters.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value reported by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the values a sim currently reports.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterProvider is implemented by sims that report their settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// ParameterControl describes an integer parameter the HUD may adjust in
// Step increments within [Min, Max].
type ParameterControl struct {
	Key   string
	Label string
	Step  int
	Min   int
	Max   int
}

// Clamp limits v to the control bounds.
func (c ParameterControl) Clamp(v int) int {
	if v < c.Min {
		return c.Min
	}
	if c.Max > c.Min && v > c.Max {
		return c.Max
	}
	return v
}

// ParameterControlsProvider exposes the list of HUD-adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows HUD interactions to update integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}
