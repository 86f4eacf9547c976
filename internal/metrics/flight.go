package metrics

import (
	"math"

	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

// PropellantUsed is the mass consumed since the first observed state.
type PropellantUsed struct {
	initial float64
	current float64
	started bool
}

func NewPropellantUsed() *PropellantUsed { return &PropellantUsed{} }

func (p *PropellantUsed) Name() string { return "propellant_used" }

func (p *PropellantUsed) Observe(s sim.PhysicalState) {
	if !p.started {
		p.initial = s.Mass
		p.started = true
	}
	p.current = s.Mass
}

func (p *PropellantUsed) Value() float64 { return p.initial - p.current }

func (p *PropellantUsed) Reset() {
	*p = PropellantUsed{}
}

// MaxAltitude tracks the peak geometric altitude.
type MaxAltitude struct {
	planet planet.Planet
	max    float64
}

func NewMaxAltitude(p planet.Planet) *MaxAltitude {
	return &MaxAltitude{planet: p, max: math.Inf(-1)}
}

func (m *MaxAltitude) Name() string { return "max_altitude" }

func (m *MaxAltitude) Observe(s sim.PhysicalState) {
	m.max = math.Max(m.max, m.planet.Altitude(s.Position))
}

func (m *MaxAltitude) Value() float64 {
	if math.IsInf(m.max, -1) {
		return 0
	}
	return m.max
}

func (m *MaxAltitude) Reset() { m.max = math.Inf(-1) }

// Standard returns the metrics reported for every run on p.
func Standard(p planet.Planet) []sim.Metric {
	return []sim.Metric{
		NewMaxAltitude(p),
		NewMaxDynamicPressure(p),
		NewMaxMach(p),
		NewPropellantUsed(),
	}
}
