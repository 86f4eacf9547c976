package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

// MaxDynamicPressure tracks the peak of q = rho*|v_air|^2/2 in Pa.
type MaxDynamicPressure struct {
	planet planet.Planet
	max    float64
	at     float64
}

func NewMaxDynamicPressure(p planet.Planet) *MaxDynamicPressure {
	return &MaxDynamicPressure{planet: p}
}

func (m *MaxDynamicPressure) Name() string { return "max_q" }

func (m *MaxDynamicPressure) Observe(s sim.PhysicalState) {
	q := DynamicPressure(m.planet, s)
	if q > m.max {
		m.max = q
		m.at = s.Time
	}
}

func (m *MaxDynamicPressure) Value() float64 { return m.max }

// Time is when the peak occurred.
func (m *MaxDynamicPressure) Time() float64 { return m.at }

func (m *MaxDynamicPressure) Reset() {
	m.max = 0
	m.at = 0
}

// DynamicPressure is the dynamic pressure of the air stream at s.
func DynamicPressure(p planet.Planet, s sim.PhysicalState) float64 {
	v := r3.Norm(p.AirVelocity(s.Position, s.Velocity))
	return 0.5 * p.Density(s.Position) * v * v
}

// MaxMach tracks the peak Mach number relative to the co-rotating air.
// States without a speed of sound (vacuum) are ignored.
type MaxMach struct {
	planet planet.Planet
	max    float64
}

func NewMaxMach(p planet.Planet) *MaxMach {
	return &MaxMach{planet: p}
}

func (m *MaxMach) Name() string { return "max_mach" }

func (m *MaxMach) Observe(s sim.PhysicalState) {
	a := m.planet.SpeedOfSound(s.Position)
	if !(a > 0) {
		return
	}
	m.max = math.Max(m.max, r3.Norm(m.planet.AirVelocity(s.Position, s.Velocity))/a)
}

func (m *MaxMach) Value() float64 { return m.max }
func (m *MaxMach) Reset()         { m.max = 0 }
