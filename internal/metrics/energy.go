package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

// SpecificEnergy is the specific orbital energy v^2/2 - mu/r in J/kg.
func SpecificEnergy(p planet.Planet, s sim.PhysicalState) float64 {
	v := r3.Norm(s.Velocity)
	e := 0.5 * v * v
	if p.Mu != 0 {
		e -= p.Mu / r3.Norm(s.Position)
	}
	return e
}

// EnergyDrift is the largest relative change of specific orbital energy
// against the first observed state. It is only meaningful while coasting.
type EnergyDrift struct {
	planet   planet.Planet
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(p planet.Planet) *EnergyDrift {
	return &EnergyDrift{planet: p}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s sim.PhysicalState) {
	energy := SpecificEnergy(e.planet, s)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
