package vehicle

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/control"
)

var (
	ErrNonPositiveMass = errors.New("vehicle: mass must be positive")
	ErrThrottleRange   = errors.New("vehicle: throttle outside [0, 1]")
	ErrInvalidEngine   = errors.New("vehicle: invalid engine")
	ErrNoSteering      = errors.New("vehicle: steering law is required")
	ErrNoEngine        = errors.New("vehicle: no such engine")
)

// Vehicle aggregates the engines and steering law of a flight vehicle.
//
// Throttle settings may be changed between integration steps but not while
// a step using this vehicle is in flight.
type Vehicle struct {
	mass     float64
	engines  []Engine
	steering control.Steering
}

// New validates the configuration and returns a vehicle.
func New(mass float64, engines []Engine, steering control.Steering) (*Vehicle, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: %g", ErrNonPositiveMass, mass)
	}
	if steering == nil {
		return nil, ErrNoSteering
	}
	for i, e := range engines {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("engine %d: %w", i, err)
		}
	}
	return &Vehicle{
		mass:     mass,
		engines:  append([]Engine(nil), engines...),
		steering: steering,
	}, nil
}

func (v *Vehicle) Mass() float64              { return v.mass }
func (v *Vehicle) Steering() control.Steering { return v.steering }

// Engines returns a copy of the engine list.
func (v *Vehicle) Engines() []Engine {
	return append([]Engine(nil), v.engines...)
}

func (v *Vehicle) SetMass(mass float64) error {
	if !(mass > 0) {
		return fmt.Errorf("%w: %g", ErrNonPositiveMass, mass)
	}
	v.mass = mass
	return nil
}

func (v *Vehicle) SetThrottle(engine int, throttle float64) error {
	if engine < 0 || engine >= len(v.engines) {
		return fmt.Errorf("%w: %d of %d", ErrNoEngine, engine, len(v.engines))
	}
	if throttle < 0 || throttle > 1 {
		return fmt.Errorf("%w: %g", ErrThrottleRange, throttle)
	}
	v.engines[engine].Throttle = throttle
	return nil
}

// ThrustAcceleration is the specific thrust in body axes at the vehicle's
// own mass.
func (v *Vehicle) ThrustAcceleration(pressure float64) r3.Vec {
	return v.SpecificThrust(pressure, v.mass)
}

// SpecificThrust sums the thrust of all engines at the given ambient pressure
// and divides by mass. mass must be positive; it is not checked here.
func (v *Vehicle) SpecificThrust(pressure, mass float64) r3.Vec {
	var total r3.Vec
	for _, e := range v.engines {
		total = r3.Add(total, e.Thrust(pressure))
	}
	return r3.Scale(1/mass, total)
}

// MassRate is the time derivative of vehicle mass (non-positive).
func (v *Vehicle) MassRate() float64 {
	rate := 0.0
	for _, e := range v.engines {
		rate -= e.MassFlow()
	}
	return rate
}
