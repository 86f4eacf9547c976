package vehicle

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// StdGravity converts specific impulse to effective exhaust velocity.
const StdGravity = 9.80665 // [m/s^2]

// Engine is a rocket engine rigidly mounted on the vehicle.
type Engine struct {
	// Incidence is the mounting angle relative to the body x axis,
	// [pitch, yaw] in radians.
	Incidence [2]float64
	// Throttle is the commanded fraction of vacuum thrust, in [0, 1].
	Throttle  float64
	ThrustVac float64 // [N]
	ExitArea  float64 // [m^2]
	// Isp is the vacuum specific impulse. Zero disables mass flow.
	Isp float64 // [s]
}

// NewEngine returns an engine at full throttle.
func NewEngine(incidence [2]float64, thrustVac, exitArea, isp float64) Engine {
	return Engine{
		Incidence: incidence,
		Throttle:  1,
		ThrustVac: thrustVac,
		ExitArea:  exitArea,
		Isp:       isp,
	}
}

func (e Engine) validate() error {
	if e.Throttle < 0 || e.Throttle > 1 {
		return fmt.Errorf("%w: %g", ErrThrottleRange, e.Throttle)
	}
	if e.ThrustVac < 0 || e.ExitArea < 0 || e.Isp < 0 {
		return fmt.Errorf("%w: thrust=%g area=%g isp=%g", ErrInvalidEngine, e.ThrustVac, e.ExitArea, e.Isp)
	}
	return nil
}

// Direction is the unit thrust direction in body axes.
func (e Engine) Direction() r3.Vec {
	sp, cp := math.Sincos(e.Incidence[0])
	sy, cy := math.Sincos(e.Incidence[1])
	return r3.Vec{X: cy * cp, Y: sy, Z: cy * sp}
}

// Thrust is the thrust vector in body axes at the given ambient pressure.
// The nozzle loses ExitArea*pressure against the vacuum value.
func (e Engine) Thrust(pressure float64) r3.Vec {
	return r3.Scale(e.Throttle*e.ThrustVac-e.ExitArea*pressure, e.Direction())
}

// MassFlow is the propellant consumption in kg/s.
func (e Engine) MassFlow() float64 {
	if e.Isp == 0 {
		return 0
	}
	return e.Throttle * e.ThrustVac / (e.Isp * StdGravity)
}
