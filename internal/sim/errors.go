package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrNonPositiveMass indicates the vehicle ran out of mass.
	ErrNonPositiveMass = errors.New("sim: vehicle mass is not positive")

	// ErrInvalidStepsize indicates a non-positive or non-finite step size.
	ErrInvalidStepsize = errors.New("sim: step size must be positive")

	// ErrSharedVehicle indicates two ensemble members using the same vehicle.
	ErrSharedVehicle = errors.New("sim: ensemble members must not share a vehicle")

	// ErrSharedIntegrator indicates two ensemble members using the same
	// integrator instance.
	ErrSharedIntegrator = errors.New("sim: ensemble members must not share an integrator")
)

// SimulationError wraps an error with the step at which it occurred.
type SimulationError struct {
	Step    int
	Time    float64
	State   PhysicalState
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
