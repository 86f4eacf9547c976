package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/integrators"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/vehicle"
)

// Simulator advances one vehicle around one planet with a fixed step size.
//
// A Simulator owns its vehicle and integrator for the duration of a run and
// is not safe for concurrent use. Independent runs go through [Ensemble].
type Simulator struct {
	vehicle    *vehicle.Vehicle
	planet     planet.Planet
	integrator integrators.Integrator
	stepsize   float64
	state      PhysicalState
	steps      int

	metrics   []Metric
	observers []Observer
	logger    log.Logger
}

type Option func(*Simulator)

func WithLogger(logger log.Logger) Option {
	return func(s *Simulator) { s.logger = logger }
}

func WithMetrics(m ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m...) }
}

func WithObservers(o ...Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o...) }
}

// New returns a simulator whose state starts at t = 0 at the origin with
// the vehicle's mass. Use InitGeodetic or InitInertial to place it.
func New(v *vehicle.Vehicle, p planet.Planet, integ integrators.Integrator, stepsize float64, opts ...Option) (*Simulator, error) {
	if !(stepsize > 0) || math.IsInf(stepsize, 0) {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidStepsize, stepsize)
	}
	s := &Simulator{
		vehicle:    v,
		planet:     p,
		integrator: integ,
		stepsize:   stepsize,
		state:      PhysicalState{Mass: v.Mass()},
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() PhysicalState         { return s.state }
func (s *Simulator) SetState(state PhysicalState) { s.state = state }
func (s *Simulator) Vehicle() *vehicle.Vehicle    { return s.vehicle }
func (s *Simulator) Planet() planet.Planet        { return s.planet }
func (s *Simulator) Stepsize() float64            { return s.stepsize }

// Steps is the number of steps taken since construction.
func (s *Simulator) Steps() int { return s.steps }

// InitGeodetic places the vehicle on the launch pad at the given geodetic
// latitude, longitude and launch azimuth in degrees. The attitude is the
// launch attitude pitched by the steering angle at the current time, so the
// commanded angle is always measured from the launch attitude.
func (s *Simulator) InitGeodetic(lat, lon, azimuth float64) {
	site := s.planet.Launch(lat, lon, azimuth)
	s.state.Position = site.Position
	s.state.Velocity = site.Velocity
	s.state.Attitude = PitchBody(site.Attitude, s.vehicle.Steering().Update(s.state.Time))
}

// InitInertial overrides position and velocity, keeping attitude and mass.
func (s *Simulator) InitInertial(position, velocity r3.Vec) {
	s.state.Position = position
	s.state.Velocity = velocity
}

// Derivative returns the time derivative of state in NumericState layout.
func (s *Simulator) Derivative(state PhysicalState) NumericState {
	pressure := s.planet.Pressure(state.Position)
	thrust := BodyToInertial(state.Attitude, s.vehicle.SpecificThrust(pressure, state.Mass))

	return ToVector(PhysicalState{
		Position: state.Velocity,
		Velocity: r3.Add(thrust, s.planet.Gravity(state.Position)),
		Mass:     s.vehicle.MassRate(),
		Attitude: EulerRates(state.Attitude, r3.Vec{Y: s.vehicle.Steering().Rate(state.Time)}),
	})
}

func (s *Simulator) derive(t float64, y []float64) []float64 {
	var v NumericState
	copy(v[:], y)
	d := s.Derivative(FromVector(t, v))
	return d[:]
}

// Step advances the state by one step and returns the new state.
func (s *Simulator) Step() PhysicalState {
	t0 := s.state.Time
	y0 := ToVector(s.state)

	y1 := s.integrator.Step(s.derive, t0, y0[:], s.stepsize)

	var v NumericState
	copy(v[:], y1)
	s.state = FromVector(t0+s.stepsize, v)
	s.steps++
	return s.state
}

// Run steps until the state time reaches until (within a small fraction of
// a step), recording every state. A non-finite state stops the run and is
// returned as the final state together with ErrInvalidState.
func (s *Simulator) Run(ctx context.Context, until float64) (*Result, error) {
	n := int(math.Ceil((until-s.state.Time)/s.stepsize - 1e-9))
	if n < 0 {
		n = 0
	}

	result := &Result{
		Times:   make([]float64, 0, n+1),
		States:  make([]PhysicalState, 0, n+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	logger := log.With(s.logger, "integrator", s.integrator.Name())
	level.Info(logger).Log("msg", "run start", "t", s.state.Time, "until", until, "stepsize", s.stepsize, "steps", n)

	s.record(result)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			level.Warn(logger).Log("msg", "run canceled", "step", i, "t", s.state.Time)
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if !(s.state.Mass > 0) {
			s.finish(result)
			return result, &SimulationError{Step: i, Time: s.state.Time, State: s.state, Wrapped: ErrNonPositiveMass}
		}

		s.Step()
		result.StepsTaken++
		s.record(result)

		if !s.state.IsValid() {
			level.Warn(logger).Log("msg", "invalid state", "step", i, "t", s.state.Time)
			s.finish(result)
			return result, &SimulationError{Step: i, Time: s.state.Time, State: s.state, Wrapped: ErrInvalidState}
		}
		level.Debug(logger).Log("step", i, "t", s.state.Time, "alt", s.planet.Altitude(s.state.Position), "mass", s.state.Mass)
	}

	s.finish(result)
	level.Info(logger).Log("msg", "run done", "t", s.state.Time, "alt", s.planet.Altitude(s.state.Position),
		"speed", r3.Norm(s.state.Velocity), "mass", s.state.Mass)
	return result, nil
}

func (s *Simulator) record(result *Result) {
	result.Times = append(result.Times, s.state.Time)
	result.States = append(result.States, s.state)
	for _, m := range s.metrics {
		m.Observe(s.state)
	}
	s.Notify()
}

// Notify passes the current state to the observers. Run does this for every
// state; callers driving Step themselves call it after each step.
func (s *Simulator) Notify() {
	for _, o := range s.observers {
		o.OnStep(s.state)
	}
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
