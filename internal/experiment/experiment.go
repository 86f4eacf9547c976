package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log"

	"github.com/san-kum/ascent/internal/config"
	"github.com/san-kum/ascent/internal/controllers"
	"github.com/san-kum/ascent/internal/sim"
	"github.com/san-kum/ascent/internal/vehicle"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment turns a scenario into a ready simulator and runs it.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	logger    log.Logger
	simulator *sim.Simulator
}

func New(cfg *config.Config, registry *Registry, logger log.Logger) *Experiment {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup validates the scenario and builds the simulator with the default
// metrics plus any extra observers.
func (e *Experiment) Setup(observers ...sim.Observer) error {
	s, err := Build(e.cfg, e.registry, e.logger)
	if err != nil {
		return err
	}
	for _, o := range observers {
		s.AddObserver(o)
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	return e.simulator.Run(ctx, e.cfg.Duration)
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Build assembles a simulator placed on the launch pad of cfg. Every call
// returns a new vehicle and integrator.
func Build(cfg *config.Config, r *Registry, logger log.Logger) (*sim.Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	p, err := r.GetPlanet(cfg.Planet)
	if err != nil {
		return nil, err
	}
	integ, err := r.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	v, err := BuildVehicle(cfg.Vehicle, r)
	if err != nil {
		return nil, err
	}

	s, err := sim.New(v, p, integ, cfg.Dt,
		sim.WithLogger(log.With(logger, "planet", p.Name)),
		sim.WithMetrics(r.DefaultMetrics(p)...),
	)
	if err != nil {
		return nil, err
	}
	s.InitGeodetic(cfg.Launch.Latitude, cfg.Launch.Longitude, cfg.Launch.Azimuth)

	if g := cfg.Vehicle.Governor; g.MaxQ > 0 {
		minThrottle := g.MinThrottle
		if minThrottle == 0 {
			minThrottle = controllers.DefaultGovernorMinThrottle
		}
		gov := controllers.NewMaxQGovernor(v, p, g.MaxQ, minThrottle)
		gov.SetLogger(log.With(logger, "planet", p.Name, "component", "governor"))
		s.AddObserver(gov)
	}
	return s, nil
}

func BuildVehicle(vc config.VehicleConfig, r *Registry) (*vehicle.Vehicle, error) {
	steering, err := r.GetSteering(vc.Steering)
	if err != nil {
		return nil, err
	}

	engines := make([]vehicle.Engine, len(vc.Engines))
	for i, ec := range vc.Engines {
		engines[i] = vehicle.Engine{
			Incidence: [2]float64{ec.Pitch * deg, ec.Yaw * deg},
			Throttle:  ec.Throttle,
			ThrustVac: ec.ThrustVac,
			ExitArea:  ec.ExitArea,
			Isp:       ec.Isp,
		}
	}

	v, err := vehicle.New(vc.Mass, engines, steering)
	if err != nil {
		return nil, fmt.Errorf("build vehicle: %w", err)
	}
	return v, nil
}
