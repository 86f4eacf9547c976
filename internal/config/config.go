package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.5
	DefaultDuration  = 60.0
	DefaultPlanet    = "earth"
	DefaultLatitude  = 28.5
	DefaultLongitude = 279.4
	DefaultAzimuth   = 90.0
)

var ErrInvalidConfig = errors.New("config: invalid scenario")

// Config describes one simulation scenario. Angles are in degrees.
type Config struct {
	Planet     string        `yaml:"planet"`
	Integrator string        `yaml:"integrator"`
	Dt         float64       `yaml:"dt"`
	Duration   float64       `yaml:"duration"`
	Launch     LaunchConfig  `yaml:"launch"`
	Vehicle    VehicleConfig `yaml:"vehicle"`
}

type LaunchConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Azimuth   float64 `yaml:"azimuth"`
}

type VehicleConfig struct {
	Mass     float64        `yaml:"mass"`
	Engines  []EngineConfig `yaml:"engines"`
	Steering SteeringConfig `yaml:"steering"`
	Governor GovernorConfig `yaml:"governor,omitempty"`
}

// GovernorConfig enables throttling on dynamic pressure when MaxQ, in Pa,
// is positive. MinThrottle defaults to 0.4.
type GovernorConfig struct {
	MaxQ        float64 `yaml:"max_q,omitempty"`
	MinThrottle float64 `yaml:"min_throttle,omitempty"`
}

type EngineConfig struct {
	Pitch     float64 `yaml:"pitch"`
	Yaw       float64 `yaml:"yaw"`
	Throttle  float64 `yaml:"throttle"`
	ThrustVac float64 `yaml:"thrust_vac"`
	ExitArea  float64 `yaml:"exit_area"`
	Isp       float64 `yaml:"isp"`
}

// SteeringConfig selects the pitch program. Type is one of "constant",
// "polynomial" or "table"; the law's output is in degrees.
type SteeringConfig struct {
	Type         string    `yaml:"type"`
	Value        float64   `yaml:"value,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`
	Times        []float64 `yaml:"times,omitempty"`
	Angles       []float64 `yaml:"angles,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Planet:     DefaultPlanet,
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Launch: LaunchConfig{
			Latitude:  DefaultLatitude,
			Longitude: DefaultLongitude,
			Azimuth:   DefaultAzimuth,
		},
		Vehicle: VehicleConfig{
			Mass: 500000,
			Engines: []EngineConfig{
				{Throttle: 1, ThrustVac: 7.5e6, ExitArea: 5, Isp: 300},
			},
			Steering: SteeringConfig{Type: "constant"},
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Vehicle.Engines = append([]EngineConfig(nil), c.Vehicle.Engines...)
	out.Vehicle.Steering.Coefficients = append([]float64(nil), c.Vehicle.Steering.Coefficients...)
	out.Vehicle.Steering.Times = append([]float64(nil), c.Vehicle.Steering.Times...)
	out.Vehicle.Steering.Angles = append([]float64(nil), c.Vehicle.Steering.Angles...)
	return &out
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario for values no simulation could start from.
// Names of planets, integrators and steering laws are resolved later.
func (c *Config) Validate() error {
	switch {
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case !(c.Duration >= 0):
		return fmt.Errorf("%w: duration must not be negative, got %g", ErrInvalidConfig, c.Duration)
	case !(c.Vehicle.Mass > 0):
		return fmt.Errorf("%w: vehicle mass must be positive, got %g", ErrInvalidConfig, c.Vehicle.Mass)
	case c.Launch.Latitude < -90 || c.Launch.Latitude > 90:
		return fmt.Errorf("%w: latitude %g out of range", ErrInvalidConfig, c.Launch.Latitude)
	}
	for i, e := range c.Vehicle.Engines {
		if e.Throttle < 0 || e.Throttle > 1 {
			return fmt.Errorf("%w: engine %d throttle %g outside [0, 1]", ErrInvalidConfig, i, e.Throttle)
		}
	}
	g := c.Vehicle.Governor
	if g.MaxQ < 0 {
		return fmt.Errorf("%w: governor max_q must not be negative, got %g", ErrInvalidConfig, g.MaxQ)
	}
	if g.MinThrottle < 0 || g.MinThrottle > 1 {
		return fmt.Errorf("%w: governor min_throttle %g outside [0, 1]", ErrInvalidConfig, g.MinThrottle)
	}
	s := c.Vehicle.Steering
	if s.Type == "table" && len(s.Times) != len(s.Angles) {
		return fmt.Errorf("%w: steering table has %d times and %d angles", ErrInvalidConfig, len(s.Times), len(s.Angles))
	}
	if s.Type == "polynomial" && len(s.Coefficients) > 4 {
		return fmt.Errorf("%w: steering polynomial has %d coefficients, at most 4", ErrInvalidConfig, len(s.Coefficients))
	}
	return nil
}
