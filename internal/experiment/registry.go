package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/ascent/internal/config"
	"github.com/san-kum/ascent/internal/control"
	"github.com/san-kum/ascent/internal/integrators"
	"github.com/san-kum/ascent/internal/metrics"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

const deg = math.Pi / 180

// Registry resolves the names used in scenario files.
type Registry struct {
	planets     map[string]func() planet.Planet
	integrators map[string]func() integrators.Integrator
	steering    map[string]func(config.SteeringConfig) (control.Steering, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		planets:     make(map[string]func() planet.Planet),
		integrators: make(map[string]func() integrators.Integrator),
		steering:    make(map[string]func(config.SteeringConfig) (control.Steering, error)),
	}

	r.planets["earth"] = planet.EarthSpherical
	r.planets["earth-ellipsoid"] = planet.EarthEllipsoidal
	r.planets["moon"] = func() planet.Planet {
		p := planet.Airless("moon", 1.7374e6, 4.9028e12)
		p.RotationRate = 2.6617e-6
		return p
	}
	r.planets["void"] = func() planet.Planet { return planet.Airless("void", 1, 0) }

	for _, name := range integrators.Names() {
		name := name
		r.integrators[name] = func() integrators.Integrator {
			rk, _ := integrators.ByName(name)
			return rk
		}
	}

	r.steering["constant"] = func(c config.SteeringConfig) (control.Steering, error) {
		return control.Constant(c.Value * deg), nil
	}
	r.steering["polynomial"] = func(c config.SteeringConfig) (control.Steering, error) {
		if len(c.Coefficients) > 4 {
			return nil, fmt.Errorf("polynomial steering takes at most 4 coefficients, got %d", len(c.Coefficients))
		}
		var p control.Polynomial
		for i, v := range c.Coefficients {
			p[i] = v * deg
		}
		return p, nil
	}
	r.steering["table"] = func(c config.SteeringConfig) (control.Steering, error) {
		angles := make([]float64, len(c.Angles))
		for i, v := range c.Angles {
			angles[i] = v * deg
		}
		return control.NewTabular(c.Times, angles)
	}

	return r
}

// RegisterPlanet adds or replaces a planet.
func (r *Registry) RegisterPlanet(name string, fn func() planet.Planet) {
	r.planets[name] = fn
}

func (r *Registry) GetPlanet(name string) (planet.Planet, error) {
	fn, ok := r.planets[name]
	if !ok {
		return planet.Planet{}, fmt.Errorf("unknown planet: %s", name)
	}
	return fn(), nil
}

// GetIntegrator returns a fresh integrator; instances are never shared.
func (r *Registry) GetIntegrator(name string) (integrators.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetSteering(c config.SteeringConfig) (control.Steering, error) {
	name := c.Type
	if name == "" {
		name = "constant"
	}
	fn, ok := r.steering[name]
	if !ok {
		return nil, fmt.Errorf("unknown steering law: %s", name)
	}
	return fn(c)
}

func (r *Registry) ListPlanets() []string      { return sortedKeys(r.planets) }
func (r *Registry) ListIntegrators() []string  { return sortedKeys(r.integrators) }
func (r *Registry) ListSteeringLaws() []string { return sortedKeys(r.steering) }

// DefaultMetrics returns fresh metrics for a run on p.
func (r *Registry) DefaultMetrics(p planet.Planet) []sim.Metric {
	return metrics.Standard(p)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
