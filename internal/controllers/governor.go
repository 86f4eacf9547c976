package controllers

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/san-kum/ascent/internal/metrics"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
	"github.com/san-kum/ascent/internal/vehicle"
)

// Default gains of the dynamic pressure governor, on the error normalized
// by the limit.
const (
	DefaultGovernorKp          = 2.0
	DefaultGovernorKi          = 0.5
	DefaultGovernorMinThrottle = 0.4
)

// MaxQGovernor scales the throttle of every engine of a vehicle to hold
// dynamic pressure at or below a limit. It runs as a simulation observer,
// so throttle only changes between steps.
type MaxQGovernor struct {
	vehicle *vehicle.Vehicle
	planet  planet.Planet
	limit   float64
	base    []float64
	pid     *PID
	logger  log.Logger
}

func NewMaxQGovernor(v *vehicle.Vehicle, p planet.Planet, limit, minThrottle float64) *MaxQGovernor {
	engines := v.Engines()
	base := make([]float64, len(engines))
	for i, e := range engines {
		base[i] = e.Throttle
	}
	return &MaxQGovernor{
		vehicle: v,
		planet:  p,
		limit:   limit,
		base:    base,
		pid:     NewPID(DefaultGovernorKp, DefaultGovernorKi, 0, minThrottle-1, 0),
		logger:  log.NewNopLogger(),
	}
}

func (g *MaxQGovernor) SetLogger(logger log.Logger) { g.logger = logger }

// Factor is the throttle scale in [minThrottle, 1] for dynamic pressure q
// at time t.
func (g *MaxQGovernor) Factor(q, t float64) float64 {
	return 1 + g.pid.Update((g.limit-q)/g.limit, t)
}

func (g *MaxQGovernor) OnStep(s sim.PhysicalState) {
	if s.Time == 0 {
		g.pid.Reset()
	}
	f := g.Factor(metrics.DynamicPressure(g.planet, s), s.Time)
	for i, b := range g.base {
		if err := g.vehicle.SetThrottle(i, b*f); err != nil {
			level.Warn(g.logger).Log("msg", "throttle rejected", "engine", i, "t", s.Time, "err", err)
		}
	}
}
