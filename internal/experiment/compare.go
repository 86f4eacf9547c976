package experiment

import (
	"context"

	"github.com/go-kit/log"

	"github.com/san-kum/ascent/internal/config"
	"github.com/san-kum/ascent/internal/metrics"
	"github.com/san-kum/ascent/internal/sim"
)

// Compare runs the same scenario once per integrator, concurrently. Results
// are in the order of names and also report energy_drift.
func Compare(ctx context.Context, cfg *config.Config, r *Registry, names []string, logger log.Logger) ([]*sim.Result, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	members := make([]*sim.Simulator, len(names))
	for i, name := range names {
		c := cfg.Clone()
		c.Integrator = name
		s, err := Build(c, r, logger)
		if err != nil {
			return nil, err
		}
		s.AddMetric(metrics.NewEnergyDrift(s.Planet()))
		members[i] = s
	}

	ens, err := sim.NewEnsemble(members...)
	if err != nil {
		return nil, err
	}
	return ens.Run(ctx, cfg.Duration)
}
