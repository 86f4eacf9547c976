package sim

import (
	"context"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ascent/internal/vehicle"
)

// Ensemble runs independent simulators concurrently. Each member must own
// its vehicle and integrator.
type Ensemble struct {
	members []*Simulator
	limit   int
}

// NewEnsemble groups simulators for a concurrent run. It fails if two of
// them share a vehicle or a pointer-backed integrator, since both carry
// mutable state across a step.
func NewEnsemble(members ...*Simulator) (*Ensemble, error) {
	vehicles := make(map[*vehicle.Vehicle]bool, len(members))
	integs := make(map[uintptr]bool, len(members))
	for _, m := range members {
		if vehicles[m.vehicle] {
			return nil, ErrSharedVehicle
		}
		vehicles[m.vehicle] = true

		if v := reflect.ValueOf(m.integrator); v.Kind() == reflect.Pointer && !v.IsNil() {
			if integs[v.Pointer()] {
				return nil, ErrSharedIntegrator
			}
			integs[v.Pointer()] = true
		}
	}
	return &Ensemble{members: members, limit: runtime.GOMAXPROCS(0)}, nil
}

// SetLimit bounds the number of runs in flight. n <= 0 means no limit.
func (e *Ensemble) SetLimit(n int) { e.limit = n }

// Run runs every member until the given time. Results are returned in
// member order. The first failure cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, until float64) ([]*Result, error) {
	results := make([]*Result, len(e.members))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, m := range e.members {
		i, m := i, m
		g.Go(func() error {
			r, err := m.Run(ctx, until)
			results[i] = r
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
