package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ascent/internal/config"
	"github.com/san-kum/ascent/internal/experiment"
	"github.com/san-kum/ascent/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no scenario in the grid completed")

// Objective scores a finished run. Lower is better.
type Objective func(r *sim.Result) float64

// Metric minimizes the named run metric.
func Metric(name string) Objective {
	return func(r *sim.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// Maximize turns an objective around.
func Maximize(o Objective) Objective {
	return func(r *sim.Result) float64 { return -o(r) }
}

// Best is the winning point of a search.
type Best struct {
	Params map[string]float64
	Score  float64
	Result *sim.Result
}

// GridSearch evaluates a scenario at every point of a parameter grid.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limit      int
	logger     log.Logger
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d parameters and %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, logger: log.NewNopLogger()}, nil
}

func (g *GridSearch) SetLimit(n int)              { g.limit = n }
func (g *GridSearch) SetLogger(logger log.Logger) { g.logger = logger }

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs base modified at every grid point and returns the point with
// the lowest score. Points whose scenario is invalid or whose run fails are
// skipped; a canceled context stops the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, r *experiment.Registry, objective Objective) (*Best, error) {
	probe := base.Clone()
	for i, name := range g.paramNames {
		if err := Apply(probe, name, g.ranges[i][0]); err != nil {
			return nil, err
		}
	}
	points := g.points()

	var (
		mu      sync.Mutex
		best    *Best
		bestIdx int
	)

	eg, ctx := errgroup.WithContext(ctx)
	if g.limit > 0 {
		eg.SetLimit(g.limit)
	}
	for idx, point := range points {
		idx, point := idx, point
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := g.evaluate(ctx, base, r, point)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				level.Debug(g.logger).Log("msg", "point skipped", "params", fmt.Sprint(point), "err", err)
				return nil
			}

			score := objective(result)
			mu.Lock()
			defer mu.Unlock()
			// ties go to the earlier grid point
			if best == nil || score < best.Score || (score == best.Score && idx < bestIdx) {
				best = &Best{Params: point, Score: score, Result: result}
				bestIdx = idx
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if best == nil {
		return nil, ErrNoCandidate
	}
	level.Info(g.logger).Log("msg", "search done", "points", len(points), "score", best.Score, "params", fmt.Sprint(best.Params))
	return best, nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, r *experiment.Registry, point map[string]float64) (*sim.Result, error) {
	cfg := base.Clone()
	for _, name := range g.paramNames {
		if err := Apply(cfg, name, point[name]); err != nil {
			return nil, err
		}
	}
	s, err := experiment.Build(cfg, r, nil)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, cfg.Duration)
}

// points expands the grid, last parameter varying fastest.
func (g *GridSearch) points() []map[string]float64 {
	points := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(points)*len(g.ranges[i]))
		for _, p := range points {
			for _, v := range g.ranges[i] {
				q := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					q[k] = pv
				}
				q[name] = v
				next = append(next, q)
			}
		}
		points = next
	}
	return points
}
