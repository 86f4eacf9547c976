package integrators

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotExplicit indicates a tableau whose A matrix has entries on or
	// above the diagonal.
	ErrNotExplicit = errors.New("integrators: tableau is not explicit (A must be strictly lower triangular)")

	// ErrMalformedTableau indicates mismatched A, B and C dimensions.
	ErrMalformedTableau = errors.New("integrators: malformed tableau")
)

// Func evaluates the right-hand side of y' = f(t, y). The returned slice
// must have the same length as y and must not alias it.
type Func func(t float64, y []float64) []float64

// Integrator advances y0 at t0 by one step of size h.
type Integrator interface {
	Step(f Func, t0 float64, y0 []float64, h float64) []float64
	Name() string
}

// Tableau is the Butcher tableau of an explicit Runge-Kutta scheme.
// A is indexed A[stage][previous stage]; rows may be shorter than the stage
// count, missing entries are zero.
type Tableau struct {
	Name  string
	Order int
	A     [][]float64
	B     []float64
	C     []float64
}

// RungeKutta is a fixed-step explicit Runge-Kutta integrator over an
// arbitrary number of stages.
//
// Stage buffers are reused between calls, so an instance must not be shared
// between goroutines. Build one per simulation run.
type RungeKutta struct {
	name   string
	order  int
	stages int
	a      *mat.Dense
	b      []float64
	c      []float64

	k     [][]float64
	stage []float64
}

// New validates t and returns an integrator for it.
func New(t Tableau) (*RungeKutta, error) {
	d := len(t.B)
	if d == 0 {
		return nil, fmt.Errorf("%w: %s has no stages", ErrMalformedTableau, t.Name)
	}
	if len(t.C) != d {
		return nil, fmt.Errorf("%w: %s has %d weights but %d nodes", ErrMalformedTableau, t.Name, d, len(t.C))
	}
	if len(t.A) > d {
		return nil, fmt.Errorf("%w: %s has %d rows in A for %d stages", ErrMalformedTableau, t.Name, len(t.A), d)
	}

	a := mat.NewDense(d, d, nil)
	for i, row := range t.A {
		if len(row) > d {
			return nil, fmt.Errorf("%w: %s row %d has %d columns", ErrMalformedTableau, t.Name, i, len(row))
		}
		for j, v := range row {
			if j >= i && v != 0 {
				return nil, fmt.Errorf("%w: %s a[%d][%d] = %g", ErrNotExplicit, t.Name, i, j, v)
			}
			a.Set(i, j, v)
		}
	}

	return &RungeKutta{
		name:   t.Name,
		order:  t.Order,
		stages: d,
		a:      a,
		b:      append([]float64(nil), t.B...),
		c:      append([]float64(nil), t.C...),
	}, nil
}

// Must is like New but panics on an invalid tableau. It is meant for the
// package-level schemes, whose tableaus are constants.
func Must(t Tableau) *RungeKutta {
	rk, err := New(t)
	if err != nil {
		panic(err)
	}
	return rk
}

func (r *RungeKutta) Name() string { return r.name }
func (r *RungeKutta) Order() int   { return r.order }
func (r *RungeKutta) Stages() int  { return r.stages }

func (r *RungeKutta) ensureScratch(n int) {
	if len(r.stage) == n && len(r.k) == r.stages {
		return
	}
	r.k = make([][]float64, r.stages)
	for i := range r.k {
		r.k[i] = make([]float64, n)
	}
	r.stage = make([]float64, n)
}

// Step performs one explicit Runge-Kutta step:
//
//	k_i = h * f(t0 + c_i*h, y0 + sum_{j<i} a_ij*k_j)
//	y1  = y0 + sum_i b_i*k_i
//
// f is called exactly once per stage, in stage order. y0 is not modified.
func (r *RungeKutta) Step(f Func, t0 float64, y0 []float64, h float64) []float64 {
	n := len(y0)
	r.ensureScratch(n)

	for i := 0; i < r.stages; i++ {
		copy(r.stage, y0)
		for j := 0; j < i; j++ {
			if aij := r.a.At(i, j); aij != 0 {
				floats.AddScaled(r.stage, aij, r.k[j])
			}
		}
		floats.ScaleTo(r.k[i], h, f(t0+r.c[i]*h, r.stage))
	}

	y1 := make([]float64, n)
	copy(y1, y0)
	for i, bi := range r.b {
		if bi != 0 {
			floats.AddScaled(y1, bi, r.k[i])
		}
	}
	return y1
}
