package control

import (
	"errors"
	"fmt"
	"sort"
)

// Steering maps an independent variable to a commanded angle.
type Steering interface {
	// Update returns the commanded angle at x.
	Update(x float64) float64
	// Rate returns the derivative of the commanded angle with respect to x.
	Rate(x float64) float64
}

// Polynomial commands c0 + c1*x + c2*x^2 + c3*x^3.
type Polynomial [4]float64

func (p Polynomial) Update(x float64) float64 {
	return p[0] + x*(p[1]+x*(p[2]+x*p[3]))
}

func (p Polynomial) Rate(x float64) float64 {
	return p[1] + x*(2*p[2]+x*3*p[3])
}

// Constant holds a fixed angle.
type Constant float64

func (c Constant) Update(float64) float64 { return float64(c) }
func (c Constant) Rate(float64) float64   { return 0 }

var ErrInvalidTable = errors.New("control: invalid steering table")

// Tabular interpolates linearly between knots and holds the end values
// outside the table.
type Tabular struct {
	x      []float64
	angles []float64
}

// NewTabular builds a table from strictly ascending knots and their angles.
func NewTabular(x, angles []float64) (*Tabular, error) {
	if len(x) == 0 || len(x) != len(angles) {
		return nil, fmt.Errorf("%w: %d knots, %d angles", ErrInvalidTable, len(x), len(angles))
	}
	for i := 1; i < len(x); i++ {
		if x[i] <= x[i-1] {
			return nil, fmt.Errorf("%w: knot %d (%g) is not above %g", ErrInvalidTable, i, x[i], x[i-1])
		}
	}
	return &Tabular{
		x:      append([]float64(nil), x...),
		angles: append([]float64(nil), angles...),
	}, nil
}

// segment returns i such that x[i] <= v < x[i+1], or -1 outside the table.
func (t *Tabular) segment(v float64) int {
	if len(t.x) < 2 || v < t.x[0] || v >= t.x[len(t.x)-1] {
		return -1
	}
	return sort.Search(len(t.x), func(i int) bool { return t.x[i] > v }) - 1
}

func (t *Tabular) Update(v float64) float64 {
	n := len(t.x)
	if v <= t.x[0] {
		return t.angles[0]
	}
	if v >= t.x[n-1] {
		return t.angles[n-1]
	}
	i := t.segment(v)
	frac := (v - t.x[i]) / (t.x[i+1] - t.x[i])
	return t.angles[i] + frac*(t.angles[i+1]-t.angles[i])
}

func (t *Tabular) Rate(v float64) float64 {
	i := t.segment(v)
	if i < 0 {
		return 0
	}
	return (t.angles[i+1] - t.angles[i]) / (t.x[i+1] - t.x[i])
}
