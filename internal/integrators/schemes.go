package integrators

import (
	"fmt"
	"sort"
)

// Classical 4th order scheme.
var RK4Tableau = Tableau{
	Name:  "rk4",
	Order: 4,
	A: [][]float64{
		{0, 0, 0, 0},
		{0.5, 0, 0, 0},
		{0, 0.5, 0, 0},
		{0, 0, 1, 0},
	},
	B: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
	C: []float64{0, 0.5, 0.5, 1},
}

var EulerTableau = Tableau{
	Name:  "euler",
	Order: 1,
	A:     [][]float64{{0}},
	B:     []float64{1},
	C:     []float64{0},
}

var MidpointTableau = Tableau{
	Name:  "midpoint",
	Order: 2,
	A:     [][]float64{{}, {0.5}},
	B:     []float64{0, 1},
	C:     []float64{0, 0.5},
}

var HeunTableau = Tableau{
	Name:  "heun",
	Order: 2,
	A:     [][]float64{{}, {1}},
	B:     []float64{0.5, 0.5},
	C:     []float64{0, 1},
}

// Kutta's 3/8 rule.
var ThreeEighthsTableau = Tableau{
	Name:  "rk38",
	Order: 4,
	A: [][]float64{
		{},
		{1.0 / 3.0},
		{-1.0 / 3.0, 1},
		{1, -1, 1},
	},
	B: []float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0},
	C: []float64{0, 1.0 / 3.0, 2.0 / 3.0, 1},
}

// Dormand-Prince 5(4) coefficients, stepped at fixed size with the 5th order
// weights. The seventh stage only feeds the embedded error estimate, so its
// weight is zero.
var DormandPrince5Tableau = Tableau{
	Name:  "dopri5",
	Order: 5,
	A: [][]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	},
	B: []float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
	C: []float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
}

func NewRK4() *RungeKutta            { return Must(RK4Tableau) }
func NewEuler() *RungeKutta          { return Must(EulerTableau) }
func NewMidpoint() *RungeKutta       { return Must(MidpointTableau) }
func NewHeun() *RungeKutta           { return Must(HeunTableau) }
func NewThreeEighths() *RungeKutta   { return Must(ThreeEighthsTableau) }
func NewDormandPrince5() *RungeKutta { return Must(DormandPrince5Tableau) }

var registry = map[string]func() *RungeKutta{
	"euler":    NewEuler,
	"midpoint": NewMidpoint,
	"heun":     NewHeun,
	"rk4":      NewRK4,
	"rk38":     NewThreeEighths,
	"dopri5":   NewDormandPrince5,
}

// ByName returns a fresh integrator for a registered scheme name.
func ByName(name string) (*RungeKutta, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// Names lists the registered schemes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
