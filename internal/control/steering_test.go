package control

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestPolynomialUpdate(t *testing.T) {
	steering := Polynomial{4, 3, 2, 1}

	want := 4 + 3*2.0 + 2*math.Pow(2, 2) + 1*math.Pow(2, 3)
	if got := steering.Update(2); got != want {
		t.Errorf("Update(2) = %v, want %v", got, want)
	}
	if want != 26 {
		t.Fatalf("reference value changed: %v", want)
	}
}

func TestPolynomialRate(t *testing.T) {
	p := Polynomial{4, 3, 2, 1}

	// 3 + 4x + 3x^2 at x = 2
	if got := p.Rate(2); got != 23 {
		t.Errorf("Rate(2) = %v, want 23", got)
	}

	h := 1e-6
	numeric := (p.Update(1.5+h) - p.Update(1.5-h)) / (2 * h)
	if math.Abs(numeric-p.Rate(1.5)) > 1e-6 {
		t.Errorf("Rate(1.5) = %v, finite difference %v", p.Rate(1.5), numeric)
	}
}

func TestSteeringIsStateless(t *testing.T) {
	laws := []Steering{Polynomial{1, 2, 3, 4}, Constant(0.3), mustTabular(t)}
	for _, law := range laws {
		first := law.Update(1.25)
		law.Update(7)
		law.Rate(3)
		if law.Update(1.25) != first {
			t.Errorf("%T returned a different value on a repeated call", law)
		}
	}
}

func mustTabular(t *testing.T) *Tabular {
	t.Helper()
	tab, err := NewTabular([]float64{0, 10, 20}, []float64{0, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestTabular(t *testing.T) {
	g := NewWithT(t)
	tab := mustTabular(t)

	g.Expect(tab.Update(-5)).To(Equal(0.0))
	g.Expect(tab.Update(0)).To(Equal(0.0))
	g.Expect(tab.Update(5)).To(BeNumerically("~", 0.5, 1e-12))
	g.Expect(tab.Update(10)).To(BeNumerically("~", 1.0, 1e-12))
	g.Expect(tab.Update(15)).To(BeNumerically("~", 2.0, 1e-12))
	g.Expect(tab.Update(25)).To(Equal(3.0))

	g.Expect(tab.Rate(-1)).To(BeZero())
	g.Expect(tab.Rate(5)).To(BeNumerically("~", 0.1, 1e-12))
	g.Expect(tab.Rate(10)).To(BeNumerically("~", 0.2, 1e-12))
	g.Expect(tab.Rate(20)).To(BeZero())
}

func TestNewTabularValidation(t *testing.T) {
	tests := []struct {
		name   string
		x      []float64
		angles []float64
	}{
		{"empty", nil, nil},
		{"length mismatch", []float64{0, 1}, []float64{0}},
		{"not ascending", []float64{0, 2, 1}, []float64{0, 0, 0}},
		{"duplicate knot", []float64{0, 1, 1}, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTabular(tt.x, tt.angles)
			if !errors.Is(err, ErrInvalidTable) {
				t.Errorf("expected ErrInvalidTable, got %v", err)
			}
		})
	}
}

func TestConstant(t *testing.T) {
	c := Constant(0.7)
	if c.Update(100) != 0.7 || c.Rate(100) != 0 {
		t.Errorf("unexpected constant steering output: %v %v", c.Update(100), c.Rate(100))
	}
}
