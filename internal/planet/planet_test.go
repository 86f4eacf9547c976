package planet

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLaunchSpherical(t *testing.T) {
	g := NewWithT(t)
	p := EarthSpherical()

	site := p.Launch(28.5, 279.4, 90)

	phi := 28.5 * math.Pi / 180
	lambda := 279.4 * math.Pi / 180
	want := r3.Vec{
		X: p.Radius * math.Cos(phi) * math.Cos(lambda),
		Y: p.Radius * math.Cos(phi) * math.Sin(lambda),
		Z: p.Radius * math.Sin(phi),
	}
	g.Expect(site.Position.X).To(BeNumerically("~", want.X, 1e-6))
	g.Expect(site.Position.Y).To(BeNumerically("~", want.Y, 1e-6))
	g.Expect(site.Position.Z).To(BeNumerically("~", want.Z, 1e-6))
	g.Expect(p.Altitude(site.Position)).To(BeNumerically("~", 0, 1e-6))

	// the pad moves with the planet's surface
	g.Expect(site.Velocity.X).To(BeNumerically("~", -p.RotationRate*want.Y, 1e-9))
	g.Expect(site.Velocity.Y).To(BeNumerically("~", p.RotationRate*want.X, 1e-9))
	g.Expect(site.Velocity.Z).To(BeZero())
	g.Expect(r3.Norm(site.Velocity)).To(BeNumerically("~", p.RotationRate*p.Radius*math.Cos(phi), 1e-9))

	g.Expect(site.Attitude.X).To(BeNumerically("~", math.Pi/2, 1e-15))
	g.Expect(site.Attitude.Y).To(BeNumerically("~", -phi, 1e-15))
	g.Expect(site.Attitude.Z).To(BeNumerically("~", lambda, 1e-15))
}

func TestLaunchEllipsoidal(t *testing.T) {
	g := NewWithT(t)
	p := EarthEllipsoidal()

	equator := p.Launch(0, 0, 90).Position
	g.Expect(r3.Norm(equator)).To(BeNumerically("~", p.Ellipsoid.Er*1000, 1e-6))

	pole := p.Launch(90, 0, 0).Position
	polar := p.Ellipsoid.Er * 1000 * (1 - p.Ellipsoid.Fl)
	g.Expect(pole.Z).To(BeNumerically("~", polar, 1e-3))

	mid := r3.Norm(p.Launch(28.5, 279.4, 90).Position)
	g.Expect(mid).To(BeNumerically("<", p.Ellipsoid.Er*1000))
	g.Expect(mid).To(BeNumerically(">", polar))
}

func TestGravity(t *testing.T) {
	p := EarthSpherical()
	r := r3.Vec{X: p.Radius}

	got := p.Gravity(r)
	want := -p.Mu / (p.Radius * p.Radius)
	if math.Abs(got.X-want) > 1e-9 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Gravity = %v, want (%v, 0, 0)", got, want)
	}

	if g := Airless("void", 1, 0).Gravity(r); g != (r3.Vec{}) {
		t.Errorf("expected no gravity, got %v", g)
	}
}

func TestAmbient(t *testing.T) {
	g := NewWithT(t)
	p := EarthSpherical()

	pad := r3.Vec{Z: p.Radius}
	g.Expect(p.Pressure(pad)).To(BeNumerically("~", 101325, 1e-6))
	g.Expect(p.Density(pad)).To(BeNumerically("~", 1.225, 1e-3))

	high := r3.Vec{Z: p.Radius + 30000}
	g.Expect(p.Pressure(high)).To(BeNumerically("<", p.Pressure(pad)))
	g.Expect(p.SpeedOfSound(high)).To(BeNumerically(">", 0))

	g.Expect(Airless("moon", 1.7374e6, 4.9028e12).Pressure(pad)).To(BeZero())
	g.Expect(Planet{Radius: 1}.Pressure(pad)).To(BeZero())
}

func TestAirVelocity(t *testing.T) {
	p := EarthSpherical()
	site := p.Launch(10, 20, 0)

	air := p.AirVelocity(site.Position, site.Velocity)
	if r3.Norm(air) > 1e-9 {
		t.Errorf("pad should be at rest relative to the air, got %v", air)
	}
}

func TestSurfaceDistance(t *testing.T) {
	p := Airless("ball", 10, 0)

	tests := []struct {
		a, b r3.Vec
		want float64
	}{
		{r3.Vec{X: 10}, r3.Vec{X: 10}, 0},
		{r3.Vec{X: 10}, r3.Vec{X: 25}, 0},
		{r3.Vec{X: 10}, r3.Vec{Y: 3}, 10 * math.Pi / 2},
		{r3.Vec{X: 10}, r3.Vec{X: -1}, 10 * math.Pi},
	}
	for _, tt := range tests {
		if got := p.SurfaceDistance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("SurfaceDistance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
