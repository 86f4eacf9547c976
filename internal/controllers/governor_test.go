package controllers

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/control"
	"github.com/san-kum/ascent/internal/metrics"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
	"github.com/san-kum/ascent/internal/vehicle"
)

func newTestVehicle(t *testing.T) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.New(1000, []vehicle.Engine{
		{Throttle: 1, ThrustVac: 20000, Isp: 300},
		{Throttle: 0.5, ThrustVac: 20000, Isp: 300},
	}, control.Constant(0))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestGovernorFactor(t *testing.T) {
	gov := NewMaxQGovernor(newTestVehicle(t), planet.EarthSpherical(), 1000, 0.4)

	if f := gov.Factor(500, 0); f != 1 {
		t.Errorf("expected full throttle below the limit, got %f", f)
	}
	if f := gov.Factor(5000, 1); math.Abs(f-0.4) > 1e-12 {
		t.Errorf("expected minimum throttle far above the limit, got %f", f)
	}
}

func TestGovernorKeepsThrottleInVacuum(t *testing.T) {
	v := newTestVehicle(t)
	p := planet.Airless("void", 1, 0)
	gov := NewMaxQGovernor(v, p, 1000, 0.4)

	gov.OnStep(sim.PhysicalState{Position: r3.Vec{X: 2}, Velocity: r3.Vec{X: 5000}, Mass: 1000})

	engines := v.Engines()
	if engines[0].Throttle != 1 || engines[1].Throttle != 0.5 {
		t.Errorf("throttles changed to %f, %f", engines[0].Throttle, engines[1].Throttle)
	}
}

// climbing state at 300 m/s through sea-level air
func climbingState(p planet.Planet) sim.PhysicalState {
	site := p.Launch(0, 0, 90)
	return sim.PhysicalState{
		Position: site.Position,
		Velocity: r3.Add(site.Velocity, r3.Scale(300/r3.Norm(site.Position), site.Position)),
		Mass:     1000,
	}
}

func TestGovernorScalesConfiguredThrottle(t *testing.T) {
	v := newTestVehicle(t)
	p := planet.EarthSpherical()

	s := climbingState(p)
	q := metrics.DynamicPressure(p, s)
	if !(q > 0) {
		t.Fatalf("expected positive dynamic pressure, got %f", q)
	}

	gov := NewMaxQGovernor(v, p, q/2, 0.4)
	gov.OnStep(s)

	engines := v.Engines()
	if math.Abs(engines[0].Throttle-0.4) > 1e-12 {
		t.Errorf("engine 0 throttle = %f, want 0.4", engines[0].Throttle)
	}
	if math.Abs(engines[1].Throttle-0.2) > 1e-12 {
		t.Errorf("engine 1 throttle = %f, want 0.2", engines[1].Throttle)
	}
}

func TestGovernorLogsRejectedThrottle(t *testing.T) {
	v := newTestVehicle(t)
	p := planet.EarthSpherical()
	s := climbingState(p)

	// a minimum above 1 drives the scale factor to 1.5
	gov := NewMaxQGovernor(v, p, metrics.DynamicPressure(p, s)/2, 1.5)
	var buf bytes.Buffer
	gov.SetLogger(log.NewLogfmtLogger(&buf))
	gov.OnStep(s)

	out := buf.String()
	if !strings.Contains(out, "level=warn") || !strings.Contains(out, "throttle rejected") || !strings.Contains(out, "engine=0") {
		t.Errorf("expected a warning for engine 0, got %q", out)
	}
	if strings.Contains(out, "engine=1") {
		t.Errorf("engine 1 throttle 0.75 should be accepted, got %q", out)
	}

	engines := v.Engines()
	if engines[0].Throttle != 1 {
		t.Errorf("engine 0 throttle = %f, want unchanged 1", engines[0].Throttle)
	}
	if math.Abs(engines[1].Throttle-0.75) > 1e-12 {
		t.Errorf("engine 1 throttle = %f, want 0.75", engines[1].Throttle)
	}
}
