// Package planet models the central body a vehicle flies around: its
// gravity, rotation, atmosphere and the geodetic launch frame.
package planet

import (
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/atmosphere"
)

// Planet is a rotating, point-mass central body.
type Planet struct {
	Name         string
	Radius       float64 // equatorial radius [m]
	Mu           float64 // gravitational parameter [m^3/s^2]
	RotationRate float64 // [rad/s], about the inertial z axis
	Atmosphere   atmosphere.Model

	// Ellipsoid, when set, places launch sites on the reference ellipsoid
	// instead of the sphere of radius Radius.
	Ellipsoid *globe.Ellipsoid
}

// EarthSpherical is a spherical Earth with the 1962 standard atmosphere.
func EarthSpherical() Planet {
	return Planet{
		Name:         "earth",
		Radius:       6378166,
		Mu:           3.986012e14,
		RotationRate: 7.29211e-5,
		Atmosphere:   atmosphere.StandardAtmosphere1962(),
	}
}

// EarthEllipsoidal is EarthSpherical with launch sites on the IAU 1976
// ellipsoid.
func EarthEllipsoidal() Planet {
	p := EarthSpherical()
	p.Name = "earth-ellipsoid"
	e := globe.Earth76
	p.Ellipsoid = &e
	return p
}

// Airless returns a non-rotating body without an atmosphere. A zero mu
// disables gravity.
func Airless(name string, radius, mu float64) Planet {
	return Planet{
		Name:       name,
		Radius:     radius,
		Mu:         mu,
		Atmosphere: atmosphere.Vacuum{},
	}
}

// Gravity is the point-mass gravitational acceleration at position r.
func (p Planet) Gravity(r r3.Vec) r3.Vec {
	if p.Mu == 0 {
		return r3.Vec{}
	}
	d := r3.Norm(r)
	return r3.Scale(-p.Mu/(d*d*d), r)
}

// Altitude is the geometric height above the sphere of radius Radius.
func (p Planet) Altitude(r r3.Vec) float64 {
	return r3.Norm(r) - p.Radius
}

func (p Planet) geopotential(r r3.Vec) float64 {
	return atmosphere.GeopotentialAltitude(p.Altitude(r), p.Radius)
}

// Pressure is the ambient pressure at position r.
func (p Planet) Pressure(r r3.Vec) float64 {
	if p.Atmosphere == nil {
		return 0
	}
	return p.Atmosphere.Pressure(p.geopotential(r))
}

func (p Planet) Density(r r3.Vec) float64 {
	if p.Atmosphere == nil {
		return 0
	}
	return p.Atmosphere.Density(p.geopotential(r))
}

func (p Planet) SpeedOfSound(r r3.Vec) float64 {
	if p.Atmosphere == nil {
		return 0
	}
	return p.Atmosphere.SpeedOfSound(p.geopotential(r))
}

// AirVelocity is the velocity relative to the co-rotating atmosphere.
func (p Planet) AirVelocity(r, v r3.Vec) r3.Vec {
	return r3.Sub(v, p.rotation(r))
}

func (p Planet) rotation(r r3.Vec) r3.Vec {
	return r3.Cross(r3.Vec{Z: p.RotationRate}, r)
}

// Site is the inertial state of a vehicle standing on the launch pad at
// t = 0, when the inertial frame coincides with the planet-fixed frame.
type Site struct {
	Position r3.Vec
	Velocity r3.Vec
	// Attitude is (roll, pitch, yaw) with the body x axis pointing local up
	// and the body z axis pointing back against the launch azimuth, so a
	// positive body pitch rate tilts the nose down range.
	Attitude r3.Vec
}

// Launch returns the pad state at geodetic latitude and longitude with the
// given launch azimuth (clockwise from north), all in degrees.
func (p Planet) Launch(lat, lon, azimuth float64) Site {
	phi := lat * math.Pi / 180
	lambda := lon * math.Pi / 180
	az := azimuth * math.Pi / 180

	var pos r3.Vec
	if p.Ellipsoid != nil {
		s, c := p.Ellipsoid.ParallaxConstants(unit.AngleFromDeg(lat), 0)
		er := p.Ellipsoid.Er * 1000
		pos = r3.Vec{
			X: er * c * math.Cos(lambda),
			Y: er * c * math.Sin(lambda),
			Z: er * s,
		}
	} else {
		pos = r3.Vec{
			X: p.Radius * math.Cos(phi) * math.Cos(lambda),
			Y: p.Radius * math.Cos(phi) * math.Sin(lambda),
			Z: p.Radius * math.Sin(phi),
		}
	}

	return Site{
		Position: pos,
		Velocity: p.rotation(pos),
		Attitude: r3.Vec{X: math.Pi - az, Y: -phi, Z: lambda},
	}
}

// SurfaceDistance is the great-circle distance on the sphere of radius
// Radius between the ground points below a and b.
func (p Planet) SurfaceDistance(a, b r3.Vec) float64 {
	c := r3.Cos(a, b)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return p.Radius * math.Acos(c)
}
