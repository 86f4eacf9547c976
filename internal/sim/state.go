package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// StateDim is the length of a NumericState.
const StateDim = 10

// Offsets of each quantity inside a NumericState. The order is fixed for
// the lifetime of the program; the integrator relies on it.
const (
	idxPosition = 0
	idxVelocity = 3
	idxMass     = 6
	idxAttitude = 7
)

// PhysicalState is the state of the vehicle at one instant.
type PhysicalState struct {
	Time     float64 // [s]
	Position r3.Vec  // inertial [m]
	Velocity r3.Vec  // inertial [m/s]
	Mass     float64 // [kg]
	// Attitude holds the body-to-inertial Euler angles (roll, pitch, yaw) in
	// radians, applied in yaw-pitch-roll order.
	Attitude r3.Vec
}

// NumericState is the flat vector the integrator operates on:
//
//	x, y, z, vx, vy, vz, mass, roll, pitch, yaw
//
// Time is not part of it.
type NumericState [StateDim]float64

// ToVector flattens s. The conversion is exact.
func ToVector(s PhysicalState) NumericState {
	var v NumericState
	putVec(v[idxPosition:], s.Position)
	putVec(v[idxVelocity:], s.Velocity)
	v[idxMass] = s.Mass
	putVec(v[idxAttitude:], s.Attitude)
	return v
}

// FromVector rebuilds the physical state at time t from v. It is the exact
// inverse of ToVector.
func FromVector(t float64, v NumericState) PhysicalState {
	return PhysicalState{
		Time:     t,
		Position: getVec(v[idxPosition:]),
		Velocity: getVec(v[idxVelocity:]),
		Mass:     v[idxMass],
		Attitude: getVec(v[idxAttitude:]),
	}
}

func putVec(dst []float64, v r3.Vec) {
	dst[0], dst[1], dst[2] = v.X, v.Y, v.Z
}

func getVec(src []float64) r3.Vec {
	return r3.Vec{X: src[0], Y: src[1], Z: src[2]}
}

// IsValid reports whether every component is finite.
func (s PhysicalState) IsValid() bool {
	if math.IsNaN(s.Time) || math.IsInf(s.Time, 0) {
		return false
	}
	for _, v := range ToVector(s) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
