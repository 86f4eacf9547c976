package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// BodyToInertial rotates a body-axis vector into the inertial frame for the
// Euler angles att = (roll, pitch, yaw): v_i = Rz(yaw) Ry(pitch) Rx(roll) v_b.
func BodyToInertial(att, v r3.Vec) r3.Vec {
	v = r3.NewRotation(att.X, axisX).Rotate(v)
	v = r3.NewRotation(att.Y, axisY).Rotate(v)
	return r3.NewRotation(att.Z, axisZ).Rotate(v)
}

// PitchBody returns the Euler angles of att followed by a rotation of theta
// about the body y axis. A positive theta turns the body x axis toward -z.
func PitchBody(att r3.Vec, theta float64) r3.Vec {
	if theta == 0 {
		return att
	}
	st, ct := math.Sincos(theta)
	x := BodyToInertial(att, r3.Vec{X: ct, Z: -st})
	y := BodyToInertial(att, axisY)
	z := BodyToInertial(att, r3.Vec{X: st, Z: ct})

	// columns of Rz(yaw) Ry(pitch) Rx(roll)
	return r3.Vec{
		X: math.Atan2(y.Z, z.Z),
		Y: math.Asin(math.Max(-1, math.Min(1, -x.Z))),
		Z: math.Atan2(x.Y, x.X),
	}
}

// EulerRates converts a body-axis angular velocity (p, q, r) into the time
// derivative of the (roll, pitch, yaw) angles. It is singular at a pitch of
// +-90 degrees.
func EulerRates(att, omega r3.Vec) r3.Vec {
	sr, cr := math.Sincos(att.X)
	tp := math.Tan(att.Y)
	cp := math.Cos(att.Y)
	return r3.Vec{
		X: omega.X + (sr*omega.Y+cr*omega.Z)*tp,
		Y: cr*omega.Y - sr*omega.Z,
		Z: (sr*omega.Y + cr*omega.Z) / cp,
	}
}
