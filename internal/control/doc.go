// Package control provides steering laws for flight vehicles.
//
// A steering law maps an independent variable (usually elapsed time) to a
// commanded attitude angle. All laws implement [Steering]:
//
//   - [Polynomial]: cubic polynomial in the independent variable
//   - [Tabular]: piecewise-linear interpolation over a knot table
//   - [Constant]: fixed angle (no steering)
//
// # Usage
//
//	steer := control.Polynomial{0, 0, -1e-4, 0}
//	angle := steer.Update(t) // commanded angle [rad]
//	rate := steer.Rate(t)    // d(angle)/dt [rad/s]
//
// Laws hold no state between calls, so callers never need to reset them.
package control
