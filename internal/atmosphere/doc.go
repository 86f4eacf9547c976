// Package atmosphere provides ambient-air models as pure functions of
// altitude.
//
// The main model is [Table], a layered standard atmosphere in which each
// layer has a linear temperature profile. Pressure follows the closed-form
// solution of the hydrostatic equation for the layer type:
//
//   - gradient != 0: P = Pb * (Tb / T)^(g0*M0 / (R* * L))
//   - gradient == 0: P = Pb * exp(-(g0*M0/R*) * (H - Hb) / Tb)
//
// [StandardAtmosphere1962] returns the U.S. Standard Atmosphere 1962 layers
// up to 90 km geopotential altitude. [Vacuum] is the model of a planet
// without an atmosphere.
//
// All models are read-only after construction and safe for concurrent use.
package atmosphere
