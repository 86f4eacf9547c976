package atmosphere

const (
	StdGravity         = 9.80665   // [m/s^2]
	AirMolecularWeight = 28.9644   // [kg/kmol]
	GasConstant        = 8.31432e3 // [J/(kmol K)]
	AirKappa           = 1.40      // [-]

	// AirGasConstant is the specific gas constant of air, R*/M0.
	AirGasConstant = GasConstant / AirMolecularWeight // [J/(kg K)]

	// hydrostaticConstant is g0*M0/R*.
	hydrostaticConstant = StdGravity / AirGasConstant // [K/m]

	SeaLevelPressure    = 101325.0 // [Pa]
	SeaLevelTemperature = 288.15   // [K]
)
