package atmosphere

// layers1962 lists the base geopotential altitude [m], base temperature [K]
// and temperature gradient [K/m] of the U.S. Standard Atmosphere 1962.
var layers1962 = [...][3]float64{
	{0, 288.15, -6.5e-3},
	{11000, 216.65, 0},
	{20000, 216.65, 1.0e-3},
	{32000, 228.65, 2.8e-3},
	{47000, 270.65, 0},
	{52000, 270.65, -2.0e-3},
	{61000, 252.65, -4.0e-3},
	{79000, 180.65, 0},
	{88743, 180.65, 3.0e-3},
}

var standard1962 = build1962()

func build1962() *Table {
	rows := make([]Row, len(layers1962))
	p := SeaLevelPressure
	for i, l := range layers1962 {
		if i > 0 {
			// Carry the pressure at the top of the previous layer into
			// this layer's base.
			p = pressure(rows[i-1], l[0])
		}
		rows[i] = Row{BaseAltitude: l[0], BasePressure: p, BaseTemperature: l[1], Gradient: l[2]}
	}

	t, err := NewTable("standard1962", rows)
	if err != nil {
		panic(err)
	}
	return t
}

// StandardAtmosphere1962 returns the shared 1962 table. Base pressures are
// derived layer to layer from the sea-level value, so pressure is
// continuous across layer boundaries.
func StandardAtmosphere1962() *Table {
	return standard1962
}
