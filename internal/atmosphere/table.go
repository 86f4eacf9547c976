package atmosphere

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyTable indicates a table without layers.
	ErrEmptyTable = errors.New("atmosphere: table has no layers")

	// ErrUnsortedTable indicates base altitudes that are not strictly ascending.
	ErrUnsortedTable = errors.New("atmosphere: base altitudes are not strictly ascending")

	// ErrInvalidLayer indicates a non-positive base temperature or pressure.
	ErrInvalidLayer = errors.New("atmosphere: invalid layer")
)

// Model supplies ambient air properties as functions of altitude in meters.
type Model interface {
	Temperature(alt float64) float64
	Pressure(alt float64) float64
	Density(alt float64) float64
	SpeedOfSound(alt float64) float64
}

// Row is one layer of a standard atmosphere table.
type Row struct {
	BaseAltitude    float64 // [m]
	BasePressure    float64 // [Pa]
	BaseTemperature float64 // [K]
	Gradient        float64 // [K/m]
}

// Table is a layered atmosphere. Rows are sorted by ascending base altitude
// and each row covers altitudes up to the next row's base.
type Table struct {
	name string
	rows []Row
}

// NewTable validates rows and returns a table over them.
func NewTable(name string, rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	for i, r := range rows {
		if r.BaseTemperature <= 0 || r.BasePressure <= 0 {
			return nil, fmt.Errorf("%w: row %d has T=%g P=%g", ErrInvalidLayer, i, r.BaseTemperature, r.BasePressure)
		}
		if i > 0 && r.BaseAltitude <= rows[i-1].BaseAltitude {
			return nil, fmt.Errorf("%w: row %d at %g m follows %g m", ErrUnsortedTable, i, r.BaseAltitude, rows[i-1].BaseAltitude)
		}
	}
	return &Table{name: name, rows: append([]Row(nil), rows...)}, nil
}

func (t *Table) Name() string { return t.name }

// Rows returns a copy of the table's layers.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Row returns the layer with the greatest base altitude <= alt. Altitudes
// below the first layer use the first layer, altitudes above the last base
// use the last layer; both extrapolate that layer's profile.
func (t *Table) Row(alt float64) Row {
	i := sort.Search(len(t.rows), func(i int) bool {
		return t.rows[i].BaseAltitude > alt
	})
	if i == 0 {
		return t.rows[0]
	}
	return t.rows[i-1]
}

func (t *Table) Temperature(alt float64) float64 {
	return temperature(t.Row(alt), alt)
}

func (t *Table) Pressure(alt float64) float64 {
	return pressure(t.Row(alt), alt)
}

// Density follows the ideal gas law.
func (t *Table) Density(alt float64) float64 {
	r := t.Row(alt)
	return pressure(r, alt) / (temperature(r, alt) * AirGasConstant)
}

func (t *Table) SpeedOfSound(alt float64) float64 {
	return math.Sqrt(AirKappa * AirGasConstant * t.Temperature(alt))
}

func temperature(r Row, alt float64) float64 {
	return r.BaseTemperature + r.Gradient*(alt-r.BaseAltitude)
}

func pressure(r Row, alt float64) float64 {
	if r.Gradient != 0 {
		return r.BasePressure * math.Pow(r.BaseTemperature/temperature(r, alt), hydrostaticConstant/r.Gradient)
	}
	return r.BasePressure * math.Exp(-hydrostaticConstant*(alt-r.BaseAltitude)/r.BaseTemperature)
}

// Vacuum is the atmosphere of an airless body.
type Vacuum struct{}

func (Vacuum) Temperature(float64) float64  { return 0 }
func (Vacuum) Pressure(float64) float64     { return 0 }
func (Vacuum) Density(float64) float64      { return 0 }
func (Vacuum) SpeedOfSound(float64) float64 { return 0 }

// GeopotentialAltitude converts a geometric altitude above a spherical body
// of the given radius to geopotential altitude.
func GeopotentialAltitude(geometric, radius float64) float64 {
	return radius * geometric / (radius + geometric)
}
