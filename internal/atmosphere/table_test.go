package atmosphere_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ascent/internal/atmosphere"
)

var _ = Describe("Table", func() {
	var table *atmosphere.Table

	BeforeEach(func() {
		var err error
		table, err = atmosphere.NewTable("test", []atmosphere.Row{
			{BaseAltitude: 0, BasePressure: 100000, BaseTemperature: 300, Gradient: -0.01},
			{BaseAltitude: 10000, BasePressure: 30000, BaseTemperature: 200, Gradient: 0},
			{BaseAltitude: 20000, BasePressure: 5000, BaseTemperature: 200, Gradient: 0.002},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("row selection", func() {
		It("selects the greatest base altitude not above the query", func() {
			Expect(table.Row(0).BaseAltitude).To(Equal(0.0))
			Expect(table.Row(9999.9).BaseAltitude).To(Equal(0.0))
			Expect(table.Row(10000).BaseAltitude).To(Equal(10000.0))
			Expect(table.Row(15000).BaseAltitude).To(Equal(10000.0))
			Expect(table.Row(20000).BaseAltitude).To(Equal(20000.0))
		})

		It("clamps to the first and last rows", func() {
			Expect(table.Row(-500).BaseAltitude).To(Equal(0.0))
			Expect(table.Row(1e6).BaseAltitude).To(Equal(20000.0))
		})

		It("extrapolates the nearest row's profile", func() {
			Expect(table.Temperature(-500)).To(BeNumerically("~", 305, 1e-9))
			Expect(table.Temperature(30000)).To(BeNumerically("~", 220, 1e-9))
		})
	})

	Describe("temperature", func() {
		It("is linear within a layer", func() {
			Expect(table.Temperature(0)).To(BeNumerically("~", 300, 1e-9))
			Expect(table.Temperature(5000)).To(BeNumerically("~", 250, 1e-9))
			Expect(table.Temperature(12345)).To(BeNumerically("~", 200, 1e-9))
		})
	})

	Describe("pressure", func() {
		It("returns the base pressure at a layer base", func() {
			Expect(table.Pressure(10000)).To(BeNumerically("~", 30000, 1e-6))
			Expect(table.Pressure(20000)).To(BeNumerically("~", 5000, 1e-6))
		})

		It("decays exponentially in an isothermal layer", func() {
			k := atmosphere.StdGravity / atmosphere.AirGasConstant
			for _, dh := range []float64{100, 1000, 5000} {
				want := 30000 * math.Exp(-k*dh/200)
				Expect(table.Pressure(10000 + dh)).To(BeNumerically("~", want, want*1e-12))
			}

			// equal altitude increments give equal pressure ratios
			r1 := table.Pressure(12000) / table.Pressure(11000)
			r2 := table.Pressure(13000) / table.Pressure(12000)
			Expect(r1).To(BeNumerically("~", r2, 1e-12))
		})

		It("follows the power law in a gradient layer", func() {
			k := atmosphere.StdGravity / atmosphere.AirGasConstant
			alt := 4000.0
			temp := 300 - 0.01*alt
			want := 100000 * math.Pow(300/temp, k/-0.01)
			Expect(table.Pressure(alt)).To(BeNumerically("~", want, want*1e-12))
			Expect(table.Pressure(alt)).To(BeNumerically("<", 100000))
		})
	})

	Describe("derived quantities", func() {
		It("computes density from the ideal gas law", func() {
			alt := 15000.0
			want := table.Pressure(alt) / (table.Temperature(alt) * atmosphere.AirGasConstant)
			Expect(table.Density(alt)).To(BeNumerically("~", want, 1e-15))
		})

		It("computes the speed of sound", func() {
			want := math.Sqrt(atmosphere.AirKappa * atmosphere.AirGasConstant * 200)
			Expect(table.SpeedOfSound(15000)).To(BeNumerically("~", want, 1e-12))
		})
	})
})

var _ = Describe("NewTable", func() {
	It("rejects an empty table", func() {
		_, err := atmosphere.NewTable("empty", nil)
		Expect(err).To(MatchError(atmosphere.ErrEmptyTable))
	})

	It("rejects non-ascending base altitudes", func() {
		_, err := atmosphere.NewTable("unsorted", []atmosphere.Row{
			{BaseAltitude: 1000, BasePressure: 1, BaseTemperature: 1},
			{BaseAltitude: 1000, BasePressure: 1, BaseTemperature: 1},
		})
		Expect(err).To(MatchError(atmosphere.ErrUnsortedTable))
	})

	It("rejects non-physical layers", func() {
		_, err := atmosphere.NewTable("cold", []atmosphere.Row{
			{BaseAltitude: 0, BasePressure: 1, BaseTemperature: 0},
		})
		Expect(err).To(MatchError(atmosphere.ErrInvalidLayer))
	})

	It("copies its input", func() {
		rows := []atmosphere.Row{{BaseAltitude: 0, BasePressure: 1, BaseTemperature: 1}}
		table, err := atmosphere.NewTable("copy", rows)
		Expect(err).NotTo(HaveOccurred())
		rows[0].BaseTemperature = 500
		Expect(table.Temperature(0)).To(Equal(1.0))
	})
})

var _ = Describe("StandardAtmosphere1962", func() {
	std := atmosphere.StandardAtmosphere1962()

	It("matches sea-level reference values", func() {
		Expect(std.Temperature(0)).To(BeNumerically("~", 288.15, 1e-9))
		Expect(std.Pressure(0)).To(BeNumerically("~", 101325, 1e-6))
		Expect(std.Density(0)).To(BeNumerically("~", 1.2250, 1e-4))
		Expect(std.SpeedOfSound(0)).To(BeNumerically("~", 340.29, 0.01))
	})

	It("matches published layer base pressures", func() {
		Expect(std.Pressure(11000)).To(BeNumerically("~", 22632, 22632*1e-3))
		Expect(std.Pressure(20000)).To(BeNumerically("~", 5474.9, 5474.9*1e-3))
		Expect(std.Pressure(32000)).To(BeNumerically("~", 868.02, 868.02*1e-3))
	})

	It("is continuous across layer boundaries", func() {
		for _, row := range std.Rows()[1:] {
			below := std.Pressure(row.BaseAltitude - 1e-6)
			Expect(std.Pressure(row.BaseAltitude)).To(BeNumerically("~", below, below*1e-6))
			Expect(std.Temperature(row.BaseAltitude)).To(BeNumerically("~", std.Temperature(row.BaseAltitude-1e-6), 1e-6))
		}
	})

	It("decreases in pressure with altitude", func() {
		prev := std.Pressure(0)
		for alt := 1000.0; alt <= 90000; alt += 1000 {
			p := std.Pressure(alt)
			Expect(p).To(BeNumerically("<", prev))
			prev = p
		}
	})
})

var _ = Describe("Vacuum", func() {
	It("has no pressure", func() {
		var m atmosphere.Model = atmosphere.Vacuum{}
		Expect(m.Pressure(0)).To(BeZero())
		Expect(m.Density(1000)).To(BeZero())
	})
})

var _ = Describe("GeopotentialAltitude", func() {
	It("is below the geometric altitude", func() {
		Expect(atmosphere.GeopotentialAltitude(0, 6.4e6)).To(BeZero())
		Expect(atmosphere.GeopotentialAltitude(10000, 6.4e6)).To(BeNumerically("~", 9984.4, 0.1))
	})
})
