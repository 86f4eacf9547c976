package config

import "sort"

// Presets are ready-made scenarios, selectable by name from the command line.
var Presets = map[string]*Config{
	// constant thrust, no gravity, no air: matches the rocket equation
	"vacuum": {
		Planet: "void", Integrator: "rk4", Dt: 1, Duration: 100,
		Vehicle: VehicleConfig{
			Mass:     1000,
			Engines:  []EngineConfig{{Throttle: 1, ThrustVac: 20000, Isp: 300}},
			Steering: SteeringConfig{Type: "constant"},
		},
	},
	"sounding": {
		Planet: "earth", Integrator: "rk4", Dt: 0.1, Duration: 60,
		Launch: LaunchConfig{Latitude: 37.84, Longitude: 284.51, Azimuth: 90},
		Vehicle: VehicleConfig{
			Mass:     1200,
			Engines:  []EngineConfig{{Throttle: 1, ThrustVac: 40000, ExitArea: 0.05, Isp: 240}},
			Steering: SteeringConfig{Type: "constant"},
		},
	},
	"ascent": {
		Planet: "earth", Integrator: "rk4", Dt: 0.5, Duration: 150,
		Launch: LaunchConfig{Latitude: 28.5, Longitude: 279.4, Azimuth: 90},
		Vehicle: VehicleConfig{
			Mass:    500000,
			Engines: []EngineConfig{{Throttle: 1, ThrustVac: 7.5e6, ExitArea: 5, Isp: 300}},
			Steering: SteeringConfig{
				Type:   "table",
				Times:  []float64{0, 10, 30, 90, 150},
				Angles: []float64{0, 0, 10, 45, 65},
			},
		},
	},
	// ascent with the engines throttled back through max q
	"governed": {
		Planet: "earth", Integrator: "rk4", Dt: 0.5, Duration: 150,
		Launch: LaunchConfig{Latitude: 28.5, Longitude: 279.4, Azimuth: 90},
		Vehicle: VehicleConfig{
			Mass:    500000,
			Engines: []EngineConfig{{Throttle: 1, ThrustVac: 7.5e6, ExitArea: 5, Isp: 300}},
			Steering: SteeringConfig{
				Type:   "table",
				Times:  []float64{0, 10, 30, 90, 150},
				Angles: []float64{0, 0, 10, 45, 65},
			},
			Governor: GovernorConfig{MaxQ: 25000, MinThrottle: 0.5},
		},
	},
	"ellipsoid": {
		Planet: "earth-ellipsoid", Integrator: "dopri5", Dt: 0.5, Duration: 150,
		Launch: LaunchConfig{Latitude: 28.5, Longitude: 279.4, Azimuth: 90},
		Vehicle: VehicleConfig{
			Mass:    500000,
			Engines: []EngineConfig{{Throttle: 1, ThrustVac: 7.5e6, ExitArea: 5, Isp: 300}},
			Steering: SteeringConfig{
				Type:         "polynomial",
				Coefficients: []float64{0, 0, 0.0035, 0},
			},
		},
	},
	"lunar": {
		Planet: "moon", Integrator: "rk4", Dt: 1, Duration: 300,
		Launch: LaunchConfig{Latitude: 0.67, Longitude: 23.47, Azimuth: 270},
		Vehicle: VehicleConfig{
			Mass:    4900,
			Engines: []EngineConfig{{Throttle: 1, ThrustVac: 15600, ExitArea: 0.5, Isp: 311}},
			Steering: SteeringConfig{
				Type:   "table",
				Times:  []float64{0, 10, 60, 300},
				Angles: []float64{0, 0, 50, 85},
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
