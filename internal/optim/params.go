package optim

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/ascent/internal/config"
)

var ErrUnknownParam = errors.New("optim: unknown parameter")

type setter func(c *config.Config, v float64) error

var params = map[string]setter{
	"dt":        func(c *config.Config, v float64) error { c.Dt = v; return nil },
	"azimuth":   func(c *config.Config, v float64) error { c.Launch.Azimuth = v; return nil },
	"latitude":  func(c *config.Config, v float64) error { c.Launch.Latitude = v; return nil },
	"mass":      func(c *config.Config, v float64) error { c.Vehicle.Mass = v; return nil },
	"max_q":     func(c *config.Config, v float64) error { c.Vehicle.Governor.MaxQ = v; return nil },
	"pitch":     setPitch,
	"throttle":  eachEngine(func(e *config.EngineConfig, v float64) { e.Throttle = v }),
	"thrust":    eachEngine(func(e *config.EngineConfig, v float64) { e.ThrustVac = v }),
	"isp":       eachEngine(func(e *config.EngineConfig, v float64) { e.Isp = v }),
	"incidence": eachEngine(func(e *config.EngineConfig, v float64) { e.Pitch = v }),
}

func eachEngine(set func(*config.EngineConfig, float64)) setter {
	return func(c *config.Config, v float64) error {
		for i := range c.Vehicle.Engines {
			set(&c.Vehicle.Engines[i], v)
		}
		return nil
	}
}

// setPitch sets the angle of a constant steering law.
func setPitch(c *config.Config, v float64) error {
	c.Vehicle.Steering = config.SteeringConfig{Type: "constant", Value: v}
	return nil
}

// Apply sets the named scenario parameter. Besides the names listed by
// Params, "c0" to "c3" set polynomial steering coefficients and "angle.N"
// sets the N-th angle of a steering table.
func Apply(c *config.Config, name string, v float64) error {
	if set, ok := params[name]; ok {
		return set(c, v)
	}

	s := &c.Vehicle.Steering
	switch {
	case len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '3':
		i := int(name[1] - '0')
		if s.Type != "polynomial" {
			*s = config.SteeringConfig{Type: "polynomial"}
		}
		for len(s.Coefficients) <= i {
			s.Coefficients = append(s.Coefficients, 0)
		}
		s.Coefficients[i] = v
		return nil
	case strings.HasPrefix(name, "angle."):
		i, err := strconv.Atoi(strings.TrimPrefix(name, "angle."))
		if err != nil || s.Type != "table" || i < 0 || i >= len(s.Angles) {
			return fmt.Errorf("%w: %s", ErrUnknownParam, name)
		}
		s.Angles[i] = v
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownParam, name)
}

// Params lists the fixed parameter names accepted by Apply.
func Params() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
