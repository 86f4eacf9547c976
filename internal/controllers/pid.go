package controllers

// PID is a scalar PID controller with output limits. The integral is frozen
// while the output is saturated in the direction of the error.
type PID struct {
	Kp, Ki, Kd     float64
	OutMin, OutMax float64

	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, outMin, outMax float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		OutMin: outMin,
		OutMax: outMax,
		first:  true,
	}
}

// Update returns the control output for err observed at time t.
func (p *PID) Update(err, t float64) float64 {
	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.clamp(p.Kp * err)
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.clamp(p.Kp*err + p.Ki*p.integral)
	}

	integral := p.integral + err*dt
	derivative := (err - p.prevErr) / dt
	u := p.Kp*err + p.Ki*integral + p.Kd*derivative

	saturated := (u > p.OutMax && err > 0) || (u < p.OutMin && err < 0)
	if !saturated {
		p.integral = integral
	}
	p.prevErr = err
	p.prevT = t
	return p.clamp(u)
}

func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.prevT = 0
	p.first = true
}

func (p *PID) clamp(u float64) float64 {
	switch {
	case u > p.OutMax:
		return p.OutMax
	case u < p.OutMin:
		return p.OutMin
	}
	return u
}
