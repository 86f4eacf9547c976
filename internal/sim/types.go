package sim

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(s PhysicalState)
	Value() float64
	Reset()
}

// Observer is notified of every state of a run, including the initial one.
type Observer interface {
	OnStep(s PhysicalState)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s PhysicalState)

func (f ObserverFunc) OnStep(s PhysicalState) { f(s) }

// Result holds the trajectory of a run.
type Result struct {
	Times      []float64
	States     []PhysicalState
	Metrics    map[string]float64
	StepsTaken int
}

// Final returns the last recorded state.
func (r *Result) Final() PhysicalState {
	return r.States[len(r.States)-1]
}
