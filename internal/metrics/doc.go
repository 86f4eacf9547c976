// Package metrics provides scalar observers for simulation runs. Each one
// implements sim.Metric and is reset at the start of every run.
package metrics
