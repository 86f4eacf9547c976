package viz

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/ascent/internal/atmosphere"
	"github.com/san-kum/ascent/internal/control"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/sim"
)

// WriteSummary prints the final state, the run metrics and an altitude plot.
func WriteSummary(w io.Writer, title string, p planet.Planet, r *sim.Result) error {
	profile := Profile(p, r.States)
	last := profile[len(profile)-1]

	var s strings.Builder
	s.WriteString(headerStyle().Render(title) + "\n\n")
	row := func(label, value string) {
		s.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Steps", fmt.Sprintf("%d", r.StepsTaken))
	row("Time", fmt.Sprintf("%.2f s", last.Time))
	row("Altitude", fmt.Sprintf("%.3f km", last.Altitude/1000))
	row("Downrange", fmt.Sprintf("%.3f km", last.Downrange/1000))
	row("Speed", fmt.Sprintf("%.2f m/s", last.Speed))
	row("Mass", fmt.Sprintf("%.2f kg", last.Mass))

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	s.WriteString("\n")
	for _, name := range names {
		row(name, fmt.Sprintf("%.4g", r.Metrics[name]))
	}

	if _, err := fmt.Fprintln(w, panelStyle().Render(s.String())); err != nil {
		return err
	}

	if len(profile) < 2 {
		return nil
	}
	alt := make([]float64, len(profile))
	for i, smp := range profile {
		alt[i] = smp.Altitude / 1000
	}
	graph := asciigraph.Plot(alt,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("altitude [km] over time"),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}

// WriteTrajectory prints every nth sample of a run as a table.
func WriteTrajectory(w io.Writer, p planet.Planet, r *sim.Result, every int) error {
	every = max(every, 1)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "T [s]\tALT [km]\tRANGE [km]\tSPEED [m/s]\tMACH\tQ [kPa]\tMASS [kg]")

	profile := Profile(p, r.States)
	for i, s := range profile {
		if i%every != 0 && i != len(profile)-1 {
			continue
		}
		fmt.Fprintf(tw, "%.2f\t%.3f\t%.3f\t%.2f\t%.3f\t%.3f\t%.1f\n",
			s.Time, s.Altitude/1000, s.Downrange/1000, s.Speed, s.Mach, s.DynamicPressure/1000, s.Mass)
	}
	return tw.Flush()
}

// WriteAtmosphere tabulates m from one altitude to another, inclusive.
func WriteAtmosphere(w io.Writer, m atmosphere.Model, from, to, step float64) error {
	if !(step > 0) {
		return fmt.Errorf("step must be positive, got %g", step)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALT [m]\tT [K]\tP [Pa]\tRHO [kg/m3]\tA [m/s]")
	n := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= n; i++ {
		h := from + float64(i)*step
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.6g\t%.6g\t%.2f\n",
			h, m.Temperature(h), m.Pressure(h), m.Density(h), m.SpeedOfSound(h))
	}
	return tw.Flush()
}

// WriteSteering tabulates a steering law in degrees.
func WriteSteering(w io.Writer, law control.Steering, from, to, step float64) error {
	if !(step > 0) {
		return fmt.Errorf("step must be positive, got %g", step)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "X\tANGLE [deg]\tRATE [deg/x]")
	n := int(math.Floor((to-from)/step + 1e-9))
	for i := 0; i <= n; i++ {
		x := from + float64(i)*step
		fmt.Fprintf(tw, "%.2f\t%.4f\t%.4f\n", x, law.Update(x)*180/math.Pi, law.Rate(x)*180/math.Pi)
	}
	return tw.Flush()
}

// WriteComparison prints the final states of runs of the same scenario side
// by side, with differences taken against the last run.
func WriteComparison(w io.Writer, p planet.Planet, names []string, results []*sim.Result) error {
	if len(names) != len(results) || len(results) == 0 {
		return fmt.Errorf("have %d names for %d results", len(names), len(results))
	}
	ref := results[len(results)-1].Final()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INTEGRATOR\tALT [km]\tSPEED [m/s]\tMASS [kg]\t|dR| [m]\t|dV| [m/s]\tE DRIFT")
	for i, r := range results {
		f := r.Final()
		dr := r3.Norm(r3.Sub(f.Position, ref.Position))
		dv := r3.Norm(r3.Sub(f.Velocity, ref.Velocity))
		drift := "-"
		if d, ok := r.Metrics["energy_drift"]; ok {
			drift = fmt.Sprintf("%.2e", d)
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3e\t%.3e\t%s\n",
			names[i], p.Altitude(f.Position)/1000, r3.Norm(f.Velocity), f.Mass, dr, dv, drift)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	series := make([][]float64, len(results))
	for i, r := range results {
		series[i] = make([]float64, len(r.States))
		for j, s := range r.States {
			series[i][j] = p.Altitude(s.Position) / 1000
		}
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.Caption("altitude [km]: "+strings.Join(names, ", ")),
	)
	_, err := fmt.Fprintln(w, graph)
	return err
}
