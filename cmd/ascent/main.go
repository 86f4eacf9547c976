package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/ascent/internal/config"
	"github.com/san-kum/ascent/internal/experiment"
	"github.com/san-kum/ascent/internal/optim"
	"github.com/san-kum/ascent/internal/planet"
	"github.com/san-kum/ascent/internal/viz"
)

var (
	configFile string
	dt         float64
	duration   float64
	integrator string
	latitude   float64
	longitude  float64
	azimuth    float64
	tableEvery int
	verbose    bool
	doProfile  bool
	theme      string

	atmFrom, atmTo, atmStep float64
	steerStep               float64

	tuneParams    []string
	tuneObjective string
	tuneMaximize  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ascent",
		Short:        "fixed-step flight vehicle trajectory simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&doProfile, "profile", false, "write a CPU profile to the working directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeMission.Name, "color theme")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and print a summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().IntVar(&tableEvery, "table", 0, "also print every nth state as a table")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	scenarioFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark a scenario over step sizes and integrators",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	scenarioFlags(benchCmd)

	atmCmd := &cobra.Command{
		Use:   "atmosphere",
		Short: "tabulate the 1962 standard atmosphere",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := planet.EarthSpherical()
			return viz.WriteAtmosphere(os.Stdout, p.Atmosphere, atmFrom, atmTo, atmStep)
		},
	}
	atmCmd.Flags().Float64Var(&atmFrom, "from", 0, "lowest geopotential altitude [m]")
	atmCmd.Flags().Float64Var(&atmTo, "to", 90000, "highest geopotential altitude [m]")
	atmCmd.Flags().Float64Var(&atmStep, "step", 5000, "altitude step [m]")

	steeringCmd := &cobra.Command{
		Use:   "steering [preset]",
		Short: "tabulate the pitch program of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showSteering,
	}
	scenarioFlags(steeringCmd)
	steeringCmd.Flags().Float64Var(&steerStep, "step", 10, "time step of the table [s]")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search scenario parameters for the best metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneScenario,
	}
	scenarioFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVarP(&tuneParams, "param", "p", nil,
		fmt.Sprintf("name=v1,v2,... (repeatable); names: %s, c0..c3, angle.N", strings.Join(optim.Params(), ", ")))
	tuneCmd.Flags().StringVar(&tuneObjective, "objective", "propellant_used", "metric to minimize")
	tuneCmd.Flags().BoolVar(&tuneMaximize, "maximize", false, "maximize the metric instead")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPLANET\tINTEGRATOR\tDT\tDURATION\tSTEERING")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%s\n", name, c.Planet, c.Integrator, c.Dt, c.Duration, c.Vehicle.Steering.Type)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			r := experiment.NewRegistry()
			fmt.Println(viz.Separator(60))
			fmt.Printf("planets:     %s\n", strings.Join(r.ListPlanets(), ", "))
			fmt.Printf("integrators: %s\n", strings.Join(r.ListIntegrators(), ", "))
			fmt.Printf("steering:    %s\n", strings.Join(r.ListSteeringLaws(), ", "))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, benchCmd, tuneCmd, atmCmd, steeringCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides the preset")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size [s]")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration [s]")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().Float64Var(&latitude, "lat", config.DefaultLatitude, "launch latitude [deg]")
	cmd.Flags().Float64Var(&longitude, "lon", config.DefaultLongitude, "launch longitude [deg]")
	cmd.Flags().Float64Var(&azimuth, "az", config.DefaultAzimuth, "launch azimuth [deg]")
}

// loadScenario resolves the preset named by the first argument, then the
// config file, then any flags set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if len(args) > 0 {
		name = args[0]
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg, name = c, configFile
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("lat") {
		cfg.Launch.Latitude = latitude
	}
	if flags.Changed("lon") {
		cfg.Launch.Longitude = longitude
	}
	if flags.Changed("az") {
		cfg.Launch.Azimuth = azimuth
	}
	return cfg, name, cfg.Validate()
}

func newLogger() log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowWarn())
}

// signalContext is canceled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func startProfile() interface{ Stop() } {
	if !doProfile {
		return nopStopper{}
	}
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
}

type nopStopper struct{}

func (nopStopper) Stop() {}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	defer startProfile().Stop()

	logger := newLogger()
	registry := experiment.NewRegistry()
	exp := experiment.New(cfg, registry, log.With(logger, "scenario", name))
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, runErr := exp.Run(ctx)
	elapsed := time.Since(start)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		level.Error(logger).Log("msg", "run stopped early", "err", runErr)
	}

	p := exp.GetSimulator().Planet()
	title := fmt.Sprintf("%s  [%s, dt=%g s, %v]", name, cfg.Integrator, cfg.Dt, elapsed.Round(time.Millisecond))
	if err := viz.WriteSummary(os.Stdout, title, p, result); err != nil {
		return err
	}
	if tableEvery > 0 {
		if err := viz.WriteTrajectory(os.Stdout, p, result, tableEvery); err != nil {
			return err
		}
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	s, err := experiment.Build(cfg, experiment.NewRegistry(), newLogger())
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(viz.NewModel(s, name, cfg.Duration)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok {
		return m.Err()
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args[:1])
	if err != nil {
		return err
	}
	names := args[1:]
	defer startProfile().Stop()

	ctx, cancel := signalContext()
	defer cancel()

	registry := experiment.NewRegistry()
	results, err := experiment.Compare(ctx, cfg, registry, names, log.With(newLogger(), "scenario", name))
	if err != nil {
		return err
	}

	p, err := registry.GetPlanet(cfg.Planet)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %g s at dt=%g s, differences against %s\n\n", name, cfg.Duration, cfg.Dt, names[len(names)-1])
	return viz.WriteComparison(os.Stdout, p, names, results)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	defer startProfile().Stop()

	registry := experiment.NewRegistry()
	dts := []float64{cfg.Dt * 4, cfg.Dt, cfg.Dt / 4}

	fmt.Printf("benchmarking %s over %g s\n\n", name, cfg.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, integ := range registry.ListIntegrators() {
		for _, h := range dts {
			c := cfg.Clone()
			c.Integrator, c.Dt = integ, h

			s, err := experiment.Build(c, registry, nil)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := s.Run(context.Background(), c.Duration)
			if err != nil {
				return fmt.Errorf("%s at dt=%g: %w", integ, h, err)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%.4gs\t%d\t%v\t%.0f\n",
				integ, h, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func showSteering(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	law, err := experiment.NewRegistry().GetSteering(cfg.Vehicle.Steering)
	if err != nil {
		return err
	}
	kind := cfg.Vehicle.Steering.Type
	if kind == "" {
		kind = "constant"
	}
	fmt.Printf("%s: %s pitch program, x = time [s]\n\n", name, kind)
	return viz.WriteSteering(os.Stdout, law, 0, cfg.Duration, steerStep)
}

// parseGrid splits name=v1,v2,... flags into parameter names and ranges.
func parseGrid(flags []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(flags))
	ranges := make([][]float64, 0, len(flags))
	for _, f := range flags {
		name, list, ok := strings.Cut(f, "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad --param %q, want name=v1,v2,...", f)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad value in --param %q: %w", f, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func tuneScenario(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if len(tuneParams) == 0 {
		return fmt.Errorf("tune needs at least one --param")
	}
	names, ranges, err := parseGrid(tuneParams)
	if err != nil {
		return err
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	logger := log.With(newLogger(), "scenario", name)
	gs.SetLogger(logger)
	defer startProfile().Stop()

	objective := optim.Metric(tuneObjective)
	verb := "minimizing"
	if tuneMaximize {
		objective = optim.Maximize(objective)
		verb = "maximizing"
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("%s: %s %s over %d points\n\n", name, verb, tuneObjective, gs.Size())
	start := time.Now()
	registry := experiment.NewRegistry()
	best, err := gs.Search(ctx, cfg, registry, objective)
	if err != nil {
		return err
	}

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%g", n, best.Params[n])
	}
	p, err := registry.GetPlanet(cfg.Planet)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("best: %s  [%s=%g, %v]", strings.Join(parts, " "), tuneObjective,
		best.Result.Metrics[tuneObjective], time.Since(start).Round(time.Millisecond))
	return viz.WriteSummary(os.Stdout, title, p, best.Result)
}
