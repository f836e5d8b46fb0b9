package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/robotsorcerer/LevelSetMat/internal/config"
	"github.com/robotsorcerer/LevelSetMat/internal/grid"
	"github.com/robotsorcerer/LevelSetMat/internal/levelset"
	"github.com/robotsorcerer/LevelSetMat/internal/metrics"
	"github.com/robotsorcerer/LevelSetMat/internal/motion"
	"github.com/robotsorcerer/LevelSetMat/internal/odecfl"
	"github.com/robotsorcerer/LevelSetMat/internal/viz"
)

var (
	factorCFL  float64
	maxStep    float64
	duration   float64
	outputs    int
	nodes      int
	dims       int
	radius     float64
	vx         float64
	vy         float64
	speed      float64
	stats      bool
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "levelset",
		Short: "CFL-constrained level set time integration lab",
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a level set motion over requested output times",
		Args:  cobra.ExactArgs(1),
		RunE:  runModel,
	}
	addProblemFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch the front evolve step by step",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addProblemFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [cfl1] [cfl2] ...",
		Short: "compare CFL factors on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareFactors,
	}
	addProblemFlags(compareCmd)

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&factorCFL, "cfl", config.DefaultFactorCFL, "CFL factor in (0,1]")
	cmd.Flags().Float64Var(&maxStep, "max-step", 0, "timestep cap (0 = unlimited)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "final time")
	cmd.Flags().IntVar(&outputs, "outputs", config.DefaultOutputs, "number of output times")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "grid nodes per dimension")
	cmd.Flags().IntVar(&dims, "dims", 2, "grid dimensions")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "initial circle radius")
	cmd.Flags().Float64Var(&vx, "vx", 1.0, "advection velocity x")
	cmd.Flags().Float64Var(&vy, "vy", 0.0, "advection velocity y")
	cmd.Flags().Float64Var(&speed, "speed", -0.5, "normal-direction speed")
	cmd.Flags().BoolVar(&stats, "stats", false, "report wall-clock statistics")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file and flags, flags winning.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("cfl") {
		cfg.FactorCFL = factorCFL
	}
	if cmd.Flags().Changed("max-step") {
		cfg.MaxStep = maxStep
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("outputs") {
		cfg.Outputs = outputs
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Grid.Nodes = nodes
	}
	if cmd.Flags().Changed("dims") {
		cfg.Grid.Dims = dims
	}
	if cmd.Flags().Changed("radius") {
		cfg.Init.Radius = radius
	}
	if cmd.Flags().Changed("vx") || cmd.Flags().Changed("vy") {
		cfg.Velocity = []float64{vx, vy}
		if cfg.Grid.Dims == 1 {
			cfg.Velocity = []float64{vx}
		}
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("stats") {
		cfg.Stats = stats
	}
	return cfg, nil
}

func initialField(cfg *config.Config, g *grid.Grid) (levelset.State, error) {
	switch cfg.Init.Shape {
	case "", "circle":
		center := make([]float64, g.Dims())
		copy(center, cfg.Init.Center)
		return grid.Circle(g, center, cfg.Init.Radius), nil
	case "interval":
		return grid.Interval(g, 0, cfg.Init.Lo, cfg.Init.Hi), nil
	default:
		return nil, fmt.Errorf("unknown initial shape: %s", cfg.Init.Shape)
	}
}

// buildProblem maps the configuration to an engine, bundle and grid.
func buildProblem(cfg *config.Config) (*odecfl.RK3, *levelset.Bundle, *grid.Grid, error) {
	g, err := grid.Uniform(cfg.Grid.Dims, cfg.Grid.Nodes, cfg.Grid.Min, cfg.Grid.Max)
	if err != nil {
		return nil, nil, nil, err
	}
	phi, err := initialField(cfg, g)
	if err != nil {
		return nil, nil, nil, err
	}

	switch cfg.Model {
	case "advection":
		vel := cfg.Velocity
		if len(vel) > g.Dims() {
			vel = vel[:g.Dims()]
		}
		adv, err := motion.NewAdvection(g, vel)
		if err != nil {
			return nil, nil, nil, err
		}
		integ, err := odecfl.NewRK3(adv.Evaluate)
		if err != nil {
			return nil, nil, nil, err
		}
		return integ, levelset.Single(phi, nil), g, nil

	case "normal":
		ns, err := motion.NewNormalSpeed(g, cfg.Speed)
		if err != nil {
			return nil, nil, nil, err
		}
		integ, err := odecfl.NewRK3(ns.Evaluate)
		if err != nil {
			return nil, nil, nil, err
		}
		return integ, levelset.Single(phi, nil), g, nil

	case "pair":
		// Two fronts advected in opposite directions, advanced in lockstep
		// as one coupled bundle.
		vel := cfg.Velocity
		if len(vel) > g.Dims() {
			vel = vel[:g.Dims()]
		}
		back := make([]float64, len(vel))
		for i, v := range vel {
			back[i] = -v
		}
		fwd, err := motion.NewAdvection(g, vel)
		if err != nil {
			return nil, nil, nil, err
		}
		rev, err := motion.NewAdvection(g, back)
		if err != nil {
			return nil, nil, nil, err
		}
		integ, err := odecfl.NewRK3(fwd.Evaluate, rev.Evaluate)
		if err != nil {
			return nil, nil, nil, err
		}
		b, err := levelset.NewBundle([]levelset.State{phi, phi.Clone()}, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		return integ, b, g, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

func runModel(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	integ, b, g, err := buildProblem(cfg)
	if err != nil {
		return err
	}
	tspan, err := cfg.Times()
	if err != nil {
		return err
	}

	vol := metrics.NewVolume(g)
	ext := metrics.NewExtrema()
	zc := metrics.NewZeroCrossings(g)
	opts := cfg.Options()
	opts.PostTimestep = metrics.Hook(vol, ext, zc)
	opts.OnViolation = func(v odecfl.Violation) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", v)
	}

	fmt.Printf("running %s (cfl=%.3g, %d output times)...\n", cfg.Model, cfg.FactorCFL, len(tspan)-1)

	res, err := odecfl.Solve(context.Background(), integ, tspan, b, opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tVOLUME\tMAX|PHI|\tCROSSINGS")
	for i, t := range res.Times {
		vol.Observe(t, res.Snapshots[i][0])
		zc.Observe(t, res.Snapshots[i][0])
		snap := metrics.NewExtrema()
		snap.Observe(t, res.Snapshots[i][0])
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.0f\n", t, vol.Value(), snap.Value(), zc.Value())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsteps: %d\n", res.Steps)
	fmt.Printf("peak |phi| over run: %.6f\n", ext.Value())
	if len(res.Violations) > 0 {
		fmt.Printf("cfl warnings: %d (worst ratio %.4g)\n", len(res.Violations), worstRatio(res.Violations))
	}
	if cfg.Stats {
		fmt.Printf("elapsed: %v\n", res.Elapsed)
	}

	fmt.Println()
	fmt.Println(viz.Plot(g, b.State(0), fmt.Sprintf("phi center slice at t=%.4f", res.T)))
	if g.Dims() == 2 {
		fmt.Println()
		fmt.Println(viz.Contour(g, b.State(0), 64, 24))
	}
	return nil
}

func worstRatio(vs []odecfl.Violation) float64 {
	worst := 0.0
	for _, v := range vs {
		if r := v.Ratio(); r > worst {
			worst = r
		}
	}
	return worst
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	integ, b, g, err := buildProblem(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(integ, b, cfg.Options(), g, cfg.Duration, cfg.Model)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareFactors(cmd *cobra.Command, args []string) error {
	model := args[0]
	factors := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("bad CFL factor %q: %w", a, err)
		}
		factors = append(factors, f)
	}

	fmt.Printf("comparing CFL factors for %s (T=%.3g)\n\n", model, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CFL\tSTEPS\tWARNINGS\tVOLUME\tTIME")

	for _, f := range factors {
		cfg, err := buildConfig(cmd, model)
		if err != nil {
			return err
		}
		cfg.FactorCFL = f
		cfg.Stats = true

		integ, b, g, err := buildProblem(cfg)
		if err != nil {
			return err
		}
		tspan, err := cfg.Times()
		if err != nil {
			return err
		}

		res, err := odecfl.Solve(context.Background(), integ, tspan, b, cfg.Options())
		if err != nil {
			fmt.Fprintf(w, "%.3g\terror: %v\n", f, err)
			continue
		}

		vol := metrics.NewVolume(g)
		vol.Observe(res.T, b.State(0))
		fmt.Fprintf(w, "%.3g\t%d\t%d\t%.6f\t%v\n", f, res.Steps, len(res.Violations), vol.Value(), res.Elapsed)
	}

	return w.Flush()
}
