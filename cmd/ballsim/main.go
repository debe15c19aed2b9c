package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ballsim/internal/automation"
	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/export"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/optim"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	frameRate  int
	theme      string
	debugLog   string
	// Physics overrides
	wallRestitution float64
	impulseScale    float64
	maxSpeed        float64
	// Headless run
	frames    int
	plot      bool
	traceOut  string
	svgOut    string
	trailBall int
	script    string
	ensemble  int
	seed      int64
	// Parameter sweep
	sweepMetric      string
	restitutionRange []float64
	impulseRange     []float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ballsim",
		Short: "interactive 2d ball surface",
		RunE:  runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scene")
	rootCmd.PersistentFlags().Float64Var(&wallRestitution, "restitution", physics.DefaultWallRestitution, "wall restitution")
	rootCmd.PersistentFlags().Float64Var(&impulseScale, "impulse", physics.DefaultImpulseScale, "pair impulse scale")
	rootCmd.PersistentFlags().Float64Var(&maxSpeed, "max-speed", control.DefaultMaxSpeed, "drag launch speed cap")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.Flags().StringVar(&debugLog, "debug", os.Getenv("BALLSIM_DEBUG"), "write diagnostics to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the scene headless",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot kinetic energy")
	runCmd.Flags().StringVar(&traceOut, "out", "", "write frame trace (.csv or .json)")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write final frame as svg")
	runCmd.Flags().IntVar(&trailBall, "trail", -1, "ball id whose path is drawn in the svg")
	runCmd.Flags().StringVar(&script, "script", "", "replay pointer gestures from a scenario file (yaml)")
	runCmd.Flags().IntVar(&ensemble, "ensemble", 0, "run N worlds with random launch velocities")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for --ensemble")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search physics constants against a metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", 600, "frames per grid point")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "wall_hits", "metric to minimize")
	sweepCmd.Flags().Float64SliceVar(&restitutionRange, "restitution-range", []float64{0.1, 0.3, 0.5, 0.7, 0.9}, "wall restitution values")
	sweepCmd.Flags().Float64SliceVar(&impulseRange, "impulse-range", []float64{0.1, 0.3, 0.5}, "impulse scale values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBALLS\tSURFACE")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0fx%.0f\n", name, len(cfg.Balls), cfg.Surface.Width, cfg.Surface.Height)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "scene config helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the selected scene as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "ballsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadScene(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScene resolves preset, then config file, then flags. Flags only
// override when set explicitly.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("restitution") {
		cfg.Physics.WallRestitution = wallRestitution
	}
	if flags.Changed("impulse") {
		cfg.Physics.ImpulseScale = impulseScale
	}
	if flags.Changed("max-speed") {
		cfg.Physics.MaxSpeed = maxSpeed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return viz.Run(ctx, cfg, viz.Options{Title: sceneName(), DebugLog: debugLog})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ensemble > 0 {
		return runEnsemble(ctx, cfg)
	}

	w, err := cfg.NewWorld()
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		w.AddMetric(m)
	}

	runCfg := sim.DefaultRunConfig()
	runCfg.Frames = frames

	var replay *automation.Script
	if script != "" {
		scenario, err := automation.LoadScenario(script)
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		replay = automation.NewScript(scenario, control.NewPointer(w, cfg.Physics.MaxSpeed))
		runCfg.BeforeStep = replay.BeforeStep
	}

	fmt.Printf("running %s: %d balls, %d frames...\n", sceneName(), len(cfg.Balls), frames)
	start := time.Now()

	result, err := w.Run(ctx, runCfg)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("frames: %d\n", result.StepsTaken)
	if replay != nil {
		fmt.Printf("gestures: %d applied, %d missed\n", replay.Applied(), replay.Missed())
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	printMetrics(result.Metrics)

	if plot && len(result.Snapshots) > 1 {
		energy := make([]float64, len(result.Snapshots))
		for i, s := range result.Snapshots {
			energy[i] = s.KineticEnergy()
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy vs frame"),
		))
	}

	if traceOut != "" {
		if err := export.WriteTrace(traceOut, sceneName(), result); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", traceOut)
	}

	if svgOut != "" {
		svg := export.SnapshotSVG(w.Snapshot(), "")
		if trailBall >= 0 {
			svg = export.TrajectorySVG(result.Snapshots, trailBall, "#ffff00")
		}
		if err := export.WriteSVG(svgOut, svg); err != nil {
			return err
		}
		fmt.Printf("svg written to %s\n", svgOut)
	}

	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	factory := func(s int64) (*sim.World, error) {
		w, err := cfg.NewWorld()
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(s))
		for _, b := range w.Balls() {
			speed := rng.Float64() * cfg.Physics.MaxSpeed
			b.Velocity = physics.Polar(speed, rng.Float64()*2*math.Pi)
		}
		for _, m := range metrics.Defaults() {
			w.AddMetric(m)
		}
		return w, nil
	}

	runCfg := sim.DefaultRunConfig()
	runCfg.Frames = frames
	runCfg.Record = false

	fmt.Printf("running %d worlds of %s for %d frames (seed %d)...\n", ensemble, sceneName(), frames, seed)
	start := time.Now()

	results, err := sim.NewEnsemble(factory, ensemble, seed).Run(ctx, runCfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))

	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nMETRIC\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range names {
		mean, std, lo, hi := summarize(values[name])
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, mean, std, lo, hi)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	build := func(params map[string]float64) (*sim.World, error) {
		w, err := cfg.NewWorld()
		if err != nil {
			return nil, err
		}
		for name, v := range params {
			if err := w.Params().SetParam(name, v); err != nil {
				return nil, err
			}
		}
		for _, m := range metrics.Defaults() {
			w.AddMetric(m)
		}
		return w, nil
	}

	runCfg := sim.DefaultRunConfig()
	runCfg.Frames = frames
	runCfg.Record = false

	g := optim.NewGridSearch(
		[]string{"wall_restitution", "impulse_scale"},
		[][]float64{restitutionRange, impulseRange},
	)

	fmt.Printf("sweeping %s over %d points, minimizing %s...\n", sceneName(), len(restitutionRange)*len(impulseRange), sweepMetric)
	best, all, err := g.Search(ctx, build, sweepMetric, runCfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESTITUTION\tIMPULSE\tVALUE")
	for _, p := range all {
		fmt.Fprintf(w, "%.3f\t%.3f\t%.6f\n", p.Params["wall_restitution"], p.Params["impulse_scale"], p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if optim.Uniform(all) {
		fmt.Printf("\nwarning: every point scored %.6f for %s; the scene may be at rest (try --preset crowd)\n", best.Value, sweepMetric)
		return nil
	}

	fmt.Printf("\nbest: wall_restitution=%.3f impulse_scale=%.3f %s=%.6f\n",
		best.Params["wall_restitution"], best.Params["impulse_scale"], sweepMetric, best.Value)
	return nil
}

func summarize(vals []float64) (mean, std, lo, hi float64) {
	if len(vals) == 0 {
		return 0, 0, 0, 0
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals {
		mean += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(vals)))
	return mean, std, lo, hi
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func sceneName() string {
	switch {
	case configFile != "":
		return configFile
	case preset != "":
		return preset
	default:
		return "reference"
	}
}
