package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/digirain/internal/automation"
	"github.com/san-kum/digirain/internal/config"
	"github.com/san-kum/digirain/internal/export"
	"github.com/san-kum/digirain/internal/glyph"
	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
	"github.com/san-kum/digirain/internal/screen"
	"github.com/san-kum/digirain/internal/sim"
	"github.com/san-kum/digirain/internal/storage"
	"github.com/san-kum/digirain/internal/theme"
	"github.com/san-kum/digirain/internal/viz"
	"github.com/san-kum/digirain/internal/window"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	size       int
	frameRate  int
	ticks      int
	charset    string
	themeName  string
	logFile    string
	verbose    bool
	outPath    string
	numRuns    int
	cellSize   int
	sweepParam string
	sweepMin   int
	sweepMax   int
	sweepSteps int
)

var logCloser io.Closer

func main() {
	rootCmd := &cobra.Command{
		Use:   "digirain",
		Short: "digital rain in the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		// Default to the live view when no command is given
		RunE:         runLive,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".digirain", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	pf.IntVar(&size, "size", config.DefaultSize, "grid side length")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&ticks, "ticks", config.DefaultTicks, "ticks for headless runs")
	pf.StringVar(&charset, "charset", glyph.DefaultName, "charset name or literal glyphs")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animated rain in the terminal with a stats sidebar",
		RunE:  runLive,
	}

	screenCmd := &cobra.Command{
		Use:   "screen",
		Short: "full-screen rain without the sidebar",
		RunE:  runScreen,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "rain in a desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&cellSize, "cell", 18, "cell size in pixels")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, saved to the data directory",
		RunE:  runHeadless,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot drip population of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the final grid of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.svg)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <run_id>.json)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run several seeds in parallel and compare",
		RunE:  benchRuns,
	}
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and compare population",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "content_velocity", "parameter to sweep ("+strings.Join(automation.SweepParams(), ", ")+")")
	sweepCmd.Flags().IntVar(&sweepMin, "min", 5, "first value")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 100, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of points")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	charsetsCmd := &cobra.Command{
		Use:   "charsets",
		Short: "list built-in charsets",
		RunE:  listCharsets,
	}

	rootCmd.AddCommand(liveCmd, screenCmd, windowCmd, runCmd, listCmd, plotCmd,
		exportSVGCmd, exportJSONCmd, benchCmd, scenarioCmd, sweepCmd, presetsCmd, charsetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logCloser = f
		rain.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	case verbose:
		rain.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
	return nil
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (try: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("charset") {
		cfg.Charset = charset
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*rain.Engine, error) {
	params, err := cfg.EngineParams()
	if err != nil {
		return nil, err
	}
	return rain.New(cfg.Size, params, rng.New(cfg.Seed))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	return viz.Run(e, viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, Seed: cfg.Seed})
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	return screen.Run(cmd.Context(), e, screen.Options{FPS: cfg.FPS, Theme: cfg.Theme, Seed: cfg.Seed})
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := newEngine(cfg)
	if err != nil {
		return err
	}
	err = window.Run(e, window.Options{FPS: cfg.FPS, Theme: cfg.Theme, Seed: cfg.Seed, Cell: cellSize})
	if errors.Is(err, window.ErrUnavailable) {
		return fmt.Errorf("%w; rebuild with `go build -tags ebiten ./cmd/digirain`", err)
	}
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.EngineParams()
	if err != nil {
		return err
	}

	s := sim.New(params)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	start := time.Now()
	result, err := s.Run(cmd.Context(), sim.Config{Size: cfg.Size, Ticks: cfg.Ticks, Seed: cfg.Seed})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{Preset: preset, Charset: cfg.Charset}, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("seed: %d  size: %d  ticks: %d  time: %v\n", result.Seed, result.Size, len(result.Series), elapsed)
	for _, name := range []string{"population", "peak_population", "density", "spawn_rate"} {
		if v, ok := result.Metrics[name]; ok {
			fmt.Printf("%s: %.4f\n", name, v)
		}
	}
	fmt.Println()
	fmt.Println(result.Grid.String())

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tCHARSET\tTIME\tSEED\tSIZE\tTICKS")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			p,
			run.Charset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Size,
			run.Ticks,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d  size: %d\n", meta.Seed, meta.Size)
	fmt.Printf("samples: %d\n\n", len(series))

	content := make([]float64, len(series))
	erasers := make([]float64, len(series))
	active := make([]float64, len(series))
	for i, s := range series {
		content[i] = float64(s.Content)
		erasers[i] = float64(s.Erasers)
		active[i] = float64(s.Active)
	}

	fmt.Println(asciigraph.Plot(active,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("active drips"),
	))
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{content, erasers},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("content (green) vs erasers (red)"),
	))

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rows, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}

	t := theme.Get(themeName)
	opts := export.DefaultSVGOptions()
	opts.Foreground = t.Glyph
	opts.Background = t.Background
	opts.Highlight = t.Head

	path := outPath
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(export.GridToSVG(rows, opts, nil)), 0644); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadGrid(runID)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = runID + ".json"
	}
	if err := export.ExportJSON(path, meta, series, rows); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func benchRuns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.EngineParams()
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", numRuns)
	}

	fmt.Printf("benchmarking %d seeds from %d, size %d, %d ticks\n\n", numRuns, cfg.Seed, cfg.Size, cfg.Ticks)

	start := time.Now()
	results, err := sim.NewEnsemble(params, numRuns, cfg.Seed).Run(cmd.Context(), sim.Config{Size: cfg.Size, Ticks: cfg.Ticks})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN POP\tPEAK\tDENSITY\tSPAWN/TICK")
	series := make([][]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.0f\t%.3f\t%.3f\n",
			r.Seed,
			r.Metrics["population"],
			r.Metrics["peak_population"],
			r.Metrics["density"],
			r.Metrics["spawn_rate"],
		)
		series = append(series, r.Population())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	totalTicks := numRuns * cfg.Ticks
	fmt.Printf("\n%d ticks in %v (%.0f ticks/sec)\n\n", totalTicks, elapsed, float64(totalTicks)/elapsed.Seconds())

	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("active drips per seed"),
	))

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(cmd.Context(), sc, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSEED\tSIZE\tTICKS\tMEAN POP\tDENSITY\tRUN")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.1f\t%.3f\t%s\n",
			r.Step,
			r.Result.Seed,
			r.Result.Size,
			len(r.Result.Series),
			r.Result.Metrics["population"],
			r.Result.Metrics["density"],
			id,
		)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s, seed %d, size %d, %d ticks\n\n", sweepParam, cfg.Seed, cfg.Size, cfg.Ticks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tMEAN POP\tPEAK\tDENSITY\tSPAWN/TICK")
	density := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.0f\t%.3f\t%.3f\n", r.Value, r.MeanPopulation, r.PeakPopulation, r.Density, r.SpawnRate)
		density[i] = r.Density
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(density) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(density,
			asciigraph.Height(8),
			asciigraph.Caption("density by "+sweepParam),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tFPS\tCHARSET\tTHEME\tVELOCITY\tGLYPHS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%d-%d\t%d-%d\n",
			name, p.Size, p.FPS, p.Charset, p.Theme,
			p.Rain.ContentVelocity.Min, p.Rain.ContentVelocity.Max,
			p.Rain.GlyphCount.Min, p.Rain.GlyphCount.Max,
		)
	}
	return w.Flush()
}

func listCharsets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGLYPHS\tSAMPLE")
	for _, name := range glyph.Names() {
		cs, err := glyph.Lookup(name)
		if err != nil {
			return err
		}
		sample := cs
		if len(sample) > 24 {
			sample = sample[:24]
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(cs), strings.Join(sample, ""))
	}
	return w.Flush()
}
