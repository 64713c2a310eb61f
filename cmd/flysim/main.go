package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/flysim/internal/analysis"
	"github.com/san-kum/flysim/internal/automation"
	"github.com/san-kum/flysim/internal/config"
	"github.com/san-kum/flysim/internal/control"
	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/export"
	"github.com/san-kum/flysim/internal/gui"
	"github.com/san-kum/flysim/internal/logging"
	"github.com/san-kum/flysim/internal/sim"
	"github.com/san-kum/flysim/internal/storage"
	"github.com/san-kum/flysim/internal/viz"
)

const defaultConfigFile = "flysim.yaml"

var (
	configFile string
	dataDir    string
	logLevel   string
	logFile    string

	dt         float64
	duration   float64
	scriptFile string
	heldInputs []string
	params     []string
	noSave     bool

	frameRate int
	theme     string

	vehicleIdx int
	channel    string
	outFile    string
	view       string
	svgWidth   int
	svgHeight  int

	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	sweepInputs []string

	cfg *config.Config
	log zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flysim",
		Short: "rigid-body flight simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, os.Stderr)
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, default ./"+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")

	guiCmd := &cobra.Command{
		Use:   "gui [vehicle...]",
		Short: "fly vehicles in the 3D window",
		RunE:  runGUI,
	}

	flyCmd := &cobra.Command{
		Use:   "fly [vehicle...]",
		Short: "run a headless flight and store it",
		RunE:  runFly,
	}
	flyCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (default from config)")
	flyCmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (default from config)")
	flyCmd.Flags().StringVar(&scriptFile, "script", "", "flight script (yaml)")
	flyCmd.Flags().StringSliceVar(&heldInputs, "input", nil, "controls held for the whole flight, e.g. throttle_up,yaw_right")
	flyCmd.Flags().StringArrayVar(&params, "param", nil, "vehicle parameter override, e.g. mass=2")
	flyCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [vehicle...]",
		Short: "fly in the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, io.Discard)
		},
		RunE: runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "hud", "colour theme (hud, night, mono)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and attitude of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&vehicleIdx, "vehicle", 0, "vehicle index")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and dominant frequencies",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&vehicleIdx, "vehicle", 0, "vehicle index")
	analyzeCmd.Flags().StringVar(&channel, "channel", "", "single channel ("+strings.Join(analysis.Channels(), ", ")+")")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the flight paths of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&view, "view", "top", "projection (top, side)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")
	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in vehicles",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [vehicle]",
		Short: "benchmark the integrator",
		Args:  cobra.ExactArgs(1),
		RunE:  benchVehicle,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [vehicle]",
		Short: "fly repeatedly while stepping one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "mass", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 5, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().StringSliceVar(&sweepInputs, "input", []string{"throttle_up"}, "controls held for each flight")
	sweepCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (default from config)")
	sweepCmd.Flags().Float64Var(&duration, "time", 0, "duration in seconds (default from config)")

	rootCmd.AddCommand(guiCmd, flyCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, benchCmd, sweepCmd)

	return rootCmd
}

// setup loads the config file and builds the logger. Flags override the
// config.
func setup(cmd *cobra.Command, console io.Writer) error {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg = config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	var file io.Writer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		file = f
	}
	log = logging.New(cfg.LogLevel, console, file)
	log.Debug().Str("config", path).Str("data", cfg.DataDir).Msg("configured")
	return nil
}

// specs resolves the vehicles named on the command line, falling back to
// the config file's list.
func specs(args []string) ([]*config.VehicleSpec, error) {
	if len(args) == 0 {
		return cfg.LoadVehicles()
	}
	out := make([]*config.VehicleSpec, 0, len(args))
	for _, name := range args {
		spec, err := config.ResolveSpec(name)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("param %q: want name=value", kv)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", kv, err)
		}
		out[strings.TrimSpace(k)] = f
	}
	return out, nil
}

func simConfig() dynamo.Config {
	c := dynamo.Config{Dt: cfg.Sim.Dt, Duration: cfg.Sim.Duration}
	if dt > 0 {
		c.Dt = dt
	}
	if duration > 0 {
		c.Duration = duration
	}
	return c
}

func runGUI(cmd *cobra.Command, args []string) error {
	vehicles, err := specs(args)
	if err != nil {
		return err
	}
	session, err := automation.NewSession(vehicles, nil, log)
	if err != nil {
		return err
	}
	return gui.NewApplication(cfg.Window, session, log).Run()
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		vehicles, err := cfg.LoadVehicles()
		if err != nil {
			return err
		}
		return viz.RunPicker(vehicles, frameRate, theme, log)
	}

	vehicles, err := specs(args)
	if err != nil {
		return err
	}
	session, err := automation.NewSession(vehicles, nil, log)
	if err != nil {
		return err
	}
	return viz.RunLive(session, frameRate, theme)
}

func runFly(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	overrides, err := parseParams(params)
	if err != nil {
		return err
	}

	script := &automation.Script{Name: "manual"}
	if path := scriptFile; path != "" || cfg.Sim.Script != "" {
		if path == "" {
			path = cfg.Sim.Script
		}
		if script, err = automation.LoadScript(path); err != nil {
			return err
		}
	}
	if script.Params == nil {
		script.Params = map[string]float64{}
	}
	for k, v := range overrides {
		script.Params[k] = v
	}

	if len(args) > 0 {
		script.Vehicles = args
	} else if len(script.Vehicles) == 0 {
		script.Vehicles = cfg.Vehicles
	}

	if len(heldInputs) > 0 {
		script.Hold(heldInputs, script.Config(simConfig()).Duration)
	}
	if err := script.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runCfg := script.Config(simConfig())
	fmt.Fprintf(out, "flying %s for %.1fs (dt=%.4f)...\n", strings.Join(script.Vehicles, ", "), runCfg.Duration, runCfg.Dt)
	start := time.Now()

	result, err := automation.RunScript(ctx, script, nil, runCfg, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		log.Warn().Err(e).Msg("invalid sample")
	}

	for i, name := range result.Vehicles {
		final := result.Final(i)
		fmt.Fprintf(out, "\n%s\n  position: %8.2f %8.2f %8.2f\n  euler:    %8.2f %8.2f %8.2f\n",
			name, final.Position[0], final.Position[1], final.Position[2],
			final.Euler[0], final.Euler[1], final.Euler[2])
	}
	fmt.Fprintln(out, "\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Fprintf(out, "  %s: %.6f\n", name, val)
	}

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{Dt: runCfg.Dt, Duration: runCfg.Duration, Script: script.Name}, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVEHICLES\tTIME\tDURATION\tDT\tSCRIPT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\n",
			run.ID,
			strings.Join(run.Vehicles, ","),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Script,
		)
	}
	return w.Flush()
}

// loadRun rebuilds a stored run as a result.
func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &sim.Result{
		Vehicles:   meta.Vehicles,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
		Samples:    make([][]dynamo.Sample, len(meta.Vehicles)),
	}
	for i := range meta.Vehicles {
		if result.Samples[i], err = st.LoadStates(runID, i); err != nil {
			return nil, nil, err
		}
	}
	if len(result.Samples) > 0 {
		for _, s := range result.Samples[0] {
			result.Times = append(result.Times, s.Time)
		}
	}
	return meta, result, nil
}

func vehicleSamples(result *sim.Result, idx int) ([]dynamo.Sample, error) {
	if idx < 0 || idx >= len(result.Samples) {
		return nil, fmt.Errorf("no vehicle %d (run has %d)", idx, len(result.Samples))
	}
	if len(result.Samples[idx]) == 0 {
		return nil, errors.New("no data to plot")
	}
	return result.Samples[idx], nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := vehicleSamples(result, vehicleIdx)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("vehicle: %s\n", meta.Vehicles[vehicleIdx])
	fmt.Printf("samples: %d\n\n", len(samples))

	captions := map[string]string{
		"x": "x position", "y": "altitude", "z": "z position",
		"roll": "roll (deg)", "pitch": "pitch (deg)", "yaw": "yaw (deg)",
	}
	for _, ch := range []string{"x", "y", "z", "roll", "pitch", "yaw"} {
		data, err := analysis.Series(samples, ch)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[ch]),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := vehicleSamples(result, vehicleIdx)
	if err != nil {
		return err
	}

	channels := analysis.Channels()
	if channel != "" {
		channels = []string{channel}
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("vehicle: %s\n\n", meta.Vehicles[vehicleIdx])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tMIN\tMAX\tMEAN\tRMS\tDOMINANT")
	for _, ch := range channels {
		r, err := analysis.Analyze(samples, ch, meta.Dt)
		if err != nil {
			return err
		}
		dominant := "-"
		if r.DominantHz > 0 {
			dominant = fmt.Sprintf("%.3f hz", r.DominantHz)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%s\n", r.Channel, r.Min, r.Max, r.Mean, r.RMS, dominant)
	}
	return w.Flush()
}

func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.ExportJSON(out, meta.Dt, meta.Duration, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.WriteCSV(out, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	v, err := export.ParseView(view)
	if err != nil {
		return err
	}
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg := export.FlightToSVG(result, v, svgWidth, svgHeight)
	if svg == "" {
		return errors.New("no flight path to draw")
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, svg+"\n")
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tMASS\tTHRUST\tMOMENT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.1f\t±%.0f\t±%.0f\n", p.Name, p.Kind, p.Mass, p.Thrust.Max, p.Moment.Max)
	}
	return w.Flush()
}

func benchVehicle(cmd *cobra.Command, args []string) error {
	spec, err := config.ResolveSpec(args[0])
	if err != nil {
		return err
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 1.0 / 60}
	in := control.ThrottleUp | control.RollUp | control.YawRight

	fmt.Printf("benchmarking %s\n\n", spec.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	quiet := log.Level(zerolog.WarnLevel)
	for _, dur := range durations {
		for _, dt := range dts {
			session, err := automation.NewSession([]*config.VehicleSpec{spec}, nil, quiet)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := session.Run(context.Background(), dynamo.Config{Dt: dt, Duration: dur}, sim.Constant(in))
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, dt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	spec, err := config.ResolveSpec(args[0])
	if err != nil {
		return err
	}
	in, err := control.ParseInput(sweepInputs...)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Spec:      spec,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Input:     in,
		Config:    simConfig(),
	}
	results, err := automation.RunSweep(context.Background(), sweep, log.Level(zerolog.WarnLevel))
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s of %s holding %s\n\n", sweepParam, spec.Name, in)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(sweepParam)+"\tX\tY\tZ\tROLL\tPITCH\tYAW\tENERGY")
	for _, r := range results {
		p, e := r.FinalPosition, r.FinalEuler
		fmt.Fprintf(w, "%.3f\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\t%.1f\t%.3f\n",
			r.ParamValue, p[0], p[1], p[2], e[0], e[1], e[2], r.Metrics["kinetic_energy"])
	}
	return w.Flush()
}
