package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/sdofsim/internal/analysis"
	"github.com/san-kum/sdofsim/internal/config"
	"github.com/san-kum/sdofsim/internal/dynamo"
	"github.com/san-kum/sdofsim/internal/experiment"
	"github.com/san-kum/sdofsim/internal/metrics"
	"github.com/san-kum/sdofsim/internal/optim"
	"github.com/san-kum/sdofsim/internal/physics"
	"github.com/san-kum/sdofsim/internal/spectrum"
	"github.com/san-kum/sdofsim/internal/storage"
	"github.com/san-kum/sdofsim/internal/viz"
	"github.com/san-kum/sdofsim/internal/wave"
)

var (
	dataDir    string
	configFile string
	preset     string
	scheme     string
	noSave     bool

	mass      float64
	weight    float64
	stiffness float64
	period    float64
	damping   float64
	dt        float64
	beta      float64
	steps     int

	waveFile   string
	waveScale  float64
	amplitude  float64
	wavePeriod float64
	pulse      bool

	periodLow     float64
	periodHigh    float64
	divisions     int
	referenceMass float64
	workers       int

	convMass      float64
	convWeight    float64
	convStiffness float64
	convPeriod    float64

	sineAmplitude float64
	sinePeriod    float64
	sineDt        float64
	sineSteps     int

	tuneMetric  string
	tuneDamping []float64
	tunePeriodN int

	channelNames []string
	pngPath      string
	showPlot     bool
	every        int
	outPath      string
	portrait     bool
	phase        []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sdofsim",
		Short:         "single-degree-of-freedom response and spectrum analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sdofsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate one oscillator against an excitation",
		Args:  cobra.NoArgs,
		RunE:  runAnalysis,
	}
	addSystemFlags(runCmd)
	addWaveFlags(runCmd)
	runCmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "integration scheme")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "print ascii plots of the response")
	runCmd.Flags().StringVar(&pngPath, "png", "", "save a chart of the response (.png, .svg, .pdf)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "sweep the natural period and build a response spectrum",
		Args:  cobra.NoArgs,
		RunE:  runSpectrum,
	}
	addSystemFlags(spectrumCmd)
	addWaveFlags(spectrumCmd)
	spectrumCmd.Flags().Float64Var(&periodLow, "from", config.DefaultPeriodLow, "shortest period (s)")
	spectrumCmd.Flags().Float64Var(&periodHigh, "to", config.DefaultPeriodHigh, "longest period (s)")
	spectrumCmd.Flags().IntVar(&divisions, "div", config.DefaultDivisions, "number of period intervals")
	spectrumCmd.Flags().Float64Var(&referenceMass, "ref-mass", spectrum.DefaultReferenceMass, "mass of the swept oscillator")
	spectrumCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0: one per CPU)")
	spectrumCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the spectrum")
	spectrumCmd.Flags().BoolVar(&showPlot, "plot", false, "print ascii plots of the spectrum")
	spectrumCmd.Flags().StringVar(&pngPath, "png", "", "save a chart of the spectrum (.png, .svg, .pdf)")
	spectrumCmd.Flags().IntVar(&every, "every", 10, "print every n-th period in the table")

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "convert between mass, stiffness and natural period",
	}
	convertCmd.PersistentFlags().Float64Var(&convMass, "mass", 0, "mass")
	convertCmd.PersistentFlags().Float64Var(&convWeight, "weight", 0, "weight (mass = weight / g)")
	convertCmd.PersistentFlags().Float64Var(&convStiffness, "stiffness", 0, "stiffness")
	convertCmd.PersistentFlags().Float64Var(&convPeriod, "period", 0, "natural period (s)")
	convertCmd.AddCommand(
		&cobra.Command{Use: "stiffness", Short: "k from mass and period", Args: cobra.NoArgs, RunE: convertStiffness},
		&cobra.Command{Use: "mass", Short: "m from stiffness and period", Args: cobra.NoArgs, RunE: convertMass},
		&cobra.Command{Use: "period", Short: "T, f and ω from mass and stiffness", Args: cobra.NoArgs, RunE: convertPeriod},
	)

	waveCmd := &cobra.Command{
		Use:   "wave",
		Short: "generate excitation records",
	}
	sineCmd := &cobra.Command{
		Use:   "sine",
		Short: "write a sine record as comma separated samples",
		Args:  cobra.NoArgs,
		RunE:  writeSine,
	}
	sineCmd.Flags().Float64Var(&sineAmplitude, "amplitude", config.DefaultAmplitude, "amplitude")
	sineCmd.Flags().Float64Var(&sinePeriod, "period", config.DefaultWavePeriod, "period (s)")
	sineCmd.Flags().Float64Var(&sineDt, "dt", config.DefaultDt, "sample interval (s)")
	sineCmd.Flags().IntVar(&sineSteps, "steps", config.DefaultSteps, "number of samples")
	sineCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")
	waveCmd.AddCommand(sineCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs and spectra",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot a stored run or spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotStored,
	}
	plotCmd.Flags().StringSliceVar(&channelNames, "channel", nil, "channels to plot (default: response channels)")
	plotCmd.Flags().StringVar(&pngPath, "png", "", "save a chart instead of printing")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [id]",
		Short: "export a stored run or spectrum to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [id]",
		Short: "fourier and energy analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().BoolVar(&portrait, "portrait", false, "print the restoring force loop")
	analyzeCmd.Flags().StringSliceVar(&phase, "phase", nil, "print a portrait of two channels, e.g. displacement,velocity")

	compareCmd := &cobra.Command{
		Use:   "compare [scheme...]",
		Short: "run several schemes on the same input",
		RunE:  compareSchemes,
	}
	addSystemFlags(compareCmd)
	addWaveFlags(compareCmd)
	compareCmd.Flags().BoolVar(&showPlot, "plot", false, "overlay the displacement histories")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search period and damping for the smallest response metric",
		Args:  cobra.NoArgs,
		RunE:  tuneSystem,
	}
	addSystemFlags(tuneCmd)
	addWaveFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&scheme, "scheme", config.DefaultScheme, "integration scheme")
	tuneCmd.Flags().Float64Var(&periodLow, "from", config.DefaultPeriodLow, "shortest period (s)")
	tuneCmd.Flags().Float64Var(&periodHigh, "to", config.DefaultPeriodHigh, "longest period (s)")
	tuneCmd.Flags().IntVar(&tunePeriodN, "periods", 20, "number of periods to try")
	tuneCmd.Flags().Float64SliceVar(&tuneDamping, "dampings", []float64{0.02, 0.05, 0.1, 0.2}, "damping ratios to try")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "peak_displacement", "metric to minimize")

	viewCmd := &cobra.Command{
		Use:   "view [id]",
		Short: "browse a stored run or spectrum interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  viewStored,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [run|spectrum]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []string{"run", "spectrum"}
			if len(args) > 0 {
				kinds = args
			}
			for _, kind := range kinds {
				presets := config.ListPresets(kind)
				if len(presets) == 0 {
					fmt.Printf("no presets for: %s\n", kind)
					continue
				}
				fmt.Printf("presets for %s:\n", kind)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, spectrumCmd, convertCmd, waveCmd, listCmd, plotCmd, exportJSONCmd, analyzeCmd, compareCmd, tuneCmd, viewCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, viz.Failure.Render("error: ")+err.Error())
		if errors.Is(err, dynamo.ErrInvalidArgument) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "mass")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight, replaces --mass (mass = weight / g)")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "stiffness")
	cmd.Flags().Float64Var(&period, "period", 0, "natural period, replaces --stiffness")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping ratio")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (s)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "newmark beta")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
}

func addWaveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&waveFile, "wave", "", "excitation file (comma separated samples)")
	cmd.Flags().Float64Var(&waveScale, "scale", 1.0, "factor applied to the excitation")
	cmd.Flags().Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "sine amplitude")
	cmd.Flags().Float64Var(&wavePeriod, "wave-period", config.DefaultWavePeriod, "sine period (s)")
	cmd.Flags().BoolVar(&pulse, "pulse", false, "single pulse of --amplitude instead of a sine")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(kind, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		c := *cfg
		cfg = &c
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}

	set("scheme", func() { cfg.Scheme = scheme })
	set("mass", func() { cfg.System.Mass = mass })
	set("weight", func() { cfg.System.Weight = weight })
	set("stiffness", func() { cfg.System.Stiffness = stiffness })
	set("period", func() { cfg.System.Period = period })
	set("damping", func() { cfg.System.Damping = damping })
	set("dt", func() { cfg.System.Dt = dt })
	set("beta", func() { cfg.System.Beta = beta })
	set("steps", func() { cfg.System.Steps = steps })
	set("wave", func() { cfg.Wave.File = waveFile })
	set("scale", func() { cfg.Wave.Scale = waveScale })
	set("amplitude", func() { cfg.Wave.Amplitude = amplitude })
	set("wave-period", func() { cfg.Wave.Period = wavePeriod })
	set("pulse", func() { cfg.Wave.Pulse = pulse })
	set("from", func() { cfg.Spectrum.PeriodLow = periodLow })
	set("to", func() { cfg.Spectrum.PeriodHigh = periodHigh })
	set("div", func() { cfg.Spectrum.Divisions = divisions })
	set("ref-mass", func() { cfg.Spectrum.ReferenceMass = referenceMass })
	set("workers", func() { cfg.Spectrum.Workers = workers })

	return cfg, nil
}

func waveSource(cfg *config.Config) string {
	switch {
	case cfg.Wave.File != "":
		return cfg.Wave.File
	case cfg.Wave.Pulse:
		return fmt.Sprintf("pulse(%g)", cfg.Wave.Amplitude)
	default:
		return fmt.Sprintf("sine(%g, %gs)", cfg.Wave.Amplitude, cfg.Wave.Period)
	}
}

func warn(format string, args ...any) {
	fmt.Fprintln(os.Stderr, viz.Warning.Render("warning: ")+fmt.Sprintf(format, args...))
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "run")
	if err != nil {
		return err
	}

	p, err := cfg.Params()
	if err != nil {
		return err
	}
	excitation, err := cfg.Excitation()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	solver, err := registry.GetScheme(cfg.Scheme)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Scheme: cfg.Scheme, Params: p, Excitation: excitation})
	if err := exp.Setup(solver, registry.DefaultMetrics()); err != nil {
		return err
	}

	fmt.Printf("running %s on %s...\n", viz.Title.Render(cfg.Scheme), waveSource(cfg))
	out, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	natural, _ := physics.NaturalPeriod(p.Mass, p.Stiffness)
	fmt.Printf("completed in %v\n", out.Elapsed)
	fmt.Printf("m=%g k=%g h=%g dt=%g β=%g steps=%d T=%.4gs\n", p.Mass, p.Stiffness, p.Damping, p.Dt, p.Beta, p.Steps, natural)
	if out.Degeneracy != nil && errors.Is(out.Degeneracy, dynamo.ErrNumericalDegeneracy) {
		warn("%v; results are kept for inspection", out.Degeneracy)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveRun(cfg.Scheme, waveSource(cfg), out.Result, excitation, out.Metrics)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	printMetrics(out.Metrics)

	if showPlot {
		fmt.Println()
		for _, s := range viz.HistorySeries(out.Result, []dynamo.Channel{dynamo.Acceleration, dynamo.Velocity, dynamo.Displacement}) {
			fmt.Println(viz.ASCII(s, 80, 10))
			fmt.Println()
		}
	}
	if pngPath != "" {
		if err := viz.SaveHistoryPNG(pngPath, out.Result, []dynamo.Channel{dynamo.Displacement}); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", pngPath)
	}

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %s\n", viz.MetricLabel.Render(fmt.Sprintf("%-26s", name)), viz.MetricValue.Render(fmt.Sprintf("%.6g", m[name])))
	}
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "spectrum")
	if err != nil {
		return err
	}

	excitation, err := cfg.Excitation()
	if err != nil {
		return err
	}

	sc := cfg.SweepConfig()
	fmt.Printf("sweeping %d periods in [%g, %g]s on %s...\n", sc.Divisions+1, sc.PeriodLow, sc.PeriodHigh, waveSource(cfg))
	spec, err := spectrum.Sweep(cmd.Context(), sc, excitation)
	if errors.Is(err, dynamo.ErrEmptyRange) {
		warn("empty spectrum (%d periods)", spec.Len())
		return err
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "T (s)\tSa\tSv\tSd\tEo\tpSv\tpSa\t")
	psv, psa := spec.PseudoVelocity(), spec.PseudoAcceleration()
	step := max(every, 1)
	for i := 0; i < spec.Len(); i++ {
		if i%step != 0 && i != spec.Len()-1 {
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			spec.Periods[i], spec.Acceleration[i], spec.Velocity[i], spec.Displacement[i], spec.Energy[i], psv[i], psa[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\npeaks:")
	for _, c := range spectrum.Channels {
		if T, v, ok := spec.Peak(c); ok {
			fmt.Printf("  %s %s at T=%.3fs\n", viz.MetricLabel.Render(fmt.Sprintf("%-14s", c)), viz.MetricValue.Render(fmt.Sprintf("%.6g", v)), T)
		}
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.SaveSpectrum(waveSource(cfg), sc, spec)
		if err != nil {
			return err
		}
		fmt.Printf("\nspectrum id: %s\n", id)
	}

	if showPlot {
		fmt.Println()
		for _, s := range viz.SpectrumSeries(spec, spectrum.Channels) {
			fmt.Println(viz.ASCII(s, 80, 10))
			fmt.Println()
		}
	}
	if pngPath != "" {
		if err := viz.SaveSpectrumPNG(pngPath, spec, []dynamo.Channel{dynamo.Acceleration}); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", pngPath)
	}

	return nil
}

func convertMassInput() (float64, error) {
	if convWeight != 0 {
		return physics.MassFromWeight(convWeight)
	}
	return convMass, nil
}

func convertStiffness(cmd *cobra.Command, args []string) error {
	m, err := convertMassInput()
	if err != nil {
		return err
	}
	k, err := physics.StiffnessFromPeriod(m, convPeriod)
	if err != nil {
		return err
	}
	fmt.Printf("k = %.10g\n", k)
	return nil
}

func convertMass(cmd *cobra.Command, args []string) error {
	m, err := physics.MassFromPeriod(convStiffness, convPeriod)
	if err != nil {
		return err
	}
	fmt.Printf("m = %.10g\n", m)
	fmt.Printf("W = %.10g\n", m*physics.StandardGravity)
	return nil
}

func convertPeriod(cmd *cobra.Command, args []string) error {
	m, err := convertMassInput()
	if err != nil {
		return err
	}
	T, err := physics.NaturalPeriod(m, convStiffness)
	if err != nil {
		return err
	}
	f, err := physics.NaturalFrequency(m, convStiffness)
	if err != nil {
		return err
	}
	omega, err := physics.AngularFrequency(m, convStiffness)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "T\t%.10g\ts\n", T)
	fmt.Fprintf(w, "f\t%.10g\tHz\n", f)
	fmt.Fprintf(w, "ω\t%.10g\trad/s\n", omega)
	return w.Flush()
}

func writeSine(cmd *cobra.Command, args []string) error {
	samples, err := wave.Sine(sineAmplitude, sinePeriod, sineDt, sineSteps)
	if err != nil {
		return err
	}
	text := wave.Format(samples) + "\n"
	if outPath == "-" {
		_, err := fmt.Print(text)
		return err
	}
	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), outPath)
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
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSCHEME\tSOURCE\tSTEPS\tDT")

	for _, run := range runs {
		s := run.Scheme
		if s == "" {
			s = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.4fs\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			s,
			run.Source,
			run.Params.Steps,
			run.Params.Dt,
		)
	}

	return w.Flush()
}

// storedSeries loads a run or a spectrum as plottable series.
func storedSeries(st *storage.Store, id string, names []string) (*storage.RunMetadata, []viz.Series, string, error) {
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, "", err
	}

	channels, err := parseChannels(names)
	if err != nil {
		return nil, nil, "", err
	}

	if meta.Kind == storage.KindSpectrum {
		spec, err := st.LoadSpectrum(id)
		if err != nil {
			return nil, nil, "", err
		}
		if len(names) == 0 {
			channels = spectrum.Channels
		}
		series := viz.SpectrumSeries(spec, channels)
		if len(names) == 0 {
			series = append(series,
				viz.Series{Name: "pseudo_velocity", X: spec.Periods, Y: spec.PseudoVelocity()},
				viz.Series{Name: "pseudo_acceleration", X: spec.Periods, Y: spec.PseudoAcceleration()},
			)
		}
		return meta, series, "period (s)", nil
	}

	res, excitation, err := st.LoadHistory(id)
	if err != nil {
		return nil, nil, "", err
	}
	if len(names) == 0 {
		channels = dynamo.Channels
	}
	series := viz.HistorySeries(res, channels)
	if len(names) == 0 {
		series = append([]viz.Series{{Name: "excitation", X: res.Times(), Y: excitation}}, series...)
	}
	return meta, series, "time (s)", nil
}

func parseChannels(names []string) ([]dynamo.Channel, error) {
	channels := make([]dynamo.Channel, 0, len(names))
	for _, name := range names {
		c, err := dynamo.ParseChannel(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, nil
}

func plotStored(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, xLabel, err := storedSeries(st, args[0], channelNames)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if pngPath != "" {
		if err := viz.SavePNG(pngPath, meta.ID, xLabel, series); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", pngPath)
		return nil
	}

	fmt.Printf("%s: %s\n", meta.Kind, meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("samples: %d\n\n", len(series[0].Y))
	for _, s := range series {
		fmt.Println(viz.ASCII(s, 80, 10))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if meta.Kind == storage.KindSpectrum {
		spec, err := st.LoadSpectrum(runID)
		if err != nil {
			return err
		}
		cfg := spectrum.DefaultConfig()
		if meta.Spectrum != nil {
			cfg = *meta.Spectrum
		}
		return storage.ExportSpectrumJSON(outPath, cfg, spec)
	}

	res, excitation, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(outPath, meta.Scheme, res, excitation, meta.Metrics)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	res, excitation, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	fa, err := analysis.FourierAmplitude(excitation, res.Params.Dt)
	if err != nil {
		return err
	}
	T, err := physics.NaturalPeriod(res.Params.Mass, res.Params.Stiffness)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n\n", runID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "natural period\t%.4f s\n", T)
	fmt.Fprintf(w, "predominant period\t%.4f s\n", fa.PredominantPeriod())
	fmt.Fprintf(w, "predominant frequency\t%.4f Hz\n", fa.PredominantFrequency())
	if T > 0 && fa.PredominantPeriod() > 0 {
		fmt.Fprintf(w, "tuning ratio T/Tg\t%.4f\n", T/fa.PredominantPeriod())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	printMetrics(metrics.Evaluate(res, metrics.Defaults()))

	n := len(fa.Amplitudes)
	plotN := min(n, 200)
	if plotN > 1 {
		fmt.Println()
		fmt.Println(viz.ASCII(viz.Series{
			Name: "fourier amplitude",
			X:    fa.Frequencies[:plotN],
			Y:    fa.Amplitudes[:plotN],
		}, 80, 12))
	}

	if portrait {
		fmt.Println("\nrestoring force vs displacement:")
		fmt.Println(analysis.RestoringForce(res).ToASCII(60, 20))
	}

	if len(phase) > 0 {
		if len(phase) != 2 {
			return &dynamo.ArgumentError{Field: "phase", Value: strings.Join(phase, ","), Reason: "need two channels"}
		}
		pp, err := analysis.PortraitByName(res, strings.TrimSpace(phase[0]), strings.TrimSpace(phase[1]))
		if err != nil {
			return err
		}
		fmt.Printf("\n%s vs %s:\n", pp.YLabel, pp.XLabel)
		fmt.Println(pp.ToASCII(60, 20))
	}

	return nil
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "run")
	if err != nil {
		return err
	}

	p, err := cfg.Params()
	if err != nil {
		return err
	}
	excitation, err := cfg.Excitation()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	schemes := args
	if len(schemes) == 0 {
		schemes = registry.ListSchemes()
	}

	outcomes, err := experiment.Compare(cmd.Context(), registry, schemes, p, excitation)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tPEAK DISP\tPEAK VEL\tPEAK ACC\tENERGY BAL\tTIME")
	for _, out := range outcomes {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.3g\t%v\n",
			out.Scheme,
			out.Metrics["peak_displacement"],
			out.Metrics["peak_velocity"],
			out.Metrics["peak_acceleration"],
			out.Metrics["energy_balance"],
			out.Elapsed,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, out := range outcomes {
		if out.Degeneracy != nil {
			warn("%s: %v", out.Scheme, out.Degeneracy)
		}
	}

	if showPlot {
		series := make([]viz.Series, 0, len(outcomes))
		for _, out := range outcomes {
			series = append(series, viz.Series{Name: out.Scheme, X: out.Result.Times(), Y: out.Result.Displacement})
		}
		fmt.Println()
		fmt.Println(viz.ASCIIOverlay(series, 80, 14, "displacement: "+strings.Join(schemes, ", ")))
	}

	return nil
}

func tuneSystem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, "run")
	if err != nil {
		return err
	}

	base, err := cfg.Params()
	if err != nil {
		return err
	}
	excitation, err := cfg.Excitation()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	solver, err := registry.GetScheme(cfg.Scheme)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		p := base
		p.Damping = params["damping"]
		k, err := physics.StiffnessFromPeriod(p.Mass, params["period"])
		if err != nil {
			return nil, err
		}
		p.Stiffness = k

		exp := experiment.New(experiment.Config{Scheme: cfg.Scheme, Params: p, Excitation: excitation})
		if err := exp.Setup(solver, registry.DefaultMetrics()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	periods := optim.Linspace(periodLow, periodHigh, tunePeriodN)
	g := optim.NewGridSearch([]string{"period", "damping"}, [][]float64{periods, tuneDamping})

	fmt.Printf("searching %d combinations for the smallest %s...\n", len(periods)*len(tuneDamping), tuneMetric)
	best, val, err := g.Search(cmd.Context(), build, tuneMetric)
	if err != nil {
		return err
	}

	k, _ := physics.StiffnessFromPeriod(base.Mass, best["period"])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "period\t%.4f s\n", best["period"])
	fmt.Fprintf(w, "stiffness\t%.6g\n", k)
	fmt.Fprintf(w, "damping\t%.4f\n", best["damping"])
	fmt.Fprintf(w, "%s\t%.6g\n", tuneMetric, val)
	return w.Flush()
}

func viewStored(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, series, xLabel, err := storedSeries(st, args[0], nil)
	if err != nil {
		return err
	}
	return viz.RunViewer(fmt.Sprintf("%s %s", meta.Kind, meta.ID), xLabel, series)
}
