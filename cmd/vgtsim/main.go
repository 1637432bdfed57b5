package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/config"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/dispersion"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/export"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/field"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/grid"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/storage"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/sweep"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/tui"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/viz"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"
)

var (
	dataDir    string
	configFile string
	preset     string
	// shared run parameters
	length    float64
	points    int
	lx, ly    float64
	nx, ny    int
	waveSpeed float64
	omega0    float64
	cfl       float64
	steps     int
	saveEvery int
	initial   string
	width     float64
	amplitude float64
	radius    float64
	noSave    bool
	// sweep
	omegaList string
	// export
	outDir string
	// live
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vgtsim",
		Short: "vibrational field simulation and dispersion verification",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vgtsim", "data directory")

	run1dCmd := &cobra.Command{
		Use:   "run1d",
		Short: "run a 1D Klein-Gordon simulation",
		RunE:  run1D,
	}
	run1dCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	run1dCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "grid points")
	run1dCmd.Flags().Float64Var(&waveSpeed, "c", config.DefaultWaveSpeed, "wave speed")
	run1dCmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "resonant frequency")
	run1dCmd.Flags().Float64Var(&cfl, "cfl", config.DefaultCFL1D, "CFL factor")
	run1dCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time steps")
	run1dCmd.Flags().IntVar(&saveEvery, "save-every", config.DefaultSaveEvery, "snapshot stride")
	run1dCmd.Flags().Float64Var(&width, "width", 0.1, "pulse width")
	run1dCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	run1dCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	run1dCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")

	run2dCmd := &cobra.Command{
		Use:   "run2d",
		Short: "run a 2D Klein-Gordon simulation",
		RunE:  run2D,
	}
	run2dCmd.Flags().Float64Var(&lx, "lx", config.DefaultExtent2D, "domain extent x")
	run2dCmd.Flags().Float64Var(&ly, "ly", config.DefaultExtent2D, "domain extent y")
	run2dCmd.Flags().IntVar(&nx, "nx", config.DefaultPoints2D, "grid points x")
	run2dCmd.Flags().IntVar(&ny, "ny", config.DefaultPoints2D, "grid points y")
	run2dCmd.Flags().Float64Var(&waveSpeed, "c", config.DefaultWaveSpeed, "wave speed")
	run2dCmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "resonant frequency")
	run2dCmd.Flags().Float64Var(&cfl, "cfl", config.DefaultCFL2D, "CFL factor")
	run2dCmd.Flags().IntVar(&steps, "steps", 150, "time steps")
	run2dCmd.Flags().IntVar(&saveEvery, "save-every", 5, "snapshot stride")
	run2dCmd.Flags().StringVar(&initial, "initial", field.InitialGaussian, "initial condition (gaussian|ring|interference)")
	run2dCmd.Flags().Float64Var(&width, "width", 1.0, "pulse width")
	run2dCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "pulse amplitude")
	run2dCmd.Flags().Float64Var(&radius, "radius", 3.0, "ring radius")
	run2dCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	run2dCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	run2dCmd.Flags().StringVar(&preset, "preset", "", "preset configuration")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep omega0 values in parallel (1D)",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&omegaList, "omega0s", "0.5,1.0,2.0,4.0", "comma-separated omega0 values")
	sweepCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	sweepCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "grid points")
	sweepCmd.Flags().Float64Var(&waveSpeed, "c", config.DefaultWaveSpeed, "wave speed")
	sweepCmd.Flags().Float64Var(&cfl, "cfl", config.DefaultCFL1D, "CFL factor")
	sweepCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time steps")
	sweepCmd.Flags().Float64Var(&width, "width", 0.1, "pulse width")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "dispersion, stability and decay analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "terminal plots of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "write PNG charts for a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outDir, "out", "charts", "output directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a 1D simulation evolve in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length")
	liveCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "grid points")
	liveCmd.Flags().Float64Var(&waveSpeed, "c", config.DefaultWaveSpeed, "wave speed")
	liveCmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "resonant frequency")
	liveCmd.Flags().Float64Var(&cfl, "cfl", config.DefaultCFL1D, "CFL factor")
	liveCmd.Flags().IntVar(&steps, "steps", 2000, "time steps")
	liveCmd.Flags().Float64Var(&width, "width", 0.1, "pulse width")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(run1dCmd, run2dCmd, sweepCmd, listCmd, analyzeCmd, plotCmd, exportCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// effectiveConfig merges preset/config-file values with command-line flags;
// flags win only when the run came without a config source.
func effectiveConfig(mode string) (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}

	cfg := config.DefaultConfig()
	cfg.Mode = mode
	cfg.Grid = config.GridConfig{Length: length, Points: points, Lx: lx, Ly: ly, Nx: nx, Ny: ny}
	cfg.Physics = config.PhysicsConfig{WaveSpeed: waveSpeed, Omega0: omega0}
	cfg.Run = config.RunConfig{CFL: cfl, Steps: steps, SaveEvery: saveEvery}
	cfg.Pulse = config.PulseConfig{Type: initial, Width: width, Amplitude: amplitude, Radius: radius}
	if cfg.Pulse.Type == "" {
		cfg.Pulse.Type = field.InitialGaussian
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func run1D(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig("1d")
	if err != nil {
		return err
	}

	g, err := grid.New1D(cfg.Grid.Length, cfg.Grid.Points)
	if err != nil {
		return err
	}
	phys, err := grid.NewPhysics(cfg.Physics.WaveSpeed, cfg.Physics.Omega0)
	if err != nil {
		return err
	}

	pulse := field.Gaussian1D(g, g.Length/2, cfg.Pulse.Width, cfg.Pulse.Amplitude)
	eng, err := wave.NewEngine1D(g, phys, wave.Policy{CFL: cfg.Run.CFL}, pulse)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println(viz.Header("1D simulation"))
	fmt.Printf("L=%.3g  Nx=%d  c=%.3g  omega0=%.3g  dt=%.5g  steps=%d\n\n",
		g.Length, g.Points, phys.C, phys.Omega0, eng.Dt(), cfg.Run.Steps)

	res, err := eng.Run(ctx, cfg.Run.Steps, cfg.Run.SaveEvery)
	if err != nil {
		return err
	}

	fmt.Println(viz.Series("max |phi| per step", res.Amplitude, 10))
	fmt.Println()

	bundle := dispersion.FromRun1D(g, phys, cfg.Pulse.Width, res)
	k, mag, _, err := bundle.VerifyDispersion()
	if err != nil {
		return err
	}
	fmt.Println(viz.Spectrum(k, mag))

	return persist(bundle)
}

func run2D(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig("2d")
	if err != nil {
		return err
	}

	g, err := grid.New2D(cfg.Grid.Lx, cfg.Grid.Ly, cfg.Grid.Nx, cfg.Grid.Ny)
	if err != nil {
		return err
	}
	phys, err := grid.NewPhysics(cfg.Physics.WaveSpeed, cfg.Physics.Omega0)
	if err != nil {
		return err
	}

	pulse, err := field.Initial2D(g, cfg.Pulse.Type, field.Pulse{
		CenterX:   cfg.Pulse.CenterX,
		CenterY:   cfg.Pulse.CenterY,
		Width:     cfg.Pulse.Width,
		Amplitude: cfg.Pulse.Amplitude,
		Radius:    cfg.Pulse.Radius,
	})
	if err != nil {
		return err
	}
	eng, err := wave.NewEngine2D(g, phys, wave.Policy{CFL: cfg.Run.CFL}, pulse)
	if err != nil {
		return err
	}

	if verdict := dispersion.ClassifyCFL(cfg.Run.CFL); verdict == dispersion.Unstable {
		fmt.Println(viz.UnstableStyle.Render(
			fmt.Sprintf("warning: CFL factor %.3g is at or above the 2D limit %.4f; the run will diverge",
				cfg.Run.CFL, wave.StableLimit2D)))
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println(viz.Header("2D simulation"))
	fmt.Printf("Lx=%.3g Ly=%.3g  %dx%d  c=%.3g  omega0=%.3g  dt=%.5g  initial=%s\n\n",
		g.Lx, g.Ly, g.Nx, g.Ny, phys.C, phys.Omega0, eng.Dt(), cfg.Pulse.Type)

	res, err := eng.Run(ctx, cfg.Run.Steps, cfg.Run.SaveEvery)
	if err != nil {
		return err
	}

	fmt.Println(viz.Series("total energy at saved snapshots", res.Energy, 10))
	drift := relativeDrift(res.Energy)
	fmt.Printf("%s %.3f%%\n\n", viz.LabelStyle.Render("max relative energy drift:"), 100*drift)

	return persist(dispersion.FromRun2D(g, phys, cfg.Pulse.Width, res))
}

func relativeDrift(energy []float64) float64 {
	if len(energy) == 0 || energy[0] == 0 {
		return 0
	}
	maxDrift := 0.0
	for _, e := range energy {
		d := (e - energy[0]) / energy[0]
		if d < 0 {
			d = -d
		}
		if d > maxDrift {
			maxDrift = d
		}
	}
	return maxDrift
}

func persist(bundle *dispersion.RunBundle) error {
	if noSave {
		return nil
	}
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(bundle)
	if err != nil {
		return err
	}
	fmt.Println(viz.LabelStyle.Render("saved run " + runID))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	omega0s, err := parseFloats(omegaList)
	if err != nil {
		return err
	}

	g, err := grid.New1D(length, points)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := sweep.Run1D(ctx, sweep.Spec{
		Grid:       g,
		C:          waveSpeed,
		Omega0s:    omega0s,
		CFL:        cfl,
		PulseWidth: width,
		Steps:      steps,
		SaveEvery:  config.DefaultSaveEvery,
	})
	if err != nil {
		return err
	}

	fmt.Println(viz.Header("omega0 sweep"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "omega0\tk*\tomega(k*)\tfinal max|phi|")
	for _, p := range results {
		k, mag, _, err := p.Bundle.VerifyDispersion()
		if err != nil {
			return err
		}
		kStar := dispersion.DominantWavenumber(k, mag)
		fmt.Fprintf(w, "%.3g\t%.4f\t%.4f\t%.4g\n",
			p.Omega0, kStar, dispersion.Theory(kStar, p.Bundle.C, p.Omega0),
			p.Bundle.Amplitude[len(p.Bundle.Amplitude)-1])
	}
	return w.Flush()
}

func parseFloats(csv string) ([]float64, error) {
	parts := strings.Split(csv, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad omega0 value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tdim\tgrid\tc\tomega0\tdt\tsaved")
	for _, r := range runs {
		gridDesc := fmt.Sprintf("%d", r.Nx)
		if r.Dim == 2 {
			gridDesc = fmt.Sprintf("%dx%d", r.Nx, r.Ny)
		}
		fmt.Fprintf(w, "%s\t%dD\t%s\t%.3g\t%.3g\t%.5g\t%s\n",
			r.ID, r.Dim, gridDesc, r.C, r.Omega0, r.Dt, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	bundle, err := store.LoadBundle(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Header("dispersion analysis: " + args[0]))

	switch bundle.Dim {
	case 1:
		k, mag, _, err := bundle.VerifyDispersion()
		if err != nil {
			return err
		}
		fmt.Println(viz.Spectrum(k, mag))
		kStar := dispersion.DominantWavenumber(k, mag)
		fmt.Printf("dominant mode: k* = %.4f, omega_theory(k*) = %.4f (omega0 = %.3g)\n\n",
			kStar, dispersion.Theory(kStar, bundle.C, bundle.Omega0), bundle.Omega0)
	case 2:
		spec, err := bundle.SpectrumOfFinal()
		if err != nil {
			return err
		}
		fmt.Println(viz.Series("central |FFT| slice over kx", centerRow(spec.Mag), 10))
		if len(bundle.Energy) > 0 {
			fmt.Printf("max relative energy drift: %.3f%%\n\n", 100*relativeDrift(bundle.Energy))
		}
	}

	fit, err := bundle.FitAmplitudeDecay()
	if err != nil {
		// Non-convergence is advisory: fall back to the raw trace.
		fmt.Println(viz.UnstableStyle.Render("decay fit: " + err.Error()))
		fmt.Println(viz.Series("raw max |phi| per step", bundle.Amplitude, 10))
	} else {
		fmt.Printf("amplitude decay fit: A=%.4g tau=%.4g offset=%.4g (rms residual %.3g)\n",
			fit.A, fit.Tau, fit.Offset, fit.Residual)
	}

	fmt.Println()
	fmt.Println(viz.Header("CFL stability scan"))
	factors := []float64{0.1, 0.3, 0.5, 0.7, wave.StableLimit2D, 0.9, 1.2, 1.5}
	for i, verdict := range dispersion.ClassifyScan(factors) {
		style := viz.StableStyle
		if verdict == dispersion.Unstable {
			style = viz.UnstableStyle
		}
		fmt.Printf("  %.3f  %s\n", factors[i], style.Render(verdict.String()))
	}
	fmt.Printf("2D stability limit: 1/sqrt(2) = %.6f\n", wave.StableLimit2D)
	return nil
}

func centerRow(mag [][]float64) []float64 {
	if len(mag) == 0 {
		return nil
	}
	return mag[len(mag)/2]
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	bundle, err := store.LoadBundle(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Header("run " + args[0]))
	fmt.Println(viz.Series("max |phi| per step", bundle.Amplitude, 10))
	if bundle.Dim == 1 {
		if phi, err := bundle.Final1D(); err == nil {
			fmt.Println(viz.FieldProfile(phi, bundle.Times[len(bundle.Times)-1]))
		}
	}
	if len(bundle.Energy) > 0 {
		fmt.Println(viz.Series("total energy", bundle.Energy, 10))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	bundle, err := store.LoadBundle(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	times := make([]float64, len(bundle.Amplitude))
	for i := range times {
		times[i] = float64(i) * bundle.Dt
	}
	if err := export.AmplitudeChart(filepath.Join(outDir, args[0]+"_amplitude.png"), times, bundle.Amplitude); err != nil {
		return err
	}

	if bundle.Dim == 1 {
		k, mag, omega, err := bundle.VerifyDispersion()
		if err != nil {
			return err
		}
		if err := export.DispersionChart(filepath.Join(outDir, args[0]+"_dispersion.png"), k, mag, omega); err != nil {
			return err
		}
	}
	if len(bundle.Energy) > 1 {
		if err := export.EnergyChart(filepath.Join(outDir, args[0]+"_energy.png"), bundle.Times, bundle.Energy); err != nil {
			return err
		}
	}

	if fit, err := bundle.FitAmplitudeDecay(); err == nil {
		fitted := make([]float64, len(times))
		for i, t := range times {
			fitted[i] = fit.Eval(t)
		}
		if err := export.DecayChart(filepath.Join(outDir, args[0]+"_decay.png"), times, bundle.Amplitude, fitted); err != nil {
			return err
		}
	}

	fmt.Println("charts written to", outDir)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	g, err := grid.New1D(length, points)
	if err != nil {
		return err
	}
	phys, err := grid.NewPhysics(waveSpeed, omega0)
	if err != nil {
		return err
	}
	pulse := field.Gaussian1D(g, g.Length/2, width, 1.0)
	eng, err := wave.NewEngine1D(g, phys, wave.Policy{CFL: cfl}, pulse)
	if err != nil {
		return err
	}
	return tui.Run(eng, steps, frameRate)
}
