package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/san-kum/gravscroll/internal/config"
	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/persistence"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	dbPath     string
	logLevel   string
	logFile    string

	preset    string
	startMode string
	fps       int
	dt        float64
	duration  float64
	content   float64
	viewport  float64
	wheel     string
	noSave    bool
	from      float64
	metric    string
	svgFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gravscroll",
		Short:        "gravity scroll simulation",
		SilenceUsage: true,
		RunE:         runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&dbPath, "db", "", "parameter database (default <data>/params.db)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log", "", "log file (the viewer discards logs when unset)")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&startMode, "mode", "top", "start mode (top, offset)")

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "scroll a document in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless session and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep in seconds")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().Float64Var(&content, "content", config.DefaultContentHeight, "content height in px")
	runCmd.Flags().Float64Var(&viewport, "viewport", config.DefaultViewportHeight, "viewport height in px")
	runCmd.Flags().StringVar(&wheel, "wheel", "", "wheel samples as t:deltaY,... (e.g. 4:-120,4.2:-120)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().Float64Var(&from, "from", 0, "starting scroll position in px (offset mode)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [values]",
		Short: "run one session per parameter value in parallel",
		Long:  "values is a comma list (2,5,9.81) or lo:hi:n for n evenly spaced values",
		Args:  cobra.ExactArgs(2),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "timestep in seconds")
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	sweepCmd.Flags().Float64Var(&content, "content", config.DefaultContentHeight, "content height in px")
	sweepCmd.Flags().Float64Var(&viewport, "viewport", config.DefaultViewportHeight, "viewport height in px")
	sweepCmd.Flags().StringVar(&wheel, "wheel", "", "wheel samples as t:deltaY,...")
	sweepCmd.Flags().StringVar(&metric, "metric", "time_to_bottom", "metric to minimise")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the runs")

	scrollCmd := &cobra.Command{
		Use:   "scroll",
		Short: "smooth descent to the bottom without physics",
		Args:  cobra.NoArgs,
		RunE:  runScroll,
	}
	scrollCmd.Flags().Float64Var(&content, "content", config.DefaultContentHeight, "content height in px")
	scrollCmd.Flags().Float64Var(&viewport, "viewport", config.DefaultViewportHeight, "viewport height in px")
	scrollCmd.Flags().Float64Var(&from, "from", 0, "starting scroll position in px")

	pipeCmd := &cobra.Command{
		Use:   "pipe",
		Short: "drive a real-time session with JSON commands on stdin",
		Args:  cobra.NoArgs,
		RunE:  runPipe,
	}
	pipeCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pipeCmd.Flags().Float64Var(&content, "content", config.DefaultContentHeight, "content height in px")
	pipeCmd.Flags().Float64Var(&viewport, "viewport", config.DefaultViewportHeight, "viewport height in px")
	pipeCmd.Flags().DurationVar(&linger, "linger", 0, "keep the session running this long after stdin closes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "position/velocity phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the scroll trace of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgFile, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s g=%.2f friction=%.2f bounce=%.2f\n", name, p.G, p.Friction, p.BounceFactor)
			}
			return nil
		},
	}

	rootCmd.AddCommand(viewCmd, runCmd, sweepCmd, scenarioCmd, scrollCmd, pipeCmd, listCmd, plotCmd,
		phaseCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, paramsCommand(), presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger. An empty path keeps fallback.
func newLogger(fallback io.Writer) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", logLevel, err)
	}

	w, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// loadConfig reads the config file, if any, then applies explicitly set
// flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("db") {
		cfg.DBPath = dbPath
	}
	if flags.Changed("mode") {
		cfg.StartMode = startMode
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("content") {
		cfg.ContentHeight = content
	}
	if flags.Changed("viewport") {
		cfg.ViewportHeight = viewport
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openParams opens the parameter database, creating its directory.
func openParams(cfg *config.Config, logger *slog.Logger) (*persistence.DB, error) {
	path := cfg.ParamsDB()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := persistence.Open(path)
	if err != nil {
		return nil, err
	}
	db.SetLogger(logger)
	return db, nil
}

// resolveParams layers config, stored values and the preset flag.
func resolveParams(cfg *config.Config, db *persistence.DB) (gravity.Params, error) {
	p := cfg.Params
	if db != nil {
		stored, err := db.LoadParams(p)
		if err != nil {
			return p, err
		}
		p = stored
	}
	if preset != "" {
		ps := config.GetPreset(preset)
		if ps == nil {
			return p, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = *ps
	}
	return p, nil
}
