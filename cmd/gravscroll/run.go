package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/gravscroll/internal/config"
	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/sim"
	"github.com/san-kum/gravscroll/internal/storage"
	"github.com/spf13/cobra"
)

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:             dt,
		Duration:       duration,
		ContentHeight:  cfg.ContentHeight,
		ViewportHeight: cfg.ViewportHeight,
		Mode:           cfg.Mode(),
		StartPosition:  from,
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := sim.ParseScript(wheel)
	if err != nil {
		return err
	}

	db, err := openParams(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	params, err := resolveParams(cfg, db)
	if err != nil {
		return err
	}

	s := sim.New(params)
	s.SetLogger(logger)

	fmt.Printf("running %.1fs session (%s start, %d wheel samples)...\n", duration, cfg.Mode(), len(script))
	started := time.Now()
	res, err := s.Run(cmd.Context(), script, simConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", res.StepsTaken)
	fmt.Printf("final: position=%.1f velocity=%.1f phase=%s\n", res.Final.Position, res.Final.Velocity, res.Final.Phase)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.3f\n", name, res.Metrics[name])
	}
	if len(res.Milestones) > 0 {
		fmt.Println("\nmilestones:")
		for _, m := range res.Milestones {
			fmt.Printf("  %6.2fs  %-14s %s\n", m.Time, m.Kind, page.Caption(milestoneKind(m.Kind)))
		}
	}

	if noSave {
		return nil
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Timestamp:      time.Now(),
		Mode:           cfg.Mode().String(),
		Dt:             dt,
		Duration:       duration,
		ContentHeight:  cfg.ContentHeight,
		ViewportHeight: cfg.ViewportHeight,
		Params:         params,
		Metrics:        res.Metrics,
		Milestones:     res.Milestones,
	}, res.Samples)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	param := args[0]
	values, err := parseValues(args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := sim.ParseScript(wheel)
	if err != nil {
		return err
	}
	db, err := openParams(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	params, err := resolveParams(cfg, db)
	if err != nil {
		return err
	}

	sw, err := sim.NewSweep(params, param, values)
	if err != nil {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(gravity.Names(), ", "))
	}

	logger.Info("sweep started", "param", param, "values", len(values), "duration", duration)
	points, err := sw.Run(cmd.Context(), script, simConfig(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTIME_TO_BOTTOM\tBOUNCES\tPEAK_SPEED\tMILESTONES\tFINAL\n", strings.ToUpper(param))
	for _, p := range points {
		m := p.Result.Metrics
		fmt.Fprintf(w, "%g\t%.3f\t%.0f\t%.1f\t%.0f\t%.1f\n",
			p.Value, m["time_to_bottom"], m["bounces"], m["peak_speed"], m["milestones"], p.Result.Final.Position)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := sim.Best(points, metric); ok {
		fmt.Printf("\nlowest %s: %s=%g (%.3f)\n", metric, param, best.Value, best.Result.Metrics[metric])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := sim.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openParams(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	params, err := resolveParams(cfg, db)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}
	results, err := sim.RunScenario(cmd.Context(), sc, params, logger)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFINAL\tPHASE\tTIME_TO_BOTTOM\tMILESTONES\tRUN")
	for i, r := range results {
		name := r.Step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		runID := "-"
		if !noSave {
			runID, err = st.Save(storage.RunMetadata{
				Label:          r.Step.SaveAs,
				Timestamp:      time.Now(),
				Mode:           r.Config.Mode.String(),
				Dt:             r.Config.Dt,
				Duration:       r.Config.Duration,
				ContentHeight:  r.Config.ContentHeight,
				ViewportHeight: r.Config.ViewportHeight,
				Params:         r.Params,
				Metrics:        r.Result.Metrics,
				Milestones:     r.Result.Milestones,
			}, r.Result.Samples)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%.3f\t%.0f\t%s\n",
			name, r.Result.Final.Position, r.Result.Final.Phase,
			r.Result.Metrics["time_to_bottom"], r.Result.Metrics["milestones"], runID)
	}
	return w.Flush()
}

// parseValues reads a comma list, or lo:hi:n for n evenly spaced values.
func parseValues(list string) ([]float64, error) {
	if parts := strings.Split(list, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 2 {
			return nil, fmt.Errorf("range %q: want lo:hi:n with n >= 2", list)
		}
		out := make([]float64, n)
		for i := range out {
			out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		return out, nil
	}

	var out []float64
	for _, part := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func milestoneKind(name string) gravity.Milestone {
	for _, m := range []gravity.Milestone{gravity.Midway, gravity.BottomReached, gravity.Confetti} {
		if m.String() == name {
			return m
		}
	}
	return 0
}
