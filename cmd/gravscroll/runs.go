package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravscroll/internal/analysis"
	"github.com/san-kum/gravscroll/internal/export"
	"github.com/san-kum/gravscroll/internal/storage"
	"github.com/spf13/cobra"
)

func openRuns(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tWHEN\tMODE\tDURATION\tDT\tG\tBOUNCES\tMILESTONES")

	for _, run := range runs {
		label := run.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%.2f\t%.0f\t%d\n",
			run.ID,
			label,
			humanize.Time(run.Timestamp),
			run.Mode,
			run.Duration,
			run.Dt,
			run.Params.G,
			run.Metrics["bounces"],
			len(run.Milestones),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("recorded: %s\n", humanize.Time(meta.Timestamp))
	fmt.Printf("samples: %s\n\n", humanize.Comma(int64(len(samples))))

	position := make([]float64, len(samples))
	velocity := make([]float64, len(samples))
	for i, s := range samples {
		position[i] = s.Position
		velocity[i] = s.Velocity
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"scroll position (px)", position},
		{"velocity (px/s, positive is down)", velocity},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	for _, m := range meta.Milestones {
		fmt.Printf("  %6.2fs  %s at %.0f px\n", m.Time, m.Kind, m.Position)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, samples)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase portrait: %s\n", args[0])
	fmt.Println("x: scroll position (px)  y: velocity (px/s)")
	fmt.Println()
	fmt.Print(analysis.PhaseASCII(analysis.PhasePoints(samples), 80, 24))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, err := openRuns(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	markers := make([]export.Marker, len(meta.Milestones))
	for i, m := range meta.Milestones {
		markers[i] = export.Marker{At: analysis.Point{X: m.Time, Y: m.Position}, Label: m.Kind}
	}

	out := os.Stdout
	if svgFile != "" {
		f, err := os.Create(svgFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return export.TrajectorySVG(out, analysis.TracePoints(samples), markers, 800, 400, "#00ffff", true)
}
