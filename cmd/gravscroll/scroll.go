package main

import (
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
	"github.com/spf13/cobra"
)

// maxDescentSeconds bounds the scroll command if the spring never settles.
const maxDescentSeconds = 30

func runScroll(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pg := page.New(cfg.ContentHeight, cfg.ViewportHeight)
	pg.SetScrollPosition(from)
	frames := session.NewManual()
	ctrl := session.New(session.Host{
		Sink:      pg,
		Extent:    pg,
		Overlay:   pg,
		Input:     pg,
		Scheduler: frames,
	}, session.WithLogger(logger), session.WithFPS(cfg.FPS))

	if err := ctrl.Dispatch(session.Command{Command: session.CmdScroll}); err != nil {
		return err
	}

	interval := time.Second / time.Duration(cfg.FPS)
	now := time.Now()
	positions := []float64{pg.ScrollPosition()}
	for i := 0; ctrl.Descending() && i < maxDescentSeconds*cfg.FPS; i++ {
		now = now.Add(interval)
		frames.Advance(now)
		positions = append(positions, pg.ScrollPosition())
	}

	graph := asciigraph.Plot(positions,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("scroll position (px) per frame"),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Printf("descended %.0f -> %.0f px in %d frames (%.2fs)\n",
		positions[0], pg.ScrollPosition(), len(positions)-1,
		float64(len(positions)-1)/float64(cfg.FPS))
	return nil
}
