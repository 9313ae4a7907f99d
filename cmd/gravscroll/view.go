package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
	"github.com/san-kum/gravscroll/internal/viz"
	"github.com/spf13/cobra"
)

func runView(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lines := viz.SampleDocument(300)
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		lines, err = viz.ReadDocument(f)
		f.Close()
		if err != nil {
			return err
		}
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

	pg := page.New(0, cfg.ViewportHeight)
	frames := session.NewManual()
	ctrl := session.New(session.Host{
		Sink:      pg,
		Extent:    pg,
		Overlay:   pg,
		Input:     pg,
		Scheduler: frames,
	},
		session.WithParams(&params),
		session.WithParamStore(db),
		session.WithStartMode(cfg.Mode()),
		session.WithLogger(logger),
		session.WithFPS(cfg.FPS),
	)

	m := viz.NewModel(ctrl, pg, frames, lines, cfg.FPS)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
