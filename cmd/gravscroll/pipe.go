package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
	"github.com/spf13/cobra"
)

var linger time.Duration

// wheelMessage extends the command protocol with raw wheel samples.
type wheelMessage struct {
	Command string  `json:"command"`
	DeltaY  float64 `json:"deltaY"`
}

// event is one line of pipe output.
type event struct {
	Event     string         `json:"event"`
	T         float64        `json:"t,omitempty"`
	Milestone string         `json:"milestone,omitempty"`
	Position  float64        `json:"position"`
	Velocity  float64        `json:"velocity"`
	Phase     string         `json:"phase"`
	Params    gravity.Params `json:"params"`
}

// eventWriter reports milestones as JSON lines.
type eventWriter struct {
	enc *json.Encoder
}

func (w eventWriter) OnFrame(s gravity.State, fired []gravity.Milestone, t float64) {
	for _, m := range fired {
		w.write(event{
			Event:     "milestone",
			T:         t,
			Milestone: m.String(),
			Position:  s.Position,
			Velocity:  s.Velocity,
			Phase:     s.Phase.String(),
		})
	}
}

func (w eventWriter) write(e event) {
	if err := w.enc.Encode(e); err != nil {
		slog.Warn("write event", "err", err)
	}
}

func runPipe(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

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

	out := eventWriter{enc: json.NewEncoder(os.Stdout)}
	pg := page.New(cfg.ContentHeight, cfg.ViewportHeight)
	loop := session.NewLoop(cfg.FPS)
	ctrl := session.New(session.Host{
		Sink:      pg,
		Extent:    pg,
		Overlay:   pg,
		Input:     pg,
		Scheduler: loop,
	},
		session.WithParams(&params),
		session.WithParamStore(db),
		session.WithStartMode(cfg.Mode()),
		session.WithLogger(logger),
		session.WithFPS(cfg.FPS),
		session.WithObserver(out),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	if err := pumpCommands(ctx, os.Stdin, loop, ctrl, pg, out); err != nil {
		cancel()
		<-done
		return err
	}

	if linger > 0 {
		select {
		case <-time.After(linger):
		case <-ctx.Done():
		}
	}

	// The final report runs on the loop goroutine, like every other access.
	finished := make(chan struct{})
	if err := loop.Post(ctx, func() {
		s := ctrl.State()
		out.write(event{
			Event:    "final",
			T:        ctrl.Elapsed().Seconds(),
			Position: pg.ScrollPosition(),
			Velocity: s.Velocity,
			Phase:    s.Phase.String(),
			Params:   ctrl.Params(),
		})
		ctrl.Stop()
		close(finished)
	}); err == nil {
		select {
		case <-finished:
		case <-ctx.Done():
		}
	}

	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// pumpCommands reads newline-delimited JSON from r and hands each message
// to the loop goroutine. Malformed lines are logged and skipped.
func pumpCommands(ctx context.Context, r io.Reader, loop *session.Loop, ctrl *session.Controller, pg *page.Page, out eventWriter) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}

		var wm wheelMessage
		if err := json.Unmarshal(line, &wm); err == nil && wm.Command == "wheel" {
			delta := wm.DeltaY
			if err := loop.Post(ctx, func() { pg.Wheel(delta) }); err != nil {
				return nil
			}
			continue
		}

		c, err := session.DecodeCommand(line)
		if err != nil {
			slog.Warn("skipping message", "err", err)
			continue
		}
		if err := loop.Post(ctx, func() {
			if err := ctrl.Dispatch(c); err != nil {
				slog.Warn("command failed", "command", c.Command, "err", err)
				return
			}
			s := ctrl.State()
			out.write(event{
				Event:    c.Command,
				T:        ctrl.Elapsed().Seconds(),
				Position: pg.ScrollPosition(),
				Velocity: s.Velocity,
				Phase:    s.Phase.String(),
				Params:   ctrl.Params(),
			})
		}); err != nil {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}
