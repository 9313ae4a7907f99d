package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/metrics"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
	"github.com/san-kum/gravscroll/internal/storage"
)

// Simulator replays a wheel script against a session on a virtual page
// and clock.
type Simulator struct {
	params    gravity.Params
	log       *slog.Logger
	observers []session.Observer
}

func New(params gravity.Params) *Simulator {
	return &Simulator{
		params: params,
		log:    slog.Default(),
	}
}

func (s *Simulator) SetLogger(l *slog.Logger)      { s.log = l }
func (s *Simulator) AddObserver(o session.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Params() gravity.Params         { return s.params }

// Run starts a session and advances it for cfg.Duration. Each wheel
// sample is delivered just before the first frame at or after its time.
func (s *Simulator) Run(ctx context.Context, script Script, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Unix(0, 0).UTC()
	now := start

	pg := page.New(cfg.ContentHeight, cfg.ViewportHeight)
	pg.Now = func() time.Time { return now }
	pg.SetScrollPosition(cfg.StartPosition)

	frames := session.NewManual()
	rec := storage.NewRecorder()
	ms := metrics.Default()

	params := s.params
	opts := []session.Option{
		session.WithParams(&params),
		session.WithStartMode(cfg.Mode),
		session.WithClock(func() time.Time { return now }),
		session.WithLogger(s.log),
		session.WithObserver(rec),
	}
	for _, m := range ms {
		opts = append(opts, session.WithObserver(m))
	}
	for _, o := range s.observers {
		opts = append(opts, session.WithObserver(o))
	}
	ctrl := session.New(session.Host{
		Sink:      pg,
		Extent:    pg,
		Overlay:   pg,
		Input:     pg,
		Scheduler: frames,
	}, opts...)

	result := &Result{}
	ctrl.Start()
	defer ctrl.Stop()

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	next := 0
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(i) * cfg.Dt
		for next < len(script) && script[next].At <= t {
			pg.Wheel(script[next].DeltaY)
			next++
		}
		now = start.Add(time.Duration(t * float64(time.Second)))
		frames.Advance(now)
		result.StepsTaken++
	}

	result.Samples = rec.Samples
	result.Milestones = rec.Milestones
	result.Metrics = metrics.Collect(ms)
	result.Final = ctrl.State()
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.ViewportHeight <= 0 {
		return fmt.Errorf("viewport height must be positive, got %f", cfg.ViewportHeight)
	}
	return nil
}

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
