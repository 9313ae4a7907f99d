package session

import (
	"context"
	"time"
)

// Manual is a Scheduler that fires frames only on Advance.
type Manual struct {
	pending []FrameFunc
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(fn FrameFunc) {
	m.pending = append(m.pending, fn)
}

// Advance runs every frame requested before the call with the given
// timestamp. Frames requested while running wait for the next Advance.
func (m *Manual) Advance(now time.Time) int {
	batch := m.pending
	m.pending = nil
	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

func (m *Manual) Pending() int { return len(m.pending) }

// Loop is a real-time Scheduler. Run owns the goroutine that executes
// frames and posted events, so a Controller driven by a Loop only ever runs
// on that goroutine.
type Loop struct {
	interval time.Duration
	frames   []FrameFunc
	posts    chan func()
}

func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		posts:    make(chan func(), 64),
	}
}

// RequestFrame must be called from the loop goroutine, that is from a frame
// callback or a posted function.
func (l *Loop) RequestFrame(fn FrameFunc) {
	l.frames = append(l.frames, fn)
}

// Post hands fn to the loop goroutine. It is safe for concurrent use.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case l.posts <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes posted functions as they arrive and pending frames once per
// interval until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			batch := l.frames
			l.frames = nil
			for _, fn := range batch {
				fn(now)
			}
		}
	}
}
