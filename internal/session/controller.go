package session

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/gravscroll/internal/gravity"
)

const (
	DefaultFPS = 60

	descentFrequency = 4.0
	descentDamping   = 1.0
	descentTolerance = 0.5
)

// Controller runs one gravity scroll session at a time against a Host.
type Controller struct {
	host      Host
	params    *gravity.Params
	store     ParamStore
	mode      StartMode
	clock     func() time.Time
	log       *slog.Logger
	observers []Observer

	state     gravity.State
	animating bool
	gen       int
	lastTick  time.Time
	elapsed   float64

	descending bool
	descentGen int
	spring     harmonica.Spring
	descentPos float64
	descentVel float64
}

type Option func(*Controller)

// WithParams shares p with the controller. Updates through the controller
// write to p and are visible to every holder.
func WithParams(p *gravity.Params) Option { return func(c *Controller) { c.params = p } }

func WithParamStore(s ParamStore) Option { return func(c *Controller) { c.store = s } }

func WithStartMode(m StartMode) Option { return func(c *Controller) { c.mode = m } }

func WithClock(clock func() time.Time) Option { return func(c *Controller) { c.clock = clock } }

func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.log = l } }

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithFPS sets the frame rate the descent spring is tuned for.
func WithFPS(fps int) Option {
	return func(c *Controller) {
		c.spring = harmonica.NewSpring(harmonica.FPS(fps), descentFrequency, descentDamping)
	}
}

func New(host Host, opts ...Option) *Controller {
	c := &Controller{
		host:   host,
		clock:  time.Now,
		log:    slog.Default(),
		spring: harmonica.NewSpring(harmonica.FPS(DefaultFPS), descentFrequency, descentDamping),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.params == nil {
		p := gravity.DefaultParams()
		c.params = &p
	}
	return c
}

// Restore replaces the parameters with those held by the ParamStore,
// falling back to the current values for anything not stored.
func (c *Controller) Restore() error {
	if c.store == nil {
		return nil
	}
	p, err := c.store.LoadParams(*c.params)
	if err != nil {
		return fmt.Errorf("load params: %w", err)
	}
	*c.params = p
	return nil
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

func (c *Controller) Running() bool          { return c.animating }
func (c *Controller) Descending() bool       { return c.descending }
func (c *Controller) State() gravity.State   { return c.state }
func (c *Controller) Params() gravity.Params { return *c.params }
func (c *Controller) Mode() StartMode        { return c.mode }
func (c *Controller) Elapsed() time.Duration { return time.Duration(c.elapsed * float64(time.Second)) }

// Start begins a session. It is a no-op while one is already running.
func (c *Controller) Start() {
	if c.animating {
		return
	}

	position := 0.0
	if c.mode == StartAtOffset {
		position = c.host.Sink.ScrollPosition()
	}

	c.descending = false
	c.descentGen++
	c.state = gravity.NewState(position, c.maxScroll())
	c.host.Sink.SetScrollPosition(position)

	c.animating = true
	c.gen++
	c.elapsed = 0
	c.lastTick = c.clock()

	c.host.Input.Attach(c.HandleWheel)
	c.log.Info("session started",
		"mode", c.mode,
		"position", position,
		"max_scroll", c.state.MaxScroll,
	)
	c.requestFrame()
}

// Stop ends the session. A frame already queued runs and does nothing.
func (c *Controller) Stop() {
	if !c.animating {
		return
	}
	c.animating = false
	c.state.Velocity = 0
	c.state.UpwardForce = 0

	c.host.Input.Detach()
	c.host.Overlay.DismissAll()
	c.log.Info("session stopped",
		"position", c.state.Position,
		"elapsed", c.Elapsed(),
	)
}

// Toggle starts a stopped session or stops a running one and reports
// whether a session is now running.
func (c *Controller) Toggle() bool {
	if c.animating {
		c.Stop()
	} else {
		c.Start()
	}
	return c.animating
}

func (c *Controller) Title() string {
	if c.animating {
		return "Gravity Scroll (Active)"
	}
	return "Gravity Scroll (Inactive)"
}

// HandleWheel overwrites the upward force with the latest sample. Earlier
// samples since the last tick are discarded.
func (c *Controller) HandleWheel(ev *WheelEvent) {
	if !c.animating {
		return
	}
	ev.PreventDefault()
	c.state.UpwardForce = gravity.WheelForce(ev.DeltaY, *c.params)
}

// UpdateParams applies patch from the next tick on and persists the result
// when a ParamStore is configured.
func (c *Controller) UpdateParams(patch gravity.Patch) error {
	if ignored := c.params.Update(patch); len(ignored) > 0 {
		c.log.Warn("zero-valued parameters ignored", "params", ignored)
	}
	if c.store == nil {
		return nil
	}
	if err := c.store.SaveParams(*c.params); err != nil {
		return fmt.Errorf("save params: %w", err)
	}
	return nil
}

// Step runs one tick with an explicit dt in seconds and pushes the result
// to the host. Frame callbacks call it with the wall-clock delta.
func (c *Controller) Step(dt float64) []gravity.Milestone {
	c.state.MaxScroll = c.maxScroll()

	next, fired := gravity.Tick(c.state, *c.params, dt)
	c.state = next
	c.elapsed += dt

	c.host.Sink.SetScrollPosition(next.Position)
	for _, m := range fired {
		c.log.Info("milestone", "kind", m, "position", next.Position, "t", c.elapsed)
		c.host.Overlay.PresentMilestone(m)
	}
	for _, o := range c.observers {
		o.OnFrame(next, fired, c.elapsed)
	}
	return fired
}

func (c *Controller) requestFrame() {
	gen := c.gen
	c.host.Scheduler.RequestFrame(func(now time.Time) {
		if !c.animating || gen != c.gen {
			return
		}
		dt := now.Sub(c.lastTick).Seconds()
		c.lastTick = now
		c.Step(dt)
		c.requestFrame()
	})
}

// Descend animates a single non-interactive scroll to the bottom of the
// page. It does nothing while a session is running.
func (c *Controller) Descend() {
	if c.animating || c.descending {
		return
	}
	c.descending = true
	c.descentGen++
	c.descentPos = c.host.Sink.ScrollPosition()
	c.descentVel = 0
	c.log.Info("descent started", "from", c.descentPos, "to", c.maxScroll())
	c.requestDescentFrame()
}

func (c *Controller) requestDescentFrame() {
	gen := c.descentGen
	c.host.Scheduler.RequestFrame(func(time.Time) {
		if !c.descending || gen != c.descentGen {
			return
		}
		target := c.maxScroll()
		c.descentPos, c.descentVel = c.spring.Update(c.descentPos, c.descentVel, target)
		if math.Abs(c.descentPos-target) < descentTolerance && math.Abs(c.descentVel) < 1 {
			c.descentPos, c.descentVel = target, 0
			c.descending = false
		}
		c.host.Sink.SetScrollPosition(math.Min(math.Max(c.descentPos, 0), target))
		if !c.descending {
			c.log.Info("descent finished", "position", target)
			return
		}
		c.requestDescentFrame()
	})
}

func (c *Controller) maxScroll() float64 {
	content, viewport := c.host.Extent.ScrollableExtent()
	return gravity.MaxScroll(content, viewport)
}
