package session_test

import (
	"errors"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
)

type memStore struct {
	saved   []gravity.Params
	stored  *gravity.Params
	saveErr error
}

func (m *memStore) LoadParams(defaults gravity.Params) (gravity.Params, error) {
	if m.stored == nil {
		return defaults, nil
	}
	return *m.stored, nil
}

func (m *memStore) SaveParams(p gravity.Params) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, p)
	return nil
}

type frameLog struct {
	times []float64
	fired []gravity.Milestone
}

func (f *frameLog) OnFrame(_ gravity.State, fired []gravity.Milestone, t float64) {
	f.times = append(f.times, t)
	f.fired = append(f.fired, fired...)
}

type rig struct {
	page   *page.Page
	frames *session.Manual
	params *gravity.Params
	now    time.Time
	ctrl   *session.Controller
}

func newRig(content, viewport float64, opts ...session.Option) *rig {
	r := &rig{
		page:   page.New(content, viewport),
		frames: session.NewManual(),
		now:    time.Unix(1700000000, 0),
	}
	p := gravity.DefaultParams()
	r.params = &p
	r.page.Now = func() time.Time { return r.now }

	base := []session.Option{
		session.WithParams(r.params),
		session.WithClock(func() time.Time { return r.now }),
		session.WithLogger(slog.New(slog.NewTextHandler(GinkgoWriter, nil))),
	}
	r.ctrl = session.New(session.Host{
		Sink:      r.page,
		Extent:    r.page,
		Overlay:   r.page,
		Input:     r.page,
		Scheduler: r.frames,
	}, append(base, opts...)...)
	return r
}

// advance moves the clock by d and fires the pending frames.
func (r *rig) advance(d time.Duration) int {
	r.now = r.now.Add(d)
	return r.frames.Advance(r.now)
}

func (r *rig) run(frames int, d time.Duration) {
	for i := 0; i < frames; i++ {
		r.advance(d)
	}
}

const frame = time.Second / 60

var _ = Describe("Controller", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig(5000, 800)
	})

	Describe("Start", func() {
		It("snaps to the top, attaches input and schedules a frame", func() {
			r.page.SetScrollPosition(700)

			r.ctrl.Start()

			Expect(r.ctrl.Running()).To(BeTrue())
			Expect(r.page.ScrollPosition()).To(Equal(0.0))
			Expect(r.page.Attached()).To(BeTrue())
			Expect(r.frames.Pending()).To(Equal(1))

			s := r.ctrl.State()
			Expect(s.Position).To(Equal(0.0))
			Expect(s.Velocity).To(Equal(0.0))
			Expect(s.MaxScroll).To(Equal(4200.0))
		})

		It("begins from the current offset in offset mode", func() {
			r = newRig(5000, 800, session.WithStartMode(session.StartAtOffset))
			r.page.SetScrollPosition(700)

			r.ctrl.Start()

			Expect(r.ctrl.State().Position).To(Equal(700.0))
			Expect(r.page.ScrollPosition()).To(Equal(700.0))
		})

		It("is a no-op while already running", func() {
			r.ctrl.Start()
			r.run(30, frame)
			before := r.ctrl.State()
			Expect(before.Position).To(BeNumerically(">", 0))

			r.ctrl.Start()

			Expect(r.ctrl.State()).To(Equal(before))
			Expect(r.frames.Pending()).To(Equal(1))
		})

		It("derives dt from the clock between frames", func() {
			r.params.Friction = 0
			r.ctrl.Start()

			r.advance(time.Second)

			s := r.ctrl.State()
			Expect(s.Velocity).To(BeNumerically("~", 981.0, 1e-9))
			Expect(s.Position).To(BeNumerically("~", 981.0, 1e-9))
			Expect(r.page.ScrollPosition()).To(Equal(s.Position))
		})

		It("resets milestone flags from the previous session", func() {
			r = newRig(1200, 800)
			r.ctrl.Start()
			r.run(240, frame)
			Expect(r.ctrl.State().HasReachedBottom).To(BeTrue())

			r.ctrl.Stop()
			r.ctrl.Start()

			Expect(r.ctrl.State().HasReachedBottom).To(BeFalse())
		})
	})

	Describe("Stop", func() {
		It("does nothing when not running", func() {
			r.page.SetScrollPosition(120)
			writes := r.page.Writes()

			r.ctrl.Stop()

			Expect(r.ctrl.Running()).To(BeFalse())
			Expect(r.page.Writes()).To(Equal(writes))
			Expect(r.ctrl.State()).To(Equal(gravity.State{}))
		})

		It("detaches input, dismisses overlays and zeroes motion", func() {
			r = newRig(1200, 800)
			r.ctrl.Start()
			r.run(240, frame)
			Expect(r.page.Banners(r.now)).NotTo(BeEmpty())

			r.page.Wheel(-100)
			r.ctrl.Stop()

			s := r.ctrl.State()
			Expect(s.Velocity).To(Equal(0.0))
			Expect(s.UpwardForce).To(Equal(0.0))
			Expect(r.page.Attached()).To(BeFalse())
			Expect(r.page.Banners(r.now)).To(BeEmpty())
		})

		It("lets the queued frame run as a no-op", func() {
			r.ctrl.Start()
			r.run(10, frame)
			r.ctrl.Stop()
			pos := r.page.ScrollPosition()

			Expect(r.advance(frame)).To(Equal(1))
			Expect(r.page.ScrollPosition()).To(Equal(pos))
			Expect(r.frames.Pending()).To(Equal(0))
		})

		It("does not double-tick when restarted before the queued frame runs", func() {
			r.ctrl.Start()
			r.run(5, frame)
			r.ctrl.Stop()
			r.ctrl.Start()
			writes := r.page.Writes()

			Expect(r.advance(frame)).To(Equal(2))
			Expect(r.page.Writes()).To(Equal(writes + 1))
			Expect(r.frames.Pending()).To(Equal(1))
		})
	})

	Describe("wheel input", func() {
		It("keeps only the latest sample", func() {
			r.ctrl.Start()

			Expect(r.page.Wheel(-300)).To(BeTrue())
			Expect(r.page.Wheel(-40)).To(BeTrue())

			Expect(r.ctrl.State().UpwardForce).To(Equal(gravity.WheelForce(-40, *r.params)))
			Expect(r.page.ScrollPosition()).To(Equal(0.0))
		})

		It("decays the force once per tick", func() {
			r.params.UpwardForcePersistence = 0.1
			r.ctrl.Start()
			r.page.Wheel(-20)

			r.advance(frame)
			Expect(r.ctrl.State().UpwardForce).To(BeNumerically("~", 100, 1e-9))
			r.advance(frame)
			Expect(r.ctrl.State().UpwardForce).To(BeNumerically("~", 10, 1e-9))
		})

		It("leaves native scrolling alone when stopped", func() {
			r.ctrl.HandleWheel(&session.WheelEvent{DeltaY: -50})
			Expect(r.ctrl.State().UpwardForce).To(Equal(0.0))

			Expect(r.page.Wheel(200)).To(BeFalse())
			Expect(r.page.ScrollPosition()).To(Equal(200.0))
		})
	})

	Describe("milestones", func() {
		It("presents bottom, midway and confetti in order", func() {
			r = newRig(1800, 800)
			r.params.MaxUpwardSpeed = 800
			r.ctrl.Start()
			r.run(300, frame)
			Expect(r.ctrl.State().Phase).To(Equal(gravity.PhaseAtBottom))

			for i := 0; i < 300 && r.ctrl.State().Position > 0; i++ {
				r.page.Wheel(-100)
				r.advance(frame)
			}
			r.run(20, frame)

			Expect(r.page.History()).To(Equal([]gravity.Milestone{
				gravity.BottomReached, gravity.Midway, gravity.Confetti,
			}))
		})

		It("hides confetti after its lifetime", func() {
			r = newRig(1800, 800)
			r.ctrl.Start()
			r.run(300, frame)
			for i := 0; i < 300 && r.ctrl.State().Position > 0; i++ {
				r.page.Wheel(-100)
				r.advance(frame)
			}

			has := func(m gravity.Milestone) bool {
				for _, b := range r.page.Banners(r.now) {
					if b.Milestone == m {
						return true
					}
				}
				return false
			}
			Expect(has(gravity.Confetti)).To(BeTrue())

			r.now = r.now.Add(gravity.ConfettiLifetime)
			Expect(has(gravity.Confetti)).To(BeFalse())
		})

		It("notifies observers every frame", func() {
			log := &frameLog{}
			r = newRig(1200, 800, session.WithObserver(log))
			r.ctrl.Start()
			r.run(120, frame)

			Expect(log.times).To(HaveLen(120))
			Expect(log.times[119]).To(BeNumerically("~", 2.0, 1e-6))
			Expect(log.fired).To(ContainElement(gravity.BottomReached))
		})
	})

	Describe("UpdateParams", func() {
		It("applies from the next tick and leaves the state alone", func() {
			r.ctrl.Start()
			r.run(10, frame)
			before := r.ctrl.State()

			Expect(r.ctrl.UpdateParams(gravity.Patch{G: gravity.Float(1.62)})).To(Succeed())

			Expect(r.ctrl.State()).To(Equal(before))
			Expect(r.params.G).To(Equal(1.62))
			Expect(r.ctrl.Params().G).To(Equal(1.62))
		})

		It("treats an empty patch as no change", func() {
			Expect(r.ctrl.UpdateParams(gravity.Patch{})).To(Succeed())
			Expect(*r.params).To(Equal(gravity.DefaultParams()))
		})

		It("ignores zero values", func() {
			Expect(r.ctrl.UpdateParams(gravity.Patch{Friction: gravity.Float(0)})).To(Succeed())
			Expect(r.params.Friction).To(Equal(gravity.DefaultFriction))
		})

		It("persists through the param store", func() {
			store := &memStore{}
			r = newRig(5000, 800, session.WithParamStore(store))

			Expect(r.ctrl.UpdateParams(gravity.Patch{ScrollMultiplier: gravity.Float(80)})).To(Succeed())

			Expect(store.saved).To(HaveLen(1))
			Expect(store.saved[0].ScrollMultiplier).To(Equal(80.0))
		})

		It("wraps store failures", func() {
			boom := errors.New("disk full")
			r = newRig(5000, 800, session.WithParamStore(&memStore{saveErr: boom}))

			err := r.ctrl.UpdateParams(gravity.Patch{G: gravity.Float(3)})
			Expect(err).To(MatchError(boom))
		})

		It("restores stored params", func() {
			stored := gravity.DefaultParams()
			stored.BounceFactor = 0.9
			r = newRig(5000, 800, session.WithParamStore(&memStore{stored: &stored}))

			Expect(r.ctrl.Restore()).To(Succeed())
			Expect(r.params.BounceFactor).To(Equal(0.9))
		})
	})

	Describe("Toggle", func() {
		It("flips the session and the title", func() {
			Expect(r.ctrl.Title()).To(Equal("Gravity Scroll (Inactive)"))

			Expect(r.ctrl.Toggle()).To(BeTrue())
			Expect(r.ctrl.Title()).To(Equal("Gravity Scroll (Active)"))

			Expect(r.ctrl.Toggle()).To(BeFalse())
			Expect(r.ctrl.Title()).To(Equal("Gravity Scroll (Inactive)"))
		})
	})

	Describe("Descend", func() {
		It("springs to the bottom and stops scheduling", func() {
			r.ctrl.Descend()
			Expect(r.ctrl.Descending()).To(BeTrue())

			for i := 0; i < 600 && r.frames.Pending() > 0; i++ {
				r.advance(frame)
				Expect(r.page.ScrollPosition()).To(BeNumerically("<=", 4200))
			}

			Expect(r.ctrl.Descending()).To(BeFalse())
			Expect(r.page.ScrollPosition()).To(Equal(4200.0))
			Expect(r.frames.Pending()).To(Equal(0))
		})

		It("does nothing while a session runs", func() {
			r.ctrl.Start()
			r.ctrl.Descend()
			Expect(r.ctrl.Descending()).To(BeFalse())
		})

		It("is cancelled by Start", func() {
			r.ctrl.Descend()
			r.advance(frame)
			r.ctrl.Start()
			Expect(r.ctrl.Descending()).To(BeFalse())

			r.advance(frame)
			Expect(r.frames.Pending()).To(Equal(1))
		})

		It("drops frames from a descent cut short by a session", func() {
			clean := newRig(5000, 800)
			clean.ctrl.Descend()

			r.ctrl.Descend()
			r.ctrl.Start()
			r.ctrl.Stop()
			r.ctrl.Descend()

			r.advance(frame)
			Expect(r.frames.Pending()).To(Equal(1))

			clean.advance(frame)
			for i := 0; i < 4; i++ {
				r.advance(frame)
				clean.advance(frame)
				Expect(r.frames.Pending()).To(Equal(1))
			}
			Expect(r.page.ScrollPosition()).To(BeNumerically("~", clean.page.ScrollPosition(), 1e-9))
		})
	})
})
