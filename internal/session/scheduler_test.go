package session_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/page"
	"github.com/san-kum/gravscroll/internal/session"
)

var _ = Describe("Manual", func() {
	It("defers frames requested during Advance", func() {
		m := session.NewManual()
		calls := 0
		var again session.FrameFunc
		again = func(time.Time) {
			calls++
			m.RequestFrame(again)
		}
		m.RequestFrame(again)

		Expect(m.Advance(time.Now())).To(Equal(1))
		Expect(calls).To(Equal(1))
		Expect(m.Pending()).To(Equal(1))
	})
})

var _ = Describe("Loop", func() {
	It("drives a controller on its own goroutine", func() {
		loop := session.NewLoop(200)
		pg := page.New(3000, 600)
		ctrl := session.New(session.Host{
			Sink: pg, Extent: pg, Overlay: pg, Input: pg, Scheduler: loop,
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx) }()

		Expect(loop.Post(ctx, ctrl.Start)).To(Succeed())

		read := func() gravity.State {
			out := make(chan gravity.State, 1)
			Expect(loop.Post(ctx, func() { out <- ctrl.State() })).To(Succeed())
			return <-out
		}
		Eventually(func() float64 { return read().Position }).
			WithTimeout(2 * time.Second).
			Should(BeNumerically(">", 0))

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("returns when the context is already done", func() {
		loop := session.NewLoop(0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(loop.Run(ctx)).To(MatchError(context.Canceled))
		Expect(loop.Post(ctx, func() {})).To(MatchError(context.Canceled))
	})
})
