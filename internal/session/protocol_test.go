package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
)

var _ = Describe("control protocol", func() {
	var r *rig

	BeforeEach(func() {
		r = newRig(5000, 800)
	})

	decode := func(raw string) session.Command {
		cmd, err := session.DecodeCommand([]byte(raw))
		Expect(err).NotTo(HaveOccurred())
		return cmd
	}

	It("starts and stops", func() {
		Expect(r.ctrl.Dispatch(decode(`{"command":"start"}`))).To(Succeed())
		Expect(r.ctrl.Running()).To(BeTrue())

		Expect(r.ctrl.Dispatch(decode(`{"command":"stop"}`))).To(Succeed())
		Expect(r.ctrl.Running()).To(BeFalse())
	})

	It("applies partial parameter updates", func() {
		cmd := decode(`{"command":"updateParams","params":{"g":3.71,"friction":0,"scrollMultiplier":75}}`)

		Expect(r.ctrl.Dispatch(cmd)).To(Succeed())

		p := r.ctrl.Params()
		Expect(p.G).To(Equal(3.71))
		Expect(p.ScrollMultiplier).To(Equal(75.0))
		Expect(p.Friction).To(Equal(gravity.DefaultFriction))
		Expect(p.PixelsPerMeter).To(Equal(gravity.DefaultPixelsPerMeter))
	})

	It("accepts updateParams without params", func() {
		Expect(r.ctrl.Dispatch(decode(`{"command":"updateParams"}`))).To(Succeed())
		Expect(r.ctrl.Params()).To(Equal(gravity.DefaultParams()))
	})

	It("runs a descent on scroll", func() {
		Expect(r.ctrl.Dispatch(decode(`{"command":"scroll"}`))).To(Succeed())
		Expect(r.ctrl.Descending()).To(BeTrue())
	})

	It("rejects unknown commands", func() {
		err := r.ctrl.Dispatch(decode(`{"command":"fly"}`))
		Expect(err).To(MatchError(session.ErrUnknownCommand))
	})

	It("rejects malformed json", func() {
		_, err := session.DecodeCommand([]byte(`{"command":`))
		Expect(err).To(MatchError(session.ErrMalformedCommand))
	})

	DescribeTable("start modes",
		func(name string, want session.StartMode, ok bool) {
			got, err := session.ParseStartMode(name)
			if !ok {
				Expect(err).To(MatchError(session.ErrUnknownStartMode))
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
			Expect(got.String()).NotTo(BeEmpty())
		},
		Entry("default", "", session.StartAtTop, true),
		Entry("top", "top", session.StartAtTop, true),
		Entry("offset", "offset", session.StartAtOffset, true),
		Entry("bogus", "middle", session.StartAtTop, false),
	)
})
