package metrics

import "github.com/san-kum/gravscroll/internal/gravity"

// Bounces counts elastic impacts with the bottom bound.
type Bounces struct {
	name     string
	count    int
	bouncing bool
}

func NewBounces() *Bounces {
	return &Bounces{name: "bounces"}
}

func (b *Bounces) Name() string { return b.name }

func (b *Bounces) OnFrame(s gravity.State, _ []gravity.Milestone, _ float64) {
	if s.Phase == gravity.PhaseBouncing && !b.bouncing {
		b.count++
	}
	b.bouncing = s.Bouncing
}

func (b *Bounces) Value() float64 { return float64(b.count) }

func (b *Bounces) Reset() {
	b.count = 0
	b.bouncing = false
}
