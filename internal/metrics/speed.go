package metrics

import (
	"math"

	"github.com/san-kum/gravscroll/internal/gravity"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) OnFrame(s gravity.State, _ []gravity.Milestone, _ float64) {
	p.peak = math.Max(p.peak, math.Abs(s.Velocity))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// TimeToBottom records when the bottom was first reached, or -1.
type TimeToBottom struct {
	name string
	at   float64
	seen bool
}

func NewTimeToBottom() *TimeToBottom {
	return &TimeToBottom{name: "time_to_bottom"}
}

func (b *TimeToBottom) Name() string { return b.name }

func (b *TimeToBottom) OnFrame(s gravity.State, _ []gravity.Milestone, t float64) {
	if !b.seen && s.HasReachedBottom {
		b.seen = true
		b.at = t
	}
}

func (b *TimeToBottom) Value() float64 {
	if !b.seen {
		return -1
	}
	return b.at
}

func (b *TimeToBottom) Reset() {
	b.at = 0
	b.seen = false
}

type MilestoneCount struct {
	name  string
	count int
}

func NewMilestoneCount() *MilestoneCount {
	return &MilestoneCount{name: "milestones"}
}

func (m *MilestoneCount) Name() string { return m.name }

func (m *MilestoneCount) OnFrame(_ gravity.State, fired []gravity.Milestone, _ float64) {
	m.count += len(fired)
}

func (m *MilestoneCount) Value() float64 { return float64(m.count) }

func (m *MilestoneCount) Reset() { m.count = 0 }
