package storage

import "github.com/san-kum/gravscroll/internal/gravity"

// Recorder collects samples and milestones from a running session.
type Recorder struct {
	Samples    []Sample
	Milestones []MilestoneRecord
}

func NewRecorder() *Recorder {
	return &Recorder{Samples: make([]Sample, 0, 1024)}
}

func (r *Recorder) OnFrame(s gravity.State, fired []gravity.Milestone, t float64) {
	r.Samples = append(r.Samples, Sample{
		Time:        t,
		Position:    s.Position,
		Velocity:    s.Velocity,
		UpwardForce: s.UpwardForce,
		MaxScroll:   s.MaxScroll,
		Phase:       s.Phase,
	})
	for _, m := range fired {
		r.Milestones = append(r.Milestones, MilestoneRecord{Kind: m.String(), Time: t, Position: s.Position})
	}
}
