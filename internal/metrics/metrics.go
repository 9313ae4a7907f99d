package metrics

import "github.com/san-kum/gravscroll/internal/gravity"

// Metric summarises a trajectory. Metrics satisfy session.Observer.
type Metric interface {
	Name() string
	OnFrame(s gravity.State, fired []gravity.Milestone, t float64)
	Value() float64
	Reset()
}

func Default() []Metric {
	return []Metric{
		NewBounces(),
		NewPeakSpeed(),
		NewTimeToBottom(),
		NewMilestoneCount(),
	}
}

func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
