package gravity

import "time"

// ConfettiLifetime is how long the celebration stays up before the overlay
// hides it.
const ConfettiLifetime = 4 * time.Second

// MidwayFraction is the share of MaxScroll an ascent from the bottom must
// climb back above to count as halfway.
const MidwayFraction = 0.5

// Milestone is a one-shot narrative event derived from the trajectory.
type Milestone int

const (
	Midway Milestone = iota + 1
	BottomReached
	Confetti
)

func (m Milestone) String() string {
	switch m {
	case Midway:
		return "midway"
	case BottomReached:
		return "bottom_reached"
	case Confetti:
		return "confetti"
	}
	return "unknown"
}

// Lifetime is how long an overlay should present m. Zero means until dismissed.
func (m Milestone) Lifetime() time.Duration {
	if m == Confetti {
		return ConfettiLifetime
	}
	return 0
}

// Track evaluates milestones after Bound. prev is the position before the
// step and wasAtBottom is HasReachedBottom before the step.
func Track(prev float64, wasAtBottom bool, s State) (State, []Milestone) {
	var fired []Milestone

	s.IsScrollingUp = s.Position < prev

	if s.HasReachedBottom && !wasAtBottom {
		fired = append(fired, BottomReached)
	}

	atTop := s.Phase == PhaseAtTop || (s.Position <= 0 && s.MaxScroll > 0)
	if atTop && s.HasReachedBottom && !s.HasShownConfetti {
		s.HasShownConfetti = true
		fired = append(fired, Confetti)
	}

	if s.HasReachedBottom && s.IsScrollingUp && !s.HasReachedMidway &&
		s.Position <= s.MaxScroll*MidwayFraction {
		s.HasReachedMidway = true
		fired = append(fired, Midway)
	}

	return s, fired
}
