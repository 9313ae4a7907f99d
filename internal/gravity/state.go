package gravity

import "math"

// Phase names the boundary state the last tick left the session in.
type Phase int

const (
	PhaseFree Phase = iota
	PhaseBouncing
	PhaseAtBottom
	PhaseAtTop
)

func (p Phase) String() string {
	switch p {
	case PhaseFree:
		return "free"
	case PhaseBouncing:
		return "bouncing"
	case PhaseAtBottom:
		return "at_bottom"
	case PhaseAtTop:
		return "at_top"
	}
	return "unknown"
}

// State is the per-session simulation state. It is a value: Tick returns a
// new State and never mutates its argument.
type State struct {
	Velocity    float64
	Position    float64
	UpwardForce float64
	MaxScroll   float64
	Bouncing    bool
	Phase       Phase

	HasReachedBottom bool
	HasReachedMidway bool
	IsScrollingUp    bool
	HasShownConfetti bool
}

// NewState returns a zeroed state resting at position.
func NewState(position, maxScroll float64) State {
	return State{Position: position, MaxScroll: maxScroll}
}

// MaxScroll is the largest valid scroll offset for the given extent.
func MaxScroll(contentHeight, viewportHeight float64) float64 {
	return math.Max(0, contentHeight-viewportHeight)
}

// WheelForce converts a wheel delta into an upward force. Positive deltaY
// scrolls down the page and therefore pushes the force negative.
func WheelForce(deltaY float64, p Params) float64 {
	return -deltaY * p.ScrollMultiplier
}
