package gravity

import "math"

// Integrate advances velocity then position by one semi-implicit Euler step.
// Friction is halved while s.Bouncing so a rebound keeps its momentum.
func Integrate(s State, p Params, dt float64) State {
	gravityForce := p.G * p.PixelsPerMeter
	friction := s.Velocity * p.Friction
	if s.Bouncing {
		friction *= 0.5
	}

	net := gravityForce - s.UpwardForce - friction
	s.Velocity += net * dt
	if s.Velocity < 0 {
		s.Velocity = math.Max(s.Velocity, -p.MaxUpwardSpeed)
	}
	s.Position += s.Velocity * dt
	return s
}

// Bound clamps s.Position into [0, s.MaxScroll] after an integration step
// that started at prev.
func Bound(prev float64, s State, p Params) State {
	switch {
	case s.Position >= s.MaxScroll:
		if s.Velocity > p.MinBounceVelocity && !s.Bouncing {
			s.Velocity = -s.Velocity * p.BounceFactor
			s.Bouncing = true
			s.Phase = PhaseBouncing
		} else {
			s.Velocity = 0
			s.Bouncing = false
			s.Phase = PhaseAtBottom
		}
		s.Position = s.MaxScroll
		s.HasReachedBottom = true
	case s.Position < 0:
		s.Position = 0
		s.Velocity = 0
		s.Bouncing = false
		s.Phase = PhaseAtTop
	case prev == s.MaxScroll:
		// First tick off the bottom keeps the bounce flag as it was.
		if s.Bouncing {
			s.Phase = PhaseBouncing
		} else {
			s.Phase = PhaseFree
		}
	default:
		s.Bouncing = false
		s.Phase = PhaseFree
	}
	return s
}

// Decay scales the upward force by the per-tick persistence factor.
func Decay(force float64, p Params) float64 {
	return force * p.UpwardForcePersistence
}
