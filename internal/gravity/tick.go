package gravity

// Tick advances s by dt seconds: integrate, bound, track milestones, then
// decay the upward force for the next tick. It is deterministic in
// (s, p, dt) and leaves 0 <= Position <= MaxScroll.
func Tick(s State, p Params, dt float64) (State, []Milestone) {
	prev := s.Position
	wasAtBottom := s.HasReachedBottom

	s = Integrate(s, p, dt)
	s = Bound(prev, s, p)

	s, fired := Track(prev, wasAtBottom, s)
	s.UpwardForce = Decay(s.UpwardForce, p)
	return s, fired
}
