// Package gravity implements the scroll physics used by a gravity-scroll
// session: a constant downward pull competing with linear drag and a
// transient upward force supplied by wheel input.
//
// The package is pure. Every step is a function of its inputs:
//
//   - [Params]: tunable constants with defaults and partial [Patch] updates
//   - [WheelForce]: converts one wheel sample into an upward force
//   - [Integrate]: one semi-implicit Euler step of velocity and position
//   - [Bound]: clamps the position and applies the elastic bottom bounce
//   - [Track]: derives the one-shot [Milestone] events
//   - [Tick]: the four stages above plus the upward force decay
//
// # Determinism
//
// Tick never reads the clock. Trajectories are reproducible given the same
// sequence of dt values, so tests drive it with explicit steps:
//
//	s := gravity.NewState(0, 1000)
//	for i := 0; i < 60; i++ {
//	    s, _ = gravity.Tick(s, gravity.DefaultParams(), 1.0/60)
//	}
//
// # Sign Convention
//
// Positions and velocities are in pixels. Positive velocity points down the
// page, so gravity increases it and wheel input pulling up decreases it.
package gravity
