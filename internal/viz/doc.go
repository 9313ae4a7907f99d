// Package viz provides the terminal host for a gravity scroll session.
//
// [Model] is a Bubble Tea program that plays every collaborator role: it
// scrolls a document by the session's position, turns mouse wheel events
// into wheel samples and drives frames with tea.Tick.
//
// # Key Bindings
//
//	S / Space - Start or stop the session
//	D         - Smooth descent to the bottom (when stopped)
//	↑/↓ k/j   - Wheel up / down
//	P         - Cycle parameter presets
//	+/-       - Raise / lower gravity
//	T         - Cycle color themes
//	?         - Show help overlay
//	Q         - Quit
package viz
