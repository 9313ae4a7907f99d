// Package session drives a gravity scroll session frame by frame.
//
// A [Controller] owns the per-session [gravity.State] and wires the pure
// tick to its host collaborators:
//
//   - [RenderSink]: receives the clamped scroll position every frame
//   - [Extent]: reports content and viewport height for maxScroll
//   - [Overlay]: presents and dismisses milestone UI
//   - [InputSource]: delivers wheel samples while a session is running
//   - [Scheduler]: runs the next frame callback once per display refresh
//
// # Scheduling
//
// The controller re-registers a frame callback after every tick. [Loop] is a
// real-time scheduler that owns one goroutine; [Manual] fires frames only
// when told to and is used for headless runs and tests.
//
// # Thread Safety
//
// Controller is NOT thread-safe. All calls, including wheel handlers and
// frame callbacks, must happen on the goroutine driving the scheduler. Use
// [Loop.Post] to hand events from other goroutines to that goroutine.
package session
