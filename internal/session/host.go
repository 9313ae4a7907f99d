package session

import (
	"time"

	"github.com/san-kum/gravscroll/internal/gravity"
)

// RenderSink applies scroll positions to whatever is being scrolled.
type RenderSink interface {
	SetScrollPosition(px float64)
	ScrollPosition() float64
}

// Extent reports the scrollable content and viewport heights in pixels.
type Extent interface {
	ScrollableExtent() (contentHeight, viewportHeight float64)
}

// Overlay realizes milestone UI. Confetti hides itself after
// gravity.ConfettiLifetime; everything else stays until DismissAll.
type Overlay interface {
	PresentMilestone(m gravity.Milestone)
	DismissAll()
}

// WheelEvent is one wheel sample. Positive DeltaY scrolls down.
type WheelEvent struct {
	DeltaY    float64
	prevented bool
}

// PreventDefault suppresses the host's native scrolling for this event.
func (e *WheelEvent) PreventDefault() { e.prevented = true }

func (e *WheelEvent) DefaultPrevented() bool { return e.prevented }

type WheelHandler func(ev *WheelEvent)

// InputSource delivers wheel events to at most one attached handler.
type InputSource interface {
	Attach(h WheelHandler)
	Detach()
}

type FrameFunc func(now time.Time)

// Scheduler runs fn once at the next frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// ParamStore persists parameters between sessions.
type ParamStore interface {
	LoadParams(defaults gravity.Params) (gravity.Params, error)
	SaveParams(p gravity.Params) error
}

// Observer sees every tick. t is seconds of simulated time since Start.
type Observer interface {
	OnFrame(s gravity.State, fired []gravity.Milestone, t float64)
}

// Host bundles the collaborators a Controller drives.
type Host struct {
	Sink      RenderSink
	Extent    Extent
	Overlay   Overlay
	Input     InputSource
	Scheduler Scheduler
}
