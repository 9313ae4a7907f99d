// Package page provides an in-memory scrollable page that plays every host
// role a session needs: render sink, extent, overlay and wheel input.
package page

import (
	"math"
	"time"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
)

// Banner is a milestone currently presented by the overlay.
type Banner struct {
	Milestone gravity.Milestone
	Shown     time.Time
	Expires   time.Time
}

func (b Banner) Expired(now time.Time) bool {
	return !b.Expires.IsZero() && !now.Before(b.Expires)
}

type Page struct {
	ContentHeight  float64
	ViewportHeight float64
	Now            func() time.Time

	offset  float64
	writes  int
	handler session.WheelHandler
	banners []Banner
	history []gravity.Milestone
}

func New(contentHeight, viewportHeight float64) *Page {
	return &Page{
		ContentHeight:  contentHeight,
		ViewportHeight: viewportHeight,
		Now:            time.Now,
	}
}

func (p *Page) SetScrollPosition(px float64) {
	p.offset = px
	p.writes++
}

func (p *Page) ScrollPosition() float64 { return p.offset }

// Writes counts SetScrollPosition calls.
func (p *Page) Writes() int { return p.writes }

func (p *Page) ScrollableExtent() (float64, float64) {
	return p.ContentHeight, p.ViewportHeight
}

func (p *Page) MaxScroll() float64 {
	return gravity.MaxScroll(p.ContentHeight, p.ViewportHeight)
}

func (p *Page) Attach(h session.WheelHandler) { p.handler = h }
func (p *Page) Detach()                       { p.handler = nil }
func (p *Page) Attached() bool                { return p.handler != nil }

// Wheel delivers a wheel sample. When no handler suppresses it the page
// scrolls natively by deltaY. It reports whether the default was prevented.
func (p *Page) Wheel(deltaY float64) bool {
	ev := &session.WheelEvent{DeltaY: deltaY}
	if p.handler != nil {
		p.handler(ev)
	}
	if ev.DefaultPrevented() {
		return true
	}
	p.offset = math.Min(math.Max(p.offset+deltaY, 0), p.MaxScroll())
	return false
}

func (p *Page) PresentMilestone(m gravity.Milestone) {
	now := p.Now()
	b := Banner{Milestone: m, Shown: now}
	if d := m.Lifetime(); d > 0 {
		b.Expires = now.Add(d)
	}
	p.banners = append(p.banners, b)
	p.history = append(p.history, m)
}

func (p *Page) DismissAll() { p.banners = nil }

// Banners returns the banners still visible at now and drops expired ones.
func (p *Page) Banners(now time.Time) []Banner {
	kept := p.banners[:0]
	for _, b := range p.banners {
		if !b.Expired(now) {
			kept = append(kept, b)
		}
	}
	p.banners = kept
	out := make([]Banner, len(kept))
	copy(out, kept)
	return out
}

// History lists every milestone ever presented, dismissed or not.
func (p *Page) History() []gravity.Milestone {
	out := make([]gravity.Milestone, len(p.history))
	copy(out, p.history)
	return out
}

// Caption is the text shown for a milestone.
func Caption(m gravity.Milestone) string {
	switch m {
	case gravity.Midway:
		return "Halfway back up. Keep climbing!"
	case gravity.BottomReached:
		return "Rock bottom. Scroll up to climb out."
	case gravity.Confetti:
		return "You made it back to the top!"
	}
	return ""
}
