package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
	"github.com/san-kum/gravscroll/internal/storage"
)

// WheelSample is a scripted wheel event at a simulated time in seconds.
type WheelSample struct {
	At     float64
	DeltaY float64
}

// Script is a time-ordered list of wheel samples.
type Script []WheelSample

// ParseScript reads "t:deltaY" pairs separated by commas.
func ParseScript(text string) (Script, error) {
	var out Script
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, delta, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("wheel sample %q: want t:deltaY", part)
		}
		t, err := strconv.ParseFloat(at, 64)
		if err != nil {
			return nil, fmt.Errorf("wheel sample %q: %w", part, err)
		}
		d, err := strconv.ParseFloat(delta, 64)
		if err != nil {
			return nil, fmt.Errorf("wheel sample %q: %w", part, err)
		}
		out = append(out, WheelSample{At: t, DeltaY: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out, nil
}

// Burst returns samples every interval seconds in [from, to). A
// non-positive interval yields no samples.
func Burst(from, to, interval, deltaY float64) Script {
	if interval <= 0 {
		return nil
	}
	var out Script
	for i := 0; ; i++ {
		at := from + float64(i)*interval
		if at >= to {
			return out
		}
		out = append(out, WheelSample{At: at, DeltaY: deltaY})
	}
}

type Config struct {
	Dt             float64
	Duration       float64
	ContentHeight  float64
	ViewportHeight float64
	Mode           session.StartMode
	// StartPosition is the page offset before Start. It only matters for
	// StartAtOffset.
	StartPosition float64
}

type Result struct {
	Samples    []storage.Sample
	Milestones []storage.MilestoneRecord
	Metrics    map[string]float64
	Final      gravity.State
	StepsTaken int
}
