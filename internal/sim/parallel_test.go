package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/gravscroll/internal/gravity"
)

func TestSweepRun(t *testing.T) {
	sw, err := NewSweep(gravity.DefaultParams(), "g", []float64{2, 9.81, 20})
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.Duration = 6
	points, err := sw.Run(context.Background(), nil, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, want := range []float64{2, 9.81, 20} {
		if points[i].Value != want {
			t.Errorf("point %d value = %v, want %v", i, points[i].Value, want)
		}
	}

	if got := points[0].Result.Metrics["time_to_bottom"]; got != -1 {
		t.Errorf("low gravity should not reach bottom in 6s, got %v", got)
	}
	slow := points[1].Result.Metrics["time_to_bottom"]
	fast := points[2].Result.Metrics["time_to_bottom"]
	if fast <= 0 || fast >= slow {
		t.Errorf("expected stronger gravity to arrive sooner: g=9.81 %v, g=20 %v", slow, fast)
	}

	best, ok := Best(points, "time_to_bottom")
	if !ok || best.Value != 20 {
		t.Errorf("best = %v (%v), want g=20", best.Value, ok)
	}
}

func TestSweepUnknownParam(t *testing.T) {
	_, err := NewSweep(gravity.DefaultParams(), "mass", []float64{1})
	if !errors.Is(err, gravity.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestSweepZeroValue(t *testing.T) {
	sw, err := NewSweep(gravity.DefaultParams(), "friction", []float64{0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sw.Run(context.Background(), nil, testConfig()); err == nil {
		t.Error("expected error for zero value")
	}
}

func TestBestSkipsNeverTriggered(t *testing.T) {
	points := []SweepPoint{
		{Value: 1, Result: &Result{Metrics: map[string]float64{"time_to_bottom": -1}}},
		{Value: 2, Result: nil},
	}
	if _, ok := Best(points, "time_to_bottom"); ok {
		t.Error("expected no best point")
	}
}
