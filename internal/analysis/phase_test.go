package analysis

import (
	"strings"
	"testing"

	"github.com/san-kum/gravscroll/internal/storage"
)

func TestPhasePoints(t *testing.T) {
	samples := []storage.Sample{
		{Time: 0.1, Position: 10, Velocity: 100},
		{Time: 0.2, Position: 25, Velocity: 150},
	}

	phase := PhasePoints(samples)
	if phase[1] != (Point{25, 150}) {
		t.Errorf("phase[1] = %v", phase[1])
	}
	trace := TracePoints(samples)
	if trace[0] != (Point{0.1, 10}) {
		t.Errorf("trace[0] = %v", trace[0])
	}
}

func TestPaddedBounds(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   Bounds
	}{
		{"empty", nil, Bounds{0, 1, 0, 1}},
		{"spread", []Point{{0, -10}, {100, 10}}, Bounds{-10, 110, -12, 12}},
		{"degenerate", []Point{{5, 5}}, Bounds{4.9, 5.1, 4.9, 5.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PaddedBounds(tt.points)
			if !near(got.MinX, tt.want.MinX) || !near(got.MaxX, tt.want.MaxX) ||
				!near(got.MinY, tt.want.MinY) || !near(got.MaxY, tt.want.MaxY) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestPhaseASCII(t *testing.T) {
	points := []Point{{0, 0}, {500, 400}, {1000, -200}}

	out := PhaseASCII(points, 40, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if got := strings.Count(out, "•"); got != 3 {
		t.Errorf("expected 3 plotted points, got %d", got)
	}
	if !strings.Contains(out, "─") {
		t.Error("expected zero-velocity axis")
	}
}

func TestPhaseASCIIEmpty(t *testing.T) {
	if PhaseASCII(nil, 40, 10) != "" {
		t.Error("expected empty output for no points")
	}
}
