// Package export renders recorded runs to files outside the terminal.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/gravscroll/internal/analysis"
)

// Marker is a labelled point drawn over a trajectory.
type Marker struct {
	At    analysis.Point
	Label string
}

// TrajectorySVG writes points as a polyline with optional markers. When
// invertY is set larger Y values are drawn lower, matching scroll offsets.
func TrajectorySVG(w io.Writer, points []analysis.Point, markers []Marker, width, height int, stroke string, invertY bool) error {
	if len(points) < 2 {
		return fmt.Errorf("trajectory needs at least 2 points, got %d", len(points))
	}

	b := analysis.PaddedBounds(points)
	project := func(p analysis.Point) (float64, float64) {
		x := (p.X - b.MinX) / b.RangeX() * float64(width)
		y := (p.Y - b.MinY) / b.RangeY() * float64(height)
		if !invertY {
			y = float64(height) - y
		}
		return x, y
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(bw, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
		}
	}
	bw.WriteString(`"/>` + "\n")

	for _, m := range markers {
		x, y := project(m.At)
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="4" fill="#ffff00"/>
<text x="%.1f" y="%.1f" fill="#ffffff" font-family="monospace" font-size="11">%s</text>
`, x, y, x+6, y-6, m.Label)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
