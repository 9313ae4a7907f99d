package analysis

import (
	"strings"

	"github.com/san-kum/gravscroll/internal/storage"
)

type Point struct {
	X, Y float64
}

// Bounds is a padded bounding box of a point set.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
}

func (b Bounds) RangeX() float64 { return b.MaxX - b.MinX }
func (b Bounds) RangeY() float64 { return b.MaxY - b.MinY }

// PhasePoints maps samples to (position, velocity).
func PhasePoints(samples []storage.Sample) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: s.Position, Y: s.Velocity}
	}
	return points
}

// TracePoints maps samples to (time, position).
func TracePoints(samples []storage.Sample) []Point {
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i] = Point{X: s.Time, Y: s.Position}
	}
	return points
}

// PaddedBounds returns the bounding box of points grown by 10% on each
// side. Degenerate ranges are widened to 1.
func PaddedBounds(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{MaxX: 1, MaxY: 1}
	}
	b := Bounds{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}

	rangeX := b.RangeX()
	rangeY := b.RangeY()
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.MinX -= rangeX * 0.1
	b.MaxX += rangeX * 0.1
	b.MinY -= rangeY * 0.1
	b.MaxY += rangeY * 0.1
	return b
}

// PhaseASCII draws points on a width x height character grid with axes
// where zero is in view.
func PhaseASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}
	b := PaddedBounds(points)

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - b.MinX) / b.RangeX() * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-b.MinY)/b.RangeY()*float64(height-1)) }

	for _, p := range points {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	if b.MinX <= 0 && b.MaxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '│'
			}
		}
	}
	if b.MinY <= 0 && b.MaxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if canvas[r][c] == ' ' {
				canvas[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
