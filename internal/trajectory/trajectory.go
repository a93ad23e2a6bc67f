// Package trajectory generates target motions as one cell per time step.
package trajectory

import (
	"math"
	"math/rand"

	"github.com/eulerecho/kabooom"
)

// Path is a precomputed trajectory; index i is the target cell at time step i.
type Path []kabooom.Cell

func (p Path) Len() int { return len(p) }

func (p Path) At(timeStep int) kabooom.Cell { return p[timeStep] }

// Within reports whether every cell of the path lies inside the grid.
func (p Path) Within(grid kabooom.Grid) bool {
	for _, cell := range p {
		if !grid.InBounds(cell) {
			return false
		}
	}
	return true
}

// Reversed returns a copy of the path in reverse order.
func (p Path) Reversed() Path {
	reversed := make(Path, len(p))
	for i, cell := range p {
		reversed[len(p)-1-i] = cell
	}
	return reversed
}

// Repeat returns the path concatenated with itself n times.
func (p Path) Repeat(n int) Path {
	repeated := make(Path, 0, len(p)*max(n, 0))
	for i := 0; i < n; i++ {
		repeated = append(repeated, p...)
	}
	return repeated
}

// Line traces a Bresenham line from one cell to another, both included.
func Line(from, to kabooom.Cell) Path {
	dx, stepX := abs(to.X-from.X), sign(to.X-from.X)
	dy, stepY := -abs(to.Y-from.Y), sign(to.Y-from.Y)
	errorTerm := dx + dy

	path := make(Path, 0, max(dx, -dy)+1)
	x, y := from.X, from.Y
	for {
		path = append(path, kabooom.Cell{X: x, Y: y})
		if x == to.X && y == to.Y {
			return path
		}
		doubled := 2 * errorTerm
		if doubled >= dy {
			errorTerm += dy
			x += stepX
		}
		if doubled <= dx {
			errorTerm += dx
			y += stepY
		}
	}
}

// Bounce runs the line from one cell to another and back, repeats times.
// The turning cells appear twice, so the target pauses at each end.
func Bounce(from, to kabooom.Cell, repeats int) Path {
	forward := Line(from, to)
	return append(forward, forward.Reversed()...).Repeat(repeats)
}

// Wall bounces along the bottom row from x=0 to x=length-1.
func Wall(length, repeats int) Path {
	if length < 1 {
		return Path{}
	}
	return Bounce(kabooom.Cell{}, kabooom.Cell{X: length - 1}, repeats)
}

// ArcStep is the angular spacing between consecutive arc samples, in radians.
const ArcStep = 0.2

// ArcSweep is the angle covered by a circular trajectory before it turns back.
const ArcSweep = 1.5 * math.Pi

// Arc samples a circle of radius cells around center from startAngle over
// sweep radians at ArcStep spacing, then appends the same samples in reverse.
func Arc(center kabooom.Cell, radius, startAngle, sweep float64) Path {
	forward := Path{}
	for i := 0; ; i++ {
		theta := startAngle + float64(i)*ArcStep
		if theta >= startAngle+sweep {
			break
		}
		forward = append(forward, kabooom.Cell{
			X: int(math.Round(float64(center.X) - radius*math.Cos(theta))),
			Y: int(math.Round(float64(center.Y) - radius*math.Sin(theta))),
		})
	}
	return append(forward, forward.Reversed()...)
}

// Circle draws a random arc around center: random start angle and a random
// radius up to maxRadius, shrunk so the whole circle fits on a cellsX by
// cellsY grid.
func Circle(rng *rand.Rand, center kabooom.Cell, maxRadius float64, cellsX, cellsY int) Path {
	startAngle := 2 * rng.Float64() * math.Pi
	radius := rng.Float64() * maxRadius
	radius = math.Min(radius, float64(center.X))
	radius = math.Min(radius, float64(center.Y))
	radius = math.Min(radius, float64(cellsX-1-center.X))
	radius = math.Min(radius, float64(cellsY-1-center.Y))
	radius = math.Max(radius, 0)
	return Arc(center, radius, startAngle, ArcSweep)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
