// Package occupancy implements the free/occupied map the ego plans on.
package occupancy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/eulerecho/kabooom"
)

// ErrInvalidDimensions indicates a map with no cells.
var ErrInvalidDimensions = errors.New("invalid map dimensions")

// Obstacle sides are drawn between these fractions of the map size.
const (
	MinObstacleScale = 0.1
	MaxObstacleScale = 0.25
)

// Grid is a row-major boolean occupancy field. Metric sizes are converted to
// cells by dividing by the resolution.
type Grid struct {
	cellsX, cellsY int
	width, height  float64
	resolution     float64
	occupied       []bool
}

// New creates an obstacle-free map of width by height metres at resolution
// metres per cell.
func New(width, height, resolution float64) (*Grid, error) {
	if width <= 0 || height <= 0 || resolution <= 0 {
		return nil, fmt.Errorf("%w: %gx%g at resolution %g", ErrInvalidDimensions, width, height, resolution)
	}
	cellsX, cellsY := toCells(width, resolution), toCells(height, resolution)
	if cellsX < 1 || cellsY < 1 {
		return nil, fmt.Errorf("%w: %gx%g at resolution %g has no cells", ErrInvalidDimensions, width, height, resolution)
	}
	return &Grid{
		cellsX:     cellsX,
		cellsY:     cellsY,
		width:      width,
		height:     height,
		resolution: resolution,
		occupied:   make([]bool, cellsX*cellsY),
	}, nil
}

// NewCells creates an obstacle-free map of cellsX by cellsY unit cells.
func NewCells(cellsX, cellsY int) (*Grid, error) {
	return New(float64(cellsX), float64(cellsY), 1)
}

// toCells truncates like an integer cast but tolerates 5/0.1 = 49.999...
func toCells(size, resolution float64) int {
	return int(math.Floor(size/resolution + 1e-9))
}

func (g *Grid) InBounds(cell kabooom.Cell) bool {
	return cell.X >= 0 && cell.X < g.cellsX && cell.Y >= 0 && cell.Y < g.cellsY
}

// IsFree reports false for out-of-bounds cells.
func (g *Grid) IsFree(cell kabooom.Cell) bool {
	return g.InBounds(cell) && !g.occupied[g.index(cell)]
}

func (g *Grid) Dimensions() (int, int) { return g.cellsX, g.cellsY }

func (g *Grid) Resolution() float64 { return g.resolution }

// Size returns the metric extent of the map.
func (g *Grid) Size() (float64, float64) { return g.width, g.height }

// Set marks cell occupied or free. Out-of-bounds cells are ignored.
func (g *Grid) Set(cell kabooom.Cell, occupied bool) {
	if g.InBounds(cell) {
		g.occupied[g.index(cell)] = occupied
	}
}

func (g *Grid) index(cell kabooom.Cell) int { return cell.Y*g.cellsX + cell.X }

// FillRect occupies every cell in [x0,x1) x [y0,y1), clipped to the map.
func (g *Grid) FillRect(x0, y0, x1, y1 int) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, g.cellsX), min(y1, g.cellsY)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.occupied[y*g.cellsX+x] = true
		}
	}
}

// AddObstacle stamps a rectangle whose corner is at metric point (x, y).
// Each side is a random fraction of the map size, no smaller than
// MinObstacleScale and no larger than MaxObstacleScale of it.
func (g *Grid) AddObstacle(rng *rand.Rand, x, y float64) {
	obstacleWidth := math.Max(MinObstacleScale*g.width, rng.Float64()*MaxObstacleScale*g.width)
	obstacleHeight := math.Max(MinObstacleScale*g.height, rng.Float64()*MaxObstacleScale*g.height)

	startX, startY := int(x/g.resolution), int(y/g.resolution)
	endX := int(float64(startX) + obstacleWidth/g.resolution)
	endY := int(float64(startY) + obstacleHeight/g.resolution)
	g.FillRect(startX, startY, endX, endY)
}

// AddObstacles stamps n obstacles at random corners rounded to 0.1 m.
func (g *Grid) AddObstacles(rng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		x := math.Round(rng.Float64()*g.width*10) / 10
		y := math.Round(rng.Float64()*g.height*10) / 10
		g.AddObstacle(rng, x, y)
	}
}

// FreeCells lists free cells in row-major order.
func (g *Grid) FreeCells() []kabooom.Cell {
	free := make([]kabooom.Cell, 0, len(g.occupied))
	for i, occupied := range g.occupied {
		if !occupied {
			free = append(free, kabooom.Cell{X: i % g.cellsX, Y: i / g.cellsX})
		}
	}
	return free
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	count := 0
	for _, occupied := range g.occupied {
		if occupied {
			count++
		}
	}
	return count
}

// RandomFreeCell picks a free cell uniformly; ok is false on a full map.
func (g *Grid) RandomFreeCell(rng *rand.Rand) (cell kabooom.Cell, ok bool) {
	free := g.FreeCells()
	if len(free) == 0 {
		return kabooom.Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}
