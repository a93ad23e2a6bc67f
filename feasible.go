package kabooom

import "math"

// Moves are the eight unit displacements available to the ego at every step.
// There is no stay-in-place move.
var Moves = [8]Cell{
	{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// Feasible reports whether the ego may occupy cell.
func Feasible(cell Cell, grid Grid) bool {
	return grid.InBounds(cell) && grid.IsFree(cell)
}

// MoveCost prices a single move by its delta.
type MoveCost func(delta Cell) float64

// UnitCost charges every move the same.
func UnitCost(Cell) float64 { return 1 }

// DiagonalCost charges diagonal moves weight and axis-aligned moves 1.
// DiagonalCost(math.Sqrt2) gives Euclidean step lengths.
func DiagonalCost(weight float64) MoveCost {
	return func(delta Cell) float64 {
		if delta.X != 0 && delta.Y != 0 {
			return weight
		}
		return 1
	}
}

// EuclideanCost is DiagonalCost(math.Sqrt2).
var EuclideanCost = DiagonalCost(math.Sqrt2)

// IsMove reports whether to is exactly one move away from from.
func IsMove(from, to Cell) bool {
	delta := Cell{X: to.X - from.X, Y: to.Y - from.Y}
	for _, move := range Moves {
		if move == delta {
			return true
		}
	}
	return false
}
