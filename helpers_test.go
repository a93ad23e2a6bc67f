package kabooom

import "math/rand"

// testGrid is a minimal in-memory Grid.
type testGrid struct {
	width, height int
	blocked       map[Cell]bool
}

func newTestGrid(width, height int, blocked ...Cell) *testGrid {
	grid := &testGrid{width: width, height: height, blocked: make(map[Cell]bool)}
	for _, cell := range blocked {
		grid.blocked[cell] = true
	}
	return grid
}

func (g *testGrid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}
func (g *testGrid) IsFree(c Cell) bool     { return !g.blocked[c] }
func (g *testGrid) Dimensions() (int, int) { return g.width, g.height }

// cells is a slice-backed Trajectory.
type cells []Cell

func (c cells) Len() int      { return len(c) }
func (c cells) At(t int) Cell { return c[t] }

// earliestIntercept propagates the set of cells the ego can occupy at each
// time step and returns the first step at which it contains the target, or -1.
func earliestIntercept(grid Grid, trajectory Trajectory, start Cell) int {
	reachable := map[Cell]bool{start: true}
	for t := 0; t < trajectory.Len(); t++ {
		if reachable[trajectory.At(t)] {
			return t
		}
		next := make(map[Cell]bool)
		for cell := range reachable {
			for _, move := range Moves {
				if neighbor := cell.Add(move); Feasible(neighbor, grid) {
					next[neighbor] = true
				}
			}
		}
		reachable = next
	}
	return -1
}

func randomScenario(rng *rand.Rand, size, obstacles, length int) (*testGrid, cells, Cell) {
	grid := newTestGrid(size, size)
	for i := 0; i < obstacles; i++ {
		grid.blocked[Cell{X: rng.Intn(size), Y: rng.Intn(size)}] = true
	}
	trajectory := make(cells, 0, length)
	position := Cell{X: rng.Intn(size), Y: rng.Intn(size)}
	for len(trajectory) < length {
		trajectory = append(trajectory, position)
		step := Moves[rng.Intn(len(Moves))]
		if next := position.Add(step); grid.InBounds(next) {
			position = next
		}
	}
	for {
		start := Cell{X: rng.Intn(size), Y: rng.Intn(size)}
		if Feasible(start, grid) {
			return grid, trajectory, start
		}
	}
}

// cheapestIntercept relaxes every time layer in turn and returns the lowest
// cost of any state where the ego meets the target, or -1.
func cheapestIntercept(grid Grid, trajectory Trajectory, start Cell, moveCost MoveCost) float64 {
	best := -1.0
	costs := map[Cell]float64{start: 0}
	for t := 0; t < trajectory.Len(); t++ {
		if cost, ok := costs[trajectory.At(t)]; ok && (best < 0 || cost < best) {
			best = cost
		}
		next := make(map[Cell]float64)
		for cell, cost := range costs {
			for _, move := range Moves {
				neighbor := cell.Add(move)
				if !Feasible(neighbor, grid) {
					continue
				}
				if old, ok := next[neighbor]; !ok || cost+moveCost(move) < old {
					next[neighbor] = cost + moveCost(move)
				}
			}
		}
		costs = next
	}
	return best
}
