// Package scenario assembles a map, a target trajectory and an ego start from
// a run configuration. All randomness comes from the caller's generator.
package scenario

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/eulerecho/kabooom"
	"github.com/eulerecho/kabooom/internal/config"
	"github.com/eulerecho/kabooom/internal/occupancy"
	"github.com/eulerecho/kabooom/internal/trajectory"
)

// WallRepeats is how many times the wall trajectory bounces back and forth.
const WallRepeats = 5

// ErrNoFreeCell indicates obstacles covered the whole map.
var ErrNoFreeCell = errors.New("no free cell for the ego")

// Scenario is one search problem.
type Scenario struct {
	Grid       *occupancy.Grid
	Trajectory trajectory.Path
	Start      kabooom.Cell
}

// Build creates a scenario. Without Circle the map gets random obstacles and
// the target bounces along the bottom row; with Circle the map stays free and
// the target follows a random arc. Cells on the target's trajectory are kept
// free so the target never sits inside an obstacle.
func Build(cfg config.Config, rng *rand.Rand) (Scenario, error) {
	grid, err := occupancy.New(cfg.MapWidth, cfg.MapHeight, cfg.Resolution)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to create map: %w", err)
	}
	cellsX, cellsY := grid.Dimensions()

	var path trajectory.Path
	if cfg.Circle {
		center := kabooom.Cell{X: rng.Intn(cellsX), Y: rng.Intn(cellsY)}
		maxRadius := 0.5 * float64(min(cellsX, cellsY))
		path = trajectory.Circle(rng, center, maxRadius, cellsX, cellsY)
	} else {
		grid.AddObstacles(rng, cfg.Obstacles)
		path = trajectory.Wall(min(cellsX, cellsY), WallRepeats)
	}
	for _, cell := range path {
		grid.Set(cell, false)
	}

	start, ok := grid.RandomFreeCell(rng)
	if !ok {
		return Scenario{}, ErrNoFreeCell
	}
	return Scenario{Grid: grid, Trajectory: path, Start: start}, nil
}

// BuildAll creates cfg.Iterations scenarios from one generator.
func BuildAll(cfg config.Config, rng *rand.Rand) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		built, err := Build(cfg, rng)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		scenarios = append(scenarios, built)
	}
	return scenarios, nil
}

// Job wraps the scenario for kabooom.Batch.
func (s Scenario) Job() kabooom.Job {
	return kabooom.Job{Grid: s.Grid, Trajectory: s.Trajectory, Start: s.Start}
}
