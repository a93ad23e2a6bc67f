// Package config holds the run configuration shared by the CLI commands.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/eulerecho/kabooom"
)

// ErrInvalidConfig indicates a configuration value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes a series of interception runs.
type Config struct {
	Iterations   int
	Circle       bool
	Obstacles    int
	MapWidth     float64
	MapHeight    float64
	Resolution   float64
	Algorithm    string
	Seed         int64
	Workers      int
	DiagonalCost float64
	MaxStates    int
	FrameDelay   time.Duration
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Iterations:   5,
		Circle:       false,
		Obstacles:    20,
		MapWidth:     5,
		MapHeight:    5,
		Resolution:   0.1,
		Algorithm:    kabooom.Dijkstra.String(),
		Seed:         0,
		Workers:      runtime.NumCPU(),
		DiagonalCost: 1,
		MaxStates:    0,
		FrameDelay:   100 * time.Millisecond,
	}
}

// BindFlags registers every field on fs, using the current values as defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Iterations, "num-iterations", "n", c.Iterations, "Number of scenarios to run")
	fs.BoolVar(&c.Circle, "circle", c.Circle, "Use a circular target trajectory on an obstacle-free map")
	fs.IntVar(&c.Obstacles, "num-obstacles", c.Obstacles, "Number of obstacles to add to the map")
	fs.Float64Var(&c.MapWidth, "map-width", c.MapWidth, "Width of the map in metres")
	fs.Float64Var(&c.MapHeight, "map-height", c.MapHeight, "Height of the map in metres")
	fs.Float64Var(&c.Resolution, "map-resolution", c.Resolution, "Metres per grid cell")
	fs.StringVarP(&c.Algorithm, "algorithm", "a", c.Algorithm, "Search algorithm: bfs or dijkstra")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed (0 picks one from the clock)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Worker goroutines for batch runs")
	fs.Float64Var(&c.DiagonalCost, "diagonal-cost", c.DiagonalCost, "Cost of a diagonal move relative to an axis move")
	fs.IntVar(&c.MaxStates, "max-states", c.MaxStates, "Abort a search after expanding this many states (0 = unbounded)")
	fs.DurationVar(&c.FrameDelay, "frame-delay", c.FrameDelay, "Delay between playback frames")
}

// Validate checks ranges and the algorithm name.
func (c Config) Validate() error {
	switch {
	case c.Iterations < 1:
		return fmt.Errorf("%w: num-iterations must be at least 1, got %d", ErrInvalidConfig, c.Iterations)
	case c.Obstacles < 0:
		return fmt.Errorf("%w: num-obstacles must not be negative, got %d", ErrInvalidConfig, c.Obstacles)
	case c.MapWidth <= 0 || c.MapHeight <= 0:
		return fmt.Errorf("%w: map size must be positive, got %gx%g", ErrInvalidConfig, c.MapWidth, c.MapHeight)
	case c.Resolution <= 0:
		return fmt.Errorf("%w: map-resolution must be positive, got %g", ErrInvalidConfig, c.Resolution)
	case c.Resolution > c.MapWidth || c.Resolution > c.MapHeight:
		return fmt.Errorf("%w: map-resolution %g is coarser than the map", ErrInvalidConfig, c.Resolution)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	case c.DiagonalCost <= 0:
		return fmt.Errorf("%w: diagonal-cost must be positive, got %g", ErrInvalidConfig, c.DiagonalCost)
	case c.MaxStates < 0:
		return fmt.Errorf("%w: max-states must not be negative, got %d", ErrInvalidConfig, c.MaxStates)
	case c.FrameDelay < 0:
		return fmt.Errorf("%w: frame-delay must not be negative, got %s", ErrInvalidConfig, c.FrameDelay)
	}
	if _, err := kabooom.ParseMode(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// SearchOptions translates the configuration into engine options.
func (c Config) SearchOptions() ([]kabooom.Option, error) {
	mode, err := kabooom.ParseMode(c.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	options := []kabooom.Option{
		kabooom.WithMode(mode),
		kabooom.WithMaxStates(c.MaxStates),
		kabooom.WithWorkers(c.Workers),
	}
	if c.DiagonalCost != 1 {
		options = append(options, kabooom.WithMoveCost(kabooom.DiagonalCost(c.DiagonalCost)))
	}
	return options, nil
}

// ResolveSeed returns the configured seed, or one derived from now when it is zero.
func (c Config) ResolveSeed(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
