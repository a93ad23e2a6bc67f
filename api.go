package kabooom

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/eulerecho/kabooom/internal"
)

// Result contains the outcome of a search
type Result struct {
	Path          []Cell
	TotalCost     float64
	ExpandedNodes int
	InterceptTime int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	Mode            Mode
	MoveCost        MoveCost
	MaxStates       int
	Logger          *slog.Logger
	NumberOfWorkers int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMode selects breadth-first or Dijkstra expansion. The default is BFS.
func WithMode(mode Mode) Option {
	return func(options *Options) { options.Mode = mode }
}

// WithMoveCost sets the per-move cost used by Dijkstra. BFS ignores it for
// ordering but still reports the accumulated cost.
func WithMoveCost(moveCost MoveCost) Option {
	return func(options *Options) { options.MoveCost = moveCost }
}

// WithMaxStates bounds the number of expanded states. Zero means unbounded.
func WithMaxStates(maxStates int) Option {
	return func(options *Options) { options.MaxStates = maxStates }
}

// WithLogger routes debug output of the search to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithWorkers sets how many worker goroutines Batch runs. Search and
// Stepper are single-threaded and ignore it.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		Mode:            BFS,
		MoveCost:        UnitCost,
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.MoveCost == nil {
		searchOptions.MoveCost = UnitCost
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return searchOptions
}

// Search finds a path for the ego from startCell to the first state where it
// shares a cell with the target.
//
// On failure the returned Result has a nil Path and the error is one of
// ErrInvalidTrajectory, ErrInvalidStart, ErrNoInterception or ErrStateLimit.
func Search(
	grid Grid,
	trajectory Trajectory,
	startCell Cell,
	options ...Option,
) (Result, error) {

	// --- Initialize state ---
	engine, err := newSearch(grid, trajectory, startCell, buildOptions(options))
	if err != nil {
		return Result{}, err
	}
	logger := engine.options.Logger
	logger.Debug("search started",
		slog.String("mode", engine.options.Mode.String()),
		slog.String("start", startCell.String()),
		slog.Int("horizon", trajectory.Len()))

	// --- Orchestrator loop ---
	for {
		currentNode, found, err := engine.step()
		if err != nil {
			logger.Debug("search failed",
				slog.Int("expanded", engine.expandedNodes),
				slog.Any("error", err))
			return Result{ExpandedNodes: engine.expandedNodes}, err
		}
		if found {
			result := Result{
				Path:          Backtrack(currentNode),
				TotalCost:     currentNode.Cost,
				ExpandedNodes: engine.expandedNodes,
				InterceptTime: currentNode.State.Time,
				Found:         true,
			}
			logger.Debug("target intercepted",
				slog.Int("expanded", result.ExpandedNodes),
				slog.Int("time", result.InterceptTime),
				slog.Float64("cost", result.TotalCost))
			return result, nil
		}
	}
}

// search is the state shared by Search and Stepper.
type search struct {
	grid       Grid
	trajectory Trajectory
	options    Options

	frontier frontier
	visited  map[State]bool
	// costs is the best known cost per discovered state; Dijkstra only.
	costs map[State]float64

	expandedNodes int
}

func newSearch(grid Grid, trajectory Trajectory, startCell Cell, options Options) (*search, error) {
	if trajectory == nil || trajectory.Len() < 1 {
		return nil, fmt.Errorf("%w: trajectory has no cells", ErrInvalidTrajectory)
	}
	if !Feasible(startCell, grid) {
		return nil, fmt.Errorf("%w: %s is out of bounds or occupied", ErrInvalidStart, startCell)
	}

	engine := &search{
		grid:       grid,
		trajectory: trajectory,
		options:    options,
		frontier:   newFrontier(options.Mode),
		visited:    make(map[State]bool),
	}
	root := &Node{State: State{Ego: startCell, Time: 0}}
	if options.Mode == Dijkstra {
		engine.costs = map[State]float64{root.State: 0}
	}
	engine.frontier.push(root)
	return engine, nil
}

// step pops frontier entries until it reaches a goal or a state it has not
// expanded yet. A goal is returned with found set and is not expanded; any
// other state is expanded and returned.
func (engine *search) step() (*Node, bool, error) {
	for {
		if engine.frontier.len() == 0 {
			return nil, false, ErrNoInterception
		}

		currentNode := engine.frontier.pop()

		// Goal check happens at dequeue time.
		if currentNode.Intercepted(engine.trajectory) {
			return currentNode, true, nil
		}

		// Skip if already expanded
		if engine.visited[currentNode.State] {
			continue
		}
		if engine.options.MaxStates > 0 && len(engine.visited) >= engine.options.MaxStates {
			return nil, false, fmt.Errorf("%w: %d states expanded", ErrStateLimit, len(engine.visited))
		}
		engine.visited[currentNode.State] = true
		engine.expandedNodes++

		engine.expand(currentNode)
		return currentNode, false, nil
	}
}

func (engine *search) expand(currentNode *Node) {
	nextTime := currentNode.State.Time + 1
	if nextTime >= engine.trajectory.Len() {
		// trajectory exhausted on this branch
		return
	}
	for _, move := range Moves {
		neighbor := currentNode.State.Ego.Add(move)
		if !Feasible(neighbor, engine.grid) {
			continue
		}
		nextState := State{Ego: neighbor, Time: nextTime}
		if engine.visited[nextState] {
			continue
		}
		nextCost := currentNode.Cost + engine.options.MoveCost(move)
		if engine.costs != nil {
			if knownCost, exists := engine.costs[nextState]; exists && nextCost >= knownCost {
				continue
			}
			engine.costs[nextState] = nextCost
		}
		engine.frontier.push(&Node{State: nextState, Parent: currentNode, Cost: nextCost})
	}
}

// Backtrack walks parent links from terminalNode to the root and returns the
// ego cells in chronological order, start cell first. It does not modify the chain.
func Backtrack(terminalNode *Node) []Cell {
	if terminalNode == nil {
		return nil
	}
	path := make([]Cell, 0, terminalNode.State.Time+1)
	for node := terminalNode; node != nil; node = node.Parent {
		path = append(path, node.State.Ego)
	}
	return internal.Reverse(path)
}
