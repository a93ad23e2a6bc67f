package kabooom

import (
	"fmt"
	"strings"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell displaced by delta.
func (c Cell) Add(delta Cell) Cell {
	return Cell{X: c.X + delta.X, Y: c.Y + delta.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Grid is the occupancy map the ego moves on. It must not change during a search.
type Grid interface {
	InBounds(cell Cell) bool
	IsFree(cell Cell) bool
	Dimensions() (width int, height int)
}

// Trajectory is the target's precomputed motion, one cell per time step.
type Trajectory interface {
	Len() int
	At(timeStep int) Cell
}

// State is a vertex of the time-expanded graph. The target cell is not stored:
// it is always trajectory.At(Time).
type State struct {
	Ego  Cell
	Time int
}

// Node links a State to the node it was expanded from.
// Nodes are never mutated after creation.
type Node struct {
	State  State
	Parent *Node
	Cost   float64
}

// Intercepted reports whether the ego shares the target's cell at this node's time step.
func (node *Node) Intercepted(trajectory Trajectory) bool {
	if node.State.Time >= trajectory.Len() {
		return false
	}
	return node.State.Ego == trajectory.At(node.State.Time)
}

// Mode selects the frontier discipline.
type Mode int

const (
	BFS Mode = iota
	Dijkstra
)

func (mode Mode) String() string {
	switch mode {
	case BFS:
		return "bfs"
	case Dijkstra:
		return "dijkstra"
	default:
		return fmt.Sprintf("mode(%d)", int(mode))
	}
}

// ParseMode accepts "bfs" or "dijkstra", case-insensitively.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q (want bfs or dijkstra)", name)
	}
}
