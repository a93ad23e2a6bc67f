package kabooom

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

var modes = []Mode{BFS, Dijkstra}

func TestSearch_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		grid       *testGrid
		start      Cell
		trajectory cells
		wantPath   []Cell
		wantErr    error
	}{
		{
			name:       "trivial diagonal hit",
			grid:       newTestGrid(3, 3),
			start:      Cell{0, 0},
			trajectory: cells{{1, 1}, {1, 1}, {1, 1}},
			wantPath:   []Cell{{0, 0}, {1, 1}},
		},
		{
			name:       "immediate exhaustion",
			grid:       newTestGrid(3, 3, Cell{1, 1}),
			start:      Cell{0, 0},
			trajectory: cells{{1, 1}},
			wantErr:    ErrNoInterception,
		},
		{
			// The target stays one cell ahead at every time step.
			name:       "escaping target",
			grid:       newTestGrid(5, 5),
			start:      Cell{0, 0},
			trajectory: cells{{0, 1}, {0, 2}, {0, 3}, {0, 4}},
			wantErr:    ErrNoInterception,
		},
		{
			name:       "target pauses before escaping",
			grid:       newTestGrid(5, 5),
			start:      Cell{0, 0},
			trajectory: cells{{0, 1}, {0, 1}, {0, 2}, {0, 3}},
			wantPath:   []Cell{{0, 0}, {0, 1}},
		},
		{
			name: "target walled in",
			grid: newTestGrid(5, 5,
				Cell{2, 1}, Cell{1, 2}, Cell{3, 2}, Cell{2, 3},
				Cell{1, 1}, Cell{3, 1}, Cell{1, 3}, Cell{3, 3}),
			start:      Cell{0, 0},
			trajectory: cells{{2, 2}, {2, 2}, {2, 2}, {2, 2}, {2, 2}, {2, 2}},
			wantErr:    ErrNoInterception,
		},
		{
			name:       "start on target",
			grid:       newTestGrid(5, 5),
			start:      Cell{0, 0},
			trajectory: cells{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
			wantPath:   []Cell{{0, 0}},
		},
		{
			name:       "end to end diagonal",
			grid:       newTestGrid(5, 5),
			start:      Cell{4, 0},
			trajectory: cells{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
			wantPath:   []Cell{{4, 0}, {3, 1}, {2, 2}, {1, 3}, {0, 4}},
		},
		{
			name:       "target leaves before ego arrives",
			grid:       newTestGrid(5, 5),
			start:      Cell{4, 4},
			trajectory: cells{{0, 0}, {0, 0}, {0, 0}},
			wantErr:    ErrNoInterception,
		},
	}

	for _, tt := range tests {
		for _, mode := range modes {
			t.Run(tt.name+"/"+mode.String(), func(t *testing.T) {
				result, err := Search(tt.grid, tt.trajectory, tt.start, WithMode(mode))
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
					}
					if result.Path != nil || result.Found {
						t.Errorf("expected no path on failure, got %v", result.Path)
					}
					return
				}
				if err != nil {
					t.Fatalf("Search() error = %v", err)
				}
				if !reflect.DeepEqual(result.Path, tt.wantPath) {
					t.Errorf("path = %v, want %v", result.Path, tt.wantPath)
				}
				if result.InterceptTime != len(tt.wantPath)-1 {
					t.Errorf("InterceptTime = %d, want %d", result.InterceptTime, len(tt.wantPath)-1)
				}
			})
		}
	}
}

func TestSearch_TwoMovesAway(t *testing.T) {
	trajectory := cells{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}
	result, err := Search(newTestGrid(5, 5), trajectory, Cell{2, 2})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := len(result.Path) - 1; got != 2 {
		t.Errorf("moves = %d, want 2", got)
	}
}

func TestSearch_InvalidInputs(t *testing.T) {
	grid := newTestGrid(3, 3, Cell{1, 1})
	tests := []struct {
		name       string
		start      Cell
		trajectory Trajectory
		wantErr    error
	}{
		{"start out of bounds", Cell{3, 0}, cells{{0, 0}}, ErrInvalidStart},
		{"start negative", Cell{-1, 0}, cells{{0, 0}}, ErrInvalidStart},
		{"start occupied", Cell{1, 1}, cells{{0, 0}}, ErrInvalidStart},
		{"empty trajectory", Cell{0, 0}, cells{}, ErrInvalidTrajectory},
		{"nil trajectory", Cell{0, 0}, nil, ErrInvalidTrajectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(grid, tt.trajectory, tt.start)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Search() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearch_EmptyTrajectoryBeatsInvalidStart(t *testing.T) {
	_, err := Search(newTestGrid(3, 3), cells{}, Cell{9, 9})
	if !errors.Is(err, ErrInvalidTrajectory) {
		t.Errorf("Search() error = %v, want %v", err, ErrInvalidTrajectory)
	}
}

func TestSearch_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		grid, trajectory, start := randomScenario(rng, 8, 12, 15)
		want := earliestIntercept(grid, trajectory, start)

		var lengths []int
		for _, mode := range modes {
			result, err := Search(grid, trajectory, start, WithMode(mode))
			if want < 0 {
				if !errors.Is(err, ErrNoInterception) {
					t.Fatalf("case %d %s: error = %v, want ErrNoInterception", i, mode, err)
				}
				continue
			}
			if err != nil {
				t.Fatalf("case %d %s: Search() error = %v", i, mode, err)
			}
			assertValidPath(t, grid, trajectory, start, result.Path)
			lengths = append(lengths, len(result.Path))
			if mode == BFS && len(result.Path)-1 != want {
				t.Errorf("case %d: BFS moves = %d, want %d", i, len(result.Path)-1, want)
			}
		}
		if len(lengths) == 2 && lengths[0] != lengths[1] {
			t.Errorf("case %d: BFS length %d != Dijkstra length %d", i, lengths[0], lengths[1])
		}
	}
}

func assertValidPath(t *testing.T, grid Grid, trajectory Trajectory, start Cell, path []Cell) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[0] != start {
		t.Errorf("path starts at %v, want %v", path[0], start)
	}
	last := len(path) - 1
	if path[last] != trajectory.At(last) {
		t.Errorf("path ends at %v, target is at %v", path[last], trajectory.At(last))
	}
	for i, cell := range path {
		if !Feasible(cell, grid) {
			t.Errorf("path[%d] = %v is not feasible", i, cell)
		}
		if i > 0 && !IsMove(path[i-1], cell) {
			t.Errorf("path[%d] -> path[%d] (%v -> %v) is not a unit move", i-1, i, path[i-1], cell)
		}
	}
}

func TestSearch_DijkstraDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	grid, trajectory, start := randomScenario(rng, 10, 15, 20)
	first, firstErr := Search(grid, trajectory, start, WithMode(Dijkstra))
	for i := 0; i < 10; i++ {
		again, err := Search(grid, trajectory, start, WithMode(Dijkstra))
		if !errors.Is(err, firstErr) {
			t.Fatalf("run %d: error = %v, want %v", i, err, firstErr)
		}
		if !reflect.DeepEqual(again.Path, first.Path) {
			t.Fatalf("run %d: path = %v, want %v", i, again.Path, first.Path)
		}
	}
}

func TestSearch_DiagonalCost(t *testing.T) {
	trajectory := cells{{2, 0}, {2, 0}, {2, 0}, {2, 0}, {2, 0}}
	result, err := Search(newTestGrid(5, 5), trajectory, Cell{0, 0},
		WithMode(Dijkstra), WithMoveCost(EuclideanCost))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalCost != 2 {
		t.Errorf("TotalCost = %v, want 2", result.TotalCost)
	}
	want := []Cell{{0, 0}, {1, 0}, {2, 0}}
	if !reflect.DeepEqual(result.Path, want) {
		t.Errorf("path = %v, want %v", result.Path, want)
	}
}

func TestSearch_WeightedDiagonalIsCharged(t *testing.T) {
	// the only reachable interception is the diagonal move at t=1
	trajectory := cells{{5, 5}, {1, 1}, {4, 4}}
	result, err := Search(newTestGrid(5, 5), trajectory, Cell{0, 0},
		WithMode(Dijkstra), WithMoveCost(DiagonalCost(10)))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalCost != 10 {
		t.Errorf("TotalCost = %v, want 10", result.TotalCost)
	}
}

func TestSearch_DijkstraOptimalUnderWeightedMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, weight := range []float64{0.5, 1.5, 3} {
		moveCost := DiagonalCost(weight)
		for i := 0; i < 100; i++ {
			grid, trajectory, start := randomScenario(rng, 7, 8, 12)
			want := cheapestIntercept(grid, trajectory, start, moveCost)

			result, err := Search(grid, trajectory, start, WithMode(Dijkstra), WithMoveCost(moveCost))
			if want < 0 {
				if !errors.Is(err, ErrNoInterception) {
					t.Errorf("weight %v case %d: error = %v, want %v", weight, i, err, ErrNoInterception)
				}
				continue
			}
			if err != nil {
				t.Fatalf("weight %v case %d: Search() error = %v", weight, i, err)
			}
			if result.TotalCost != want {
				t.Errorf("weight %v case %d: TotalCost = %v, want %v", weight, i, result.TotalCost, want)
			}
		}
	}
}

func TestSearch_IgnoresWorkerCount(t *testing.T) {
	trajectory := cells{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}
	want, err := Search(newTestGrid(5, 5), trajectory, Cell{4, 0}, WithMode(Dijkstra))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	for _, workers := range []int{1, 64} {
		got, err := Search(newTestGrid(5, 5), trajectory, Cell{4, 0}, WithMode(Dijkstra), WithWorkers(workers))
		if err != nil {
			t.Fatalf("Search(workers=%d) error = %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Search(workers=%d) = %+v, want %+v", workers, got, want)
		}
	}
}

func TestSearch_MaxStates(t *testing.T) {
	trajectory := make(cells, 50)
	for i := range trajectory {
		trajectory[i] = Cell{99, 99}
	}
	_, err := Search(newTestGrid(10, 10), trajectory, Cell{0, 0}, WithMaxStates(20))
	if !errors.Is(err, ErrStateLimit) {
		t.Errorf("Search() error = %v, want %v", err, ErrStateLimit)
	}
}

func TestSearch_ExpandsEachStateOnce(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			trajectory := cells{{9, 9}, {9, 9}, {9, 9}, {9, 9}}
			stepper, err := NewStepper(newTestGrid(4, 4), trajectory, Cell{1, 1}, WithMode(mode))
			if err != nil {
				t.Fatalf("NewStepper() error = %v", err)
			}
			seen := make(map[State]bool)
			for !stepper.Done() {
				snapshot, err := stepper.Step()
				if err != nil {
					t.Fatalf("Step() error = %v", err)
				}
				if snapshot.Done {
					break
				}
				if seen[snapshot.Current] {
					t.Fatalf("state %+v expanded twice", snapshot.Current)
				}
				seen[snapshot.Current] = true
			}
			// 1 root + 8 at t=1 + 16 at t=2 + 16 at t=3 on a 4x4 grid from (1,1)
			if len(seen) != 41 {
				t.Errorf("expanded %d states, want 41", len(seen))
			}
		})
	}
}

func TestSearch_BFSFrontierHoldsDuplicates(t *testing.T) {
	trajectory := cells{{9, 9}, {9, 9}, {9, 9}}
	engine, err := newSearch(newTestGrid(3, 3), trajectory, Cell{1, 1}, buildOptions(nil))
	if err != nil {
		t.Fatalf("newSearch() error = %v", err)
	}
	// root, then (1,2)@1 and (2,1)@1 which both discover (2,2)@2
	for i := 0; i < 3; i++ {
		if _, _, err := engine.step(); err != nil {
			t.Fatalf("step() error = %v", err)
		}
	}
	queue := engine.frontier.(*fifoFrontier)
	count := 0
	for _, node := range queue.items[queue.head:] {
		if node.State == (State{Ego: Cell{2, 2}, Time: 2}) {
			count++
		}
	}
	if count != 2 {
		t.Errorf("(2,2)@2 queued %d times, want 2", count)
	}
}

func TestSearch_DijkstraRelaxesOnlyOnStrictImprovement(t *testing.T) {
	trajectory := cells{{9, 9}, {9, 9}, {9, 9}}
	engine, err := newSearch(newTestGrid(3, 3), trajectory, Cell{1, 1}, buildOptions([]Option{WithMode(Dijkstra)}))
	if err != nil {
		t.Fatalf("newSearch() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, _, err := engine.step(); err != nil {
			t.Fatalf("step() error = %v", err)
		}
	}
	queue := engine.frontier.(*priorityFrontier)
	count := 0
	for _, item := range queue.queue {
		if item.Node.State == (State{Ego: Cell{2, 2}, Time: 2}) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("(2,2)@2 queued %d times, want 1", count)
	}
	if cost := engine.costs[State{Ego: Cell{2, 2}, Time: 2}]; cost != 2 {
		t.Errorf("recorded cost = %v, want 2", cost)
	}
}

func TestBacktrack(t *testing.T) {
	single := &Node{State: State{Ego: Cell{3, 4}, Time: 1}}
	if got := Backtrack(single); !reflect.DeepEqual(got, []Cell{{3, 4}}) {
		t.Errorf("Backtrack(single) = %v", got)
	}

	first := &Node{State: State{Ego: Cell{1, 1}, Time: 1}}
	second := &Node{State: State{Ego: Cell{2, 2}, Time: 2}, Parent: first}
	third := &Node{State: State{Ego: Cell{3, 3}, Time: 3}, Parent: second}
	want := []Cell{{1, 1}, {2, 2}, {3, 3}}
	if got := Backtrack(third); !reflect.DeepEqual(got, want) {
		t.Errorf("Backtrack(chain) = %v, want %v", got, want)
	}
	if third.Parent != second || second.Parent != first || first.Parent != nil {
		t.Error("Backtrack modified the parent chain")
	}

	if got := Backtrack(nil); got != nil {
		t.Errorf("Backtrack(nil) = %v, want nil", got)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"bfs", BFS, false},
		{"BFS", BFS, false},
		{" dijkstra ", Dijkstra, false},
		{"astar", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
