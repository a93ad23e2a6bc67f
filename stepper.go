package kabooom

import "errors"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current      State
	Target       Cell
	FrontierSize int
	VisitedSize  int
	Done         bool
	Found        bool
	Path         []Cell
	StepIndex    int
}

// Stepper runs the same search as Search one expansion at a time
type Stepper struct {
	engine    *search
	stepCount int
	done      bool
	found     bool
	err       error
	goal      *Node
	path      []Cell
	current   State
}

// NewStepper validates the inputs and seeds the frontier with the start state.
func NewStepper(
	grid Grid,
	trajectory Trajectory,
	startCell Cell,
	options ...Option,
) (*Stepper, error) {
	engine, err := newSearch(grid, trajectory, startCell, buildOptions(options))
	if err != nil {
		return nil, err
	}
	return &Stepper{engine: engine, current: State{Ego: startCell}}, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Exhausting the frontier yields a Done snapshot with Found unset and a nil
// error; only ErrStateLimit is returned as an error.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.snapshot(), nil
	}

	s.stepCount++
	currentNode, found, err := s.engine.step()
	if err != nil {
		s.done = true
		s.err = err
		if errors.Is(err, ErrNoInterception) {
			return s.snapshot(), nil
		}
		return s.snapshot(), err
	}

	s.current = currentNode.State
	if found {
		s.done = true
		s.found = true
		s.goal = currentNode
		s.path = Backtrack(currentNode)
	}
	return s.snapshot(), nil
}

// Steps returns how many times Step advanced the search.
func (s *Stepper) Steps() int { return s.stepCount }

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.done }

// Result returns the outcome once the stepper is done.
func (s *Stepper) Result() (Result, error) {
	if !s.done {
		return Result{}, errors.New("stepper: search still running")
	}
	if !s.found {
		return Result{ExpandedNodes: s.engine.expandedNodes}, s.err
	}
	return Result{
		Path:          append([]Cell(nil), s.path...),
		TotalCost:     s.goal.Cost,
		ExpandedNodes: s.engine.expandedNodes,
		InterceptTime: s.goal.State.Time,
		Found:         true,
	}, nil
}

func (s *Stepper) snapshot() StepSnapshot {
	snapshot := StepSnapshot{
		Current:      s.current,
		FrontierSize: s.engine.frontier.len(),
		VisitedSize:  len(s.engine.visited),
		Done:         s.done,
		Found:        s.found,
		StepIndex:    s.stepCount,
	}
	if s.current.Time < s.engine.trajectory.Len() {
		snapshot.Target = s.engine.trajectory.At(s.current.Time)
	}
	if s.found {
		snapshot.Path = append([]Cell(nil), s.path...)
	}
	return snapshot
}
