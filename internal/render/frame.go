// Package render plays an interception back frame by frame, either as text or
// on a terminal screen.
package render

import "github.com/eulerecho/kabooom"

// NoInterception is shown when the search returned no path.
const NoInterception = "No interception possible!"

// Glyph classifies what a cell shows in a frame.
type Glyph int

const (
	Free Glyph = iota
	Occupied
	Target
	Ego
	Intercept
)

// Rune is the character drawn for the glyph.
func (g Glyph) Rune() rune {
	return [...]rune{'.', '#', 'T', 'E', 'X'}[g]
}

// Frame is the world at one time step of the playback.
type Frame struct {
	Step      int
	Ego       kabooom.Cell
	Target    kabooom.Cell
	HasTarget bool
}

// Frames pairs each path cell with the target cell at the same time step.
// Playback stops at whichever of the two runs out first.
func Frames(trajectory kabooom.Trajectory, path []kabooom.Cell) []Frame {
	steps := len(path)
	if trajectory != nil && trajectory.Len() < steps {
		steps = trajectory.Len()
	}
	frames := make([]Frame, 0, steps)
	for step := 0; step < steps; step++ {
		frame := Frame{Step: step, Ego: path[step]}
		if trajectory != nil {
			frame.Target = trajectory.At(step)
			frame.HasTarget = true
		}
		frames = append(frames, frame)
	}
	return frames
}

// GlyphAt returns what cell shows in this frame.
func (f Frame) GlyphAt(grid kabooom.Grid, cell kabooom.Cell) Glyph {
	isEgo := cell == f.Ego
	isTarget := f.HasTarget && cell == f.Target
	switch {
	case isEgo && isTarget:
		return Intercept
	case isEgo:
		return Ego
	case isTarget:
		return Target
	case !grid.IsFree(cell):
		return Occupied
	default:
		return Free
	}
}

// Intercepted reports whether ego and target share a cell.
func (f Frame) Intercepted() bool {
	return f.HasTarget && f.Ego == f.Target
}
