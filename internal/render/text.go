package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/eulerecho/kabooom"
)

var glyphColors = map[Glyph]*color.Color{
	Free:      color.New(color.FgHiBlack),
	Occupied:  color.New(color.FgWhite, color.Bold),
	Target:    color.New(color.FgRed, color.Bold),
	Ego:       color.New(color.FgBlue, color.Bold),
	Intercept: color.New(color.FgGreen, color.Bold),
}

var titleColor = color.New(color.FgCyan, color.Bold)

// Text writes every frame of the playback to w. fatih/color drops the
// escape codes when w is not a terminal.
func Text(w io.Writer, grid kabooom.Grid, trajectory kabooom.Trajectory, path []kabooom.Cell) error {
	if len(path) == 0 {
		_, err := fmt.Fprintln(w, NoInterception)
		return err
	}
	for _, frame := range Frames(trajectory, path) {
		if _, err := io.WriteString(w, FrameText(grid, frame)); err != nil {
			return err
		}
	}
	return nil
}

// FrameText renders one frame: a title line, then one line per grid row.
func FrameText(grid kabooom.Grid, frame Frame) string {
	var out strings.Builder
	out.WriteString(titleColor.Sprintf("Simulation Time Step: %d", frame.Step))
	out.WriteString("\n")

	cellsX, cellsY := grid.Dimensions()
	for y := 0; y < cellsY; y++ {
		for x := 0; x < cellsX; x++ {
			glyph := frame.GlyphAt(grid, kabooom.Cell{X: x, Y: y})
			out.WriteString(glyphColors[glyph].Sprint(string(glyph.Rune())))
		}
		out.WriteString("\n")
	}
	return out.String()
}
