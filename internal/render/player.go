package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/eulerecho/kabooom"
)

var glyphStyles = map[Glyph]tcell.Style{
	Free:      tcell.StyleDefault.Foreground(tcell.ColorGray),
	Occupied:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorWhite),
	Target:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	Ego:       tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	Intercept: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true).Reverse(true),
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)

// Player animates a run on a tcell screen. The caller owns the screen's
// Init and Fini and must Close the player when done with it.
type Player struct {
	screen    tcell.Screen
	delay     time.Duration
	events    chan tcell.Event
	quit      chan struct{}
	closeOnce sync.Once
}

// NewPlayer starts reading events from screen. The event pump stops on Close
// or when the screen is finalized, whichever comes first.
func NewPlayer(screen tcell.Screen, delay time.Duration) *Player {
	p := &Player{
		screen: screen,
		delay:  delay,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(p.events, p.quit)
	return p
}

// Close stops the event pump. It is safe to call more than once.
func (p *Player) Close() {
	p.closeOnce.Do(func() { close(p.quit) })
}

// Play draws one frame per time step, waiting delay between frames. It returns
// false when the user pressed Escape, q or Ctrl-C.
func (p *Player) Play(ctx context.Context, title string, grid kabooom.Grid, trajectory kabooom.Trajectory, path []kabooom.Cell) (bool, error) {
	if len(path) == 0 {
		p.screen.Clear()
		p.drawText(0, 0, title, statusStyle)
		p.drawText(0, 1, NoInterception, statusStyle)
		p.screen.Show()
		return p.wait(ctx)
	}

	for _, frame := range Frames(trajectory, path) {
		p.draw(title, grid, frame)
		keepGoing, err := p.wait(ctx)
		if err != nil || !keepGoing {
			return keepGoing, err
		}
	}
	return true, nil
}

func (p *Player) draw(title string, grid kabooom.Grid, frame Frame) {
	p.screen.Clear()
	cellsX, cellsY := grid.Dimensions()
	for y := 0; y < cellsY; y++ {
		for x := 0; x < cellsX; x++ {
			glyph := frame.GlyphAt(grid, kabooom.Cell{X: x, Y: y})
			p.screen.SetContent(x, y+1, glyph.Rune(), nil, glyphStyles[glyph])
		}
	}

	p.drawText(0, 0, fmt.Sprintf("%s  Simulation Time Step: %d", title, frame.Step), statusStyle)
	status := fmt.Sprintf("ego %s  target %s", frame.Ego, frame.Target)
	if frame.Intercepted() {
		status += "  intercepted"
	}
	p.drawText(0, cellsY+1, status, statusStyle)
	p.screen.Show()
}

func (p *Player) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}

// wait sleeps for one frame delay while handling input.
func (p *Player) wait(ctx context.Context) (bool, error) {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
			return true, nil
		case ev, ok := <-p.events:
			if !ok {
				return false, nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					return false, nil
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
