package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/eulerecho/kabooom"
	"github.com/eulerecho/kabooom/internal/render"
)

// newScreen is replaced in tests with a simulation screen.
var newScreen = tcell.NewScreen

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Animate interception runs in the terminal",
	Long: `Build --num-iterations scenarios, search each one and animate the result
one time step per --frame-delay. Press q or Esc to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}

		screen, err := newScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		defer screen.Fini()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		player := render.NewPlayer(screen, runConfig.FrameDelay)
		defer player.Close()
		for i, built := range s.scenarios {
			result, err := kabooom.Search(built.Grid, built.Trajectory, built.Start, s.options...)
			if err != nil && !searchFailed(err) {
				return err
			}
			title := fmt.Sprintf("Run %d/%d (%s)", i+1, len(s.scenarios), runConfig.Algorithm)
			keepGoing, err := player.Play(ctx, title, built.Grid, built.Trajectory, result.Path)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			if !keepGoing {
				return nil
			}
		}
		return nil
	},
}
